package model

import (
	"time"
)

type QuestionStatus string

const (
	StatusReady     QuestionStatus = "READY"
	StatusCompleted QuestionStatus = "COMPLETED"
)

func (s QuestionStatus) Valid() bool {
	return s == StatusReady || s == StatusCompleted
}

type QuestionType string

const (
	TypeOrderInquiry QuestionType = "ORDER_INQUIRY"
	TypeSiteInquiry  QuestionType = "SITE_INQUIRY"
	TypeOther        QuestionType = "OTHER"
)

func (t QuestionType) Valid() bool {
	return t == TypeOrderInquiry || t == TypeSiteInquiry || t == TypeOther
}

// Question is a customer-submitted inquiry. It owns at most one Answer and
// at most one Collaboration; answering flips Status to COMPLETED, deleting
// only clears IsActivated.
type Question struct {
	QuestionID int64  `gorm:"column:question_id;primaryKey;autoIncrement" json:"questionId"`
	InquiryID  *int64 `gorm:"column:inquiry_id" json:"inquiryId,omitempty"`
	UserID     int64  `gorm:"column:user_id;not null" json:"userId"`

	Title    string `gorm:"column:title;type:text" json:"title"`
	Contents string `gorm:"column:contents;type:text;not null" json:"contents"`

	FileName *string `gorm:"column:file_name;type:text" json:"fileName,omitempty"`
	FilePath *string `gorm:"column:file_path;type:text" json:"filePath,omitempty"`

	Status QuestionStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Type   QuestionType   `gorm:"column:type;type:varchar(20);not null" json:"type"`

	IsActivated bool `gorm:"column:is_activated;not null;default:true" json:"isActivated"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}
