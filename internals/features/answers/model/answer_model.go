package model

import (
	"time"
)

// Answer is the single staff response that closes a Question. The inquiry,
// customer and author ids are captured at creation time and never refreshed.
type Answer struct {
	AnswerID   int64  `gorm:"column:answer_id;primaryKey;autoIncrement" json:"answerId"`
	QuestionID int64  `gorm:"column:question_id;not null;uniqueIndex" json:"questionId"`
	InquiryID  *int64 `gorm:"column:inquiry_id" json:"inquiryId,omitempty"`
	CustomerID int64  `gorm:"column:customer_id;not null" json:"customerId"`
	ManagerID  int64  `gorm:"column:manager_id;not null" json:"managerId"`

	Title    string `gorm:"column:title;type:text" json:"title"`
	Contents string `gorm:"column:contents;type:text" json:"contents"`

	FileName *string `gorm:"column:file_name;type:text" json:"fileName,omitempty"`
	FilePath *string `gorm:"column:file_path;type:text" json:"filePath,omitempty"`

	IsActivated bool `gorm:"column:is_activated;not null;default:true" json:"isActivated"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Answer) TableName() string {
	return "answers"
}
