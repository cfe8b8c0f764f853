package model

import (
	"time"
)

type ColStatus string

const (
	ColStatusReady      ColStatus = "READY"
	ColStatusInProgress ColStatus = "INPROGRESS"
	ColStatusRefuse     ColStatus = "REFUSE"
	ColStatusComplete   ColStatus = "COMPLETE"
)

func (s ColStatus) Valid() bool {
	switch s {
	case ColStatusReady, ColStatusInProgress, ColStatusRefuse, ColStatusComplete:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s ColStatus) Terminal() bool {
	return s == ColStatusComplete || s == ColStatusRefuse
}

// Collaboration is a cross-manager request to jointly handle a Question.
// Lifecycle: READY -> INPROGRESS -> COMPLETE, or READY -> REFUSE.
type Collaboration struct {
	ColID      int64 `gorm:"column:col_id;primaryKey;autoIncrement" json:"colId"`
	QuestionID int64 `gorm:"column:question_id;not null;uniqueIndex" json:"questionId"`

	ColRequestID  int64 `gorm:"column:col_request_id;not null" json:"colRequestId"`
	ColResponseID int64 `gorm:"column:col_response_id;not null" json:"colResponseId"`

	ColStatus   ColStatus `gorm:"column:col_status;type:varchar(20);not null" json:"colStatus"`
	ColContents string    `gorm:"column:col_contents;type:text;not null" json:"colContents"`
	ColReply    *string   `gorm:"column:col_reply;type:text" json:"colReply,omitempty"`

	FileName *string `gorm:"column:file_name;type:text" json:"fileName,omitempty"`
	FilePath *string `gorm:"column:file_path;type:text" json:"filePath,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Collaboration) TableName() string {
	return "collaborations"
}

// Decide applies the responder's accept/refuse decision from READY.
func (c *Collaboration) Decide(accepted bool) {
	if accepted {
		c.ColStatus = ColStatusInProgress
	} else {
		c.ColStatus = ColStatusRefuse
	}
}
