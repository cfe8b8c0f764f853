package dto

import (
	"time"

	"voc_backend/internals/features/questions/model"
)

// QuestionSummaryResponse is one row of a paged question listing. CustomerName
// and ManagerID are resolved live from the User service, never stored.
type QuestionSummaryResponse struct {
	QuestionID        int64                `json:"questionId"`
	Title             string               `json:"title"`
	Status            model.QuestionStatus `json:"status"`
	Type              model.QuestionType   `json:"type"`
	Contents          string               `json:"contents"`
	CustomerName      *string              `json:"customerName"`
	QuestionCreatedAt time.Time            `json:"questionCreatedAt"`
	AnswerCreatedAt   *time.Time           `json:"answerCreatedAt"`
	ManagerID         *int64               `json:"managerId"`
	IsActivated       bool                 `json:"isActivated"`
}

type QuestionResponse struct {
	InquiryID    *int64               `json:"inquiryId"`
	UserID       int64                `json:"userId"`
	QuestionID   int64                `json:"questionId"`
	CustomerName *string              `json:"customerName"`
	Title        string               `json:"title"`
	Contents     string               `json:"contents"`
	FileName     *string              `json:"fileName"`
	FilePath     *string              `json:"filePath"`
	Status       model.QuestionStatus `json:"status"`
	Type         model.QuestionType   `json:"type"`
	CreatedDate  time.Time            `json:"createdDate"`
	ColID        *int64               `json:"colId"`
	ColStatus    *string              `json:"colStatus"`
	IsActivated  bool                 `json:"isActivated"`
}

// MobileQuestionSummaryResponse is the reduced, unauthenticated mobile shape.
type MobileQuestionSummaryResponse struct {
	InquiryID  *int64  `json:"inquiryId"`
	QuestionID int64   `json:"questionId"`
	Customer   *string `json:"customer"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Type       string  `json:"type"`
	Contents   string  `json:"contents"`
}
