package dto

import (
	"time"

	"voc_backend/internals/features/answers/model"
)

type AnswerCreateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Contents string `json:"contents" validate:"required"`
}

func (r AnswerCreateRequest) ToModel(questionID int64, inquiryID *int64, customerID, managerID int64, fileName, filePath *string) *model.Answer {
	return &model.Answer{
		QuestionID:  questionID,
		InquiryID:   inquiryID,
		CustomerID:  customerID,
		ManagerID:   managerID,
		Title:       r.Title,
		Contents:    r.Contents,
		FileName:    fileName,
		FilePath:    filePath,
		IsActivated: true,
	}
}

type AnswerUpdateRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Contents      string `json:"contents" validate:"required"`
	IsFileDeleted *bool  `json:"isFileDeleted"`
}

func (r AnswerUpdateRequest) FileDeleted() bool {
	return r.IsFileDeleted != nil && *r.IsFileDeleted
}

type AnswerResponse struct {
	QuestionID  int64     `json:"questionId"`
	InquiryID   *int64    `json:"inquiryId"`
	CustomerID  int64     `json:"customerId"`
	ManagerID   int64     `json:"managerId"`
	Title       string    `json:"title"`
	Contents    string    `json:"contents"`
	FileName    *string   `json:"fileName"`
	FilePath    *string   `json:"filePath"`
	CreatedDate time.Time `json:"createdDate"`
	IsActivated bool      `json:"isActivated"`
}

type MobileAnswerSummaryResponse struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

// MonthlyCounts carries two zero-filled 12-element series, months 1..12.
type MonthlyCounts struct {
	Total   []int64 `json:"total"`
	Manager []int64 `json:"manager"`
}
