package dto

import (
	"voc_backend/internals/features/questions/model"
)

type QuestionCreateRequest struct {
	Title    string               `json:"title" validate:"required,max=255"`
	Contents string               `json:"contents" validate:"required"`
	Status   model.QuestionStatus `json:"status" validate:"omitempty,oneof=READY COMPLETED"`
	Type     model.QuestionType   `json:"type" validate:"required,oneof=ORDER_INQUIRY SITE_INQUIRY OTHER"`
}

func (r QuestionCreateRequest) ToModel(inquiryID *int64, customerID int64, fileName, filePath *string) *model.Question {
	status := r.Status
	if status == "" {
		status = model.StatusReady
	}

	return &model.Question{
		InquiryID:   inquiryID,
		UserID:      customerID,
		Title:       r.Title,
		Contents:    r.Contents,
		FileName:    fileName,
		FilePath:    filePath,
		Status:      status,
		Type:        r.Type,
		IsActivated: true,
	}
}

type QuestionUpdateRequest struct {
	Title         string               `json:"title" validate:"required,max=255"`
	Contents      string               `json:"contents" validate:"required"`
	Status        model.QuestionStatus `json:"status" validate:"omitempty,oneof=READY COMPLETED"`
	Type          model.QuestionType   `json:"type" validate:"required,oneof=ORDER_INQUIRY SITE_INQUIRY OTHER"`
	IsFileDeleted *bool                `json:"isFileDeleted"`
}

func (r QuestionUpdateRequest) FileDeleted() bool {
	return r.IsFileDeleted != nil && *r.IsFileDeleted
}
