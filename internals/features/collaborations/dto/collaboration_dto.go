package dto

import (
	"time"

	"voc_backend/internals/clients"
	"voc_backend/internals/features/collaborations/model"
)

type CollaborationCreateRequest struct {
	ColReqID    int64  `json:"colReqId" validate:"required"`
	ColResID    int64  `json:"colResId" validate:"required"`
	ColContents string `json:"colContents" validate:"required"`
}

// CollaborationDecisionRequest is the responder's accept/refuse payload.
type CollaborationDecisionRequest struct {
	ColReqID   int64   `json:"colReqId" validate:"required"`
	ColResID   int64   `json:"colResId" validate:"required"`
	IsAccepted *bool   `json:"isAccepted" validate:"required"`
	ColReply   *string `json:"colReply"`
}

type CollaborationModifyRequest struct {
	ColReqID      int64   `json:"colReqId" validate:"required"`
	ColResID      int64   `json:"colResId" validate:"required"`
	ColContents   string  `json:"colContents" validate:"required"`
	IsAccepted    *bool   `json:"isAccepted"`
	ColReply      *string `json:"colReply"`
	IsFileDeleted *bool   `json:"isFileDeleted"`
}

func (r CollaborationModifyRequest) FileDeleted() bool {
	return r.IsFileDeleted != nil && *r.IsFileDeleted
}

type ManagerResponse struct {
	UserID     int64  `json:"userId"`
	EmpNo      string `json:"empNo"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

func ManagerResponseFrom(m *clients.Manager) *ManagerResponse {
	if m == nil {
		return nil
	}
	return &ManagerResponse{
		UserID:     m.UserID,
		EmpNo:      m.EmpNo,
		Name:       m.Name,
		Department: m.Department,
	}
}

// CollaborationResponse is returned by create; the detail variant adds the
// reply text.
type CollaborationResponse struct {
	ColID         int64            `json:"colId"`
	QuestionID    int64            `json:"questionId"`
	ColReqManager *ManagerResponse `json:"colManagerFromResponseDto"`
	ColResManager *ManagerResponse `json:"colManagerToResponseDto"`
	ColStatus     model.ColStatus  `json:"colStatus"`
	ColContents   string           `json:"colContents"`
	FileName      *string          `json:"fileName"`
	FilePath      *string          `json:"filePath"`
	VocFileName   *string          `json:"vocFileName"`
	VocFilePath   *string          `json:"vocFilePath"`
}

type CollaborationDetailResponse struct {
	ColID         int64            `json:"colId"`
	QuestionID    int64            `json:"questionId"`
	ColReqManager *ManagerResponse `json:"colManagerFromResponseDto"`
	ColResManager *ManagerResponse `json:"colManagerToResponseDto"`
	ColStatus     model.ColStatus  `json:"colStatus"`
	ColContents   string           `json:"colContents"`
	ColReply      *string          `json:"colReply"`
	FileName      *string          `json:"fileName"`
	FilePath      *string          `json:"filePath"`
	VocFileName   *string          `json:"vocFileName"`
	VocFilePath   *string          `json:"vocFilePath"`
}

type CollaborationSummaryResponse struct {
	ColID         int64           `json:"colId"`
	QuestionID    int64           `json:"questionId"`
	ColReqID      *int64          `json:"colReqId"`
	ColReqManager *string         `json:"colReqManager"`
	ColResID      *int64          `json:"colResId"`
	ColResManager *string         `json:"colResManager"`
	ColStatus     model.ColStatus `json:"colStatus"`
	ColContents   string          `json:"colContents"`
	CreatedDate   time.Time       `json:"createdDate"`
}

// MonthlyCounts carries two zero-filled 12-element series, months 1..12.
type MonthlyCounts struct {
	Total   []int64 `json:"total"`
	Manager []int64 `json:"manager"`
}
