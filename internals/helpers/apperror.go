package helper

import "github.com/gofiber/fiber/v2"

// AppError is the single business-failure type. Code strings are stable and
// part of the client contract; messages are human-readable.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// Global
var (
	ErrUnknown         = NewAppError(fiber.StatusInternalServerError, "G0001", "unknown error")
	ErrInvalidRequest  = NewAppError(fiber.StatusBadRequest, "G0002", "invalid request")
	ErrExternalServer  = NewAppError(fiber.StatusBadGateway, "G0003", "external server error")
	ErrInvalidToken    = NewAppError(fiber.StatusUnauthorized, "G0004", "token carries no valid identity")
	ErrTooManyRequests = NewAppError(fiber.StatusTooManyRequests, "G0005", "too many requests, try again later")
)

// User
var (
	ErrUserNotFound            = NewAppError(fiber.StatusNotFound, "U0001", "user does not exist")
	ErrReqManagerNotFound      = NewAppError(fiber.StatusNotFound, "U0002", "requesting manager does not exist")
	ErrResManagerNotFound      = NewAppError(fiber.StatusNotFound, "U0003", "responding manager does not exist")
	ErrUserNotMatched          = NewAppError(fiber.StatusForbidden, "U0007", "user identity does not match")
	ErrUnauthorizedUserManager = NewAppError(fiber.StatusForbidden, "U0011", "caller is not a manager")
)

// Inquiry
var (
	ErrInquiryNotFound       = NewAppError(fiber.StatusNotFound, "I0001", "inquiry does not exist")
	ErrInvalidOrderCondition = NewAppError(fiber.StatusBadRequest, "I0002", "invalid sort condition")
	ErrInquiryNotMatched     = NewAppError(fiber.StatusForbidden, "I0009", "inquiry was not created by this user")
)

// Question
var (
	ErrQuestionNotFound        = NewAppError(fiber.StatusNotFound, "Q0001", "question does not exist")
	ErrQuestionStatusCompleted = NewAppError(fiber.StatusConflict, "Q0002", "question has already been answered")
	ErrQuestionNotMatched      = NewAppError(fiber.StatusForbidden, "Q0003", "question was not created by this user")
	ErrQuestionAlreadyDeleted  = NewAppError(fiber.StatusConflict, "Q0004", "question has already been deleted")
)

// Answer
var (
	ErrAnswerNotFound       = NewAppError(fiber.StatusNotFound, "A0001", "answer does not exist")
	ErrAnswerNotMatched     = NewAppError(fiber.StatusForbidden, "A0002", "answer was not written by this manager")
	ErrAnswerAlreadyDeleted = NewAppError(fiber.StatusConflict, "A0003", "answer has already been deleted")
)

// Collaboration
var (
	ErrCollaborationNotFound         = NewAppError(fiber.StatusNotFound, "C0001", "collaboration does not exist")
	ErrCollaborationStatusReady      = NewAppError(fiber.StatusConflict, "C0002", "question is locked by an ongoing collaboration")
	ErrCollaborationStatusInProgress = NewAppError(fiber.StatusConflict, "C0003", "collaboration is already in progress")
	ErrCollaborationStatusCompleted  = NewAppError(fiber.StatusConflict, "C0004", "collaboration is already completed")
	ErrCollaborationStatusRefused    = NewAppError(fiber.StatusConflict, "C0005", "collaboration is already refused")
	ErrCollaborationInfoMismatch     = NewAppError(fiber.StatusConflict, "C0006", "collaboration info does not match")
	ErrResManagerNotMatched          = NewAppError(fiber.StatusForbidden, "C0007", "caller is not the responding manager of this collaboration")
	ErrReqManagerNotMatched          = NewAppError(fiber.StatusForbidden, "C0008", "caller is not the requesting manager of this collaboration")
)

// File
var ErrInvalidFileName = NewAppError(fiber.StatusBadRequest, "F0001", "invalid file name")
