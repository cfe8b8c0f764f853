package service

import (
	"context"
	"mime/multipart"

	"voc_backend/internals/clients"
	"voc_backend/internals/features/answers/dto"
	"voc_backend/internals/features/answers/model"
	questionmodel "voc_backend/internals/features/questions/model"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

type AnswerStore interface {
	FindAll(ctx context.Context) ([]model.Answer, error)
	FindAllByCustomerID(ctx context.Context, customerID int64) ([]model.Answer, error)
	FindByQuestionID(ctx context.Context, questionID int64) (*model.Answer, error)
	CreateAndCompleteQuestion(ctx context.Context, answer *model.Answer) error
	Update(ctx context.Context, answer *model.Answer) error
	MonthlyCounts(ctx context.Context) ([]int64, error)
	MonthlyCountsByManager(ctx context.Context, managerID int64) ([]int64, error)
}

type QuestionStore interface {
	FindByID(ctx context.Context, id int64) (*questionmodel.Question, error)
}

type AnswerService struct {
	answers   AnswerStore
	questions QuestionStore
	users     clients.UserClient
	inquiries clients.InquiryClient
	files     clients.FileClient
}

func NewAnswerService(
	answers AnswerStore,
	questions QuestionStore,
	users clients.UserClient,
	inquiries clients.InquiryClient,
	files clients.FileClient,
) *AnswerService {
	return &AnswerService{
		answers:   answers,
		questions: questions,
		users:     users,
		inquiries: inquiries,
		files:     files,
	}
}

// ListAll returns every answer for the staff view.
func (s *AnswerService) ListAll(ctx context.Context, principal auth.Principal) ([]dto.AnswerResponse, error) {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return nil, err
	}

	answers, err := s.answers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, answers)
}

// ListByCustomer returns the caller's own answers.
func (s *AnswerService) ListByCustomer(ctx context.Context, principal auth.Principal, customerID int64) ([]dto.AnswerResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}
	if customer.UserID != customerID {
		return nil, helper.ErrUserNotMatched
	}

	answers, err := s.answers.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, answers)
}

func (s *AnswerService) GetByQuestionForManager(ctx context.Context, principal auth.Principal, questionID int64) (*dto.AnswerResponse, error) {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return nil, err
	}

	answer, err := s.requireAnswer(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, answer)
}

func (s *AnswerService) GetByQuestionForCustomer(ctx context.Context, principal auth.Principal, customerID, questionID int64) (*dto.AnswerResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}

	answer, err := s.requireAnswer(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if customer.UserID != customerID {
		return nil, helper.ErrUserNotMatched
	}
	if answer.CustomerID != customerID {
		return nil, helper.ErrUserNotMatched
	}

	return s.toResponse(ctx, answer)
}

// Create writes the answer and completes the question atomically. The
// attachment upload happens before any local write.
func (s *AnswerService) Create(
	ctx context.Context,
	principal auth.Principal,
	questionID int64,
	file *multipart.FileHeader,
	req dto.AnswerCreateRequest,
) (*dto.AnswerResponse, error) {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, helper.ErrQuestionNotFound
	}

	inquiryID, err := s.resolveInquiry(ctx, question)
	if err != nil {
		return nil, err
	}

	customer, err := s.users.GetCustomerByID(ctx, question.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, helper.ErrUserNotFound
	}

	if question.Status == questionmodel.StatusCompleted {
		return nil, helper.ErrQuestionStatusCompleted
	}

	fileName, filePath, err := clients.UploadRef(ctx, s.files, file)
	if err != nil {
		return nil, err
	}

	answer := req.ToModel(questionID, inquiryID, customer.UserID, manager.UserID, fileName, filePath)
	if err := s.answers.CreateAndCompleteQuestion(ctx, answer); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, answer)
}

// Update edits the caller's own answer with the delete-or-replace-or-keep
// file policy.
func (s *AnswerService) Update(
	ctx context.Context,
	principal auth.Principal,
	questionID int64,
	file *multipart.FileHeader,
	req dto.AnswerUpdateRequest,
) (*dto.AnswerResponse, error) {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return nil, err
	}

	answer, err := s.requireAnswer(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if answer.ManagerID != manager.UserID {
		return nil, helper.ErrAnswerNotMatched
	}
	if !answer.IsActivated {
		return nil, helper.ErrAnswerAlreadyDeleted
	}

	fileName := answer.FileName
	filePath := answer.FilePath

	if req.FileDeleted() {
		fileName = nil
		filePath = nil
	} else if file != nil {
		fileName, filePath, err = clients.UploadRef(ctx, s.files, file)
		if err != nil {
			return nil, err
		}
	}

	answer.Title = req.Title
	answer.Contents = req.Contents
	answer.FileName = fileName
	answer.FilePath = filePath

	if err := s.answers.Update(ctx, answer); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, answer)
}

// Delete soft-deletes the caller's own answer.
func (s *AnswerService) Delete(ctx context.Context, principal auth.Principal, questionID int64) error {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return err
	}

	answer, err := s.requireAnswer(ctx, questionID)
	if err != nil {
		return err
	}

	if answer.ManagerID != manager.UserID {
		return helper.ErrAnswerNotMatched
	}
	if !answer.IsActivated {
		return helper.ErrAnswerAlreadyDeleted
	}

	answer.IsActivated = false
	return s.answers.Update(ctx, answer)
}

// MonthlyCounts returns the dashboard series: all answers and the caller's
// answers per calendar month.
func (s *AnswerService) MonthlyCounts(ctx context.Context, principal auth.Principal) (*dto.MonthlyCounts, error) {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return nil, err
	}

	total, err := s.answers.MonthlyCounts(ctx)
	if err != nil {
		return nil, err
	}
	own, err := s.answers.MonthlyCountsByManager(ctx, manager.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyCounts{Total: total, Manager: own}, nil
}

// MobileGet returns the reduced answer shape for the mobile mirror.
func (s *AnswerService) MobileGet(ctx context.Context, questionID int64) (*dto.MobileAnswerSummaryResponse, error) {
	answer, err := s.requireAnswer(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return &dto.MobileAnswerSummaryResponse{
		Title:    answer.Title,
		Contents: answer.Contents,
	}, nil
}

func (s *AnswerService) resolveInquiry(ctx context.Context, question *questionmodel.Question) (*int64, error) {
	if question.InquiryID == nil {
		return nil, nil
	}

	inquiry, err := s.inquiries.GetInquiryByID(ctx, *question.InquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, helper.ErrInquiryNotFound
	}
	return &inquiry.InquiryID, nil
}

func (s *AnswerService) toResponses(ctx context.Context, answers []model.Answer) ([]dto.AnswerResponse, error) {
	out := make([]dto.AnswerResponse, 0, len(answers))
	for i := range answers {
		resp, err := s.toResponse(ctx, &answers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *AnswerService) toResponse(ctx context.Context, answer *model.Answer) (*dto.AnswerResponse, error) {
	var inquiryID *int64
	if answer.InquiryID != nil {
		inquiry, err := s.inquiries.GetInquiryByID(ctx, *answer.InquiryID)
		if err != nil {
			return nil, err
		}
		if inquiry != nil {
			inquiryID = &inquiry.InquiryID
		}
	}

	return &dto.AnswerResponse{
		QuestionID:  answer.QuestionID,
		InquiryID:   inquiryID,
		CustomerID:  answer.CustomerID,
		ManagerID:   answer.ManagerID,
		Title:       answer.Title,
		Contents:    answer.Contents,
		FileName:    answer.FileName,
		FilePath:    answer.FilePath,
		CreatedDate: answer.CreatedAt,
		IsActivated: answer.IsActivated,
	}, nil
}

func (s *AnswerService) requireManager(ctx context.Context, principal auth.Principal) (*clients.Manager, error) {
	manager, err := s.users.GetManagerByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, helper.ErrUserNotFound
	}
	return manager, nil
}

func (s *AnswerService) requireCustomer(ctx context.Context, principal auth.Principal) (*clients.Customer, error) {
	customer, err := s.users.GetCustomerByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, helper.ErrUserNotFound
	}
	return customer, nil
}

func (s *AnswerService) requireAnswer(ctx context.Context, questionID int64) (*model.Answer, error) {
	answer, err := s.answers.FindByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, helper.ErrAnswerNotFound
	}
	return answer, nil
}
