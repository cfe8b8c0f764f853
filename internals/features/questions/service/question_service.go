package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"

	"voc_backend/internals/clients"
	colmodel "voc_backend/internals/features/collaborations/model"
	"voc_backend/internals/features/questions/dto"
	"voc_backend/internals/features/questions/model"
	"voc_backend/internals/features/questions/repository"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

// QuestionStore is the persistence surface the service needs.
type QuestionStore interface {
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	FindActiveByID(ctx context.Context, id int64) (*model.Question, error)
	FindActive(ctx context.Context) ([]model.Question, error)
	FindPage(ctx context.Context, f repository.QuestionFilter, page helper.PageRequest) ([]repository.QuestionWithAnswer, int64, error)
	FindAllFiltered(ctx context.Context, f repository.QuestionFilter, sortBy string) ([]repository.QuestionWithAnswer, error)
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
}

// CollaborationStore answers "does this question carry a collaboration, and
// which one". A present collaboration locks its question against edits.
type CollaborationStore interface {
	FindByQuestionID(ctx context.Context, questionID int64) (*colmodel.Collaboration, error)
}

// PagedQuestions is the listing payload shape.
type PagedQuestions struct {
	QuestionsInfo []dto.QuestionSummaryResponse `json:"questionsInfo"`
	TotalElements int64                         `json:"totalElements"`
	TotalPages    int                           `json:"totalPages"`
}

type QuestionService struct {
	questions      QuestionStore
	collaborations CollaborationStore
	users          clients.UserClient
	inquiries      clients.InquiryClient
	files          clients.FileClient
}

func NewQuestionService(
	questions QuestionStore,
	collaborations CollaborationStore,
	users clients.UserClient,
	inquiries clients.InquiryClient,
	files clients.FileClient,
) *QuestionService {
	return &QuestionService{
		questions:      questions,
		collaborations: collaborations,
		users:          users,
		inquiries:      inquiries,
		files:          files,
	}
}

// ListForManager returns a page of question summaries for the staff view.
// CustomerName filtering happens after remote name resolution, so a filtered
// page may hold fewer rows than requested.
func (s *QuestionService) ListForManager(
	ctx context.Context,
	principal auth.Principal,
	f repository.QuestionFilter,
	customerName string,
	page helper.PageRequest,
) (*PagedQuestions, error) {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return nil, err
	}

	rows, total, err := s.questions.FindPage(ctx, f, page)
	if err != nil {
		return nil, err
	}

	content, err := s.summarize(ctx, rows, customerName)
	if err != nil {
		return nil, err
	}

	return &PagedQuestions{
		QuestionsInfo: content,
		TotalElements: total,
		TotalPages:    helper.TotalPages(total, page.Size),
	}, nil
}

// ListForCustomer scopes the listing to the caller's own active questions.
func (s *QuestionService) ListForCustomer(
	ctx context.Context,
	principal auth.Principal,
	customerID int64,
	f repository.QuestionFilter,
	page helper.PageRequest,
) (*PagedQuestions, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}
	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}

	active := true
	f.UserID = &customerID
	f.IsActivated = &active

	rows, total, err := s.questions.FindPage(ctx, f, page)
	if err != nil {
		return nil, err
	}

	content, err := s.summarize(ctx, rows, "")
	if err != nil {
		return nil, err
	}

	return &PagedQuestions{
		QuestionsInfo: content,
		TotalElements: total,
		TotalPages:    helper.TotalPages(total, page.Size),
	}, nil
}

func (s *QuestionService) GetByIDForManager(ctx context.Context, principal auth.Principal, questionID int64) (*dto.QuestionResponse, error) {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return nil, err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

func (s *QuestionService) GetByIDForCustomer(ctx context.Context, principal auth.Principal, customerID, questionID int64) (*dto.QuestionResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}
	if err := matchUser(question.UserID, customerID); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

// CreateFromInquiry registers a question tied to an existing inquiry owned by
// the caller. The attachment is uploaded before anything is persisted.
func (s *QuestionService) CreateFromInquiry(
	ctx context.Context,
	principal auth.Principal,
	customerID, inquiryID int64,
	file *multipart.FileHeader,
	req dto.QuestionCreateRequest,
) (*dto.QuestionResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}

	inquiry, err := s.requireInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}

	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}
	if inquiry.CustomerID != customerID {
		return nil, helper.ErrInquiryNotMatched
	}

	fileName, filePath, err := clients.UploadRef(ctx, s.files, file)
	if err != nil {
		return nil, err
	}

	question := req.ToModel(&inquiryID, customerID, fileName, filePath)
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

func (s *QuestionService) CreateGeneral(
	ctx context.Context,
	principal auth.Principal,
	customerID int64,
	file *multipart.FileHeader,
	req dto.QuestionCreateRequest,
) (*dto.QuestionResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}
	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}

	fileName, filePath, err := clients.UploadRef(ctx, s.files, file)
	if err != nil {
		return nil, err
	}

	question := req.ToModel(nil, customerID, fileName, filePath)
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

func (s *QuestionService) UpdateInquiryQuestion(
	ctx context.Context,
	principal auth.Principal,
	customerID, inquiryID, questionID int64,
	file *multipart.FileHeader,
	req dto.QuestionUpdateRequest,
) (*dto.QuestionResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireInquiry(ctx, inquiryID); err != nil {
		return nil, err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}
	if err := s.assertMutable(ctx, question, customerID, true); err != nil {
		return nil, err
	}

	if err := s.applyUpdate(ctx, question, &inquiryID, file, req); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

func (s *QuestionService) UpdateGeneralQuestion(
	ctx context.Context,
	principal auth.Principal,
	customerID, questionID int64,
	file *multipart.FileHeader,
	req dto.QuestionUpdateRequest,
) (*dto.QuestionResponse, error) {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return nil, err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if err := matchUser(customer.UserID, customerID); err != nil {
		return nil, err
	}
	if err := s.assertMutable(ctx, question, customerID, true); err != nil {
		return nil, err
	}

	if err := s.applyUpdate(ctx, question, nil, file, req); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, question)
}

// DeleteForCustomer soft-deletes the caller's own question.
func (s *QuestionService) DeleteForCustomer(ctx context.Context, principal auth.Principal, customerID, questionID int64) error {
	customer, err := s.requireCustomer(ctx, principal)
	if err != nil {
		return err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	if err := matchUser(customer.UserID, customerID); err != nil {
		return err
	}
	if err := s.assertMutable(ctx, question, customerID, true); err != nil {
		return err
	}

	question.IsActivated = false
	return s.questions.Update(ctx, question)
}

// DeleteForManager soft-deletes any question without an owner check.
func (s *QuestionService) DeleteForManager(ctx context.Context, principal auth.Principal, questionID int64) error {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	if err := s.assertMutable(ctx, question, 0, false); err != nil {
		return err
	}

	question.IsActivated = false
	return s.questions.Update(ctx, question)
}

// MobileList returns all active questions in the reduced mobile shape.
func (s *QuestionService) MobileList(ctx context.Context) ([]dto.MobileQuestionSummaryResponse, error) {
	questions, err := s.questions.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MobileQuestionSummaryResponse, 0, len(questions))
	for i := range questions {
		item, err := s.toMobile(ctx, &questions[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *QuestionService) MobileGet(ctx context.Context, questionID int64) (*dto.MobileQuestionSummaryResponse, error) {
	question, err := s.questions.FindActiveByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, helper.ErrQuestionNotFound
	}

	return s.toMobile(ctx, question)
}

// MobileSearch mirrors the staff listing filters without paging or auth.
func (s *QuestionService) MobileSearch(
	ctx context.Context,
	f repository.QuestionFilter,
	customerName, sortBy string,
) ([]dto.MobileQuestionSummaryResponse, error) {
	rows, err := s.questions.FindAllFiltered(ctx, f, sortBy)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summarize(ctx, rows, customerName)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MobileQuestionSummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, dto.MobileQuestionSummaryResponse{
			QuestionID: sum.QuestionID,
			Customer:   sum.CustomerName,
			Title:      sum.Title,
			Status:     string(sum.Status),
			Type:       string(sum.Type),
			Contents:   sum.Contents,
		})
	}
	return out, nil
}

func (s *QuestionService) applyUpdate(
	ctx context.Context,
	question *model.Question,
	inquiryID *int64,
	file *multipart.FileHeader,
	req dto.QuestionUpdateRequest,
) error {
	fileName := question.FileName
	filePath := question.FilePath

	if req.FileDeleted() {
		fileName = nil
		filePath = nil
	} else if file != nil {
		var err error
		fileName, filePath, err = clients.UploadRef(ctx, s.files, file)
		if err != nil {
			return err
		}
	}

	question.InquiryID = inquiryID
	question.Title = req.Title
	question.Contents = req.Contents
	question.FileName = fileName
	question.FilePath = filePath
	question.Type = req.Type
	if req.Status != "" {
		question.Status = req.Status
	}

	return s.questions.Update(ctx, question)
}

// assertMutable centralizes the edit/delete guards: owner match (optional),
// not answered, not soft-deleted, not locked by a collaboration.
func (s *QuestionService) assertMutable(ctx context.Context, question *model.Question, customerID int64, checkOwner bool) error {
	if checkOwner && question.UserID != customerID {
		return helper.ErrQuestionNotMatched
	}
	if question.Status == model.StatusCompleted {
		return helper.ErrQuestionStatusCompleted
	}
	if !question.IsActivated {
		return helper.ErrQuestionAlreadyDeleted
	}

	col, err := s.collaborations.FindByQuestionID(ctx, question.QuestionID)
	if err != nil {
		return err
	}
	if col != nil {
		return helper.ErrCollaborationStatusReady
	}
	return nil
}

// summarize resolves customer names in one batch call, then applies the
// optional name filter in memory.
func (s *QuestionService) summarize(ctx context.Context, rows []repository.QuestionWithAnswer, customerName string) ([]dto.QuestionSummaryResponse, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	customers, err := s.users.GetCustomersByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Warn("customer batch resolve failed")
		customers = nil
	}

	out := make([]dto.QuestionSummaryResponse, 0, len(rows))
	for _, row := range rows {
		var name *string
		if customer, ok := customers[row.UserID]; ok && customer != nil {
			name = &customer.Name
		}

		if customerName != "" && (name == nil || !contains(*name, customerName)) {
			continue
		}

		out = append(out, dto.QuestionSummaryResponse{
			QuestionID:        row.QuestionID,
			Title:             row.Title,
			Status:            row.Status,
			Type:              row.Type,
			Contents:          row.Contents,
			CustomerName:      name,
			QuestionCreatedAt: row.CreatedAt,
			AnswerCreatedAt:   row.AnswerCreatedAt,
			ManagerID:         row.AnswerManagerID,
			IsActivated:       row.IsActivated,
		})
	}
	return out, nil
}

func (s *QuestionService) toResponse(ctx context.Context, question *model.Question) (*dto.QuestionResponse, error) {
	customer, err := s.users.GetCustomerByID(ctx, question.UserID)
	if err != nil {
		return nil, err
	}

	var name *string
	if customer != nil {
		name = &customer.Name
	}

	var inquiryID *int64
	if question.InquiryID != nil {
		inquiry, err := s.inquiries.GetInquiryByID(ctx, *question.InquiryID)
		if err != nil {
			return nil, err
		}
		if inquiry != nil {
			inquiryID = &inquiry.InquiryID
		}
	}

	var colID *int64
	var colStatus *string
	col, err := s.collaborations.FindByQuestionID(ctx, question.QuestionID)
	if err != nil {
		return nil, err
	}
	if col != nil {
		colID = &col.ColID
		status := string(col.ColStatus)
		colStatus = &status
	}

	return &dto.QuestionResponse{
		InquiryID:    inquiryID,
		UserID:       question.UserID,
		QuestionID:   question.QuestionID,
		CustomerName: name,
		Title:        question.Title,
		Contents:     question.Contents,
		FileName:     question.FileName,
		FilePath:     question.FilePath,
		Status:       question.Status,
		Type:         question.Type,
		CreatedDate:  question.CreatedAt,
		ColID:        colID,
		ColStatus:    colStatus,
		IsActivated:  question.IsActivated,
	}, nil
}

func (s *QuestionService) toMobile(ctx context.Context, question *model.Question) (*dto.MobileQuestionSummaryResponse, error) {
	customer, err := s.users.GetCustomerByID(ctx, question.UserID)
	if err != nil {
		return nil, err
	}

	var name *string
	if customer != nil {
		name = &customer.Name
	}

	var inquiryID *int64
	if question.InquiryID != nil {
		inquiry, err := s.inquiries.GetInquiryByID(ctx, *question.InquiryID)
		if err == nil && inquiry != nil {
			inquiryID = &inquiry.InquiryID
		}
	}

	return &dto.MobileQuestionSummaryResponse{
		InquiryID:  inquiryID,
		QuestionID: question.QuestionID,
		Customer:   name,
		Title:      question.Title,
		Status:     string(question.Status),
		Type:       string(question.Type),
		Contents:   question.Contents,
	}, nil
}

func (s *QuestionService) requireManager(ctx context.Context, principal auth.Principal) (*clients.Manager, error) {
	manager, err := s.users.GetManagerByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, helper.ErrUserNotFound
	}
	return manager, nil
}

func (s *QuestionService) requireCustomer(ctx context.Context, principal auth.Principal) (*clients.Customer, error) {
	customer, err := s.users.GetCustomerByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, helper.ErrUserNotFound
	}
	return customer, nil
}

func (s *QuestionService) requireQuestion(ctx context.Context, questionID int64) (*model.Question, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, helper.ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) requireInquiry(ctx context.Context, inquiryID int64) (*clients.Inquiry, error) {
	inquiry, err := s.inquiries.GetInquiryByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, helper.ErrInquiryNotFound
	}
	return inquiry, nil
}

func matchUser(userID, customerID int64) error {
	if userID != customerID {
		return helper.ErrUserNotMatched
	}
	return nil
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
