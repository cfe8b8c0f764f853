package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"

	"voc_backend/internals/clients"
	"voc_backend/internals/constants"
	"voc_backend/internals/features/collaborations/dto"
	"voc_backend/internals/features/collaborations/model"
	"voc_backend/internals/features/collaborations/repository"
	questionmodel "voc_backend/internals/features/questions/model"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/helpers/lock"
	"voc_backend/internals/middlewares/auth"
)

type CollaborationStore interface {
	FindByID(ctx context.Context, id int64) (*model.Collaboration, error)
	FindByQuestionID(ctx context.Context, questionID int64) (*model.Collaboration, error)
	FindByIDAndQuestionID(ctx context.Context, id, questionID int64) (*model.Collaboration, error)
	Create(ctx context.Context, c *model.Collaboration) error
	Update(ctx context.Context, c *model.Collaboration) error
	FindPage(ctx context.Context, f repository.CollaborationFilter, page helper.PageRequest) ([]model.Collaboration, int64, error)
	MonthlyCounts(ctx context.Context) ([]int64, error)
	MonthlyCountsByManager(ctx context.Context, managerID int64) ([]int64, error)
}

type QuestionStore interface {
	FindByID(ctx context.Context, id int64) (*questionmodel.Question, error)
}

// PagedCollaborations is the listing payload shape.
type PagedCollaborations struct {
	ColListInfo   []dto.CollaborationSummaryResponse `json:"colListInfo"`
	TotalElements int64                              `json:"totalElements"`
	TotalPages    int                                `json:"totalPages"`
}

type CollaborationService struct {
	collaborations CollaborationStore
	questions      QuestionStore
	users          clients.UserClient
	files          clients.FileClient
	locker         lock.Locker
}

func NewCollaborationService(
	collaborations CollaborationStore,
	questions QuestionStore,
	users clients.UserClient,
	files clients.FileClient,
	locker lock.Locker,
) *CollaborationService {
	return &CollaborationService{
		collaborations: collaborations,
		questions:      questions,
		users:          users,
		files:          files,
		locker:         locker,
	}
}

// List returns a page of collaboration summaries. Manager name filters are
// applied after remote resolution, so a filtered page may be short.
func (s *CollaborationService) List(
	ctx context.Context,
	principal auth.Principal,
	f repository.CollaborationFilter,
	reqManagerName, resManagerName string,
	page helper.PageRequest,
) (*PagedCollaborations, error) {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !constants.IsManager(manager.Role) {
		return nil, helper.ErrUnauthorizedUserManager
	}

	rows, total, err := s.collaborations.FindPage(ctx, f, page)
	if err != nil {
		return nil, err
	}

	content, err := s.summarize(ctx, rows, reqManagerName, resManagerName)
	if err != nil {
		return nil, err
	}

	return &PagedCollaborations{
		ColListInfo:   content,
		TotalElements: total,
		TotalPages:    helper.TotalPages(total, page.Size),
	}, nil
}

// GetByID requires the (question, collaboration) pair to match.
func (s *CollaborationService) GetByID(ctx context.Context, principal auth.Principal, questionID, collaborationID int64) (*dto.CollaborationDetailResponse, error) {
	if _, err := s.requireManager(ctx, principal); err != nil {
		return nil, err
	}

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	col, err := s.collaborations.FindByIDAndQuestionID(ctx, collaborationID, question.QuestionID)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, helper.ErrCollaborationNotFound
	}

	return s.toDetail(ctx, col, question)
}

// Create opens a READY collaboration on a question. Creation for a manager
// pair is serialized through a keyed lock so two simultaneous requests
// between the same two managers cannot race; the key is symmetric in the
// pair. The lock is released on every exit path.
func (s *CollaborationService) Create(
	ctx context.Context,
	principal auth.Principal,
	questionID int64,
	file *multipart.FileHeader,
	req dto.CollaborationCreateRequest,
) (*dto.CollaborationResponse, error) {
	ok, err := s.users.ManagerExists(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.ErrUserNotFound
	}

	release, err := s.locker.Acquire(ctx, lock.PairKey(req.ColReqID, req.ColResID))
	if err != nil {
		return nil, err
	}
	defer release()

	question, err := s.requireQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// The loser of a lock race observes the winner's row here.
	existing, err := s.collaborations.FindByQuestionID(ctx, question.QuestionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, helper.ErrCollaborationStatusReady
	}

	reqManager, err := s.users.GetManagerByID(ctx, req.ColReqID)
	if err != nil {
		return nil, err
	}
	if reqManager == nil {
		return nil, helper.ErrReqManagerNotFound
	}

	resManager, err := s.users.GetManagerByID(ctx, req.ColResID)
	if err != nil {
		return nil, err
	}
	if resManager == nil {
		return nil, helper.ErrResManagerNotFound
	}

	fileName, filePath, err := clients.UploadRef(ctx, s.files, file)
	if err != nil {
		return nil, err
	}

	col := &model.Collaboration{
		QuestionID:    question.QuestionID,
		ColRequestID:  reqManager.UserID,
		ColResponseID: resManager.UserID,
		ColStatus:     model.ColStatusReady,
		ColContents:   req.ColContents,
		FileName:      fileName,
		FilePath:      filePath,
	}
	if err := s.collaborations.Create(ctx, col); err != nil {
		return nil, err
	}

	detail, err := s.toDetail(ctx, col, question)
	if err != nil {
		return nil, err
	}
	return &dto.CollaborationResponse{
		ColID:         detail.ColID,
		QuestionID:    detail.QuestionID,
		ColReqManager: detail.ColReqManager,
		ColResManager: detail.ColResManager,
		ColStatus:     detail.ColStatus,
		ColContents:   detail.ColContents,
		FileName:      detail.FileName,
		FilePath:      detail.FilePath,
		VocFileName:   detail.VocFileName,
		VocFilePath:   detail.VocFilePath,
	}, nil
}

// UpdateStatus applies the responder's accept/refuse decision from READY.
func (s *CollaborationService) UpdateStatus(
	ctx context.Context,
	principal auth.Principal,
	collaborationID int64,
	file *multipart.FileHeader,
	req dto.CollaborationDecisionRequest,
) (*dto.CollaborationDetailResponse, error) {
	col, question, err := s.requireMutable(ctx, collaborationID)
	if err != nil {
		return nil, err
	}

	if col.ColStatus == model.ColStatusInProgress {
		return nil, helper.ErrCollaborationStatusInProgress
	}

	ok, err := s.users.ManagerExists(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.ErrUserNotFound
	}

	reqManager, err := s.users.GetManagerByID(ctx, req.ColReqID)
	if err != nil {
		return nil, err
	}
	if reqManager == nil {
		return nil, helper.ErrReqManagerNotFound
	}

	resManager, err := s.users.GetManagerByID(ctx, req.ColResID)
	if err != nil {
		return nil, err
	}
	if resManager == nil {
		return nil, helper.ErrResManagerNotFound
	}

	if col.ColRequestID != reqManager.UserID || col.ColResponseID != resManager.UserID {
		return nil, helper.ErrCollaborationInfoMismatch
	}
	if principal.UserID != col.ColResponseID {
		return nil, helper.ErrResManagerNotMatched
	}

	col.ColReply = req.ColReply
	col.Decide(req.IsAccepted != nil && *req.IsAccepted)

	if file != nil {
		fileName, filePath, err := clients.UploadRef(ctx, s.files, file)
		if err != nil {
			return nil, err
		}
		col.FileName = fileName
		col.FilePath = filePath
	}

	if err := s.collaborations.Update(ctx, col); err != nil {
		return nil, err
	}
	return s.toDetail(ctx, col, question)
}

// Complete transitions the collaboration to its terminal success state. Only
// the responding manager may complete.
func (s *CollaborationService) Complete(ctx context.Context, principal auth.Principal, collaborationID int64) (*dto.CollaborationDetailResponse, error) {
	ok, err := s.users.ManagerExists(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.ErrUserNotFound
	}

	col, question, err := s.requireMutable(ctx, collaborationID)
	if err != nil {
		return nil, err
	}

	if principal.UserID != col.ColResponseID {
		return nil, helper.ErrResManagerNotMatched
	}

	col.ColStatus = model.ColStatusComplete

	if err := s.collaborations.Update(ctx, col); err != nil {
		return nil, err
	}
	return s.toDetail(ctx, col, question)
}

// Modify is the superset edit: contents always, attachment and reply
// conditionally, status only when isAccepted is present. While READY only the
// requester may act; while INPROGRESS only the responder may act.
func (s *CollaborationService) Modify(
	ctx context.Context,
	principal auth.Principal,
	collaborationID int64,
	file *multipart.FileHeader,
	req dto.CollaborationModifyRequest,
) (*dto.CollaborationDetailResponse, error) {
	col, question, err := s.requireMutable(ctx, collaborationID)
	if err != nil {
		return nil, err
	}

	switch col.ColStatus {
	case model.ColStatusReady:
		reqManager, err := s.users.GetManagerByID(ctx, req.ColReqID)
		if err != nil {
			return nil, err
		}
		if reqManager == nil {
			return nil, helper.ErrReqManagerNotFound
		}
		if principal.UserID != reqManager.UserID {
			return nil, helper.ErrReqManagerNotMatched
		}
	case model.ColStatusInProgress:
		resManager, err := s.users.GetManagerByID(ctx, req.ColResID)
		if err != nil {
			return nil, err
		}
		if resManager == nil {
			return nil, helper.ErrResManagerNotFound
		}
		if principal.UserID != resManager.UserID {
			return nil, helper.ErrResManagerNotMatched
		}
	}

	col.ColContents = req.ColContents

	fileName := col.FileName
	filePath := col.FilePath

	if req.FileDeleted() {
		fileName = nil
		filePath = nil
	} else if file != nil {
		fileName, filePath, err = clients.UploadRef(ctx, s.files, file)
		if err != nil {
			return nil, err
		}
	}
	col.FileName = fileName
	col.FilePath = filePath

	if req.IsAccepted != nil {
		col.Decide(*req.IsAccepted)
	}
	if req.ColReply != nil {
		col.ColReply = req.ColReply
	}

	if err := s.collaborations.Update(ctx, col); err != nil {
		return nil, err
	}
	return s.toDetail(ctx, col, question)
}

// MonthlyCounts returns the dashboard series: all collaborations and those
// where the caller is requester or responder.
func (s *CollaborationService) MonthlyCounts(ctx context.Context, principal auth.Principal) (*dto.MonthlyCounts, error) {
	manager, err := s.requireManager(ctx, principal)
	if err != nil {
		return nil, err
	}

	total, err := s.collaborations.MonthlyCounts(ctx)
	if err != nil {
		return nil, err
	}
	own, err := s.collaborations.MonthlyCountsByManager(ctx, manager.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyCounts{Total: total, Manager: own}, nil
}

// requireMutable reloads the collaboration and its question and rejects
// every terminal state: COMPLETE, REFUSE, and an already answered question.
func (s *CollaborationService) requireMutable(ctx context.Context, collaborationID int64) (*model.Collaboration, *questionmodel.Question, error) {
	col, err := s.collaborations.FindByID(ctx, collaborationID)
	if err != nil {
		return nil, nil, err
	}
	if col == nil {
		return nil, nil, helper.ErrCollaborationNotFound
	}

	if col.ColStatus == model.ColStatusComplete {
		return nil, nil, helper.ErrCollaborationStatusCompleted
	}
	if col.ColStatus == model.ColStatusRefuse {
		return nil, nil, helper.ErrCollaborationStatusRefused
	}

	question, err := s.requireQuestion(ctx, col.QuestionID)
	if err != nil {
		return nil, nil, err
	}
	if question.Status == questionmodel.StatusCompleted {
		return nil, nil, helper.ErrQuestionStatusCompleted
	}

	return col, question, nil
}

func (s *CollaborationService) summarize(ctx context.Context, rows []model.Collaboration, reqManagerName, resManagerName string) ([]dto.CollaborationSummaryResponse, error) {
	ids := make([]int64, 0, len(rows)*2)
	for _, row := range rows {
		ids = append(ids, row.ColRequestID, row.ColResponseID)
	}

	managers, err := s.users.GetManagersByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Warn("manager batch resolve failed")
		managers = nil
	}

	nameOf := func(id int64) (*int64, *string) {
		if m, ok := managers[id]; ok && m != nil {
			return &m.UserID, &m.Name
		}
		return nil, nil
	}

	out := make([]dto.CollaborationSummaryResponse, 0, len(rows))
	for _, row := range rows {
		reqID, reqName := nameOf(row.ColRequestID)
		resID, resName := nameOf(row.ColResponseID)

		if reqManagerName != "" && !nameMatches(reqName, reqManagerName) {
			continue
		}
		if resManagerName != "" && !nameMatches(resName, resManagerName) {
			continue
		}

		out = append(out, dto.CollaborationSummaryResponse{
			ColID:         row.ColID,
			QuestionID:    row.QuestionID,
			ColReqID:      reqID,
			ColReqManager: reqName,
			ColResID:      resID,
			ColResManager: resName,
			ColStatus:     row.ColStatus,
			ColContents:   row.ColContents,
			CreatedDate:   row.CreatedAt,
		})
	}
	return out, nil
}

func (s *CollaborationService) toDetail(ctx context.Context, col *model.Collaboration, question *questionmodel.Question) (*dto.CollaborationDetailResponse, error) {
	reqManager, err := s.users.GetManagerByID(ctx, col.ColRequestID)
	if err != nil {
		return nil, err
	}
	resManager, err := s.users.GetManagerByID(ctx, col.ColResponseID)
	if err != nil {
		return nil, err
	}

	return &dto.CollaborationDetailResponse{
		ColID:         col.ColID,
		QuestionID:    col.QuestionID,
		ColReqManager: dto.ManagerResponseFrom(reqManager),
		ColResManager: dto.ManagerResponseFrom(resManager),
		ColStatus:     col.ColStatus,
		ColContents:   col.ColContents,
		ColReply:      col.ColReply,
		FileName:      col.FileName,
		FilePath:      col.FilePath,
		VocFileName:   question.FileName,
		VocFilePath:   question.FilePath,
	}, nil
}

func (s *CollaborationService) requireManager(ctx context.Context, principal auth.Principal) (*clients.Manager, error) {
	manager, err := s.users.GetManagerByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, helper.ErrUserNotFound
	}
	return manager, nil
}

func (s *CollaborationService) requireQuestion(ctx context.Context, questionID int64) (*questionmodel.Question, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, helper.ErrQuestionNotFound
	}
	return question, nil
}

func nameMatches(name *string, filter string) bool {
	return name != nil && strings.Contains(strings.ToLower(*name), strings.ToLower(filter))
}
