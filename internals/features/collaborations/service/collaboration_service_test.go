package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voc_backend/internals/clients"
	"voc_backend/internals/features/collaborations/dto"
	"voc_backend/internals/features/collaborations/model"
	"voc_backend/internals/features/collaborations/repository"
	questionmodel "voc_backend/internals/features/questions/model"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/helpers/lock"
	"voc_backend/internals/middlewares/auth"
)

type fakeCollaborationStore struct {
	byID       map[int64]*model.Collaboration
	byQuestion map[int64]*model.Collaboration
	created    *model.Collaboration
	updated    *model.Collaboration
	page       []model.Collaboration
	total      int64
}

func (f *fakeCollaborationStore) FindByID(_ context.Context, id int64) (*model.Collaboration, error) {
	return f.byID[id], nil
}

func (f *fakeCollaborationStore) FindByQuestionID(_ context.Context, questionID int64) (*model.Collaboration, error) {
	return f.byQuestion[questionID], nil
}

func (f *fakeCollaborationStore) FindByIDAndQuestionID(_ context.Context, id, questionID int64) (*model.Collaboration, error) {
	col := f.byID[id]
	if col == nil || col.QuestionID != questionID {
		return nil, nil
	}
	return col, nil
}

func (f *fakeCollaborationStore) Create(_ context.Context, c *model.Collaboration) error {
	c.ColID = 30
	f.created = c
	return nil
}

func (f *fakeCollaborationStore) Update(_ context.Context, c *model.Collaboration) error {
	f.updated = c
	return nil
}

func (f *fakeCollaborationStore) FindPage(_ context.Context, _ repository.CollaborationFilter, _ helper.PageRequest) ([]model.Collaboration, int64, error) {
	return f.page, f.total, nil
}

func (f *fakeCollaborationStore) MonthlyCounts(_ context.Context) ([]int64, error) {
	return []int64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4}, nil
}

func (f *fakeCollaborationStore) MonthlyCountsByManager(_ context.Context, _ int64) ([]int64, error) {
	return []int64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, nil
}

type fakeQuestionStore struct {
	byID map[int64]*questionmodel.Question
}

func (f *fakeQuestionStore) FindByID(_ context.Context, id int64) (*questionmodel.Question, error) {
	return f.byID[id], nil
}

type fakeUserClient struct {
	customers map[int64]*clients.Customer
	managers  map[int64]*clients.Manager
}

func (f *fakeUserClient) ParseToken(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeUserClient) GetCustomerByID(_ context.Context, id int64) (*clients.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeUserClient) GetManagerByID(_ context.Context, id int64) (*clients.Manager, error) {
	return f.managers[id], nil
}

func (f *fakeUserClient) GetManagersByIDs(_ context.Context, ids []int64) (map[int64]*clients.Manager, error) {
	out := make(map[int64]*clients.Manager)
	for _, id := range ids {
		if m := f.managers[id]; m != nil {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeUserClient) GetCustomersByIDs(_ context.Context, ids []int64) (map[int64]*clients.Customer, error) {
	out := make(map[int64]*clients.Customer)
	for _, id := range ids {
		if c := f.customers[id]; c != nil {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeUserClient) ManagerExists(_ context.Context, id int64) (bool, error) {
	return f.managers[id] != nil, nil
}

func (f *fakeUserClient) CustomerExists(_ context.Context, id int64) (bool, error) {
	return f.customers[id] != nil, nil
}

type fakeFileClient struct{}

func (fakeFileClient) Upload(context.Context, *multipart.FileHeader) (*clients.FileInfo, error) {
	return &clients.FileInfo{OriginName: "notes.pdf", StoredFilePath: "/files/notes.pdf"}, nil
}

type fakeLocker struct {
	keys     []string
	released int
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (func(), error) {
	f.keys = append(f.keys, key)
	return func() { f.released++ }, nil
}

func newFixture() (*CollaborationService, *fakeCollaborationStore, *fakeQuestionStore, *fakeLocker) {
	collaborations := &fakeCollaborationStore{
		byID:       map[int64]*model.Collaboration{},
		byQuestion: map[int64]*model.Collaboration{},
	}
	questions := &fakeQuestionStore{byID: map[int64]*questionmodel.Question{}}
	users := &fakeUserClient{
		managers: map[int64]*clients.Manager{
			9:  {UserID: 9, Name: "Manager Lee", Department: "Quality", Role: "QUALITY"},
			10: {UserID: 10, Name: "Manager Park", Department: "Sales", Role: "SALES"},
		},
	}
	locker := &fakeLocker{}

	svc := NewCollaborationService(collaborations, questions, users, fakeFileClient{}, locker)
	return svc, collaborations, questions, locker
}

func readyQuestion(id int64) *questionmodel.Question {
	return &questionmodel.Question{
		QuestionID:  id,
		UserID:      5,
		Title:       "coil surface defect",
		Contents:    "scratches on the last shipment",
		Status:      questionmodel.StatusReady,
		Type:        questionmodel.TypeOther,
		IsActivated: true,
	}
}

func storedCollaboration(id, questionID int64, status model.ColStatus) *model.Collaboration {
	return &model.Collaboration{
		ColID:         id,
		QuestionID:    questionID,
		ColRequestID:  10,
		ColResponseID: 9,
		ColStatus:     status,
		ColContents:   "please check the quality records",
	}
}

func createReq() dto.CollaborationCreateRequest {
	return dto.CollaborationCreateRequest{
		ColReqID:    10,
		ColResID:    9,
		ColContents: "please check the quality records",
	}
}

func decisionReq(accepted bool) dto.CollaborationDecisionRequest {
	reply := "taking it over"
	return dto.CollaborationDecisionRequest{
		ColReqID:   10,
		ColResID:   9,
		IsAccepted: &accepted,
		ColReply:   &reply,
	}
}

func TestCreateAcquiresPairLock(t *testing.T) {
	svc, collaborations, questions, locker := newFixture()
	questions.byID[1] = readyQuestion(1)

	resp, err := svc.Create(context.Background(), auth.Principal{UserID: 10}, 1, nil, createReq())
	require.NoError(t, err)

	require.Len(t, locker.keys, 1)
	assert.Equal(t, lock.PairKey(9, 10), locker.keys[0])
	assert.Equal(t, 1, locker.released)

	require.NotNil(t, collaborations.created)
	assert.Equal(t, model.ColStatusReady, collaborations.created.ColStatus)
	assert.Equal(t, int64(10), collaborations.created.ColRequestID)
	assert.Equal(t, int64(9), collaborations.created.ColResponseID)
	assert.Equal(t, model.ColStatusReady, resp.ColStatus)
	require.NotNil(t, resp.ColReqManager)
	assert.Equal(t, "Manager Park", resp.ColReqManager.Name)
}

func TestCreateQuestionAlreadyTaken(t *testing.T) {
	svc, collaborations, questions, locker := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byQuestion[1] = storedCollaboration(30, 1, model.ColStatusReady)

	_, err := svc.Create(context.Background(), auth.Principal{UserID: 10}, 1, nil, createReq())
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusReady)
	assert.Equal(t, 1, locker.released)
}

func TestCreateUnknownResponder(t *testing.T) {
	svc, _, questions, locker := newFixture()
	questions.byID[1] = readyQuestion(1)

	req := createReq()
	req.ColResID = 404
	_, err := svc.Create(context.Background(), auth.Principal{UserID: 10}, 1, nil, req)
	assert.ErrorIs(t, err, helper.ErrResManagerNotFound)
	assert.Equal(t, 1, locker.released)
}

func TestUpdateStatusAccept(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	resp, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	require.NoError(t, err)

	require.NotNil(t, collaborations.updated)
	assert.Equal(t, model.ColStatusInProgress, collaborations.updated.ColStatus)
	require.NotNil(t, collaborations.updated.ColReply)
	assert.Equal(t, "taking it over", *collaborations.updated.ColReply)
	assert.Equal(t, model.ColStatusInProgress, resp.ColStatus)
}

func TestUpdateStatusDecline(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(false))
	require.NoError(t, err)
	assert.Equal(t, model.ColStatusRefuse, collaborations.updated.ColStatus)
}

func TestUpdateStatusAlreadyInProgress(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusInProgress)

	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusInProgress)
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)

	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusComplete)
	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusCompleted)

	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusRefuse)
	_, err = svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusRefused)
}

func TestUpdateStatusQuestionAnswered(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	q := readyQuestion(1)
	q.Status = questionmodel.StatusCompleted
	questions.byID[1] = q
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrQuestionStatusCompleted)
}

func TestUpdateStatusPairMismatch(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	col := storedCollaboration(30, 1, model.ColStatusReady)
	col.ColRequestID = 9
	col.ColResponseID = 10
	collaborations.byID[30] = col

	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 9}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrCollaborationInfoMismatch)
}

func TestUpdateStatusByRequester(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	_, err := svc.UpdateStatus(context.Background(), auth.Principal{UserID: 10}, 30, nil, decisionReq(true))
	assert.ErrorIs(t, err, helper.ErrResManagerNotMatched)
}

func TestCompleteByResponder(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusInProgress)

	resp, err := svc.Complete(context.Background(), auth.Principal{UserID: 9}, 30)
	require.NoError(t, err)
	assert.Equal(t, model.ColStatusComplete, collaborations.updated.ColStatus)
	assert.Equal(t, model.ColStatusComplete, resp.ColStatus)
}

func TestCompleteByRequester(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusInProgress)

	_, err := svc.Complete(context.Background(), auth.Principal{UserID: 10}, 30)
	assert.ErrorIs(t, err, helper.ErrResManagerNotMatched)
}

func TestCompleteTerminal(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusRefuse)

	_, err := svc.Complete(context.Background(), auth.Principal{UserID: 9}, 30)
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusRefused)
}

func TestModifyReadyOnlyRequester(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	req := dto.CollaborationModifyRequest{ColReqID: 10, ColResID: 9, ColContents: "amended request"}

	_, err := svc.Modify(context.Background(), auth.Principal{UserID: 9}, 30, nil, req)
	assert.ErrorIs(t, err, helper.ErrReqManagerNotMatched)

	resp, err := svc.Modify(context.Background(), auth.Principal{UserID: 10}, 30, nil, req)
	require.NoError(t, err)
	assert.Equal(t, "amended request", collaborations.updated.ColContents)
	assert.Equal(t, model.ColStatusReady, resp.ColStatus)
}

func TestModifyInProgressOnlyResponder(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusInProgress)

	reply := "interim findings attached"
	req := dto.CollaborationModifyRequest{ColReqID: 10, ColResID: 9, ColContents: "amended", ColReply: &reply}

	_, err := svc.Modify(context.Background(), auth.Principal{UserID: 10}, 30, nil, req)
	assert.ErrorIs(t, err, helper.ErrResManagerNotMatched)

	_, err = svc.Modify(context.Background(), auth.Principal{UserID: 9}, 30, nil, req)
	require.NoError(t, err)
	require.NotNil(t, collaborations.updated.ColReply)
	assert.Equal(t, reply, *collaborations.updated.ColReply)
}

func TestModifyDropsAttachmentOnDelete(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	col := storedCollaboration(30, 1, model.ColStatusReady)
	name, path := "old.pdf", "/files/old.pdf"
	col.FileName, col.FilePath = &name, &path
	collaborations.byID[30] = col

	deleted := true
	req := dto.CollaborationModifyRequest{ColReqID: 10, ColResID: 9, ColContents: "amended", IsFileDeleted: &deleted}

	_, err := svc.Modify(context.Background(), auth.Principal{UserID: 10}, 30, nil, req)
	require.NoError(t, err)
	assert.Nil(t, collaborations.updated.FileName)
	assert.Nil(t, collaborations.updated.FilePath)
}

func TestGetByIDPairMismatch(t *testing.T) {
	svc, collaborations, questions, _ := newFixture()
	questions.byID[1] = readyQuestion(1)
	questions.byID[2] = readyQuestion(2)
	collaborations.byID[30] = storedCollaboration(30, 1, model.ColStatusReady)

	_, err := svc.GetByID(context.Background(), auth.Principal{UserID: 9}, 2, 30)
	assert.ErrorIs(t, err, helper.ErrCollaborationNotFound)
}

func TestListRejectsCustomerRole(t *testing.T) {
	svc, _, _, _ := newFixture()
	users := svc.users.(*fakeUserClient)
	users.managers[7] = &clients.Manager{UserID: 7, Name: "Pending User", Role: "CUSTOMER"}

	_, err := svc.List(context.Background(), auth.Principal{UserID: 7}, repository.CollaborationFilter{}, "", "", helper.PageRequest{Size: 15})
	assert.ErrorIs(t, err, helper.ErrUnauthorizedUserManager)
}

func TestListNameFilterShortensPage(t *testing.T) {
	svc, collaborations, _, _ := newFixture()
	first := storedCollaboration(30, 1, model.ColStatusReady)
	second := storedCollaboration(31, 2, model.ColStatusReady)
	second.ColRequestID = 9
	second.ColResponseID = 10
	collaborations.page = []model.Collaboration{*first, *second}
	collaborations.total = 2

	result, err := svc.List(context.Background(), auth.Principal{UserID: 9}, repository.CollaborationFilter{}, "park", "", helper.PageRequest{Size: 15})
	require.NoError(t, err)

	require.Len(t, result.ColListInfo, 1)
	assert.Equal(t, int64(30), result.ColListInfo[0].ColID)
	assert.Equal(t, int64(2), result.TotalElements)
}

func TestMonthlyCounts(t *testing.T) {
	svc, _, _, _ := newFixture()

	counts, err := svc.MonthlyCounts(context.Background(), auth.Principal{UserID: 9})
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total[11])
	assert.Equal(t, int64(1), counts.Manager[11])
}
