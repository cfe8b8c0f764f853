package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voc_backend/internals/clients"
	colmodel "voc_backend/internals/features/collaborations/model"
	"voc_backend/internals/features/questions/dto"
	"voc_backend/internals/features/questions/model"
	"voc_backend/internals/features/questions/repository"
	helper "voc_backend/internals/helpers"
	"voc_backend/internals/middlewares/auth"
)

type fakeQuestionStore struct {
	byID       map[int64]*model.Question
	page       []repository.QuestionWithAnswer
	total      int64
	lastFilter repository.QuestionFilter
	updated    *model.Question
	created    *model.Question
}

func (f *fakeQuestionStore) FindByID(_ context.Context, id int64) (*model.Question, error) {
	return f.byID[id], nil
}

func (f *fakeQuestionStore) FindActiveByID(_ context.Context, id int64) (*model.Question, error) {
	q := f.byID[id]
	if q == nil || !q.IsActivated {
		return nil, nil
	}
	return q, nil
}

func (f *fakeQuestionStore) FindActive(_ context.Context) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.byID {
		if q.IsActivated {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) FindPage(_ context.Context, filter repository.QuestionFilter, _ helper.PageRequest) ([]repository.QuestionWithAnswer, int64, error) {
	f.lastFilter = filter
	return f.page, f.total, nil
}

func (f *fakeQuestionStore) FindAllFiltered(_ context.Context, filter repository.QuestionFilter, _ string) ([]repository.QuestionWithAnswer, error) {
	f.lastFilter = filter
	return f.page, nil
}

func (f *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	q.QuestionID = 100
	f.created = q
	return nil
}

func (f *fakeQuestionStore) Update(_ context.Context, q *model.Question) error {
	f.updated = q
	return nil
}

type fakeCollaborationStore struct {
	byQuestion map[int64]*colmodel.Collaboration
}

func (f *fakeCollaborationStore) FindByQuestionID(_ context.Context, questionID int64) (*colmodel.Collaboration, error) {
	return f.byQuestion[questionID], nil
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

type fakeInquiryClient struct {
	inquiries map[int64]*clients.Inquiry
}

func (f *fakeInquiryClient) GetInquiryByID(_ context.Context, id int64) (*clients.Inquiry, error) {
	return f.inquiries[id], nil
}

type fakeFileClient struct{}

func (fakeFileClient) Upload(context.Context, *multipart.FileHeader) (*clients.FileInfo, error) {
	return &clients.FileInfo{OriginName: "report.pdf", StoredFilePath: "/files/report.pdf"}, nil
}

func newFixture() (*QuestionService, *fakeQuestionStore, *fakeCollaborationStore, *fakeUserClient) {
	questions := &fakeQuestionStore{byID: map[int64]*model.Question{}}
	collaborations := &fakeCollaborationStore{byQuestion: map[int64]*colmodel.Collaboration{}}
	users := &fakeUserClient{
		customers: map[int64]*clients.Customer{
			5: {UserID: 5, Name: "Alice Kim", Role: "CUSTOMER"},
			6: {UserID: 6, Name: "Bob Han", Role: "CUSTOMER"},
		},
		managers: map[int64]*clients.Manager{
			9: {UserID: 9, Name: "Manager Lee", Role: "SALES"},
		},
	}
	inquiries := &fakeInquiryClient{inquiries: map[int64]*clients.Inquiry{}}

	svc := NewQuestionService(questions, collaborations, users, inquiries, fakeFileClient{})
	return svc, questions, collaborations, users
}

func activeQuestion(id, userID int64) *model.Question {
	return &model.Question{
		QuestionID:  id,
		UserID:      userID,
		Title:       "defect in delivered coil",
		Contents:    "surface scratches on the last shipment",
		Status:      model.StatusReady,
		Type:        model.TypeOther,
		IsActivated: true,
	}
}

func updateReq() dto.QuestionUpdateRequest {
	return dto.QuestionUpdateRequest{
		Title:    "updated title",
		Contents: "updated contents",
		Type:     model.TypeOther,
	}
}

func TestUpdateGeneralQuestionOwnerMismatch(t *testing.T) {
	svc, questions, _, _ := newFixture()
	questions.byID[1] = activeQuestion(1, 6)

	_, err := svc.UpdateGeneralQuestion(context.Background(), auth.Principal{UserID: 5}, 5, 1, nil, updateReq())
	assert.ErrorIs(t, err, helper.ErrQuestionNotMatched)
}

func TestUpdateGeneralQuestionAlreadyAnswered(t *testing.T) {
	svc, questions, _, _ := newFixture()
	q := activeQuestion(1, 5)
	q.Status = model.StatusCompleted
	questions.byID[1] = q

	_, err := svc.UpdateGeneralQuestion(context.Background(), auth.Principal{UserID: 5}, 5, 1, nil, updateReq())
	assert.ErrorIs(t, err, helper.ErrQuestionStatusCompleted)
}

func TestUpdateGeneralQuestionAlreadyDeleted(t *testing.T) {
	svc, questions, _, _ := newFixture()
	q := activeQuestion(1, 5)
	q.IsActivated = false
	questions.byID[1] = q

	_, err := svc.UpdateGeneralQuestion(context.Background(), auth.Principal{UserID: 5}, 5, 1, nil, updateReq())
	assert.ErrorIs(t, err, helper.ErrQuestionAlreadyDeleted)
}

func TestUpdateGeneralQuestionLockedByCollaboration(t *testing.T) {
	svc, questions, collaborations, _ := newFixture()
	questions.byID[1] = activeQuestion(1, 5)
	collaborations.byQuestion[1] = &colmodel.Collaboration{ColID: 11, QuestionID: 1, ColStatus: colmodel.ColStatusReady}

	_, err := svc.UpdateGeneralQuestion(context.Background(), auth.Principal{UserID: 5}, 5, 1, nil, updateReq())
	assert.ErrorIs(t, err, helper.ErrCollaborationStatusReady)
}

func TestUpdateGeneralQuestionAppliesFields(t *testing.T) {
	svc, questions, _, _ := newFixture()
	questions.byID[1] = activeQuestion(1, 5)

	resp, err := svc.UpdateGeneralQuestion(context.Background(), auth.Principal{UserID: 5}, 5, 1, nil, updateReq())
	require.NoError(t, err)

	assert.Equal(t, "updated title", resp.Title)
	assert.Equal(t, "updated contents", resp.Contents)
	assert.Equal(t, model.StatusReady, resp.Status)
	require.NotNil(t, resp.CustomerName)
	assert.Equal(t, "Alice Kim", *resp.CustomerName)
	require.NotNil(t, questions.updated)
	assert.Equal(t, "updated title", questions.updated.Title)
}

func TestDeleteForCustomerSoftDeletes(t *testing.T) {
	svc, questions, _, _ := newFixture()
	questions.byID[1] = activeQuestion(1, 5)

	err := svc.DeleteForCustomer(context.Background(), auth.Principal{UserID: 5}, 5, 1)
	require.NoError(t, err)
	require.NotNil(t, questions.updated)
	assert.False(t, questions.updated.IsActivated)
}

func TestListForCustomerRejectsForeignListing(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.ListForCustomer(context.Background(), auth.Principal{UserID: 5}, 6, repository.QuestionFilter{}, helper.PageRequest{Size: 15})
	assert.ErrorIs(t, err, helper.ErrUserNotMatched)
}

func TestListForCustomerScopesToOwnActiveRows(t *testing.T) {
	svc, questions, _, _ := newFixture()

	_, err := svc.ListForCustomer(context.Background(), auth.Principal{UserID: 5}, 5, repository.QuestionFilter{}, helper.PageRequest{Size: 15})
	require.NoError(t, err)

	require.NotNil(t, questions.lastFilter.UserID)
	assert.Equal(t, int64(5), *questions.lastFilter.UserID)
	require.NotNil(t, questions.lastFilter.IsActivated)
	assert.True(t, *questions.lastFilter.IsActivated)
}

func TestListForManagerNameFilterShortensPage(t *testing.T) {
	svc, questions, _, _ := newFixture()
	questions.page = []repository.QuestionWithAnswer{
		{Question: *activeQuestion(1, 5)},
		{Question: *activeQuestion(2, 6)},
		{Question: *activeQuestion(3, 5)},
	}
	questions.total = 3

	result, err := svc.ListForManager(context.Background(), auth.Principal{UserID: 9}, repository.QuestionFilter{}, "alice", helper.PageRequest{Size: 15})
	require.NoError(t, err)

	// Name filtering happens after the DB page, so the count stays DB-side.
	assert.Len(t, result.QuestionsInfo, 2)
	assert.Equal(t, int64(3), result.TotalElements)
	for _, item := range result.QuestionsInfo {
		require.NotNil(t, item.CustomerName)
		assert.Equal(t, "Alice Kim", *item.CustomerName)
	}
}

func TestGetByIDForCustomerForeignQuestion(t *testing.T) {
	svc, questions, _, _ := newFixture()
	questions.byID[1] = activeQuestion(1, 6)

	_, err := svc.GetByIDForCustomer(context.Background(), auth.Principal{UserID: 5}, 5, 1)
	assert.ErrorIs(t, err, helper.ErrUserNotMatched)
}

func TestCreateGeneralDefaultsToReady(t *testing.T) {
	svc, questions, _, _ := newFixture()

	resp, err := svc.CreateGeneral(context.Background(), auth.Principal{UserID: 5}, 5, nil, dto.QuestionCreateRequest{
		Title:    "packaging inquiry",
		Contents: "is vapor barrier packaging available",
		Type:     model.TypeSiteInquiry,
	})
	require.NoError(t, err)

	require.NotNil(t, questions.created)
	assert.Equal(t, model.StatusReady, questions.created.Status)
	assert.True(t, questions.created.IsActivated)
	assert.Equal(t, model.StatusReady, resp.Status)
	assert.Nil(t, resp.InquiryID)
}

func TestCreateFromInquiryRejectsForeignInquiry(t *testing.T) {
	svc, _, _, _ := newFixture()
	inquiries := &fakeInquiryClient{inquiries: map[int64]*clients.Inquiry{
		40: {InquiryID: 40, CustomerID: 6},
	}}
	svc.inquiries = inquiries

	_, err := svc.CreateFromInquiry(context.Background(), auth.Principal{UserID: 5}, 5, 40, nil, dto.QuestionCreateRequest{
		Title:    "price inquiry",
		Contents: "quote for order 40",
		Type:     model.TypeOrderInquiry,
	})
	assert.ErrorIs(t, err, helper.ErrInquiryNotMatched)
}

func TestMobileGetMissingQuestion(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.MobileGet(context.Background(), 404)
	assert.ErrorIs(t, err, helper.ErrQuestionNotFound)
}
