package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	helper "voc_backend/internals/helpers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestFindByIDAndQuestionIDMissingReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCollaborationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "collaborations"`).
		WillReturnRows(sqlmock.NewRows([]string{"col_id"}))

	col, err := repo.FindByIDAndQuestionID(context.Background(), 30, 2)
	require.NoError(t, err)
	assert.Nil(t, col)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPageRejectsTypeSort(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewCollaborationRepository(db)

	// TYPE ordering only exists for questions.
	_, _, err := repo.FindPage(context.Background(), CollaborationFilter{}, helper.PageRequest{Size: 15, SortBy: helper.SortType})
	assert.ErrorIs(t, err, helper.ErrInvalidOrderCondition)
}

func TestCollaborationOrderKeys(t *testing.T) {
	order, err := collaborationOrder(helper.SortLatest)
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC, col_id DESC", order)

	order, err = collaborationOrder(helper.SortOldest)
	require.NoError(t, err)
	assert.Equal(t, "created_at ASC, col_id ASC", order)
}
