package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"voc_backend/internals/features/questions/model"
	helper "voc_backend/internals/helpers"
)

// QuestionFilter collects the optional list predicates. Nil and empty values
// are skipped. CustomerName is deliberately absent: name filtering happens in
// the service after remote resolution.
type QuestionFilter struct {
	UserID      *int64
	Status      *model.QuestionStatus
	Type        *model.QuestionType
	Title       string
	QuestionID  *int64
	IsActivated *bool
	ManagerID   *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

// QuestionWithAnswer is a question row joined with its answer's creation
// time and author, when one exists.
type QuestionWithAnswer struct {
	model.Question
	AnswerCreatedAt *time.Time `gorm:"column:answer_created_at"`
	AnswerManagerID *int64     `gorm:"column:answer_manager_id"`
}

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// FindByID returns (nil, nil) when no row matches.
func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := r.db.WithContext(ctx).
		Where("question_id = ?", id).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindActiveByID(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := r.db.WithContext(ctx).
		Where("question_id = ? AND is_activated = ?", id, true).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindActive(ctx context.Context) ([]model.Question, error) {
	var qs []model.Question
	err := r.db.WithContext(ctx).
		Where("is_activated = ?", true).
		Order("created_at DESC, question_id DESC").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.db.WithContext(ctx).Save(q).Error
}

// FindPage returns one page of questions joined with answer metadata plus the
// total row count over the same predicates.
func (r *QuestionRepository) FindPage(ctx context.Context, f QuestionFilter, page helper.PageRequest) ([]QuestionWithAnswer, int64, error) {
	order, err := questionOrder(page.SortBy)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []QuestionWithAnswer
	err = r.filtered(ctx, f).
		Select("questions.*, answers.created_at AS answer_created_at, answers.manager_id AS answer_manager_id").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindAllFiltered is the unpaged variant used by the mobile search endpoint.
func (r *QuestionRepository) FindAllFiltered(ctx context.Context, f QuestionFilter, sortBy string) ([]QuestionWithAnswer, error) {
	order, err := questionOrder(sortBy)
	if err != nil {
		return nil, err
	}

	var rows []QuestionWithAnswer
	err = r.filtered(ctx, f).
		Select("questions.*, answers.created_at AS answer_created_at, answers.manager_id AS answer_manager_id").
		Order(order).
		Find(&rows).Error
	return rows, err
}

func (r *QuestionRepository) filtered(ctx context.Context, f QuestionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&model.Question{}).
		Joins("LEFT JOIN answers ON answers.question_id = questions.question_id")

	if f.UserID != nil {
		q = q.Where("questions.user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("questions.status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("questions.type = ?", *f.Type)
	}
	if f.Title != "" {
		q = q.Where("questions.title LIKE ?", "%"+f.Title+"%")
	}
	if f.QuestionID != nil {
		q = q.Where("questions.question_id = ?", *f.QuestionID)
	}
	if f.IsActivated != nil {
		q = q.Where("questions.is_activated = ?", *f.IsActivated)
	}
	if f.ManagerID != nil {
		q = q.Where("answers.manager_id = ?", *f.ManagerID)
	}
	if f.StartDate != nil {
		q = q.Where("CAST(questions.created_at AS DATE) >= ?", f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		q = q.Where("CAST(questions.created_at AS DATE) <= ?", f.EndDate.Format("2006-01-02"))
	}
	return q
}

func questionOrder(sortBy string) (string, error) {
	switch sortBy {
	case helper.SortLatest:
		return "questions.created_at DESC, questions.question_id DESC", nil
	case helper.SortOldest:
		return "questions.created_at ASC, questions.question_id ASC", nil
	case helper.SortType:
		return "questions.type ASC, questions.created_at DESC", nil
	default:
		return "", helper.ErrInvalidOrderCondition
	}
}
