package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"voc_backend/internals/features/answers/model"
	questionmodel "voc_backend/internals/features/questions/model"
)

type AnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

func (r *AnswerRepository) FindAll(ctx context.Context) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Order("created_at DESC, answer_id DESC").
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, answer_id DESC").
		Find(&answers).Error
	return answers, err
}

// FindByQuestionID returns (nil, nil) when the question has no answer.
func (r *AnswerRepository) FindByQuestionID(ctx context.Context, questionID int64) (*model.Answer, error) {
	var a model.Answer
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAndCompleteQuestion persists the answer and flips the question to
// COMPLETED inside one transaction.
func (r *AnswerRepository) CreateAndCompleteQuestion(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}
		return tx.Model(&questionmodel.Question{}).
			Where("question_id = ?", answer.QuestionID).
			Update("status", questionmodel.StatusCompleted).Error
	})
}

func (r *AnswerRepository) Update(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

const monthlyCountsSQL = `
WITH months AS (
    SELECT generate_series(1, 12) AS month
),
counts AS (
    SELECT EXTRACT(MONTH FROM a.created_at) AS month,
           COUNT(*) AS answer_count
    FROM answers a
    GROUP BY EXTRACT(MONTH FROM a.created_at)
)
SELECT COALESCE(c.answer_count, 0)
FROM months m
LEFT JOIN counts c ON m.month = c.month
ORDER BY m.month`

const monthlyCountsByManagerSQL = `
WITH months AS (
    SELECT generate_series(1, 12) AS month
),
counts AS (
    SELECT EXTRACT(MONTH FROM a.created_at) AS month,
           COUNT(*) AS answer_count
    FROM answers a
    WHERE a.manager_id = ?
    GROUP BY EXTRACT(MONTH FROM a.created_at)
)
SELECT COALESCE(c.answer_count, 0)
FROM months m
LEFT JOIN counts c ON m.month = c.month
ORDER BY m.month`

// MonthlyCounts returns answer counts per calendar month, zero-filled to 12.
func (r *AnswerRepository) MonthlyCounts(ctx context.Context) ([]int64, error) {
	var counts []int64
	err := r.db.WithContext(ctx).Raw(monthlyCountsSQL).Scan(&counts).Error
	return counts, err
}

func (r *AnswerRepository) MonthlyCountsByManager(ctx context.Context, managerID int64) ([]int64, error) {
	var counts []int64
	err := r.db.WithContext(ctx).Raw(monthlyCountsByManagerSQL, managerID).Scan(&counts).Error
	return counts, err
}
