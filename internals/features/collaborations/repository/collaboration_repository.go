package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"voc_backend/internals/features/collaborations/model"
	helper "voc_backend/internals/helpers"
)

// CollaborationFilter collects optional list predicates. Manager name
// filtering happens in the service after remote resolution.
type CollaborationFilter struct {
	ColID     *int64
	ColStatus *model.ColStatus
	ColReqID  *int64
	ColResID  *int64
	StartDate *time.Time
	EndDate   *time.Time
}

type CollaborationRepository struct {
	db *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) *CollaborationRepository {
	return &CollaborationRepository{db: db}
}

// FindByID returns (nil, nil) when no row matches.
func (r *CollaborationRepository) FindByID(ctx context.Context, id int64) (*model.Collaboration, error) {
	var c model.Collaboration
	err := r.db.WithContext(ctx).
		Where("col_id = ?", id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollaborationRepository) FindByQuestionID(ctx context.Context, questionID int64) (*model.Collaboration, error) {
	var c model.Collaboration
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDAndQuestionID requires the pair to match.
func (r *CollaborationRepository) FindByIDAndQuestionID(ctx context.Context, id, questionID int64) (*model.Collaboration, error) {
	var c model.Collaboration
	err := r.db.WithContext(ctx).
		Where("col_id = ? AND question_id = ?", id, questionID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollaborationRepository) Create(ctx context.Context, c *model.Collaboration) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollaborationRepository) Update(ctx context.Context, c *model.Collaboration) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// FindPage returns one page plus the total count over the same predicates.
func (r *CollaborationRepository) FindPage(ctx context.Context, f CollaborationFilter, page helper.PageRequest) ([]model.Collaboration, int64, error) {
	order, err := collaborationOrder(page.SortBy)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Collaboration
	err = r.filtered(ctx, f).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *CollaborationRepository) filtered(ctx context.Context, f CollaborationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Collaboration{})

	if f.ColID != nil {
		q = q.Where("col_id = ?", *f.ColID)
	}
	if f.ColStatus != nil {
		q = q.Where("col_status = ?", *f.ColStatus)
	}
	if f.ColReqID != nil {
		q = q.Where("col_request_id = ?", *f.ColReqID)
	}
	if f.ColResID != nil {
		q = q.Where("col_response_id = ?", *f.ColResID)
	}
	if f.StartDate != nil {
		q = q.Where("CAST(created_at AS DATE) >= ?", f.StartDate.Format("2006-01-02"))
	}
	if f.EndDate != nil {
		q = q.Where("CAST(created_at AS DATE) <= ?", f.EndDate.Format("2006-01-02"))
	}
	return q
}

func collaborationOrder(sortBy string) (string, error) {
	switch sortBy {
	case helper.SortLatest:
		return "created_at DESC, col_id DESC", nil
	case helper.SortOldest:
		return "created_at ASC, col_id ASC", nil
	default:
		return "", helper.ErrInvalidOrderCondition
	}
}

const monthlyCountsSQL = `
WITH months AS (
    SELECT generate_series(1, 12) AS month
),
counts AS (
    SELECT EXTRACT(MONTH FROM c.created_at) AS month,
           COUNT(*) AS col_count
    FROM collaborations c
    GROUP BY EXTRACT(MONTH FROM c.created_at)
)
SELECT COALESCE(c.col_count, 0)
FROM months m
LEFT JOIN counts c ON m.month = c.month
ORDER BY m.month`

const monthlyCountsByManagerSQL = `
WITH months AS (
    SELECT generate_series(1, 12) AS month
),
counts AS (
    SELECT EXTRACT(MONTH FROM c.created_at) AS month,
           COUNT(*) AS col_count
    FROM collaborations c
    WHERE c.col_request_id = @manager OR c.col_response_id = @manager
    GROUP BY EXTRACT(MONTH FROM c.created_at)
)
SELECT COALESCE(c.col_count, 0)
FROM months m
LEFT JOIN counts c ON m.month = c.month
ORDER BY m.month`

// MonthlyCounts returns collaboration counts per calendar month, zero-filled
// to 12 entries.
func (r *CollaborationRepository) MonthlyCounts(ctx context.Context) ([]int64, error) {
	var counts []int64
	err := r.db.WithContext(ctx).Raw(monthlyCountsSQL).Scan(&counts).Error
	return counts, err
}

// MonthlyCountsByManager counts collaborations where the manager is either
// requester or responder.
func (r *CollaborationRepository) MonthlyCountsByManager(ctx context.Context, managerID int64) ([]int64, error) {
	var counts []int64
	err := r.db.WithContext(ctx).
		Raw(monthlyCountsByManagerSQL, map[string]interface{}{"manager": managerID}).
		Scan(&counts).Error
	return counts, err
}
