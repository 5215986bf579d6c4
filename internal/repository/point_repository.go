package repository

import (
	"context"

	"gorm.io/gorm"

	"kidpoints/internal/model"
)

type PointRepository interface {
	Create(ctx context.Context, p *model.Point) error
	// FindGranted returns the entry only when it was granted by granterID.
	FindGranted(ctx context.Context, id, granterID string) (*model.Point, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Point, error)
	ListByUsers(ctx context.Context, userIDs []string, limit int) ([]model.Point, error)
	SumByUser(ctx context.Context, userID string) (int64, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) Create(ctx context.Context, p *model.Point) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pointRepository) FindGranted(ctx context.Context, id, granterID string) (*model.Point, error) {
	var p model.Point
	if err := r.db.WithContext(ctx).
		Where("id = ? AND given_by_id = ?", id, granterID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pointRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Point{}, "id = ?", id).Error
}

func (r *pointRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Point, error) {
	return r.list(ctx, r.db.Where("user_id = ?", userID), limit)
}

func (r *pointRepository) ListByUsers(ctx context.Context, userIDs []string, limit int) ([]model.Point, error) {
	if len(userIDs) == 0 {
		return []model.Point{}, nil
	}
	return r.list(ctx, r.db.Where("user_id IN ?", userIDs), limit)
}

func (r *pointRepository) list(ctx context.Context, q *gorm.DB, limit int) ([]model.Point, error) {
	var list []model.Point
	q = q.WithContext(ctx).
		Preload("User").
		Preload("GivenBy").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pointRepository) SumByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Point{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
