package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kidpoints/internal/model"
)

// ErrNotPending is returned by Approve/Reject when the request was already
// reviewed. The conditional update matches zero rows, so a racing second
// reviewer always lands here instead of double-granting.
var ErrNotPending = errors.New("activity request is not pending")

type ActivityRequestRepository interface {
	Create(ctx context.Context, ar *model.ActivityRequest) error
	FindByID(ctx context.Context, id string) (*model.ActivityRequest, error)
	ListPendingByRequesters(ctx context.Context, requesterIDs []string) ([]model.ActivityRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.ActivityRequest, error)
	// Approve inserts the point and flips the request to APPROVED in one
	// transaction; neither persists if the request is no longer PENDING.
	Approve(ctx context.Context, id, reviewerID string, reviewedAt time.Time, p *model.Point) error
	Reject(ctx context.Context, id, reviewerID string, reviewedAt time.Time) error
}

type activityRequestRepository struct {
	db *gorm.DB
}

func NewActivityRequestRepository(db *gorm.DB) ActivityRequestRepository {
	return &activityRequestRepository{db: db}
}

func (r *activityRequestRepository) Create(ctx context.Context, ar *model.ActivityRequest) error {
	return r.db.WithContext(ctx).Create(ar).Error
}

func (r *activityRequestRepository) FindByID(ctx context.Context, id string) (*model.ActivityRequest, error) {
	var ar model.ActivityRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Preload("ReviewedBy").
		Preload("Point").
		First(&ar, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ar, nil
}

func (r *activityRequestRepository) ListPendingByRequesters(ctx context.Context, requesterIDs []string) ([]model.ActivityRequest, error) {
	if len(requesterIDs) == 0 {
		return []model.ActivityRequest{}, nil
	}
	var list []model.ActivityRequest
	if err := r.db.WithContext(ctx).
		Preload("RequestedBy").
		Where("requested_by_id IN ? AND status = ?", requesterIDs, model.ActivityStatusPending).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *activityRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]model.ActivityRequest, error) {
	var list []model.ActivityRequest
	if err := r.db.WithContext(ctx).
		Preload("ReviewedBy").
		Preload("Point").
		Where("requested_by_id = ?", requesterID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *activityRequestRepository) Approve(ctx context.Context, id, reviewerID string, reviewedAt time.Time, p *model.Point) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		res := tx.Model(&model.ActivityRequest{}).
			Where("id = ? AND status = ?", id, model.ActivityStatusPending).
			Updates(map[string]interface{}{
				"status":         model.ActivityStatusApproved,
				"reviewed_by_id": reviewerID,
				"reviewed_at":    reviewedAt,
				"point_id":       p.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		return nil
	})
}

func (r *activityRequestRepository) Reject(ctx context.Context, id, reviewerID string, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.ActivityRequest{}).
		Where("id = ? AND status = ?", id, model.ActivityStatusPending).
		Updates(map[string]interface{}{
			"status":         model.ActivityStatusRejected,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    reviewedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}
