package repository

import (
	"context"

	"gorm.io/gorm"

	"kidpoints/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByChildUsername(ctx context.Context, username string) (*model.User, error)
	// FindChild returns the KID account only when it belongs to parentID.
	FindChild(ctx context.Context, parentID, childID string) (*model.User, error)
	ListChildren(ctx context.Context, parentID string) ([]model.User, error)
	// DeleteChildCascade removes the child together with its points and
	// activity requests in one transaction.
	DeleteChildCascade(ctx context.Context, childID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByChildUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).
		Where("child_username = ?", username).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindChild(ctx context.Context, parentID, childID string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND parent_id = ? AND role = ?", childID, parentID, model.RoleKid).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListChildren(ctx context.Context, parentID string) ([]model.User, error) {
	var list []model.User
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND role = ?", parentID, model.RoleKid).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *userRepository) DeleteChildCascade(ctx context.Context, childID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("requested_by_id = ?", childID).
			Delete(&model.ActivityRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", childID).
			Delete(&model.Point{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, "id = ?", childID).Error
	})
}
