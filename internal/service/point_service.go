package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kidpoints/internal/model"
	"kidpoints/internal/repository"
)

// Parents see at most this many recent entries per listing; dashboards do not
// need the full history.
const pointPageSize = 50

type PointService interface {
	// Award writes one ledger entry. Negative amounts are penalties; zero is
	// rejected.
	Award(ctx context.Context, caller Caller, childID string, amount int, description string) (*model.Point, error)
	// Revoke hard-deletes an entry; only the granting parent may do so.
	Revoke(ctx context.Context, caller Caller, pointID string) error
	// ListForCaller returns entries newest first: a parent sees entries of all
	// owned children (optionally one child), a kid only their own.
	ListForCaller(ctx context.Context, caller Caller, userID string) ([]model.Point, error)
}

type pointService struct {
	pointRepo repository.PointRepository
	userRepo  repository.UserRepository
}

func NewPointService(pointRepo repository.PointRepository, userRepo repository.UserRepository) PointService {
	return &pointService{pointRepo: pointRepo, userRepo: userRepo}
}

func (s *pointService) Award(ctx context.Context, caller Caller, childID string, amount int, description string) (*model.Point, error) {
	if caller.Role != model.RoleParent {
		return nil, ErrForbidden
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be a non-zero number", ErrValidation)
	}
	if childID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	child, err := s.userRepo.FindChild(ctx, caller.ID, childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := &model.Point{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: strings.TrimSpace(description),
		UserID:      child.ID,
		GivenByID:   caller.ID,
	}
	if err := s.pointRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *pointService) Revoke(ctx context.Context, caller Caller, pointID string) error {
	if caller.Role != model.RoleParent {
		return ErrForbidden
	}
	if pointID == "" {
		return fmt.Errorf("%w: point id is required", ErrValidation)
	}
	if _, err := s.pointRepo.FindGranted(ctx, pointID, caller.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.pointRepo.Delete(ctx, pointID)
}

func (s *pointService) ListForCaller(ctx context.Context, caller Caller, userID string) ([]model.Point, error) {
	switch caller.Role {
	case model.RoleKid:
		return s.pointRepo.ListByUser(ctx, caller.ID, 0)
	case model.RoleParent:
		if userID != "" {
			child, err := s.userRepo.FindChild(ctx, caller.ID, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNotFound
				}
				return nil, err
			}
			return s.pointRepo.ListByUser(ctx, child.ID, pointPageSize)
		}
		children, err := s.userRepo.ListChildren(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(children))
		for _, c := range children {
			ids = append(ids, c.ID)
		}
		return s.pointRepo.ListByUsers(ctx, ids, pointPageSize)
	default:
		return nil, ErrForbidden
	}
}
