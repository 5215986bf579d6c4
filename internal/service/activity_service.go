package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kidpoints/internal/model"
	"kidpoints/internal/repository"
)

// SubmitInput describes a new activity claim. ChildID is only meaningful when
// a parent submits on a child's behalf.
type SubmitInput struct {
	Activity     string
	Description  string
	ActivityDate time.Time
	ChildID      string
}

type ActivityService interface {
	Submit(ctx context.Context, caller Caller, in SubmitInput) (*model.ActivityRequest, error)
	// ListForCaller: parents get their children's PENDING requests, kids get
	// all of their own requests. Newest first in both cases.
	ListForCaller(ctx context.Context, caller Caller) ([]model.ActivityRequest, error)
	// Review settles a PENDING request exactly once. Approval writes the
	// point entry and the status flip atomically.
	Review(ctx context.Context, caller Caller, requestID string, status model.ActivityStatus, points int) (*model.ActivityRequest, error)
}

type activityService struct {
	activityRepo repository.ActivityRequestRepository
	userRepo     repository.UserRepository
}

func NewActivityService(activityRepo repository.ActivityRequestRepository, userRepo repository.UserRepository) ActivityService {
	return &activityService{activityRepo: activityRepo, userRepo: userRepo}
}

func (s *activityService) Submit(ctx context.Context, caller Caller, in SubmitInput) (*model.ActivityRequest, error) {
	in.Activity = strings.TrimSpace(in.Activity)
	in.Description = strings.TrimSpace(in.Description)
	if in.Activity == "" || in.Description == "" || in.ActivityDate.IsZero() {
		return nil, fmt.Errorf("%w: activity, description and activityDate are required", ErrValidation)
	}

	requestedByID := caller.ID
	switch caller.Role {
	case model.RoleKid:
		// kids always claim for themselves
	case model.RoleParent:
		if in.ChildID == "" {
			return nil, fmt.Errorf("%w: childId is required for parent submissions", ErrValidation)
		}
		child, err := s.userRepo.FindChild(ctx, caller.ID, in.ChildID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		requestedByID = child.ID
	default:
		return nil, ErrForbidden
	}

	ar := &model.ActivityRequest{
		ID:            uuid.NewString(),
		Activity:      in.Activity,
		Description:   in.Description,
		ActivityDate:  in.ActivityDate,
		Status:        model.ActivityStatusPending,
		RequestedByID: requestedByID,
	}
	if err := s.activityRepo.Create(ctx, ar); err != nil {
		return nil, err
	}
	return s.activityRepo.FindByID(ctx, ar.ID)
}

func (s *activityService) ListForCaller(ctx context.Context, caller Caller) ([]model.ActivityRequest, error) {
	switch caller.Role {
	case model.RoleKid:
		return s.activityRepo.ListByRequester(ctx, caller.ID)
	case model.RoleParent:
		children, err := s.userRepo.ListChildren(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(children))
		for _, c := range children {
			ids = append(ids, c.ID)
		}
		return s.activityRepo.ListPendingByRequesters(ctx, ids)
	default:
		return nil, ErrForbidden
	}
}

func (s *activityService) Review(ctx context.Context, caller Caller, requestID string, status model.ActivityStatus, points int) (*model.ActivityRequest, error) {
	if caller.Role != model.RoleParent {
		return nil, ErrForbidden
	}
	if status != model.ActivityStatusApproved && status != model.ActivityStatusRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", ErrValidation)
	}
	if status == model.ActivityStatusApproved && points == 0 {
		return nil, fmt.Errorf("%w: points are required for approval", ErrValidation)
	}

	ar, err := s.activityRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.userRepo.FindChild(ctx, caller.ID, ar.RequestedByID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if ar.Status != model.ActivityStatusPending {
		return nil, ErrConflict
	}

	now := time.Now()
	if status == model.ActivityStatusApproved {
		p := &model.Point{
			ID:          uuid.NewString(),
			Amount:      points,
			Description: fmt.Sprintf("%s - %s", ar.Activity, ar.Description),
			UserID:      ar.RequestedByID,
			GivenByID:   caller.ID,
		}
		err = s.activityRepo.Approve(ctx, ar.ID, caller.ID, now, p)
	} else {
		err = s.activityRepo.Reject(ctx, ar.ID, caller.ID, now)
	}
	if err != nil {
		// A racing reviewer got there first; the store kept only their write.
		if errors.Is(err, repository.ErrNotPending) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.activityRepo.FindByID(ctx, ar.ID)
}
