package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kidpoints/internal/credentials"
	"kidpoints/internal/model"
	"kidpoints/internal/repository"
)

const bcryptCost = 10

// ChildSummary is a child account with its current point balance.
type ChildSummary struct {
	User        model.User
	TotalPoints int64
}

// ChildCredentials is what a parent may recover for one of their kids: the
// login name and the plaintext secret retained at registration time.
type ChildCredentials struct {
	User          model.User
	Username      string
	PlainPassword string
}

type UserService interface {
	RegisterParent(ctx context.Context, name, email, password string) (*model.User, error)
	// RegisterChild generates a username and password when they are blank;
	// the generated secret is returned via the created user's PlainPassword.
	RegisterChild(ctx context.Context, parentID, name, username, password string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	ListChildren(ctx context.Context, caller Caller) ([]ChildSummary, error)
	Credentials(ctx context.Context, caller Caller) ([]ChildCredentials, error)
	DeleteChild(ctx context.Context, caller Caller, childID string) error
}

type userService struct {
	userRepo  repository.UserRepository
	pointRepo repository.PointRepository
}

func NewUserService(userRepo repository.UserRepository, pointRepo repository.PointRepository) UserService {
	return &userService{userRepo: userRepo, pointRepo: pointRepo}
}

func (s *userService) RegisterParent(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Role:     model.RoleParent,
		Email:    &email,
		Password: string(hash),
		Avatar:   avatarURL(email),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) RegisterChild(ctx context.Context, parentID, name, username, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(strings.ToLower(username))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	parent, err := s.userRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid parent id", ErrValidation)
		}
		return nil, err
	}
	if parent.Role != model.RoleParent {
		return nil, fmt.Errorf("%w: invalid parent id", ErrValidation)
	}

	if username == "" {
		if username, err = credentials.GenerateUsername(); err != nil {
			return nil, err
		}
	}
	if password == "" {
		if password, err = credentials.GeneratePassword(); err != nil {
			return nil, err
		}
	}

	if _, err := s.userRepo.FindByChildUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	// Kid secrets are kept recoverable so the parent can look them up later.
	plain := password
	u := &model.User{
		ID:            uuid.NewString(),
		Name:          name,
		Role:          model.RoleKid,
		ChildUsername: &username,
		Password:      string(hash),
		PlainPassword: &plain,
		Avatar:        avatarURL(username),
		ParentID:      &parent.ID,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) ListChildren(ctx context.Context, caller Caller) ([]ChildSummary, error) {
	if caller.Role != model.RoleParent {
		return nil, ErrForbidden
	}
	children, err := s.userRepo.ListChildren(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ChildSummary, 0, len(children))
	for _, child := range children {
		total, err := s.pointRepo.SumByUser(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ChildSummary{User: child, TotalPoints: total})
	}
	return out, nil
}

func (s *userService) Credentials(ctx context.Context, caller Caller) ([]ChildCredentials, error) {
	if caller.Role != model.RoleParent {
		return nil, ErrForbidden
	}
	children, err := s.userRepo.ListChildren(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ChildCredentials, 0, len(children))
	for _, child := range children {
		cred := ChildCredentials{User: child}
		if child.ChildUsername != nil {
			cred.Username = *child.ChildUsername
		}
		if child.PlainPassword != nil {
			cred.PlainPassword = *child.PlainPassword
		}
		out = append(out, cred)
	}
	return out, nil
}

func (s *userService) DeleteChild(ctx context.Context, caller Caller, childID string) error {
	if caller.Role != model.RoleParent {
		return ErrForbidden
	}
	if _, err := s.userRepo.FindChild(ctx, caller.ID, childID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.userRepo.DeleteChildCascade(ctx, childID)
}

func avatarURL(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/fun-emoji/svg?seed=%s", seed)
}
