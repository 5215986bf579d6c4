package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kidpoints/internal/model"
	"kidpoints/internal/repository"
)

type AuthService interface {
	// Login accepts a parent email or a kid username plus password and
	// returns a signed session token with the account.
	Login(ctx context.Context, identifier, password string) (string, *model.User, error)
	Issue(u *model.User) (string, error)
	Verify(token string) (Caller, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	// Parents sign in with an email address, kids with a bare username.
	var (
		u   *model.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.userRepo.FindByEmail(ctx, identifier)
	} else {
		u, err = s.userRepo.FindByChildUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *authService) Issue(u *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) Verify(token string) (Caller, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Caller{}, ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || (role != string(model.RoleParent) && role != string(model.RoleKid)) {
		return Caller{}, ErrInvalidCredentials
	}
	return Caller{ID: sub, Role: model.Role(role)}, nil
}
