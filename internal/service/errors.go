package service

import (
	"errors"

	"kidpoints/internal/model"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Caller is the authenticated account performing an operation. Handlers build
// it from the verified session token; services never consult ambient state.
type Caller struct {
	ID   string
	Role model.Role
}
