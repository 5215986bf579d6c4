package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kidpoints/internal/model"
	"kidpoints/internal/repository"
)

type fixture struct {
	userRepo     repository.UserRepository
	pointRepo    repository.PointRepository
	activityRepo repository.ActivityRequestRepository

	auth       AuthService
	users      UserService
	points     PointService
	activities ActivityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Point{}, &model.ActivityRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	pointRepo := repository.NewPointRepository(db)
	activityRepo := repository.NewActivityRequestRepository(db)

	return &fixture{
		userRepo:     userRepo,
		pointRepo:    pointRepo,
		activityRepo: activityRepo,
		auth:         NewAuthService(userRepo, "test-secret", time.Hour),
		users:        NewUserService(userRepo, pointRepo),
		points:       NewPointService(pointRepo, userRepo),
		activities:   NewActivityService(activityRepo, userRepo),
	}
}

func (f *fixture) parent(t *testing.T, email string) (*model.User, Caller) {
	t.Helper()
	u, err := f.users.RegisterParent(context.Background(), "Parent "+email, email, "secret123")
	if err != nil {
		t.Fatalf("register parent %s: %v", email, err)
	}
	return u, Caller{ID: u.ID, Role: model.RoleParent}
}

func (f *fixture) kid(t *testing.T, parentID, name string) (*model.User, Caller) {
	t.Helper()
	u, err := f.users.RegisterChild(context.Background(), parentID, name, "", "")
	if err != nil {
		t.Fatalf("register kid %s: %v", name, err)
	}
	return u, Caller{ID: u.ID, Role: model.RoleKid}
}
