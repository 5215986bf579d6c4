package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"kidpoints/internal/config"
	"kidpoints/internal/db"
	"kidpoints/internal/model"
	"kidpoints/internal/repository"
	"kidpoints/internal/service"
)

// Seeds a demo family: one parent, two kids, a few ledger entries and a
// pending activity request. Skips when the parent already exists unless
// FORCE_SEED=true.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	userRepo := repository.NewUserRepository(conn)
	pointRepo := repository.NewPointRepository(conn)
	activityRepo := repository.NewActivityRequestRepository(conn)
	userSvc := service.NewUserService(userRepo, pointRepo)
	pointSvc := service.NewPointService(pointRepo, userRepo)
	activitySvc := service.NewActivityService(activityRepo, userRepo)

	const parentEmail = "demo@example.com"
	if _, err := userRepo.FindByEmail(ctx, parentEmail); err == nil {
		if os.Getenv("FORCE_SEED") != "true" {
			log.Printf("demo parent already exists; skipping seed (set FORCE_SEED=true to override)")
			return nil
		}
	}

	parent, err := userSvc.RegisterParent(ctx, "Demo Parent", parentEmail, "password123")
	if err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	caller := service.Caller{ID: parent.ID, Role: model.RoleParent}

	kids := []string{"Alice", "Ben"}
	for _, name := range kids {
		kid, err := userSvc.RegisterChild(ctx, parent.ID, name, "", "")
		if err != nil {
			return fmt.Errorf("create kid %s: %w", name, err)
		}
		if _, err := pointSvc.Award(ctx, caller, kid.ID, 10, "Welcome bonus"); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		kidCaller := service.Caller{ID: kid.ID, Role: model.RoleKid}
		if _, err := activitySvc.Submit(ctx, kidCaller, service.SubmitInput{
			Activity:     "Reading",
			Description:  "Read 20 pages",
			ActivityDate: time.Now().AddDate(0, 0, -1),
		}); err != nil {
			return fmt.Errorf("submit activity: %w", err)
		}
		if kid.ChildUsername != nil && kid.PlainPassword != nil {
			log.Printf("created kid %s (username=%s password=%s)", name, *kid.ChildUsername, *kid.PlainPassword)
		}
	}

	log.Printf("seed complete: parent %s / password123", parentEmail)
	return nil
}
