package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kidpoints/internal/model"
)

func TestRegisterParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.RegisterParent(ctx, "Pat", "pat@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != model.RoleParent || u.Email == nil || *u.Email != "pat@example.com" {
		t.Fatalf("user=%+v", u)
	}
	if u.PlainPassword != nil {
		t.Fatal("parent must not retain a recoverable password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) != nil {
		t.Fatal("stored password is not the bcrypt hash of the input")
	}

	if _, err := f.users.RegisterParent(ctx, "Pat Again", "pat@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: err=%v want ErrEmailTaken", err)
	}
	if _, err := f.users.RegisterParent(ctx, "", "x@example.com", "pw"); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name: err=%v want ErrValidation", err)
	}
}

func TestRegisterChild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, _ := f.parent(t, "p@example.com")

	kid, err := f.users.RegisterChild(ctx, parent.ID, "Alice", "alice123", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if kid.Role != model.RoleKid || kid.ParentID == nil || *kid.ParentID != parent.ID {
		t.Fatalf("kid=%+v", kid)
	}
	if kid.ChildUsername == nil || *kid.ChildUsername != "alice123" {
		t.Fatalf("username=%v want alice123", kid.ChildUsername)
	}
	if kid.PlainPassword == nil || *kid.PlainPassword != "hunter2" {
		t.Fatal("kid secret must be retained in recoverable form")
	}
	if bcrypt.CompareHashAndPassword([]byte(kid.Password), []byte("hunter2")) != nil {
		t.Fatal("stored password is not the bcrypt hash of the input")
	}

	if _, err := f.users.RegisterChild(ctx, parent.ID, "Other Alice", "alice123", "pw"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: err=%v want ErrUsernameTaken", err)
	}
	if _, err := f.users.RegisterChild(ctx, kid.ID, "Nested", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("kid as parent: err=%v want ErrValidation", err)
	}
	if _, err := f.users.RegisterChild(ctx, "nope", "Orphan", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown parent: err=%v want ErrValidation", err)
	}
}

func TestRegisterChildGeneratesCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, _ := f.parent(t, "p@example.com")

	kid, err := f.users.RegisterChild(ctx, parent.ID, "Alice", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if kid.ChildUsername == nil || *kid.ChildUsername == "" {
		t.Fatal("username was not generated")
	}
	if kid.PlainPassword == nil || *kid.PlainPassword == "" {
		t.Fatal("password was not generated")
	}
	if bcrypt.CompareHashAndPassword([]byte(kid.Password), []byte(*kid.PlainPassword)) != nil {
		t.Fatal("generated password does not match stored hash")
	}
}

func TestCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	kid, kidCaller := f.kid(t, parent.ID, "Alice")

	creds, err := f.users.Credentials(ctx, parentCaller)
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if len(creds) != 1 {
		t.Fatalf("creds=%d want 1", len(creds))
	}
	if creds[0].Username != *kid.ChildUsername || creds[0].PlainPassword != *kid.PlainPassword {
		t.Fatalf("creds=%+v", creds[0])
	}

	if _, err := f.users.Credentials(ctx, kidCaller); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kid caller: err=%v want ErrForbidden", err)
	}
}

func TestDeleteChildCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	kid, kidCaller := f.kid(t, parent.ID, "Alice")

	if _, err := f.points.Award(ctx, parentCaller, kid.ID, 5, ""); err != nil {
		t.Fatalf("award: %v", err)
	}
	ar, err := f.activities.Submit(ctx, kidCaller, SubmitInput{
		Activity:     "Reading",
		Description:  "Read 20 pages",
		ActivityDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := f.users.DeleteChild(ctx, parentCaller, kid.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	children, err := f.users.ListChildren(ctx, parentCaller)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 0 {
		t.Fatalf("children=%d want 0", len(children))
	}
	entries, err := f.pointRepo.ListByUser(ctx, kid.ID, 0)
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("points=%d want 0 after cascade", len(entries))
	}
	if _, err := f.activityRepo.FindByID(ctx, ar.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("request lookup: err=%v want record not found", err)
	}
}

func TestDeleteChildOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, _ := f.parent(t, "p@example.com")
	kid, kidCaller := f.kid(t, parent.ID, "Alice")
	_, otherCaller := f.parent(t, "other@example.com")

	if err := f.users.DeleteChild(ctx, otherCaller, kid.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign parent: err=%v want ErrNotFound", err)
	}
	if err := f.users.DeleteChild(ctx, kidCaller, kid.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kid caller: err=%v want ErrForbidden", err)
	}
}

func TestListChildrenTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	alice, _ := f.kid(t, parent.ID, "Alice")
	_, _ = f.kid(t, parent.ID, "Ben")

	if _, err := f.points.Award(ctx, parentCaller, alice.ID, 10, ""); err != nil {
		t.Fatalf("award: %v", err)
	}
	if _, err := f.points.Award(ctx, parentCaller, alice.ID, -3, ""); err != nil {
		t.Fatalf("award: %v", err)
	}

	children, err := f.users.ListChildren(ctx, parentCaller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("children=%d want 2", len(children))
	}
	totals := map[string]int64{}
	for _, c := range children {
		totals[c.User.Name] = c.TotalPoints
	}
	if totals["Alice"] != 7 || totals["Ben"] != 0 {
		t.Fatalf("totals=%v want Alice=7 Ben=0", totals)
	}
}
