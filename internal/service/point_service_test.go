package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAwardValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	kid, kidCaller := f.kid(t, parent.ID, "Alice")

	if _, err := f.points.Award(ctx, parentCaller, kid.ID, 0, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: err=%v want ErrValidation", err)
	}
	if _, err := f.points.Award(ctx, parentCaller, "", 5, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing child: err=%v want ErrValidation", err)
	}
	if _, err := f.points.Award(ctx, kidCaller, kid.ID, 5, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kid granter: err=%v want ErrForbidden", err)
	}
	if _, err := f.points.Award(ctx, parentCaller, uuid.NewString(), 5, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown child: err=%v want ErrNotFound", err)
	}
}

func TestAwardForeignChild(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, _ := f.parent(t, "p@example.com")
	kid, _ := f.kid(t, parent.ID, "Alice")
	_, otherCaller := f.parent(t, "other@example.com")

	if _, err := f.points.Award(ctx, otherCaller, kid.ID, 5, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestAwardNegativePenalty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	kid, _ := f.kid(t, parent.ID, "Alice")

	if _, err := f.points.Award(ctx, parentCaller, kid.ID, 20, "chores"); err != nil {
		t.Fatalf("award: %v", err)
	}
	if _, err := f.points.Award(ctx, parentCaller, kid.ID, -5, "broke a vase"); err != nil {
		t.Fatalf("penalty: %v", err)
	}
	total, err := f.pointRepo.SumByUser(ctx, kid.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if total != 15 {
		t.Fatalf("total=%d want 15", total)
	}
}

func TestRevokeOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	kid, kidCaller := f.kid(t, parent.ID, "Alice")
	_, otherCaller := f.parent(t, "other@example.com")

	p, err := f.points.Award(ctx, parentCaller, kid.ID, 5, "")
	if err != nil {
		t.Fatalf("award: %v", err)
	}

	if err := f.points.Revoke(ctx, kidCaller, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kid revoke: err=%v want ErrForbidden", err)
	}
	if err := f.points.Revoke(ctx, otherCaller, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign revoke: err=%v want ErrNotFound", err)
	}
	if err := f.points.Revoke(ctx, parentCaller, p.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	entries, err := f.pointRepo.ListByUser(ctx, kid.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%d want 0 after revoke", len(entries))
	}
}

func TestListForCallerScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	parent, parentCaller := f.parent(t, "p@example.com")
	alice, aliceCaller := f.kid(t, parent.ID, "Alice")
	ben, _ := f.kid(t, parent.ID, "Ben")
	other, otherCaller := f.parent(t, "other@example.com")
	foreignKid, _ := f.kid(t, other.ID, "Carol")

	for _, grant := range []struct {
		caller Caller
		kidID  string
		amount int
	}{
		{parentCaller, alice.ID, 5},
		{parentCaller, ben.ID, 7},
		{otherCaller, foreignKid.ID, 9},
	} {
		if _, err := f.points.Award(ctx, grant.caller, grant.kidID, grant.amount, ""); err != nil {
			t.Fatalf("award: %v", err)
		}
	}

	all, err := f.points.ListForCaller(ctx, parentCaller, "")
	if err != nil {
		t.Fatalf("list parent: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("parent sees %d entries, want 2", len(all))
	}

	filtered, err := f.points.ListForCaller(ctx, parentCaller, alice.ID)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Amount != 5 {
		t.Fatalf("filtered=%+v want Alice's single entry", filtered)
	}
	if filtered[0].User == nil || filtered[0].GivenBy == nil {
		t.Fatal("target and granter summaries not loaded")
	}

	if _, err := f.points.ListForCaller(ctx, parentCaller, foreignKid.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign filter: err=%v want ErrNotFound", err)
	}

	own, err := f.points.ListForCaller(ctx, aliceCaller, "")
	if err != nil {
		t.Fatalf("list kid: %v", err)
	}
	if len(own) != 1 || own[0].UserID != alice.ID {
		t.Fatalf("kid list=%+v want only own entry", own)
	}
}
