package document

import (
	"context"
	"testing"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

func TestCreateUserKeepsFreeIDAndResolvesCollisions(t *testing.T) {
	tx := NewTx(New())
	ctx := context.Background()

	u, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "first"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if u.ID != 0 {
		t.Fatalf("explicit id 0 not honored, got %d", u.ID)
	}

	u, err = tx.CreateUser(ctx, model.User{ID: 0, Name: "second"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("collision not reassigned to max+1, got %d", u.ID)
	}

	u, err = tx.CreateUser(ctx, model.User{ID: 10, Name: "third"})
	if err != nil {
		t.Fatalf("create third: %v", err)
	}
	if u.ID != 10 {
		t.Fatalf("explicit free id not honored, got %d", u.ID)
	}
}

func TestAppendMessageNeverGoesBackwards(t *testing.T) {
	tx := NewTx(New())
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m, _, err := tx.CreateMatch(ctx, 1, 0, base)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if m.UserAID != 0 || m.UserBID != 1 {
		t.Fatalf("pair not canonical: %+v", m)
	}

	if _, err := tx.AppendMessage(ctx, m.ID, 0, "one", base.Add(time.Minute)); err != nil {
		t.Fatalf("append first: %v", err)
	}
	// A clock that jumped backwards must not reorder the history.
	msg, err := tx.AppendMessage(ctx, m.ID, 1, "two", base)
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if msg.CreatedAt.Before(base.Add(time.Minute)) {
		t.Fatalf("timestamp went backwards: %v", msg.CreatedAt)
	}

	got, err := tx.GetMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.LastMessage != "two" || !got.LastMessageAt.Equal(msg.CreatedAt) {
		t.Fatalf("preview not refreshed: %+v", got)
	}
	if !got.UnreadA || !got.UnreadB {
		t.Fatalf("unread flags not set per side: %+v", got)
	}
}

func TestCloneIsolation(t *testing.T) {
	doc := New()
	tx := NewTx(doc)
	ctx := context.Background()

	if _, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "a", Interests: []string{"food"}}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	clone := doc.Clone()
	copyTx := NewTx(clone)
	if _, err := copyTx.CreateUser(ctx, model.User{ID: 1, Name: "b"}); err != nil {
		t.Fatalf("create in clone: %v", err)
	}
	name := "changed"
	if _, err := copyTx.UpdateUser(ctx, 0, store.ProfilePatch{Name: &name}); err != nil {
		t.Fatalf("update in clone: %v", err)
	}

	if len(doc.Users) != 1 {
		t.Fatalf("clone write leaked into original: %d users", len(doc.Users))
	}
	if doc.Users[0].Name != "a" {
		t.Fatalf("clone update leaked into original: %q", doc.Users[0].Name)
	}
}
