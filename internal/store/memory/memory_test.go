package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

func TestMutateRollsBackOnError(t *testing.T) {
	st := New()
	ctx := context.Background()

	err := st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "kept"}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	err = st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.CreateUser(ctx, model.User{ID: 1, Name: "discarded"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("mutate error not propagated: %v", err)
	}

	users, err := st.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "kept" {
		t.Fatalf("failed mutation left a trace: %+v", users)
	}
}

func TestReadsSeeCommittedState(t *testing.T) {
	st := New()
	ctx := context.Background()

	if _, err := st.GetUser(ctx, 0); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("empty store get: got %v want ErrNotFound", err)
	}

	err := st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "Riley"})
		return err
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	u, err := st.GetUser(ctx, 0)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Name != "Riley" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
