package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
	"github.com/nrattyp233/create-a-date1/internal/store/memory"
)

func TestCandidatesExcludesViewerAndSwiped(t *testing.T) {
	st := memory.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := st.Mutate(context.Background(), func(ctx context.Context, tx store.Tx) error {
		for id := int64(0); id < 4; id++ {
			if _, err := tx.CreateUser(ctx, model.User{ID: id, Name: "user", Age: 25}); err != nil {
				return err
			}
		}
		if _, err := tx.AppendSwipe(ctx, 0, 1, enums.SwipeRight, now); err != nil {
			return err
		}
		if _, err := tx.AppendSwipe(ctx, 0, 2, enums.SwipeLeft, now); err != nil {
			return err
		}
		// Being swiped on does not remove someone from the feed.
		if _, err := tx.AppendSwipe(ctx, 3, 0, enums.SwipeRight, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewService(st)

	items, err := svc.Candidates(context.Background(), 0)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 {
		t.Fatalf("unexpected candidates: %+v", items)
	}
}

func TestCandidatesUnknownViewer(t *testing.T) {
	svc := NewService(memory.New())

	if _, err := svc.Candidates(context.Background(), 7); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown viewer: got %v want ErrNotFound", err)
	}
}
