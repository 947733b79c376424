package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

// fakeRowsAPI emulates the remote tabular rows service: GET returns a whole
// table, POST appends a row, PATCH id=eq.N merges fields into one row.
type fakeRowsAPI struct {
	tables  map[string][]map[string]any
	lastKey string
}

func newFakeRowsAPI() *fakeRowsAPI {
	return &fakeRowsAPI{tables: map[string][]map[string]any{}}
}

func (f *fakeRowsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastKey = r.Header.Get("apikey")

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if table == r.URL.Path {
		http.Error(w, "unknown path", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		rows := f.tables[table]
		if rows == nil {
			rows = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(rows)
	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.tables[table] = append(f.tables[table], row)
		w.WriteHeader(http.StatusCreated)
	case http.MethodPatch:
		filter := r.URL.Query().Get("id")
		id, err := strconv.ParseInt(strings.TrimPrefix(filter, "eq."), 10, 64)
		if err != nil {
			http.Error(w, "bad id filter", http.StatusBadRequest)
			return
		}
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, row := range f.tables[table] {
			if rowID, ok := row["id"].(float64); ok && int64(rowID) == id {
				for k, v := range patch {
					row[k] = v
				}
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeRowsAPI, *httptest.Server) {
	t.Helper()

	api := newFakeRowsAPI()
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	st, err := New(Config{BaseURL: ts.URL, APIKey: "test-key", Client: ts.Client()})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return st, api, ts
}

func TestGetUserRoundTrip(t *testing.T) {
	st, api, _ := newTestStore(t)
	ctx := context.Background()

	err := st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "Riley", Age: 27, Interests: []string{"food"}})
		return err
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if api.lastKey != "test-key" {
		t.Fatalf("api key header not sent, got %q", api.lastKey)
	}

	u, err := st.GetUser(ctx, 0)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Name != "Riley" || len(u.Interests) != 1 {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := st.GetUser(ctx, 9); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing user: got %v want ErrNotFound", err)
	}
}

func TestMutateSwipeAndMatchFlow(t *testing.T) {
	st, _, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		for id := int64(0); id < 2; id++ {
			if _, err := tx.CreateUser(ctx, model.User{ID: id, Name: "user", Age: 25}); err != nil {
				return err
			}
		}
		if _, err := tx.AppendSwipe(ctx, 0, 1, enums.SwipeRight, now); err != nil {
			return err
		}
		if _, err := tx.AppendSwipe(ctx, 1, 0, enums.SwipeRight, now); err != nil {
			return err
		}
		m, created, err := tx.CreateMatch(ctx, 1, 0, now)
		if err != nil {
			return err
		}
		if !created {
			t.Fatalf("expected match to be created")
		}
		if m.UserAID != 0 || m.UserBID != 1 {
			t.Fatalf("pair not canonical: %+v", m)
		}

		if _, err := tx.AppendMessage(ctx, m.ID, 0, "hello", now.Add(time.Minute)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	ok, err := st.RightSwipeExists(ctx, 1, 0)
	if err != nil {
		t.Fatalf("right swipe exists: %v", err)
	}
	if !ok {
		t.Fatalf("reciprocal swipe not stored")
	}

	matches, err := st.ListMatchesForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	m := matches[0]
	if m.LastMessage != "hello" || !m.UnreadB {
		t.Fatalf("message preview not written back: %+v", m)
	}
	if m.UnreadA {
		t.Fatalf("sender side marked unread: %+v", m)
	}

	// The second identical pair must resolve to the existing row.
	err = st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		_, created, err := tx.CreateMatch(ctx, 0, 1, now)
		if err != nil {
			return err
		}
		if created {
			t.Fatalf("duplicate pair created a second match")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("repeat mutate: %v", err)
	}
}

func TestRemoteFailureMapsToBackendUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream quota exceeded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	st, err := New(Config{BaseURL: ts.URL, Client: ts.Client()})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if _, err := st.ListUsers(context.Background()); !errors.Is(err, store.ErrBackendUnavailable) {
		t.Fatalf("remote 500: got %v want ErrBackendUnavailable", err)
	}

	down, err := New(Config{BaseURL: "http://127.0.0.1:0", Client: &http.Client{Timeout: time.Second}})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := down.ListUsers(context.Background()); !errors.Is(err, store.ErrBackendUnavailable) {
		t.Fatalf("unreachable host: got %v want ErrBackendUnavailable", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for missing base url")
	}
}
