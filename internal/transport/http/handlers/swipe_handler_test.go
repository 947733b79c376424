package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	swipesvc "github.com/nrattyp233/create-a-date1/internal/services/swipes"
	"github.com/nrattyp233/create-a-date1/internal/store"
	"github.com/nrattyp233/create-a-date1/internal/store/memory"
)

type blockedLimiter struct{}

func (blockedLimiter) AllowSwipe(ctx context.Context, userID int64) (int64, bool, error) {
	return 30, false, nil
}

func newSwipeHandler(t *testing.T, limiter swipesvc.RateLimiter) *SwipeHandler {
	t.Helper()

	st := memory.New()
	err := st.Mutate(context.Background(), func(ctx context.Context, tx store.Tx) error {
		for id := int64(0); id < 2; id++ {
			if _, err := tx.CreateUser(ctx, model.User{ID: id, Name: "user", Age: 25}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}

	return NewSwipeHandler(swipesvc.NewService(swipesvc.Dependencies{
		Store:       st,
		RateLimiter: limiter,
	}))
}

func doSwipe(h *SwipeHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/swipes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestSwipeHandlerSuccess(t *testing.T) {
	h := newSwipeHandler(t, nil)

	rec := doSwipe(h, `{"swiperId":0,"swipedId":1,"direction":"right"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var res struct {
		OK           bool `json:"ok"`
		MatchCreated bool `json:"matchCreated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.OK || res.MatchCreated {
		t.Fatalf("unexpected payload: %+v", res)
	}
}

func TestSwipeHandlerRejectsBadInput(t *testing.T) {
	h := newSwipeHandler(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"swiperId":`},
		{"unknown field", `{"swiperId":0,"swipedId":1,"direction":"right","extra":true}`},
		{"missing direction", `{"swiperId":0,"swipedId":1}`},
		{"unsupported direction", `{"swiperId":0,"swipedId":1,"direction":"up"}`},
		{"self swipe", `{"swiperId":0,"swipedId":0,"direction":"right"}`},
	}
	for _, tc := range cases {
		rec := doSwipe(h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: got status %d", tc.name, rec.Code)
		}

		var payload struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("%s: decode error body: %v", tc.name, err)
		}
		if payload.Code != "VALIDATION_ERROR" {
			t.Fatalf("%s: unexpected error code %q", tc.name, payload.Code)
		}
	}
}

func TestSwipeHandlerUnknownUser(t *testing.T) {
	h := newSwipeHandler(t, nil)

	rec := doSwipe(h, `{"swiperId":0,"swipedId":42,"direction":"right"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestSwipeHandlerThrottled(t *testing.T) {
	h := newSwipeHandler(t, blockedLimiter{})

	rec := doSwipe(h, `{"swiperId":0,"swipedId":1,"direction":"right"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Code          string `json:"code"`
		RetryAfterSec int64  `json:"retry_after_sec"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Code != "TOO_FAST" || payload.RetryAfterSec != 30 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
