package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nrattyp233/create-a-date1/internal/app/apiapp"
	"github.com/nrattyp233/create-a-date1/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Storage.Driver = "memory"
	cfg.Storage.Seed = true

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	var payload struct {
		Status string `json:"status"`
	}
	if code := getJSON(t, ts.URL+"/healthz", &payload); code != http.StatusOK {
		t.Fatalf("unexpected status: %d", code)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLoginReturnsSeededProfile(t *testing.T) {
	ts := newTestServer(t)

	var user struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	code := postJSON(t, ts.URL+"/api/login", map[string]any{"userId": 0}, &user)
	if code != http.StatusOK {
		t.Fatalf("login status: %d", code)
	}
	if user.ID != 0 || user.Name == "" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	code = postJSON(t, ts.URL+"/api/login", map[string]any{"userId": 999}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("unknown profile status: %d", code)
	}
}

type matchPayload struct {
	ID   int64 `json:"id"`
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
	LastMessage string `json:"lastMessage"`
	Unread      bool   `json:"unread"`
	ChatHistory []struct {
		SenderID int64  `json:"senderId"`
		Text     string `json:"text"`
	} `json:"chatHistory"`
}

func findMatchWith(t *testing.T, ts *httptest.Server, viewerID, otherID int64) (matchPayload, bool) {
	t.Helper()

	var matches []matchPayload
	if code := getJSON(t, fmt.Sprintf("%s/api/matches/%d", ts.URL, viewerID), &matches); code != http.StatusOK {
		t.Fatalf("list matches status: %d", code)
	}
	for _, m := range matches {
		if m.User.ID == otherID {
			return m, true
		}
	}
	return matchPayload{}, false
}

func TestMutualSwipeCreatesMatchForBothUsers(t *testing.T) {
	ts := newTestServer(t)

	var res struct {
		OK           bool `json:"ok"`
		MatchCreated bool `json:"matchCreated"`
	}
	code := postJSON(t, ts.URL+"/api/swipes", map[string]any{"swiperId": 2, "swipedId": 3, "direction": "right"}, &res)
	if code != http.StatusOK || !res.OK || res.MatchCreated {
		t.Fatalf("first swipe: code=%d res=%+v", code, res)
	}

	code = postJSON(t, ts.URL+"/api/swipes", map[string]any{"swiperId": 3, "swipedId": 2, "direction": "right"}, &res)
	if code != http.StatusOK || !res.MatchCreated {
		t.Fatalf("reciprocal swipe: code=%d res=%+v", code, res)
	}

	if _, found := findMatchWith(t, ts, 2, 3); !found {
		t.Fatalf("match missing for first user")
	}
	if _, found := findMatchWith(t, ts, 3, 2); !found {
		t.Fatalf("match missing for second user")
	}

	// The matched user drops out of the feed.
	var feed []struct {
		ID int64 `json:"id"`
	}
	if code := getJSON(t, ts.URL+"/api/feed/2", &feed); code != http.StatusOK {
		t.Fatalf("feed status: %d", code)
	}
	for _, u := range feed {
		if u.ID == 3 || u.ID == 2 {
			t.Fatalf("feed still contains %d after swipe", u.ID)
		}
	}
}

func TestMessageFlowTracksUnreadPerSide(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/api/swipes", map[string]any{"swiperId": 2, "swipedId": 4, "direction": "right"}, nil)
	postJSON(t, ts.URL+"/api/swipes", map[string]any{"swiperId": 4, "swipedId": 2, "direction": "right"}, nil)

	m, found := findMatchWith(t, ts, 2, 4)
	if !found {
		t.Fatalf("match not created")
	}

	code := postJSON(t, ts.URL+"/api/messages", map[string]any{"matchId": m.ID, "senderId": 2, "text": "hi there"}, nil)
	if code != http.StatusOK && code != http.StatusCreated {
		t.Fatalf("send message status: %d", code)
	}

	recipient, found := findMatchWith(t, ts, 4, 2)
	if !found {
		t.Fatalf("match missing for recipient")
	}
	if !recipient.Unread || recipient.LastMessage != "hi there" {
		t.Fatalf("recipient view wrong: %+v", recipient)
	}
	if len(recipient.ChatHistory) != 1 || recipient.ChatHistory[0].SenderID != 2 {
		t.Fatalf("chat history wrong: %+v", recipient.ChatHistory)
	}

	sender, _ := findMatchWith(t, ts, 2, 4)
	if sender.Unread {
		t.Fatalf("sender side marked unread")
	}

	code = postJSON(t, fmt.Sprintf("%s/api/matches/%d/read", ts.URL, m.ID), map[string]any{"userId": 4}, nil)
	if code != http.StatusOK && code != http.StatusNoContent {
		t.Fatalf("mark read status: %d", code)
	}

	recipient, _ = findMatchWith(t, ts, 4, 2)
	if recipient.Unread {
		t.Fatalf("unread not cleared after mark read")
	}

	// An outsider cannot post into the match.
	code = postJSON(t, ts.URL+"/api/messages", map[string]any{"matchId": m.ID, "senderId": 3, "text": "hello"}, nil)
	if code != http.StatusForbidden {
		t.Fatalf("outsider message status: %d", code)
	}
}

func TestDateIdeaLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var created struct {
		ID int64 `json:"id"`
	}
	code := postJSON(t, ts.URL+"/api/date-ideas", map[string]any{
		"creatorId":   3,
		"title":       "Kayak at dawn",
		"description": "Paddle out before the city wakes up.",
		"location":    "Harbor boathouse",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create idea status: %d", code)
	}
	if created.ID <= 0 {
		t.Fatalf("missing idea id: %+v", created)
	}

	code = postJSON(t, fmt.Sprintf("%s/api/date-ideas/%d/apply", ts.URL, created.ID), map[string]any{"userId": 2}, nil)
	if code != http.StatusOK {
		t.Fatalf("apply status: %d", code)
	}

	// Creators cannot apply to their own ideas.
	code = postJSON(t, fmt.Sprintf("%s/api/date-ideas/%d/apply", ts.URL, created.ID), map[string]any{"userId": 3}, nil)
	if code != http.StatusForbidden {
		t.Fatalf("own idea apply status: %d", code)
	}

	var ideas []struct {
		ID      int64 `json:"id"`
		Creator struct {
			ID int64 `json:"id"`
		} `json:"creator"`
		Applicants []struct {
			ID int64 `json:"id"`
		} `json:"applicants"`
	}
	if code := getJSON(t, ts.URL+"/api/date-ideas", &ideas); code != http.StatusOK {
		t.Fatalf("list ideas status: %d", code)
	}
	if len(ideas) == 0 || ideas[0].ID != created.ID {
		t.Fatalf("new idea not first in list: %+v", ideas)
	}
	if ideas[0].Creator.ID != 3 {
		t.Fatalf("creator not resolved: %+v", ideas[0])
	}
	if len(ideas[0].Applicants) != 1 || ideas[0].Applicants[0].ID != 2 {
		t.Fatalf("applicant not resolved: %+v", ideas[0])
	}
}

func TestAssistEndpointsAnswerWithoutAPIKey(t *testing.T) {
	ts := newTestServer(t)

	var comp struct {
		Vibe  string `json:"vibe"`
		Score int    `json:"score"`
	}
	code := postJSON(t, ts.URL+"/api/assist/compatibility", map[string]any{"bio1": "hiking", "bio2": "reading"}, &comp)
	if code != http.StatusOK {
		t.Fatalf("compatibility status: %d", code)
	}
	if comp.Vibe == "" || comp.Score == 0 {
		t.Fatalf("empty compatibility: %+v", comp)
	}

	var suggestions struct {
		Suggestions []string `json:"suggestions"`
	}
	code = postJSON(t, ts.URL+"/api/assist/chat-suggestions", map[string]any{"transcript": "them: hi"}, &suggestions)
	if code != http.StatusOK {
		t.Fatalf("chat suggestions status: %d", code)
	}
	if len(suggestions.Suggestions) == 0 {
		t.Fatalf("no suggestions returned")
	}
}
