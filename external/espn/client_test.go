package espn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rhalemsc/ncaam-summarizer/internal/platform/logging"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/resilience"
	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

func newTestClient(srv *httptest.Server, maxRetries int) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestClientFetchTeams_DrillsLeaguePayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "400" {
			t.Fatalf("unexpected limit: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sports": [{"leagues": [{"teams": [
				{"team": {"id": "52", "displayName": "Florida Gators"}},
				{"team": {"id": "96", "displayName": "Kentucky Wildcats"}},
				{"team": {"id": "", "displayName": "No ID Filler"}}
			]}]}]
		}`))
	}))
	defer srv.Close()

	teams, err := newTestClient(srv, 0).FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("fetch teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("unexpected team count: got=%d want=2", len(teams))
	}
	if teams[0].ID != "52" || teams[0].DisplayName != "Florida Gators" {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
}

func TestClientFetchSchedule_FlattensCompetitions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/52/schedule" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2024" {
			t.Fatalf("unexpected season: %s", got)
		}
		if got := r.URL.Query().Get("seasontype"); got != "2" {
			t.Fatalf("unexpected seasontype: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events": [
			{
				"id": "401520000",
				"date": "2024-01-15T00:00Z",
				"competitions": [{
					"status": {"type": {"completed": true}},
					"competitors": [
						{"winner": true, "team": {"id": "52", "displayName": "Florida Gators"}, "score": {"value": 78.0, "displayValue": "78"}},
						{"team": {"id": "96", "displayName": "Kentucky Wildcats"}, "score": {"value": 70.0, "displayValue": "70"}}
					]
				}]
			},
			{"id": "401520001", "date": "2099-01-01T00:00Z", "competitions": []}
		]}`))
	}))
	defer srv.Close()

	events, err := newTestClient(srv, 0).FetchSchedule(context.Background(), "52", 2024, 2)
	if err != nil {
		t.Fatalf("fetch schedule: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("unexpected event count: got=%d want=2", len(events))
	}

	first := events[0]
	if !first.Completed {
		t.Fatalf("expected completed event: %+v", first)
	}
	if len(first.Competitors) != 2 {
		t.Fatalf("unexpected competitor count: %d", len(first.Competitors))
	}
	if !first.Competitors[0].Winner || first.Competitors[0].Score == nil || *first.Competitors[0].Score != 78 {
		t.Fatalf("unexpected winning competitor: %+v", first.Competitors[0])
	}
	if first.Competitors[1].Winner {
		t.Fatalf("opponent must not be flagged as winner")
	}

	if events[1].Completed || len(events[1].Competitors) != 0 {
		t.Fatalf("event without a competition must map incomplete: %+v", events[1])
	}
}

func TestClientFetchSchedule_ScoreFallsBackToDisplayValue(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events": [{
			"id": "401520002",
			"date": "2024-02-01T00:00Z",
			"competitions": [{
				"status": {"type": {"completed": true}},
				"competitors": [
					{"team": {"id": "52"}, "score": {"displayValue": "61"}},
					{"team": {"id": "99"}, "score": {}}
				]
			}]
		}]}`))
	}))
	defer srv.Close()

	events, err := newTestClient(srv, 0).FetchSchedule(context.Background(), "52", 0, 0)
	if err != nil {
		t.Fatalf("fetch schedule: %v", err)
	}
	subject := events[0].Competitors[0]
	if subject.Score == nil || *subject.Score != 61 {
		t.Fatalf("display value must back the score: %+v", subject)
	}
	if events[0].Competitors[1].Score != nil {
		t.Fatalf("empty score object must map to nil")
	}
}

func TestClientFetchGameSummary_KeepsRawSections(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summary" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("event"); got != "401520000" {
			t.Fatalf("unexpected event: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"header": {"id": "401520000"},
			"boxscore": {"teams": []},
			"article": {"headline": "Recap"},
			"news": {"articles": []},
			"videos": []
		}`))
	}))
	defer srv.Close()

	detail, err := newTestClient(srv, 0).FetchGameSummary(context.Background(), "401520000")
	if err != nil {
		t.Fatalf("fetch game summary: %v", err)
	}
	if string(detail.Header) != `{"id": "401520000"}` {
		t.Fatalf("header must keep raw provider bytes: %s", detail.Header)
	}
	if detail.Leaders != nil {
		t.Fatalf("absent sections must stay nil")
	}
	if detail.Article == nil {
		t.Fatalf("editorial fields must be decoded so they can be stripped later")
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"seasons": [{"year": 2024, "displayName": "2023-24"}]}`))
	}))
	defer srv.Close()

	seasons, err := newTestClient(srv, 2).FetchSeasons(context.Background())
	if err != nil {
		t.Fatalf("fetch seasons: %v", err)
	}
	if len(seasons) != 1 || seasons[0].Year != 2024 {
		t.Fatalf("unexpected seasons: %+v", seasons)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "bad request"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 3).FetchSeasons(context.Background())
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", got)
	}
}

func TestClientMapsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 0).FetchGameSummary(context.Background(), "no-such-game")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientCircuitBreakerRejectsWhenOpen(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchSeasons(context.Background()); err == nil {
		t.Fatalf("expected upstream failure")
	}
	_, err := client.FetchSeasons(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
}
