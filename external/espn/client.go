package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/rhalemsc/ncaam-summarizer/internal/domain/game"
	"github.com/rhalemsc/ncaam-summarizer/internal/domain/roster"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/logging"
	"github.com/rhalemsc/ncaam-summarizer/internal/platform/resilience"
	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

const (
	defaultBaseURL   = "http://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"
	defaultTeamLimit = "400"
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchTeams(ctx context.Context) ([]roster.Team, error) {
	var envelope teamsEnvelope
	if _, err := c.doJSON(ctx, "/teams", map[string]string{"limit": defaultTeamLimit}, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}

	if len(envelope.Sports) == 0 || len(envelope.Sports[0].Leagues) == 0 {
		return nil, fmt.Errorf("provider teams payload missing league data")
	}

	wrapped := envelope.Sports[0].Leagues[0].Teams
	teams := make([]roster.Team, 0, len(wrapped))
	for _, w := range wrapped {
		id := strings.TrimSpace(w.Team.ID)
		if id == "" {
			continue
		}
		teams = append(teams, roster.Team{
			ID:          id,
			DisplayName: strings.TrimSpace(w.Team.DisplayName),
		})
	}
	return teams, nil
}

func (c *Client) FetchSeasons(ctx context.Context) ([]roster.Season, error) {
	var envelope seasonsEnvelope
	if _, err := c.doJSON(ctx, "/seasons", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch seasons: %w", err)
	}

	seasons := make([]roster.Season, 0, len(envelope.Seasons))
	for _, s := range envelope.Seasons {
		if s.Year <= 0 {
			continue
		}
		seasons = append(seasons, roster.Season{
			Year:        s.Year,
			DisplayName: strings.TrimSpace(s.DisplayName),
		})
	}
	return seasons, nil
}

func (c *Client) FetchSchedule(ctx context.Context, teamID string, season int, seasonType int) ([]usecase.ExternalEvent, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("team id must not be empty")
	}

	query := map[string]string{}
	if season > 0 {
		query["season"] = strconv.Itoa(season)
	}
	if seasonType > 0 {
		query["seasontype"] = strconv.Itoa(seasonType)
	}

	path := fmt.Sprintf("/teams/%s/schedule", url.PathEscape(teamID))
	var envelope scheduleEnvelope
	if _, err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule team_id=%s: %w", teamID, err)
	}

	events := make([]usecase.ExternalEvent, 0, len(envelope.Events))
	for _, ev := range envelope.Events {
		events = append(events, mapEvent(ev))
	}
	return events, nil
}

func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (game.Detail, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Detail{}, fmt.Errorf("game id must not be empty")
	}

	var detail game.Detail
	if _, err := c.doJSON(ctx, "/summary", map[string]string{"event": gameID}, &detail); err != nil {
		return game.Detail{}, fmt.Errorf("fetch game summary event=%s: %w", gameID, err)
	}
	return detail, nil
}

// mapEvent flattens a schedule event to the shape the schedule builder
// consumes. The provider nests per-game data one level down under
// competitions[0]; events without a competition map to an incomplete
// event and fall out downstream.
func mapEvent(ev eventPayload) usecase.ExternalEvent {
	mapped := usecase.ExternalEvent{
		ID:   strings.TrimSpace(ev.ID),
		Date: strings.TrimSpace(ev.Date),
	}
	if len(ev.Competitions) == 0 {
		return mapped
	}

	competition := ev.Competitions[0]
	mapped.Completed = competition.Status.Type.Completed
	mapped.Competitors = make([]usecase.ExternalCompetitor, 0, len(competition.Competitors))
	for _, comp := range competition.Competitors {
		mapped.Competitors = append(mapped.Competitors, usecase.ExternalCompetitor{
			TeamID:   strings.TrimSpace(comp.Team.ID),
			TeamName: strings.TrimSpace(comp.Team.DisplayName),
			Score:    comp.Score.points(),
			Winner:   comp.Winner,
		})
	}
	return mapped
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isESPNCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 12<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			} else if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: provider status=404 body=%s", usecase.ErrNotFound, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isESPNCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errESPNTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
