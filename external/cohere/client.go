package cohere

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/rhalemsc/ncaam-summarizer/internal/platform/resilience"
	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

const (
	defaultBaseURL = "https://api.cohere.com"
	defaultModel   = "command-a-03-2025"

	// Generation settings tuned for factual recaps: low temperature keeps
	// the model anchored to the box score, and the token ceiling covers
	// seven HTML sections with room to spare.
	generationTemperature = 0.2
	generationMaxTokens   = 2500
)

var errCohereTransient = crerr.New("cohere transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Model reports the configured model identifier for response metadata.
func (c *Client) Model() string {
	return c.model
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatResponse struct {
	Text string `json:"text"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cohere circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: narrative provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	if strings.TrimSpace(prompt) == "" {
		return "", crerr.New("prompt is required")
	}

	body, err := sonic.Marshal(chatRequest{
		Model:       c.model,
		Message:     prompt,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", strings.NewReader(string(body)))
	if err != nil {
		return "", crerr.Wrap(err, "create chat request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: send chat request: %v", errCohereTransient, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		callErr := fmt.Errorf("%w: read chat response: %v", errCohereTransient, err)
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf("%w: chat status=%d body=%s", errCohereTransient, resp.StatusCode, abbreviateBody(raw))
			c.recordCircuitResult(callErr)
			return "", callErr
		}
		callErr := fmt.Errorf("chat status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		c.recordCircuitResult(callErr)
		return "", callErr
	}

	var parsed chatResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		c.recordCircuitResult(nil)
		return "", crerr.Wrap(err, "decode chat response")
	}
	if strings.TrimSpace(parsed.Text) == "" {
		c.recordCircuitResult(nil)
		return "", crerr.New("chat response carried no text")
	}

	c.recordCircuitResult(nil)
	return parsed.Text, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && stderrors.Is(err, errCohereTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
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
