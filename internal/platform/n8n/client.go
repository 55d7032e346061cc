package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/envutil"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

var (
	// ErrNotConfigured means the target webhook URL is absent; callers map
	// this to 503.
	ErrNotConfigured = errors.New("webhook URL not configured")

	// ErrTimeout means the upstream call hit the client ceiling; callers map
	// this to 504.
	ErrTimeout = errors.New("webhook call timed out")
)

// UpstreamError is a non-2xx reply from the workflow tool; callers map it
// to 502.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("webhook upstream returned %d: %s", e.StatusCode, e.Body)
}

// TriggerPayload starts a forecast run. user_id is always the authenticated
// user, never client input.
type TriggerPayload struct {
	JobID          uuid.UUID       `json:"job_id"`
	UserID         uuid.UUID       `json:"user_id"`
	Plan           string          `json:"plan"`
	InputPath      string          `json:"input_path"`
	Filename       string          `json:"filename"`
	ConfigOverride json.RawMessage `json:"config_override,omitempty"`
}

type ChatPayload struct {
	JobID    uuid.UUID       `json:"jobId"`
	UserID   uuid.UUID       `json:"userId"`
	Question string          `json:"question"`
	History  json.RawMessage `json:"history"`
}

type Client interface {
	TriggerForecast(ctx context.Context, payload TriggerPayload) error
	Chat(ctx context.Context, payload ChatPayload) (json.RawMessage, error)
}

type Config struct {
	ForecastURL string
	ChatURL     string
	Secret      string
	Timeout     time.Duration
}

func ConfigFromEnv() Config {
	// 55s: under the 60s budget of the serverless callers that front this.
	timeoutSec := envutil.Int("N8N_WEBHOOK_TIMEOUT_SECONDS", 55)
	return Config{
		ForecastURL: envutil.String("N8N_FORECAST_WEBHOOK_URL", ""),
		ChatURL:     envutil.String("N8N_CHAT_WEBHOOK_URL", ""),
		Secret:      envutil.String("N8N_WEBHOOK_SECRET", ""),
		Timeout:     time.Duration(timeoutSec) * time.Second,
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 55 * time.Second
	}
	c := &client{
		log: log.With("client", "N8NClient"),
		cfg: cfg,
		// Timeout enforced per-call via context so the mapping to ErrTimeout
		// stays unambiguous.
		httpClient: &http.Client{},
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		c.log.Warn("N8N_WEBHOOK_SECRET not set, outbound webhooks will be unsigned")
	}
	return c
}

func (c *client) TriggerForecast(ctx context.Context, payload TriggerPayload) error {
	_, err := c.post(ctx, c.cfg.ForecastURL, payload)
	return err
}

func (c *client) Chat(ctx context.Context, payload ChatPayload) (json.RawMessage, error) {
	raw, err := c.post(ctx, c.cfg.ChatURL, payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNotConfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if secret := strings.TrimSpace(c.cfg.Secret); secret != "" {
		req.Header.Set(SignatureHeader, Sign(secret, time.Now(), body))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("webhook upstream failure", "url", url, "status", resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	if readErr != nil {
		return nil, readErr
	}
	return respBody, nil
}
