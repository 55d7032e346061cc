package n8n

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestTriggerForecastSignsAndForwards(t *testing.T) {
	secret := "whsec_test"
	var gotHeader string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(SignatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testLogger(t), Config{ForecastURL: srv.URL, Secret: secret, Timeout: 5 * time.Second})
	payload := TriggerPayload{
		JobID:     uuid.New(),
		UserID:    uuid.New(),
		Plan:      "pro",
		InputPath: "uploads/u/j/demand.csv",
		Filename:  "demand.csv",
	}
	if err := c.TriggerForecast(context.Background(), payload); err != nil {
		t.Fatalf("TriggerForecast: %v", err)
	}

	if gotHeader == "" {
		t.Fatal("expected signature header on signed client")
	}
	if err := Verify(secret, gotHeader, gotBody, time.Now(), DefaultVerifyWindow); err != nil {
		t.Fatalf("received signature does not verify: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if decoded["filename"] != "demand.csv" || decoded["plan"] != "pro" {
		t.Fatalf("unexpected forwarded body: %s", gotBody)
	}
}

func TestTriggerForecastUnsignedWithoutSecret(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(SignatureHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testLogger(t), Config{ForecastURL: srv.URL, Timeout: 5 * time.Second})
	if err := c.TriggerForecast(context.Background(), TriggerPayload{JobID: uuid.New()}); err != nil {
		t.Fatalf("TriggerForecast: %v", err)
	}
	if gotHeader != "" {
		t.Fatalf("expected no signature header without secret, got %q", gotHeader)
	}
}

func TestTriggerForecastNotConfigured(t *testing.T) {
	c := NewClient(testLogger(t), Config{Timeout: time.Second})
	err := c.TriggerForecast(context.Background(), TriggerPayload{JobID: uuid.New()})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
}

func TestTriggerForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testLogger(t), Config{ForecastURL: srv.URL, Timeout: 5 * time.Second})
	err := c.TriggerForecast(context.Background(), TriggerPayload{JobID: uuid.New()})
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("want UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", upstreamErr.StatusCode)
	}
}

func TestTriggerForecastTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(testLogger(t), Config{ForecastURL: srv.URL, Timeout: 50 * time.Millisecond})
	err := c.TriggerForecast(context.Background(), TriggerPayload{JobID: uuid.New()})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
}

func TestChatRelaysAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Errorf("chat body not JSON: %v", err)
		}
		if decoded["question"] != "pourquoi le biais augmente ?" {
			t.Errorf("unexpected question: %v", decoded["question"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"le drift est detecte sur 3 series"}`))
	}))
	defer srv.Close()

	c := NewClient(testLogger(t), Config{ChatURL: srv.URL, Timeout: 5 * time.Second})
	raw, err := c.Chat(context.Background(), ChatPayload{
		JobID:    uuid.New(),
		UserID:   uuid.New(),
		Question: "pourquoi le biais augmente ?",
		History:  json.RawMessage(`[]`),
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("answer not JSON: %v", err)
	}
	if out.Answer == "" {
		t.Fatal("empty answer")
	}
}
