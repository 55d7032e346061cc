package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/platform/gcp"
	"github.com/previsio/previsio-backend/internal/platform/n8n"
)

type fakeJobRepo struct {
	jobs    map[uuid.UUID]*domain.ForecastJob
	updates []map[string]interface{}
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*domain.ForecastJob)}
}

func (f *fakeJobRepo) Create(dbc dbctx.Context, jobs []*domain.ForecastJob) ([]*domain.ForecastJob, error) {
	for _, job := range jobs {
		f.jobs[job.ID] = job
	}
	return jobs, nil
}

func (f *fakeJobRepo) GetByIDForUser(dbc dbctx.Context, jobID, userID uuid.UUID) (*domain.ForecastJob, error) {
	job, ok := f.jobs[jobID]
	if !ok || job.UserID != userID {
		return nil, nil
	}
	return job, nil
}

func (f *fakeJobRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*domain.ForecastJob, error) {
	var out []*domain.ForecastJob
	for _, job := range f.jobs {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) UpdateFieldsForUser(dbc dbctx.Context, jobID, userID uuid.UUID, updates map[string]interface{}) (bool, error) {
	job, ok := f.jobs[jobID]
	if !ok || job.UserID != userID {
		return false, nil
	}
	f.updates = append(f.updates, updates)
	return true, nil
}

type fakeBucket struct {
	uploads map[string][]byte
	err     error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{uploads: make(map[string][]byte)}
}

func (f *fakeBucket) UploadFile(ctx context.Context, category gcp.BucketCategory, key string, file io.Reader) error {
	if f.err != nil {
		return f.err
	}
	data, _ := io.ReadAll(file)
	f.uploads[key] = data
	return nil
}

func (f *fakeBucket) DeleteFile(ctx context.Context, category gcp.BucketCategory, key string) error {
	delete(f.uploads, key)
	return nil
}

func (f *fakeBucket) DownloadFile(ctx context.Context, category gcp.BucketCategory, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(f.uploads[key]))), nil
}

func (f *fakeBucket) ListKeys(ctx context.Context, category gcp.BucketCategory, prefix string) ([]string, error) {
	return nil, nil
}

func (f *fakeBucket) GetPublicURL(category gcp.BucketCategory, key string) string {
	return "https://cdn.example.com/" + key
}

type fakeWebhook struct {
	triggers []n8n.TriggerPayload
	err      error
}

func (f *fakeWebhook) TriggerForecast(ctx context.Context, payload n8n.TriggerPayload) error {
	if f.err != nil {
		return f.err
	}
	f.triggers = append(f.triggers, payload)
	return nil
}

func (f *fakeWebhook) Chat(ctx context.Context, payload n8n.ChatPayload) (json.RawMessage, error) {
	return json.RawMessage(`{"answer":"ok"}`), nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestUploadAndTriggerHappyPath(t *testing.T) {
	repo := newFakeJobRepo()
	bucket := newFakeBucket()
	webhook := &fakeWebhook{}
	svc := NewForecastService(nil, testLogger(t), repo, bucket, webhook, nil)

	userID := uuid.New()
	result, err := svc.UploadAndTrigger(context.Background(), userID, domain.PlanPro, "ventes.csv", strings.NewReader("sku,qty\na,1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TriggerError != "" {
		t.Fatalf("unexpected trigger error: %s", result.TriggerError)
	}
	if result.Job.Status != domain.JobStatusPending {
		t.Fatalf("job status: want=pending got=%s", result.Job.Status)
	}
	wantKey := "uploads/" + userID.String() + "/" + result.Job.ID.String() + "/ventes.csv"
	if result.StorageKey != wantKey {
		t.Fatalf("storage key: want=%s got=%s", wantKey, result.StorageKey)
	}
	if _, ok := bucket.uploads[wantKey]; !ok {
		t.Fatal("object was not stored")
	}
	if len(webhook.triggers) != 1 || webhook.triggers[0].JobID != result.Job.ID {
		t.Fatalf("webhook not fired for job: %+v", webhook.triggers)
	}
	if _, ok := repo.jobs[result.Job.ID]; !ok {
		t.Fatal("job row was not created")
	}
}

func TestUploadAndTriggerWebhookFailureKeepsJob(t *testing.T) {
	repo := newFakeJobRepo()
	bucket := newFakeBucket()
	webhook := &fakeWebhook{err: n8n.ErrTimeout}
	svc := NewForecastService(nil, testLogger(t), repo, bucket, webhook, nil)

	userID := uuid.New()
	result, err := svc.UploadAndTrigger(context.Background(), userID, domain.PlanFree, "ventes.csv", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("webhook failure must not fail the upload: %v", err)
	}
	if result.TriggerError == "" {
		t.Fatal("trigger error should be reported")
	}
	if _, ok := repo.jobs[result.Job.ID]; !ok {
		t.Fatal("job row must survive the webhook failure")
	}
	if _, ok := bucket.uploads[result.StorageKey]; !ok {
		t.Fatal("stored object must survive the webhook failure")
	}
}

func TestUploadAndTriggerRejectsNonCSV(t *testing.T) {
	svc := NewForecastService(nil, testLogger(t), newFakeJobRepo(), newFakeBucket(), &fakeWebhook{}, nil)
	_, err := svc.UploadAndTrigger(context.Background(), uuid.New(), domain.PlanFree, "ventes.xlsx", strings.NewReader("x"))
	if err == nil {
		t.Fatal("non-CSV upload must be rejected")
	}
}

func TestUploadAndTriggerSanitizesFilename(t *testing.T) {
	repo := newFakeJobRepo()
	bucket := newFakeBucket()
	svc := NewForecastService(nil, testLogger(t), repo, bucket, &fakeWebhook{}, nil)

	result, err := svc.UploadAndTrigger(context.Background(), uuid.New(), domain.PlanFree, "../../etc/ventes.csv", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(result.StorageKey, "/ventes.csv") || strings.Contains(result.StorageKey, "..") {
		t.Fatalf("path traversal survived sanitization: %s", result.StorageKey)
	}
}

func TestTriggerOwnershipDenied(t *testing.T) {
	repo := newFakeJobRepo()
	owner := uuid.New()
	job := &domain.ForecastJob{ID: uuid.New(), UserID: owner, Status: domain.JobStatusPending, InputPath: "uploads/x.csv"}
	repo.jobs[job.ID] = job

	svc := NewForecastService(nil, testLogger(t), repo, newFakeBucket(), &fakeWebhook{}, nil)
	err := svc.Trigger(context.Background(), uuid.New(), domain.PlanFree, job.ID, nil)
	if !errors.Is(err, ErrJobNotOwned) {
		t.Fatalf("want ErrJobNotOwned, got %v", err)
	}
}

func TestTriggerOverridePrecedence(t *testing.T) {
	repo := newFakeJobRepo()
	owner := uuid.New()
	job := &domain.ForecastJob{ID: uuid.New(), UserID: owner, Status: domain.JobStatusPending, InputPath: "uploads/x.csv"}
	repo.jobs[job.ID] = job

	webhook := &fakeWebhook{}
	defaults := &ForecastDefaults{Horizon: 12}
	svc := NewForecastService(nil, testLogger(t), repo, newFakeBucket(), webhook, defaults)

	// Caller override wins and gets persisted on the row.
	callerOverride := json.RawMessage(`{"horizon":6}`)
	if err := svc.Trigger(context.Background(), owner, domain.PlanPro, job.ID, callerOverride); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(webhook.triggers[0].ConfigOverride) != `{"horizon":6}` {
		t.Fatalf("caller override must win, got %s", webhook.triggers[0].ConfigOverride)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("caller override must be persisted, got %v", repo.updates)
	}

	// No caller override and no row override falls back to the defaults.
	if err := svc.Trigger(context.Background(), owner, domain.PlanPro, job.ID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sent ForecastDefaults
	if err := json.Unmarshal(webhook.triggers[1].ConfigOverride, &sent); err != nil {
		t.Fatalf("default override not valid JSON: %v", err)
	}
	if sent.Horizon != 12 {
		t.Fatalf("defaults must apply, got %+v", sent)
	}
}
