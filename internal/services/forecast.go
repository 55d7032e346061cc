package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/platform/gcp"
	"github.com/previsio/previsio-backend/internal/platform/n8n"
	"github.com/previsio/previsio-backend/internal/repos"
)

// MaxUploadBytes caps input CSVs at 50MB.
const MaxUploadBytes = 50 << 20

// ForecastDefaults is the operator-tunable config merged into trigger
// payloads when the caller sends no override.
type ForecastDefaults struct {
	Horizon         int     `yaml:"horizon" json:"horizon,omitempty"`
	SeasonLength    int     `yaml:"season_length" json:"season_length,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level" json:"confidence_level,omitempty"`
	GatingEnabled   *bool   `yaml:"gating_enabled" json:"gating_enabled,omitempty"`
}

func LoadForecastDefaults(log *logger.Logger) *ForecastDefaults {
	cfgPath := strings.TrimSpace(os.Getenv("FORECAST_DEFAULTS_FILE"))
	if cfgPath == "" {
		return nil
	}
	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		log.Warn("could not read forecast defaults file", "path", cfgPath, "error", err)
		return nil
	}
	var defaults ForecastDefaults
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		log.Warn("could not parse forecast defaults file", "path", cfgPath, "error", err)
		return nil
	}
	log.Info("forecast defaults loaded", "path", cfgPath)
	return &defaults
}

// UploadResult reports the three-step upload sequence. The sequence is not
// transactional: a webhook failure leaves the stored object and the pending
// row in place and is reported, not rolled back.
type UploadResult struct {
	Job          *domain.ForecastJob `json:"job"`
	StorageKey   string              `json:"storage_key"`
	TriggerError string              `json:"trigger_error,omitempty"`
}

type ForecastService interface {
	UploadAndTrigger(ctx context.Context, userID uuid.UUID, plan, filename string, file io.Reader) (*UploadResult, error)
	Trigger(ctx context.Context, userID uuid.UUID, plan string, jobID uuid.UUID, configOverride json.RawMessage) error
}

type forecastService struct {
	db       *gorm.DB
	log      *logger.Logger
	jobRepo  repos.ForecastJobRepo
	bucket   gcp.BucketService
	webhook  n8n.Client
	defaults *ForecastDefaults
}

func NewForecastService(
	db *gorm.DB,
	log *logger.Logger,
	jobRepo repos.ForecastJobRepo,
	bucket gcp.BucketService,
	webhook n8n.Client,
	defaults *ForecastDefaults,
) ForecastService {
	return &forecastService{
		db:       db,
		log:      log.With("service", "ForecastService"),
		jobRepo:  jobRepo,
		bucket:   bucket,
		webhook:  webhook,
		defaults: defaults,
	}
}

func sanitizeFilename(filename string) string {
	filename = path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if filename == "." || filename == "/" {
		return ""
	}
	return filename
}

func (fs *forecastService) UploadAndTrigger(ctx context.Context, userID uuid.UUID, plan, filename string, file io.Reader) (*UploadResult, error) {
	if userID == uuid.Nil || file == nil {
		return nil, ErrMissingFields
	}
	filename = sanitizeFilename(filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename", ErrMissingFields)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, fmt.Errorf("only CSV uploads are accepted")
	}
	if fs.bucket == nil {
		return nil, ErrStorageUnavailable
	}

	jobID := uuid.New()
	key := fmt.Sprintf("uploads/%s/%s/%s", userID, jobID, filename)

	// Step 1: object storage.
	if err := fs.bucket.UploadFile(ctx, gcp.BucketCategoryUpload, key, io.LimitReader(file, MaxUploadBytes)); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Step 2: pending job row.
	job := &domain.ForecastJob{
		ID:        jobID,
		UserID:    userID,
		Status:    domain.JobStatusPending,
		Progress:  0,
		InputPath: key,
		Filename:  filename,
		Plan:      plan,
	}
	if _, err := fs.jobRepo.Create(dbctx.Context{Ctx: ctx}, []*domain.ForecastJob{job}); err != nil {
		// The stored object stays; the orphan is reported, not cleaned up.
		return nil, fmt.Errorf("create job row (uploaded object kept at %s): %w", key, err)
	}

	result := &UploadResult{Job: job, StorageKey: key}

	// Step 3: fire the pipeline.
	if err := fs.webhook.TriggerForecast(ctx, n8n.TriggerPayload{
		JobID:          jobID,
		UserID:         userID,
		Plan:           plan,
		InputPath:      key,
		Filename:       filename,
		ConfigOverride: fs.defaultOverride(),
	}); err != nil {
		fs.log.Error("forecast trigger failed after upload", "job_id", jobID, "error", err)
		result.TriggerError = err.Error()
	}
	return result, nil
}

func (fs *forecastService) Trigger(ctx context.Context, userID uuid.UUID, plan string, jobID uuid.UUID, configOverride json.RawMessage) error {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return ErrMissingFields
	}
	job, err := fs.jobRepo.GetByIDForUser(dbctx.Context{Ctx: ctx}, jobID, userID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotOwned
	}

	override := configOverride
	if len(override) == 0 && len(job.ConfigOverride) > 0 {
		override = json.RawMessage(job.ConfigOverride)
	}
	if len(override) == 0 {
		override = fs.defaultOverride()
	} else if len(configOverride) > 0 {
		// Persist the caller's override so a later manual re-trigger reuses it.
		if _, uErr := fs.jobRepo.UpdateFieldsForUser(dbctx.Context{Ctx: ctx}, jobID, userID, map[string]interface{}{
			"config_override": datatypes.JSON(configOverride),
		}); uErr != nil {
			fs.log.Warn("could not persist config override", "job_id", jobID, "error", uErr)
		}
	}

	return fs.webhook.TriggerForecast(ctx, n8n.TriggerPayload{
		JobID:          job.ID,
		UserID:         userID,
		Plan:           plan,
		InputPath:      job.InputPath,
		Filename:       job.Filename,
		ConfigOverride: override,
	})
}

func (fs *forecastService) defaultOverride() json.RawMessage {
	if fs.defaults == nil {
		return nil
	}
	raw, err := json.Marshal(fs.defaults)
	if err != nil {
		return nil
	}
	return raw
}
