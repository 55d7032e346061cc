package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/insights"
	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/repos"
)

// SeriesView is one series result enriched with derived display fields. The
// raw numeric columns arrive as strings; the parsed ratios ride alongside so
// callers never re-coerce.
type SeriesView struct {
	ID            uuid.UUID `json:"id"`
	SeriesKey     string    `json:"series_key"`
	Product       string    `json:"product"`
	Frequency     string    `json:"frequency"`
	FrequencyName string    `json:"frequency_name"`

	WAPE        *float64 `json:"wape,omitempty"`
	WAPEPercent string   `json:"wape_percent,omitempty"`
	SMAPE       *float64 `json:"smape,omitempty"`
	MASE        *float64 `json:"mase,omitempty"`
	Bias        *float64 `json:"bias,omitempty"`

	ChampionModel string `json:"champion_model"`
	ABCClass      string `json:"abc_class"`
	XYZClass      string `json:"xyz_class"`

	Band   insights.Band    `json:"band"`
	Alerts []insights.Alert `json:"alerts"`
}

// SeriesPage is the paginated series listing for a job, with the per-alert
// tallies computed over the returned page.
type SeriesPage struct {
	Series      []SeriesView           `json:"series"`
	Total       int64                  `json:"total"`
	AlertCounts map[insights.Alert]int `json:"alert_counts"`
}

type SeriesService interface {
	ListByJob(ctx context.Context, jobID, userID uuid.UUID, limit, offset int) (*SeriesPage, error)
}

type seriesService struct {
	log        *logger.Logger
	jobRepo    repos.ForecastJobRepo
	seriesRepo repos.SeriesResultRepo
}

func NewSeriesService(log *logger.Logger, jobRepo repos.ForecastJobRepo, seriesRepo repos.SeriesResultRepo) SeriesService {
	return &seriesService{
		log:        log.With("service", "SeriesService"),
		jobRepo:    jobRepo,
		seriesRepo: seriesRepo,
	}
}

func (s *seriesService) ListByJob(ctx context.Context, jobID, userID uuid.UUID, limit, offset int) (*SeriesPage, error) {
	dbc := dbctx.Context{Ctx: ctx}
	job, err := s.jobRepo.GetByIDForUser(dbc, jobID, userID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotOwned
	}

	rows, err := s.seriesRepo.ListByJobForUser(dbc, jobID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.seriesRepo.CountByJobForUser(dbc, jobID, userID)
	if err != nil {
		return nil, err
	}

	views := make([]SeriesView, 0, len(rows))
	alertSets := make([][]insights.Alert, 0, len(rows))
	for _, row := range rows {
		view := NewSeriesView(row)
		views = append(views, view)
		alertSets = append(alertSets, view.Alerts)
	}

	return &SeriesPage{
		Series:      views,
		Total:       total,
		AlertCounts: insights.CountAlertsByType(alertSets),
	}, nil
}

// NewSeriesView derives the display fields for one result row. The band uses
// the alerting WAPE cutoffs so the color and the alert never disagree.
func NewSeriesView(row *domain.SeriesResult) SeriesView {
	view := SeriesView{
		ID:            row.ID,
		SeriesKey:     row.SeriesKey,
		Product:       row.Product,
		Frequency:     row.Frequency,
		FrequencyName: insights.FrequencyLabel(row.Frequency),
		ChampionModel: row.ChampionModel,
		ABCClass:      row.ABCClass,
		XYZClass:      row.XYZClass,
		Band:          insights.BandGreen,
		Alerts:        []insights.Alert{},
	}

	signals := insights.SeriesSignals{
		DriftDetected: row.DriftDetected,
		FirstRun:      row.FirstRun,
		ModelChanged:  row.ModelChanged,
		Gated:         row.Gated,
	}
	if wape, ok := insights.ParseRatio(row.WAPE); ok {
		view.WAPE = &wape
		view.WAPEPercent = insights.FormatPercent(wape, 1)
		view.Band = insights.BandFor(wape, insights.LowerIsBetter, 0.15, 0.20)
		signals.WAPE = wape
	}
	if smape, ok := insights.ParseRatio(row.SMAPE); ok {
		view.SMAPE = &smape
	}
	if mase, ok := insights.ParseRatio(row.MASE); ok {
		view.MASE = &mase
	}
	if bias, ok := insights.ParseRatio(row.Bias); ok {
		view.Bias = &bias
	}

	alerts := insights.Classify(signals)
	insights.SortAlerts(alerts)
	view.Alerts = alerts
	return view
}
