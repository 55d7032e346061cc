package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
	"github.com/previsio/previsio-backend/internal/insights"
)

func TestNewSeriesViewDerivesAlertsAndBand(t *testing.T) {
	row := &domain.SeriesResult{
		ID:            uuid.New(),
		SeriesKey:     "magasin-1|ref-42",
		Frequency:     "W-MON",
		WAPE:          "0.31000000",
		SMAPE:         "0.21000000",
		DriftDetected: true,
	}
	view := NewSeriesView(row)

	if view.WAPE == nil || *view.WAPE != 0.31 {
		t.Fatalf("wape: want=0.31 got=%v", view.WAPE)
	}
	if view.WAPEPercent != "31.0%" {
		t.Fatalf("wape percent: want=31.0%% got=%s", view.WAPEPercent)
	}
	if view.Band != insights.BandRed {
		t.Fatalf("band: want=red got=%s", view.Band)
	}
	if view.FrequencyName != "Hebdomadaire" {
		t.Fatalf("frequency name: want=Hebdomadaire got=%s", view.FrequencyName)
	}
	wantAlerts := []insights.Alert{insights.AlertAttention, insights.AlertDrift}
	if len(view.Alerts) != len(wantAlerts) {
		t.Fatalf("alerts: want=%v got=%v", wantAlerts, view.Alerts)
	}
	for i, a := range wantAlerts {
		if view.Alerts[i] != a {
			t.Fatalf("alerts: want=%v got=%v", wantAlerts, view.Alerts)
		}
	}
}

func TestNewSeriesViewMissingMetrics(t *testing.T) {
	row := &domain.SeriesResult{
		ID:        uuid.New(),
		SeriesKey: "magasin-2|ref-7",
		Frequency: "MS",
		FirstRun:  true,
	}
	view := NewSeriesView(row)

	if view.WAPE != nil || view.SMAPE != nil || view.MASE != nil || view.Bias != nil {
		t.Fatalf("absent metrics must stay nil: %+v", view)
	}
	if view.WAPEPercent != "" {
		t.Fatalf("no percent without a wape, got %q", view.WAPEPercent)
	}
	if view.Band != insights.BandGreen {
		t.Fatalf("band defaults to green without a wape, got %s", view.Band)
	}
	if view.FrequencyName != "Mensuel" {
		t.Fatalf("frequency name: want=Mensuel got=%s", view.FrequencyName)
	}
	if len(view.Alerts) != 1 || view.Alerts[0] != insights.AlertNew {
		t.Fatalf("alerts: want=[new] got=%v", view.Alerts)
	}
}

func TestNewSeriesViewWatchBoundary(t *testing.T) {
	row := &domain.SeriesResult{
		ID:        uuid.New(),
		SeriesKey: "magasin-3|ref-9",
		WAPE:      "0.18000000",
	}
	view := NewSeriesView(row)

	if view.Band != insights.BandYellow {
		t.Fatalf("band: want=yellow got=%s", view.Band)
	}
	if len(view.Alerts) != 1 || view.Alerts[0] != insights.AlertWatch {
		t.Fatalf("alerts: want=[watch] got=%v", view.Alerts)
	}
}
