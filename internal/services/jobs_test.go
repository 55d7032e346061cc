package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/domain"
)

func TestNewJobStatusView(t *testing.T) {
	tests := []struct {
		name         string
		job          domain.ForecastJob
		wantPending  bool
		wantTerminal bool
		wantComplete bool
		wantFailed   bool
	}{
		{
			name:        "queued counts as pending",
			job:         domain.ForecastJob{Status: domain.JobStatusQueued},
			wantPending: true,
		},
		{
			name: "processing",
			job:  domain.ForecastJob{Status: domain.JobStatusProcessing, Progress: 40},
		},
		{
			name:         "completed",
			job:          domain.ForecastJob{Status: domain.JobStatusCompleted, SeriesCount: 12, AvgWAPE: "0.12345678"},
			wantTerminal: true,
			wantComplete: true,
		},
		{
			name:         "failed",
			job:          domain.ForecastJob{Status: domain.JobStatusFailed, ErrorCode: "PIPELINE_ERROR"},
			wantTerminal: true,
			wantFailed:   true,
		},
		{
			name:         "cancelled is terminal but neither complete nor failed",
			job:          domain.ForecastJob{Status: domain.JobStatusCancelled},
			wantTerminal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.job.ID = uuid.New()
			view := NewJobStatusView(&tt.job)
			if view.IsPending != tt.wantPending {
				t.Fatalf("pending: want=%v got=%v", tt.wantPending, view.IsPending)
			}
			if view.IsTerminal != tt.wantTerminal {
				t.Fatalf("terminal: want=%v got=%v", tt.wantTerminal, view.IsTerminal)
			}
			if view.IsComplete != tt.wantComplete {
				t.Fatalf("complete: want=%v got=%v", tt.wantComplete, view.IsComplete)
			}
			if view.IsFailed != tt.wantFailed {
				t.Fatalf("failed: want=%v got=%v", tt.wantFailed, view.IsFailed)
			}
		})
	}
}

func TestNewJobStatusViewCoercesAverages(t *testing.T) {
	job := &domain.ForecastJob{
		ID:       uuid.New(),
		Status:   domain.JobStatusCompleted,
		AvgWAPE:  "0.12000000",
		AvgSMAPE: "not-a-number",
		AvgBias:  "",
	}
	view := NewJobStatusView(job)
	if view.AvgWAPE == nil || *view.AvgWAPE != 0.12 {
		t.Fatalf("avg wape: want=0.12 got=%v", view.AvgWAPE)
	}
	if view.AvgSMAPE != nil {
		t.Fatalf("unparsable smape must stay nil, got %v", *view.AvgSMAPE)
	}
	if view.AvgBias != nil {
		t.Fatalf("empty bias must stay nil, got %v", *view.AvgBias)
	}
}
