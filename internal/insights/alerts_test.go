package insights

import (
	"math/rand"
	"testing"
)

func hasAlert(alerts []Alert, want Alert) bool {
	for _, a := range alerts {
		if a == want {
			return true
		}
	}
	return false
}

func TestClassifyWAPECutoffs(t *testing.T) {
	cases := []struct {
		name          string
		wape          float64
		wantAttention bool
		wantWatch     bool
	}{
		{name: "well_above_attention", wape: 0.45, wantAttention: true},
		{name: "just_above_attention", wape: 0.2001, wantAttention: true},
		{name: "exactly_attention_cutoff", wape: 0.20, wantWatch: true},
		{name: "between_cutoffs", wape: 0.18, wantWatch: true},
		{name: "just_above_watch", wape: 0.1501, wantWatch: true},
		{name: "exactly_watch_cutoff", wape: 0.15},
		{name: "clean_series", wape: 0.07},
		{name: "zero", wape: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(SeriesSignals{WAPE: tc.wape})
			if hasAlert(got, AlertAttention) != tc.wantAttention {
				t.Fatalf("Classify(wape=%v) attention=%v, want %v", tc.wape, !tc.wantAttention, tc.wantAttention)
			}
			if hasAlert(got, AlertWatch) != tc.wantWatch {
				t.Fatalf("Classify(wape=%v) watch=%v, want %v", tc.wape, !tc.wantWatch, tc.wantWatch)
			}
			if hasAlert(got, AlertAttention) && hasAlert(got, AlertWatch) {
				t.Fatalf("attention and watch must be mutually exclusive, got %v", got)
			}
		})
	}
}

func TestClassifyFlagAlerts(t *testing.T) {
	got := Classify(SeriesSignals{
		WAPE:          0.30,
		DriftDetected: true,
		FirstRun:      true,
		ModelChanged:  true,
		Gated:         true,
	})
	want := []Alert{AlertAttention, AlertDrift, AlertModelChanged, AlertNew, AlertGated}
	if len(got) != len(want) {
		t.Fatalf("Classify returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Classify returned %v, want %v", got, want)
		}
	}
}

func TestSortAlertsTotalOrder(t *testing.T) {
	want := []Alert{AlertAttention, AlertWatch, AlertDrift, AlertModelChanged, AlertNew, AlertGated}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]Alert(nil), want...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		SortAlerts(shuffled)
		for j := range want {
			if shuffled[j] != want[j] {
				t.Fatalf("permutation %d: sorted to %v, want %v", i, shuffled, want)
			}
		}
	}
}

func TestCountAlertsByTypeEmpty(t *testing.T) {
	counts := CountAlertsByType(nil)
	if len(counts) != len(AllAlerts) {
		t.Fatalf("expected %d keys, got %d", len(AllAlerts), len(counts))
	}
	for _, a := range AllAlerts {
		n, ok := counts[a]
		if !ok {
			t.Fatalf("missing key %q", a)
		}
		if n != 0 {
			t.Fatalf("key %q: want 0, got %d", a, n)
		}
	}
}

func TestCountAlertsByType(t *testing.T) {
	sets := [][]Alert{
		{AlertAttention, AlertDrift},
		{AlertWatch},
		{AlertAttention},
		nil,
	}
	counts := CountAlertsByType(sets)
	if counts[AlertAttention] != 2 || counts[AlertWatch] != 1 || counts[AlertDrift] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts[AlertGated] != 0 || counts[AlertNew] != 0 || counts[AlertModelChanged] != 0 {
		t.Fatalf("untouched keys must stay zero: %v", counts)
	}
}
