package insights

import "sort"

type Alert string

const (
	AlertAttention    Alert = "attention"
	AlertWatch        Alert = "watch"
	AlertDrift        Alert = "drift"
	AlertModelChanged Alert = "model-changed"
	AlertNew          Alert = "new"
	AlertGated        Alert = "gated"
)

// WAPE cutoffs are ratios, not percents. attention and watch are mutually
// exclusive; the other alerts map independently from their flags.
const (
	wapeAttentionCutoff = 0.20
	wapeWatchCutoff     = 0.15
)

var alertPriority = map[Alert]int{
	AlertAttention:    0,
	AlertWatch:        1,
	AlertDrift:        2,
	AlertModelChanged: 3,
	AlertNew:          4,
	AlertGated:        5,
}

// AllAlerts lists every alert kind in priority order.
var AllAlerts = []Alert{
	AlertAttention,
	AlertWatch,
	AlertDrift,
	AlertModelChanged,
	AlertNew,
	AlertGated,
}

// SeriesSignals is the flat record alert classification runs over.
type SeriesSignals struct {
	WAPE          float64
	DriftDetected bool
	FirstRun      bool
	ModelChanged  bool
	Gated         bool
}

func Classify(sig SeriesSignals) []Alert {
	alerts := make([]Alert, 0, 4)
	switch {
	case sig.WAPE > wapeAttentionCutoff:
		alerts = append(alerts, AlertAttention)
	case sig.WAPE > wapeWatchCutoff:
		alerts = append(alerts, AlertWatch)
	}
	if sig.DriftDetected {
		alerts = append(alerts, AlertDrift)
	}
	if sig.ModelChanged {
		alerts = append(alerts, AlertModelChanged)
	}
	if sig.FirstRun {
		alerts = append(alerts, AlertNew)
	}
	if sig.Gated {
		alerts = append(alerts, AlertGated)
	}
	return alerts
}

// SortAlerts orders alerts by the fixed priority; unknown kinds sink to the
// end without disturbing each other's relative order.
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		pi, iok := alertPriority[alerts[i]]
		pj, jok := alertPriority[alerts[j]]
		if !iok {
			pi = len(alertPriority)
		}
		if !jok {
			pj = len(alertPriority)
		}
		return pi < pj
	})
}

// CountAlertsByType tallies alerts across series. Every known alert kind is
// present in the result, zero included.
func CountAlertsByType(alertSets [][]Alert) map[Alert]int {
	counts := make(map[Alert]int, len(AllAlerts))
	for _, a := range AllAlerts {
		counts[a] = 0
	}
	for _, set := range alertSets {
		for _, a := range set {
			counts[a]++
		}
	}
	return counts
}
