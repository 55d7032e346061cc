package insights

import "strings"

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ClassifyFrequency maps a pandas-style frequency code from the pipeline to a
// display bucket. Unknown or empty codes default to monthly.
func ClassifyFrequency(code string) Frequency {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case c == "7D", c == "W", strings.HasPrefix(c, "W-"):
		return FrequencyWeekly
	case c == "MS", c == "ME", c == "M":
		return FrequencyMonthly
	default:
		return FrequencyMonthly
	}
}

func FrequencyLabel(code string) string {
	if ClassifyFrequency(code) == FrequencyWeekly {
		return "Hebdomadaire"
	}
	return "Mensuel"
}
