package insights

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRatio coerces a numeric column that arrived as a string into a
// float64 ratio. The driver hands numerics over as text; empty means absent.
func ParseRatio(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PercentFromRatio converts a stored ratio (0-1) into display percent.
func PercentFromRatio(ratio float64) float64 {
	return ratio * 100
}

func FormatPercent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, PercentFromRatio(ratio))
}
