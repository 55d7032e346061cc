package insights

type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

// BandFor maps a metric value to a three-level color band. For lower-is-better
// metrics the band degrades as the value climbs past greenCutoff then
// yellowCutoff; for higher-is-better metrics it degrades as the value drops
// below the same cutoffs.
func BandFor(value float64, dir Direction, greenCutoff, yellowCutoff float64) Band {
	if dir == HigherIsBetter {
		switch {
		case value >= greenCutoff:
			return BandGreen
		case value >= yellowCutoff:
			return BandYellow
		default:
			return BandRed
		}
	}
	switch {
	case value <= greenCutoff:
		return BandGreen
	case value <= yellowCutoff:
		return BandYellow
	default:
		return BandRed
	}
}
