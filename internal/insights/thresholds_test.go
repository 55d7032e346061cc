package insights

import "testing"

func TestBandForLowerIsBetter(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  Band
	}{
		{name: "below_green", value: 0.05, want: BandGreen},
		{name: "at_green_cutoff", value: 0.15, want: BandGreen},
		{name: "between", value: 0.18, want: BandYellow},
		{name: "at_yellow_cutoff", value: 0.20, want: BandYellow},
		{name: "above_yellow", value: 0.21, want: BandRed},
		{name: "far_above", value: 0.90, want: BandRed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BandFor(tc.value, LowerIsBetter, 0.15, 0.20)
			if got != tc.want {
				t.Fatalf("BandFor(%v)=%q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestBandForHigherIsBetter(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  Band
	}{
		{name: "above_green", value: 0.99, want: BandGreen},
		{name: "at_green_cutoff", value: 0.90, want: BandGreen},
		{name: "between", value: 0.85, want: BandYellow},
		{name: "at_yellow_cutoff", value: 0.80, want: BandYellow},
		{name: "below_yellow", value: 0.79, want: BandRed},
		{name: "far_below", value: 0.10, want: BandRed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BandFor(tc.value, HigherIsBetter, 0.90, 0.80)
			if got != tc.want {
				t.Fatalf("BandFor(%v)=%q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestBandForMonotonic(t *testing.T) {
	// Walking a lower-is-better metric upward never improves the band.
	rank := map[Band]int{BandGreen: 0, BandYellow: 1, BandRed: 2}
	prev := BandGreen
	for v := 0.0; v <= 1.0; v += 0.01 {
		got := BandFor(v, LowerIsBetter, 0.15, 0.20)
		if rank[got] < rank[prev] {
			t.Fatalf("band improved from %q to %q at value %v", prev, got, v)
		}
		prev = got
	}

	// And downward for higher-is-better.
	prev = BandGreen
	for v := 1.0; v >= 0.0; v -= 0.01 {
		got := BandFor(v, HigherIsBetter, 0.90, 0.80)
		if rank[got] < rank[prev] {
			t.Fatalf("band improved from %q to %q at value %v", prev, got, v)
		}
		prev = got
	}
}
