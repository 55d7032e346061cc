package insights

import "testing"

func TestParseRatio(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{name: "plain", in: "0.1234", want: 0.1234, wantOK: true},
		{name: "whitespace", in: "  0.5 ", want: 0.5, wantOK: true},
		{name: "zero", in: "0", want: 0, wantOK: true},
		{name: "negative_bias", in: "-0.02", want: -0.02, wantOK: true},
		{name: "empty", in: "", wantOK: false},
		{name: "garbage", in: "n/a", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseRatio(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ParseRatio(%q) ok=%v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseRatio(%q)=%v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.1234, 1); got != "12.3%" {
		t.Fatalf("FormatPercent=%q", got)
	}
	if got := FormatPercent(0.2, 0); got != "20%" {
		t.Fatalf("FormatPercent=%q", got)
	}
}
