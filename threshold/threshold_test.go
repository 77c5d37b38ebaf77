package threshold

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Range
		wantErr bool
	}{
		// Standard formats from the Nagios guidelines.
		{
			name:  "simple upper bound",
			input: "10",
			want:  Range{Start: 0, End: 10},
		},
		{
			name:  "open-ended upper",
			input: "10:",
			want:  Range{Start: 10, End: math.Inf(1)},
		},
		{
			name:  "no lower bound",
			input: "~:10",
			want:  Range{Start: math.Inf(-1), End: 10},
		},
		{
			name:  "explicit range",
			input: "10:20",
			want:  Range{Start: 10, End: 20},
		},
		{
			name:  "inside range",
			input: "@10:20",
			want:  Range{Start: 10, End: 20, Inside: true},
		},
		{
			name:  "inside with no lower bound",
			input: "@~:20",
			want:  Range{Start: math.Inf(-1), End: 20, Inside: true},
		},
		{
			name:  "empty start defaults to zero",
			input: ":20",
			want:  Range{Start: 0, End: 20},
		},
		{
			name:  "unbounded both sides",
			input: "~:",
			want:  Range{Start: math.Inf(-1), End: math.Inf(1)},
		},

		// Negative values.
		{
			name:  "negative start",
			input: "-10:20",
			want:  Range{Start: -10, End: 20},
		},
		{
			name:  "negative both",
			input: "-20:-10",
			want:  Range{Start: -20, End: -10},
		},

		// Float values.
		{
			name:  "float range",
			input: "1.5:9.5",
			want:  Range{Start: 1.5, End: 9.5},
		},
		{
			name:  "float simple",
			input: "3.14",
			want:  Range{Start: 0, End: 3.14},
		},

		// Zero.
		{
			name:  "zero threshold",
			input: "0",
			want:  Range{Start: 0, End: 0},
		},
		{
			name:  "tilde colon zero",
			input: "~:0",
			want:  Range{Start: math.Inf(-1), End: 0},
		},

		// Reversed bounds are swapped, not rejected.
		{
			name:  "reversed bounds",
			input: "20:10",
			want:  Range{Start: 10, End: 20},
		},
		{
			name:  "reversed float bounds",
			input: "9.5:1.5",
			want:  Range{Start: 1.5, End: 9.5},
		},
		{
			name:  "reversed inside bounds",
			input: "@20:10",
			want:  Range{Start: 10, End: 20, Inside: true},
		},

		// Error cases.
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "at sign only",
			input:   "@",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "non-numeric end",
			input:   "10:abc",
			wantErr: true,
		},
		{
			name:    "non-numeric start",
			input:   "abc:10",
			wantErr: true,
		},
		{
			name:    "tilde in end position",
			input:   "10:~",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrorKinds(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(\"\") error = %v, want ErrEmpty", err)
	}
	if _, err := Parse("@"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(\"@\") error = %v, want ErrEmpty", err)
	}

	var numErr *strconv.NumError
	if _, err := Parse("abc"); !errors.As(err, &numErr) {
		t.Errorf("Parse(\"abc\") error = %v, want wrapped *strconv.NumError", err)
	}
	if _, err := Parse("10:abc"); !errors.As(err, &numErr) {
		t.Errorf("Parse(\"10:abc\") error = %v, want wrapped *strconv.NumError", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Range
		want Range
	}{
		{"Outside", Outside(10, 20), Range{Start: 10, End: 20}},
		{"Inside", Inside(10, 20), Range{Start: 10, End: 20, Inside: true}},
		{"AbovePos", AbovePos(10), Range{Start: 0, End: 10}},
		{"Below", Below(10), Range{Start: 10, End: math.Inf(1)}},
		{"Above", Above(10), Range{Start: math.Inf(-1), End: 10}},
		{"Outside swaps reversed bounds", Outside(20, 10), Range{Start: 10, End: 20}},
		{"Inside swaps reversed bounds", Inside(20, 10), Range{Start: 10, End: 20, Inside: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestIsAlert(t *testing.T) {
	tests := []struct {
		name  string
		rng   string
		value float64
		want  bool
	}{
		// Standard threshold "80": alert if outside 0..80.
		{"80 / value=0", "80", 0, false},
		{"80 / value=79", "80", 79, false},
		{"80 / value=80 (boundary)", "80", 80, false},
		{"80 / value=80.1", "80", 80.1, true},
		{"80 / value=-1", "80", -1, true},

		// Range "10:20": alert if outside 10..20.
		{"10:20 / value=9", "10:20", 9, true},
		{"10:20 / value=10 (lower boundary)", "10:20", 10, false},
		{"10:20 / value=15", "10:20", 15, false},
		{"10:20 / value=20 (upper boundary)", "10:20", 20, false},
		{"10:20 / value=21", "10:20", 21, true},

		// Inside range "@10:20": alert if inside 10..20.
		{"@10:20 / value=9", "@10:20", 9, false},
		{"@10:20 / value=10 (lower boundary)", "@10:20", 10, true},
		{"@10:20 / value=15", "@10:20", 15, true},
		{"@10:20 / value=20 (upper boundary)", "@10:20", 20, true},
		{"@10:20 / value=21", "@10:20", 21, false},

		// Open-ended "10:": alert if < 10.
		{"10: / value=9", "10:", 9, true},
		{"10: / value=10 (boundary)", "10:", 10, false},
		{"10: / value=1000000", "10:", 1000000, false},

		// No lower bound "~:10": alert if > 10.
		{"~:10 / value=-1000", "~:10", -1000, false},
		{"~:10 / value=0", "~:10", 0, false},
		{"~:10 / value=10 (boundary)", "~:10", 10, false},
		{"~:10 / value=11", "~:10", 11, true},

		// Zero threshold.
		{"0 / value=0", "0", 0, false},
		{"0 / value=0.1", "0", 0.1, true},
		{"0 / value=-0.1", "0", -0.1, true},

		// Negative range.
		{"-10:20 / value=-11", "-10:20", -11, true},
		{"-10:20 / value=-10", "-10:20", -10, false},
		{"-10:20 / value=0", "-10:20", 0, false},
		{"-10:20 / value=21", "-10:20", 21, true},

		// Inside with tilde.
		{"@~:20 / value=-1000", "@~:20", -1000, true},
		{"@~:20 / value=20", "@~:20", 20, true},
		{"@~:20 / value=21", "@~:20", 21, false},

		// Unbounded on both sides: outside never alerts.
		{"~: / value=-1e12", "~:", -1e12, false},
		{"~: / value=1e12", "~:", 1e12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.rng)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.rng, err)
			}

			got := r.IsAlert(tt.value)
			if got != tt.want {
				t.Errorf("Parse(%q).IsAlert(%v) = %v, want %v",
					tt.rng, tt.value, got, tt.want)
			}
		})
	}
}

// Outside and Inside over the same bounds are exact complements for
// every value, boundaries included.
func TestOutsideInsideComplement(t *testing.T) {
	outside := Outside(10, 20)
	inside := Inside(10, 20)

	values := []float64{-5, 0, 9.999, 10, 15, 20, 20.001, 100}
	for _, v := range values {
		if outside.IsAlert(v) == inside.IsAlert(v) {
			t.Errorf("Outside and Inside agree at %v: both %v", v, outside.IsAlert(v))
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple upper", "80", "80"},
		{"explicit range", "10:20", "10:20"},
		{"inside range", "@10:20", "@10:20"},
		{"no lower bound", "~:10", "~:10"},
		{"open-ended upper", "10:", "10:"},
		{"zero colon", "0:", "0:"},
		{"float range", "1.5:9.5", "1.5:9.5"},
		{"inside with tilde", "@~:20", "@~:20"},
		{"zero", "0", "0"},
		{"tilde colon zero", "~:0", "~:0"},
		{"negative start", "-10:20", "-10:20"},
		{"unbounded both sides", "~:", "~:"},
		{"huge upper bound", "10000000000000000000", "10000000000000000000"},
		{"inside simple upper", "@10", "@10"},
		{"empty start collapses to bare end", ":20", "20"},
		{"reversed bounds canonicalized", "20:10", "10:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}

			got := r.String()
			if got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundtrip(t *testing.T) {
	ranges := []Range{
		AbovePos(80),
		Outside(10, 20),
		Inside(10, 20),
		Above(10),
		Below(10),
		Below(5),
		Outside(1.5, 9.5),
		Inside(math.Inf(-1), 20),
		AbovePos(0),
		Above(0),
		Outside(-10, 20),
		Outside(math.Inf(-1), math.Inf(1)),
		AbovePos(1e19),
	}

	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			got, err := Parse(r.String())
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", r.String(), err)
			}
			if got != r {
				t.Errorf("roundtrip mismatch: Parse(%q) = %+v, want %+v", r.String(), got, r)
			}
		})
	}
}
