// Package threshold parses and evaluates Nagios-standard threshold ranges.
//
// A threshold range defines when a monitoring check should trigger a
// warning or critical alert. The notation follows the Nagios Plugin
// Development Guidelines:
//
//	10      alert if value < 0 or > 10    (outside 0..10)
//	10:     alert if value < 10           (outside 10..+inf)
//	~:10    alert if value > 10           (outside -inf..10)
//	10:20   alert if value < 10 or > 20   (outside 10..20)
//	@10:20  alert if 10 <= value <= 20    (inside 10..20)
//
// This package has zero external dependencies.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmpty is returned by Parse when the range string is empty after the
// optional @ prefix has been stripped.
var ErrEmpty = errors.New("threshold range must not be empty")

// Range represents a parsed Nagios threshold range.
//
// Start and End may be ±Inf; both bounds are inclusive. A Range is an
// immutable value type: construct it once, copy it freely.
type Range struct {
	Start  float64 // Lower bound of the range.
	End    float64 // Upper bound of the range.
	Inside bool    // If true, alert when value is INSIDE the range (@ prefix).
}

// newRange canonicalizes bound order: a range given backwards is swapped,
// never rejected.
func newRange(inside bool, start, end float64) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end, Inside: inside}
}

// Outside returns a Range alerting when a value is not in [start, end].
func Outside(start, end float64) Range {
	return newRange(false, start, end)
}

// Inside returns a Range alerting when a value is in [start, end].
func Inside(start, end float64) Range {
	return newRange(true, start, end)
}

// AbovePos returns a Range alerting when a value is negative or above limit,
// the bare "limit" notation.
func AbovePos(limit float64) Range {
	return Outside(0, limit)
}

// Below returns a Range alerting when a value is below limit, the "limit:"
// notation.
func Below(limit float64) Range {
	return Outside(limit, math.Inf(1))
}

// Above returns a Range alerting when a value is above limit, the "~:limit"
// notation.
func Above(limit float64) Range {
	return Outside(math.Inf(-1), limit)
}

// IsAlert reports whether the given value triggers an alert according to
// this range. Both bounds count as inside.
func (r Range) IsAlert(value float64) bool {
	inside := value >= r.Start && value <= r.End
	if r.Inside {
		return inside
	}
	return !inside
}

// Parse parses a Nagios threshold range string into a Range.
//
// Supported formats:
//
//	"10"      → outside 0..10
//	"10:"     → outside 10..+inf
//	"~:10"    → outside -inf..10
//	"10:20"   → outside 10..20
//	"@10:20"  → inside 10..20
//	"@~:20"   → inside -inf..20
//
// A missing start defaults to 0, a missing end after the colon to +inf.
// Bounds given in reverse order are swapped, not rejected.
func Parse(s string) (Range, error) {
	inside := false
	if strings.HasPrefix(s, "@") {
		inside = true
		s = s[1:]
	}

	if s == "" {
		return Range{}, ErrEmpty
	}

	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		// No colon: the whole string is the end bound.
		end, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid threshold value %q: %w", s, err)
		}
		return newRange(inside, 0, end), nil
	}

	startStr := s[:idx]
	endStr := s[idx+1:]

	var start float64
	switch startStr {
	case "~":
		start = math.Inf(-1)
	case "":
		start = 0
	default:
		v, err := strconv.ParseFloat(startStr, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid start value %q: %w", startStr, err)
		}
		start = v
	}

	end := math.Inf(1)
	if endStr != "" {
		v, err := strconv.ParseFloat(endStr, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid end value %q: %w", endStr, err)
		}
		end = v
	}

	return newRange(inside, start, end), nil
}

// String serializes the Range back to the most compact Nagios notation.
//
// The output round-trips through Parse to an equal Range.
func (r Range) String() string {
	var b strings.Builder

	if r.Inside {
		b.WriteByte('@')
	}

	switch {
	case math.IsInf(r.Start, -1):
		b.WriteByte('~')
		b.WriteByte(':')
		if !math.IsInf(r.End, 1) {
			b.WriteString(formatFloat(r.End))
		}
	case math.IsInf(r.End, 1):
		b.WriteString(formatFloat(r.Start))
		b.WriteByte(':')
	case r.Start == 0:
		b.WriteString(formatFloat(r.End))
	default:
		b.WriteString(formatFloat(r.Start))
		b.WriteByte(':')
		b.WriteString(formatFloat(r.End))
	}

	return b.String()
}

// formatFloat formats a float64 as a compact string: integers without a
// decimal point (e.g. "80"), and fractional values with minimal precision
// (e.g. "1.5"). Integral values beyond the int64 range take the slow path;
// the float-to-int conversion would overflow.
func formatFloat(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1<<63 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
