// Package perfdata parses, evaluates and serializes the Nagios performance
// data notation used by monitoring check commands, as described in the
// Nagios plugin development guidelines
// (https://nagios-plugins.org/doc/guidelines.html#AEN200).
//
// A single measurement is written as
//
//	'label'=value[UOM];[warn];[crit];[min];[max]
//
// where warn and crit are threshold ranges (see the threshold package),
// min and max are plain numbers, and every field after the value is
// optional. The literal value U marks a measurement that could not be
// determined.
package perfdata

import (
	"math"
	"strconv"
	"strings"

	"github.com/DLAKE-IO/go-perfdata/status"
	"github.com/DLAKE-IO/go-perfdata/threshold"
)

// Unit is the unit-of-measurement tag attached to a value. The set is
// closed: exactly the UOM suffixes this package understands.
type Unit int

const (
	// UnitNone marks a plain number of things (users, processes, load
	// averages) without a unit suffix.
	UnitNone Unit = iota
	// UnitPercentage is the % suffix.
	UnitPercentage
	// UnitSeconds is the s suffix.
	UnitSeconds
	// UnitBytes is the b suffix.
	UnitBytes
	// UnitCounter is the c suffix, a continuously increasing counter.
	UnitCounter
	// UnitUndetermined marks a measurement whose value could not be
	// obtained. It carries no numeric payload and never alerts.
	UnitUndetermined
)

// Suffix returns the UOM suffix used in the wire format, or "" for
// UnitNone and UnitUndetermined.
func (u Unit) Suffix() string {
	switch u {
	case UnitPercentage:
		return "%"
	case UnitSeconds:
		return "s"
	case UnitBytes:
		return "b"
	case UnitCounter:
		return "c"
	default:
		return ""
	}
}

// Perfdata is a single named measurement: a label, a value tagged with a
// Unit, optional warning and critical threshold ranges, and optional
// minimum and maximum display bounds.
//
// Perfdata is an immutable value type. The With* methods return updated
// copies and never modify the receiver, so records can be shared and
// compared with == freely. Labels produced by Parse are substrings of the
// parsed input; no copy is made.
type Perfdata struct {
	label string
	unit  Unit
	value float64 // meaningless when unit == UnitUndetermined

	warn, crit       threshold.Range
	hasWarn, hasCrit bool

	min, max       float64
	hasMin, hasMax bool
}

func newPerfdata(label string, unit Unit, value float64) Perfdata {
	return Perfdata{label: label, unit: unit, value: value}
}

// New returns a Perfdata without a unit.
func New(label string, value float64) Perfdata {
	return newPerfdata(label, UnitNone, value)
}

// Percentage returns a Perfdata with the percent (%) unit.
func Percentage(label string, value float64) Perfdata {
	return newPerfdata(label, UnitPercentage, value)
}

// Seconds returns a Perfdata with the seconds (s) unit.
func Seconds(label string, value float64) Perfdata {
	return newPerfdata(label, UnitSeconds, value)
}

// Bytes returns a Perfdata with the bytes (b) unit.
func Bytes(label string, value float64) Perfdata {
	return newPerfdata(label, UnitBytes, value)
}

// Counter returns a Perfdata with the continuous counter (c) unit.
func Counter(label string, value float64) Perfdata {
	return newPerfdata(label, UnitCounter, value)
}

// Undetermined returns a Perfdata whose value could not be determined.
// It serializes as the literal U and never triggers an alert, but may
// still carry thresholds and bounds.
func Undetermined(label string) Perfdata {
	return newPerfdata(label, UnitUndetermined, 0)
}

// WithWarn returns a copy with the warning threshold range set.
func (p Perfdata) WithWarn(r threshold.Range) Perfdata {
	p.warn, p.hasWarn = r, true
	return p
}

// WithCrit returns a copy with the critical threshold range set.
func (p Perfdata) WithCrit(r threshold.Range) Perfdata {
	p.crit, p.hasCrit = r, true
	return p
}

// WithMin returns a copy with the minimum display bound set.
func (p Perfdata) WithMin(v float64) Perfdata {
	p.min, p.hasMin = v, true
	return p
}

// WithMax returns a copy with the maximum display bound set.
func (p Perfdata) WithMax(v float64) Perfdata {
	p.max, p.hasMax = v, true
	return p
}

// Label returns the measurement label.
func (p Perfdata) Label() string { return p.label }

// Unit returns the unit tag of the value.
func (p Perfdata) Unit() Unit { return p.unit }

// Value returns the numeric value. The second return is false only for
// undetermined measurements.
func (p Perfdata) Value() (float64, bool) {
	if p.unit == UnitUndetermined {
		return 0, false
	}
	return p.value, true
}

// Warn returns the warning threshold range, if set.
func (p Perfdata) Warn() (threshold.Range, bool) { return p.warn, p.hasWarn }

// Crit returns the critical threshold range, if set.
func (p Perfdata) Crit() (threshold.Range, bool) { return p.crit, p.hasCrit }

// Min returns the minimum display bound, if set.
func (p Perfdata) Min() (float64, bool) { return p.min, p.hasMin }

// Max returns the maximum display bound, if set.
func (p Perfdata) Max() (float64, bool) { return p.max, p.hasMax }

// IsWarn reports whether the value triggers the warning range. It is
// false when the value is undetermined or no warning range is set.
func (p Perfdata) IsWarn() bool {
	v, ok := p.Value()
	return ok && p.hasWarn && p.warn.IsAlert(v)
}

// IsCrit reports whether the value triggers the critical range. It is
// false when the value is undetermined or no critical range is set.
func (p Perfdata) IsCrit() bool {
	v, ok := p.Value()
	return ok && p.hasCrit && p.crit.IsAlert(v)
}

// Status classifies the measurement: Critical wins over Warning wins
// over OK. The two ranges are independent; crit is checked first even
// when the ranges are not nested.
func (p Perfdata) Status() status.Status {
	switch {
	case p.IsCrit():
		return status.Critical
	case p.IsWarn():
		return status.Warning
	default:
		return status.OK
	}
}

func (p Perfdata) hasThresholdsOrBounds() bool {
	return p.hasWarn || p.hasCrit || p.hasMin || p.hasMax
}

// String serializes the Perfdata to canonical notation. The label is
// always quoted and the trailing semicolon after the value is always
// emitted; the warn/crit/min/max group appears only when at least one
// of the four is set, with unset fields rendered as empty segments.
func (p Perfdata) String() string {
	var b strings.Builder

	b.WriteByte('\'')
	b.WriteString(p.label)
	b.WriteString("'=")
	if p.unit == UnitUndetermined {
		b.WriteByte('U')
	} else {
		b.WriteString(formatValue(p.value))
		b.WriteString(p.unit.Suffix())
	}
	b.WriteByte(';')

	if p.hasThresholdsOrBounds() {
		if p.hasWarn {
			b.WriteString(p.warn.String())
		}
		b.WriteByte(';')
		if p.hasCrit {
			b.WriteString(p.crit.String())
		}
		b.WriteByte(';')
		if p.hasMin {
			b.WriteString(formatValue(p.min))
		}
		b.WriteByte(';')
		if p.hasMax {
			b.WriteString(formatValue(p.max))
		}
		b.WriteByte(';')
	}

	return b.String()
}

// formatValue formats a float64 for perfdata output. Integers are
// formatted without decimals (e.g. "45"); non-integers use the shortest
// decimal representation (e.g. "34.2", "1.23"). Integral values beyond
// the int64 range take the slow path; the float-to-int conversion would
// overflow.
func formatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) < 1<<63 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
