package perfdata

import (
	"strings"

	"github.com/DLAKE-IO/go-perfdata/status"
)

// Set is an ordered collection of measurements. Insertion order is
// preserved and duplicate labels are permitted; the zero value is an
// empty Set ready for use.
type Set struct {
	data []Perfdata
}

// NewSet returns a Set containing the given measurements in order.
func NewSet(data ...Perfdata) *Set {
	return &Set{data: data}
}

// Add appends a measurement to the set.
func (s *Set) Add(pd Perfdata) {
	s.data = append(s.data, pd)
}

// Len returns the number of measurements in the set.
func (s *Set) Len() int { return len(s.data) }

// IsEmpty reports whether the set contains no measurements.
func (s *Set) IsEmpty() bool { return len(s.data) == 0 }

// Data returns the measurements in insertion order. The slice is the
// set's backing storage and must not be modified by the caller.
func (s *Set) Data() []Perfdata { return s.data }

// Critical returns the measurements whose value triggers their critical
// range, in insertion order.
func (s *Set) Critical() []Perfdata {
	var out []Perfdata
	for _, pd := range s.data {
		if pd.IsCrit() {
			out = append(out, pd)
		}
	}
	return out
}

// Warning returns the measurements whose value triggers their warning
// range, in insertion order.
func (s *Set) Warning() []Perfdata {
	var out []Perfdata
	for _, pd := range s.data {
		if pd.IsWarn() {
			out = append(out, pd)
		}
	}
	return out
}

// HasCritical reports whether any measurement is critical.
func (s *Set) HasCritical() bool {
	for _, pd := range s.data {
		if pd.IsCrit() {
			return true
		}
	}
	return false
}

// HasWarning reports whether any measurement is in warning.
func (s *Set) HasWarning() bool {
	for _, pd := range s.data {
		if pd.IsWarn() {
			return true
		}
	}
	return false
}

// IsDegraded reports whether any measurement is in warning or critical.
func (s *Set) IsDegraded() bool {
	for _, pd := range s.data {
		if pd.IsWarn() || pd.IsCrit() {
			return true
		}
	}
	return false
}

// Status returns the worst status over all measurements: Critical wins
// over Warning wins over OK. An empty set is OK.
func (s *Set) Status() status.Status {
	if s.HasCritical() {
		return status.Critical
	}
	if s.HasWarning() {
		return status.Warning
	}
	return status.OK
}

// String serializes the set as the canonical tokens joined by single
// spaces. An empty set produces an empty string.
func (s *Set) String() string {
	parts := make([]string, len(s.data))
	for i, pd := range s.data {
		parts[i] = pd.String()
	}
	return strings.Join(parts, " ")
}
