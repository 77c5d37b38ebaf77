// Package status defines the four-valued monitoring status reported to
// engines like Nagios, Naemon or Icinga.
package status

// Status represents the result of a monitoring check. Values are ordered
// by severity: OK < Warning < Critical < Unknown, so the zero value is OK
// and the natural integer ordering selects the worse of two statuses.
type Status int

const (
	// OK is a definitive result, all values are in their expected ranges.
	OK Status = iota
	// Warning is a definitive result, at least one value is inside its
	// warning range.
	Warning
	// Critical is a definitive result, at least one value is inside its
	// critical range.
	Critical
	// Unknown is an uncertain result, usually indicating that the check
	// could not be executed correctly.
	Unknown
)

// String returns the status label.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ExitCode returns the conventional monitoring process exit code:
// OK 0, Warning 1, Critical 2, Unknown 3. Out-of-range values map to 3.
func (s Status) ExitCode() int {
	switch s {
	case OK, Warning, Critical:
		return int(s)
	default:
		return int(Unknown)
	}
}

// Worst returns the more severe of a and b.
func Worst(a, b Status) Status {
	if a > b {
		return a
	}
	return b
}
