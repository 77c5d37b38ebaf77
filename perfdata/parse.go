package perfdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DLAKE-IO/go-perfdata/threshold"
)

const (
	labelDelimiter = '='
	dataDelimiter  = ";"
)

// Parse errors. Numeric failures additionally wrap the underlying
// strconv error, reachable via errors.As with *strconv.NumError.
var (
	// ErrMissingEqualsSign reports a token without the = separating the
	// label from its data.
	ErrMissingEqualsSign = errors.New("equals sign (=) must separate the label from its data")
	// ErrMissingLabel reports a label that is empty after trimming and
	// unquoting.
	ErrMissingLabel = errors.New("label must not be empty")
	// ErrLabelContainsSingleQuote reports a single quote left in the
	// label after the optional surrounding pair has been stripped.
	ErrLabelContainsSingleQuote = errors.New("label must not contain a single quote")
	// ErrMissingValue reports an absent or empty value segment.
	ErrMissingValue = errors.New("numerical value missing after equals sign")
)

// UnknownUnitError reports a UOM suffix outside the supported closed set.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit of measurement %q", e.Unit)
}

// Parse parses a single perfdata token of the form
//
//	'label'=value[UOM];[warn];[crit];[min];[max]
//
// Surrounding single quotes on the label are optional (required when the
// label contains spaces) and one pair is stripped. Trailing unset fields
// may be omitted; an empty segment means the same as an omitted one. The
// returned record's label is a substring of token, not a copy.
func Parse(token string) (Perfdata, error) {
	// Labels cannot contain equals signs, so the first one must delimit
	// the label from the data.
	eq := strings.IndexByte(token, labelDelimiter)
	if eq < 0 {
		return Perfdata{}, ErrMissingEqualsSign
	}

	label, err := parseLabel(token[:eq])
	if err != nil {
		return Perfdata{}, err
	}

	segments := strings.Split(token[eq+1:], dataDelimiter)
	if segments[0] == "" {
		return Perfdata{}, ErrMissingValue
	}

	var pd Perfdata
	if segments[0] == "U" || segments[0] == "u" {
		pd = Undetermined(label)
	} else {
		pd, err = parseValue(label, segments[0])
		if err != nil {
			return Perfdata{}, err
		}
	}

	if s := segment(segments, 1); s != "" {
		warn, err := threshold.Parse(s)
		if err != nil {
			return Perfdata{}, fmt.Errorf("invalid warning range: %w", err)
		}
		pd = pd.WithWarn(warn)
	}
	if s := segment(segments, 2); s != "" {
		crit, err := threshold.Parse(s)
		if err != nil {
			return Perfdata{}, fmt.Errorf("invalid critical range: %w", err)
		}
		pd = pd.WithCrit(crit)
	}
	if s := segment(segments, 3); s != "" {
		min, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Perfdata{}, fmt.Errorf("invalid minimum %q: %w", s, err)
		}
		pd = pd.WithMin(min)
	}
	if s := segment(segments, 4); s != "" {
		max, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Perfdata{}, fmt.Errorf("invalid maximum %q: %w", s, err)
		}
		pd = pd.WithMax(max)
	}

	return pd, nil
}

// segment returns the i'th data segment, or "" when it is absent. A
// trailing omitted segment and an explicitly empty one are
// indistinguishable.
func segment(segments []string, i int) string {
	if i >= len(segments) {
		return ""
	}
	return segments[i]
}

// parseLabel trims the label region, strips one surrounding quote pair,
// and validates the result.
func parseLabel(region string) (string, error) {
	label := strings.TrimSpace(region)
	if len(label) >= 2 && label[0] == '\'' && label[len(label)-1] == '\'' {
		label = label[1 : len(label)-1]
	}
	if strings.ContainsRune(label, '\'') {
		return "", ErrLabelContainsSingleQuote
	}
	if label == "" {
		return "", ErrMissingLabel
	}
	return label, nil
}

// parseValue splits the value segment into numeric text and UOM suffix.
// The numeric text runs up to the first character outside [0-9.-]; the
// rest is the suffix and must belong to the closed unit set.
func parseValue(label, s string) (Perfdata, error) {
	cut := len(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			cut = i
			break
		}
	}

	value, err := strconv.ParseFloat(s[:cut], 64)
	if err != nil {
		return Perfdata{}, fmt.Errorf("invalid value %q: %w", s[:cut], err)
	}

	switch suffix := s[cut:]; suffix {
	case "":
		return New(label, value), nil
	case "%":
		return Percentage(label, value), nil
	case "s":
		return Seconds(label, value), nil
	case "b":
		return Bytes(label, value), nil
	case "c":
		return Counter(label, value), nil
	default:
		return Perfdata{}, &UnknownUnitError{Unit: suffix}
	}
}

// Result is the outcome of parsing one token from a perfdata list.
// Perfdata is valid only when Err is nil.
type Result struct {
	Token    string
	Perfdata Perfdata
	Err      error
}

// ParseAll splits a raw perfdata string into tokens and parses each one
// independently: a malformed token yields a Result carrying its error
// and never aborts parsing of its siblings. Results preserve input
// order.
//
// Tokens are separated by spaces, but labels may themselves contain
// spaces, so splitting works off the structure of the format instead:
// labels cannot contain =, so the first = after the current position
// delimits a label, and the data following an = cannot contain spaces,
// so the next space ends the token.
func ParseAll(input string) []Result {
	rest := strings.TrimSpace(input)

	var results []Result
	for rest != "" {
		token := rest
		rest = ""
		if eq := strings.IndexByte(token, labelDelimiter); eq >= 0 {
			if sp := strings.IndexByte(token[eq:], ' '); sp >= 0 {
				rest = strings.TrimSpace(token[eq+sp+1:])
				token = token[:eq+sp]
			}
		}

		pd, err := Parse(token)
		results = append(results, Result{Token: token, Perfdata: pd, Err: err})
	}
	return results
}
