// Command check-perfdata parses and evaluates Nagios performance data.
//
// It takes a raw perfdata string, classifies every measurement against
// its warning and critical ranges (optionally overridden from the
// command line), prints a Nagios-compliant status line with the
// re-serialized perfdata, and exits with the matching Nagios code.
package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DLAKE-IO/go-perfdata/perfdata"
	"github.com/DLAKE-IO/go-perfdata/status"
	"github.com/DLAKE-IO/go-perfdata/threshold"
	arg "github.com/alexflint/go-arg"
	nagios "github.com/atc0005/go-nagios"
)

// Args holds all CLI flags for check-perfdata.
type Args struct {
	Perfdata string `arg:"positional,required" help:"Raw performance data string to evaluate"`
	Warning  string `arg:"-w,--warning" help:"Warning threshold (Nagios range) applied to every metric"`
	Critical string `arg:"-c,--critical" help:"Critical threshold (Nagios range) applied to every metric"`
	Service  string `arg:"-s,--service" default:"PERFDATA" help:"Service name prefix for the status line"`
}

// Description returns the program description for go-arg help output.
func (Args) Description() string {
	return "Nagios-compatible plugin that parses and evaluates performance data"
}

func main() {
	plugin := nagios.NewPlugin()
	defer plugin.ReturnCheckResults()

	var args Args
	parser, err := arg.NewParser(arg.Config{Program: "check-perfdata"}, &args)
	if err != nil {
		plugin.ServiceOutput = fmt.Sprintf("PERFDATA UNKNOWN - Internal error: %s", err)
		plugin.ExitStatusCode = nagios.StateUNKNOWNExitCode
		return
	}

	if err := parser.Parse(os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, arg.ErrHelp):
			// Nagios convention: --help exits UNKNOWN (3).
			parser.WriteHelp(os.Stdout)
			os.Exit(nagios.StateUNKNOWNExitCode)
		case errors.Is(err, arg.ErrVersion):
			os.Exit(nagios.StateUNKNOWNExitCode)
		default:
			plugin.ServiceOutput = fmt.Sprintf("PERFDATA UNKNOWN - %s", err)
			plugin.ExitStatusCode = nagios.StateUNKNOWNExitCode
			return
		}
	}

	var warn, crit *threshold.Range
	if args.Warning != "" {
		r, err := threshold.Parse(args.Warning)
		if err != nil {
			plugin.ServiceOutput = fmt.Sprintf("%s UNKNOWN - Invalid warning threshold %q: expected Nagios range format", args.Service, args.Warning)
			plugin.ExitStatusCode = nagios.StateUNKNOWNExitCode
			return
		}
		warn = &r
	}
	if args.Critical != "" {
		r, err := threshold.Parse(args.Critical)
		if err != nil {
			plugin.ServiceOutput = fmt.Sprintf("%s UNKNOWN - Invalid critical threshold %q: expected Nagios range format", args.Service, args.Critical)
			plugin.ExitStatusCode = nagios.StateUNKNOWNExitCode
			return
		}
		crit = &r
	}

	result := evaluate(args.Perfdata, warn, crit)
	applyToPlugin(plugin, args.Service, result)
}

// checkResult is the evaluated outcome of one plugin invocation.
type checkResult struct {
	status  status.Status
	summary string
	set     *perfdata.Set
}

// evaluate parses the raw perfdata string and classifies every
// measurement. Overriding warn/crit ranges, when given, replace any
// ranges embedded in the perfdata itself. A token that cannot be parsed
// makes the whole check UNKNOWN, since the input is then not trustworthy.
func evaluate(raw string, warn, crit *threshold.Range) checkResult {
	results := perfdata.ParseAll(raw)
	if len(results) == 0 {
		return checkResult{
			status:  status.Unknown,
			summary: "No performance data found",
		}
	}

	set := perfdata.NewSet()
	for _, res := range results {
		if res.Err != nil {
			return checkResult{
				status:  status.Unknown,
				summary: fmt.Sprintf("Cannot parse %q: %s", res.Token, res.Err),
			}
		}
		pd := res.Perfdata
		if warn != nil {
			pd = pd.WithWarn(*warn)
		}
		if crit != nil {
			pd = pd.WithCrit(*crit)
		}
		set.Add(pd)
	}

	nCrit := len(set.Critical())
	nWarn := len(set.Warning())
	noun := "metrics"
	if set.Len() == 1 {
		noun = "metric"
	}
	summary := fmt.Sprintf("%d %s", set.Len(), noun)
	if nCrit > 0 || nWarn > 0 {
		summary = fmt.Sprintf("%d %s: %d critical, %d warning", set.Len(), noun, nCrit, nWarn)
	}

	return checkResult{status: set.Status(), summary: summary, set: set}
}

// applyToPlugin populates the go-nagios Plugin from a checkResult,
// bridging to go-nagios for exit code handling and perfdata emission
// via Plugin.ReturnCheckResults().
func applyToPlugin(p *nagios.Plugin, service string, res checkResult) {
	p.ServiceOutput = fmt.Sprintf("%s %s - %s",
		service, strings.ToUpper(res.status.String()), res.summary)

	switch res.status {
	case status.OK:
		p.ExitStatusCode = nagios.StateOKExitCode
	case status.Warning:
		p.ExitStatusCode = nagios.StateWARNINGExitCode
	case status.Critical:
		p.ExitStatusCode = nagios.StateCRITICALExitCode
	default:
		p.ExitStatusCode = nagios.StateUNKNOWNExitCode
	}

	if res.set == nil {
		return
	}
	for _, pd := range res.set.Data() {
		value := "U"
		if v, ok := pd.Value(); ok {
			value = formatValue(v)
		}
		var warn, crit, min, max string
		if r, ok := pd.Warn(); ok {
			warn = r.String()
		}
		if r, ok := pd.Crit(); ok {
			crit = r.String()
		}
		if v, ok := pd.Min(); ok {
			min = formatValue(v)
		}
		if v, ok := pd.Max(); ok {
			max = formatValue(v)
		}
		_ = p.AddPerfData(false, nagios.PerformanceData{
			Label:             pd.Label(),
			Value:             value,
			UnitOfMeasurement: pd.Unit().Suffix(),
			Warn:              warn,
			Crit:              crit,
			Min:               min,
			Max:               max,
		})
	}
}

// formatValue formats a float64 for perfdata output. Integers are
// formatted without decimals; non-integers use the shortest decimal
// representation. Integral values beyond the int64 range take the slow
// path; the float-to-int conversion would overflow.
func formatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) < 1<<63 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
