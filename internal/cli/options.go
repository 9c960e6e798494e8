// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"protsim/internal/output"
	"protsim/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Model rates (per lineage per unit time)
	FullBirthRate           float64
	FullExtinctionRate      float64
	IncipientBirthRate      float64
	ConversionRate          float64
	IncipientExtinctionRate float64

	// Termination conditions (at least one required)
	MaxTime              float64
	MaxFullSpeciesLeaves int
	MaxLeaves            int

	// Sampling behaviour
	IncipientFounder bool
	NoRetry          bool
	MaxRetries       int

	// Run control
	Seed       int64
	Replicates int
	Threads    int

	// Output
	Output  string
	Trees   string
	Sort    bool
	Header  bool // true unless --no-header
	Archive string
	Quiet   bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: protracted speciation tree simulator

License: MIT
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Model rates
	fs.Float64Var(&opt.FullBirthRate, "full-birth-rate", 0, "full species speciation-initiation rate [0]")
	fs.Float64Var(&opt.FullExtinctionRate, "full-extinction-rate", 0, "full species extinction rate [0]")
	fs.Float64Var(&opt.IncipientBirthRate, "incipient-birth-rate", 0, "incipient species speciation-initiation rate [0]")
	fs.Float64Var(&opt.ConversionRate, "conversion-rate", 0, "incipient→full speciation-completion rate [0]")
	fs.Float64Var(&opt.IncipientExtinctionRate, "incipient-extinction-rate", 0, "incipient species extinction rate [0]")

	// Termination
	fs.Float64Var(&opt.MaxTime, "max-time", 0, "stop when simulated time reaches this limit (0 = unset) [0]")
	fs.IntVar(&opt.MaxFullSpeciesLeaves, "max-full-species-leaves", 0, "stop when the pruned tree has this many leaves (0 = unset) [0]")
	fs.IntVar(&opt.MaxLeaves, "max-leaves", 0, "stop when the lineage tree has this many leaves (0 = unset) [0]")

	// Sampling behaviour
	fs.BoolVar(&opt.IncipientFounder, "incipient-founder", false, "start from an incipient rather than full species [false]")
	fs.BoolVar(&opt.NoRetry, "no-retry", false, "fail immediately on total extinction instead of retrying [false]")
	fs.IntVar(&opt.MaxRetries, "max-retries", 1000, "retries after total extinction (-1 = unlimited; for zero retries use --no-retry) [1000]")

	// Run control
	fs.Int64Var(&opt.Seed, "seed", 0, "random seed (0 = time-based) [0]")
	fs.IntVar(&opt.Replicates, "replicates", 1, "number of independent samples [1]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | newick [text]")
	fs.StringVar(&opt.Trees, "trees", output.TreesBoth, "which trees to emit: both | protracted | pruned ["+output.TreesBoth+"]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort outputs by replicate for determinism [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.StringVar(&opt.Archive, "archive", "", "SQLite file to record samples into [none]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	for _, r := range []struct {
		name string
		val  float64
	}{
		{"--full-birth-rate", opt.FullBirthRate},
		{"--full-extinction-rate", opt.FullExtinctionRate},
		{"--incipient-birth-rate", opt.IncipientBirthRate},
		{"--conversion-rate", opt.ConversionRate},
		{"--incipient-extinction-rate", opt.IncipientExtinctionRate},
	} {
		if r.val < 0 {
			return opt, fmt.Errorf("%s must be ≥ 0", r.name)
		}
	}
	if opt.MaxTime < 0 {
		return opt, errors.New("--max-time must be ≥ 0")
	}
	if opt.MaxFullSpeciesLeaves < 0 {
		return opt, errors.New("--max-full-species-leaves must be ≥ 0")
	}
	if opt.MaxLeaves < 0 {
		return opt, errors.New("--max-leaves must be ≥ 0")
	}
	if opt.MaxTime == 0 && opt.MaxFullSpeciesLeaves == 0 && opt.MaxLeaves == 0 {
		return opt, errors.New("provide at least one of --max-time, --max-full-species-leaves, --max-leaves")
	}
	if opt.Replicates < 1 {
		return opt, errors.New("--replicates must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.MaxRetries < -1 {
		return opt, errors.New("--max-retries must be ≥ -1")
	}
	if opt.MaxRetries == 0 {
		return opt, errors.New("--max-retries 0 is ambiguous; use --no-retry to fail on the first total extinction")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "newick" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	switch opt.Trees {
	case output.TreesBoth, output.TreesProtracted, output.TreesPruned:
	default:
		return opt, fmt.Errorf("invalid --trees %q", opt.Trees)
	}
	return opt, nil
}
