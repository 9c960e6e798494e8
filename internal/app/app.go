// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	"protsim-core/psm"
	"protsim/internal/archive"
	"protsim/internal/cli"
	"protsim/internal/cmdutil"
	"protsim/internal/output"
	"protsim/internal/pipeline"
	"protsim/internal/version"
	"protsim/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("protsim")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "protsim version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	mcfg := psm.Config{
		FullSpeciesBirthRate:           opts.FullBirthRate,
		FullSpeciesExtinctionRate:      opts.FullExtinctionRate,
		IncipientSpeciesBirthRate:      opts.IncipientBirthRate,
		IncipientSpeciesConversionRate: opts.ConversionRate,
		IncipientSpeciesExtinctionRate: opts.IncipientExtinctionRate,
	}
	sopts := psm.SampleOptions{
		MaxTime:                 opts.MaxTime,
		MaxFullSpeciesLeaves:    opts.MaxFullSpeciesLeaves,
		MaxProtractedLeaves:     opts.MaxLeaves,
		InitialSpeciesIncipient: opts.IncipientFounder,
		DisableRetry:            opts.NoRetry,
		MaxRetries:              opts.MaxRetries,
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		cmdutil.Warnf(stderr, opts.Quiet, "no --seed given; using %d", seed)
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	var arch *archive.Archive
	if opts.Archive != "" {
		arch, err = archive.Open(opts.Archive)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = arch.Close() }()
	}

	inCh, writeErr := writers.StartSampleWriter(outw, opts.Output, opts.Trees, opts.Sort, opts.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	_, perr := cmdutil.RunStream[pipeline.Result](
		ctx,
		pipeline.Config{
			Threads:    thr,
			Replicates: opts.Replicates,
			Seed:       seed,
		},
		mcfg,
		sopts,
		func(r pipeline.Result) (bool, pipeline.Result, error) {
			if arch != nil {
				if err := arch.InsertSample(mcfg, output.ToAPISample(r, output.TreesBoth)); err != nil {
					return false, r, err
				}
			}
			return true, r, nil
		},
		func(r pipeline.Result) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
