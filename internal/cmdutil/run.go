package cmdutil

import (
	"context"

	"protsim-core/psm"
	"protsim/internal/pipeline"
)

// RunStream runs the replicate pipeline, applies a visitor, and streams results
// via send. It returns the number of kept outputs and the first error
// encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	mcfg psm.Config,
	opts psm.SampleOptions,
	visit func(pipeline.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachSample(ctx, cfg, mcfg, opts, func(r pipeline.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
