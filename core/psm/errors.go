package psm

import (
	"errors"
	"fmt"
)

// ErrTotalExtinction reports that every lineage died before a termination
// condition was met. GenerateSample restarts past it by default; once the
// retry budget is exhausted it is surfaced wrapped in a
// TotalExtinctionError.
var ErrTotalExtinction = errors.New("all lineages extinct")

// ErrReconstruction reports that the pruned-tree reconstruction found no
// root. It indicates a broken sample path rather than a biological
// extinction and is never retried.
var ErrReconstruction = errors.New("pruned-tree reconstruction found no root")

// TotalExtinctionError is returned by GenerateSample when retries are
// disabled or the retry budget is exhausted. Attempts counts the runs
// that ended in total extinction.
type TotalExtinctionError struct {
	Attempts int
}

func (e *TotalExtinctionError) Error() string {
	return fmt.Sprintf("total extinction after %d attempt(s)", e.Attempts)
}

func (e *TotalExtinctionError) Unwrap() error { return ErrTotalExtinction }
