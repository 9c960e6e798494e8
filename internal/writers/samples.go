package writers

import (
	"fmt"
	"io"

	"protsim/internal/common"
	"protsim/internal/output"
	"protsim/internal/pipeline"
	"protsim/pkg/api"
)

// StartSampleWriter spins up a writer goroutine for simulation results.
// The caller feeds results on the returned channel, closes it, then reads
// the single error from the error channel.
func StartSampleWriter(out io.Writer, format, trees string, sort bool, header bool, bufSize int) (chan<- pipeline.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan pipeline.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var buf []pipeline.Result
			for r := range in {
				buf = append(buf, r)
			}
			if sort {
				common.SortSamples(buf)
			}
			samples := make([]api.SampleV1, 0, len(buf))
			for _, r := range buf {
				samples = append(samples, output.ToAPISample(r, trees))
			}
			err = output.WriteJSON(out, samples)

		case "newick":
			if sort {
				var buf []pipeline.Result
				for r := range in {
					buf = append(buf, r)
				}
				common.SortSamples(buf)
				for _, r := range buf {
					if err = output.WriteNewick(out, r.Protracted, r.Pruned, trees); err != nil {
						break
					}
				}
			} else {
				for r := range in {
					if err == nil {
						err = output.WriteNewick(out, r.Protracted, r.Pruned, trees)
					}
				}
			}

		case "text":
			if sort {
				var buf []pipeline.Result
				for r := range in {
					buf = append(buf, r)
				}
				common.SortSamples(buf)
				if header {
					err = output.WriteTextHeader(out)
				}
				for _, r := range buf {
					if err != nil {
						break
					}
					err = output.WriteTextRow(out, r)
				}
			} else {
				if header {
					err = output.WriteTextHeader(out)
				}
				for r := range in {
					if err == nil {
						err = output.WriteTextRow(out, r)
					}
				}
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// drain remaining items so producers never block
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
