// Package monitor watches a siren board from the host: it decodes the step
// report frames on the board's console and checks the sweep they describe.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"siren/protocol"
)

// ReportFunc receives every decoded report with the violations it caused
type ReportFunc func(r protocol.StepReport, violations []Violation)

const readChunk = 256

// Run decodes reports from r with a fresh Checker until r is exhausted or
// ctx is cancelled.
func Run(ctx context.Context, r io.Reader, fn ReportFunc) error {
	return NewChecker().Run(ctx, r, fn)
}

// Run decodes reports from r and checks each one, calling fn if non-nil.
// It returns nil at io.EOF or when ctx is cancelled. Cancellation is only
// noticed between reads, so r should not block indefinitely.
func (c *Checker) Run(ctx context.Context, r io.Reader, fn ReportFunc) error {
	decoder := protocol.NewDecoder()
	buf := make([]byte, readChunk)

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := r.Read(buf)
		for _, report := range decoder.Feed(buf[:n]) {
			violations := c.Check(report)
			if fn != nil {
				fn(report, violations)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return fmt.Errorf("failed to read reports: %w", err)
		}
	}
}
