package sensor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
)

// Source produces samples until ctx is cancelled or its input ends. Sources
// run on their own goroutine and hand every sample to emit.
type Source interface {
	Run(ctx context.Context, emit func(Sample)) error
}

// Pump feeds a source into an adapter. Running without any source leaves the
// surface level and calm.
func Pump(ctx context.Context, src Source, a *Adapter) error {
	err := src.Run(ctx, a.Handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// scanLines parses one sample per line, skipping anything malformed.
func scanLines(ctx context.Context, r io.Reader, parse func(string) (Sample, error), emit func(Sample), logger *slog.Logger) error {
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line++
		s, err := parse(scan.Text())
		if err != nil {
			logger.Debug("skipping sensor line", "line", line, "error", err)
			continue
		}
		emit(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return scan.Err()
}
