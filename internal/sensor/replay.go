package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/slosh/internal/dynamo"
)

// ReplaySource plays back a recording of timestamped samples. Speed scales
// playback time; zero replays as fast as the consumer takes them.
type ReplaySource struct {
	Samples []Sample
	Speed   float64
	Loop    bool
}

func LoadReplay(path string, logger *slog.Logger) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReplay(f, logger)
}

func ReadReplay(r io.Reader, logger *slog.Logger) (*ReplaySource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var samples []Sample
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		s, err := ParseRecord(scan.Text())
		if err != nil {
			logger.Debug("skipping replay line", "line", line, "error", err)
			continue
		}
		samples = append(samples, s)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("replay: %w", dynamo.ErrNoData)
	}
	return &ReplaySource{Samples: samples, Speed: 1}, nil
}

// WriteReplay records samples in the format ReadReplay accepts.
func WriteReplay(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# t,gx,gy,gz,mx,my,mz")
	for _, s := range samples {
		if s.Gravity == nil {
			continue
		}
		fmt.Fprintln(bw, s.Record())
	}
	return bw.Flush()
}

func (r *ReplaySource) Run(ctx context.Context, emit func(Sample)) error {
	if len(r.Samples) == 0 {
		return fmt.Errorf("replay: %w", dynamo.ErrNoData)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		for _, s := range r.Samples {
			if r.Speed > 0 {
				due := start.Add(time.Duration(float64(s.At) / r.Speed))
				if err := sleepUntil(ctx, due); err != nil {
					return err
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}
			emit(s)
		}
		if !r.Loop {
			return nil
		}
	}
}

func sleepUntil(ctx context.Context, due time.Time) error {
	wait := time.Until(due)
	if wait <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
