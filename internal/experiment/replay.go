package experiment

import (
	"time"

	"github.com/san-kum/slosh/internal/sensor"
)

// ReplayEvents places recorded samples on the tick timeline, each at the
// first tick at or after its timestamp. Samples without gravity are dropped.
func ReplayEvents(samples []sensor.Sample, interval time.Duration) []Event {
	if interval <= 0 {
		return nil
	}
	events := make([]Event, 0, len(samples))
	for _, s := range samples {
		line := s.Line()
		if line == "" {
			continue
		}
		at := int((s.At + interval - 1) / interval)
		events = append(events, SampleAt(at, line))
	}
	return events
}
