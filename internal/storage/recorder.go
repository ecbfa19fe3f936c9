package storage

import "github.com/san-kum/slosh/internal/dynamo"

// Recorder is an engine observer that keeps every Nth tick.
type Recorder struct {
	Every   int
	Records []Record
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every}
}

func (r *Recorder) OnTick(s dynamo.Snapshot) {
	if s.Tick%r.Every != 0 {
		return
	}
	r.Records = append(r.Records, FromSnapshot(s))
}

func (r *Recorder) Reset() {
	r.Records = r.Records[:0]
}
