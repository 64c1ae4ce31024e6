package log

import (
	"sort"
	"time"
)

// OpStats aggregates the events of one operation.
type OpStats struct {
	Op         string
	Requests   int
	Rejections int
	Successes  int
	Failures   int
	Duplicates int

	// TotalLatency sums the latency of completions that reported one.
	TotalLatency time.Duration
	timed        int
}

// MeanLatency returns the average completion latency.
func (s *OpStats) MeanLatency() time.Duration {
	if s.timed == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.timed)
}

// Pending returns requests without a completion.
func (s *OpStats) Pending() int {
	n := s.Requests - s.Successes - s.Failures
	if n < 0 {
		return 0
	}
	return n
}

// Stats summarizes a journal.
type Stats struct {
	Events  int
	First   time.Time
	Last    time.Time
	Devices map[string]int
	ByOp    map[string]*OpStats
}

// NewStats returns an empty summary.
func NewStats() *Stats {
	return &Stats{
		Devices: make(map[string]int),
		ByOp:    make(map[string]*OpStats),
	}
}

// Add folds one event into the summary.
func (s *Stats) Add(ev Event) {
	s.Events++
	if s.First.IsZero() || ev.Timestamp.Before(s.First) {
		s.First = ev.Timestamp
	}
	if ev.Timestamp.After(s.Last) {
		s.Last = ev.Timestamp
	}
	if ev.DeviceID != "" {
		s.Devices[ev.DeviceID]++
	}
	if ev.Op == "" {
		return
	}

	op, ok := s.ByOp[ev.Op]
	if !ok {
		op = &OpStats{Op: ev.Op}
		s.ByOp[ev.Op] = op
	}
	switch ev.Category {
	case CategoryRequest:
		op.Requests++
	case CategoryRejection:
		op.Rejections++
	case CategoryDuplicate:
		op.Duplicates++
	case CategoryCompletion:
		if ev.Completion == nil {
			break
		}
		if ev.Completion.Success {
			op.Successes++
		} else {
			op.Failures++
		}
		if ev.Completion.Latency != nil {
			op.TotalLatency += *ev.Completion.Latency
			op.timed++
		}
	}
}

// Ops returns per-operation statistics sorted by operation name.
func (s *Stats) Ops() []*OpStats {
	out := make([]*OpStats, 0, len(s.ByOp))
	for _, op := range s.ByOp {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Op < out[j].Op })
	return out
}
