package state

import "time"

// Phase is the lifecycle of one view region's request.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Load tracks the request behind one view region (the list or the detail
// panel). Every Begin issues a new sequence number; results carrying an older
// number are stale and must be dropped.
type Load struct {
	Phase       Phase
	Err         error
	LastUpdated time.Time
	Failures    int // consecutive failures, reset on success

	seq uint64
}

// Begin moves the region to Loading and returns the sequence number the
// result must carry. The previous error is kept until the new outcome arrives.
func (l *Load) Begin() uint64 {
	l.seq++
	l.Phase = Loading
	return l.seq
}

// Current reports whether seq belongs to the request still in flight.
func (l *Load) Current(seq uint64) bool {
	return l.Phase == Loading && seq == l.seq
}

// Succeed records a successful result. It reports false, changing nothing,
// when seq is stale.
func (l *Load) Succeed(seq uint64) bool {
	if !l.Current(seq) {
		return false
	}
	l.Phase = Loaded
	l.Err = nil
	l.Failures = 0
	l.LastUpdated = time.Now()
	return true
}

// Fail records a failed result. It reports false, changing nothing, when seq
// is stale.
func (l *Load) Fail(seq uint64, err error) bool {
	if !l.Current(seq) {
		return false
	}
	l.Phase = Failed
	l.Err = err
	l.Failures++
	l.LastUpdated = time.Now()
	return true
}

// Abandon returns the region to Idle and invalidates any request in flight.
func (l *Load) Abandon() {
	l.seq++
	l.Phase = Idle
	l.Err = nil
}
