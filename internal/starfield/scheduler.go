package starfield

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one refresh of a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameFunc is called once per frame with a monotonically increasing time in
// milliseconds.
type FrameFunc func(ms float64)

// FrameHandle identifies a pending frame request. The zero value is never
// returned by a Scheduler.
type FrameHandle uint64

// Scheduler runs a callback at the next display refresh.
type Scheduler interface {
	Request(fn FrameFunc) FrameHandle
	Cancel(h FrameHandle)
}

// TickerScheduler is a Scheduler for environments without a vsync-aligned
// callback: every request fires once after a fixed interval.
type TickerScheduler struct {
	interval time.Duration
	epoch    time.Time

	mu      sync.Mutex
	next    FrameHandle
	pending map[FrameHandle]*time.Timer
}

// NewTickerScheduler creates a scheduler firing after interval. A
// non-positive interval selects DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{
		interval: interval,
		epoch:    time.Now(),
		pending:  make(map[FrameHandle]*time.Timer),
	}
}

// Interval returns the delay between a request and its callback.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Request schedules fn to run once after the interval.
func (s *TickerScheduler) Request(fn FrameFunc) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.pending[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, ok := s.pending[h]
		delete(s.pending, h)
		s.mu.Unlock()
		if !ok {
			return
		}
		fn(float64(time.Since(s.epoch)) / float64(time.Millisecond))
	})
	return h
}

// Cancel drops a pending request. Unknown or fired handles are ignored.
func (s *TickerScheduler) Cancel(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[h]; ok {
		t.Stop()
		delete(s.pending, h)
	}
}

// Stop cancels every pending request.
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h, t := range s.pending {
		t.Stop()
		delete(s.pending, h)
	}
}

// Pending returns the number of requests that have not fired yet.
func (s *TickerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
