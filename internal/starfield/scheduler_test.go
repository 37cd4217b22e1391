package starfield

import (
	"testing"
	"time"
)

func TestTickerScheduler_Fires(t *testing.T) {
	s := NewTickerScheduler(time.Millisecond)

	got := make(chan float64, 1)
	h := s.Request(func(ms float64) { got <- ms })
	if h == 0 {
		t.Fatal("Request returned the zero handle")
	}

	select {
	case ms := <-got:
		if ms < 0 {
			t.Errorf("frame time = %v, want >= 0", ms)
		}
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after firing, want 0", s.Pending())
	}
}

func TestTickerScheduler_MonotonicTime(t *testing.T) {
	s := NewTickerScheduler(time.Millisecond)

	times := make(chan float64, 2)
	s.Request(func(ms float64) { times <- ms })
	first := <-times
	s.Request(func(ms float64) { times <- ms })
	second := <-times

	if second <= first {
		t.Errorf("second frame time %v not after first %v", second, first)
	}
}

func TestTickerScheduler_Cancel(t *testing.T) {
	s := NewTickerScheduler(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	h := s.Request(func(float64) { fired <- struct{}{} })
	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(12345)

	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTickerScheduler_Stop(t *testing.T) {
	s := NewTickerScheduler(20 * time.Millisecond)

	fired := make(chan struct{}, 3)
	for range 3 {
		s.Request(func(float64) { fired <- struct{}{} })
	}
	if s.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", s.Pending())
	}
	s.Stop()

	select {
	case <-fired:
		t.Fatal("callback fired after Stop")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestNewTickerScheduler_DefaultInterval(t *testing.T) {
	if got := NewTickerScheduler(0).Interval(); got != DefaultFrameInterval {
		t.Errorf("Interval = %v, want %v", got, DefaultFrameInterval)
	}
}
