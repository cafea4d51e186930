// Package progress turns byte counts from a transfer into throttled
// percentage callbacks.
package progress

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Func receives a completion percentage in [0, 100].
type Func func(percent float64)

// Throttle delivers at most one update per interval. An update arriving
// inside the window is dropped, so the last value of a transfer (100%) may
// never be delivered. Delivered values never decrease.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	fn       Func

	last      time.Time
	delivered bool
	highest   float64
}

type Option func(*Throttle)

func WithClock(now func() time.Time) Option {
	return func(t *Throttle) { t.now = now }
}

func NewThrottle(interval time.Duration, fn Func, opts ...Option) *Throttle {
	t := &Throttle{
		interval: interval,
		now:      time.Now,
		fn:       fn,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Report records transferred out of total bytes and calls the callback if the
// window since the previous delivery has elapsed.
func (t *Throttle) Report(transferred, total int64) {
	if t == nil || t.fn == nil || total <= 0 {
		return
	}

	pct := float64(transferred) / float64(total) * 100
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}

	t.mu.Lock()
	now := t.now()
	if t.delivered && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	if pct < t.highest {
		pct = t.highest
	}
	t.highest = pct
	t.last = now
	t.delivered = true
	t.mu.Unlock()

	t.fn(pct)
}

// Reader counts bytes read from an underlying reader and reports them.
type Reader struct {
	r      io.Reader
	total  int64
	read   atomic.Int64
	report func(transferred, total int64)
}

func NewReader(r io.Reader, total int64, report func(transferred, total int64)) *Reader {
	return &Reader{r: r, total: total, report: report}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		done := r.read.Add(int64(n))
		if r.report != nil {
			r.report(done, r.total)
		}
	}
	return n, err
}

// Sink is a reader that produces nothing useful: every Read of len(p) bytes
// counts len(p) bytes as transferred. Storage clients that accept a
// "progress" reader call it with the size of each chunk they have sent.
type Sink struct {
	total  int64
	sent   atomic.Int64
	report func(transferred, total int64)
}

func NewSink(total int64, report func(transferred, total int64)) *Sink {
	return &Sink{total: total, report: report}
}

func (s *Sink) Read(p []byte) (int, error) {
	done := s.sent.Add(int64(len(p)))
	if s.report != nil {
		s.report(done, s.total)
	}
	return len(p), nil
}
