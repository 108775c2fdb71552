package portfolio

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter counts failed admin logins per IP in a sliding window.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
}

// NewLoginLimiter creates a LoginLimiter that allows max failures per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.prune(time.Now().Add(-l.window))
		case <-l.stop:
			return
		}
	}
}

func (l *LoginLimiter) prune(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, hits := range l.attempts {
		kept := keepAfter(hits, cutoff)
		if len(kept) == 0 {
			delete(l.attempts, ip)
		} else {
			l.attempts[ip] = kept
		}
	}
}

func keepAfter(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Check returns true if the IP has not exceeded the limit. It does not
// record an attempt; call Record on failure.
func (l *LoginLimiter) Check(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := keepAfter(l.attempts[ip], cutoff)
	l.attempts[ip] = kept
	return len(kept) < l.max
}

// Record registers a failed login attempt for the given IP.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], time.Now())
	l.mu.Unlock()
}

// Stop ends the background cleanup.
func (l *LoginLimiter) Stop() {
	close(l.stop)
}

// SubmitLimiter throttles public contact form submissions with a token
// bucket per IP.
type SubmitLimiter struct {
	mu      sync.Mutex
	buckets map[string]*submitBucket
	rate    rate.Limit
	burst   int
	idle    time.Duration
}

type submitBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSubmitLimiter allows requests submissions per window with the given
// burst.
func NewSubmitLimiter(requests int, window time.Duration, burst int) *SubmitLimiter {
	return &SubmitLimiter{
		buckets: make(map[string]*submitBucket),
		rate:    rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		idle:    window,
	}
}

// Allow reports whether ip may submit now and consumes a token if so.
func (l *SubmitLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, k)
		}
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = &submitBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}
