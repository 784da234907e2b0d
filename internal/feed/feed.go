// Package feed simulates the live attack stream shown next to the globe.
package feed

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/mockdata"
	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

const (
	DefaultCapacity    = 20
	DefaultMinInterval = 2 * time.Second
	DefaultJitter      = time.Second
)

// Feed holds the most recent attacks, newest first, bounded by capacity.
type Feed struct {
	mu          sync.Mutex
	attacks     []models.Attack
	counter     int
	capacity    int
	minInterval time.Duration
	jitter      time.Duration
	src         mockdata.Source
	now         func() time.Time
	subscribers []func(models.Attack)
	logger      *zap.Logger
}

type Option func(*Feed)

// WithCapacity bounds the feed. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.capacity = n
		}
	}
}

// WithInterval sets the tick cadence to base plus a random share of jitter.
func WithInterval(base, jitter time.Duration) Option {
	return func(f *Feed) {
		f.minInterval = base
		f.jitter = jitter
	}
}

// WithSource replaces the system random source, mainly for tests.
func WithSource(src mockdata.Source) Option {
	return func(f *Feed) { f.src = src }
}

func WithClock(now func() time.Time) Option {
	return func(f *Feed) { f.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Feed) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New starts a feed from initial. Live ids continue counting from len(initial).
func New(initial []models.Attack, opts ...Option) *Feed {
	f := &Feed{
		attacks:     append([]models.Attack(nil), initial...),
		counter:     len(initial),
		capacity:    DefaultCapacity,
		minInterval: DefaultMinInterval,
		jitter:      DefaultJitter,
		src:         mockdata.SystemSource{},
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscribe registers fn to be called with every new attack, in Add's goroutine.
func (f *Feed) Subscribe(fn func(models.Attack)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// Snapshot returns a copy of the current attacks, newest first.
func (f *Feed) Snapshot() []models.Attack {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Attack, len(f.attacks))
	copy(out, f.attacks)
	return out
}

func (f *Feed) Capacity() int {
	return f.capacity
}

// Add synthesizes a live attack stamped now, prepends it and drops the oldest
// entries past capacity.
func (f *Feed) Add() models.Attack {
	f.mu.Lock()
	now := f.now()
	attack := mockdata.GenerateAttackAt("live-"+strconv.Itoa(f.counter), f.src, now)
	attack.Timestamp = now
	f.counter++

	keep := min(len(f.attacks), f.capacity-1)
	next := make([]models.Attack, 0, keep+1)
	next = append(next, attack)
	next = append(next, f.attacks[:keep]...)
	f.attacks = next

	subscribers := slices.Clone(f.subscribers)
	f.mu.Unlock()

	f.logger.Debug("live attack",
		zap.String("attack_id", attack.ID),
		zap.String("type", string(attack.Type)),
		zap.String("severity", string(attack.Severity)),
		zap.String("source", attack.Source.CountryCode),
		zap.String("target", attack.Target.CountryCode),
	)

	for _, fn := range subscribers {
		fn(attack)
	}
	return attack
}

// Run adds an attack every minInterval + rand*jitter until ctx is done.
// The delay is redrawn after every tick.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("live feed started",
		zap.Int("capacity", f.capacity),
		zap.Duration("min_interval", f.minInterval),
		zap.Duration("jitter", f.jitter),
	)

	timer := time.NewTimer(f.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("live feed stopped")
			return ctx.Err()
		case <-timer.C:
			f.Add()
			timer.Reset(f.nextInterval())
		}
	}
}

func (f *Feed) nextInterval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minInterval + time.Duration(f.src.Float64()*float64(f.jitter))
}
