// Package activity turns raw touch gestures into activity and scroll signals.
package activity

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/clock"
)

// Target receives the signals produced by a Detector.
type Target interface {
	RecordActivity()
	SetScrollState(scrolling bool)
}

// Config tunes gesture classification.
type Config struct {
	TouchEnabled  bool
	ScrollEnabled bool

	// ScrollThreshold is the vertical travel, in points, after which a
	// mostly-vertical move counts as scrolling.
	ScrollThreshold float64

	// MoveThrottle is the minimum gap between activities recorded from
	// touch moves.
	MoveThrottle time.Duration

	// ScrollDecay clears the scrolling flag if no touch end arrives.
	ScrollDecay time.Duration
}

// DefaultConfig returns the gesture defaults.
func DefaultConfig() Config {
	return Config{
		TouchEnabled:    true,
		ScrollEnabled:   true,
		ScrollThreshold: 10,
		MoveThrottle:    time.Second,
		ScrollDecay:     2 * time.Second,
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("%w: scroll threshold cannot be negative", ErrInvalidConfig)
	}
	if c.MoveThrottle < 0 {
		return fmt.Errorf("%w: move throttle cannot be negative", ErrInvalidConfig)
	}
	if c.ScrollDecay <= 0 {
		return fmt.Errorf("%w: scroll decay must be positive", ErrInvalidConfig)
	}
	return nil
}

// Point is a touch position in screen points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Detector classifies a single touch stream. It owns the scroll decay timer.
type Detector struct {
	clock  clock.Clock
	target Target
	config Config

	mu           sync.Mutex
	origin       Point
	scrolling    bool
	lastMoveAt   time.Time
	decay        clock.Timer
	decayGen     uint64
	touches      int
	scrollEvents int
}

// NewDetector creates a detector feeding target.
func NewDetector(clk clock.Clock, target Target, config Config) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.NewReal()
	}
	return &Detector{clock: clk, target: target, config: config}, nil
}

// TouchStart records activity and resets scroll classification.
func (d *Detector) TouchStart(p Point) {
	if !d.config.TouchEnabled {
		return
	}

	d.mu.Lock()
	d.origin = p
	d.touches++
	wasScrolling := d.clearScrollLocked()
	d.mu.Unlock()

	if wasScrolling {
		d.target.SetScrollState(false)
	}
	d.target.RecordActivity()
}

// TouchMove classifies the move relative to the touch origin.
func (d *Detector) TouchMove(p Point) {
	if !d.config.TouchEnabled {
		return
	}

	d.mu.Lock()
	dy := math.Abs(p.Y - d.origin.Y)
	dx := math.Abs(p.X - d.origin.X)

	startedScrolling := false
	if d.config.ScrollEnabled && !d.scrolling && dy > d.config.ScrollThreshold && dy > dx {
		d.scrolling = true
		d.scrollEvents++
		startedScrolling = true
		d.armDecayLocked()
	}

	now := d.clock.Now()
	record := d.lastMoveAt.IsZero() || now.Sub(d.lastMoveAt) >= d.config.MoveThrottle
	if record {
		d.lastMoveAt = now
	}
	d.mu.Unlock()

	if startedScrolling {
		logrus.Debugf("scroll detected (dy=%.1f dx=%.1f)", dy, dx)
		d.target.SetScrollState(true)
	}
	if record {
		d.target.RecordActivity()
	}
}

// TouchEnd clears any scroll state. It also serves touch cancel.
func (d *Detector) TouchEnd() {
	d.mu.Lock()
	wasScrolling := d.clearScrollLocked()
	d.mu.Unlock()

	if wasScrolling {
		d.target.SetScrollState(false)
	}
}

// IsScrolling reports the current classification.
func (d *Detector) IsScrolling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolling
}

// Stats returns the number of touches and scroll gestures seen.
func (d *Detector) Stats() (touches, scrolls int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touches, d.scrollEvents
}

// Close cancels the decay timer.
func (d *Detector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearScrollLocked()
}

func (d *Detector) armDecayLocked() {
	if d.decay != nil {
		d.decay.Stop()
	}
	d.decayGen++
	gen := d.decayGen
	d.decay = d.clock.AfterFunc(d.config.ScrollDecay, func() {
		d.expire(gen)
	})
}

func (d *Detector) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.decayGen || !d.scrolling {
		d.mu.Unlock()
		return
	}
	d.scrolling = false
	d.decay = nil
	d.mu.Unlock()

	logrus.Debug("scroll decayed without touch end")
	d.target.SetScrollState(false)
}

// clearScrollLocked resets scrolling and reports whether it was set.
func (d *Detector) clearScrollLocked() bool {
	d.decayGen++
	if d.decay != nil {
		d.decay.Stop()
		d.decay = nil
	}
	was := d.scrolling
	d.scrolling = false
	return was
}
