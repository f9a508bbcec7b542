package status

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/clock"
	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

// DefaultPollInterval matches the overlay refresh rate.
const DefaultPollInterval = time.Second

// Source is polled for snapshots.
type Source interface {
	Status() engagement.Status
	Config() engagement.Config
}

// Sink receives every polled view.
type Sink interface {
	Publish(ctx context.Context, view View) error
}

// PollerConfig tunes a Poller.
type PollerConfig struct {
	Interval time.Duration
}

// Poller reads the tracker on a fixed interval and fans the view out to sinks.
type Poller struct {
	clock  clock.Clock
	source Source
	sinks  []Sink
	config PollerConfig

	mu      sync.Mutex
	latest  View
	polls   int
	timer   clock.Timer
	running bool
	gen     uint64
	ctx     context.Context
}

// NewPoller creates a stopped poller.
func NewPoller(clk clock.Clock, source Source, config PollerConfig, sinks ...Sink) *Poller {
	if clk == nil {
		clk = clock.NewReal()
	}
	if config.Interval <= 0 {
		config.Interval = DefaultPollInterval
	}
	return &Poller{
		clock:  clk,
		source: source,
		sinks:  sinks,
		config: config,
	}
}

// Start polls once immediately and then every interval until Stop or until
// ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.ctx = ctx
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	p.poll(gen)
}

// Stop cancels the pending poll.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Latest returns the most recent view and whether any poll happened.
func (p *Poller) Latest() (View, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest, p.polls > 0
}

// Poll reads the source once and publishes the view.
func (p *Poller) Poll(ctx context.Context) View {
	cfg := p.source.Config()
	view := NewView(p.source.Status(), time.Duration(cfg.ActiveTimeoutSeconds)*time.Second)

	p.mu.Lock()
	p.latest = view
	p.polls++
	p.mu.Unlock()

	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, view); err != nil {
			logrus.Warnf("failed to publish status snapshot: %v", err)
		}
	}
	return view
}

func (p *Poller) poll(gen uint64) {
	p.mu.Lock()
	if !p.running || gen != p.gen {
		p.mu.Unlock()
		return
	}
	ctx := p.ctx
	p.mu.Unlock()

	if ctx.Err() != nil {
		p.Stop()
		return
	}
	p.Poll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || gen != p.gen {
		return
	}
	p.timer = p.clock.AfterFunc(p.config.Interval, func() {
		p.poll(gen)
	})
}
