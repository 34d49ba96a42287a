package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/types"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
	"github.com/fkcurrie/fm6126-scan/pkg/sink"
)

// Renderer owns the scan engine and runs it into a sink. All engine state is
// touched only by the goroutine running Start; other goroutines talk to it
// through Status and RequestReset.
type Renderer struct {
	cfg     *types.PanelConfig
	driver  *panel.Driver
	painter panel.Painter
	sink    sink.Sink
	backend string

	reset atomic.Bool

	resets     uint64
	sinkErrors uint64
	lastErr    string
	lastTicks  uint64
	lastAt     time.Time

	// failing is the sink error last written to the log, empty while the
	// sink works.
	failing string

	mu     sync.RWMutex
	status types.Status
}

// NewRenderer creates a new renderer instance
func NewRenderer(cfg *types.PanelConfig, p panel.Painter, s sink.Sink) (*Renderer, error) {
	if s == nil {
		return nil, errors.New("renderer needs a sink")
	}
	if cfg.BatchTicks <= 0 {
		return nil, fmt.Errorf("invalid batch size %d", cfg.BatchTicks)
	}
	d, err := panel.New(panel.Config{Latency: cfg.Latency})
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	r := &Renderer{
		cfg:     cfg,
		driver:  d,
		painter: p,
		sink:    s,
		backend: "none",
		lastAt:  time.Now(),
	}
	r.publish()
	return r, nil
}

// SetBackend names the output backend in status reports
func (r *Renderer) SetBackend(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = name
	r.status.Backend = name
}

// Start runs batches until the context is cancelled
func (r *Renderer) Start(ctx context.Context) error {
	var pace <-chan time.Time
	if r.cfg.BatchInterval > 0 {
		ticker := time.NewTicker(time.Duration(r.cfg.BatchInterval * float64(time.Millisecond)))
		defer ticker.Stop()
		pace = ticker.C
	}

	log.Printf("Renderer started: latency %d, %d ticks per batch", r.cfg.Latency, r.cfg.BatchTicks)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logBatch(r.RunBatch(r.cfg.BatchTicks))

		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		}
	}
}

// RunBatch runs n engine ticks and publishes a status snapshot. It must not
// be called concurrently with Start.
func (r *Renderer) RunBatch(n int) error {
	var first error
	for i := 0; i < n; i++ {
		in := panel.Input{
			Sample: r.driver.Sample(r.painter),
			Reset:  r.reset.Swap(false),
		}
		if in.Reset {
			r.resets++
		}
		w := r.driver.Tick(in)
		if err := r.sink.Write(w); err != nil {
			r.sinkErrors++
			r.lastErr = err.Error()
			if first == nil {
				first = fmt.Errorf("sink write at tick %d: %w", r.driver.Ticks()-1, err)
			}
		}
	}
	r.publish()
	return first
}

// logBatch logs a failing batch once per distinct sink error and once when
// the sink recovers, so a sink that stays broken does not flood the log. It
// reports whether anything was logged.
func (r *Renderer) logBatch(err error) bool {
	if err == nil {
		if r.failing == "" {
			return false
		}
		log.Printf("Sink recovered, %d write errors so far", r.sinkErrors)
		r.failing = ""
		return true
	}

	cause := err.Error()
	if u := errors.Unwrap(err); u != nil {
		cause = u.Error()
	}
	if cause == r.failing {
		return false
	}
	r.failing = cause
	log.Printf("Failed to render: %v", err)
	return true
}

// RequestReset asks the engine to hold reset for one tick. Requests made
// before the tick is sampled are merged.
func (r *Renderer) RequestReset() {
	r.reset.Store(true)
}

// Status returns the latest status snapshot
func (r *Renderer) Status() types.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Driver returns the engine. Only safe to inspect while no batch runs.
func (r *Renderer) Driver() *panel.Driver {
	return r.driver
}

func (r *Renderer) publish() {
	d := r.driver
	pos := d.Position()
	now := time.Now()

	var rate float64
	if dt := now.Sub(r.lastAt).Seconds(); dt > 0 && d.Ticks() > r.lastTicks {
		rate = float64(d.Ticks()-r.lastTicks) / dt
	}
	r.lastTicks = d.Ticks()
	r.lastAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = types.Status{
		State:       d.State().String(),
		Ready:       d.Ready(),
		StartupDone: d.StartupDone(),
		Position: types.Position{
			Column:   pos.Column(),
			Row:      pos.Row(),
			Subframe: int(pos.Subframe()),
			Frame:    int(pos.Frame()),
		},
		Ticks:          d.Ticks(),
		Resets:         r.resets,
		TicksPerSecond: rate,
		Latency:        d.Latency(),
		Backend:        r.backend,
		Painter:        r.cfg.Painter,
		SinkErrors:     r.sinkErrors,
		LastError:      r.lastErr,
		LastUpdated:    now,
	}
}
