package panel

import (
	"errors"
	"fmt"
)

// MaxLatency is the deepest painter pipeline the driver supports.
const MaxLatency = 2

// ErrInvalidLatency is returned by New for a latency outside 0..MaxLatency.
var ErrInvalidLatency = errors.New("panel: invalid latency")

// Config holds the construction parameters of a Driver.
type Config struct {
	// Latency is the number of ticks between a painter seeing a lookahead
	// position and its sample being shifted out, 0..2.
	Latency int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Latency < 0 || c.Latency > MaxLatency {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidLatency, c.Latency, MaxLatency)
	}
	return nil
}

// Input is everything sampled by the driver on one tick.
type Input struct {
	Sample
	// Reset returns the whole engine to its reset state on the next tick.
	Reset bool
}

// Driver wires the startup sequencer, the scan sequencer, the painter delay
// line and the protocol selector into one synchronous engine.
//
// A Driver holds no references, so copying the value snapshots the engine.
type Driver struct {
	latency int
	startup StartupSequencer
	scan    ScanSequencer
	delay   delayLine
	ticks   uint64
}

// New returns a driver in its reset state.
func New(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Driver{
		latency: cfg.Latency,
		scan:    ScanSequencer{latency: cfg.Latency},
		delay:   delayLine{depth: cfg.Latency},
	}, nil
}

// Latency returns the configured painter latency.
func (d *Driver) Latency() int {
	return d.latency
}

// Tick advances the engine by one clock and returns the word for this tick.
func (d *Driver) Tick(in Input) Word {
	sample := d.delay.push(in.Sample)
	done := d.startup.Done()
	out := Select(done, d.startup.Word(), d.scan.Word(sample))

	if in.Reset {
		d.reset()
	} else {
		d.startup.Tick()
		d.scan.Tick(done)
	}
	d.ticks++
	return out
}

// Sample asks p for both banks at the current lookahead position. A nil
// painter yields black.
func (d *Driver) Sample(p Painter) Sample {
	if p == nil {
		return Sample{}
	}
	la := d.scan.Lookahead()
	return Sample{
		RGB0: p.Paint(la.Coord(0)) & rgbMask,
		RGB1: p.Paint(la.Coord(1)) & rgbMask,
	}
}

// Step publishes the lookahead position to p and ticks with its answer.
func (d *Driver) Step(p Painter) Word {
	return d.Tick(Input{Sample: d.Sample(p)})
}

// Reset forces the reset state immediately, as if reset had been held on the
// previous tick.
func (d *Driver) Reset() {
	d.reset()
}

func (d *Driver) reset() {
	d.startup.Reset()
	d.scan.Reset()
	d.delay.reset()
}

// Ready reports whether the scan has started. It never falls without a reset.
func (d *Driver) Ready() bool {
	return d.scan.Ready()
}

// StartupDone reports whether the FM6126 handshake has completed.
func (d *Driver) StartupDone() bool {
	return d.startup.Done()
}

// Position returns the scan position of the current tick.
func (d *Driver) Position() Position {
	return d.scan.Scan()
}

// Lookahead returns the position painters are asked about on the current
// tick.
func (d *Driver) Lookahead() Position {
	return d.scan.Lookahead()
}

// State returns the active engine state.
func (d *Driver) State() State {
	if !d.startup.Done() {
		return d.startup.State()
	}
	return d.scan.State()
}

// Ticks returns the number of ticks since the driver was created. It is not
// cleared by reset.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}
