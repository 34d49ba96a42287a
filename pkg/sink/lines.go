package sink

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// lineSetter is the part of *gpiocdev.Lines used by Lines.
type lineSetter interface {
	SetValues(values []int) error
	Close() error
}

// Lines drives the connector through the Linux GPIO character device, one
// line per word bit. Only words that differ from the previous one are
// written.
type Lines struct {
	lines   lineSetter
	values  []int
	last    uint16
	primed  bool
	writes  uint64
	skipped uint64
}

// NewLines requests offsets on chip as outputs. offsets[i] is the line for
// bit i of panel.Word.Pack. All lines start low except blank.
func NewLines(chip string, offsets []int) (*Lines, error) {
	if len(offsets) != panel.WordBits {
		return nil, fmt.Errorf("need %d line offsets, got %d", panel.WordBits, len(offsets))
	}
	initial := make([]int, panel.WordBits)
	initial[panel.BlankShift] = 1

	l, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(initial...),
		gpiocdev.WithConsumer("fm6126"))
	if err != nil {
		return nil, fmt.Errorf("failed to request lines on %s: %v", chip, err)
	}
	return newLines(l), nil
}

func newLines(l lineSetter) *Lines {
	return &Lines{
		lines:  l,
		values: make([]int, panel.WordBits),
	}
}

// Write implements Sink.
func (l *Lines) Write(w panel.Word) error {
	v := w.Pack()
	if l.primed && v == l.last {
		l.skipped++
		return nil
	}
	for i := range l.values {
		l.values[i] = int(v>>i) & 1
	}
	if err := l.lines.SetValues(l.values); err != nil {
		return fmt.Errorf("failed to set line values: %v", err)
	}
	l.last = v
	l.primed = true
	l.writes++
	return nil
}

// Stats returns the number of words written and the number skipped as
// unchanged.
func (l *Lines) Stats() (writes, skipped uint64) {
	return l.writes, l.skipped
}

// Close blanks the panel and releases the lines.
func (l *Lines) Close() error {
	for i := range l.values {
		l.values[i] = 0
	}
	l.values[panel.BlankShift] = 1
	err := l.lines.SetValues(l.values)
	if cerr := l.lines.Close(); cerr != nil {
		return fmt.Errorf("failed to release lines: %v", cerr)
	}
	return err
}
