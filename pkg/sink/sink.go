// Package sink delivers panel words to hardware or to memory.
package sink

import (
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// Sink consumes one connector word per engine tick. Write is called from
// the goroutine that owns the driver.
type Sink interface {
	Write(w panel.Word) error
	Close() error
}

// Discard drops every word.
var Discard Sink = discard{}

type discard struct{}

func (discard) Write(panel.Word) error { return nil }
func (discard) Close() error           { return nil }

// Recorder keeps the words written to it, up to Limit when Limit is set.
type Recorder struct {
	Words []panel.Word
	Limit int
}

// Write implements Sink.
func (r *Recorder) Write(w panel.Word) error {
	if r.Limit > 0 && len(r.Words) >= r.Limit {
		return nil
	}
	r.Words = append(r.Words, w)
	return nil
}

// Close implements Sink.
func (r *Recorder) Close() error { return nil }

// Tee writes every word to each sink in order and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Write(w panel.Word) error {
	for _, s := range t {
		if err := s.Write(w); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var first error
	for _, s := range t {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
