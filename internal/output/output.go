// Package output opens the sink selected by the configuration.
package output

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/fkcurrie/fm6126-scan/internal/config"
	"github.com/fkcurrie/fm6126-scan/internal/types"
	"github.com/fkcurrie/fm6126-scan/pkg/sink"
)

// Open returns the sink for cfg.Backend.
func Open(cfg types.OutputConfig) (sink.Sink, error) {
	switch cfg.Backend {
	case config.BackendGPIOCDev:
		lines, err := sink.NewLines(cfg.Chip, cfg.Pins.Offsets())
		if err != nil {
			return nil, err
		}
		log.Printf("Driving %d lines on %s", len(cfg.Pins.Offsets()), cfg.Chip)
		return lines, nil
	case config.BackendPeriph:
		pins, err := PeriphPins(cfg.Pins)
		if err != nil {
			return nil, err
		}
		return sink.NewPins(pins)
	case config.BackendNone, "":
		return sink.Discard, nil
	}
	return nil, fmt.Errorf("unknown output backend %q", cfg.Backend)
}

// PeriphPins initialises the periph host drivers and resolves every HUB75
// signal to a pin, in word bit order.
func PeriphPins(cfg types.PinConfig) ([]gpio.PinOut, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %v", err)
	}
	return resolve(cfg, gpioreg.ByName)
}

func resolve(cfg types.PinConfig, byName func(string) gpio.PinIO) ([]gpio.PinOut, error) {
	names := cfg.Names()
	offsets := cfg.Offsets()
	pins := make([]gpio.PinOut, len(offsets))
	for i, n := range offsets {
		name := fmt.Sprintf("GPIO%d", n)
		p := byName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio %s for %s not found", name, names[i])
		}
		pins[i] = p
	}
	return pins, nil
}
