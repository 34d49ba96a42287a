package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fkcurrie/fm6126-scan/internal/types"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// Output backends
const (
	BackendGPIOCDev = "gpiocdev"
	BackendPeriph   = "periph"
	BackendNone     = "none"
)

// Painters
const (
	PainterAddress = "address"
	PainterImage   = "image"
	PainterSolid   = "solid"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Panel   types.PanelConfig   `json:"panel"`
	Output  types.OutputConfig  `json:"output"`
	Runtime types.RuntimeConfig `json:"runtime"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Panel: types.PanelConfig{
			Latency:       1,
			Painter:       PainterImage,
			Tracer:        true,
			Brightness:    255,
			Text:          "FM6126",
			BatchTicks:    panel.RowTicks * panel.Rows,
			BatchInterval: 0,
		},
		Output: types.OutputConfig{
			Backend: BackendGPIOCDev,
			Chip:    "gpiochip0",
			Pins:    types.BonnetPins(),
		},
		Runtime: types.RuntimeConfig{
			CPU:            -1,
			HTTPAddr:       ":8080",
			StatusInterval: 1,
		},
	}
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	if err := (panel.Config{Latency: c.Panel.Latency}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Panel.Painter {
	case PainterAddress, PainterImage, PainterSolid:
	default:
		return fmt.Errorf("%w: unknown painter %q", ErrInvalid, c.Panel.Painter)
	}
	if c.Panel.Brightness < 0 || c.Panel.Brightness > 255 {
		return fmt.Errorf("%w: brightness must be between 0 and 255", ErrInvalid)
	}
	if c.Panel.BatchTicks <= 0 {
		return fmt.Errorf("%w: batch_ticks must be positive", ErrInvalid)
	}
	if c.Panel.BatchInterval < 0 {
		return fmt.Errorf("%w: batch_interval must not be negative", ErrInvalid)
	}

	switch c.Output.Backend {
	case BackendGPIOCDev:
		if c.Output.Chip == "" {
			return fmt.Errorf("%w: gpiocdev backend needs a chip", ErrInvalid)
		}
		fallthrough
	case BackendPeriph:
		if err := c.Output.Pins.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	case BackendNone:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Output.Backend)
	}

	if c.Runtime.StatusInterval <= 0 {
		return fmt.Errorf("%w: status_interval must be positive", ErrInvalid)
	}
	return nil
}
