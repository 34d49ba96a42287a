package types

import (
	"time"
)

// Position is the scan position reported in a status snapshot
type Position struct {
	Column   int `json:"column"`
	Row      int `json:"row"`
	Subframe int `json:"subframe"`
	Frame    int `json:"frame"`
}

// Status is a snapshot of the scan engine published by the renderer
type Status struct {
	State          string    `json:"state"`
	Ready          bool      `json:"ready"`
	StartupDone    bool      `json:"startup_done"`
	Position       Position  `json:"position"`
	Ticks          uint64    `json:"ticks"`
	Resets         uint64    `json:"resets"`
	TicksPerSecond float64   `json:"ticks_per_second"`
	Latency        int       `json:"latency"`
	Backend        string    `json:"backend"`
	Painter        string    `json:"painter"`
	SinkErrors     uint64    `json:"sink_errors"`
	LastError      string    `json:"last_error,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
}

// PanelConfig represents the configuration of the scan engine and what it
// shows
type PanelConfig struct {
	Latency    int    `json:"latency"`
	Painter    string `json:"painter"`
	Tracer     bool   `json:"tracer"`
	Brightness int    `json:"brightness"`
	Image      string `json:"image,omitempty"`
	SVG        string `json:"svg,omitempty"`
	Text       string `json:"text,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	// BatchTicks is the number of ticks run between status updates
	BatchTicks int `json:"batch_ticks"`
	// BatchInterval paces batches in milliseconds, 0 runs flat out
	BatchInterval float64 `json:"batch_interval"`
}

// OutputConfig represents where connector words are sent
type OutputConfig struct {
	Backend string    `json:"backend"`
	Chip    string    `json:"chip"`
	Pins    PinConfig `json:"pins"`
}

// RuntimeConfig represents process level settings
type RuntimeConfig struct {
	CPU        int    `json:"cpu"`
	LockMemory bool   `json:"lock_memory"`
	HTTPAddr   string `json:"http_addr"`
	StatsAddr  string `json:"stats_addr,omitempty"`
	// StatusInterval is the websocket push period in seconds
	StatusInterval float64 `json:"status_interval"`
}
