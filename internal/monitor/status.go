package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/types"
)

// FormatStatus renders a status as a single GRBL style report line, e.g.
// <MainShift|Pos:12,5,200,3|Tk:123456|Up:1|Rdy:1|Rst:0|Lat:1|Err:0>
func FormatStatus(s types.Status) string {
	return fmt.Sprintf("<%s|Pos:%d,%d,%d,%d|Tk:%d|Up:%d|Rdy:%d|Rst:%d|Lat:%d|Err:%d>",
		s.State,
		s.Position.Column, s.Position.Row, s.Position.Subframe, s.Position.Frame,
		s.Ticks, b2i(s.StartupDone), b2i(s.Ready), s.Resets, s.Latency, s.SinkErrors)
}

// ParseStatus parses a report line produced by FormatStatus. Unknown fields
// are ignored.
func ParseStatus(message string) (types.Status, error) {
	status := types.Status{
		LastUpdated: time.Now(),
	}

	message = strings.TrimSpace(message)
	if !strings.HasPrefix(message, "<") || !strings.HasSuffix(message, ">") {
		return status, fmt.Errorf("invalid message format: %q", message)
	}
	message = strings.TrimSuffix(strings.TrimPrefix(message, "<"), ">")

	parts := strings.Split(message, "|")
	if parts[0] == "" {
		return status, fmt.Errorf("missing state")
	}
	status.State = parts[0]

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		switch key {
		case "Pos":
			f := strings.Split(value, ",")
			if len(f) != 4 {
				return status, fmt.Errorf("invalid position %q", value)
			}
			status.Position = types.Position{
				Column:   parseInt(f[0]),
				Row:      parseInt(f[1]),
				Subframe: parseInt(f[2]),
				Frame:    parseInt(f[3]),
			}
		case "Tk":
			status.Ticks = parseUint(value)
		case "Up":
			status.StartupDone = value == "1"
		case "Rdy":
			status.Ready = value == "1"
		case "Rst":
			status.Resets = parseUint(value)
		case "Lat":
			status.Latency = parseInt(value)
		case "Err":
			status.SinkErrors = parseUint(value)
		}
	}
	return status, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseInt parses an int from a string
func parseInt(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseUint(s string) uint64 {
	u, _ := strconv.ParseUint(s, 10, 64)
	return u
}
