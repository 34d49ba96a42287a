package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/types"
)

type fakeEngine struct {
	mu     sync.Mutex
	status types.Status
	resets int
}

func (f *fakeEngine) Status() types.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeEngine) RequestReset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeEngine) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{status: types.Status{
		State:       "MainShift",
		Ready:       true,
		StartupDone: true,
		Position:    types.Position{Column: 12, Row: 5, Subframe: 200, Frame: 3},
		Ticks:       123456,
		Latency:     1,
	}}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    types.Status
		wantErr bool
	}{
		{
			name:    "full report",
			message: "<MainShift|Pos:12,5,200,3|Tk:123456|Up:1|Rdy:1|Rst:2|Lat:1|Err:0>",
			want: types.Status{
				State: "MainShift", Ready: true, StartupDone: true,
				Position: types.Position{Column: 12, Row: 5, Subframe: 200, Frame: 3},
				Ticks:    123456, Resets: 2, Latency: 1,
			},
		},
		{
			name:    "startup",
			message: "<StartupLatch(reg1)|Tk:40|Up:0|Rdy:0>",
			want:    types.Status{State: "StartupLatch(reg1)", Ticks: 40},
		},
		{name: "no brackets", message: "Idle|Tk:1", wantErr: true},
		{name: "empty state", message: "<|Tk:1>", wantErr: true},
		{name: "short position", message: "<Blank|Pos:1,2>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.message)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got.LastUpdated = time.Time{}
			if got != tt.want {
				t.Errorf("ParseStatus() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	s := newFakeEngine().Status()
	line := FormatStatus(s)
	if line != "<MainShift|Pos:12,5,200,3|Tk:123456|Up:1|Rdy:1|Rst:0|Lat:1|Err:0>" {
		t.Errorf("FormatStatus() = %q", line)
	}
	back, err := ParseStatus(line)
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}
	if back.Position != s.Position || back.Ticks != s.Ticks || !back.Ready {
		t.Errorf("ParseStatus(FormatStatus()) = %+v", back)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	engine := newFakeEngine()
	ts := httptest.NewServer(NewServer(engine, time.Second).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status error = %v", err)
	}
	var st types.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode /status: %v", err)
	}
	resp.Body.Close()
	if st.Ticks != 123456 || st.Position.Row != 5 {
		t.Errorf("/status = %+v", st)
	}

	resp, err = http.Get(ts.URL + "/reset")
	if err != nil {
		t.Fatalf("GET /reset error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /reset status = %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/reset", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /reset error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted || engine.resetCount() != 1 {
		t.Errorf("POST /reset status = %d, resets = %d", resp.StatusCode, engine.resetCount())
	}
}

func TestWebsocketStream(t *testing.T) {
	engine := newFakeEngine()
	ts := httptest.NewServer(NewServer(engine, 10*time.Millisecond).Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewClient("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", 20*time.Millisecond)
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	select {
	case st := <-client.Status():
		if st.State != "MainShift" || st.Ticks != 123456 {
			t.Errorf("first report = %+v", st)
		}
	case <-ctx.Done():
		t.Fatal("no status report received")
	}

	client.Reset()
	for engine.resetCount() == 0 {
		select {
		case <-ctx.Done():
			t.Fatal("reset never reached the engine")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
