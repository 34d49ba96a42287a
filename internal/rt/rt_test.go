package rt

import (
	"runtime"
	"testing"
)

func TestPrepareNothing(t *testing.T) {
	opts := Options{CPU: -1}
	if err := Prepare(opts); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	Release(opts)
}

func TestPinCPU(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cpu affinity is linux only")
	}
	opts := Options{CPU: 0}
	if err := Prepare(opts); err != nil {
		t.Skipf("cannot pin in this environment: %v", err)
	}
	Release(opts)
}
