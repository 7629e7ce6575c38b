package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("rendering")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner("rendering")
	s.Start()

	// Repeated stops must not panic or hang
	s.Stop()
	s.Stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "fetching dataset")
	s.Start()

	cancel()
	time.Sleep(2 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancel, want true")
	}
}

func TestSpinnerContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "fetching dataset")
	s.Start()
	time.Sleep(3 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context timeout, want true")
	}
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("rendering")
	s.Start()
	s.StopWithSuccess("rendered chart.svg")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("rendering")
	s.Start()
	s.StopWithError("render failed")
}
