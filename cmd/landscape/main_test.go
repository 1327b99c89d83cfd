package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
)

func TestParseRates(t *testing.T) {
	rates, err := parseRates("0.01, 0.1,1,,5")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.01, 0.1, 1, 5}
	if len(rates) != len(want) {
		t.Fatalf("expected %v, got %v", want, rates)
	}
	for i := range want {
		if rates[i] != want[i] {
			t.Errorf("rate %d: expected %v, got %v", i, want[i], rates[i])
		}
	}

	if _, err := parseRates("0.1,abc"); err == nil {
		t.Error("expected error for malformed rate")
	}
	if _, err := parseRates(" , "); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected debug to be enabled")
	}
	if _, err := newLogger("loud", "text"); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := newLogger("info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestZeroed(t *testing.T) {
	if zeroed(-1e-16) != 0 {
		t.Error("expected rounding noise to be zeroed")
	}
	if zeroed(0.25) != 0.25 {
		t.Error("expected real values to pass through")
	}
}
