package model

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestTemperatureF(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		units string
		temp  *float64
		want  *float64
	}{
		{"imperial unchanged", UnitsImperial, f(72.5), f(72.5)},
		{"metric converted", UnitsMetric, f(100), f(212)},
		{"standard converted", UnitsStandard, f(273.15), f(32)},
		{"unknown units treated as imperial", "furlongs", f(50), f(50)},
		{"missing temperature", UnitsMetric, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeatherReading{Temperature: tt.temp, Units: tt.units}.TemperatureF()
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a value, got nil")
			}
			if math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("TemperatureF() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestUnitSymbols(t *testing.T) {
	if TemperatureSymbol(UnitsMetric) != "°C" || SpeedSymbol(UnitsMetric) != "m/s" {
		t.Error("unexpected metric symbols")
	}
	if TemperatureSymbol("") != "°F" || SpeedSymbol("") != "mph" {
		t.Error("unexpected default symbols")
	}
	if TemperatureSymbol(UnitsStandard) != "K" {
		t.Error("unexpected standard temperature symbol")
	}
}

func TestAsFailure(t *testing.T) {
	if AsFailure(nil) != nil {
		t.Error("expected nil for nil error")
	}

	auth := NewStatusFailure(AuthError, 401, "bad key")
	wrapped := fmt.Errorf("weather: %w", auth)
	if got := AsFailure(wrapped); got != auth {
		t.Errorf("expected the wrapped failure back, got %v", got)
	}

	plain := AsFailure(errors.New("boom"))
	if plain.Kind != Unknown || plain.Message != "boom" {
		t.Errorf("expected Unknown/boom, got %+v", plain)
	}
}

func TestFailureError(t *testing.T) {
	if got := NewStatusFailure(Unknown, 503, "unavailable").Error(); got != "unknown (503): unavailable" {
		t.Errorf("unexpected message %q", got)
	}
	if got := NewFailure(ConfigError, "missing %s", "key").Error(); got != "config_error: missing key" {
		t.Errorf("unexpected message %q", got)
	}
}
