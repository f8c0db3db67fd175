package conditions

import (
	"reflect"
	"testing"
)

func temp(v float64) *float64 { return &v }

func TestIconFor(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"Clear", "☀️"},
		{"Clouds", "☁️"},
		{"Rain", "🌧️"},
		{"Drizzle", "💧"},
		{"Snow", "❄️"},
		{"Mist", "🌫️"},
		{"Fog", "🌫️"},
		{"Thunderstorm", "⛈️"},
		{"Smoke", "💨"},
		{"Haze", "🌫️"},
		{"Dust", "💨"},
		{"Sand", "💨"},
		{"Ash", "💨"},
		{"Squall", "💨"},
		{"Tornado", "🌪️"},
		{"Volcano", UnknownGlyph},
		{"", UnknownGlyph},
		{"rain", UnknownGlyph},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IconFor(tt.code); got != tt.want {
				t.Errorf("IconFor(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestColorForBoundaries(t *testing.T) {
	tests := []struct {
		name string
		t    *float64
		want string
	}{
		{"unknown", nil, NeutralColor},
		{"far below", temp(-40), "#E0F2FE"},
		{"-10 inclusive", temp(-10), "#E0F2FE"},
		{"just above -10", temp(-9.9), "#D4E6F1"},
		{"15 inclusive", temp(15), "#D4E6F1"},
		{"32 inclusive", temp(32), "#BDE6F1"},
		{"50 inclusive", temp(50), "#E6E0F8"},
		{"65 inclusive", temp(65), "#D1F2EB"},
		{"75 inclusive", temp(75), "#FEF9E7"},
		{"85 inclusive", temp(85), "#FFE4C4"},
		{"95 inclusive", temp(95), "#FFD1DC"},
		{"extreme heat", temp(95.1), ExtremeHeatColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFor(tt.t); got != tt.want {
				t.Errorf("ColorFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorForAlwaysInPalette(t *testing.T) {
	palette := map[string]bool{}
	for _, c := range Palette() {
		palette[c] = true
	}
	for f := -60.0; f <= 130; f += 0.5 {
		if c := ColorFor(temp(f)); !palette[c] {
			t.Fatalf("ColorFor(%v) = %q is not in the palette", f, c)
		}
	}
}

func TestActivitiesFor(t *testing.T) {
	heat := append(append([]string{}, extremeHeatActivities...), extremeHeatReminders...)
	cold := append(append([]string{}, extremeColdActivities...), extremeColdReminders...)

	tests := []struct {
		name string
		code string
		t    *float64
		want []string
	}{
		{"rain at mild temperature", "Rain", temp(50), activities["Rain"]},
		{"clear in the heat", "Clear", temp(90), heat},
		{"snow suppresses cold override", "Snow", temp(20), activities["Snow"]},
		{"unknown code falls back to clouds", "Foo", temp(60), activities["Clouds"]},
		{"thunderstorm suppresses heat override", "Thunderstorm", temp(95), activities["Thunderstorm"]},
		{"rain suppresses heat override", "Rain", temp(100), activities["Rain"]},
		{"clear in the cold", "Clear", temp(10), cold},
		{"86 is not extreme heat", "Clear", temp(86), activities["Clear"]},
		{"32 is not extreme cold", "Clouds", temp(32), activities["Clouds"]},
		{"unknown temperature uses table", "Drizzle", nil, activities["Drizzle"]},
		{"substring rain", "Freezing Rain", temp(40), activities["Rain"]},
		{"substring drizzle", "Light Drizzle", temp(40), activities["Rain"]},
		{"substring snow", "Blowing Snow", temp(40), activities["Snow"]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActivitiesFor(tt.code, tt.t)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ActivitiesFor(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestActivitiesForHeatAppendsTwoReminders(t *testing.T) {
	got := ActivitiesFor("Clear", temp(90))
	if len(got) != len(extremeHeatActivities)+2 {
		t.Fatalf("expected %d lines, got %d", len(extremeHeatActivities)+2, len(got))
	}
	tail := got[len(got)-2:]
	if !reflect.DeepEqual(tail, extremeHeatReminders) {
		t.Errorf("expected heat reminders at the end, got %v", tail)
	}
}

func TestEventIdeasFor(t *testing.T) {
	tests := []struct {
		code string
		want []string
	}{
		{"Clear", eventIdeas["Clear"]},
		{"Clouds", eventIdeas["Clouds"]},
		{"Drizzle", eventIdeas["Drizzle"]},
		{"Snow", eventIdeas["Snow"]},
		{"Thunderstorm", eventIdeas["Rain"]},
		{"Heavy Rain", eventIdeas["Rain"]},
		{"Snowfall", eventIdeas["Snow"]},
		{"Xyz", generalEventIdeas},
		{"Mist", generalEventIdeas},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := EventIdeasFor(tt.code); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EventIdeasFor(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestResultsDoNotAliasTables(t *testing.T) {
	got := ActivitiesFor("Rain", temp(50))
	got[0] = "mutated"
	if activities["Rain"][0] == "mutated" {
		t.Fatal("ActivitiesFor returned the table slice itself")
	}

	ideas := EventIdeasFor("Xyz")
	ideas[0] = "mutated"
	if generalEventIdeas[0] == "mutated" {
		t.Fatal("EventIdeasFor returned the table slice itself")
	}
}
