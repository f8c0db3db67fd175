package guide

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/gometeo/guide/internal/model"
)

type fakeWeather struct {
	calls   []string
	reading *model.WeatherReading
	err     error
}

func (f *fakeWeather) FetchWeather(_ context.Context, location, units string) (*model.WeatherReading, error) {
	f.calls = append(f.calls, location+"/"+units)
	return f.reading, f.err
}

type fakeEvents struct {
	calls   []string
	records []model.EventRecord
	err     error
}

func (f *fakeEvents) FetchEvents(_ context.Context, location string, _ int) ([]model.EventRecord, error) {
	f.calls = append(f.calls, location)
	if f.err != nil {
		return []model.EventRecord{}, f.err
	}
	return f.records, nil
}

func newGuide(w *fakeWeather, e *fakeEvents) *Guide {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(w, e, Options{Units: "imperial", RadiusMiles: 10, DefaultLocation: "10001"}, logger)
}

func reading(code string, temp float64) *model.WeatherReading {
	return &model.WeatherReading{
		LocationName:         "New York",
		Temperature:          &temp,
		Units:                model.UnitsImperial,
		ConditionCode:        code,
		ConditionDescription: "something",
	}
}

func TestRefresh_BlankLocationSkipsNetwork(t *testing.T) {
	w := &fakeWeather{reading: reading("Clear", 70)}
	e := &fakeEvents{}
	g := newGuide(w, e)

	snap := g.Refresh(context.Background(), "   ")

	if len(w.calls) != 0 || len(e.calls) != 0 {
		t.Fatalf("expected no fetches, got weather=%v events=%v", w.calls, e.calls)
	}
	if snap.View.TempText != "Invalid Input" {
		t.Errorf("expected the invalid input view, got %q", snap.View.TempText)
	}
	if g.Current().HeaderText != "Please enter a ZIP code." {
		t.Errorf("expected current view to be replaced, got %q", g.Current().HeaderText)
	}
}

func TestRefresh_RunsWeatherThenEvents(t *testing.T) {
	w := &fakeWeather{reading: reading("Rain", 50)}
	e := &fakeEvents{records: []model.EventRecord{{Title: "Show", URL: "https://example.com/show"}}}
	g := newGuide(w, e)

	snap := g.Refresh(context.Background(), " 10001 ")

	if !reflect.DeepEqual(w.calls, []string{"10001/imperial"}) {
		t.Errorf("unexpected weather calls %v", w.calls)
	}
	if !reflect.DeepEqual(e.calls, []string{"10001"}) {
		t.Errorf("unexpected events calls %v", e.calls)
	}
	if snap.ID == "" || snap.Location != "10001" || snap.Units != "imperial" {
		t.Errorf("unexpected snapshot metadata %+v", snap)
	}
	if snap.View.HeaderText != "NEW YORK" {
		t.Errorf("unexpected header %q", snap.View.HeaderText)
	}
}

func TestRefresh_EventsFailureDoesNotBlockWeather(t *testing.T) {
	w := &fakeWeather{reading: reading("Clear", 70)}
	e := &fakeEvents{err: model.NewFailure(model.ConfigError, "no key")}
	g := newGuide(w, e)

	view := g.Refresh(context.Background(), "10001").View
	if view.HeaderText != "NEW YORK" {
		t.Errorf("expected weather to render, got %q", view.HeaderText)
	}
	if view.EventsFailure == nil || view.EventsFailure.Kind != model.ConfigError {
		t.Errorf("expected ConfigError for events, got %+v", view.EventsFailure)
	}
	if len(view.EventEntries) != 0 {
		t.Error("expected no event entries")
	}
}

func TestRefresh_WeatherFailureStillFetchesEvents(t *testing.T) {
	w := &fakeWeather{err: model.NewStatusFailure(model.AuthError, 401, "bad key")}
	e := &fakeEvents{records: []model.EventRecord{{Title: "Show", URL: "u"}}}
	g := newGuide(w, e)

	view := g.Refresh(context.Background(), "10001").View
	if len(e.calls) != 1 {
		t.Fatalf("expected events to be fetched, got %d calls", len(e.calls))
	}
	if view.HumidityText != "" || view.WindText != "" {
		t.Error("expected blank humidity and wind")
	}
	if len(view.EventEntries) != 1 {
		t.Errorf("expected 1 event entry, got %d", len(view.EventEntries))
	}
}

func TestResolveLink_StaleAfterRefresh(t *testing.T) {
	w := &fakeWeather{reading: reading("Clear", 70)}
	e := &fakeEvents{records: []model.EventRecord{
		{Title: "A", URL: "https://example.com/a"},
		{Title: "B", URL: "https://example.com/b"},
	}}
	g := newGuide(w, e)

	if _, err := g.ResolveLink(g.Current().RenderID, "event_link_0"); !errors.Is(err, ErrUnknownLink) {
		t.Fatalf("expected ErrUnknownLink before the first render, got %v", err)
	}

	first := g.Refresh(context.Background(), "10001")
	if first.View.RenderID == "" || first.View.RenderID != first.ID {
		t.Fatalf("expected the render id to match the snapshot id, got %q / %q", first.View.RenderID, first.ID)
	}
	url, err := g.ResolveLink(first.View.RenderID, "event_link_1")
	if err != nil || url != "https://example.com/b" {
		t.Fatalf("expected link to resolve to b, got %q, %v", url, err)
	}

	e.records = []model.EventRecord{{Title: "C", URL: "https://example.com/c"}}
	second := g.Refresh(context.Background(), "10001")

	if second.View.RenderID == first.View.RenderID {
		t.Fatal("expected a new render id per refresh")
	}
	// тот же идентификатор из прошлой отрисовки больше не действует
	if _, err := g.ResolveLink(first.View.RenderID, "event_link_0"); !errors.Is(err, ErrUnknownLink) {
		t.Errorf("expected an id from the previous render to be rejected, got %v", err)
	}
	if _, err := g.ResolveLink(second.View.RenderID, "event_link_1"); !errors.Is(err, ErrUnknownLink) {
		t.Errorf("expected an id missing from the current render to be rejected, got %v", err)
	}
	if url, _ := g.ResolveLink(second.View.RenderID, "event_link_0"); url != "https://example.com/c" {
		t.Errorf("expected event_link_0 of the current render to resolve to c, got %q", url)
	}
	if _, err := g.ResolveLink("", "event_link_0"); !errors.Is(err, ErrUnknownLink) {
		t.Errorf("expected an empty render id to be rejected, got %v", err)
	}
}

func TestStartUsesDefaultLocationAndHooks(t *testing.T) {
	w := &fakeWeather{reading: reading("Clear", 70)}
	e := &fakeEvents{}
	g := newGuide(w, e)

	var seen []model.Snapshot
	g.OnRefresh(func(_ context.Context, snap model.Snapshot) {
		seen = append(seen, snap)
	})

	if g.Current().IconGlyph != "⏳" {
		t.Errorf("expected the loading view before the first refresh, got %q", g.Current().IconGlyph)
	}

	snap := g.Start(context.Background())
	if snap.Location != "10001" {
		t.Errorf("expected default location, got %q", snap.Location)
	}
	if len(seen) != 1 || seen[0].ID != snap.ID {
		t.Errorf("expected the hook to see the snapshot, got %+v", seen)
	}
}
