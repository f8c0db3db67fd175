// Package presenter собирает ViewModel из результатов клиентов погоды и событий.
package presenter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gometeo/guide/internal/conditions"
	"github.com/gometeo/guide/internal/model"
)

// LinkIDPrefix - префикс идентификаторов кликабельных строк
const LinkIDPrefix = "event_link_"

// WeatherOutcome - результат клиента погоды: либо Reading, либо Err
type WeatherOutcome struct {
	Location string
	Reading  *model.WeatherReading
	Err      error
}

// EventsOutcome - результат клиента событий
type EventsOutcome struct {
	Events []model.EventRecord
	Err    error
}

type Presenter struct {
	RadiusMiles int
}

func New(radiusMiles int) *Presenter {
	return &Presenter{RadiusMiles: radiusMiles}
}

// BuildViewModel детерминирована: одинаковые входы дают одинаковый экран.
// Ошибка событий никогда не скрывает погоду.
func (p *Presenter) BuildViewModel(w WeatherOutcome, e EventsOutcome) model.ViewModel {
	vm := emptyView(w.Location)

	if w.Reading != nil && w.Err == nil {
		p.applyReading(&vm, *w.Reading)
	} else {
		f := model.AsFailure(w.Err)
		if f == nil {
			f = model.NewFailure(model.Unknown, "no weather result")
		}
		applyWeatherFailure(&vm, w.Location, f)
	}

	if e.Err != nil {
		p.applyEventsFailure(&vm, model.AsFailure(e.Err))
	} else {
		p.applyEvents(&vm, e.Events)
	}
	return vm
}

// InvalidInput - экран для пустой локации; сеть не вызывается
func (p *Presenter) InvalidInput() model.ViewModel {
	vm := emptyView("")
	vm.HeaderText = "Please enter a ZIP code."
	vm.TempText = "Invalid Input"
	vm.ConditionText = "Please enter a ZIP code."
	vm.IconGlyph = "🚫"
	vm.EventsMessage = "Please enter a ZIP code to find events."
	vm.EventText = []model.TextSegment{{Text: vm.EventsMessage + "\n\n"}}
	vm.WeatherFailure = model.NewFailure(model.InvalidInput, "location is empty")
	return vm
}

// Loading - экран до первого обновления
func (p *Presenter) Loading() model.ViewModel {
	vm := emptyView("")
	vm.HeaderText = "LOCATION"
	vm.IconGlyph = "⏳"
	vm.TempText = "Temperature: --°F"
	vm.ConditionText = "Condition: ----"
	vm.HumidityText = "Humidity: --%"
	vm.WindText = "Wind: -- mph"
	return vm
}

func emptyView(location string) model.ViewModel {
	return model.ViewModel{
		Location:        location,
		BackgroundColor: conditions.ColorFor(nil),
		ActivityLines:   []string{},
		EventIdeaLines:  []string{},
		EventEntries:    []model.EventEntry{},
		EventText:       []model.TextSegment{},
		Links:           map[string]string{},
	}
}

func (p *Presenter) applyReading(vm *model.ViewModel, r model.WeatherReading) {
	tempF := r.TemperatureF()
	tempUnit := model.TemperatureSymbol(r.Units)
	speedUnit := model.SpeedSymbol(r.Units)

	vm.HeaderText = strings.ToUpper(r.LocationName)
	vm.IconGlyph = conditions.IconFor(r.ConditionCode)
	vm.ConditionText = "Condition: " + capitalize(r.ConditionDescription)

	vm.TempText = "Temperature: --" + tempUnit
	if r.Temperature != nil {
		vm.TempText = fmt.Sprintf("Temperature: %s%s", formatNumber(*r.Temperature), tempUnit)
	}
	vm.HumidityText = "Humidity: --%"
	if r.HumidityPct != nil {
		vm.HumidityText = fmt.Sprintf("Humidity: %d%%", *r.HumidityPct)
	}
	vm.WindText = "Wind: -- " + speedUnit
	if r.WindSpeed != nil {
		vm.WindText = fmt.Sprintf("Wind: %s %s", formatNumber(*r.WindSpeed), speedUnit)
	}

	vm.BackgroundColor = conditions.ColorFor(tempF)
	vm.ActivityLines = conditions.ActivitiesFor(r.ConditionCode, tempF)
	vm.EventIdeaLines = conditions.EventIdeasFor(r.ConditionCode)
}

func applyWeatherFailure(vm *model.ViewModel, location string, f *model.Failure) {
	vm.HeaderText = strings.ToUpper(location)
	switch f.Kind {
	case model.ConfigError:
		vm.HeaderText = "Weather API Key Missing!"
	case model.NotFound:
		vm.HeaderText = "Unknown Location"
	}

	d := describeFailure(f)
	vm.TempText = d.title
	vm.ConditionText = d.condition
	vm.IconGlyph = d.icon
	vm.HumidityText = ""
	vm.WindText = ""
	vm.WeatherFailure = f
}

func (p *Presenter) applyEvents(vm *model.ViewModel, records []model.EventRecord) {
	if len(records) == 0 {
		vm.EventsMessage = fmt.Sprintf("No events found for this location within %d miles.", p.RadiusMiles)
		vm.EventText = append(vm.EventText, model.TextSegment{Text: vm.EventsMessage + "\n"})
		return
	}

	for i, ev := range records {
		id := LinkIDPrefix + strconv.Itoa(i)
		vm.EventEntries = append(vm.EventEntries, model.EventEntry{
			ID:    id,
			Label: ev.Title,
			URL:   ev.URL,
			When:  ev.StartTime,
			Where: ev.LocationDescription,
		})
		vm.Links[id] = ev.URL
		vm.EventText = append(vm.EventText,
			model.TextSegment{Text: "Event: "},
			model.TextSegment{Text: ev.Title + "\n", LinkID: id},
			model.TextSegment{Text: "  When: " + ev.StartTime + "\n"},
			model.TextSegment{Text: "  Where: " + ev.LocationDescription + "\n\n"},
		)
	}
}

func (p *Presenter) applyEventsFailure(vm *model.ViewModel, f *model.Failure) {
	if f.Kind == model.ConfigError {
		vm.EventsMessage = "Event API key is missing or invalid. Cannot fetch events. Please set the PREDICTHQ_API_KEY environment variable."
	} else {
		vm.EventsMessage = fmt.Sprintf("Could not fetch events because of %s.", eventsReason(f))
	}
	vm.EventText = append(vm.EventText, model.TextSegment{Text: vm.EventsMessage + "\n\n"})
	vm.EventsFailure = f
}

func eventsReason(f *model.Failure) string {
	switch f.Kind {
	case model.AuthError:
		return "an authorization failure"
	case model.NetworkError:
		return "a network error"
	case model.DecodeError:
		return "an invalid response"
	}
	if f.RawStatus != nil {
		return fmt.Sprintf("a server error (%d)", *f.RawStatus)
	}
	return "an unexpected error"
}

// capitalize: первая буква заглавная, остальные строчные
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
