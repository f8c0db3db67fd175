// Package conditions сопоставляет погодные условия и температуру
// с иконкой, цветом фона и подсказками занятий. Без ввода-вывода.
package conditions

import "strings"

// UnknownGlyph возвращается для неизвестного кода условий
const UnknownGlyph = "❓"

// NeutralColor - цвет фона при неизвестной температуре
const NeutralColor = "#E5E5E5"

// ExtremeHeatColor - цвет выше последней ступени лестницы
const ExtremeHeatColor = "#FFBCAD"

const (
	heatThresholdF = 86.0
	coldThresholdF = 32.0
)

var icons = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "💧",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Thunderstorm": "⛈️",
	"Smoke":        "💨",
	"Haze":         "🌫️",
	"Dust":         "💨",
	"Sand":         "💨",
	"Ash":          "💨",
	"Squall":       "💨",
	"Tornado":      "🌪️",
}

type colorBucket struct {
	maxF  float64
	color string
}

// Верхние границы включительно, проверяются по возрастанию
var colorLadder = []colorBucket{
	{-10, "#E0F2FE"},
	{15, "#D4E6F1"},
	{32, "#BDE6F1"},
	{50, "#E6E0F8"},
	{65, "#D1F2EB"},
	{75, "#FEF9E7"},
	{85, "#FFE4C4"},
	{95, "#FFD1DC"},
}

var activities = map[string][]string{
	"Clear": {
		"Go for a walk or a bike ride in the park",
		"Have a picnic outdoors",
		"Visit a farmers market",
		"Try an outdoor photography session",
	},
	"Clouds": {
		"Visit a museum or art gallery",
		"Take a relaxed stroll around the neighborhood",
		"Explore a local bookstore or cafe",
		"Go for a run while it's not too sunny",
	},
	"Rain": {
		"Catch a movie at the cinema",
		"Visit an indoor climbing gym",
		"Curl up with a book and a hot drink",
		"Try a new recipe at home",
	},
	"Drizzle": {
		"Visit a cozy cafe",
		"Browse an indoor market or mall",
		"Go to a museum",
		"Take a short walk with an umbrella",
	},
	"Snow": {
		"Build a snowman",
		"Go sledding or skiing",
		"Have a snowball fight",
		"Warm up with hot chocolate afterwards",
	},
	"Thunderstorm": {
		"Stay indoors and play board games",
		"Watch a movie marathon at home",
		"Work on an indoor hobby or craft",
	},
	"Mist": {
		"Take a careful, atmospheric walk",
		"Visit an aquarium or indoor attraction",
		"Enjoy a slow breakfast at a local diner",
	},
	"Fog": {
		"Visit a library or bookstore",
		"Explore an indoor attraction",
		"Drive carefully, or skip the drive entirely",
	},
}

var extremeHeatActivities = []string{
	"Go swimming at a pool or beach",
	"Visit an air-conditioned museum or mall",
	"Enjoy ice cream or a cold drink in the shade",
}

var extremeHeatReminders = []string{
	"Stay hydrated and drink plenty of water",
	"Avoid strenuous activity during peak heat hours",
}

var extremeColdActivities = []string{
	"Visit an indoor ice rink",
	"Enjoy a warm meal at a local restaurant",
	"Go to a museum, theater or concert",
}

var extremeColdReminders = []string{
	"Focus on indoor plans and dress in layers if you go out",
}

var eventIdeas = map[string][]string{
	"Clear": {
		"Outdoor concerts and festivals",
		"Sports games and street fairs",
		"Open-air markets",
	},
	"Clouds": {
		"Gallery openings and exhibitions",
		"Walking tours",
		"Food and drink tastings",
	},
	"Rain": {
		"Indoor concerts and theater",
		"Comedy shows",
		"Workshops and classes",
	},
	"Drizzle": {
		"Cafe meetups and book readings",
		"Indoor exhibitions",
		"Cinema screenings",
	},
	"Snow": {
		"Winter festivals",
		"Holiday markets",
		"Ice skating events",
	},
}

var generalEventIdeas = []string{
	"Community meetups",
	"Local performances",
	"Conferences and expos",
}

// IconFor возвращает иконку для кода условий
func IconFor(code string) string {
	if glyph, ok := icons[code]; ok {
		return glyph
	}
	return UnknownGlyph
}

// ColorFor возвращает цвет фона для температуры в °F; nil - неизвестная температура
func ColorFor(tempF *float64) string {
	if tempF == nil {
		return NeutralColor
	}
	for _, b := range colorLadder {
		if *tempF <= b.maxF {
			return b.color
		}
	}
	return ExtremeHeatColor
}

// ActivitiesFor подбирает занятия. Экстремальная температура важнее кода условий.
func ActivitiesFor(code string, tempF *float64) []string {
	if tempF != nil {
		if *tempF > heatThresholdF && code != "Rain" && code != "Thunderstorm" {
			return concat(extremeHeatActivities, extremeHeatReminders)
		}
		if *tempF < coldThresholdF && code != "Snow" {
			return concat(extremeColdActivities, extremeColdReminders)
		}
	}

	if set, ok := activities[code]; ok {
		return concat(set)
	}

	switch {
	case strings.Contains(code, "Rain"), strings.Contains(code, "Drizzle"):
		return concat(activities["Rain"])
	case strings.Contains(code, "Snow"):
		return concat(activities["Snow"])
	default:
		return concat(activities["Clouds"])
	}
}

// EventIdeasFor подбирает идеи мероприятий по коду условий
func EventIdeasFor(code string) []string {
	if set, ok := eventIdeas[code]; ok {
		return concat(set)
	}

	switch {
	case strings.Contains(code, "Rain"), strings.Contains(code, "Drizzle"), strings.Contains(code, "Thunderstorm"):
		return concat(eventIdeas["Rain"])
	case strings.Contains(code, "Snow"):
		return concat(eventIdeas["Snow"])
	default:
		return concat(generalEventIdeas)
	}
}

// Palette - все цвета, которые может вернуть ColorFor
func Palette() []string {
	out := []string{NeutralColor}
	for _, b := range colorLadder {
		out = append(out, b.color)
	}
	return append(out, ExtremeHeatColor)
}

// concat копирует наборы, чтобы вызывающий не мог испортить таблицы
func concat(sets ...[]string) []string {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
