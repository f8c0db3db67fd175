package model

// Системы единиц OpenWeatherMap
const (
	UnitsImperial = "imperial"
	UnitsMetric   = "metric"
	UnitsStandard = "standard"
)

// Значения-заглушки для отсутствующих полей ответа
const (
	UnknownCity        = "Unknown City"
	UnknownCondition   = "N/A"
	UnknownDescription = "Not available"
)

// NormalizeUnits возвращает поддерживаемую систему единиц, по умолчанию imperial
func NormalizeUnits(units string) string {
	switch units {
	case UnitsMetric, UnitsStandard:
		return units
	default:
		return UnitsImperial
	}
}

// WeatherReading - текущие условия, полученные за одно обновление.
// Nil-указатель означает, что поле не пришло в ответе.
type WeatherReading struct {
	LocationName         string   `json:"location_name"`
	Temperature          *float64 `json:"temperature"`
	Units                string   `json:"units"`
	ConditionCode        string   `json:"condition_code"`
	ConditionDescription string   `json:"condition_description"`
	HumidityPct          *int     `json:"humidity_pct"`
	WindSpeed            *float64 `json:"wind_speed"`
}

// TemperatureF переводит температуру в градусы Фаренгейта
func (r WeatherReading) TemperatureF() *float64 {
	if r.Temperature == nil {
		return nil
	}
	t := *r.Temperature
	switch NormalizeUnits(r.Units) {
	case UnitsMetric:
		t = t*9.0/5.0 + 32.0
	case UnitsStandard:
		t = (t-273.15)*9.0/5.0 + 32.0
	}
	return &t
}

// TemperatureSymbol - обозначение единицы температуры
func TemperatureSymbol(units string) string {
	switch NormalizeUnits(units) {
	case UnitsMetric:
		return "°C"
	case UnitsStandard:
		return "K"
	default:
		return "°F"
	}
}

// SpeedSymbol - обозначение единицы скорости ветра
func SpeedSymbol(units string) string {
	if NormalizeUnits(units) == UnitsImperial {
		return "mph"
	}
	return "m/s"
}
