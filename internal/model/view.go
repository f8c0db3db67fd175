package model

import "time"

// EventEntry - событие в том виде, в котором оно показывается пользователю.
// ID связывает кликабельную строку с URL в пределах одной отрисовки.
type EventEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	When  string `json:"when"`
	Where string `json:"where"`
}

// TextSegment - кусок сплошного текстового блока событий.
// Непустой LinkID делает сегмент кликабельным.
type TextSegment struct {
	Text   string `json:"text"`
	LinkID string `json:"link_id,omitempty"`
}

// ViewModel - полностью заполненное состояние экрана.
// Отсутствующие данные заменяются пустыми строками или заглушками.
// RenderID задает отрисовку, в пределах которой действуют идентификаторы ссылок.
type ViewModel struct {
	RenderID        string `json:"render_id"`
	Location        string `json:"location"`
	HeaderText      string `json:"header_text"`
	IconGlyph       string `json:"icon_glyph"`
	TempText        string `json:"temp_text"`
	ConditionText   string `json:"condition_text"`
	HumidityText    string `json:"humidity_text"`
	WindText        string `json:"wind_text"`
	BackgroundColor string `json:"background_color"`

	ActivityLines  []string `json:"activity_lines"`
	EventIdeaLines []string `json:"event_idea_lines"`

	EventsMessage string            `json:"events_message"`
	EventEntries  []EventEntry      `json:"event_entries"`
	EventText     []TextSegment     `json:"event_text"`
	Links         map[string]string `json:"links"`

	WeatherFailure *Failure `json:"weather_failure,omitempty"`
	EventsFailure  *Failure `json:"events_failure,omitempty"`
}

// LinkURL ищет URL по идентификатору ссылки этой отрисовки
func (v ViewModel) LinkURL(id string) (string, bool) {
	url, ok := v.Links[id]
	return url, ok
}

// Snapshot - результат одного обновления, уходит в Kafka и в историю
type Snapshot struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	Units     string    `json:"units"`
	View      ViewModel `json:"view"`
	CreatedAt time.Time `json:"created_at"`
}
