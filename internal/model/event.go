package model

// Значения по умолчанию для полей события
const (
	NoTitle = "No Title"
	NoURL   = "#"
	NotSet  = "N/A"
)

// EventRecord - одно событие поблизости, в порядке ответа API
type EventRecord struct {
	Title               string `json:"title"`
	URL                 string `json:"url"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	LocationDescription string `json:"location_description"`
}
