package model

// ErrorResponse - тело ответа API при ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ViewResponse - экран плюс признак того, что он взят из кэша
type ViewResponse struct {
	ViewModel
	Cached bool `json:"cached"`
}

// HistoryResponse - последние сохраненные обновления по локации
type HistoryResponse struct {
	Location  string         `json:"location"`
	Snapshots []HistoryEntry `json:"snapshots"`
	Total     int            `json:"total"`
}

// HistoryEntry - краткая запись истории обновлений
type HistoryEntry struct {
	ID            string      `json:"id"`
	Location      string      `json:"location"`
	Header        string      `json:"header"`
	TempText      string      `json:"temp_text"`
	ConditionText string      `json:"condition_text"`
	FailureKind   FailureKind `json:"failure_kind,omitempty"`
	EventsCount   int         `json:"events_count"`
	CreatedAt     string      `json:"created_at"`
}
