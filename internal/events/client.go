package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/model"
)

// DefaultLimit - сколько событий запрашивать и показывать
const DefaultLimit = 10

// Client ходит в PredictHQ events API
type Client struct {
	APIKey     string
	BaseURL    string
	Limit      int
	HTTPClient *http.Client
	logger     *slog.Logger
}

// NewClient создает клиент из конфигурации
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		APIKey:  strings.TrimSpace(cfg.EventsAPIKey),
		BaseURL: cfg.EventsURL,
		Limit:   cfg.EventsLimit,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type eventsResponse struct {
	Results []struct {
		Title    *string  `json:"title"`
		URL      *string  `json:"url"`
		Start    *string  `json:"start"`
		End      *string  `json:"end"`
		Entities []entity `json:"entities"`
		// PredictHQ отдает координаты как [lon, lat]
		Location []float64 `json:"location"`
	} `json:"results"`
}

type entity struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// FetchEvents ищет события вокруг локации. При любой ошибке возвращает
// пустой (не nil) список вместе с *model.Failure - частичных результатов не бывает.
func (c *Client) FetchEvents(ctx context.Context, location string, radiusMiles int) ([]model.EventRecord, error) {
	if c.APIKey == "" {
		c.log().Warn("Не задан ключ PredictHQ, события не запрашиваются", "location", location)
		return []model.EventRecord{}, model.NewFailure(model.ConfigError, "events API key is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(location, radiusMiles), nil)
	if err != nil {
		c.log().Error("Ошибка построения запроса событий", "error", err)
		return []model.EventRecord{}, model.NewFailure(model.Unknown, "build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log().Error("Сетевая ошибка PredictHQ", "location", location, "error", err)
		return []model.EventRecord{}, networkFailure(err, req.URL.Hostname())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log().Error("Ошибка чтения ответа PredictHQ", "error", err)
		return []model.EventRecord{}, networkFailure(err, req.URL.Hostname())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return []model.EventRecord{}, c.statusFailure(resp.StatusCode, body)
	}

	var data eventsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.log().Error("Ошибка разбора JSON PredictHQ", "error", err)
		return []model.EventRecord{}, model.NewFailure(model.DecodeError, "invalid events JSON: %v", err)
	}

	records := make([]model.EventRecord, 0, len(data.Results))
	for _, r := range data.Results {
		if len(records) >= c.limit() {
			break
		}
		records = append(records, model.EventRecord{
			Title:               valueOr(r.Title, model.NoTitle),
			URL:                 valueOr(r.URL, model.NoURL),
			StartTime:           valueOr(r.Start, model.NotSet),
			EndTime:             valueOr(r.End, model.NotSet),
			LocationDescription: describeLocation(r.Entities, r.Location),
		})
	}

	c.log().Info("События получены", "location", location, "count", len(records))
	return records, nil
}

func (c *Client) requestURL(location string, radiusMiles int) string {
	params := url.Values{}
	params.Set("q", "event")
	params.Set("location_around.zip", location)
	params.Set("location_around.radius", fmt.Sprintf("%dmi", radiusMiles))
	params.Set("active.gte", "now")
	params.Set("limit", strconv.Itoa(c.limit()))
	return c.BaseURL + "?" + params.Encode()
}

func (c *Client) statusFailure(status int, body []byte) *model.Failure {
	c.log().Error("Ошибка HTTP PredictHQ", "status", status, "body", string(body))

	switch status {
	case http.StatusUnauthorized:
		c.log().Error("Ошибка аутентификации PredictHQ: проверьте ключ в PREDICTHQ_API_KEY")
		return model.NewStatusFailure(model.AuthError, status, "events API key was rejected")
	case http.StatusBadRequest:
		detail := "No detail provided"
		var e errorResponse
		if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
			detail = e.Detail
		}
		c.log().Error("Неверный запрос к PredictHQ", "detail", detail)
		return model.NewStatusFailure(model.Unknown, status, "bad request: "+detail)
	default:
		return model.NewStatusFailure(model.Unknown, status, http.StatusText(status))
	}
}

func networkFailure(err error, host string) *model.Failure {
	f := &model.Failure{Kind: model.NetworkError, Message: err.Error(), Host: host}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		f.DNS = true
	}
	return f
}

// describeLocation: имя первой площадки, иначе координаты, иначе N/A
func describeLocation(entities []entity, coords []float64) string {
	if len(entities) > 0 && entities[0].Name != "" {
		return entities[0].Name
	}
	if len(coords) >= 2 {
		return fmt.Sprintf("Lat: %s, Lon: %s", formatCoord(coords[1]), formatCoord(coords[0]))
	}
	return model.NotSet
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func (c *Client) limit() int {
	if c.Limit <= 0 {
		return DefaultLimit
	}
	return c.Limit
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
