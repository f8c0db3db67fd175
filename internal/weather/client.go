package weather

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
	"strings"
	"time"

	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/model"
)

// DefaultTimeout - таймаут по умолчанию на один запрос
const DefaultTimeout = 10 * time.Second

// Маркеры ошибок разрешения имен в тексте транспортной ошибки
var dnsMarkers = []string{
	"nameresolutionerror",
	"[errno 11001]",
	"nodename nor servname provided",
	"no such host",
	"server misbehaving",
}

// Client ходит в OpenWeatherMap current weather API
type Client struct {
	APIKey     string
	BaseURL    string
	Country    string
	HTTPClient *http.Client
	logger     *slog.Logger
}

// NewClient создает клиент из конфигурации
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	key := strings.TrimSpace(cfg.WeatherAPIKey)
	if !cfg.HasWeatherKey() {
		key = ""
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		APIKey:  key,
		BaseURL: cfg.WeatherURL,
		Country: cfg.WeatherCountry,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// currentResponse - ответ /data/2.5/weather; указатели отличают отсутствие поля от нуля
type currentResponse struct {
	Name *string `json:"name"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// FetchWeather получает текущую погоду. Ошибка всегда *model.Failure.
func (c *Client) FetchWeather(ctx context.Context, location, units string) (*model.WeatherReading, error) {
	units = model.NormalizeUnits(units)

	if c.APIKey == "" || c.APIKey == config.PlaceholderWeatherKey {
		f := model.NewFailure(model.ConfigError, "weather API key is not configured")
		c.log().Error("Не задан ключ OpenWeatherMap", "location", location)
		return nil, f
	}

	requestURL := c.requestURL(location, units)
	data, err := c.get(ctx, requestURL)
	if err != nil {
		f := model.AsFailure(err)
		c.log().Error("Ошибка получения погоды",
			"location", location,
			"kind", f.Kind,
			"error", err)
		return nil, f
	}

	var resp currentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.log().Error("Ошибка разбора ответа погоды", "location", location, "error", err)
		return nil, model.NewFailure(model.DecodeError, "invalid weather JSON: %v", err)
	}

	reading := transform(resp, units)
	c.log().Info("Погода получена",
		"location", location,
		"city", reading.LocationName,
		"condition", reading.ConditionCode)
	return reading, nil
}

func (c *Client) requestURL(location, units string) string {
	params := url.Values{}
	params.Set("zip", fmt.Sprintf("%s,%s", location, c.country()))
	params.Set("appid", c.APIKey)
	params.Set("units", units)
	return c.BaseURL + "?" + params.Encode()
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, model.NewFailure(model.Unknown, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err, req.URL.Hostname())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, model.NewStatusFailure(model.AuthError, resp.StatusCode, "API key is invalid or not activated")
	case resp.StatusCode == http.StatusNotFound:
		return nil, model.NewStatusFailure(model.NotFound, resp.StatusCode, "location not found by weather service")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, model.NewStatusFailure(model.Unknown, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err, req.URL.Hostname())
	}
	return body, nil
}

// classifyTransport превращает ошибку транспорта в NetworkError,
// отличая сбой DNS от прочих ошибок соединения
func classifyTransport(err error, host string) *model.Failure {
	f := &model.Failure{Kind: model.NetworkError, Message: err.Error(), Host: host}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		f.DNS = true
		return f
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		f.Message = "timeout: " + err.Error()
		return f
	}

	text := strings.ToLower(err.Error())
	for _, marker := range dnsMarkers {
		if strings.Contains(text, marker) {
			f.DNS = true
			break
		}
	}
	return f
}

func transform(resp currentResponse, units string) *model.WeatherReading {
	reading := &model.WeatherReading{
		LocationName:         model.UnknownCity,
		Temperature:          resp.Main.Temp,
		Units:                units,
		ConditionCode:        model.UnknownCondition,
		ConditionDescription: model.UnknownDescription,
		HumidityPct:          resp.Main.Humidity,
		WindSpeed:            resp.Wind.Speed,
	}
	if resp.Name != nil {
		reading.LocationName = *resp.Name
	}
	if len(resp.Weather) > 0 {
		w := resp.Weather[0]
		if w.Main != nil {
			reading.ConditionCode = *w.Main
		}
		if w.Description != nil {
			reading.ConditionDescription = *w.Description
		}
	}
	return reading
}

func (c *Client) country() string {
	if c.Country == "" {
		return "US"
	}
	return c.Country
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
