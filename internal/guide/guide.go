// Package guide выполняет обновление экрана: погода, затем события, затем ViewModel.
package guide

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gometeo/guide/internal/model"
	"github.com/gometeo/guide/internal/presenter"
)

// ErrUnknownLink - идентификатор не из текущей отрисовки (или устарел)
var ErrUnknownLink = errors.New("unknown or stale event link")

type WeatherFetcher interface {
	FetchWeather(ctx context.Context, location, units string) (*model.WeatherReading, error)
}

type EventsFetcher interface {
	FetchEvents(ctx context.Context, location string, radiusMiles int) ([]model.EventRecord, error)
}

// Hook вызывается после каждого обновления, уже после замены экрана
type Hook func(ctx context.Context, snap model.Snapshot)

type Options struct {
	Units           string
	RadiusMiles     int
	DefaultLocation string
}

// Guide держит текущий экран. Обновления идут строго по одному.
type Guide struct {
	weather   WeatherFetcher
	events    EventsFetcher
	presenter *presenter.Presenter
	opts      Options
	logger    *slog.Logger
	hooks     []Hook

	refreshMu sync.Mutex

	viewMu  sync.RWMutex
	current model.ViewModel

	now func() time.Time
}

func New(weather WeatherFetcher, events EventsFetcher, opts Options, logger *slog.Logger) *Guide {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Units = model.NormalizeUnits(opts.Units)
	p := presenter.New(opts.RadiusMiles)
	return &Guide{
		weather:   weather,
		events:    events,
		presenter: p,
		opts:      opts,
		logger:    logger,
		current:   p.Loading(),
		now:       time.Now,
	}
}

// OnRefresh регистрирует хук; вызывать до начала работы
func (g *Guide) OnRefresh(h Hook) {
	g.hooks = append(g.hooks, h)
}

// Start выполняет первое обновление для локации по умолчанию
func (g *Guide) Start(ctx context.Context) model.Snapshot {
	return g.Refresh(ctx, g.opts.DefaultLocation)
}

// Refresh строит экран заново и целиком заменяет текущий.
// Пустая локация отклоняется без обращения к сети.
func (g *Guide) Refresh(ctx context.Context, location string) model.Snapshot {
	g.refreshMu.Lock()
	defer g.refreshMu.Unlock()

	start := g.now()
	location = strings.TrimSpace(location)

	var view model.ViewModel
	if location == "" {
		g.logger.Warn("Пустая локация, обновление отклонено")
		view = g.presenter.InvalidInput()
	} else {
		view = g.build(ctx, location)
	}

	// ссылки действуют только в пределах своей отрисовки
	view.RenderID = uuid.NewString()

	g.viewMu.Lock()
	g.current = view
	g.viewMu.Unlock()

	snap := model.Snapshot{
		ID:        view.RenderID,
		Location:  location,
		Units:     g.opts.Units,
		View:      view,
		CreatedAt: g.now(),
	}

	g.logger.Info("Экран обновлен",
		"location", location,
		"header", view.HeaderText,
		"events", len(view.EventEntries),
		"duration_ms", g.now().Sub(start).Milliseconds())

	for _, h := range g.hooks {
		h(ctx, snap)
	}
	return snap
}

func (g *Guide) build(ctx context.Context, location string) model.ViewModel {
	reading, werr := g.weather.FetchWeather(ctx, location, g.opts.Units)
	if werr != nil {
		g.logger.Warn("Погода недоступна", "location", location, "error", werr)
	}

	records, eerr := g.events.FetchEvents(ctx, location, g.opts.RadiusMiles)
	if eerr != nil {
		// мягкая ошибка: погода все равно показывается
		g.logger.Warn("События недоступны", "location", location, "error", eerr)
	}

	return g.presenter.BuildViewModel(
		presenter.WeatherOutcome{Location: location, Reading: reading, Err: werr},
		presenter.EventsOutcome{Events: records, Err: eerr},
	)
}

// Current возвращает последний построенный экран
func (g *Guide) Current() model.ViewModel {
	g.viewMu.RLock()
	defer g.viewMu.RUnlock()
	return g.current
}

// ResolveLink ищет URL только в текущей отрисовке. Идентификатор из любой
// другой отрисовки (включая экран из кэша) отклоняется.
func (g *Guide) ResolveLink(renderID, id string) (string, error) {
	g.viewMu.RLock()
	defer g.viewMu.RUnlock()

	if renderID == "" || renderID != g.current.RenderID {
		return "", ErrUnknownLink
	}
	url, ok := g.current.LinkURL(id)
	if !ok {
		return "", ErrUnknownLink
	}
	return url, nil
}
