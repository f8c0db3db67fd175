package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/gometeo/guide/internal/cache"
	"github.com/gometeo/guide/internal/guide"
	"github.com/gometeo/guide/internal/model"
)

// Display - текущий экран и его обновление
type Display interface {
	Current() model.ViewModel
	Refresh(ctx context.Context, location string) model.Snapshot
	ResolveLink(renderID, id string) (string, error)
}

type ViewCache interface {
	Get(ctx context.Context, key string) (*model.ViewModel, error)
	Exists(ctx context.Context, key string) (bool, error)
}

type HistoryStore interface {
	History(ctx context.Context, location string, limit int) ([]model.HistoryEntry, error)
	Ping(ctx context.Context) error
}

type GuideHandler struct {
	display Display
	cache   ViewCache
	store   HistoryStore
	units   string
	logger  *slog.Logger
}

func NewGuideHandler(display Display, cache ViewCache, store HistoryStore, units string, logger *slog.Logger) *GuideHandler {
	return &GuideHandler{
		display: display,
		cache:   cache,
		store:   store,
		units:   model.NormalizeUnits(units),
		logger:  logger,
	}
}

// Register вешает маршруты на подроутер /api/v1
func (h *GuideHandler) Register(api *mux.Router) {
	api.HandleFunc("/view", h.GetCurrentView).Methods("GET")
	api.HandleFunc("/view/{location}", h.GetView).Methods("GET")
	api.HandleFunc("/refresh", h.Refresh).Methods("POST")
	api.HandleFunc("/refresh/{location}", h.Refresh).Methods("POST")
	api.HandleFunc("/links/{render}/{id}", h.OpenLink).Methods("GET")
	api.HandleFunc("/history/{location}", h.GetHistory).Methods("GET")
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

// GetCurrentView возвращает последний построенный экран
func (h *GuideHandler) GetCurrentView(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, model.ViewResponse{ViewModel: h.display.Current()})
}

// GetView отдает экран из кэша, а при промахе выполняет обновление
func (h *GuideHandler) GetView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	location := strings.TrimSpace(mux.Vars(r)["location"])
	ctx := r.Context()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, cache.ViewKey(location, h.units))
		if err != nil {
			h.logger.Error("Ошибка чтения из кэша", "location", location, "error", err)
			// Продолжаем - кэш не критичен
		}
		if cached != nil {
			sendJSON(w, http.StatusOK, model.ViewResponse{ViewModel: *cached, Cached: true})
			h.logger.Info("Экран отдан из кэша",
				"location", location,
				"duration_ms", time.Since(start).Milliseconds(),
				"source", "cache")
			return
		}
	}

	snap := h.display.Refresh(ctx, location)
	sendJSON(w, http.StatusOK, model.ViewResponse{ViewModel: snap.View})

	h.logger.Info("Экран построен заново",
		"location", location,
		"duration_ms", time.Since(start).Milliseconds(),
		"source", "api")
}

// Refresh всегда идет во внешние API. Локацию можно передать в пути или в ?location=
func (h *GuideHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	location, ok := mux.Vars(r)["location"]
	if !ok {
		location = r.FormValue("location")
	}

	snap := h.display.Refresh(r.Context(), location)
	sendJSON(w, http.StatusOK, model.ViewResponse{ViewModel: snap.View})
}

// OpenLink перенаправляет на URL события из текущей отрисовки.
// render - RenderID экрана, из которого взята ссылка.
func (h *GuideHandler) OpenLink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	render, id := vars["render"], vars["id"]

	url, err := h.display.ResolveLink(render, id)
	if errors.Is(err, guide.ErrUnknownLink) {
		h.logger.Info("Ссылка отклонена", "render", render, "id", id)
		sendError(w, http.StatusNotFound, "Ссылка не найдена", "идентификатор устарел или не существует")
		return
	}
	if err != nil {
		h.logger.Error("Ошибка поиска ссылки", "render", render, "id", id, "error", err)
		sendError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", "")
		return
	}
	if url == "" || url == model.NoURL {
		sendError(w, http.StatusNotFound, "У события нет ссылки", "")
		return
	}

	h.logger.Info("Переход по ссылке события", "render", render, "id", id, "url", url)
	http.Redirect(w, r, url, http.StatusFound)
}

// GetHistory возвращает последние снимки по локации
func (h *GuideHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(mux.Vars(r)["location"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			sendError(w, http.StatusBadRequest, "Неверный limit", raw)
			return
		}
		limit = n
	}

	if h.store == nil {
		sendError(w, http.StatusServiceUnavailable, "История недоступна", "")
		return
	}

	entries, err := h.store.History(r.Context(), location, limit)
	if err != nil {
		h.logger.Error("Ошибка получения истории", "location", location, "error", err)
		sendError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера", "")
		return
	}

	sendJSON(w, http.StatusOK, model.HistoryResponse{
		Location:  location,
		Snapshots: entries,
		Total:     len(entries),
	})
}

// HealthCheck проверяет доступность сервисов
func (h *GuideHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	health := map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Проверка БД
	if h.store == nil {
		health["database"] = "disabled"
	} else if err := h.store.Ping(ctx); err != nil {
		health["database"] = "unhealthy"
		health["status"] = "degraded"
		h.logger.Error("Health check: DB недоступна", "error", err)
	} else {
		health["database"] = "healthy"
	}

	// Проверка Redis
	if h.cache == nil {
		health["redis"] = "disabled"
	} else if _, err := h.cache.Exists(ctx, cache.HealthKey()); err != nil {
		health["redis"] = "unhealthy"
		health["status"] = "degraded"
		h.logger.Error("Health check: Redis недоступен", "error", err)
	} else {
		health["redis"] = "healthy"
	}

	status := http.StatusOK
	if health["status"] == "degraded" {
		status = http.StatusServiceUnavailable
	}

	sendJSON(w, status, health)
}

// Вспомогательные функции
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, errorMsg, details string) {
	response := model.ErrorResponse{
		Error:   errorMsg,
		Message: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
