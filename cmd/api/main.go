package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/gometeo/guide/internal/api/handlers"
	"github.com/gometeo/guide/internal/cache"
	"github.com/gometeo/guide/internal/config"
	"github.com/gometeo/guide/internal/events"
	"github.com/gometeo/guide/internal/guide"
	"github.com/gometeo/guide/internal/logging"
	"github.com/gometeo/guide/internal/storage"
	"github.com/gometeo/guide/internal/weather"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Настройка логирования
	logger := logging.Setup(cfg.LogLevel)
	logger.Info("Запуск Guide API сервиса...")
	logger.Info("Конфигурация загружена",
		"port", cfg.HTTPPort,
		"redis", cfg.RedisAddr,
		"cache_ttl", cfg.CacheTTL,
		"units", cfg.Units,
		"default_location", cfg.DefaultLocation)

	if !cfg.HasWeatherKey() {
		logger.Warn("OPENWEATHER_API_KEY не задан - погода будет недоступна")
	}

	// 1. Клиенты внешних API и сам гид
	g := guide.New(
		weather.NewClient(cfg, logger),
		events.NewClient(cfg, logger),
		guide.Options{
			Units:           cfg.Units,
			RadiusMiles:     cfg.EventsRadiusMiles,
			DefaultLocation: cfg.DefaultLocation,
		},
		logger,
	)

	// 2. Подключение к Postgres (история необязательна)
	var history handlers.HistoryStore
	store, err := storage.New(cfg.DBDSN, logger)
	if err != nil {
		logger.Warn("Postgres недоступен, история отключена", "error", err)
	} else {
		defer store.Close()
		history = store
	}

	// 3. Подключение к Redis (кэш необязателен)
	var views handlers.ViewCache
	redisCache, err := cache.New(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
		cfg.CacheTTL,
		logger,
	)
	if err != nil {
		logger.Warn("Redis недоступен, кэш отключен", "error", err)
	} else {
		defer redisCache.Close()
		views = redisCache
		g.OnRefresh(redisCache.StoreSnapshot)
	}

	// 4. Первая отрисовка для локации по умолчанию
	startCtx, startCancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
	g.Start(startCtx)
	startCancel()

	// 5. Настройка маршрутизатора
	router := mux.NewRouter()
	guideHandler := handlers.NewGuideHandler(g, views, history, cfg.Units, logger)
	guideHandler.Register(router.PathPrefix("/api/v1").Subrouter())

	// Middleware
	router.Use(loggingMiddleware(logger))
	router.Use(contentTypeMiddleware)

	// 6. Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * cfg.HTTPTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// 7. Graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Сервер запущен", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Ошибка сервера", "error", err)
		}
	}()

	// Ожидание сигнала завершения
	<-stopChan
	logger.Info("Получен сигнал завершения...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Ошибка при остановке сервера", "error", err)
	} else {
		logger.Info("Сервер остановлен")
	}
}

// Middleware для логирования
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Создаем ResponseWriter для отслеживания статуса
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info("HTTP запрос",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Кастомный ResponseWriter для отслеживания статуса
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware для установки Content-Type
func contentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
