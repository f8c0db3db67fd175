package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gometeo/guide/internal/model"
)

// ViewCache хранит последний построенный экран по локации.
// Обновление всегда идет в API; кэш нужен только для быстрого показа.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(addr, password string, db int, ttl time.Duration, logger *slog.Logger) (*ViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Проверка подключения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	logger.Info("Успешное подключение к Redis", "addr", addr)

	return NewWithClient(client, ttl, logger), nil
}

// NewWithClient оборачивает готовый клиент (используется в тестах)
func NewWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache {
	return &ViewCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *ViewCache) Close() error {
	return c.client.Close()
}

func (c *ViewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ViewCache) Set(ctx context.Context, key string, view model.ViewModel) error {
	bytes, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}

	if err := c.client.Set(ctx, key, bytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи в Redis: %w", err)
	}

	c.logger.Debug("Экран сохранен в кэш", "key", key, "ttl", c.ttl)
	return nil
}

// Get возвращает (nil, nil), если ключа нет
func (c *ViewCache) Get(ctx context.Context, key string) (*model.ViewModel, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из Redis: %w", err)
	}

	var view model.ViewModel
	if err := json.Unmarshal([]byte(val), &view); err != nil {
		return nil, fmt.Errorf("ошибка десериализации: %w", err)
	}

	c.logger.Debug("Экран получен из кэша", "key", key)
	return &view, nil
}

func (c *ViewCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("ошибка удаления из Redis: %w", err)
	}

	c.logger.Debug("Экран удален из кэша", "key", key)
	return nil
}

func (c *ViewCache) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки ключа: %w", err)
	}
	return exists > 0, nil
}

// Вспомогательные методы для генерации ключей
func ViewKey(location, units string) string {
	return "guide:view:" + units + ":" + strings.ToLower(strings.TrimSpace(location))
}

func HealthKey() string {
	return "guide:health:check"
}

// StoreSnapshot кладет экран снимка в кэш; подходит как хук обновления.
// Ошибки Redis не должны ломать показ, поэтому только логируются.
func (c *ViewCache) StoreSnapshot(ctx context.Context, snap model.Snapshot) {
	if snap.Location == "" {
		return
	}
	if err := c.Set(ctx, ViewKey(snap.Location, snap.Units), snap.View); err != nil {
		c.logger.Warn("Не удалось сохранить экран в кэш", "location", snap.Location, "error", err)
	}
}
