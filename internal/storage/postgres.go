package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Регистрируем драйвер pgx

	"github.com/gometeo/guide/internal/model"
)

// DefaultHistoryLimit - сколько записей истории отдавать по умолчанию
const DefaultHistoryLimit = 20

// SnapshotStorage - история обновлений экрана
type SnapshotStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(dsn string, logger *slog.Logger) (*SnapshotStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия БД: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	s := NewWithDB(db, logger)
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB оборачивает готовое соединение без миграции
func NewWithDB(db *sql.DB, logger *slog.Logger) *SnapshotStorage {
	return &SnapshotStorage{db: db, logger: logger}
}

// Migrate создает таблицу, если ее нет.
// В проде так не делают (используют goose или migrate), но для старта хватает.
func (s *SnapshotStorage) Migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id UUID PRIMARY KEY,
		location VARCHAR(32) NOT NULL,
		units VARCHAR(16) NOT NULL,
		header TEXT,
		temp_text TEXT,
		condition_text TEXT,
		failure_kind VARCHAR(32),
		events_count INTEGER,
		view JSONB,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS snapshots_location_created_idx ON snapshots (location, created_at DESC);`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка создания таблицы: %w", err)
	}
	return nil
}

func (s *SnapshotStorage) Close() {
	s.db.Close()
}

func (s *SnapshotStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save записывает снимок. Повторная доставка того же ID игнорируется.
func (s *SnapshotStorage) Save(ctx context.Context, snap model.Snapshot) error {
	view, err := json.Marshal(snap.View)
	if err != nil {
		return fmt.Errorf("ошибка сериализации экрана %s: %w", snap.ID, err)
	}

	failureKind := ""
	if snap.View.WeatherFailure != nil {
		failureKind = string(snap.View.WeatherFailure.Kind)
	}

	query := `
		INSERT INTO snapshots (id, location, units, header, temp_text, condition_text, failure_kind, events_count, view, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING;
	`

	_, err = s.db.ExecContext(ctx, query,
		snap.ID,
		snap.Location,
		snap.Units,
		snap.View.HeaderText,
		snap.View.TempText,
		snap.View.ConditionText,
		failureKind,
		len(snap.View.EventEntries),
		view,
		snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения снимка для %s: %w", snap.Location, err)
	}

	return nil
}

// History возвращает последние снимки по локации, новые первыми
func (s *SnapshotStorage) History(ctx context.Context, location string, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT id, location, header, temp_text, condition_text, failure_kind, events_count, created_at
		FROM snapshots
		WHERE location = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`

	rows, err := s.db.QueryContext(ctx, query, location, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения истории для %s: %w", location, err)
	}
	defer rows.Close()

	entries := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var (
			e           model.HistoryEntry
			failureKind sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&e.ID, &e.Location, &e.Header, &e.TempText, &e.ConditionText,
			&failureKind, &e.EventsCount, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка разбора строки истории: %w", err)
		}
		e.FailureKind = model.FailureKind(failureKind.String)
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения истории: %w", err)
	}

	return entries, nil
}
