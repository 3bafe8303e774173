package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const (
	ExcludedKey      = "coinboard.excludedIds"
	UserIDKey        = "coinboard.userId"
	chartIntervalKey = "coinboard.ui.chartInterval"
	logScaleKey      = "coinboard.ui.logScale"
	compactKey       = "coinboard.ui.compact"
	writeCheckKey    = "coinboard.writeCheck"
)

// UIPreferences are view options persisted between sessions.
type UIPreferences struct {
	ChartInterval string
	LogScale      bool
	Compact       bool
}

// Repository is a string key-value store backed by sqlite.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable performs a throwaway write so a read-only path fails at
// startup rather than on the first user action.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if err := r.Set(ctx, writeCheckKey, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return r.Delete(ctx, writeCheckKey)
}

// Get returns the value stored under key and whether it exists.
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// LoadExcluded decodes the JSON array of hidden coin ids. A missing key is an
// empty list.
func (r *Repository) LoadExcluded(ctx context.Context) ([]string, error) {
	raw, ok, err := r.Get(ctx, ExcludedKey)
	if err != nil || !ok {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ExcludedKey, err)
	}
	return ids, nil
}

func (r *Repository) SaveExcluded(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ExcludedKey, err)
	}
	return r.Set(ctx, ExcludedKey, string(raw))
}

func (r *Repository) ClearExcluded(ctx context.Context) error {
	return r.Delete(ctx, ExcludedKey)
}

func (r *Repository) LoadUserID(ctx context.Context) (string, error) {
	id, _, err := r.Get(ctx, UserIDKey)
	return id, err
}

func (r *Repository) SaveUserID(ctx context.Context, id string) error {
	return r.Set(ctx, UserIDKey, id)
}

func (r *Repository) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	prefs := UIPreferences{ChartInterval: "D"}

	interval, ok, err := r.Get(ctx, chartIntervalKey)
	if err != nil {
		return prefs, err
	}
	if ok && interval != "" {
		prefs.ChartInterval = interval
	}

	if prefs.LogScale, err = r.loadBool(ctx, logScaleKey); err != nil {
		return prefs, err
	}
	if prefs.Compact, err = r.loadBool(ctx, compactKey); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func (r *Repository) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`)
	if err != nil {
		return fmt.Errorf("prepare preferences statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	values := map[string]string{
		chartIntervalKey: prefs.ChartInterval,
		logScaleKey:      strconv.FormatBool(prefs.LogScale),
		compactKey:       strconv.FormatBool(prefs.Compact),
	}
	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, key, value, now); err != nil {
			return fmt.Errorf("save preference %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) loadBool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
