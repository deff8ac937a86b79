// Package storage persists the plan collection in a local SQLite database.
//
// The layout mirrors the original key-value contract: the entire collection
// serializes as one JSON array stored under a single fixed key, so every
// write is a read-filter-append-write over that one value.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"purse/internal/core"
	"purse/internal/engine"

	_ "modernc.org/sqlite"
)

var _ engine.PlanStore = (*SQLiteRepository)(nil)

// DefaultStorageKey is the logical key the plan collection lives under.
const DefaultStorageKey = "weekly-purse-plans"

type SQLiteRepository struct {
	db  *sql.DB
	key string
}

func NewSQLiteRepository(dbPath, storageKey string) (*SQLiteRepository, error) {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, key: storageKey}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadAll returns the persisted collection. An absent key means an empty
// collection; so does a malformed payload, which is logged and discarded
// rather than surfaced to the caller.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]core.BudgetPlan, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM plan_kv WHERE key = ?`, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plan collection: %w", err)
	}

	var plans []core.BudgetPlan
	if err := json.Unmarshal(payload, &plans); err != nil {
		slog.WarnContext(ctx, "Malformed plan payload, treating as empty",
			"key", r.key, "error", err)
		return nil, nil
	}
	return plans, nil
}

// SaveAll overwrites the entire persisted collection.
func (r *SQLiteRepository) SaveAll(ctx context.Context, plans []core.BudgetPlan) error {
	if plans == nil {
		plans = []core.BudgetPlan{}
	}
	payload, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("marshal plan collection: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plan_kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		r.key, payload)
	if err != nil {
		return fmt.Errorf("write plan collection: %w", err)
	}

	slog.DebugContext(ctx, "Plan collection saved", "key", r.key, "plans", len(plans))
	return nil
}

// Save upserts one plan by week identifier: any stored plan for the same
// week is replaced.
func (r *SQLiteRepository) Save(ctx context.Context, plan core.BudgetPlan) error {
	plans, err := r.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load before save: %w", err)
	}

	kept := make([]core.BudgetPlan, 0, len(plans)+1)
	for _, p := range plans {
		if p.WeekIdentifier != plan.WeekIdentifier {
			kept = append(kept, p)
		}
	}
	kept = append(kept, plan)

	if err := r.SaveAll(ctx, kept); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Plan saved",
		"week", plan.WeekIdentifier,
		"current_budget", plan.CurrentBudget)
	return nil
}

// Delete removes the plan with the given week identifier. Deleting an
// absent week is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, weekIdentifier string) error {
	plans, err := r.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load before delete: %w", err)
	}

	kept := make([]core.BudgetPlan, 0, len(plans))
	for _, p := range plans {
		if p.WeekIdentifier != weekIdentifier {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(plans) {
		return nil
	}

	if err := r.SaveAll(ctx, kept); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Plan deleted", "week", weekIdentifier)
	return nil
}
