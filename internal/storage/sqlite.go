// Package storage implements the persistence gateway: a load-once,
// save-on-change pair over the full transaction set. The SQLite backend
// is the durable default; the memory backend serves tests and ephemeral
// runs.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pulseledger/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
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

	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

// Load reads the persisted transaction set in stored order. An empty
// database yields an empty slice, not an error.
func (g *SQLiteGateway) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, label, description, amount_cents, kind, category, occurred_at, created_at
		FROM transactions
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var items []core.Transaction
	for rows.Next() {
		var (
			tx         core.Transaction
			kind       string
			occurredAt string
			createdAt  string
		)
		if err := rows.Scan(&tx.ID, &tx.Label, &tx.Description, &tx.Amount.Cents,
			&kind, &tx.Category, &occurredAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = core.Kind(kind)
		if tx.OccurredAt, err = time.Parse(time.RFC3339Nano, occurredAt); err != nil {
			return nil, fmt.Errorf("parse occurred_at for %s: %w", tx.ID, err)
		}
		if tx.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", tx.ID, err)
		}
		items = append(items, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return items, nil
}

// Save replaces the persisted set wholesale inside one transaction,
// preserving the ledger's insertion order via the position column.
func (g *SQLiteGateway) Save(ctx context.Context, items []core.Transaction) error {
	dbTx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (position, id, label, description, amount_cents, kind, category, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, tx := range items {
		_, err := stmt.ExecContext(ctx, i, tx.ID, tx.Label, tx.Description,
			tx.Amount.Cents, string(tx.Kind), tx.Category,
			tx.OccurredAt.Format(time.RFC3339Nano),
			tx.CreatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	return nil
}
