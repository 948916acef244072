package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"

	_ "modernc.org/sqlite"
)

var _ ledger.Ledger = (*SQLiteRepository)(nil)

var errDatabaseAbsent = errors.New("database file does not exist")

// SQLiteRepository keeps the ledger in a SQLite database file. The schema is
// created by Initialize; a missing database file means the ledger is absent.
type SQLiteRepository struct {
	dbPath string
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) *SQLiteRepository {
	if logger == nil {
		logger = log.Discard()
	}
	return &SQLiteRepository{dbPath: dbPath, logger: logger.WithComponent(log.ComponentStorage)}
}

// Initialize creates the database file if needed and applies migrations.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(r.dbPath), 0755); err != nil {
		return r.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("create db directory: %w", err))
	}

	if err := RunMigrations(r.dbPath); err != nil {
		return r.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	}

	r.logger.InfoContext(ctx, "SQLite ledger initialized", log.FieldPath, r.dbPath)
	return nil
}

// Append inserts one transaction row.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) error {
	db, err := r.open(ctx)
	if err != nil {
		return r.fail(ctx, core.KindStorageWrite, core.OpAppend, err)
	}
	defer db.Close()

	res, err := db.ExecContext(ctx,
		`INSERT INTO transactions (date, amount, category, description) VALUES (?, ?, ?, ?)`,
		t.Date.String(), t.Amount.String(), t.Category.String(), t.Description)
	if err != nil {
		return r.fail(ctx, core.KindStorageWrite, core.OpAppend, fmt.Errorf("insert transaction: %w", err))
	}

	id, _ := res.LastInsertId()
	r.logger.InfoContext(ctx, "Transaction saved to SQLite",
		append(log.NewFields().WithTransaction(t).ToSlice(), "id", id)...)
	return nil
}

// Query loads every row in insertion order and keeps those within range.
func (r *SQLiteRepository) Query(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, r.fail(ctx, core.KindStorageRead, core.OpQuery, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, date, amount, category, description FROM transactions ORDER BY id`)
	if err != nil {
		return nil, r.fail(ctx, core.KindStorageRead, core.OpQuery, fmt.Errorf("select transactions: %w", err))
	}
	defer rows.Close()

	var all []core.Transaction
	for rows.Next() {
		var (
			id     int64
			record = make([]string, len(core.Columns))
		)
		if err := rows.Scan(&id, &record[0], &record[1], &record[2], &record[3]); err != nil {
			return nil, r.fail(ctx, core.KindStorageRead, core.OpQuery, fmt.Errorf("scan row: %w", err))
		}
		t, err := core.ParseRecord(record)
		if err != nil {
			return nil, r.fail(ctx, core.KindStorageRead, core.OpQuery, fmt.Errorf("parse row id %d: %w", id, err))
		}
		all = append(all, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(ctx, core.KindStorageRead, core.OpQuery, err)
	}

	return core.Filter(all, start, end), nil
}

// open connects to an existing database. It never creates the file.
func (r *SQLiteRepository) open(ctx context.Context) (*sql.DB, error) {
	if _, err := os.Stat(r.dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errDatabaseAbsent
		}
		return nil, err
	}

	db, err := sql.Open("sqlite", r.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (r *SQLiteRepository) fail(ctx context.Context, kind core.Kind, op string, err error) error {
	e := core.StorageError(kind, op, r.dbPath, err)
	r.logger.LogError(ctx, "SQLite ledger operation failed", e, op, log.NewFields().WithInput(r.dbPath))
	return e
}
