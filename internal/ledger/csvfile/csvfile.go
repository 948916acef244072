// Package csvfile stores the ledger as a flat comma-separated file with the
// header date,amount,category,description.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

var _ ledger.Ledger = (*Store)(nil)

// Store is a CSV-file ledger. Each call opens the file, does one unit of
// work and closes it again.
type Store struct {
	path   string
	logger *log.Logger
}

func New(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{path: path, logger: logger.WithComponent(log.ComponentStorage)}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates the file with its header when absent. An existing empty
// file gets the header; an existing file with a different header is an error.
func (s *Store) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s.create(ctx)
	case err != nil:
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	case info.IsDir():
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("%s is a directory", s.path))
	case info.Size() == 0:
		return s.writeHeader(ctx, os.O_WRONLY|os.O_APPEND)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("read header: %w", err))
	}
	if !slices.Equal(header, core.Columns) {
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("unexpected header %v", header))
	}
	s.logger.DebugContext(ctx, "Ledger file already initialized", log.FieldPath, s.path)
	return nil
}

func (s *Store) create(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return s.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("create directory: %w", err))
		}
	}
	if err := s.writeHeader(ctx, os.O_WRONLY|os.O_CREATE|os.O_EXCL); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Ledger file created", log.FieldPath, s.path)
	return nil
}

func (s *Store) writeHeader(ctx context.Context, flag int) error {
	f, err := os.OpenFile(s.path, flag, 0o644)
	if err != nil {
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	}
	if err := writeRecord(f, core.Columns); err != nil {
		f.Close()
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	}
	if err := f.Close(); err != nil {
		return s.fail(ctx, core.KindStorageInit, core.OpInitialize, err)
	}
	return nil
}

// Append adds one row at the end of the file. The file must already exist.
func (s *Store) Append(ctx context.Context, t core.Transaction) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return s.fail(ctx, core.KindStorageWrite, core.OpAppend, err)
	}
	if err := writeRecord(f, t.Record()); err != nil {
		f.Close()
		return s.fail(ctx, core.KindStorageWrite, core.OpAppend, err)
	}
	if err := f.Close(); err != nil {
		return s.fail(ctx, core.KindStorageWrite, core.OpAppend, err)
	}

	s.logger.InfoContext(ctx, "Transaction appended to ledger file",
		log.NewFields().WithTransaction(t).WithOperation(log.OpAppend).ToSlice()...)
	return nil
}

// Query reads the whole file and returns the rows dated within [start, end].
func (s *Store) Query(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, s.fail(ctx, core.KindStorageRead, core.OpQuery, err)
	}
	defer f.Close()

	rows, err := readTransactions(f)
	if err != nil {
		return nil, s.fail(ctx, core.KindStorageRead, core.OpQuery, err)
	}
	out := core.Filter(rows, start, end)

	s.logger.DebugContext(ctx, "Ledger file queried",
		log.NewFields().WithRange(start, end).ToSlice()...)
	return out, nil
}

func (s *Store) fail(ctx context.Context, kind core.Kind, op string, err error) error {
	e := core.StorageError(kind, op, s.path, err)
	s.logger.LogError(ctx, "Ledger file operation failed", e, op, log.NewFields().WithInput(s.path))
	return e
}

// writeRecord writes a single CSV record and syncs it to disk.
func writeRecord(f *os.File, record []string) error {
	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	return nil
}

// readTransactions checks the header and decodes every following row.
func readTransactions(r io.Reader) ([]core.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(core.Columns)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, core.Columns) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	return ParseRecords(reader, core.ParseRecord)
}
