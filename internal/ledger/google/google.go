// Package google stores the ledger in a Google Sheets tab. Row 1 holds the
// header; every following row is one transaction.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var _ ledger.Ledger = (*Client)(nil)

var errHeaderMissing = errors.New("sheet has no ledger header")

// valuesAPI is the subset of the Sheets values API the ledger needs.
type valuesAPI interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	Append(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
}

type Client struct {
	values        valuesAPI
	spreadsheetID string
	sheet         string
	logger        *log.Logger
}

// Options configures a Sheets-backed ledger.
type Options struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
	ServiceAccountJSON string
}

// New creates a Sheets client authenticated with service account credentials.
func New(ctx context.Context, opts Options, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheet := strings.TrimSpace(opts.SheetName)
	if sheet == "" {
		sheet = "Transactions"
	}
	if logger == nil {
		logger = log.Discard()
	}

	credentialsJSON, err := loadCredentials(opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger.WithComponent(log.ComponentSheets).InfoContext(ctx, "Google Sheets service created",
		"spreadsheet_id", opts.SpreadsheetID, "sheet", sheet)

	return newClient(serviceValues{svc: svc}, opts.SpreadsheetID, sheet, logger), nil
}

func newClient(values valuesAPI, spreadsheetID, sheet string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		values:        values,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

func loadCredentials(opts Options) ([]byte, error) {
	switch {
	case strings.TrimSpace(opts.ServiceAccountJSON) != "":
		return []byte(opts.ServiceAccountJSON), nil
	case strings.TrimSpace(opts.ServiceAccountFile) != "":
		data, err := os.ReadFile(opts.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// Initialize writes the header row when the sheet has none.
func (c *Client) Initialize(ctx context.Context) error {
	values, err := c.values.Get(ctx, c.spreadsheetID, c.rng("A1:D1"))
	if err != nil {
		return c.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("read header: %w", err))
	}
	if len(values) > 0 {
		if header := toStrings(values[0]); !slices.Equal(header, core.Columns) {
			return c.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("unexpected header %v", header))
		}
		return nil
	}

	if err := c.values.Update(ctx, c.spreadsheetID, c.rng("A1:D1"), [][]interface{}{toCells(core.Columns)}); err != nil {
		return c.fail(ctx, core.KindStorageInit, core.OpInitialize, fmt.Errorf("write header: %w", err))
	}
	c.logger.InfoContext(ctx, "Ledger header written to sheet", "sheet", c.sheet)
	return nil
}

// Append adds one row after the last used row of the sheet.
func (c *Client) Append(ctx context.Context, t core.Transaction) error {
	if err := c.requireHeader(ctx); err != nil {
		return c.fail(ctx, core.KindStorageWrite, core.OpAppend, err)
	}
	if err := c.values.Append(ctx, c.spreadsheetID, c.rng("A:D"), [][]interface{}{toCells(t.Record())}); err != nil {
		return c.fail(ctx, core.KindStorageWrite, core.OpAppend, fmt.Errorf("append row: %w", err))
	}
	c.logger.InfoContext(ctx, "Transaction appended to sheet", log.NewFields().WithTransaction(t).ToSlice()...)
	return nil
}

// Query reads the whole sheet and returns the rows dated within [start, end].
func (c *Client) Query(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	values, err := c.values.Get(ctx, c.spreadsheetID, c.rng("A:D"))
	if err != nil {
		return nil, c.fail(ctx, core.KindStorageRead, core.OpQuery, fmt.Errorf("read sheet: %w", err))
	}
	rows, err := parseRows(values)
	if err != nil {
		return nil, c.fail(ctx, core.KindStorageRead, core.OpQuery, err)
	}
	return core.Filter(rows, start, end), nil
}

func (c *Client) requireHeader(ctx context.Context) error {
	values, err := c.values.Get(ctx, c.spreadsheetID, c.rng("A1:D1"))
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(values) == 0 || !slices.Equal(toStrings(values[0]), core.Columns) {
		return errHeaderMissing
	}
	return nil
}

func (c *Client) rng(cells string) string {
	return fmt.Sprintf("%s!%s", c.sheet, cells)
}

func (c *Client) fail(ctx context.Context, kind core.Kind, op string, err error) error {
	e := core.StorageError(kind, op, c.sheet, err)
	c.logger.LogError(ctx, "Sheets ledger operation failed", e, op, log.NewFields().WithInput(c.sheet))
	return e
}

// serviceValues adapts *gsheet.Service to valuesAPI. Values are written RAW
// so dates and amounts stay plain text.
type serviceValues struct {
	svc *gsheet.Service
}

func (s serviceValues) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s serviceValues) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func (s serviceValues) Append(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}
