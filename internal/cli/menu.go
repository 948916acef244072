package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/report"
)

// LedgerService is what the menu needs from the service layer.
type LedgerService interface {
	Record(ctx context.Context, t core.Transaction) error
	Report(ctx context.Context, start, end core.Date) (core.Report, error)
}

// MenuOptions configures prompting and artifact locations.
type MenuOptions struct {
	Attempts  int
	PlotDir   string
	ExportDir string
}

// errAborted ends an add workflow after the retry budget of a field is spent.
var errAborted = errors.New("too many invalid attempts")

const unexpectedMessage = "An unexpected error occurred. Please try again."

const menuText = `
Personal Finance Tracker
1. Add a new transaction
2. View transactions and summary within a date range
3. Exit`

type Menu struct {
	service   LedgerService
	in        *bufio.Reader
	out       io.Writer
	opts      MenuOptions
	logger    *log.Logger
	validator *log.Logger
	now       func() time.Time
}

func NewMenu(service LedgerService, in io.Reader, out io.Writer, opts MenuOptions, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Discard()
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.PlotDir == "" {
		opts.PlotDir = "."
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return &Menu{
		service:   service,
		in:        bufio.NewReader(in),
		out:       out,
		opts:      opts,
		logger:    logger.WithComponent(log.ComponentMenu),
		validator: logger.WithComponent(log.ComponentValidator),
		now:       time.Now,
	}
}

// Run loops over the menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, err := m.ask("Enter your choice (1-3): ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			m.logger.Info("Input closed, exiting")
			return nil
		}
		if err != nil {
			return err
		}

		m.logger.Debug("Menu choice", log.FieldChoice, choice)
		switch choice {
		case "1":
			err = m.guard(ctx, log.OpRecord, m.addTransaction)
		case "2":
			err = m.guard(ctx, log.OpReport, m.viewRange)
		case "3":
			fmt.Fprintln(m.out, "Exiting...")
			m.logger.Info("Exited by user")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter 1, 2, or 3.")
			m.logger.Warn("Invalid menu choice", log.FieldChoice, choice)
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return nil
		}
	}
}

// guard runs one workflow, turning panics and unexpected errors into a
// generic failure message. Only io.EOF is passed back to the loop.
func (m *Menu) guard(ctx context.Context, op string, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(ctx, "Unexpected failure", log.FieldOperation, op, "panic", fmt.Sprint(r))
			fmt.Fprintln(m.out, unexpectedMessage)
			err = nil
		}
	}()

	err = fn(ctx)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return err
	case errors.Is(err, errAborted):
		fmt.Fprintln(m.out, "Too many invalid attempts, operation cancelled.")
		return nil
	default:
		m.logger.LogError(ctx, "Workflow failed", err, op, nil)
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}
}

func (m *Menu) addTransaction(ctx context.Context) error {
	date, err := promptField(ctx, m, "Enter the date (dd-mm-yyyy) or leave blank for today: ", func(s string) (core.Date, error) {
		return core.ParseDateAt(s, true, m.now())
	})
	if err != nil {
		return err
	}
	amount, err := promptField(ctx, m, "Enter the amount: ", core.ParseAmount)
	if err != nil {
		return err
	}
	category, err := promptField(ctx, m, "Enter the category ('I' for Income or 'E' for Expense): ", core.ParseCategory)
	if err != nil {
		return err
	}
	description, err := promptField(ctx, m, "Enter a description: ", core.ParseDescription)
	if err != nil {
		return err
	}

	t := core.Transaction{Date: date, Amount: amount, Category: category, Description: description}
	if err := m.service.Record(ctx, t); err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}

	report.WriteTransaction(m.out, t)
	fmt.Fprintln(m.out, "Transaction added successfully.")
	return nil
}

func (m *Menu) viewRange(ctx context.Context) error {
	parseRequired := func(s string) (core.Date, error) {
		return core.ParseDateAt(s, false, m.now())
	}
	start, err := promptField(ctx, m, "Enter the start date (dd-mm-yyyy): ", parseRequired)
	if err != nil {
		return err
	}
	end, err := promptField(ctx, m, "Enter the end date (dd-mm-yyyy): ", parseRequired)
	if err != nil {
		return err
	}

	r, err := m.service.Report(ctx, start, end)
	if err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}
	if err := report.WriteReport(m.out, r); err != nil {
		return err
	}
	if r.Empty() {
		return nil
	}

	if yes, err := m.confirm("Do you want to see a scatter plot? (y/n): "); err != nil {
		return err
	} else if yes {
		m.savePlot(ctx, r)
	}
	if yes, err := m.confirm("Do you want to export to Excel? (y/n): "); err != nil {
		return err
	} else if yes {
		m.saveWorkbook(ctx, r)
	}
	return nil
}

func (m *Menu) savePlot(ctx context.Context, r core.Report) {
	path := filepath.Join(m.opts.PlotDir, report.FileName("transactions", r.Start, r.End, "png"))
	if err := ensureDir(m.opts.PlotDir); err == nil {
		err = report.Scatter(r.Rows, path)
		if err == nil {
			fmt.Fprintf(m.out, "Plot saved to %s\n", path)
			m.logger.InfoContext(ctx, "Plot saved", log.FieldPath, path)
			return
		}
		m.logger.LogError(ctx, "Failed to render plot", err, log.OpPlot, log.LogFields{log.FieldPath: path})
	} else {
		m.logger.LogError(ctx, "Failed to create plot directory", err, log.OpPlot, nil)
	}
	fmt.Fprintln(m.out, "Error: could not create the plot.")
}

func (m *Menu) saveWorkbook(ctx context.Context, r core.Report) {
	path := filepath.Join(m.opts.ExportDir, report.FileName("transactions", r.Start, r.End, "xlsx"))
	if err := ensureDir(m.opts.ExportDir); err == nil {
		err = report.ExportXLSX(r, path)
		if err == nil {
			fmt.Fprintf(m.out, "Exported to %s\n", path)
			m.logger.InfoContext(ctx, "Report exported", log.FieldPath, path)
			return
		}
		m.logger.LogError(ctx, "Failed to export report", err, log.OpExport, log.LogFields{log.FieldPath: path})
	} else {
		m.logger.LogError(ctx, "Failed to create export directory", err, log.OpExport, nil)
	}
	fmt.Fprintln(m.out, "Error: could not export the report.")
}

// promptField asks for a value until parse accepts it or the attempts run out.
func promptField[T any](ctx context.Context, m *Menu, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= m.opts.Attempts; attempt++ {
		text, err := m.ask(prompt)
		if err != nil {
			return zero, err
		}
		v, err := parse(text)
		if err == nil {
			return v, nil
		}
		lastErr = err
		m.validator.LogError(ctx, "Invalid input", err, core.OpValidate, log.NewFields().WithInput(text))
		fmt.Fprintln(m.out, userMessage(err))
	}
	return zero, fmt.Errorf("%w: %w", errAborted, lastErr)
}

// userMessage turns validation and storage errors into their user text and
// anything else into the generic failure message.
func userMessage(err error) string {
	kind := core.KindOf(err)
	if kind.IsValidation() || kind.IsStorage() {
		return "Error: " + kind.Message()
	}
	return unexpectedMessage
}

func (m *Menu) confirm(prompt string) (bool, error) {
	answer, err := m.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

// ask prints prompt and reads one trimmed line. A final line without a
// newline is returned; io.EOF only when nothing was read.
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
