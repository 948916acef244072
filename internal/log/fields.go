package log

import "fintrack/internal/core"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldErrorKind   = "error_kind"
	FieldOperation   = "operation"
	FieldInput       = "input"
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldRows        = "rows"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldChoice      = "choice"
	FieldMessageID   = "message_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentMenu      = "menu"
	ComponentValidator = "validator"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentSheets    = "sheets"
	ComponentBackend   = "backend"
	ComponentWorker    = "worker"
)

// Operations defines standard operation names
const (
	OpInitialize = core.OpInitialize
	OpAppend     = core.OpAppend
	OpQuery      = core.OpQuery
	OpRecord     = "record"
	OpReport     = "report"
	OpPublish    = "publish"
	OpPlot       = "plot"
	OpExport     = "export"
	OpMirror     = "mirror"
	OpShutdown   = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds the error and, for ledger errors, its kind and input.
func (f LogFields) WithError(err error) LogFields {
	if err == nil {
		return f
	}
	f[FieldError] = err.Error()
	if kind := core.KindOf(err); kind != core.KindUnknown {
		f[FieldErrorKind] = kind.String()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithInput adds the raw user input that was being processed
func (f LogFields) WithInput(input string) LogFields {
	f[FieldInput] = input
	return f
}

// WithTransaction adds transaction fields
func (f LogFields) WithTransaction(t core.Transaction) LogFields {
	f[FieldDate] = t.Date.String()
	f[FieldAmount] = t.Amount.String()
	f[FieldCategory] = t.Category.String()
	f[FieldDescription] = t.Description
	return f
}

// WithRange adds query range fields
func (f LogFields) WithRange(start, end core.Date) LogFields {
	f[FieldStartDate] = start.String()
	f[FieldEndDate] = end.String()
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
