package core

import (
	"errors"
	"fmt"
)

// Kind identifies which constraint or storage step failed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidDate
	KindInvalidAmount
	KindInvalidCategory
	KindEmptyDescription
	KindStorageInit
	KindStorageWrite
	KindStorageRead
)

// Operation names attached to errors.
const (
	OpParseDate        = "parse_date"
	OpParseAmount      = "parse_amount"
	OpParseCategory    = "parse_category"
	OpParseDescription = "parse_description"
	OpValidate         = "validate"
	OpInitialize       = "initialize"
	OpAppend           = "append"
	OpQuery            = "query"
)

var kindMessages = map[Kind]string{
	KindUnknown:          "unexpected error",
	KindInvalidDate:      "date must be in dd-mm-yyyy format",
	KindInvalidAmount:    "amount must be a positive number",
	KindInvalidCategory:  "invalid category, enter 'I' for Income or 'E' for Expense",
	KindEmptyDescription: "description cannot be empty",
	KindStorageInit:      "failed to initialize storage",
	KindStorageWrite:     "failed to write entry to storage",
	KindStorageRead:      "failed to read data from storage",
}

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	KindInvalidDate:      "InvalidDate",
	KindInvalidAmount:    "InvalidAmount",
	KindInvalidCategory:  "InvalidCategory",
	KindEmptyDescription: "EmptyDescription",
	KindStorageInit:      "StorageInitError",
	KindStorageWrite:     "StorageWriteError",
	KindStorageRead:      "StorageReadError",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Message is the user-facing text for the kind.
func (k Kind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindUnknown]
}

// IsValidation reports whether k is a field-validation kind.
func (k Kind) IsValidation() bool {
	return k >= KindInvalidDate && k <= KindEmptyDescription
}

// IsStorage reports whether k is a storage kind.
func (k Kind) IsStorage() bool {
	return k >= KindStorageInit && k <= KindStorageRead
}

// Error is the single error type of the ledger. Op and Input describe where
// the failure happened; Err is the underlying cause, if any.
type Error struct {
	Kind  Kind
	Op    string
	Input string
	Err   error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidDate      = &Error{Kind: KindInvalidDate}
	ErrInvalidAmount    = &Error{Kind: KindInvalidAmount}
	ErrInvalidCategory  = &Error{Kind: KindInvalidCategory}
	ErrEmptyDescription = &Error{Kind: KindEmptyDescription}
	ErrStorageInit      = &Error{Kind: KindStorageInit}
	ErrStorageWrite     = &Error{Kind: KindStorageWrite}
	ErrStorageRead      = &Error{Kind: KindStorageRead}
)

func newError(kind Kind, op, input string, err error) *Error {
	return &Error{Kind: kind, Op: op, Input: input, Err: err}
}

// StorageError builds a storage-kind error for backends outside this package.
func StorageError(kind Kind, op, input string, err error) *Error {
	return newError(kind, op, input, err)
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
