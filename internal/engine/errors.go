package engine

import (
	"fmt"

	"github.com/kestreldb/kestrel/internal/value"
)

// Code identifies one failure kind. The set is flat; callers switch on
// it for rendering, nothing is retried.
type Code uint8

const (
	TableExists Code = iota
	UnknownTable
	UnknownColumn
	DuplicateColumn
	UnknownKeyColumn
	MissingColumn
	DuplicateAssignment
	DuplicateKey
	KeyNotFound
	TypeMismatch
	DivisionByZero
	InvalidLimit
	IoError
	EncodeError
	DecodeError
)

func (c Code) String() string {
	switch c {
	case TableExists:
		return "table_exists"
	case UnknownTable:
		return "unknown_table"
	case UnknownColumn:
		return "unknown_column"
	case DuplicateColumn:
		return "duplicate_column"
	case UnknownKeyColumn:
		return "unknown_key_column"
	case MissingColumn:
		return "missing_column"
	case DuplicateAssignment:
		return "duplicate_assignment"
	case DuplicateKey:
		return "duplicate_key"
	case KeyNotFound:
		return "key_not_found"
	case TypeMismatch:
		return "type_mismatch"
	case DivisionByZero:
		return "division_by_zero"
	case InvalidLimit:
		return "invalid_limit"
	case IoError:
		return "io_error"
	case EncodeError:
		return "encode_error"
	case DecodeError:
		return "decode_error"
	default:
		return "unknown"
	}
}

// Error carries the failure code plus whatever context is meaningful
// for it. Unused fields stay zero.
type Error struct {
	Code   Code
	Table  string // table name (empty if not table-scoped)
	Column string // column name (empty if table-level)
	Reason string // human-readable explanation (optional)
	Path   string // file path for persistence failures
	Offset int64  // byte offset for decode failures (-1 if unknown)
	Err    error  // wrapped cause (I/O failures)
}

func (e *Error) Error() string {
	msg := e.Code.String()
	switch {
	case e.Table != "" && e.Column != "":
		msg = fmt.Sprintf("%s in %s.%s", msg, e.Table, e.Column)
	case e.Table != "":
		msg = fmt.Sprintf("%s in %s", msg, e.Table)
	case e.Path != "":
		msg = fmt.Sprintf("%s at %q", msg, e.Path)
	}
	if e.Offset > 0 {
		msg = fmt.Sprintf("%s (offset %d)", msg, e.Offset)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s - %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func NewTableExists(table string) *Error {
	return &Error{Code: TableExists, Table: table, Reason: "table already exists"}
}

func NewUnknownTable(table string) *Error {
	return &Error{Code: UnknownTable, Table: table, Reason: "no such table"}
}

func NewUnknownColumn(table, column string) *Error {
	return &Error{Code: UnknownColumn, Table: table, Column: column, Reason: "no such column"}
}

func NewDuplicateColumn(table, column string) *Error {
	return &Error{Code: DuplicateColumn, Table: table, Column: column, Reason: "column declared twice"}
}

func NewUnknownKeyColumn(table, column string) *Error {
	return &Error{Code: UnknownKeyColumn, Table: table, Column: column, Reason: "key column is not declared"}
}

func NewMissingColumn(table, column string) *Error {
	return &Error{Code: MissingColumn, Table: table, Column: column, Reason: "column not assigned"}
}

func NewDuplicateAssignment(table, column string) *Error {
	return &Error{Code: DuplicateAssignment, Table: table, Column: column, Reason: "column assigned twice"}
}

func NewDuplicateKey(table string, key value.Value) *Error {
	return &Error{Code: DuplicateKey, Table: table, Reason: fmt.Sprintf("key %s already present", key)}
}

func NewKeyNotFound(table string, key value.Value) *Error {
	return &Error{Code: KeyNotFound, Table: table, Reason: fmt.Sprintf("key %s not present", key)}
}

func NewTypeMismatch(table, column string, got, want value.Type) *Error {
	return &Error{Code: TypeMismatch, Table: table, Column: column,
		Reason: fmt.Sprintf("got %s, want %s", got, want)}
}

func NewTypeError(reason string) *Error {
	return &Error{Code: TypeMismatch, Reason: reason}
}

func NewDivisionByZero() *Error {
	return &Error{Code: DivisionByZero, Reason: "division by zero"}
}

func NewInvalidLimit(n int64) *Error {
	return &Error{Code: InvalidLimit, Reason: fmt.Sprintf("limit %d is negative", n)}
}

func NewIoError(path string, err error) *Error {
	return &Error{Code: IoError, Path: path, Offset: -1, Err: err}
}

func NewEncodeError(path, reason string) *Error {
	return &Error{Code: EncodeError, Path: path, Offset: -1, Reason: reason}
}

func NewDecodeError(path string, offset int64, reason string) *Error {
	return &Error{Code: DecodeError, Path: path, Offset: offset, Reason: reason}
}
