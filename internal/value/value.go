package value

import (
	"fmt"
	"strings"
)

// Type tags the runtime type of a Value.
type Type uint8

const (
	TypeInt Type = iota
	TypeString
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeString:
		return "STRING"
	case TypeBool:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// ParseType maps a type keyword (INT, STRING, BOOLEAN) to its Type tag.
// Matching is case-insensitive.
func ParseType(s string) (Type, bool) {
	switch strings.ToUpper(s) {
	case "INT":
		return TypeInt, true
	case "STRING":
		return TypeString, true
	case "BOOLEAN":
		return TypeBool, true
	default:
		return 0, false
	}
}

// Value is a tagged variant holding one of the supported payloads.
// The zero Value is Int(0).
type Value struct {
	typ Type
	i   int64
	s   string
	b   bool
}

func Int(i int64) Value     { return Value{typ: TypeInt, i: i} }
func Str(s string) Value    { return Value{typ: TypeString, s: s} }
func Bool(b bool) Value     { return Value{typ: TypeBool, b: b} }

func (v Value) Type() Type   { return v.typ }
func (v Value) Int() int64   { return v.i }
func (v Value) Text() string { return v.s }
func (v Value) Bool() bool   { return v.b }

// Equal reports whether two values carry the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeInt:
		return v.i == o.i
	case TypeString:
		return v.s == o.s
	default:
		return v.b == o.b
	}
}

// Compare orders two same-tag values, returning -1, 0 or 1.
// The second result is false when the tags differ; cross-tag values
// have no ordering. Bool orders false < true, strings compare by
// Unicode scalar value.
func (v Value) Compare(o Value) (int, bool) {
	if v.typ != o.typ {
		return 0, false
	}
	switch v.typ {
	case TypeInt:
		switch {
		case v.i < o.i:
			return -1, true
		case v.i > o.i:
			return 1, true
		}
		return 0, true
	case TypeString:
		return strings.Compare(v.s, o.s), true
	default:
		switch {
		case !v.b && o.b:
			return -1, true
		case v.b && !o.b:
			return 1, true
		}
		return 0, true
	}
}

// String renders the value as it would appear in a statement:
// ints bare, bools as true/false, strings double-quoted with
// embedded quotes escaped.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return fmt.Sprintf("%d", v.i)
	case TypeString:
		return `"` + strings.ReplaceAll(v.s, `"`, `\"`) + `"`
	default:
		if v.b {
			return "true"
		}
		return "false"
	}
}
