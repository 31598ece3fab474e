package ast

import (
	"bytes"
	"fmt"

	"github.com/kestreldb/kestrel/internal/value"
)

// Node is the base interface for all AST nodes
type Node interface {
	String() string
}

// Command represents a standalone statement (CREATE, SELECT, DUMP_TO, ...)
type Command interface {
	Node
	commandNode()
}

// Expr represents a value-producing expression evaluated against a record
type Expr interface {
	Node
	exprNode()
}

// Literal is a fixed value (integer, string or boolean)
type Literal struct {
	Value value.Value
}

func (l *Literal) exprNode()      {}
func (l *Literal) String() string { return l.Value.String() }

// ColumnRef names a column whose value is resolved per record
type ColumnRef struct {
	Name string
}

func (c *ColumnRef) exprNode()      {}
func (c *ColumnRef) String() string { return c.Name }

type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "NOT"
}

type Unary struct {
	Op      UnaryOp
	Operand Expr
}

func (u *Unary) exprNode() {}
func (u *Unary) String() string {
	if u.Op == OpNeg {
		return fmt.Sprintf("(-%s)", u.Operand.String())
	}
	return fmt.Sprintf("(NOT %s)", u.Operand.String())
}

// BinaryOp is an integer arithmetic operator
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "%"
	}
}

type Binary struct {
	Op          BinaryOp
	Left, Right Expr
}

func (b *Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

type CompareOp uint8

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	default:
		return ">="
	}
}

type Compare struct {
	Op          CompareOp
	Left, Right Expr
}

func (c *Compare) exprNode() {}
func (c *Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left.String(), c.Op, c.Right.String())
}

type LogicalOp uint8

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "AND"
	}
	return "OR"
}

type Logical struct {
	Op          LogicalOp
	Left, Right Expr
}

func (l *Logical) exprNode() {}
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left.String(), l.Op, l.Right.String())
}

// ColumnDef is one "name: TYPE" entry of a CREATE statement
type ColumnDef struct {
	Name string
	Type value.Type
}

func (c ColumnDef) String() string { return fmt.Sprintf("%s: %s", c.Name, c.Type) }

// Create: CREATE name KEY key FIELDS col: TYPE, ...
type Create struct {
	Table   string
	Key     string
	Columns []ColumnDef
}

func (c *Create) commandNode() {}
func (c *Create) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "CREATE %s KEY %s FIELDS ", c.Table, c.Key)
	for i, col := range c.Columns {
		out.WriteString(col.String())
		if i < len(c.Columns)-1 {
			out.WriteString(", ")
		}
	}
	out.WriteString(";")
	return out.String()
}

// Assignment is one "column = literal" entry of an INSERT statement.
// The grammar restricts insert values to literals.
type Assignment struct {
	Column string
	Value  value.Value
}

func (a Assignment) String() string { return fmt.Sprintf("%s = %s", a.Column, a.Value) }

// Insert: INSERT col = lit, ... INTO table
type Insert struct {
	Table       string
	Assignments []Assignment
}

func (s *Insert) commandNode() {}
func (s *Insert) String() string {
	var out bytes.Buffer
	out.WriteString("INSERT ")
	for i, a := range s.Assignments {
		out.WriteString(a.String())
		if i < len(s.Assignments)-1 {
			out.WriteString(", ")
		}
	}
	fmt.Fprintf(&out, " INTO %s;", s.Table)
	return out.String()
}

// Delete: DELETE key FROM table
type Delete struct {
	Table string
	Key   value.Value
}

func (d *Delete) commandNode()   {}
func (d *Delete) String() string { return fmt.Sprintf("DELETE %s FROM %s;", d.Key, d.Table) }

type Direction uint8

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// OrderBy names the sort column and direction of a SELECT
type OrderBy struct {
	Column    string
	Direction Direction
}

// Select: SELECT projection FROM table [WHERE expr] [ORDER BY col dir] [LIMIT n]
// Star means the projection was "*"; Columns is empty in that case.
type Select struct {
	Table   string
	Star    bool
	Columns []string
	Where   Expr
	Order   *OrderBy
	Limit   *int64
}

func (s *Select) commandNode() {}
func (s *Select) String() string {
	var out bytes.Buffer
	out.WriteString("SELECT ")
	if s.Star {
		out.WriteString("*")
	} else {
		for i, c := range s.Columns {
			out.WriteString(c)
			if i < len(s.Columns)-1 {
				out.WriteString(", ")
			}
		}
	}
	fmt.Fprintf(&out, " FROM %s", s.Table)
	if s.Where != nil {
		fmt.Fprintf(&out, " WHERE %s", s.Where)
	}
	if s.Order != nil {
		fmt.Fprintf(&out, " ORDER BY %s %s", s.Order.Column, s.Order.Direction)
	}
	if s.Limit != nil {
		fmt.Fprintf(&out, " LIMIT %d", *s.Limit)
	}
	out.WriteString(";")
	return out.String()
}

// DumpTo snapshots the whole database to a binary file
type DumpTo struct {
	Path string
}

func (d *DumpTo) commandNode()   {}
func (d *DumpTo) String() string { return "DUMP_TO " + value.Str(d.Path).String() + ";" }

// LoadFrom replaces the whole database from a binary snapshot
type LoadFrom struct {
	Path string
}

func (l *LoadFrom) commandNode()   {}
func (l *LoadFrom) String() string { return "LOAD_FROM " + value.Str(l.Path).String() + ";" }

// SaveAs persists the textual history of accepted statements
type SaveAs struct {
	Path string
}

func (s *SaveAs) commandNode()   {}
func (s *SaveAs) String() string { return "SAVE_AS " + value.Str(s.Path).String() + ";" }

// ReadFrom asks the caller to replay statements from a script file
type ReadFrom struct {
	Path string
}

func (r *ReadFrom) commandNode()   {}
func (r *ReadFrom) String() string { return "READ_FROM " + value.Str(r.Path).String() + ";" }
