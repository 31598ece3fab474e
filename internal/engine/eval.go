package engine

import (
	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/value"
)

// Eval computes an expression against one record of a table.
// Arithmetic is Int-only and wraps on overflow; comparisons require
// matching tags; logical operators require Bool operands.
func Eval(t *Table, rec Record, expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.ColumnRef:
		i, ok := t.ColumnIndex(e.Name)
		if !ok {
			return value.Value{}, NewUnknownColumn(t.name, e.Name)
		}
		return rec[i], nil

	case *ast.Unary:
		operand, err := Eval(t, rec, e.Operand)
		if err != nil {
			return value.Value{}, err
		}
		if e.Op == ast.OpNeg {
			if operand.Type() != value.TypeInt {
				return value.Value{}, NewTypeError("operand of - must be INT")
			}
			return value.Int(-operand.Int()), nil
		}
		if operand.Type() != value.TypeBool {
			return value.Value{}, NewTypeError("operand of NOT must be BOOLEAN")
		}
		return value.Bool(!operand.Bool()), nil

	case *ast.Binary:
		left, err := Eval(t, rec, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(t, rec, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		if left.Type() != value.TypeInt || right.Type() != value.TypeInt {
			return value.Value{}, NewTypeError("arithmetic operands must be INT")
		}
		a, b := left.Int(), right.Int()
		switch e.Op {
		case ast.OpAdd:
			return value.Int(a + b), nil
		case ast.OpSub:
			return value.Int(a - b), nil
		case ast.OpMul:
			return value.Int(a * b), nil
		case ast.OpDiv:
			if b == 0 {
				return value.Value{}, NewDivisionByZero()
			}
			return value.Int(a / b), nil
		default:
			if b == 0 {
				return value.Value{}, NewDivisionByZero()
			}
			return value.Int(a % b), nil
		}

	case *ast.Compare:
		left, err := Eval(t, rec, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		right, err := Eval(t, rec, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		if e.Op == ast.OpEq || e.Op == ast.OpNe {
			if left.Type() != right.Type() {
				return value.Value{}, NewTypeError("cannot compare " + left.Type().String() + " with " + right.Type().String())
			}
			eq := left.Equal(right)
			if e.Op == ast.OpNe {
				eq = !eq
			}
			return value.Bool(eq), nil
		}
		ord, ok := left.Compare(right)
		if !ok {
			return value.Value{}, NewTypeError("cannot compare " + left.Type().String() + " with " + right.Type().String())
		}
		switch e.Op {
		case ast.OpLt:
			return value.Bool(ord < 0), nil
		case ast.OpLe:
			return value.Bool(ord <= 0), nil
		case ast.OpGt:
			return value.Bool(ord > 0), nil
		default:
			return value.Bool(ord >= 0), nil
		}

	case *ast.Logical:
		left, err := Eval(t, rec, e.Left)
		if err != nil {
			return value.Value{}, err
		}
		if left.Type() != value.TypeBool {
			return value.Value{}, NewTypeError("logical operands must be BOOLEAN")
		}
		// Short-circuit: evaluation is side-effect-free, so skipping
		// the right side is unobservable.
		if e.Op == ast.OpAnd && !left.Bool() {
			return value.Bool(false), nil
		}
		if e.Op == ast.OpOr && left.Bool() {
			return value.Bool(true), nil
		}
		right, err := Eval(t, rec, e.Right)
		if err != nil {
			return value.Value{}, err
		}
		if right.Type() != value.TypeBool {
			return value.Value{}, NewTypeError("logical operands must be BOOLEAN")
		}
		return right, nil

	default:
		return value.Value{}, NewTypeError("unsupported expression")
	}
}
