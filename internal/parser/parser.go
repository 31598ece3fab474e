package parser

import (
	"strconv"

	"github.com/kestreldb/kestrel/internal/parser/ast"
	"github.com/kestreldb/kestrel/internal/parser/lexer"
	"github.com/kestreldb/kestrel/internal/value"
)

// Parse lexes and parses a single statement. A trailing semicolon is
// accepted and discarded; anything after it is an error.
func Parse(input string) (ast.Command, error) {
	p := New(lexer.Tokenize(input))
	cmd, err := p.ParseCommand()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return nil, p.errHere("unexpected %q after statement", p.curTok.Literal)
	}
	return cmd, nil
}

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) errHere(format string, args ...any) *ParseError {
	return newError(UnexpectedToken, p.curTok.Line, p.curTok.Column, format, args...)
}

// badToken maps lexer error tokens to parse errors before any grammar
// rule sees them.
func (p *Parser) badToken() error {
	switch p.curTok.Type {
	case lexer.UNTERMINATED:
		return newError(UnterminatedString, p.curTok.Line, p.curTok.Column, "string literal is not terminated")
	case lexer.ILLEGAL:
		return p.errHere("unexpected character %q", p.curTok.Literal)
	}
	return nil
}

func (p *Parser) ParseCommand() (ast.Command, error) {
	if err := p.badToken(); err != nil {
		return nil, err
	}
	switch p.curTok.Type {
	case lexer.CREATE:
		return p.parseCreate()
	case lexer.INSERT:
		return p.parseInsert()
	case lexer.DELETE:
		return p.parseDelete()
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.DUMP_TO:
		return p.parsePathCommand(func(path string) ast.Command { return &ast.DumpTo{Path: path} })
	case lexer.LOAD_FROM:
		return p.parsePathCommand(func(path string) ast.Command { return &ast.LoadFrom{Path: path} })
	case lexer.SAVE_AS:
		return p.parsePathCommand(func(path string) ast.Command { return &ast.SaveAs{Path: path} })
	case lexer.READ_FROM:
		return p.parsePathCommand(func(path string) ast.Command { return &ast.ReadFrom{Path: path} })
	default:
		if p.curTok.Type == lexer.IDENTIFIER {
			return nil, newError(UnknownKeyword, p.curTok.Line, p.curTok.Column, "unknown keyword %q", p.curTok.Literal)
		}
		return nil, p.errHere("expected a statement, got %q", p.curTok.Literal)
	}
}

// parseCreate: CREATE table KEY key FIELDS col: TYPE {, col: TYPE}
func (p *Parser) parseCreate() (*ast.Create, error) {
	stmt := &ast.Create{}
	p.nextToken()

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name

	if err := p.expect(lexer.KEY, "KEY"); err != nil {
		return nil, err
	}

	key, err := p.expectIdentifier("key column")
	if err != nil {
		return nil, err
	}
	stmt.Key = key

	if err := p.expect(lexer.FIELDS, "FIELDS"); err != nil {
		return nil, err
	}

	for {
		col, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.COLON, ":"); err != nil {
			return nil, err
		}
		if p.curTok.Type != lexer.IDENTIFIER {
			return nil, p.errHere("expected a type name, got %q", p.curTok.Literal)
		}
		typ, ok := value.ParseType(p.curTok.Literal)
		if !ok {
			return nil, newError(InvalidType, p.curTok.Line, p.curTok.Column, "unknown type %q", p.curTok.Literal)
		}
		p.nextToken()
		stmt.Columns = append(stmt.Columns, ast.ColumnDef{Name: col, Type: typ})

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	return stmt, nil
}

// parseInsert: INSERT col = literal {, col = literal} INTO table
func (p *Parser) parseInsert() (*ast.Insert, error) {
	stmt := &ast.Insert{}
	p.nextToken()

	for {
		col, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.EQUALS, "="); err != nil {
			return nil, err
		}
		val, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, ast.Assignment{Column: col, Value: val})

		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if err := p.expect(lexer.INTO, "INTO"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name

	return stmt, nil
}

// parseDelete: DELETE literal FROM table
func (p *Parser) parseDelete() (*ast.Delete, error) {
	stmt := &ast.Delete{}
	p.nextToken()

	key, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	stmt.Key = key

	if err := p.expect(lexer.FROM, "FROM"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name

	return stmt, nil
}

// parseSelect: SELECT (* | cols) FROM table [WHERE expr]
// [ORDER BY col [ASC|DESC]] [LIMIT n]
func (p *Parser) parseSelect() (*ast.Select, error) {
	stmt := &ast.Select{}
	p.nextToken()

	if p.curTok.Type == lexer.ASTERISK {
		stmt.Star = true
		p.nextToken()
	} else {
		for {
			col, err := p.expectIdentifier("column name")
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
			if p.curTok.Type != lexer.COMMA {
				break
			}
			p.nextToken()
		}
	}

	if err := p.expect(lexer.FROM, "FROM"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name

	if p.curTok.Type == lexer.WHERE {
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	// ORDER BY and ORDER_BY are synonymous
	if p.curTok.Type == lexer.ORDER || p.curTok.Type == lexer.ORDER_BY {
		if p.curTok.Type == lexer.ORDER {
			p.nextToken()
			if err := p.expect(lexer.BY, "BY"); err != nil {
				return nil, err
			}
		} else {
			p.nextToken()
		}
		col, err := p.expectIdentifier("sort column")
		if err != nil {
			return nil, err
		}
		order := &ast.OrderBy{Column: col, Direction: ast.Asc}
		if p.curTok.Type == lexer.ASC {
			p.nextToken()
		} else if p.curTok.Type == lexer.DESC {
			order.Direction = ast.Desc
			p.nextToken()
		}
		stmt.Order = order
	}

	if p.curTok.Type == lexer.LIMIT {
		p.nextToken()
		neg := false
		if p.curTok.Type == lexer.MINUS {
			neg = true
			p.nextToken()
		}
		if p.curTok.Type != lexer.NUMBER {
			return nil, p.errHere("expected a limit count, got %q", p.curTok.Literal)
		}
		n, err := p.parseInt(p.curTok)
		if err != nil {
			return nil, err
		}
		if neg {
			n = -n
		}
		p.nextToken()
		stmt.Limit = &n
	}

	return stmt, nil
}

func (p *Parser) parsePathCommand(build func(path string) ast.Command) (ast.Command, error) {
	p.nextToken()
	if err := p.badToken(); err != nil {
		return nil, err
	}
	if p.curTok.Type != lexer.STRING {
		return nil, p.errHere("expected a quoted path, got %q", p.curTok.Literal)
	}
	path := p.curTok.Literal
	p.nextToken()
	return build(path), nil
}

// ────────────────────────────────
// Expressions
// ────────────────────────────────

// Precedence, loosest first: OR, AND, NOT, comparison, additive,
// multiplicative, unary minus. Comparison does not chain: a < b < c is
// rejected.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.AND {
		p.nextToken()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.curTok.Type == lexer.NOT {
		p.nextToken()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := compareOp(p.curTok.Type)
	if !ok {
		return left, nil
	}
	p.nextToken()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Compare{Op: op, Left: left, Right: right}, nil
}

func compareOp(t lexer.TokenType) (ast.CompareOp, bool) {
	switch t {
	case lexer.EQUALS:
		return ast.OpEq, true
	case lexer.NOT_EQUALS:
		return ast.OpNe, true
	case lexer.LT:
		return ast.OpLt, true
	case lexer.LE:
		return ast.OpLe, true
	case lexer.GT:
		return ast.OpGt, true
	case lexer.GE:
		return ast.OpGe, true
	}
	return 0, false
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.PLUS || p.curTok.Type == lexer.MINUS {
		op := ast.OpAdd
		if p.curTok.Type == lexer.MINUS {
			op = ast.OpSub
		}
		p.nextToken()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.curTok.Type {
		case lexer.ASTERISK:
			op = ast.OpMul
		case lexer.SLASH:
			op = ast.OpDiv
		case lexer.PERCENT:
			op = ast.OpMod
		default:
			return left, nil
		}
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.curTok.Type == lexer.MINUS {
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OpNeg, Operand: operand}, nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	if err := p.badToken(); err != nil {
		return nil, err
	}
	switch p.curTok.Type {
	case lexer.IDENTIFIER:
		name := p.curTok.Literal
		p.nextToken()
		return &ast.ColumnRef{Name: name}, nil
	case lexer.NUMBER:
		n, err := p.parseInt(p.curTok)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return &ast.Literal{Value: value.Int(n)}, nil
	case lexer.STRING:
		s := p.curTok.Literal
		p.nextToken()
		return &ast.Literal{Value: value.Str(s)}, nil
	case lexer.TRUE:
		p.nextToken()
		return &ast.Literal{Value: value.Bool(true)}, nil
	case lexer.FALSE:
		p.nextToken()
		return &ast.Literal{Value: value.Bool(false)}, nil
	case lexer.PAREN_OPEN:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.PAREN_CLOSE, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errHere("expected an expression, got %q", p.curTok.Literal)
	}
}

// parseLiteral reads a fixed value, allowing a leading minus on
// integers. Used where the grammar forbids full expressions.
func (p *Parser) parseLiteral() (value.Value, error) {
	if err := p.badToken(); err != nil {
		return value.Value{}, err
	}
	switch p.curTok.Type {
	case lexer.MINUS:
		p.nextToken()
		if p.curTok.Type != lexer.NUMBER {
			return value.Value{}, p.errHere("expected an integer after -, got %q", p.curTok.Literal)
		}
		n, err := p.parseInt(p.curTok)
		if err != nil {
			return value.Value{}, err
		}
		p.nextToken()
		return value.Int(-n), nil
	case lexer.NUMBER:
		n, err := p.parseInt(p.curTok)
		if err != nil {
			return value.Value{}, err
		}
		p.nextToken()
		return value.Int(n), nil
	case lexer.STRING:
		s := p.curTok.Literal
		p.nextToken()
		return value.Str(s), nil
	case lexer.TRUE:
		p.nextToken()
		return value.Bool(true), nil
	case lexer.FALSE:
		p.nextToken()
		return value.Bool(false), nil
	default:
		return value.Value{}, p.errHere("expected a literal, got %q", p.curTok.Literal)
	}
}

func (p *Parser) parseInt(tok lexer.Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return 0, newError(InvalidInteger, tok.Line, tok.Column, "integer %q out of range", tok.Literal)
	}
	return n, nil
}

func (p *Parser) expect(t lexer.TokenType, want string) error {
	if err := p.badToken(); err != nil {
		return err
	}
	if p.curTok.Type != t {
		return p.errHere("expected %s, got %q", want, p.curTok.Literal)
	}
	p.nextToken()
	return nil
}

func (p *Parser) expectIdentifier(what string) (string, error) {
	if err := p.badToken(); err != nil {
		return "", err
	}
	if p.curTok.Type != lexer.IDENTIFIER {
		return "", p.errHere("expected %s, got %q", what, p.curTok.Literal)
	}
	name := p.curTok.Literal
	p.nextToken()
	return name, nil
}
