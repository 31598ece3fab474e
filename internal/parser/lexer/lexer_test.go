package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `CREATE users KEY id FIELDS id: INT, name: STRING;
SELECT id, name FROM users WHERE age >= 30 AND active != false ORDER BY age DESC LIMIT 2;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{CREATE, "CREATE"},
		{IDENTIFIER, "users"},
		{KEY, "KEY"},
		{IDENTIFIER, "id"},
		{FIELDS, "FIELDS"},
		{IDENTIFIER, "id"},
		{COLON, ":"},
		{IDENTIFIER, "INT"},
		{COMMA, ","},
		{IDENTIFIER, "name"},
		{COLON, ":"},
		{IDENTIFIER, "STRING"},
		{SEMICOLON, ";"},
		{SELECT, "SELECT"},
		{IDENTIFIER, "id"},
		{COMMA, ","},
		{IDENTIFIER, "name"},
		{FROM, "FROM"},
		{IDENTIFIER, "users"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "age"},
		{GE, ">="},
		{NUMBER, "30"},
		{AND, "AND"},
		{IDENTIFIER, "active"},
		{NOT_EQUALS, "!="},
		{FALSE, "false"},
		{ORDER, "ORDER"},
		{BY, "BY"},
		{IDENTIFIER, "age"},
		{DESC, "DESC"},
		{LIMIT, "LIMIT"},
		{NUMBER, "2"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%d, got=%d (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperatorsAndUnderscoreKeywords(t *testing.T) {
	input := `dump_to load_from save_as read_from order_by (1 + 2) * -3 / 4 % 5 < <= > >= = !=`

	expected := []TokenType{
		DUMP_TO, LOAD_FROM, SAVE_AS, READ_FROM, ORDER_BY,
		PAREN_OPEN, NUMBER, PLUS, NUMBER, PAREN_CLOSE,
		ASTERISK, MINUS, NUMBER, SLASH, NUMBER, PERCENT, NUMBER,
		LT, LE, GT, GE, EQUALS, NOT_EQUALS, EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] wrong. expected=%d, got=%d (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		lit   string
	}{
		{`"hello"`, STRING, "hello"},
		{`""`, STRING, ""},
		{`"say \"hi\""`, STRING, `say "hi"`},
		{`"no end`, UNTERMINATED, "no end"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("input %q: type wrong. expected=%d, got=%d", tt.input, tt.typ, tok.Type)
		}
		if tok.Literal != tt.lit {
			t.Fatalf("input %q: literal wrong. expected=%q, got=%q", tt.input, tt.lit, tok.Literal)
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	input := "CREATE t\n  KEY id"
	l := New(input)

	tok := l.NextToken()
	if tok.Line != 1 || tok.Column != 1 {
		t.Fatalf("CREATE span wrong: line=%d col=%d", tok.Line, tok.Column)
	}
	l.NextToken() // t
	tok = l.NextToken()
	if tok.Type != KEY || tok.Line != 2 || tok.Column != 3 {
		t.Fatalf("KEY span wrong: type=%d line=%d col=%d", tok.Type, tok.Line, tok.Column)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("a ? b")
	l.NextToken()
	tok := l.NextToken()
	if tok.Type != ILLEGAL || tok.Literal != "?" {
		t.Fatalf("expected ILLEGAL %q, got type=%d %q", "?", tok.Type, tok.Literal)
	}
}
