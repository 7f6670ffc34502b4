package yack

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a content error in a dialogue file.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Parser is a recursive-descent parser over a Lexer with one token of lookahead.
type Parser struct {
	lex  *Lexer
	file string
	tok  Token
	next Token
}

// Parse parses a whole dialogue file.
//
// Parameters:
//   - file: name used in error messages, e.g. "ray.yack"
//   - src: file contents
//
// Returns:
//   - *CompilationUnit: labels in file order
//   - error: a *ParseError for the first content error
func Parse(file string, src []byte) (*CompilationUnit, error) {
	p := &Parser{lex: NewLexer(file, src), file: file}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseUnit()
}

func (p *Parser) advance() error {
	p.tok = p.next
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

func (p *Parser) errorf(line int, format string, args ...interface{}) error {
	return &ParseError{File: p.file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.errorf(tok.Line, "expected %s, got %s", kind, describe(tok))
	}
	if err := p.advance(); err != nil {
		return tok, err
	}
	return tok, nil
}

func describe(tok Token) string {
	if tok.Text == "" {
		return tok.Kind.String()
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}

func (p *Parser) skipNewLines() error {
	for p.tok.Kind == TokNewLine {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseUnit() (*CompilationUnit, error) {
	cu := &CompilationUnit{File: p.file}
	for {
		if err := p.skipNewLines(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokEOF {
			return cu, nil
		}
		if p.tok.Kind != TokColon {
			return nil, p.errorf(p.tok.Line, "statement outside of a label: %s", describe(p.tok))
		}
		label, err := p.parseLabel()
		if err != nil {
			return nil, err
		}
		cu.Labels = append(cu.Labels, label)
	}
}

func (p *Parser) parseLabel() (*Label, error) {
	colon, err := p.expect(TokColon)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	label := &Label{Name: name.Text, Line: colon.Line}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	for {
		if err := p.skipNewLines(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokEOF || p.tok.Kind == TokColon {
			return label, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		label.Statements = append(label.Statements, stmt)
	}
}

func (p *Parser) endOfStatement() error {
	switch p.tok.Kind {
	case TokNewLine:
		return p.advance()
	case TokEOF:
		return nil
	}
	return p.errorf(p.tok.Line, "unexpected %s at end of statement", describe(p.tok))
}

func (p *Parser) parseStatement() (*Statement, error) {
	line := p.tok.Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := &Statement{Expr: expr, Line: line}
	for p.tok.Kind == TokCondition {
		stmt.Conditions = append(stmt.Conditions, parseCondition(p.tok.Text, line))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func parseCondition(text string, line int) Condition {
	switch text {
	case "once":
		return &Once{Line: line}
	case "showonce":
		return &ShowOnce{Line: line}
	case "onceever":
		return &OnceEver{Line: line}
	case "temponce":
		return &TempOnce{Line: line}
	}
	return &CodeCond{Code: text, Line: line}
}

func (p *Parser) parseExpression() (Expression, error) {
	switch p.tok.Kind {
	case TokIdent:
		if p.next.Kind == TokColon {
			return p.parseSay()
		}
		return nil, p.errorf(p.tok.Line, "expected ':' after actor %q", p.tok.Text)
	case TokGoto:
		g, err := p.parseGoto()
		if err != nil {
			return nil, err
		}
		return &g, nil
	case TokInt:
		return p.parseChoice()
	case TokCode:
		return p.parseInstruction()
	case TokDollar:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &CodeExp{Code: tok.Text}, nil
	}
	return nil, p.errorf(p.tok.Line, "unexpected %s", describe(p.tok))
}

func (p *Parser) parseSay() (Expression, error) {
	actor := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokColon); err != nil {
		return nil, err
	}
	text, err := p.expect(TokString)
	if err != nil {
		return nil, err
	}
	return &Say{Actor: actor.Text, Text: text.Text}, nil
}

func (p *Parser) parseGoto() (Goto, error) {
	arrow, err := p.expect(TokGoto)
	if err != nil {
		return Goto{}, err
	}
	name, err := p.expect(TokIdent)
	if err != nil {
		return Goto{}, err
	}
	return Goto{Name: name.Text, Line: arrow.Line}, nil
}

func (p *Parser) parseChoice() (Expression, error) {
	numTok := p.tok
	n, err := strconv.Atoi(numTok.Text)
	if err != nil || n < 1 {
		return nil, p.errorf(numTok.Line, "invalid choice number %q", numTok.Text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	text, err := p.expect(TokString)
	if err != nil {
		return nil, err
	}
	g, err := p.parseGoto()
	if err != nil {
		return nil, err
	}
	return &Choice{Number: n, Text: text.Text, Goto: g}, nil
}

// parseInstruction decodes a "!keyword args" line. An unknown keyword is a
// content error and stops the parse.
func (p *Parser) parseInstruction() (Expression, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	keyword, arg, _ := strings.Cut(tok.Text, " ")
	arg = strings.TrimSpace(arg)

	switch keyword {
	case "shutup":
		return &Shutup{}, nil
	case "pause":
		secs, err := strconv.ParseFloat(arg, 64)
		if err != nil || secs < 0 {
			return nil, p.errorf(tok.Line, "pause expects a non-negative number, got %q", arg)
		}
		return &Pause{Seconds: secs}, nil
	case "limit":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, p.errorf(tok.Line, "limit expects a positive integer, got %q", arg)
		}
		return &Limit{Max: n}, nil
	case "parrot":
		on, err := p.parseBool(tok.Line, arg)
		if err != nil {
			return nil, err
		}
		return &Parrot{Active: on}, nil
	case "allowobjects":
		on, err := p.parseBool(tok.Line, arg)
		if err != nil {
			return nil, err
		}
		return &AllowObjects{Active: on}, nil
	case "dialog":
		if arg == "" {
			return nil, p.errorf(tok.Line, "dialog expects an actor")
		}
		return &Dialog{Actor: arg}, nil
	case "override":
		if arg == "" {
			return nil, p.errorf(tok.Line, "override expects a node")
		}
		return &Override{Node: arg}, nil
	case "waitwhile":
		if arg == "" {
			return nil, p.errorf(tok.Line, "waitwhile expects a condition")
		}
		return &WaitWhile{Cond: arg}, nil
	case "waitfor":
		return &WaitFor{Actor: arg}, nil
	}
	return nil, p.errorf(tok.Line, "unknown instruction %q", keyword)
}

func (p *Parser) parseBool(line int, arg string) (bool, error) {
	switch arg {
	case "yes", "YES", "true", "on":
		return true, nil
	case "no", "NO", "false", "off":
		return false, nil
	}
	return false, p.errorf(line, "expected yes or no, got %q", arg)
}
