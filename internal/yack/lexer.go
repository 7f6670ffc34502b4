package yack

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokNewLine
	TokIdent
	TokString
	TokInt
	TokFloat
	TokColon
	TokAssign
	TokGoto
	TokCondition
	// TokCode is a "!" line: an instruction keyword followed by its arguments.
	TokCode
	// TokDollar is a "$" line: a script fragment run as-is.
	TokDollar
)

var tokenNames = [...]string{
	TokEOF:       "end of file",
	TokNewLine:   "newline",
	TokIdent:     "identifier",
	TokString:    "string",
	TokInt:       "integer",
	TokFloat:     "float",
	TokColon:     "':'",
	TokAssign:    "'='",
	TokGoto:      "'->'",
	TokCondition: "condition",
	TokCode:      "instruction",
	TokDollar:    "code",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is one lexical unit. Text holds the identifier, the unquoted string,
// the number literal, the condition body or the raw code line.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Lexer splits dialogue source into tokens.
type Lexer struct {
	file    string
	src     []rune
	pos     int
	line    int
	pending []Token
}

// NewLexer creates a lexer over src. Line numbers start at 1.
func NewLexer(file string, src []byte) *Lexer {
	return &Lexer{file: file, src: []rune(string(src)), line: 1}
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return &ParseError{File: l.file, Line: l.line, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) peekRune(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// Next returns the next token. Comments, spaces and carriage returns are
// skipped; newlines are reported so the parser can find statement ends.
func (l *Lexer) Next() (Token, error) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, nil
	}

	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '#' || r == ';' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Line: l.line}, nil
	}

	r := l.src[l.pos]
	switch {
	case r == '\n':
		tok := Token{Kind: TokNewLine, Line: l.line}
		l.pos++
		l.line++
		return tok, nil
	case r == ':':
		l.pos++
		return Token{Kind: TokColon, Text: ":", Line: l.line}, nil
	case r == '=':
		l.pos++
		return Token{Kind: TokAssign, Text: "=", Line: l.line}, nil
	case r == '-' && l.peekRune(1) == '>':
		l.pos += 2
		return Token{Kind: TokGoto, Text: "->", Line: l.line}, nil
	case r == '"':
		return l.readString()
	case r == '[':
		return l.readCondition()
	case r == '!':
		return l.readCodeLine(TokCode)
	case r == '$':
		return l.readCodeLine(TokDollar)
	case unicode.IsDigit(r) || (r == '-' && unicode.IsDigit(l.peekRune(1))):
		return l.readNumber(), nil
	case isIdentStart(r):
		return l.readIdent(), nil
	}
	return Token{}, l.errorf("unexpected character %q", r)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokIdent, Text: string(l.src[start:l.pos]), Line: l.line}
}

func (l *Lexer) readNumber() Token {
	start := l.pos
	kind := TokInt
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '.' && kind == TokInt && unicode.IsDigit(l.peekRune(1)) {
			kind = TokFloat
		} else if !unicode.IsDigit(r) {
			break
		}
		l.pos++
	}
	return Token{Kind: kind, Text: string(l.src[start:l.pos]), Line: l.line}
}

func (l *Lexer) readString() (Token, error) {
	line := l.line
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch r {
		case '"':
			l.pos++
			return Token{Kind: TokString, Text: sb.String(), Line: line}, nil
		case '\n':
			return Token{}, l.errorf("unterminated string")
		case '\\':
			l.pos++
			switch l.peekRune(0) {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '"', '\\':
				sb.WriteRune(l.peekRune(0))
			default:
				return Token{}, l.errorf("invalid escape sequence \\%c", l.peekRune(0))
			}
		default:
			sb.WriteRune(r)
		}
		l.pos++
	}
	return Token{}, l.errorf("unterminated string")
}

func (l *Lexer) readCondition() (Token, error) {
	line := l.line
	l.pos++ // [
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != ']' {
		if l.src[l.pos] == '\n' {
			return Token{}, l.errorf("unterminated condition")
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{}, l.errorf("unterminated condition")
	}
	text := strings.TrimSpace(string(l.src[start:l.pos]))
	l.pos++ // ]
	if text == "" {
		return Token{}, l.errorf("empty condition")
	}
	return Token{Kind: TokCondition, Text: text, Line: line}, nil
}

// readCodeLine consumes the rest of the line after '!' or '$'. Trailing
// " [cond]" groups separated from the code by whitespace are split off and
// queued as condition tokens, so code like t[1] stays intact.
func (l *Lexer) readCodeLine(kind TokenKind) (Token, error) {
	line := l.line
	l.pos++ // ! or $
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	code := strings.TrimSpace(string(l.src[start:l.pos]))

	var conds []Token
	for strings.HasSuffix(code, "]") {
		open := strings.LastIndex(code, "[")
		if open <= 0 || !unicode.IsSpace(rune(code[open-1])) {
			break
		}
		text := strings.TrimSpace(code[open+1 : len(code)-1])
		if text == "" {
			return Token{}, l.errorf("empty condition")
		}
		conds = append([]Token{{Kind: TokCondition, Text: text, Line: line}}, conds...)
		code = strings.TrimSpace(code[:open])
	}
	if code == "" {
		return Token{}, l.errorf("empty code line")
	}
	l.pending = append(l.pending, conds...)
	return Token{Kind: kind, Text: code, Line: line}, nil
}
