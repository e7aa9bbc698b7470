package internal

import (
	"strconv"
	"strings"
)

type lexer struct {
	start   int
	current int
	line    int

	state *interpreterState
}

var keywords = map[string]tokenType{
	"def":      tkDef,
	"end":      tkEnd,
	"if":       tkIf,
	"elif":     tkElif,
	"else":     tkElse,
	"for":      tkFor,
	"while":    tkWhile,
	"return":   tkReturn,
	"break":    tkBreak,
	"continue": tkContinue,
	"true":     tkTrue,
	"false":    tkFalse,
	"null":     tkNull,
}

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
	'"':  '"',
	'\\': '\\',
	'/':  '/',
}

// scan tokenizes the whole source, stopping at the first lexical error
func (l *lexer) scan() {
	for !l.isAtEnd() && l.state.Valid() {
		l.start = l.current
		l.scanToken()
	}
	l.state.tokens = append(l.state.tokens, token{
		token: tkEOF,
		line:  l.line,
	})
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.emit(tkLeftParen, nil)
	case ')':
		l.emit(tkRightParen, nil)
	case ',':
		l.emit(tkComma, nil)
	case ';':
		l.emit(tkSemicolon, nil)
	case '-':
		l.emitEither('=', tkMinusEqual, tkMinus)
	case '+':
		l.emitEither('=', tkPlusEqual, tkPlus)
	case '/':
		l.emitEither('=', tkSlashEqual, tkSlash)
	case '*':
		l.emitEither('=', tkStarEqual, tkStar)
	case '%':
		l.emitEither('=', tkModEqual, tkMod)
	case '#':
		for l.peek() != '\n' && !l.isAtEnd() {
			l.advance()
		}
	case '!':
		if l.match('=') {
			l.emitEither('=', tkBangEqualEqual, tkBangEqual)
		} else {
			l.emit(tkBang, nil)
		}
	case '=':
		if l.match('=') {
			l.emitEither('=', tkEqualEqualEqual, tkEqualEqual)
		} else {
			l.emit(tkEqual, nil)
		}
	case '<':
		if l.match('<') {
			l.emitEither('=', tkLessLessEqual, tkLessLess)
		} else {
			l.emitEither('=', tkLessEqual, tkLess)
		}
	case '>':
		if l.match('>') {
			l.emitEither('=', tkGreaterGreaterEqual, tkGreaterGreater)
		} else {
			l.emitEither('=', tkGreaterEqual, tkGreater)
		}
	case '&':
		if l.match('&') {
			l.emit(tkAnd, nil)
		} else {
			l.emitEither('=', tkAmpEqual, tkAmp)
		}
	case '|':
		if l.match('|') {
			l.emit(tkOr, nil)
		} else {
			l.emitEither('=', tkPipeEqual, tkPipe)
		}
	case '^':
		if l.match('^') {
			l.emit(tkCaretCaret, nil)
		} else {
			l.emitEither('=', tkCaretEqual, tkCaret)
		}

	// Ignore whitespace
	case ' ':
	case '\r':
	case '\t':

	case '\n':
		l.line++

	case '"':
		l.string()

	default:
		if isDigit(c) || (c == '.' && isDigit(l.peek())) {
			l.number()
		} else if isAlpha(c) {
			l.identifier()
		} else {
			l.state.setError(lexError(l.line, errIllegalChar, strconv.QuoteRune(rune(c))))
		}
	}
}

func (l *lexer) string() {
	line := l.line
	var literal strings.Builder
	for !l.isAtEnd() && l.peek() != '"' {
		c := l.advance()
		switch c {
		case '\n':
			l.line++
			literal.WriteByte(c)
		case '\\':
			if l.isAtEnd() {
				break
			}
			esc := l.advance()
			replacement, ok := escapes[esc]
			if !ok {
				l.state.setError(lexError(l.line, errInvalidEscape, "\\"+string(esc)))
				return
			}
			literal.WriteByte(replacement)
		default:
			literal.WriteByte(c)
		}
	}

	if l.isAtEnd() {
		l.state.setError(lexError(line, errUnclosedString, ""))
		return
	}

	// Consume ending "
	l.advance()

	// A string spanning lines is reported where it opens
	l.emitOnLine(tkString, slateString(literal.String()), line)
}

func (l *lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.state.setError(lexError(l.line, errMalformedNumber, l.source()[l.start:l.current]))
			return
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal, err := strconv.ParseFloat(l.source()[l.start:l.current], 64)
	if err != nil {
		l.state.setError(lexError(l.line, errMalformedNumber, l.source()[l.start:l.current]))
		return
	}

	l.emit(tkNumber, slateNumber(literal))
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	identifier := l.source()[l.start:l.current]

	tokenType, ok := keywords[identifier]
	if !ok {
		tokenType = tkIdentifier
	}

	l.emit(tokenType, nil)
}

func (l *lexer) source() string {
	return l.state.source
}

func (l *lexer) advance() byte {
	current := l.source()[l.current]
	l.current++
	return current
}

func (l *lexer) match(c byte) bool {
	if l.isAtEnd() || l.source()[l.current] != c {
		return false
	}
	l.current++
	return true
}

func (l *lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source()[l.current]
}

func (l *lexer) peekNext() byte {
	if l.current+1 >= len(l.source()) {
		return 0
	}
	return l.source()[l.current+1]
}

// emitEither emits long when the next byte is c, short otherwise
func (l *lexer) emitEither(c byte, long, short tokenType) {
	if l.match(c) {
		l.emit(long, nil)
		return
	}
	l.emit(short, nil)
}

func (l *lexer) emit(tk tokenType, literal interface{}) {
	l.emitOnLine(tk, literal, l.line)
}

func (l *lexer) emitOnLine(tk tokenType, literal interface{}, line int) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  l.source()[l.start:l.current],
		literal: literal,
		line:    line,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.source())
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
