package internal

import "fmt"

type tokenType int

const (
	tkEOF tokenType = iota - 1

	// Punctuation.
	// (, ), ',', ;
	tkLeftParen
	tkRightParen
	tkComma
	tkSemicolon

	// Operators.
	// -, +, /, *, %, !, &, |, ^
	tkMinus
	tkPlus
	tkSlash
	tkStar
	tkMod
	tkBang
	tkAmp
	tkPipe
	tkCaret

	// One, two or three character operators.
	// =, ==, ===, !=, !==, >, >=, <, <=, +=, -=, *=, /=, %=, &&, ||, ^^,
	// <<, >>, &=, |=, ^=, <<=, >>=
	tkEqual
	tkEqualEqual
	tkEqualEqualEqual
	tkBangEqual
	tkBangEqualEqual
	tkGreater
	tkGreaterEqual
	tkLess
	tkLessEqual
	tkPlusEqual
	tkMinusEqual
	tkStarEqual
	tkSlashEqual
	tkModEqual
	tkAnd
	tkOr
	tkCaretCaret
	tkLessLess
	tkGreaterGreater
	tkAmpEqual
	tkPipeEqual
	tkCaretEqual
	tkLessLessEqual
	tkGreaterGreaterEqual

	// Literals.
	// *variable*, string, number
	tkIdentifier
	tkString
	tkNumber

	// Keywords.
	// def, end, if, elif, else, for, while, return, break, continue,
	// true, false, null
	tkDef
	tkEnd
	tkIf
	tkElif
	tkElse
	tkFor
	tkWhile
	tkReturn
	tkBreak
	tkContinue
	tkTrue
	tkFalse
	tkNull
)

var tokenNames = map[tokenType]string{
	tkEOF:                 "end of input",
	tkLeftParen:           "(",
	tkRightParen:          ")",
	tkComma:               ",",
	tkSemicolon:           ";",
	tkMinus:               "-",
	tkPlus:                "+",
	tkSlash:               "/",
	tkStar:                "*",
	tkMod:                 "%",
	tkBang:                "!",
	tkAmp:                 "&",
	tkPipe:                "|",
	tkCaret:               "^",
	tkEqual:               "=",
	tkEqualEqual:          "==",
	tkEqualEqualEqual:     "===",
	tkBangEqual:           "!=",
	tkBangEqualEqual:      "!==",
	tkGreater:             ">",
	tkGreaterEqual:        ">=",
	tkLess:                "<",
	tkLessEqual:           "<=",
	tkPlusEqual:           "+=",
	tkMinusEqual:          "-=",
	tkStarEqual:           "*=",
	tkSlashEqual:          "/=",
	tkModEqual:            "%=",
	tkAnd:                 "&&",
	tkOr:                  "||",
	tkCaretCaret:          "^^",
	tkLessLess:            "<<",
	tkGreaterGreater:      ">>",
	tkAmpEqual:            "&=",
	tkPipeEqual:           "|=",
	tkCaretEqual:          "^=",
	tkLessLessEqual:       "<<=",
	tkGreaterGreaterEqual: ">>=",
	tkIdentifier:          "identifier",
	tkString:              "string",
	tkNumber:              "number",
	tkDef:                 "def",
	tkEnd:                 "end",
	tkIf:                  "if",
	tkElif:                "elif",
	tkElse:                "else",
	tkFor:                 "for",
	tkWhile:               "while",
	tkReturn:              "return",
	tkBreak:               "break",
	tkContinue:            "continue",
	tkTrue:                "true",
	tkFalse:               "false",
	tkNull:                "null",
}

func (t tokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// isKeyword reports whether t is a reserved word
func (t tokenType) isKeyword() bool {
	return t >= tkDef && t <= tkNull
}

type token struct {
	token   tokenType
	lexeme  string
	literal interface{}
	line    int
}

// describe renders the token the way it appears in diagnostics
func (t *token) describe() string {
	switch t.token {
	case tkEOF:
		return "end of input"
	case tkString:
		return fmt.Sprintf("string %s", t.lexeme)
	case tkNumber:
		return fmt.Sprintf("number %s", t.lexeme)
	case tkIdentifier:
		return fmt.Sprintf("identifier '%s'", t.lexeme)
	}
	if t.token.isKeyword() {
		return fmt.Sprintf("keyword '%s'", t.lexeme)
	}
	return fmt.Sprintf("'%s'", t.lexeme)
}
