// File: lexer.go
// Title: Calculator Lexical Analyzer (Tokenizer)
// Description: Converts one input line into classified tokens. Words are
//              maximal runs of [A-Za-z0-9_]; '=', ';' and the binary
//              operators are single-character tokens. Any other byte is
//              skipped, so tokenizing never fails.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2025-10-19 v0.2.0: Calculator token kinds, keyword set, lossless skipping

package parser

import (
	"fmt"
	"strings"

	mdwstringx "github.com/msto63/calc/foundation/utils/stringx"
)

// TokenKind represents the classification of a lexical token
type TokenKind int

const (
	TokenKeyword        TokenKind = iota // int, float, ...
	TokenNumber                          // 123
	TokenBinaryOperator                  // + - * / %
	TokenOperator                        // =
	TokenSemicolon                       // ;
	TokenIdentifier                      // a, pi, total_2
)

// String returns a string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenKeyword:
		return "KEYWORD"
	case TokenNumber:
		return "NUMBER"
	case TokenBinaryOperator:
		return "BINARY_OPERATOR"
	case TokenOperator:
		return "OPERATOR"
	case TokenSemicolon:
		return "SEMICOLON"
	case TokenIdentifier:
		return "IDENTIFIER"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token with position information
type Token struct {
	Kind     TokenKind // Token classification
	Text     string    // Token text
	Position int       // Byte offset in the input line (0-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// Is reports whether the token has the given kind and text
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// keywords is the fixed set of declaration keywords. They carry no type
// semantics; any of them introduces a declaration.
var keywords = map[string]struct{}{
	"int":    {},
	"float":  {},
	"double": {},
	"char":   {},
	"void":   {},
	"if":     {},
	"else":   {},
	"while":  {},
	"for":    {},
	"return": {},
}

// Keywords returns the declaration keywords in sorted order
func Keywords() []string {
	return []string{"char", "double", "else", "float", "for", "if", "int", "return", "void", "while"}
}

// IsKeyword reports whether word is a declaration keyword
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsBinaryOperator reports whether text is one of + - * / %
func IsBinaryOperator(text string) bool {
	return len(text) == 1 && isOperatorByte(text[0])
}

func isOperatorByte(ch byte) bool {
	return strings.IndexByte("+-*/%", ch) >= 0
}

// Classify returns the kind of a lexeme
func Classify(lexeme string) TokenKind {
	switch {
	case IsKeyword(lexeme):
		return TokenKeyword
	case mdwstringx.IsDigits(lexeme):
		return TokenNumber
	case IsBinaryOperator(lexeme):
		return TokenBinaryOperator
	case lexeme == "=":
		return TokenOperator
	case lexeme == ";":
		return TokenSemicolon
	default:
		return TokenIdentifier
	}
}

// Lexer performs lexical analysis of a calculator input line
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token and false once the input is exhausted
func (l *Lexer) NextToken() (Token, bool) {
	for l.position < len(l.input) {
		pos := l.position

		switch {
		case mdwstringx.IsWordByte(l.ch):
			word := l.readWord()
			return Token{Kind: Classify(word), Text: word, Position: pos}, true
		case l.ch == '=' || l.ch == ';' || isOperatorByte(l.ch):
			text := string(l.ch)
			l.readChar()
			return Token{Kind: Classify(text), Text: text, Position: pos}, true
		default:
			// whitespace and unknown punctuation are dropped
			l.readChar()
		}
	}
	return Token{}, false
}

// Tokenize returns all tokens from the input as a slice
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize splits a line into classified tokens
func Tokenize(line string) []Token {
	return NewLexer(line).Tokenize()
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
}

// readWord consumes a maximal run of word characters
func (l *Lexer) readWord() string {
	start := l.position
	for mdwstringx.IsWordByte(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// FormatTokens renders tokens as space separated "KIND(text)" items
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}
