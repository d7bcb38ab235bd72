// File: parser.go
// Title: Calculator Expression Parser
// Description: Builds an expression tree from a token slice. The leftmost
//              binary operator becomes the root and the tokens on either
//              side are parsed recursively; there is no precedence.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2025-10-19 v0.2.0: Leftmost-operator splitting over token slices

package parser

import (
	"fmt"
	"strings"

	mdwast "github.com/msto63/calc/foundation/calc/ast"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	mdwlog "github.com/msto63/calc/foundation/core/log"
)

// Parser turns token slices into expression trees
type Parser struct {
	logger *mdwlog.Logger
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	return &Parser{
		logger: opts.Logger.WithField("component", "calc-parser"),
	}
}

// Parse parses tokens into an expression tree
func (p *Parser) Parse(tokens []Token) (mdwast.Expr, error) {
	expr, err := parseTokens(tokens)
	if err != nil {
		p.logger.DebugWithErr("parsing failed", err, mdwlog.Fields{
			"tokens": FormatTokens(tokens),
		})
		return nil, err
	}

	if p.logger.IsLevelEnabled(mdwlog.LevelDebug) {
		p.logger.Debug("parsing completed", mdwlog.Fields{
			"expr":  expr.String(),
			"nodes": mdwast.CountNodes(expr),
			"depth": mdwast.Depth(expr),
		})
	}
	return expr, nil
}

// Parse parses tokens with a parser that does not log
func Parse(tokens []Token) (mdwast.Expr, error) {
	return parseTokens(tokens)
}

// ParseLine tokenizes and parses a single input line
func ParseLine(line string) (mdwast.Expr, []Token, error) {
	tokens := Tokenize(line)
	expr, err := parseTokens(tokens)
	return expr, tokens, err
}

// parseTokens splits around the first binary operator. Every recursive call
// receives a strictly shorter slice, so recursion terminates.
func parseTokens(tokens []Token) (mdwast.Expr, error) {
	if len(tokens) == 0 {
		return nil, mdwerror.New("empty input").
			WithCode(mdwerror.CodeEmptyInput).
			WithOperation("parser.Parse")
	}

	for i, tok := range tokens {
		if tok.Kind != TokenBinaryOperator {
			continue
		}

		op, err := mdwast.ParseOperator(tok.Text)
		if err != nil {
			return nil, err
		}

		left, err := parseTokens(tokens[:i])
		if err != nil {
			return nil, err
		}
		right, err := parseTokens(tokens[i+1:])
		if err != nil {
			return nil, err
		}

		return &mdwast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Position}, nil
	}

	if len(tokens) == 1 {
		switch tok := tokens[0]; tok.Kind {
		case TokenNumber:
			return &mdwast.NumberLit{Text: tok.Text, Pos: tok.Position}, nil
		case TokenIdentifier:
			return &mdwast.Ident{Name: tok.Text, Pos: tok.Position}, nil
		}
	}

	return nil, mdwerror.New(fmt.Sprintf("invalid expression: %s", joinText(tokens))).
		WithCode(mdwerror.CodeInvalidExpression).
		WithOperation("parser.Parse").
		WithDetail("tokens", FormatTokens(tokens)).
		WithDetail("position", tokens[0].Position)
}

func joinText(tokens []Token) string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return strings.Join(texts, " ")
}
