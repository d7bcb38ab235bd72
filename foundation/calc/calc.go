// File: calc.go
// Title: Calculator Engine
// Description: High-level API that runs one input line through the
//              tokenizer, parser and evaluator, or routes declarations to
//              the session environment. One Engine serves one session.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-25
// Modified: 2025-10-26
//
// Change History:
// - 2025-01-25 v0.1.0: Initial engine implementation
// - 2025-10-19 v0.2.0: Calculator lines and declarations, per-session environment
// - 2025-10-26 v0.2.1: Parse cache keys carry token positions

package calc

import (
	"fmt"
	"sort"
	"strings"
	"time"

	mdwast "github.com/msto63/calc/foundation/calc/ast"
	mdwenv "github.com/msto63/calc/foundation/calc/env"
	mdwparser "github.com/msto63/calc/foundation/calc/parser"
	"github.com/msto63/calc/foundation/calc/value"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	mdwlog "github.com/msto63/calc/foundation/core/log"
	mdwstringx "github.com/msto63/calc/foundation/utils/stringx"
)

// DefaultMaxInputLength limits the length of one input line
const DefaultMaxInputLength = 4096

// Engine evaluates input lines against its own environment. It is not safe
// for concurrent use.
type Engine struct {
	parser  *mdwparser.Parser
	env     *mdwenv.Environment
	logger  *mdwlog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// MaxInputLength limits input line length (default: 4096)
	MaxInputLength int

	// Constants are seeded after the built-ins, in name order
	Constants map[string]value.Number

	// SkipBuiltins starts from an empty environment instead of x and pi
	SkipBuiltins bool

	// ParseCache shares parsed expressions between engines (optional)
	ParseCache ParseCache
}

// ParseCache stores expression trees by their token text. Parsing does not
// depend on bindings and trees are never mutated, so one cache may serve
// many engines. Implementations must be safe for concurrent use.
type ParseCache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

// ResultKind distinguishes expression results from declarations
type ResultKind int

const (
	ResultExpression ResultKind = iota
	ResultDeclaration
)

// String returns the kind name
func (k ResultKind) String() string {
	if k == ResultDeclaration {
		return "declaration"
	}
	return "expression"
}

// Result represents the outcome of one executed line
type Result struct {
	// Kind tells whether the line was an expression or a declaration
	Kind ResultKind

	// Value is the computed value; for declarations the bound value
	Value value.Number

	// Name is the declared identifier (declarations only)
	Name string

	// Expr is the parsed expression (expressions only)
	Expr mdwast.Expr

	// Tokens are the tokens of the input line
	Tokens []mdwparser.Token

	// ExecutionTime is the time taken to process the line
	ExecutionTime time.Duration
}

// Tree renders the parsed expression, or "" for declarations
func (r *Result) Tree() string {
	if r.Expr == nil {
		return ""
	}
	return mdwast.Tree(r.Expr)
}

// NewEngine creates an engine with a freshly seeded environment
func NewEngine(opts ...Options) (*Engine, error) {
	options := Options{
		Logger:         mdwlog.GetDefault(),
		MaxInputLength: DefaultMaxInputLength,
	}

	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.MaxInputLength > 0 {
			options.MaxInputLength = provided.MaxInputLength
		}
		options.Constants = provided.Constants
		options.SkipBuiltins = provided.SkipBuiltins
		options.ParseCache = provided.ParseCache
	}

	logger := options.Logger.WithField("component", "calc-engine")

	environment := mdwenv.NewSeeded()
	if options.SkipBuiltins {
		environment = mdwenv.New()
	}

	names := make([]string, 0, len(options.Constants))
	for name := range options.Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if mdwparser.Classify(name) != mdwparser.TokenIdentifier {
			return nil, mdwerror.New(fmt.Sprintf("constant name %q is not an identifier", name)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("calc.NewEngine").
				WithDetail("constant", name)
		}
		if err := environment.MakeNum(name, options.Constants[name]); err != nil {
			return nil, mdwerror.Wrap(err, "seed constants").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("calc.NewEngine")
		}
	}

	logger.Debug("engine initialized", mdwlog.Fields{
		"bindings":         environment.Len(),
		"max_input_length": options.MaxInputLength,
	})

	return &Engine{
		parser:  mdwparser.New(mdwparser.Options{Logger: options.Logger}),
		env:     environment,
		logger:  logger,
		options: options,
	}, nil
}

// Execute processes one input line. A line starting with a keyword is a
// declaration; anything else is an expression. Errors affect only this
// line; bindings made earlier stay intact.
func (e *Engine) Execute(line string) (*Result, error) {
	start := time.Now()
	timer := e.logger.StartTimer("execute").WithField("line", mdwstringx.Truncate(line, 80, "..."))

	tokens, err := e.tokenize(line)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	result := &Result{Tokens: tokens}

	if tokens[0].Kind == mdwparser.TokenKeyword {
		result.Kind = ResultDeclaration
		result.Name = declaredName(tokens)
		result.Value, err = e.env.DeclareVariable(tokens)
	} else {
		result.Kind = ResultExpression
		result.Expr, err = e.parse(tokens)
		if err == nil {
			result.Value, err = mdwast.Evaluate(result.Expr, e.env)
		}
	}

	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	result.ExecutionTime = time.Since(start)
	timer.WithField("kind", result.Kind.String()).Stop()
	return result, nil
}

// parseCacheKey includes token positions so cached trees report the
// offsets of the line being executed.
func parseCacheKey(tokens []mdwparser.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s@%d", tok, tok.Position)
	}
	return b.String()
}

// parse consults the parse cache before running the parser. Only
// successful parses are cached.
func (e *Engine) parse(tokens []mdwparser.Token) (mdwast.Expr, error) {
	if e.options.ParseCache == nil {
		return e.parser.Parse(tokens)
	}

	key := parseCacheKey(tokens)
	if cached, ok := e.options.ParseCache.Get(key); ok {
		if expr, ok := cached.(mdwast.Expr); ok {
			return expr, nil
		}
	}

	expr, err := e.parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	e.options.ParseCache.Set(key, expr)
	return expr, nil
}

// Analyze tokenizes and parses an expression line without evaluating it
func (e *Engine) Analyze(line string) (mdwast.Expr, []mdwparser.Token, error) {
	tokens, err := e.tokenize(line)
	if err != nil {
		return nil, tokens, err
	}
	expr, err := e.parse(tokens)
	return expr, tokens, err
}

// Tokenize returns the tokens of line
func (e *Engine) Tokenize(line string) []mdwparser.Token {
	return mdwparser.Tokenize(line)
}

// Lookup returns the value bound to name in this session
func (e *Engine) Lookup(name string) (value.Number, bool) {
	return e.env.Lookup(name)
}

// Environment returns the session environment
func (e *Engine) Environment() *mdwenv.Environment {
	return e.env
}

func (e *Engine) tokenize(line string) ([]mdwparser.Token, error) {
	if len(line) > e.options.MaxInputLength {
		return nil, mdwerror.New(fmt.Sprintf("input exceeds maximum length: %d > %d",
			len(line), e.options.MaxInputLength)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("calc.Execute").
			WithDetail("length", len(line))
	}

	tokens := mdwparser.Tokenize(line)
	if len(tokens) == 0 {
		return tokens, mdwerror.New("empty input").
			WithCode(mdwerror.CodeEmptyInput).
			WithOperation("calc.Execute")
	}
	return tokens, nil
}

func declaredName(tokens []mdwparser.Token) string {
	if len(tokens) > 1 && tokens[1].Kind == mdwparser.TokenIdentifier {
		return tokens[1].Text
	}
	return ""
}
