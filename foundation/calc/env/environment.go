// File: environment.go
// Title: Calculator Variable Environment
// Description: Append-only store of variable bindings for one session.
//              Bindings are added by declaration statements or by seeding
//              built-in constants and are never changed or removed.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation

package env

import (
	"fmt"
	"math"

	mdwast "github.com/msto63/calc/foundation/calc/ast"
	mdwparser "github.com/msto63/calc/foundation/calc/parser"
	"github.com/msto63/calc/foundation/calc/value"
	mdwerror "github.com/msto63/calc/foundation/core/error"
)

// Built-in constants present in every seeded environment
const (
	BuiltinX  = "x"
	BuiltinPi = "pi"
)

// Environment maps variable names to numbers. It is not safe for
// concurrent use; each session owns its own instance.
type Environment struct {
	vars  map[string]value.Number
	order []string
}

// New returns an empty environment
func New() *Environment {
	return &Environment{vars: make(map[string]value.Number)}
}

// NewSeeded returns an environment holding the built-ins x = 23 and pi
func NewSeeded() *Environment {
	e := New()
	e.vars[BuiltinX] = value.Int(23)
	e.vars[BuiltinPi] = value.Float(math.Pi)
	e.order = append(e.order, BuiltinX, BuiltinPi)
	return e
}

// MakeNum binds name to v directly. It is used for seeding constants and
// fails if name is already bound.
func (e *Environment) MakeNum(name string, v value.Number) error {
	if _, exists := e.vars[name]; exists {
		return duplicate(name, "env.MakeNum")
	}
	e.bind(name, v)
	return nil
}

// DeclareVariable executes a declaration statement of the shape
// Keyword Identifier = <expression> ; and returns the bound value.
// The right-hand side may use earlier bindings but not the new name.
// Nothing is bound when any step fails.
func (e *Environment) DeclareVariable(tokens []mdwparser.Token) (value.Number, error) {
	if len(tokens) == 0 || tokens[0].Kind != mdwparser.TokenKeyword {
		return value.Number{}, malformed("declaration must start with a type keyword", tokens)
	}
	if len(tokens) < 2 || tokens[1].Kind != mdwparser.TokenIdentifier {
		return value.Number{}, malformed("expected identifier after keyword", tokens)
	}

	name := tokens[1].Text
	if e.Has(name) {
		return value.Number{}, duplicate(name, "env.DeclareVariable")
	}

	if len(tokens) < 4 || !tokens[2].Is(mdwparser.TokenOperator, "=") {
		return value.Number{}, malformed(fmt.Sprintf("expected '=' after %s", name), tokens)
	}
	if tokens[len(tokens)-1].Kind != mdwparser.TokenSemicolon {
		return value.Number{}, malformed("declaration must end with ';'", tokens)
	}

	expr, err := mdwparser.Parse(tokens[3 : len(tokens)-1])
	if err != nil {
		return value.Number{}, mdwerror.Wrap(err, fmt.Sprintf("declaration of %s", name)).
			WithOperation("env.DeclareVariable").
			WithDetail("identifier", name)
	}

	v, err := mdwast.Evaluate(expr, e)
	if err != nil {
		return value.Number{}, mdwerror.Wrap(err, fmt.Sprintf("declaration of %s", name)).
			WithOperation("env.DeclareVariable").
			WithDetail("identifier", name)
	}

	e.bind(name, v)
	return v, nil
}

// Lookup returns the value bound to name
func (e *Environment) Lookup(name string) (value.Number, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Has reports whether name is bound
func (e *Environment) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Names returns the bound names in declaration order
func (e *Environment) Names() []string {
	names := make([]string, len(e.order))
	copy(names, e.order)
	return names
}

// Len returns the number of bindings
func (e *Environment) Len() int {
	return len(e.order)
}

func (e *Environment) bind(name string, v value.Number) {
	e.vars[name] = v
	e.order = append(e.order, name)
}

func duplicate(name, operation string) error {
	return mdwerror.New(fmt.Sprintf("variable '%s' already declared", name)).
		WithCode(mdwerror.CodeDuplicateDeclaration).
		WithOperation(operation).
		WithDetail("identifier", name)
}

func malformed(message string, tokens []mdwparser.Token) error {
	return mdwerror.New("malformed declaration: "+message).
		WithCode(mdwerror.CodeMalformedDeclaration).
		WithOperation("env.DeclareVariable").
		WithDetail("tokens", mdwparser.FormatTokens(tokens))
}

var _ mdwast.Scope = (*Environment)(nil)
