// File: eval.go
// Title: Expression Evaluation
// Description: Recursively computes the numeric value of an expression tree
//              against a read-only scope of variable bindings.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-19
// Modified: 2025-10-26
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation
// - 2025-10-26 v0.1.1: Number literals of any length

package ast

import (
	"fmt"

	"github.com/msto63/calc/foundation/calc/value"
	mdwerror "github.com/msto63/calc/foundation/core/error"
	mdwstringx "github.com/msto63/calc/foundation/utils/stringx"
)

// Scope resolves variable names during evaluation
type Scope interface {
	Lookup(name string) (value.Number, bool)
}

// Evaluate computes the value of expr. The scope is only read; a nil scope
// behaves like an empty one.
func Evaluate(expr Expr, scope Scope) (value.Number, error) {
	switch n := expr.(type) {
	case nil:
		return value.Int(0), nil

	case *NumberLit:
		return evalLiteral(n)

	case *Ident:
		if scope != nil {
			if v, ok := scope.Lookup(n.Name); ok {
				return v, nil
			}
		}
		return value.Number{}, mdwerror.New(fmt.Sprintf("unknown identifier: %s", n.Name)).
			WithCode(mdwerror.CodeUnknownIdentifier).
			WithOperation("ast.Evaluate").
			WithDetail("identifier", n.Name).
			WithDetail("position", n.Pos)

	case *BinaryExpr:
		left, err := Evaluate(n.Left, scope)
		if err != nil {
			return value.Number{}, err
		}
		right, err := Evaluate(n.Right, scope)
		if err != nil {
			return value.Number{}, err
		}
		return value.Apply(n.Op.Symbol(), left, right)

	default:
		return value.Number{}, mdwerror.New(fmt.Sprintf("unsupported expression node %T", expr)).
			WithCode(mdwerror.CodeInvalidExpression).
			WithOperation("ast.Evaluate")
	}
}

func evalLiteral(n *NumberLit) (value.Number, error) {
	if mdwstringx.IsDigits(n.Text) {
		if v, ok := value.ParseInt(n.Text); ok {
			return v, nil
		}
	}
	return value.Number{}, mdwerror.New(fmt.Sprintf("invalid number literal: %q", n.Text)).
		WithCode(mdwerror.CodeInvalidExpression).
		WithOperation("ast.Evaluate").
		WithDetail("literal", n.Text)
}
