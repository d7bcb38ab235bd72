// File: doc.go
// Title: Calculator Language Package Documentation
// Description: Package documentation for the calculator engine and its
//              tokenizer, parser, AST and environment sub-packages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial package documentation
// - 2025-10-19 v0.2.0: Calculator language

/*
Package calc implements a small line-oriented calculator language.

A line is either an expression or a declaration:

	2+3*4          expression, evaluates to 14
	int a = 5 ;    declaration, binds a to 5
	a % 3          expression using a binding

Processing runs through four stages, each in its own package:

  - parser.Tokenize splits the line into keyword, number, operator,
    semicolon and identifier tokens. Unknown characters are skipped.
  - parser.Parse builds an ast.Expr. The leftmost binary operator becomes
    the root; there is no precedence and there are no parentheses.
  - ast.Evaluate computes an arbitrary precision integer or float64 value
    against a scope.
  - env.Environment stores bindings. Names are bound once and never
    rebound; x = 23 and pi are present from the start.

Basic usage:

	engine, err := calc.NewEngine(calc.Options{Logger: logger})
	if err != nil {
		return err
	}
	result, err := engine.Execute("2+3*4")
	if err != nil {
		// mdwerror.HasCode(err, mdwerror.CodeDivisionByZero), ...
	}
	fmt.Println(result.Value)

Errors carry one of the calculator codes of the core error package:
EMPTY_INPUT, INVALID_EXPRESSION, UNKNOWN_IDENTIFIER, DIVISION_BY_ZERO,
DUPLICATE_DECLARATION and MALFORMED_DECLARATION. A failing line never
changes the environment.
*/
package calc
