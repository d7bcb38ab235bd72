// File: nodes.go
// Title: Calculator AST Node Definitions
// Description: Defines the expression tree produced by the parser: number
//              literals, identifier references and binary operator nodes.
//              Expr is sealed, so a node is either a leaf or an operator
//              node and never both.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2025-10-19 v0.2.0: Reduced to calculator expressions with closed operator set

package ast

import (
	"fmt"

	mdwerror "github.com/msto63/calc/foundation/core/error"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns a fully parenthesized infix rendering
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the byte offset of the node's token in the input line
	Position() int
}

// Expr is implemented by the three expression node types only
type Expr interface {
	Node
	exprNode() // marker method
}

// Operator is the closed set of binary operators
type Operator int

const (
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpMod                 // %
)

// Symbol returns the source symbol of the operator
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// String returns the operator symbol
func (op Operator) String() string {
	return op.Symbol()
}

// ParseOperator maps a symbol to its Operator
func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "%":
		return OpMod, nil
	default:
		return 0, mdwerror.New(fmt.Sprintf("unknown operator: %q", symbol)).
			WithCode(mdwerror.CodeInvalidExpression).
			WithOperation("ast.ParseOperator").
			WithDetail("symbol", symbol)
	}
}

// NumberLit is a non-negative integer literal as written in the input
type NumberLit struct {
	Text string
	Pos  int
}

// Ident references a variable in the evaluation scope
type Ident struct {
	Name string
	Pos  int
}

// BinaryExpr applies Op to the values of Left and Right. A nil child is
// tolerated and evaluates as integer 0.
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
	Pos   int
}

func (n *NumberLit) exprNode()  {}
func (n *Ident) exprNode()      {}
func (n *BinaryExpr) exprNode() {}

func (n *NumberLit) Position() int  { return n.Pos }
func (n *Ident) Position() int      { return n.Pos }
func (n *BinaryExpr) Position() int { return n.Pos }

func (n *NumberLit) String() string { return n.Text }
func (n *Ident) String() string     { return n.Name }

func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", childString(n.Left), n.Op.Symbol(), childString(n.Right))
}

func childString(e Expr) string {
	if e == nil {
		return "nil"
	}
	return e.String()
}

// Label returns the text shown for a node in tree views: the literal,
// the name, or the operator symbol
func Label(e Expr) string {
	switch n := e.(type) {
	case nil:
		return "nil"
	case *NumberLit:
		return n.Text
	case *Ident:
		return n.Name
	case *BinaryExpr:
		return n.Op.Symbol()
	default:
		return "?"
	}
}
