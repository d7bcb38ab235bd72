// File: visitor.go
// Title: AST Visitor and Tree Utilities
// Description: Visitor pattern implementation for expression trees plus
//              depth-first walking, node statistics and the indented tree
//              rendering shown by the REPL.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2025-10-19 v0.2.0: Calculator nodes, Walk, Tree rendering

package ast

import (
	"strings"
)

// Visitor defines the interface for visiting AST nodes
type Visitor interface {
	VisitNumberLit(node *NumberLit) interface{}
	VisitIdent(node *Ident) interface{}
	VisitBinaryExpr(node *BinaryExpr) interface{}
}

func (n *NumberLit) Accept(v Visitor) interface{}  { return v.VisitNumberLit(n) }
func (n *Ident) Accept(v Visitor) interface{}      { return v.VisitIdent(n) }
func (n *BinaryExpr) Accept(v Visitor) interface{} { return v.VisitBinaryExpr(n) }

// Walk calls fn for every non-nil node in depth-first pre-order. Returning
// false from fn skips the node's children.
func Walk(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	if bin, ok := expr.(*BinaryExpr); ok {
		Walk(bin.Left, fn)
		Walk(bin.Right, fn)
	}
}

// CountNodes returns the number of non-nil nodes in the tree
func CountNodes(expr Expr) int {
	count := 0
	Walk(expr, func(Expr) bool {
		count++
		return true
	})
	return count
}

// Depth returns the height of the tree; a single leaf has depth 1
func Depth(expr Expr) int {
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		if expr == nil {
			return 0
		}
		return 1
	}
	return 1 + max(Depth(bin.Left), Depth(bin.Right))
}

// Identifiers returns the variable names referenced by expr, in order of
// first appearance
func Identifiers(expr Expr) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(expr, func(e Expr) bool {
		if id, ok := e.(*Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			names = append(names, id.Name)
		}
		return true
	})
	return names
}

// Tree renders expr as an indented tree, one node per line:
//
//	+
//	├── 2
//	└── *
//	    ├── 3
//	    └── 4
func Tree(expr Expr) string {
	var b strings.Builder
	b.WriteString(Label(expr))
	b.WriteByte('\n')
	if bin, ok := expr.(*BinaryExpr); ok {
		writeChildren(&b, bin, "")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeChildren(b *strings.Builder, bin *BinaryExpr, prefix string) {
	children := []Expr{bin.Left, bin.Right}
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}

		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(Label(child))
		b.WriteByte('\n')

		if sub, ok := child.(*BinaryExpr); ok {
			writeChildren(b, sub, prefix+indent)
		}
	}
}
