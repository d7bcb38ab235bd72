// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     display
// Description: Formats results, errors, trees, tokens and bindings for the
//              terminal front ends
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/calc/foundation/calc"
	mdwast "github.com/msto63/calc/foundation/calc/ast"
	mdwenv "github.com/msto63/calc/foundation/calc/env"
	mdwparser "github.com/msto63/calc/foundation/calc/parser"
	mdwerror "github.com/msto63/calc/foundation/core/error"
)

// HelpText lists the meta commands understood by the REPL and the TUI
const HelpText = `Eingaben:
  <ausdruck>              z.B. 2+3*4 (linkester Operator zuerst)
  <typ> <name> = <ausdruck> ;
                          z.B. int a = 5 ;

Befehle:
  :help                   diese Hilfe
  :vars                   alle Variablen anzeigen
  :ast <ausdruck>         Syntaxbaum anzeigen
  :tokens <ausdruck>      Tokens anzeigen
  :quit                   beenden`

// Formatter renders calculator output either styled or as plain text
type Formatter struct {
	plain bool
}

// NewFormatter creates a formatter; plain disables all styling
func NewFormatter(plain bool) *Formatter {
	return &Formatter{plain: plain}
}

// Plain reports whether styling is disabled
func (f *Formatter) Plain() bool {
	return f.plain
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if f.plain {
		return s
	}
	return style.Render(s)
}

// Result formats a successful line: the value for expressions,
// "name = value" for declarations
func (f *Formatter) Result(r *calc.Result) string {
	if r == nil {
		return ""
	}
	if r.Kind == calc.ResultDeclaration {
		return f.render(NameStyle, r.Name) + " = " + f.render(ValueStyle, r.Value.String())
	}
	return f.render(ValueStyle, r.Value.String())
}

// Error formats an error as "Fehler: message [CODE]"
func (f *Formatter) Error(err error) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) && mdwErr.Code() != mdwerror.CodeUnknown {
		return f.render(ErrorStyle, "Fehler: "+message) + " " +
			f.render(ErrorCodeStyle, "["+string(mdwErr.Code())+"]")
	}
	return f.render(ErrorStyle, "Fehler: "+message)
}

// Tree formats an expression tree; operator labels are highlighted
func (f *Formatter) Tree(expr mdwast.Expr) string {
	tree := mdwast.Tree(expr)
	if f.plain {
		return tree
	}

	lines := strings.Split(tree, "\n")
	for i, line := range lines {
		prefix, label := splitTreeLine(line)
		if _, err := mdwast.ParseOperator(label); err == nil {
			label = OperatorStyle.Render(label)
		} else {
			label = TreeStyle.Render(label)
		}
		lines[i] = HelpStyle.Render(prefix) + label
	}
	return strings.Join(lines, "\n")
}

// splitTreeLine separates the branch drawing from the node label
func splitTreeLine(line string) (string, string) {
	for _, branch := range []string{"├── ", "└── "} {
		if i := strings.LastIndex(line, branch); i >= 0 {
			cut := i + len(branch)
			return line[:cut], line[cut:]
		}
	}
	return "", line
}

// Tokens formats tokens one per line as "KIND text"
func (f *Formatter) Tokens(tokens []mdwparser.Token) string {
	if len(tokens) == 0 {
		return f.render(SubtitleStyle, "(keine Tokens)")
	}

	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		kind := fmt.Sprintf("%-16s", tok.Kind.String())
		lines[i] = f.render(TokenKindStyle, kind) + tok.Text
	}
	return strings.Join(lines, "\n")
}

// Variables formats all bindings in declaration order
func (f *Formatter) Variables(env *mdwenv.Environment) string {
	names := env.Names()
	if len(names) == 0 {
		return f.render(SubtitleStyle, "(keine Variablen)")
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	lines := make([]string, len(names))
	for i, name := range names {
		v, _ := env.Lookup(name)
		padded := name + strings.Repeat(" ", width-len(name))
		lines[i] = f.render(NameStyle, padded) + " = " + f.render(ValueStyle, v.String()) +
			" " + f.render(SubtitleStyle, "("+v.Kind().String()+")")
	}
	return strings.Join(lines, "\n")
}

// Help returns the help text
func (f *Formatter) Help() string {
	return f.render(HelpStyle, HelpText)
}

// Banner returns the greeting shown by interactive front ends
func (f *Formatter) Banner(version string) string {
	title := "calc " + version
	hint := "Hilfe mit :help, beenden mit :quit oder Ctrl+D"
	if f.plain {
		return title + "\n" + hint
	}
	return BoxStyle.Render(TitleStyle.Render(title) + "\n" + SubtitleStyle.Render(hint))
}

// Printer writes formatted output to a result stream and an error stream
type Printer struct {
	*Formatter
	out    io.Writer
	errOut io.Writer
}

// NewPrinter creates a printer
func NewPrinter(out, errOut io.Writer, plain bool) *Printer {
	return &Printer{
		Formatter: NewFormatter(plain),
		out:       out,
		errOut:    errOut,
	}
}

// PrintResult writes a result line
func (p *Printer) PrintResult(r *calc.Result) {
	fmt.Fprintln(p.out, p.Result(r))
}

// PrintError writes an error line to the error stream
func (p *Printer) PrintError(err error) {
	fmt.Fprintln(p.errOut, p.Error(err))
}

// Println writes s followed by a newline to the result stream
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out, s)
}
