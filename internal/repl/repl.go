// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     repl
// Description: Read-eval-print loop over a line reader: meta commands,
//              expression evaluation and declarations of one session
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/msto63/calc/foundation/calc"
	mdwlog "github.com/msto63/calc/foundation/core/log"
	"github.com/msto63/calc/internal/display"
)

// ErrAborted is returned by a LineReader when the current line was
// cancelled (Ctrl+C); the loop continues with a fresh prompt
var ErrAborted = errors.New("prompt aborted")

// LineReader supplies input lines. Prompt returns io.EOF when input ends.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// Options configures a REPL
type Options struct {
	Engine  *calc.Engine
	Printer *display.Printer
	Reader  LineReader
	Logger  *mdwlog.Logger
	Prompt  string
	ShowAST bool
}

// REPL runs one interactive calculator session
type REPL struct {
	engine  *calc.Engine
	printer *display.Printer
	reader  LineReader
	logger  *mdwlog.Logger
	prompt  string
	showAST bool
	lines   int
}

// New creates a REPL
func New(opts Options) *REPL {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Prompt == "" {
		opts.Prompt = ">> "
	}

	return &REPL{
		engine:  opts.Engine,
		printer: opts.Printer,
		reader:  opts.Reader,
		logger:  opts.Logger.WithField("component", "repl"),
		prompt:  opts.Prompt,
		showAST: opts.ShowAST,
	}
}

// Run reads lines until EOF or :quit. Errors of single lines are printed
// and never end the loop.
func (r *REPL) Run() error {
	defer r.reader.Close()

	for {
		line, err := r.reader.Prompt(r.prompt)
		switch {
		case errors.Is(err, io.EOF):
			r.logger.Debug("input closed", mdwlog.Fields{"lines": r.lines})
			return nil
		case errors.Is(err, ErrAborted):
			continue
		case err != nil:
			return err
		}

		if r.HandleLine(line) {
			r.logger.Debug("session ended", mdwlog.Fields{"lines": r.lines})
			return nil
		}
	}
}

// HandleLine processes one input line and reports whether the session
// should end
func (r *REPL) HandleLine(line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	r.lines++
	r.reader.AppendHistory(trimmed)

	if strings.HasPrefix(trimmed, ":") {
		return r.handleCommand(trimmed)
	}

	result, err := r.engine.Execute(trimmed)
	if err != nil {
		r.printer.PrintError(err)
		return false
	}

	r.printer.PrintResult(result)
	if r.showAST && result.Expr != nil {
		r.printer.Println(r.printer.Tree(result.Expr))
	}
	return false
}

// handleCommand handles :help, :quit, :vars, :ast, :tokens and :tree
func (r *REPL) handleCommand(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch cmd {
	case ":quit", ":exit", ":q":
		return true

	case ":help", ":h":
		r.printer.Println(r.printer.Help())

	case ":vars":
		r.printer.Println(r.printer.Variables(r.engine.Environment()))

	case ":ast":
		if arg == "" {
			r.printer.Println("usage: :ast <ausdruck>")
			return false
		}
		expr, _, err := r.engine.Analyze(arg)
		if err != nil {
			r.printer.PrintError(err)
			return false
		}
		r.printer.Println(r.printer.Tree(expr))

	case ":tokens":
		if arg == "" {
			r.printer.Println("usage: :tokens <ausdruck>")
			return false
		}
		r.printer.Println(r.printer.Tokens(r.engine.Tokenize(arg)))

	case ":tree":
		r.showAST = !r.showAST
		state := "aus"
		if r.showAST {
			state = "an"
		}
		r.printer.Println(fmt.Sprintf("Syntaxbaum-Anzeige %s", state))

	default:
		r.printer.Println(fmt.Sprintf("unbekannter Befehl %s, :help zeigt alle Befehle", fields[0]))
	}
	return false
}
