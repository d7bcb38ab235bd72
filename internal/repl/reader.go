package repl

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	mdwlog "github.com/msto63/calc/foundation/core/log"
)

// IsInteractive reports whether f is a terminal
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// linerReader provides line editing and a persistent history
type linerReader struct {
	state       *liner.State
	historyPath string
	logger      *mdwlog.Logger
}

// NewLinerReader opens a line editor on the terminal. The history file is
// read now and written on Close; an empty path disables persistence.
func NewLinerReader(historyPath string, logger *mdwlog.Logger) LineReader {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	r := &linerReader{state: state, historyPath: historyPath, logger: logger}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := state.ReadHistory(f); err != nil {
				logger.DebugWithErr("reading history failed", err, mdwlog.Fields{"path": historyPath})
			}
			_ = f.Close()
		}
	}
	return r
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	return line, err
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			if _, err := r.state.WriteHistory(f); err != nil {
				r.logger.DebugWithErr("writing history failed", err, mdwlog.Fields{"path": r.historyPath})
			}
			_ = f.Close()
		}
	}
	return r.state.Close()
}

// scannerReader reads lines from a non-interactive source such as a pipe.
// It prints no prompt and keeps no history.
type scannerReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// NewScannerReader reads lines from in
func NewScannerReader(in io.Reader) LineReader {
	r := &scannerReader{scanner: bufio.NewScanner(in)}
	if c, ok := in.(io.Closer); ok && c != os.Stdin {
		r.closer = c
	}
	return r
}

func (r *scannerReader) Prompt(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) AppendHistory(string) {}

func (r *scannerReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
