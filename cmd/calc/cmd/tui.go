package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/internal/tui"
	"github.com/msto63/calc/pkg/core/version"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet die interaktive TUI",
	Long: `Startet die Terminal-Oberfläche von calc.

Navigation:
  Enter       - Zeile auswerten
  ↑/↓         - Verlauf
  PgUp/PgDn   - Ausgabe blättern
  Esc, Ctrl+C - Beenden`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("Rechner initialisieren", err)
		return err
	}

	err = tui.Run(tui.Config{
		Engine:  engine,
		Logger:  logger,
		Prompt:  appConfig.REPL.Prompt,
		ShowAST: appConfig.REPL.ShowAST,
		Version: version.TUI,
		Plain:   !appConfig.REPL.Color,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI Fehler: %v\n", err)
		return err
	}
	return nil
}
