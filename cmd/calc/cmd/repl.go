package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/internal/display"
	"github.com/msto63/calc/internal/repl"
	"github.com/msto63/calc/pkg/core/version"
)

var (
	plainOutput bool
	showAST     bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet die zeilenorientierte REPL",
	Long: `Startet die REPL. Jede Zeile wird sofort ausgewertet, Fehler
beenden die Sitzung nicht.

Befehle:
  :help, :vars, :ast <ausdruck>, :tokens <ausdruck>, :tree, :quit

Liest die REPL nicht von einem Terminal, werden die Zeilen ohne
Prompt und Verlauf verarbeitet, z.B.:
  printf 'int a = 5 ;\na*2\n' | calc repl`,
	RunE: runREPL,
}

func init() {
	addREPLFlags(replCmd)
	rootCmd.AddCommand(replCmd)
}

func addREPLFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&plainOutput, "plain", false, "Ausgabe ohne Farben")
	cmd.Flags().BoolVar(&showAST, "show-ast", false, "Syntaxbaum zu jedem Ergebnis anzeigen")
}

func runREPL(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("Rechner initialisieren", err)
		return err
	}

	interactive := repl.IsInteractive(os.Stdin)
	plain := plainOutput || !appConfig.REPL.Color || !repl.IsInteractive(os.Stdout)
	printer := display.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), plain)

	var reader repl.LineReader
	if interactive {
		reader = repl.NewLinerReader(appConfig.REPL.HistoryFile, logger)
		printer.Println(printer.Banner(version.Platform))
	} else {
		reader = repl.NewScannerReader(cmd.InOrStdin())
	}

	session := repl.New(repl.Options{
		Engine:  engine,
		Printer: printer,
		Reader:  reader,
		Logger:  logger,
		Prompt:  appConfig.REPL.Prompt,
		ShowAST: showAST || appConfig.REPL.ShowAST,
	})
	return session.Run()
}
