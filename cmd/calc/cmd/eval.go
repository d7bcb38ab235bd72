package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/internal/display"
)

var evalTree bool

var evalCmd = &cobra.Command{
	Use:   "eval <zeile>...",
	Short: "Wertet Zeilen aus und beendet sich",
	Long: `Wertet jedes Argument als eigene Zeile in einer gemeinsamen
Umgebung aus. Ohne Argumente werden die Zeilen von stdin gelesen.

Der Exit-Code ist 1, wenn mindestens eine Zeile fehlschlug.

Beispiele:
  calc eval "2+3*4"
  calc eval "int a = 5 ;" "a*x"`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&evalTree, "tree", false, "Syntaxbaum mit ausgeben")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("Rechner initialisieren", err)
		return err
	}

	lines := args
	if len(lines) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	printer := display.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), true)
	failed := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result, err := engine.Execute(line)
		if err != nil {
			printer.PrintError(err)
			failed++
			continue
		}
		printer.PrintResult(result)
		if evalTree && result.Expr != nil {
			printer.Println(printer.Tree(result.Expr))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d von %d Zeilen fehlgeschlagen", failed, len(lines))
	}
	return nil
}
