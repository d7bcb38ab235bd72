package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/pkg/core/config"
)

var (
	configFormat      string
	configCheckFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Konfiguration anzeigen",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Zeigt die wirksame Konfiguration",
	Long: `Zeigt die wirksame Konfiguration nach Datei, Umgebungsvariablen
(CALC_*) und Defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if src := appConfig.Source(); src != "" {
			fmt.Fprintf(out, "# Quelle: %s\n", src)
		} else {
			fmt.Fprintln(out, "# Quelle: Defaults")
		}
		return appConfig.Encode(out, configFormat)
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check [datei]",
	Short: "Prüft eine Konfigurationsdatei",
	Long: `Prüft eine Konfiguration im TOML- oder YAML-Format. Ohne Datei
oder mit "-" wird von der Standardeingabe gelesen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			content []byte
			err     error
		)
		if len(args) == 0 || args[0] == "-" {
			content, err = io.ReadAll(cmd.InOrStdin())
		} else {
			content, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}

		cfg, err := config.Parse(string(content), configCheckFormat)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Konfiguration gültig: %d Konstante(n)\n", len(cfg.Constants))
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Ausgabeformat (toml, yaml)")
	configCheckCmd.Flags().StringVar(&configCheckFormat, "format", "toml", "Eingabeformat (toml, yaml)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
