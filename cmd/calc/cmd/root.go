package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/foundation/calc"
	mdwlog "github.com/msto63/calc/foundation/core/log"
	"github.com/msto63/calc/pkg/core/config"
	"github.com/msto63/calc/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logger    *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "calc - Interaktiver Rechner",
	Long: `calc ist ein kleiner interaktiver Rechner.

Ausdrücke werden am linkesten Operator geteilt, es gibt keine
Operatorrangfolge: 2+3*4 ergibt 14, 2*3+4 ergibt 14.

Variablen werden mit <typ> <name> = <ausdruck> ; deklariert
und sind danach unveränderlich. Vorbelegt sind x = 23 und pi.

Ohne Unterbefehl startet die REPL.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runREPL,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	addREPLFlags(rootCmd)
}

// setup loads the configuration and builds the process logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv(cfgFile)
	if err != nil {
		return fmt.Errorf("Konfiguration laden: %w", err)
	}
	appConfig = cfg

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	logger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       level,
		Format:      cfg.General.LogFormat,
	})
	mdwlog.SetDefault(logger)

	logger.Debug("configuration loaded", mdwlog.Fields{"source": cfg.Source()})
	return nil
}

// newEngine builds an engine from the loaded configuration
func newEngine() (*calc.Engine, error) {
	return newEngineWithCache(nil)
}

func newEngineWithCache(pc calc.ParseCache) (*calc.Engine, error) {
	return calc.NewEngine(calc.Options{
		Logger:         logger,
		MaxInputLength: appConfig.General.MaxInputLength,
		Constants:      appConfig.ConstantValues(),
		ParseCache:     pc,
	})
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
