package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/calc/foundation/calc"
	"github.com/msto63/calc/internal/server"
	"github.com/msto63/calc/pkg/core/cache"
	"github.com/msto63/calc/pkg/core/logging"
	"github.com/msto63/calc/pkg/core/version"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den WebSocket-Server",
	Long: `Startet einen HTTP-Server mit Rechner-Sitzungen über WebSocket.

Endpunkte:
  /ws       - eine Sitzung pro Verbindung, eigene Variablen
  /healthz  - Health-Check

Nachrichten:
  {"type":"eval","payload":{"line":"2+3*4","tree":true}}
  {"type":"vars"}
  {"type":"ping"}`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (default aus Konfiguration)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port (default aus Konfiguration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := appConfig.Server
	cfg := server.Config{
		Host:           sc.Host,
		Port:           sc.Port,
		ReadTimeout:    sc.ReadTimeout.Duration,
		WriteTimeout:   sc.WriteTimeout.Duration,
		PingInterval:   sc.PingInterval.Duration,
		MaxSessions:    sc.MaxSessions,
		AllowedOrigins: sc.AllowedOrigins,
		Version:        version.Server,
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	// Servers log at info at least so the start is visible
	serverLogger := logger
	if !verbose && serverLogger.GetLevel() > logging.LevelInfo.Foundation() {
		serverLogger = serverLogger.WithLevel(logging.LevelInfo.Foundation())
	}
	log := logging.Wrap(serverLogger, "calc-server")

	// Sessions share parsed expressions; a negative size disables sharing
	var parseCache calc.ParseCache
	if sc.ParseCacheSize > 0 {
		parseCache = cache.New(cache.Config{MaxItems: sc.ParseCacheSize, TTL: 10 * time.Minute})
	}
	factory := func() (*calc.Engine, error) {
		return newEngineWithCache(parseCache)
	}

	srv := server.New(cfg, factory, log)
	srv.StartAsync()
	log.Info("calc server started", "address", srv.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		printError("Server stoppen", err)
		return err
	}
	return nil
}
