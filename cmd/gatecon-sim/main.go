// Gatecon-sim is an appliance simulator for developing against gatecon
// without hardware.
//
// It serves the same CGI control plane as a real gateway appliance
// (GET /cgi-bin/<section>/info, POST /cgi-bin/<section>/apply), answering
// each section in the payload shape that firmware generation actually uses,
// and broadcasts applied changes over a WebSocket event feed at /events.
//
// Usage:
//
//	gatecon-sim serve [flags]
//
// See 'gatecon-sim serve --help' for available options.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gatewave/gatecon/internal/logging"
	"github.com/gatewave/gatecon/internal/sim"
	"github.com/gatewave/gatecon/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gatecon-sim",
	Short: "GateWave Appliance Simulator",
	Long: `A standalone simulator of the GateWave appliance's CGI control plane.

Each section answers its info endpoint in a different payload shape (plain
JSON, enveloped JSON, enveloped key=value text), so the console's full
normalization pipeline can be exercised without an appliance on the bench.

Note: for configuring real appliances, use the 'gatecon' console.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	listenAddr string
	logLevel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the appliance simulator",
	Long: `Start the simulator and serve the CGI control plane.

State is kept in memory and seeded with a plausible factory configuration;
every apply replaces the stored section wholesale and is broadcast on the
/events WebSocket feed.`,
	Example: `  # Start on the default port
  gatecon-sim serve

  # Custom listen address with verbose logging
  gatecon-sim serve --listen 127.0.0.1:8424 --log-level debug

  # Point the console at it
  gatecon --base-url http://127.0.0.1:8424/cgi-bin`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8424", "Listen address (host:port)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()
	log := logging.GetLogger()

	srv := sim.New(log)
	defer srv.Close()

	log.Info("simulator listening",
		zap.String("addr", listenAddr),
		zap.String("base_url", "http://"+displayAddr(listenAddr)+"/cgi-bin"))

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: srv.Handler(),
	}
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("simulator stopped: %w", err)
	}
	return nil
}

// displayAddr makes a bare ":port" listen address printable as a URL host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gatecon-sim %s (commit: %s)\n", version.Version, version.Commit)
	},
}
