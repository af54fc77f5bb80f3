// Gatecon is the configuration console for GateWave radio gateway
// appliances.
//
// It talks to the appliance's CGI control plane over HTTP: reading a
// section's configuration, editing it in an interactive console or through
// direct commands, and applying changes back. Appliances on the local
// network can be located with mDNS discovery.
//
// Usage:
//
//	gatecon [command] [flags]
//
// Running without arguments launches the interactive console.
// See 'gatecon --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatewave/gatecon/internal/logging"
	"github.com/gatewave/gatecon/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gatecon",
	Short: "GateWave Appliance Configuration Console",
	Long: `A terminal console for configuring GateWave radio gateway appliances.

Provides mDNS appliance discovery, an interactive full-screen console, and
direct commands for the wireless, wired, modem and device-daemon sections.

If no command is specified, the interactive console will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the console when no subcommand provided
		return runConsole(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gatecon %s (commit: %s)\n", version.Version, version.Commit)
	},
}
