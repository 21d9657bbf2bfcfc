package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for relatorio.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relatorio",
		Short: "Command-line client for maintenance reports",
		Long: `relatorio is a command-line client for the maintenance report application.

It derives the report status from progress and attached images exactly as
the report form does, fills the equipment list of a location, and submits
progress updates with photos.

Session cookies and CSRF tokens are read from the configuration file
(see "relatorio init"); relatorio never logs in on its own.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .relatorio in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewEquipmentCmd())
	cmd.AddCommand(NewUpdateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
