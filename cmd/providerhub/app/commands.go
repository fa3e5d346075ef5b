package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/cmd/providerhub/cmd/credentials"
	"github.com/agentstation/providerhub/cmd/providerhub/cmd/models"
	"github.com/agentstation/providerhub/cmd/providerhub/cmd/providers"
	"github.com/agentstation/providerhub/cmd/providerhub/cmd/serve"
	"github.com/agentstation/providerhub/cmd/providerhub/cmd/version"
)

// registerCommands wires the subcommands to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(providers.NewCommand(a))
	rootCmd.AddCommand(models.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(credentials.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}
