package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/cmd/globals"
	"github.com/agentstation/providerhub/internal/cmd/output"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "providerhub",
		Short:   "AI provider registry CLI",
		Version: a.version,
		Long: `Providerhub keeps track of AI model providers: which ones exist, which
credentials each needs, which of them are configured, and which models
they currently offer.

Credentials are stored in the data directory and can be seeded from
provider API key environment variables. Models are fetched live from
provider APIs, from dedicated endpoints, or from builtin lists.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.providerhub.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("providerhub {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand applies the parsed persistent flags before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := globals.Parse(cmd)
	if _, err := output.ParseFormat(flags.Format); err != nil {
		return err
	}

	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor,
		flags.Format, mustGetString(cmd, "log-level"), flags.Locale)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a flag defined on the root command. A missing
// flag is a programming error.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
