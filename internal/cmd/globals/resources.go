package globals

import "github.com/spf13/cobra"

// ResourceFlags holds list filtering flags.
type ResourceFlags struct {
	Search     string
	Limit      int
	Configured bool
}

// AddResourceFlags adds list filtering flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Search term to filter results by id or name")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().BoolVar(&flags.Configured, "configured", false,
		"Only include configured providers")

	return flags
}
