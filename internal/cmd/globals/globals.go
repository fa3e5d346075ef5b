// Package globals provides shared flag structures for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds the persistent flags of the root command.
type Flags struct {
	Format  string
	Quiet   bool
	Verbose bool
	NoColor bool
	Locale  string
}

// Parse reads the persistent flags from the command hierarchy.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd.Root()
	format, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	locale, _ := root.PersistentFlags().GetString("locale")

	return &Flags{
		Format:  format,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
		Locale:  locale,
	}
}

// AddFlags registers the persistent flags Parse reads on a root command.
func AddFlags(root *cobra.Command) *Flags {
	flags := &Flags{}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Format, "format", "o", "", "output format: table, json, yaml, wide")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	pf.StringVar(&flags.Locale, "locale", "", "display locale, e.g. en, zh-Hans, ja")
	return flags
}
