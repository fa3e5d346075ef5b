// Package models implements the models command.
package models

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/alerts"
	"github.com/agentstation/providerhub/internal/cmd/globals"
	"github.com/agentstation/providerhub/internal/cmd/output"
	"github.com/agentstation/providerhub/internal/matcher"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/registry"
)

// NewCommand creates the models command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		flags   *globals.ResourceFlags
		noFetch bool
	)

	cmd := &cobra.Command{
		Use:     "models",
		GroupID: "core",
		Short:   "List the models of all configured providers",
		Long: `Models loads the model lists of every configured provider, one provider
after another, and prints the combined result. Providers whose fetch fails
are reported on stderr and keep whatever models they had before.`,
		Aliases: []string{"model", "m"},
		Args:    cobra.NoArgs,
		Example: `  providerhub models                   # Load and list all models
  providerhub models --search llama    # Filter by id or name
  providerhub models --search '/^gpt-4/'  # Regular expression
  providerhub models -o wide           # Include descriptions`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}

			gf := globals.Parse(cmd)
			if !noFetch {
				if err := reg.LoadModelsForConfiguredProviders(cmd.Context()); err != nil {
					return err
				}
				reportFailures(alerts.NewWriter(cmd.ErrOrStderr(), gf.Quiet), reg)
			}

			models, err := filter(reg.AllAvailableModels(), flags)
			if err != nil {
				return err
			}
			app.Logger().Debug().Int("models", len(models)).Msg("listing models")

			format := output.DetectFormat(gf.Format)
			var data any = models
			if format.IsTable() {
				data = output.ModelsTable(models, format == output.FormatWide)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}

	flags = globals.AddResourceFlags(cmd)
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "List models already loaded without fetching")
	return cmd
}

// reportFailures writes one alert per provider whose last fetch failed.
func reportFailures(w *alerts.Writer, reg *registry.Registry) {
	for _, id := range reg.AvailableProviders() {
		if msg, failed := reg.LastError(id); failed {
			w.Write(alerts.New(alerts.LevelWarning, "could not load models for %s", id).WithDetails(msg))
		}
	}
}

func filter(models []catalogs.ModelInfo, flags *globals.ResourceFlags) ([]catalogs.ModelInfo, error) {
	m, err := matcher.New(flags.Search)
	if err != nil {
		return nil, err
	}
	out := make([]catalogs.ModelInfo, 0, len(models))
	for _, model := range models {
		if m.MatchAny(model.ID, model.Name) {
			out = append(out, model)
		}
	}
	if flags.Limit > 0 && len(out) > flags.Limit {
		out = out[:flags.Limit]
	}
	return out, nil
}
