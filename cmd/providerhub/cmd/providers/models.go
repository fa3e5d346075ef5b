package providers

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/alerts"
	"github.com/agentstation/providerhub/internal/cmd/globals"
	"github.com/agentstation/providerhub/internal/cmd/output"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

func newModelsCommand(app appcontext.Interface) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "models <provider-id>",
		Short: "Fetch the models of one provider",
		Long: `Fetch resolves the models of a provider with its stored credentials:
through the provider API for dynamic providers, a dedicated endpoint for
manual ones, or the builtin list for hardcoded ones.

A failed fetch is reported and an empty list printed; --strict turns the
failure into a non-zero exit.`,
		Args: cobra.ExactArgs(1),
		Example: `  providerhub providers models openai
  providerhub providers models ollama -o json --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			id, err := resolve(reg, args[0])
			if err != nil {
				return err
			}
			if !reg.IsConfigured(id) {
				meta, _ := reg.GetProviderMetadata(id)
				return errors.NewValidationError("provider", id.String(),
					"not configured; set "+strings.Join(meta.RequiredFields, ", ")+" with 'providerhub credentials set'")
			}

			gf := globals.Parse(cmd)
			alert := alerts.NewWriter(cmd.ErrOrStderr(), gf.Quiet)

			models, fetchErr := reg.TryFetchModels(cmd.Context(), id)
			if fetchErr != nil {
				if strict {
					return fetchErr
				}
				msg, _ := reg.LastError(id)
				alert.Write(alerts.New(alerts.LevelError, "fetch failed for %s", id).WithDetails(msg))
			}

			return printModels(cmd, gf, models)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the fetch fails")
	return cmd
}

func printModels(cmd *cobra.Command, gf *globals.Flags, models []catalogs.ModelInfo) error {
	format := output.DetectFormat(gf.Format)
	var data any = models
	if format.IsTable() {
		data = output.ModelsTable(models, format == output.FormatWide)
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}
