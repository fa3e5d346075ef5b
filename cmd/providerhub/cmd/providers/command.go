// Package providers implements the providers command.
package providers

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/globals"
	"github.com/agentstation/providerhub/internal/cmd/output"
	"github.com/agentstation/providerhub/internal/matcher"
	"github.com/agentstation/providerhub/internal/utils/ptr"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/registry"
)

// Detail is the single provider view.
type Detail struct {
	registry.ProviderMetadata `yaml:",inline"`
	Loading                   bool    `json:"loading" yaml:"loading"`
	LastError                 *string `json:"lastError" yaml:"last_error"`
	ModelCount                int     `json:"modelCount" yaml:"model_count"`
}

// NewCommand creates the providers command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.ResourceFlags

	cmd := &cobra.Command{
		Use:     "providers [provider-id]",
		GroupID: "core",
		Short:   "List catalog providers",
		Aliases: []string{"provider", "p"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  providerhub providers                      # List all providers
  providerhub providers --configured         # Only providers ready to use
  providerhub providers openai -o json       # Show one provider
  providerhub providers --search moon        # Search by id or name
  providerhub providers --search 'open*'     # Glob search`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showProvider(cmd, reg, catalogs.ProviderID(args[0]))
			}
			return listProviders(cmd, app, reg, flags)
		},
	}

	flags = globals.AddResourceFlags(cmd)
	cmd.AddCommand(newModelsCommand(app))
	return cmd
}

func listProviders(cmd *cobra.Command, app appcontext.Interface, reg *registry.Registry, flags *globals.ResourceFlags) error {
	all := reg.AllProvidersMetadata()
	m, err := matcher.New(flags.Search)
	if err != nil {
		return err
	}

	list := make([]registry.ProviderMetadata, 0, len(all))
	for _, meta := range all {
		if flags.Configured && !meta.Configured {
			continue
		}
		if !m.MatchAny(meta.ID.String(), meta.LocalizedName) {
			continue
		}
		list = append(list, meta)
	}
	if flags.Limit > 0 && len(list) > flags.Limit {
		list = list[:flags.Limit]
	}

	gf := globals.Parse(cmd)
	format := output.DetectFormat(gf.Format)
	app.Logger().Debug().Int("providers", len(list)).Msg("listing providers")

	var data any = list
	if format.IsTable() {
		data = output.ProvidersTable(list, format == output.FormatWide)
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}

func showProvider(cmd *cobra.Command, reg *registry.Registry, id catalogs.ProviderID) error {
	meta, err := reg.GetProviderMetadata(id)
	if err != nil {
		return err
	}
	meta.Configured = reg.IsConfigured(id)

	detail := Detail{
		ProviderMetadata: meta,
		Loading:          reg.IsLoading(id),
		ModelCount:       len(reg.ModelsForProvider(id)),
	}
	if msg, failed := reg.LastError(id); failed {
		detail.LastError = ptr.To(msg)
	}

	format := output.DetectFormat(globals.Parse(cmd).Format)
	var data any = detail
	if format.IsTable() {
		data = output.ProvidersTable([]registry.ProviderMetadata{meta}, true)
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}

// resolve checks id against the catalog.
func resolve(reg *registry.Registry, id string) (catalogs.ProviderID, error) {
	pid := catalogs.ProviderID(id)
	if !reg.Descriptors().Exists(pid) {
		return "", errors.NewNotFoundError("provider", id)
	}
	return pid, nil
}
