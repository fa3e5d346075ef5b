// Package credentials implements the credentials command.
package credentials

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/alerts"
	"github.com/agentstation/providerhub/internal/cmd/globals"
	"github.com/agentstation/providerhub/internal/cmd/output"
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/registry"
)

// View is the credentials of one provider as printed by show.
type View struct {
	Provider    catalogs.ProviderID  `json:"provider" yaml:"provider"`
	Configured  bool                 `json:"configured" yaml:"configured"`
	Credentials catalogs.Credentials `json:"credentials" yaml:"credentials"`
}

// NewCommand creates the credentials command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		GroupID: "management",
		Short:   "Manage provider credentials",
		Aliases: []string{"creds", "cred"},
	}

	cmd.AddCommand(
		newSetCommand(app),
		newUnsetCommand(app),
		newShowCommand(app),
		newResetCommand(app),
	)
	return cmd
}

func newSetCommand(app appcontext.Interface) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "set <provider-id> <key=value>...",
		Short: "Set credential fields of a provider",
		Long: `Set merges the given fields into the stored credentials of a provider.
With --replace the stored credentials are replaced as a whole, dropping
fields that are not given, including the default base URL.`,
		Args: cobra.MinimumNArgs(2),
		Example: `  providerhub credentials set openai apiKey=sk-...
  providerhub credentials set ollama baseUrl=http://gpu-box:11434
  providerhub credentials set cloudflare apiKey=... accountId=... --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, id, err := lookup(app, args[0])
			if err != nil {
				return err
			}
			creds, err := parsePairs(args[1:])
			if err != nil {
				return err
			}

			if replace {
				err = reg.SetCredentials(id, creds)
			} else {
				err = reg.UpdateCredentials(id, creds)
			}
			if err != nil {
				return err
			}
			return report(cmd, reg, id, "credentials saved for %s")
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace stored credentials instead of merging")
	return cmd
}

func newUnsetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "unset <provider-id> <key>...",
		Short:   "Remove credential fields of a provider",
		Args:    cobra.MinimumNArgs(2),
		Example: `  providerhub credentials unset openai apiKey`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, id, err := lookup(app, args[0])
			if err != nil {
				return err
			}
			patch := catalogs.Credentials{}
			for _, key := range args[1:] {
				patch[key] = nil
			}
			if err := reg.UpdateCredentials(id, patch); err != nil {
				return err
			}
			return report(cmd, reg, id, "credentials updated for %s")
		},
	}
}

func newShowCommand(app appcontext.Interface) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <provider-id>",
		Short: "Show the stored credentials of a provider",
		Long:  "Show prints the stored credentials of a provider. Secrets are masked unless --reveal is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, id, err := lookup(app, args[0])
			if err != nil {
				return err
			}

			creds, _ := reg.Credentials(id)
			if creds == nil {
				creds = catalogs.Credentials{}
			}
			view := View{Provider: id, Configured: reg.IsConfigured(id), Credentials: creds}
			if !reveal {
				view.Credentials = creds.Masked()
			}

			gf := globals.Parse(cmd)
			format := output.DetectFormat(gf.Format)
			if !format.IsTable() {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), view)
			}

			table := output.CredentialsTable(creds)
			if reveal {
				table = revealed(view.Credentials)
			}
			if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), table); err != nil {
				return err
			}
			status(alerts.NewWriter(cmd.ErrOrStderr(), gf.Quiet), reg, id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print secrets in clear text")
	return cmd
}

func newResetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <provider-id>",
		Short: "Reset the credentials of a provider to its defaults",
		Long: `Reset drops every stored credential of a provider except the default
base URL, and forgets the models fetched with the old credentials.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, id, err := lookup(app, args[0])
			if err != nil {
				return err
			}
			if err := reg.ResetCredentials(id); err != nil {
				return err
			}
			return report(cmd, reg, id, "credentials reset for %s")
		},
	}
}

func lookup(app appcontext.Interface, arg string) (*registry.Registry, catalogs.ProviderID, error) {
	reg, err := app.Registry()
	if err != nil {
		return nil, "", err
	}
	id := catalogs.ProviderID(arg)
	if !reg.Descriptors().Exists(id) {
		return nil, "", errors.NewNotFoundError("provider", arg)
	}
	return reg, id, nil
}

// parsePairs turns key=value arguments into credentials. Values stay
// strings; an empty value is stored as the empty string.
func parsePairs(pairs []string) (catalogs.Credentials, error) {
	creds := make(catalogs.Credentials, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewValidationError("credential", pair, "expected key=value")
		}
		creds[key] = value
	}
	return creds, nil
}

func report(cmd *cobra.Command, reg *registry.Registry, id catalogs.ProviderID, format string) error {
	w := alerts.NewWriter(cmd.ErrOrStderr(), globals.Parse(cmd).Quiet)
	w.Success(format, id)
	status(w, reg, id)
	return nil
}

// status tells whether id is ready to use and what is missing otherwise.
func status(w *alerts.Writer, reg *registry.Registry, id catalogs.ProviderID) {
	if reg.IsConfigured(id) {
		w.Info("%s is configured", id)
		return
	}

	desc, _ := reg.Descriptors().Get(id)
	creds, _ := reg.Credentials(id)
	var missing []string
	for _, field := range desc.RequiredFields {
		if !creds.Has(field) {
			missing = append(missing, field)
		}
	}
	a := alerts.New(alerts.LevelWarning, "%s is not configured", id)
	if len(missing) > 0 {
		a.WithDetails("missing: " + strings.Join(missing, ", "))
	}
	w.Write(a)
}

func revealed(creds catalogs.Credentials) output.Data {
	table := output.CredentialsTable(catalogs.Credentials{})
	for _, k := range slices.Sorted(maps.Keys(creds)) {
		table.Rows = append(table.Rows, []string{k, fmt.Sprint(creds[k])})
	}
	return table
}
