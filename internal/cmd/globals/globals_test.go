package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	AddFlags(root)

	var got *Flags
	child := &cobra.Command{Use: "child", Run: func(cmd *cobra.Command, _ []string) {
		got = Parse(cmd)
	}}
	root.AddCommand(child)
	root.SetArgs([]string{"child", "-o", "json", "--verbose", "--locale", "ja"})
	require.NoError(t, root.Execute())

	assert.Equal(t, &Flags{Format: "json", Verbose: true, Locale: "ja"}, got)
}

func TestAddResourceFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	flags := AddResourceFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--search", "open", "-l", "3", "--configured"}))

	assert.Equal(t, &ResourceFlags{Search: "open", Limit: 3, Configured: true}, flags)
}
