// Package cmdtest runs cobra commands under a root carrying the global
// flags, capturing their output.
package cmdtest

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/cmd/globals"
)

// Result holds the captured output of a run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// Run executes cmd as a child of a fresh root with the given arguments.
// The command's GroupID is cleared so it can be attached to the bare root.
func Run(t testing.TB, cmd *cobra.Command, args ...string) Result {
	t.Helper()

	root := &cobra.Command{Use: "providerhub", SilenceUsage: true, SilenceErrors: true}
	globals.AddFlags(root)
	cmd.GroupID = ""
	root.AddCommand(cmd)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.ExecuteContext(context.Background())
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
