package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/cmdtest"
)

func TestVersionText(t *testing.T) {
	res := cmdtest.Run(t, NewCommand(&appcontext.Mock{VersionStr: "1.2.3"}))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "providerhub version 1.2.3\n")
	assert.Contains(t, res.Stdout, "built by: test\n")
	assert.Contains(t, res.Stdout, "platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionJSON(t *testing.T) {
	res := cmdtest.Run(t, NewCommand(&appcontext.Mock{}), "-o", "json")
	require.NoError(t, res.Err)

	var info Info
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
