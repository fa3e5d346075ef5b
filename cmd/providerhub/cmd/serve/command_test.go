package serve

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/cmd/cmdtest"
	"github.com/agentstation/providerhub/pkg/errors"
)

func parse(t *testing.T, app appcontext.Interface, args ...string) error {
	t.Helper()
	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags(args))
	_, err := configFromFlags(cmd, app)
	return err
}

func TestConfigFromAppDefaults(t *testing.T) {
	app := &appcontext.Mock{Addr: "0.0.0.0:9090", APIKey: "k", Origins: []string{"https://a.example"}}
	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := configFromFlags(cmd, app)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "k", cfg.APIKey)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://a.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, "/api/v1", cfg.PathPrefix)
}

func TestConfigFlagsOverride(t *testing.T) {
	app := &appcontext.Mock{Addr: "0.0.0.0:9090", APIKey: "from-config"}
	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags([]string{
		"--host", "127.0.0.1", "-p", "3000", "--auth", "--api-key", "from-flag",
		"--rate-limit", "0", "--cache-ttl", "30s", "--prefix", "/v2",
	}))

	cfg, err := configFromFlags(cmd, app)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, "from-flag", cfg.APIKey)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "/v2", cfg.PathPrefix)
	assert.False(t, cfg.CORSEnabled)
}

func TestConfigValidation(t *testing.T) {
	app := &appcontext.Mock{Addr: "localhost:8080"}

	err := parse(t, app, "--auth")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	err = parse(t, app, "--port", "70000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestServeRejectsAuthWithoutKey(t *testing.T) {
	app, _ := cmdtest.NewApp(t)
	app.Addr = "127.0.0.1:0"

	res := cmdtest.Run(t, NewCommand(app), "--auth")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "api-key")
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestRunServesUntilCancelled(t *testing.T) {
	app, _ := cmdtest.NewApp(t)
	port := freePort(t)
	app.Addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	cmd := NewCommand(app)
	require.NoError(t, cmd.ParseFlags([]string{"--rate-limit", "0"}))
	cfg, err := configFromFlags(cmd, app)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, app, cfg, true) }()

	url := "http://" + app.Addr + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
