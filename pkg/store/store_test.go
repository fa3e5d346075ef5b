package store_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "settings/credentials/providers"

func stores(t *testing.T) map[string]store.Store {
	return map[string]store.Store{
		"file":   store.NewFile(t.TempDir()),
		"memory": store.NewMemory(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(key)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(key, []byte("openai:\n  apiKey: sk-x\n")))
			data, ok, err := s.Get(key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "openai:\n  apiKey: sk-x\n", string(data))

			require.NoError(t, s.Set(key, []byte("{}")))
			data, _, err = s.Get(key)
			require.NoError(t, err)
			assert.Equal(t, "{}", string(data))
		})
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, bad := range []string{"", "/abs", "a/../b", "a//b", "./a"} {
				err := s.Set(bad, []byte("x"))
				assert.True(t, errors.IsValidationError(err), "key %q", bad)
				_, _, err = s.Get(bad)
				assert.True(t, errors.IsValidationError(err), "key %q", bad)
			}
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	fs := store.NewFile(dir)
	require.NoError(t, fs.Set(key, []byte("x")))

	path := filepath.Join(dir, "settings", "credentials", "providers.yaml")
	assert.Equal(t, path, fs.Path(key))
	assert.Equal(t, dir, fs.Root())

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not linger")
}

func TestMemoryStoreCopies(t *testing.T) {
	m := store.NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'z'

	got, _, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'q'
	again, _, _ := m.Get("k")
	assert.Equal(t, "abc", string(again))

	assert.Equal(t, 1, m.Len())
	m.Delete("k")
	assert.Equal(t, 0, m.Len())
}
