package cli

import (
	"bytes"
	"testing"

	"gphotos-admin/internal/cli/commands"
	"gphotos-admin/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Commands(t *testing.T) {
	m := New(commands.NewEnv())
	root := m.Root()

	for _, path := range [][]string{
		{"containers", "list"},
		{"c", "logs"},
		{"profiles", "config", "set"},
		{"p", "purge"},
		{"auth", "start"},
		{"cfg", "init"},
		{"locale", "extract"},
		{"browse"},
		{"dashboard"},
		{"tui"},
		{"serve"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotEqual(t, root, cmd, path)
	}

	for _, flag := range []string{"config", "server", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestManager_GlobalFlagsReachEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	env := commands.NewEnv()
	m := New(env)

	var out bytes.Buffer
	m.Root().SetOut(&out)
	err := m.Execute([]string{"--server", "http://nas.local:5000", "--log-level", "debug", "config", "show"})
	require.NoError(t, err)

	require.NotNil(t, env.Config)
	assert.Equal(t, "http://nas.local:5000", env.Config.Server.URL)
	assert.Equal(t, "debug", env.Config.Logging.Level)
	assert.NotNil(t, env.Client)
	assert.Contains(t, out.String(), "nas.local")
}

func TestManager_InvalidServerURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := New(commands.NewEnv())
	m.Root().SetOut(&bytes.Buffer{})

	err := m.Execute([]string{"--server", "ftp://nas", "containers", "list"})
	assert.True(t, errors.HasCode(err, errors.ErrConfigInvalid))
}

func TestManager_VersionSkipsConfig(t *testing.T) {
	env := commands.NewEnv()
	env.ConfigPath = "/nonexistent/config.toml"
	m := New(env)

	var out bytes.Buffer
	m.Root().SetOut(&out)
	require.NoError(t, m.Execute([]string{"version"}))
	assert.Contains(t, out.String(), "gphotos-admin")
	assert.Nil(t, env.Config)
}
