package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"version", "list", "render", "sync", "serve", "tui", "mcp", "config"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetup_UsesBootstrap(t *testing.T) {
	defer setupTestDeps(nil)()
	oldBootstrap := bootstrap
	defer func() { bootstrap = oldBootstrap }()

	var gotDir string
	closed := false
	SetBootstrap(func(dir string) (*Dependencies, error) {
		gotDir = dir
		return &Dependencies{
			Events: &mockEventService{events: testEvents()},
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})
	defer func() { configDir = "" }()

	out, err := execute("--config-dir", "/tmp/eventbox-test", "list")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/eventbox-test", gotDir)
	assert.Contains(t, out, "Book club")
	assert.True(t, closed)
}

func TestSetup_BootstrapError(t *testing.T) {
	defer setupTestDeps(nil)()
	oldBootstrap := bootstrap
	defer func() { bootstrap = oldBootstrap }()

	SetBootstrap(func(string) (*Dependencies, error) {
		return nil, errors.New("open database: locked")
	})

	_, err := execute("list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestSetup_VersionSkipsBootstrap(t *testing.T) {
	defer setupTestDeps(nil)()
	oldBootstrap := bootstrap
	defer func() { bootstrap = oldBootstrap }()

	SetBootstrap(func(string) (*Dependencies, error) {
		return nil, errors.New("should not be called")
	})

	_, err := execute("version")

	assert.NoError(t, err)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "eventbox version 1.2.3")
}
