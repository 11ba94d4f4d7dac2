package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eventbox/internal/core/domain"
)

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
	assert.Contains(t, serveCmd.Long, "/metrics")
}

func TestRefreshSchedule(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.ServeMode
		schedule string
		expected string
	}{
		{name: "live without schedule", mode: domain.ServeModeLive, expected: ""},
		{name: "live with schedule", mode: domain.ServeModeLive, schedule: "0 * * * *", expected: "0 * * * *"},
		{name: "cached without schedule", mode: domain.ServeModeCached, expected: defaultCachedSchedule},
		{name: "cached with schedule", mode: domain.ServeModeCached, schedule: "*/5 * * * *", expected: "*/5 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			s.Server.Mode = tt.mode
			s.Sync.Schedule = tt.schedule

			assert.Equal(t, tt.expected, refreshSchedule(s))
		})
	}
}

func TestServeCmd_NotConfigured(t *testing.T) {
	defer setupTestDeps(nil)()

	_, err := execute("serve")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestTUICmd_NotConfigured(t *testing.T) {
	defer setupTestDeps(nil)()

	_, err := execute("tui")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestMCPCmd_NotConfigured(t *testing.T) {
	defer setupTestDeps(nil)()

	_, err := execute("mcp")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestMCPCmd_Flags(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}
