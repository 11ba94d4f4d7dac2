package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Metadata(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "release build", version: "1.4.2", want: "eventbox version 1.4.2"},
		{name: "development build", version: "dev", want: "eventbox version dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			version = tt.version
			defer func() { version = original }()

			out, err := execute("version")

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
