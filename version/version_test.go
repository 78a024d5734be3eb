package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	i := Info{Version: "v0.3.0", CommitHash: "abcdef123", BuildTime: "2024-03-01"}
	assert.Equal(t, "arbgen v0.3.0 (commit abcdef123, built 2024-03-01)", i.String())
	assert.Equal(t, "abcdef1", i.Short())

	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "unknown"}
	assert.True(t, strings.HasPrefix(dev.String(), "arbgen dev"))
	assert.Equal(t, "abc", dev.Short())
}

func TestGet(t *testing.T) {
	i := Get()
	assert.NotEmpty(t, i.GoVersion)
	assert.Contains(t, i.Platform, "/")
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		written, current string
		want             bool
	}{
		{"v1.2.3", "v1.9.0", true},
		{"v1.2.3", "v2.0.0", false},
		{"0.4.1", "v0.5.0", true},
		{"dev", "v3.0.0", true},
		{"v1.0.0", "dev", true},
	}
	for _, tt := range tests {
		t.Run(tt.written+"->"+tt.current, func(t *testing.T) {
			ok, err := Compatible(tt.written, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	_, err := Compatible("not-a-version", "v1.0.0")
	assert.Error(t, err)
}
