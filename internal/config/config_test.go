package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Values(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Equal(t, 15, c.MaxGatesPerLeg)
	assert.Equal(t, 50, c.DirectMaxJumps)
	assert.Equal(t, 5, c.MaxResults)
	assert.Equal(t, []string{"Scalding Pass", "Wicked Creek", "Insmother"}, c.HomeRegions)
	assert.True(t, c.UseJumpbridges)
	assert.NoError(t, c.Validate())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drifter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesSubset(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
max_gates_per_leg: 20
home_regions:
  - Scalding Pass
use_jumpbridges: false
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.ListenAddr)
	assert.Equal(t, 20, c.MaxGatesPerLeg)
	assert.Equal(t, []string{"Scalding Pass"}, c.HomeRegions)
	assert.False(t, c.UseJumpbridges)
	// untouched fields keep defaults
	assert.Equal(t, 50, c.DirectMaxJumps)
	assert.Equal(t, "sde_data", c.DataDir)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "max_results: [1"},
		{"gate budget", "max_gates_per_leg: 0"},
		{"direct budget", "direct_max_jumps: 500"},
		{"results", "max_results: -1"},
		{"duplicate region", "home_regions: [Insmother, insmother]"},
		{"empty data dir", "data_dir: ' '"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
