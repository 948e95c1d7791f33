package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommandStructure(t *testing.T) {
	assert.Equal(t, "build", buildCmd.Use)
	assert.NotEmpty(t, buildCmd.Short)
	assert.Contains(t, buildCmd.Long, "Example:")
	assert.NotNil(t, buildCmd.RunE)
	assert.NotNil(t, buildCmd.Flags().Lookup("dir"))
	assert.NotNil(t, buildCmd.Flags().Lookup("json"))
}

func TestRunBuild_MissingProfile(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "nope.yaml")
	profilePath = filepath.Join(dir, "absent.json")

	origDir := buildDir
	defer func() { buildDir = origDir }()
	buildDir = dir

	err := runBuild(buildCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}
