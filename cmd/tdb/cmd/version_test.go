package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommandStructure(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotEmpty(t, versionCmd.Short)
	assert.NotNil(t, versionCmd.Run)
}

func TestRunVersion_Output(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	runVersion(versionCmd, nil)

	text := out.String()
	assert.Contains(t, text, "tdb version")
	assert.Contains(t, text, Version)
	assert.Contains(t, text, runtime.Version())
}
