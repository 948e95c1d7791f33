package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitCommandStructure(t *testing.T) {
	assert.Equal(t, "init", initCmd.Use)
	assert.NotEmpty(t, initCmd.Short)
	assert.Contains(t, initCmd.Long, "Example:")
	assert.NotNil(t, initCmd.RunE)
	assert.NotNil(t, initCmd.Flags().Lookup("json"))
}
