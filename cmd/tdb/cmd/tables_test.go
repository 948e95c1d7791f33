package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesCommandStructure(t *testing.T) {
	assert.Equal(t, "tables", tablesCmd.Use)
	assert.NotEmpty(t, tablesCmd.Short)
	assert.NotNil(t, tablesCmd.RunE)
	assert.NotNil(t, tablesCmd.Flags().Lookup("json"))
}
