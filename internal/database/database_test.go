package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaStatements(t *testing.T) {
	stmts := statements(schemaSQL)
	require.Len(t, stmts, 4)

	tables := []string{"users", "products", "comentarios", "compras"}
	for i, table := range tables {
		assert.True(t, strings.HasPrefix(stmts[i], "CREATE TABLE IF NOT EXISTS "+table+" "), stmts[i])
	}
}

func TestStatementsSkipsBlankParts(t *testing.T) {
	stmts := statements("SELECT 1;\n\n  ;SELECT 2;")
	assert.Equal(t, []string{"SELECT 1", "SELECT 2"}, stmts)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "CREATE TABLE x (", firstLine("CREATE TABLE x (\n id INT\n)"))
	assert.Equal(t, "SELECT 1", firstLine("SELECT 1"))
}
