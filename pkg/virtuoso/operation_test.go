package virtuoso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationKinds(t *testing.T) {
	for _, op := range ReadOperations {
		assert.True(t, op.IsRead(), op.String())
		assert.True(t, op.Valid(), op.String())
	}
	for _, op := range WriteOperations {
		assert.False(t, op.IsRead(), op.String())
		assert.True(t, op.Valid(), op.String())
	}

	assert.Len(t, ReadOperations, 5)
	assert.Len(t, WriteOperations, 8)
	assert.False(t, Operation(-1).Valid())
	assert.Equal(t, "Operation(42)", Operation(42).String())
}

func TestParseOperation(t *testing.T) {
	names := map[string]Operation{
		"query":       Query,
		"select":      Select,
		"ask":         Ask,
		"construct":   Construct,
		"describe":    Describe,
		"insert":      Insert,
		"insert_data": InsertData,
		"update":      Update,
		"delete":      Delete,
		"delete_data": DeleteData,
		"create":      Create,
		"drop":        Drop,
		"clear":       Clear,
		" SELECT ":    Select,
	}

	for name, want := range names {
		got, err := ParseOperation(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseOperation("load")
	assert.Error(t, err)
}

func TestParamsMerge(t *testing.T) {
	base := map[string]string{"query": "q", "format": "json"}

	assert.Equal(t, base, Params(nil).merge(base))

	merged := Params{"format": "xml", "default-graph-uri": "urn:g"}.merge(base)
	assert.Equal(t, map[string]string{"query": "q", "format": "xml", "default-graph-uri": "urn:g"}, merged)
	assert.Equal(t, "json", base["format"], "base is not modified")
}
