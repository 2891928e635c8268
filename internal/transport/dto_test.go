package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPayload_Presence(t *testing.T) {
	t.Parallel()

	var p ProductPayload
	require.NoError(t, json.Unmarshal([]byte(`{"stock":5,"title":null}`), &p))

	assert.True(t, p.Stock.Set)
	assert.JSONEq(t, `5`, string(p.Stock.Raw))
	assert.False(t, p.Stock.IsNull())

	assert.True(t, p.Title.Set)
	assert.True(t, p.Title.IsNull())

	assert.False(t, p.Code.Set)
	assert.False(t, p.Code.IsNull())
}

func TestValue(t *testing.T) {
	t.Parallel()

	f := Value([]string{"a", "b"})
	assert.True(t, f.Set)
	assert.JSONEq(t, `["a","b"]`, string(f.Raw))
}
