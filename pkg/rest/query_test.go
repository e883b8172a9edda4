package rest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typedrest/go-client/pkg/rest"
)

func TestQueryFromMap(t *testing.T) {
	t.Parallel()
	out, err := rest.QueryFromMap(map[string]any{
		"str":   "value",
		"int":   42,
		"bool":  true,
		"slice": []string{"a", "b"},
		"map":   map[string]int{"limit": 10},
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"str":        "value",
		"int":        "42",
		"bool":       "true",
		"slice[0]":   "a",
		"slice[1]":   "b",
		"map[limit]": "10",
	}, out)
}

func TestQueryFromMapEmpty(t *testing.T) {
	t.Parallel()
	out, err := rest.QueryFromMap(nil)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestQueryFromMapUncastableValue(t *testing.T) {
	t.Parallel()
	_, err := rest.QueryFromMap(map[string]any{"bad": struct{ X int }{X: 1}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)

	_, err = rest.QueryFromMap(map[string]any{"bad": []any{struct{ X int }{X: 1}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"bad[0]"`)
}
