package rest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrest/go-client/pkg/rest"
)

func TestJSONDeserializer(t *testing.T) {
	t.Parallel()
	d := rest.JSONDeserializer[testStruct]{}
	assert.Equal(t, "application/json", d.AcceptHeader())

	out, err := d.Deserialize([]byte(`{"foo":"bar"}`))
	require.NoError(t, err)
	v, ok := out.(*testStruct)
	require.True(t, ok)
	assert.Equal(t, "bar", v.Foo)

	_, err = d.Deserialize([]byte(`{broken`))
	assert.Error(t, err)
}

func TestVoidDeserializer(t *testing.T) {
	t.Parallel()
	d := rest.VoidDeserializer{}
	assert.Equal(t, "*/*", d.AcceptHeader())

	out, err := d.Deserialize(nil)
	assert.NoError(t, err)
	assert.Nil(t, out)

	_, err = d.Deserialize([]byte("unexpected"))
	assert.Error(t, err)
}

func TestRawDeserializer(t *testing.T) {
	t.Parallel()
	d := rest.RawDeserializer{}
	assert.Equal(t, "application/octet-stream", d.AcceptHeader())

	data := []byte{0xDE, 0xAD}
	out, err := d.Deserialize(data)
	assert.NoError(t, err)
	assert.Equal(t, data, out)
}
