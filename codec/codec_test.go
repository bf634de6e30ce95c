package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	type payload struct {
		Terms []string       `json:"terms"`
		Freq  map[string]int `json:"freq"`
	}
	in := payload{Terms: []string{"GO:0005524"}, Freq: map[string]int{"GO:0005524": 3, "count": 3}}

	for _, c := range []Codec{JSON{}, GoJSON{}, nil} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, c, in))

		var out payload
		require.NoError(t, Decode(&buf, c, &out))
		assert.Equal(t, in, out)
	}
}

func TestDecode_Invalid(t *testing.T) {
	var v map[string]int
	err := Decode(bytes.NewReader([]byte("{")), GoJSON{}, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "go-json")
}
