package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudo_FloatsInUnitInterval(t *testing.T) {
	src := NewPseudo()

	floats, err := src.Floats(10000)
	require.NoError(t, err)
	require.Len(t, floats, 10000)

	for _, f := range floats {
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestSeeded_Reproducible(t *testing.T) {
	a, err := NewSeeded(42).Floats(100)
	require.NoError(t, err)
	b, err := NewSeeded(42).Floats(100)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeeded(43).Floats(100)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestPseudo_Bytes(t *testing.T) {
	data, err := NewSeeded(1).Bytes(256)
	require.NoError(t, err)
	require.Len(t, data, 256)

	// 256 seeded random bytes collapsing to one value would be astonishing
	distinct := map[byte]bool{}
	for _, b := range data {
		distinct[b] = true
	}
	assert.Greater(t, len(distinct), 10)
}

func TestFloatsFromBytes_KnownWords(t *testing.T) {
	src := &fixedSource{data: []byte{
		0x00, 0x00, 0x00, 0x00, // 0
		0x80, 0x00, 0x00, 0x00, // 2^31
		0xFF, 0xFF, 0xFF, 0xFF, // 2^32 - 1
	}}

	floats, err := FloatsFromBytes(src, 3)
	require.NoError(t, err)

	assert.Equal(t, 0.0, floats[0])
	assert.Equal(t, 0.5, floats[1])
	assert.Less(t, floats[2], 1.0)
	assert.Greater(t, floats[2], 0.9999)
}

func TestFloatsFromBytes_Zero(t *testing.T) {
	floats, err := FloatsFromBytes(&fixedSource{}, 0)
	require.NoError(t, err)
	assert.Nil(t, floats)
}

func TestGet_FallsBackToPseudo(t *testing.T) {
	assert.Equal(t, "pseudo", Get("pseudo").Name())
	assert.Equal(t, "anu", Get("anu").Name())
	assert.Equal(t, "pseudo", Get("nonsense").Name())
	assert.Equal(t, "pseudo", Get("").Name())
}

func TestAvailable(t *testing.T) {
	infos := Available()
	require.Len(t, infos, 2)
	assert.Equal(t, "pseudo", infos[0].Name)
	assert.Equal(t, "anu", infos[1].Name)
}

// fixedSource replays a canned byte sequence
type fixedSource struct {
	data []byte
}

func (s *fixedSource) Name() string        { return "fixed" }
func (s *fixedSource) Description() string { return "canned bytes" }

func (s *fixedSource) Bytes(n int) ([]byte, error) {
	return s.data[:n], nil
}

func (s *fixedSource) Floats(n int) ([]float64, error) {
	return FloatsFromBytes(s, n)
}
