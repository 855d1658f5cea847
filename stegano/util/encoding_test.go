package util
import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBits( t *testing.T ) {
	bits := ToBits( []byte("HI") )
	// 'H' = 0x48, 'I' = 0x49
	assert.Equal(t, []byte{ 0, 1, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1 }, bits)
	assert.Empty(t, ToBits( nil ))
}

func TestFromBits( t *testing.T ) {
	tests := [][]byte{
		nil,
		[]byte{},
		[]byte("Hello world"),
		[]byte{ 0x00, 0xff, 0x80, 0x01 },
	}
	for _, data := range tests {
		decoded, err := FromBits( ToBits( data ) )
		require.NoError(t, err)
		assert.Equal(t, len(data), len(decoded))
		if len(data) > 0 {
			assert.Equal(t, data, decoded)
		}
	}

	_, err := FromBits( []byte{ 1, 0, 1 } )
	assert.True(t, errors.Is( err, ErrMalformedBits ))
}

func TestHeaderByte( t *testing.T ) {
	h, err := HeaderByte( 5 )
	require.NoError(t, err)
	assert.Equal(t, []byte{ 0, 0, 0, 0, 0, 1, 0, 1 }, h)

	h, err = HeaderByte( 255 )
	require.NoError(t, err)
	assert.Equal(t, []byte{ 1, 1, 1, 1, 1, 1, 1, 1 }, h)

	for _, n := range []int{ -1, 256, 1000 } {
		_, err = HeaderByte( n )
		assert.True(t, errors.Is( err, ErrCapacityExceeded ), "value %d", n)
	}
}

func TestUint32Header( t *testing.T ) {
	for _, n := range []uint32{ 0, 1, 255, 65536, 0xdeadbeef } {
		v, err := Uint32FromBits( HeaderUint32( n ) )
		require.NoError(t, err)
		assert.Equal(t, n, v)
	}
	_, err := Uint32FromBits( make( []byte, 31 ) )
	assert.True(t, errors.Is( err, ErrMalformedBits ))
}

func TestKindAndCapacity( t *testing.T ) {
	wrapped := errors.New( "plain" )
	assert.Nil(t, Kind( wrapped ))

	res := Fail( errors.Join( ErrNoHiddenData, wrapped ) )
	assert.False(t, res.Status)
	assert.Equal(t, ErrNoHiddenData, res.Kind)

	c := Bounded( -4 )
	assert.Equal(t, 0, c.Chars)
	assert.True(t, c.Fits( 0 ))
	assert.False(t, c.Fits( 1 ))
	assert.True(t, Unbounded().Fits( 1<<30 ))
}
