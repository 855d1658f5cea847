package audio
import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

// builds a 16 bit mono wav with an odd sized LIST chunk in front of the data.
func makeWave( samples []byte ) []byte {
	body := new( bytes.Buffer )
	body.WriteString( WaveMagic )

	body.WriteString( FmtChunk )
	binary.Write( body, binary.LittleEndian, uint32(16) )
	binary.Write( body, binary.LittleEndian, uint16(1) )	// pcm
	binary.Write( body, binary.LittleEndian, uint16(1) )	// mono
	binary.Write( body, binary.LittleEndian, uint32(8000) )	// rate
	binary.Write( body, binary.LittleEndian, uint32(16000) ) // byte rate
	binary.Write( body, binary.LittleEndian, uint16(2) )	// block align
	binary.Write( body, binary.LittleEndian, uint16(16) )	// bits

	body.WriteString( "LIST" )
	binary.Write( body, binary.LittleEndian, uint32(3) )
	body.Write( []byte("abc\x00") )

	body.WriteString( DataChunk )
	binary.Write( body, binary.LittleEndian, uint32(len(samples)) )
	body.Write( samples )
	if len(samples)%2 == 1 {
		body.WriteByte( 0 )
	}

	out := new( bytes.Buffer )
	out.WriteString( RiffMagic )
	binary.Write( out, binary.LittleEndian, uint32(body.Len()) )
	out.Write( body.Bytes() )
	return out.Bytes()
}

func randomSamples( n int, seed int64 ) []byte {
	r := rand.New( rand.NewSource( seed ) )
	samples := make( []byte, n )
	r.Read( samples )
	return samples
}

func TestParseWave( t *testing.T ) {
	samples := randomSamples( 100, 1 )
	wv, err := ParseWave( makeWave( samples ) )
	require.NoError(t, err)

	assert.Equal(t, uint16(1), wv.Channels)
	assert.Equal(t, uint32(8000), wv.SampleRate)
	assert.Equal(t, uint16(16), wv.BitsPerSample)
	assert.Equal(t, samples, wv.Samples())
	assert.Equal(t, makeWave( samples ), wv.Bytes())

	for _, bad := range [][]byte{ nil, []byte("RIFF"), []byte("RIFF\x00\x00\x00\x00WAVX"), bytes.Repeat( []byte{ 1 }, 64 ) } {
		_, err := ParseWave( bad )
		assert.True(t, errors.Is( err, util.ErrUnsupportedMedium ))
	}
}

func TestWAV( t *testing.T ) {
	// 8000 raw bytes carry 1000 characters
	samples := randomSamples( 8000, 2 )
	wv, err := ParseWave( makeWave( samples ) )
	require.NoError(t, err)
	assert.Equal(t, 1000, WavCapacity( wv ))

	tests := []string{
		"HI",
		"",
		`
HELLO WORLD
HALOWEEN
BINARY WORLD: a lot of strange digits.
		`,
		strings.Repeat( "a", 999 ),
		strings.Repeat( "A", 1000 ),
		"unicode is fine too: привет",
	}

	for _, message := range tests {
		encoded, err := HideInWav( wv, message )
		require.NoError(t, err)

		assert.Equal(t, wv.WaveFmt, encoded.WaveFmt)
		assert.Equal(t, len(samples), len(encoded.Samples()))
		assert.Equal(t, message, RevealFromWav( encoded ))

		// only the least significant bits move
		for i, b := range encoded.Samples() {
			assert.Equal(t, samples[i]&0xfe, b&0xfe)
		}

		// and it survives serialization
		reparsed, err := ParseWave( encoded.Bytes() )
		require.NoError(t, err)
		assert.Equal(t, message, RevealFromWav( reparsed ))
	}

	// the cover was never touched
	assert.Equal(t, samples, wv.Samples())
}

func TestWAVCapacityExceeded( t *testing.T ) {
	wv, err := ParseWave( makeWave( randomSamples( 8000, 3 ) ) )
	require.NoError(t, err)

	_, err = HideInWav( wv, strings.Repeat( "x", 1001 ) )
	assert.True(t, errors.Is( err, util.ErrCapacityExceeded ))
}

func TestWAVTrailingBytes( t *testing.T ) {
	samples := randomSamples( 8003, 4 )
	wv, err := ParseWave( makeWave( samples ) )
	require.NoError(t, err)
	assert.Equal(t, 1000, WavCapacity( wv ))

	encoded, err := HideInWav( wv, "tail" )
	require.NoError(t, err)
	assert.Equal(t, samples[8000:], encoded.Samples()[8000:])
	assert.Equal(t, "tail", RevealFromWav( encoded ))
}

func TestWAVEmptyAndMonotonic( t *testing.T ) {
	wv, err := ParseWave( makeWave( nil ) )
	require.NoError(t, err)
	assert.Equal(t, 0, WavCapacity( wv ))
	assert.Equal(t, "", RevealFromWav( wv ))
	assert.Equal(t, "", decodeFromLSB( nil ))

	last := 0
	for _, n := range []int{ 0, 7, 8, 100, 801, 4096, 8000 } {
		wv, err := ParseWave( makeWave( randomSamples( n, int64(n) ) ) )
		require.NoError(t, err)
		c := WavCapacity( wv )
		assert.GreaterOrEqual(t, c, last)
		assert.Equal(t, c, WavCapacity( wv ))
		last = c
	}
}

func TestWAVFiles( t *testing.T ) {
	dir := t.TempDir()
	input := filepath.Join( dir, "cover.wav" )
	output := filepath.Join( dir, "stego.wav" )
	require.NoError(t, os.WriteFile( input, makeWave( randomSamples( 4000, 5 ) ), 0600 ))

	capacity, err := WavFileCapacity( input )
	require.NoError(t, err)
	assert.Equal(t, 500, capacity)

	_, err = HideInWavFile( input, "meet at noon", output )
	require.NoError(t, err)

	revealed, err := RevealFromWavFile( output )
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", revealed)

	_, err = RevealFromWavFile( filepath.Join( dir, "missing.wav" ) )
	assert.Error(t, err)
}

func TestWAVKeepsContainer( t *testing.T ) {
	samples := randomSamples( 100, 6 )
	cover := append( makeWave( samples ), 1, 2, 3 )
	// a streamed file with an unknown riff size
	binary.LittleEndian.PutUint32( cover[4:8], 0xffffffff )

	wv, err := ParseWave( cover )
	require.NoError(t, err)
	assert.Equal(t, []string{ FmtChunk, "LIST", DataChunk }, wv.Chunks())

	encoded, err := HideInWav( wv, "ok" )
	require.NoError(t, err)
	out := encoded.Bytes()
	require.Len(t, out, len(cover))

	start := len(cover) - 3 - len(samples)
	assert.Equal(t, cover[:start], out[:start])
	assert.Equal(t, []byte{ 1, 2, 3 }, out[len(out)-3:])
	for i := start; i < start+len(samples); i++ {
		assert.Equal(t, cover[i]&0xfe, out[i]&0xfe)
	}
	assert.Equal(t, "ok", RevealFromWav( encoded ))
}

// the filler is indistinguishable from a message ending in '#'
func TestWAVTrailingHashIsFiller( t *testing.T ) {
	tests := []struct {
		samples	int
		message	string
		revealed	string
	}{
		{16, "C#", "C"},
		{24, "b#", "b"},
		{48, "ab#", "ab"},
		{80, "a#b", "a#b"},
		{24, "###", ""},
	}

	for _, tt := range tests {
		wv, err := ParseWave( makeWave( randomSamples( tt.samples, 7 ) ) )
		require.NoError(t, err)
		encoded, err := HideInWav( wv, tt.message )
		require.NoError(t, err)
		assert.Equal(t, tt.revealed, RevealFromWav( encoded ), tt.message)
	}
}
