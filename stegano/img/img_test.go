package img
import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

func noiseImage( w, h int, seed int64 ) *image.NRGBA {
	r := rand.New( rand.NewSource( seed ) )
	img := image.NewNRGBA( image.Rect( 0, 0, w, h ) )
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA( x, y, color.NRGBA{ uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), 0xff } )
		}
	}
	return img
}

func encodePNG( t *testing.T, w, h int ) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode( buf, noiseImage( w, h, 1 ) ))
	return buf.Bytes()
}

func encodeBMP( t *testing.T, w, h int ) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, bmp.Encode( buf, noiseImage( w, h, 2 ) ))
	return buf.Bytes()
}

func encodeJPEG( t *testing.T, w, h int ) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode( buf, noiseImage( w, h, 3 ), &jpeg.Options{ Quality: 90 } ))
	return buf.Bytes()
}

func encodeGIF( t *testing.T, w, h int ) []byte {
	r := rand.New( rand.NewSource( 4 ) )
	frame := image.NewPaletted( image.Rect( 0, 0, w, h ), palette.Plan9 )
	for i := range frame.Pix {
		frame.Pix[i] = uint8( r.Intn( len(palette.Plan9) ) )
	}
	buf := new(bytes.Buffer)
	require.NoError(t, gif.EncodeAll( buf, &gif.GIF{ Image: []*image.Paletted{ frame }, Delay: []int{ 0 } } ))
	return buf.Bytes()
}

func TestDetectFormat( t *testing.T ) {
	assert.Equal(t, PNG, DetectFormat( encodePNG( t, 4, 4 ) ))
	assert.Equal(t, BMP, DetectFormat( encodeBMP( t, 4, 4 ) ))
	assert.Equal(t, JPEG, DetectFormat( encodeJPEG( t, 8, 8 ) ))
	assert.Equal(t, GIF, DetectFormat( encodeGIF( t, 4, 4 ) ))
	assert.Equal(t, UnknownFormat, DetectFormat( []byte("plain text") ))
	assert.Equal(t, UnknownFormat, DetectFormat( nil ))
}

func TestLosslessImages( t *testing.T ) {
	covers := map[string][]byte{
		"png": encodePNG( t, 128, 96 ),
		"bmp": encodeBMP( t, 128, 96 ),
		"gif": encodeGIF( t, 128, 96 ),
	}
	tests := []string{
		"",
		"Hello world!",
		"ünïcödé",
		strings.Repeat("a", 1000),
	}

	for name, cover := range covers {
		capacity, err := ImageCapacity( cover )
		require.NoError(t, err, name)
		assert.Greater(t, capacity, 1000, name)

		for _, message := range tests {
			enc, err := Hide( cover, message )
			require.NoError(t, err, name)
			assert.Equal(t, DetectFormat( cover ), DetectFormat( enc ), name)

			dec, err := Reveal( enc )
			require.NoError(t, err, name)
			assert.Equal(t, message, dec, name)
		}
	}
}

func TestLSBCapacity( t *testing.T ) {
	// 10x10 pixels, 3 channels: 300 bits minus the prefix
	cover := encodePNG( t, 10, 10 )
	capacity, err := ImageCapacity( cover )
	require.NoError(t, err)
	assert.Equal(t, 33, capacity)

	_, err = Hide( cover, strings.Repeat("x", 33) )
	require.NoError(t, err)
	_, err = Hide( cover, strings.Repeat("x", 34) )
	assert.True(t, errors.Is(err, util.ErrCapacityExceeded))

	assert.Equal(t, 0, lsbCapacity( RMode, image.Rect( 0, 0, 4, 4 ) ))
	assert.Equal(t, 2, lsbCapacity( RMode | GMode, image.Rect( 0, 0, 4, 6 ) ))
}

func TestLSBModes( t *testing.T ) {
	cover := noiseImage( 40, 40, 5 )
	for _, mode := range []uint8{ RMode, GMode, BMode, RMode | BMode, RMode | GMode | BMode } {
		enc, err := EncodeWithLSB( mode, []byte("mode test"), cover )
		require.NoError(t, err)
		dec, err := DecodeFromLSB( mode, enc )
		require.NoError(t, err)
		assert.Equal(t, []byte("mode test"), dec)
	}
}

func TestJPEG( t *testing.T ) {
	cover := encodeJPEG( t, 256, 256 )
	capacity, err := ImageCapacity( cover )
	require.NoError(t, err)
	require.Greater(t, capacity, 100)

	for _, message := range []string{ "Hello World!", "x", strings.Repeat("j", 100) } {
		enc, err := Hide( cover, message )
		require.NoError(t, err)
		assert.Equal(t, JPEG, DetectFormat( enc ))

		dec, err := Reveal( enc )
		require.NoError(t, err)
		assert.Equal(t, message, dec)
	}

	_, err = Hide( cover, strings.Repeat("j", capacity + 1) )
	assert.True(t, errors.Is(err, util.ErrCapacityExceeded))
}

func TestJPEGCapacity( t *testing.T ) {
	cover := encodeJPEG( t, 64, 64 )
	capacity, err := ImageCapacity( cover )
	require.NoError(t, err)

	// an empty hide reveals exactly the room there is
	img, err := jpeg.Decode( bytes.NewReader( cover ) )
	require.NoError(t, err)
	raw, err := rawJpegCapacity( img )
	require.NoError(t, err)
	assert.Equal(t, raw - PrefixBits / 8, capacity)

	// larger images never hold less
	bigger, err := ImageCapacity( encodeJPEG( t, 128, 128 ) )
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bigger, capacity)

	_, err = Hide( encodeJPEG( t, 8, 8 ), strings.Repeat("x", 1000) )
	assert.True(t, errors.Is(err, util.ErrCapacityExceeded))
}

func TestImageFailures( t *testing.T ) {
	_, err := Hide( []byte("not an image"), "msg" )
	assert.True(t, errors.Is(err, util.ErrUnsupportedMedium))
	_, err = Reveal( []byte("not an image") )
	assert.True(t, errors.Is(err, util.ErrUnsupportedMedium))
	_, err = ImageCapacity( nil )
	assert.True(t, errors.Is(err, util.ErrUnsupportedMedium))

	// a fresh image has a random length prefix
	_, err = DecodeFromLSB( RMode, noiseImage( 8, 8, 6 ) )
	assert.Error(t, err)
}
