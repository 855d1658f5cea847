package img
import (
	"bytes"
	"fmt"
	"image/gif"
	"image"
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

type Format int

const (
	UnknownFormat Format = iota
	PNG
	JPEG
	BMP
	GIF
)

var (
	pngMagic = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	gifMagic = []byte("GIF")
	bmpMagic = []byte("BM")
)

func DetectFormat( decoy []byte ) Format {
	switch {
	case bytes.HasPrefix( decoy, pngMagic ):
		return PNG
	case bytes.HasPrefix( decoy, jpegMagic ):
		return JPEG
	case bytes.HasPrefix( decoy, gifMagic ):
		return GIF
	case bytes.HasPrefix( decoy, bmpMagic ):
		return BMP
	}
	return UnknownFormat
}

func unsupported( decoy []byte ) error {
	return fmt.Errorf("%w: unknown image format (%d bytes)", util.ErrUnsupportedMedium, len(decoy))
}

// Hide returns a new image of the same format carrying message.
func Hide( decoy []byte, message string ) ([]byte, error) {
	data := []byte( message )
	switch DetectFormat( decoy ) {
	case PNG:
		return HideInPNG( decoy, data )
	case JPEG:
		return HideInJpeg( decoy, data )
	case GIF:
		return HideInGif( decoy, data )
	case BMP:
		return HideInBMP( decoy, data )
	}
	return nil, unsupported( decoy )
}

func Reveal( decoy []byte ) (string, error) {
	var data []byte
	var err error
	switch DetectFormat( decoy ) {
	case PNG:
		data, err = RevealFromPNG( decoy )
	case JPEG:
		data, err = RevealFromJpeg( decoy )
	case GIF:
		data, err = RevealFromGif( decoy )
	case BMP:
		data, err = RevealFromBMP( decoy )
	default:
		err = unsupported( decoy )
	}
	if err != nil {
		return "", err
	}
	return string( data ), nil
}

// ImageCapacity is the number of message bytes the image can carry.
func ImageCapacity( decoy []byte ) (int, error) {
	switch DetectFormat( decoy ) {
	case PNG:
		cfg, err := png.DecodeConfig( bytes.NewReader( decoy ) )
		if err != nil {
			return 0, err
		}
		return lsbCapacity( RMode | GMode | BMode, rect( cfg.Width, cfg.Height ) ), nil
	case BMP:
		cfg, err := bmp.DecodeConfig( bytes.NewReader( decoy ) )
		if err != nil {
			return 0, err
		}
		return lsbCapacity( RMode | GMode | BMode, rect( cfg.Width, cfg.Height ) ), nil
	case JPEG:
		return jpegCapacity( decoy )
	case GIF:
		g, err := gif.DecodeAll( bytes.NewReader( decoy ) )
		if err != nil {
			return 0, err
		}
		return gifCapacity( g ), nil
	}
	return 0, unsupported( decoy )
}

func rect( w, h int ) image.Rectangle {
	return image.Rect( 0, 0, w, h )
}
