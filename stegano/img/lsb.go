package img
import (
	"fmt"
	"image"
	"image/color"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

const (
	RMode = 1
	GMode = 2
	BMode = 4

	PrefixBits = 32
)

func channels( mode uint8 ) int {
	n := 0
	for _, m := range []uint8{ RMode, GMode, BMode } {
		if mode & m == m {
			n++
		}
	}
	return n
}

// lsbCapacity is how many message bytes fit after the length prefix.
func lsbCapacity( mode uint8, bounds image.Rectangle ) int {
	bits := bounds.Dx() * bounds.Dy() * channels( mode )
	if bits < PrefixBits {
		return 0
	}
	return (bits - PrefixBits) / 8
}

// prefixed returns the 32 bit big endian length followed by the data bits.
func prefixed( data []byte ) []byte {
	return append( util.HeaderUint32( uint32(len(data)) ), util.ToBits( data )... )
}

// unprefixed reads back what prefixed wrote.
func unprefixed( bits []byte ) ([]byte, error) {
	size, err := util.Uint32FromBits( bits )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrNoHiddenData, err)
	}
	if uint64(size) * 8 > uint64(len(bits) - PrefixBits) {
		return nil, fmt.Errorf("%w: length prefix %d exceeds the image", util.ErrInvalidLengthHeader, size)
	}
	return util.FromBits( bits[PrefixBits : PrefixBits + int(size) * 8] )
}

func EncodeWithLSB( mode uint8, data []byte, img image.Image ) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if capacity := lsbCapacity( mode, bounds ); len(data) > capacity {
		return nil, fmt.Errorf("%w: %d bytes, image holds %d", util.ErrCapacityExceeded, len(data), capacity)
	}
	encoded := prefixed( data )

	// embed bits into least significant bit of the channel
	// according to mode
	out := image.NewNRGBA( bounds )
	bitIndex := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {

			c := color.NRGBAModel.Convert( img.At( x, y ) ).(color.NRGBA)
			if (mode & RMode == RMode) && (bitIndex < len(encoded)) {
				c.R = (c.R & 0xfe) | encoded[ bitIndex ]
				bitIndex++
			}
			if (mode & GMode == GMode) && (bitIndex < len(encoded)) {
				c.G = (c.G & 0xfe) | encoded[ bitIndex ]
				bitIndex++
			}
			if (mode & BMode == BMode) && (bitIndex < len(encoded)) {
				c.B = (c.B & 0xfe) | encoded[ bitIndex ]
				bitIndex++
			}
			out.SetNRGBA( x, y, c )
		}
	}
	return out, nil
}

func DecodeFromLSB( mode uint8, img image.Image ) ([]byte, error) {
	bounds := img.Bounds()
	encoded := make( []byte, 0, bounds.Dx() * bounds.Dy() * channels( mode ) )

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {

			c := color.NRGBAModel.Convert( img.At( x, y ) ).(color.NRGBA)
			if mode & RMode == RMode {
				encoded = append( encoded, c.R & 0x1 )
			}
			if mode & GMode == GMode {
				encoded = append( encoded, c.G & 0x1 )
			}
			if mode & BMode == BMode {
				encoded = append( encoded, c.B & 0x1 )
			}
		}
	}
	return unprefixed( encoded )
}
