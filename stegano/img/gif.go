package img
import (
	"fmt"
	"bytes"
	"image/gif"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

func gifCapacity( g *gif.GIF ) int {
	bits := 0
	for _, frame := range g.Image {
		bits += len(frame.Pix)
	}
	if bits < PrefixBits {
		return 0
	}
	return (bits - PrefixBits) / 8
}

// palette indices carry the bits, neighbouring entries are usually close
func HideInGif( gifbytes []byte, data []byte ) ([]byte, error) {
	g, err := gif.DecodeAll( bytes.NewReader( gifbytes ) )
	if err != nil {
		return nil, err
	}
	if capacity := gifCapacity( g ); len(data) > capacity {
		return nil, fmt.Errorf("%w: %d bytes, gif holds %d", util.ErrCapacityExceeded, len(data), capacity)
	}
	bits := prefixed( data )

	bitIdx := 0
	for _, frame := range g.Image {
		for i := range frame.Pix {
			if bitIdx >= len(bits) {
				break
			}
			// keep the index inside the palette
			idx := (frame.Pix[i] & 0xfe) | bits[bitIdx]
			if int(idx) >= len(frame.Palette) {
				return nil, fmt.Errorf("%w: palette has an odd number of colors", util.ErrUnsupportedMedium)
			}
			frame.Pix[i] = idx
			bitIdx++
		}
		if bitIdx >= len(bits) {
			break
		}
	}

	outbuf := new(bytes.Buffer)
	if err := gif.EncodeAll( outbuf, g ); err != nil {
		return nil, err
	}
	return outbuf.Bytes(), nil
}

func RevealFromGif( gifbytes []byte ) ([]byte, error) {
	g, err := gif.DecodeAll( bytes.NewReader( gifbytes ) )
	if err != nil {
		return nil, err
	}
	bits := []byte{}
	for _, frame := range g.Image {
		for _, pix := range frame.Pix {
			bits = append( bits, pix & 1 )
		}
	}
	return unprefixed( bits )
}
