package img
import (
	"fmt"
	"bytes"
	"image"
	"image/jpeg"
	"lukechampine.com/jsteg"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

/*
 * jsteg keeps no length of its own: revealing returns one byte for every 8
 * usable coefficients of the scan. encoding the cover with nothing hidden and
 * revealing it again measures the room, the length prefix is taken from it.
 */
func rawJpegCapacity( img image.Image ) (int, error) {
	outbuf := new(bytes.Buffer)
	if err := jsteg.Hide( outbuf, img, nil, nil ); err != nil {
		return 0, err
	}
	hidden, err := jsteg.Reveal( outbuf )
	if err != nil {
		return 0, err
	}
	return len(hidden), nil
}

func jpegCapacity( jpgBytes []byte ) (int, error) {
	img, err := jpeg.Decode( bytes.NewReader( jpgBytes ) )
	if err != nil {
		return 0, err
	}
	capacity, err := rawJpegCapacity( img )
	if err != nil {
		return 0, err
	}
	capacity -= PrefixBits / 8
	if capacity < 0 {
		capacity = 0
	}
	return capacity, nil
}

func HideInJpeg( jpgBytes []byte, data []byte ) ([]byte, error) {

	img, err := jpeg.Decode( bytes.NewReader( jpgBytes ) )
	if err != nil {
		return nil, err
	}
	capacity, err := rawJpegCapacity( img )
	if err != nil {
		return nil, err
	}
	if capacity < len(data) + PrefixBits / 8 {
		return nil, fmt.Errorf("%w: jpeg holds %d bytes, need %d", util.ErrCapacityExceeded, capacity, len(data) + PrefixBits / 8 )
	}

	// jsteg works on whole bytes, so the bit prefix is packed back
	packed, err := util.FromBits( prefixed( data ) )
	if err != nil {
		return nil, err
	}

	outbuf := new(bytes.Buffer)
	if err := jsteg.Hide( outbuf, img, packed, nil ); err != nil {
		return nil, err
	}

	// hiding may move a coefficient in or out of use, so check what landed
	revealed, err := RevealFromJpeg( outbuf.Bytes() )
	if err != nil || !bytes.Equal( revealed, data ) {
		return nil, fmt.Errorf("%w: jpeg could not carry %d bytes", util.ErrCapacityExceeded, len(data))
	}
	return outbuf.Bytes(), nil
}

func RevealFromJpeg( jpgBytes []byte ) ([]byte, error) {
	hidden, err := jsteg.Reveal( bytes.NewReader( jpgBytes ) )
	if err != nil {
		return nil, err
	}
	return unprefixed( util.ToBits( hidden ) )
}
