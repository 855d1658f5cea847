package img
import (
	"bytes"
	"golang.org/x/image/bmp"
)

// basically, the same as with png
func HideInBMP( decoy, data []byte ) ([]byte, error) {
	img, err := bmp.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeWithLSB( RMode | GMode | BMode, data, img )
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = bmp.Encode( buf, encoded ); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RevealFromBMP( decoy []byte ) ([]byte, error) {
	img, err := bmp.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, err
	}
	return DecodeFromLSB( RMode | GMode | BMode, img )
}
