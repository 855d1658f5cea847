package img
import (
	"bytes"
	"image/png"
)

func HideInPNG( decoy, data []byte ) ([]byte, error) {
	img, err := png.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeWithLSB( RMode | GMode | BMode, data, img )
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = png.Encode( buf, encoded ); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RevealFromPNG( decoy []byte ) ([]byte, error) {
	img, err := png.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, err
	}
	return DecodeFromLSB( RMode | GMode | BMode, img )
}
