package audio
import (
	"bytes"
	"os"
)

// IsWave reports whether decoy looks like a RIFF/WAVE container.
func IsWave( decoy []byte ) bool {
	return len(decoy) >= 12 &&
		bytes.Equal( decoy[:4], []byte(RiffMagic) ) &&
		bytes.Equal( decoy[8:12], []byte(WaveMagic) )
}

func WavFileCapacity( path string ) (int, error) {
	wv, err := readWave( path )
	if err != nil {
		return 0, err
	}
	return WavCapacity( wv ), nil
}

func HideInWavFile( input, message, output string ) ([]byte, error) {
	wv, err := readWave( input )
	if err != nil {
		return nil, err
	}
	encoded, err := HideInWav( wv, message )
	if err != nil {
		return nil, err
	}
	data := encoded.Bytes()
	if err = os.WriteFile( output, data, 0600 ); err != nil {
		return nil, err
	}
	return data, nil
}

func RevealFromWavFile( path string ) (string, error) {
	wv, err := readWave( path )
	if err != nil {
		return "", err
	}
	return RevealFromWav( wv ), nil
}

func readWave( path string ) (*Wave, error) {
	data, err := os.ReadFile( path )
	if err != nil {
		return nil, err
	}
	return ParseWave( data )
}
