package text
import (
	"unicode/utf8"
)

func Hide( decoy []byte, message string ) ([]byte, error) {
	str, err := HideInText( string(decoy), message )
	return []byte(str), err
}

func Reveal( decoy []byte ) (string, error) {
	return RevealFromText( string(decoy) )
}

func Capacity( decoy []byte ) int {
	return TextCapacity( string(decoy) )
}

// IsText reports whether decoy can be treated as utf-8 cover text.
func IsText( decoy []byte ) bool {
	return utf8.Valid( decoy )
}
