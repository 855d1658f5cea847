package blob
import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Surventurer/Steganography-Website/cryptography"
	"github.com/Surventurer/Steganography-Website/stegano/util"
)

// Delimiter separates the untouched cover from the sealed tail.
const Delimiter = ":::"

/*
 * the cover is left byte for byte as it was, the message is sealed and
 * written after it as base64(nonce || tag || ciphertext). most players and
 * viewers stop reading at the end of their own container.
 */
type AppendCodec struct {
	cipher *cryptography.AppendCipher
}

func NewAppendCodec( passphrase string ) (*AppendCodec, error) {
	c, err := cryptography.NewAppendCipher( passphrase )
	if err != nil {
		return nil, err
	}
	return &AppendCodec{ c }, nil
}

// Capacity of an appended payload is not limited by the cover.
func ( a *AppendCodec ) Capacity( cover []byte ) util.Capacity {
	return util.Unbounded()
}

func ( a *AppendCodec ) Hide( cover []byte, message string ) ([]byte, error) {
	sealed, err := a.cipher.Seal( []byte(message) )
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString( sealed )
	out := make( []byte, 0, len(cover)+len(Delimiter)+len(encoded) )
	out = append( out, cover... )
	out = append( out, Delimiter... )
	return append( out, encoded... ), nil
}

func ( a *AppendCodec ) Reveal( stego []byte ) (string, error) {
	idx := bytes.LastIndex( stego, []byte(Delimiter) )
	if idx < 0 {
		return "", fmt.Errorf("%w: no %q delimiter", util.ErrNoHiddenData, Delimiter)
	}

	sealed, err := base64.StdEncoding.DecodeString( string(stego[idx+len(Delimiter):]) )
	if err != nil {
		return "", fmt.Errorf("%w: tail is not base64: %v", util.ErrNoHiddenData, err)
	}

	plain, err := a.cipher.Open( sealed )
	switch {
	case errors.Is( err, cryptography.ErrSealedTooShort ):
		return "", fmt.Errorf("%w: %v", util.ErrNoHiddenData, err)
	case err != nil:
		return "", fmt.Errorf("%w: %v", util.ErrAuthenticationFailed, err)
	}
	return string(plain), nil
}
