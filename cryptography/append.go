package cryptography
import (
	"bytes"
	"errors"
	"fmt"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

var (
	ErrEmptyKey = errors.New("append key is not configured")
	ErrSealedTooShort = errors.New("sealed payload is too short")
	ErrTagMismatch = errors.New("authentication tag mismatch")
)

/*
 * AppendCipher seals messages which are glued to the end of a cover file.
 * sealed layout: nonce(16) || tag(16) || ciphertext
 */
type AppendCipher struct {
	aead	cipher.AEAD
}

// AppendKey pads the passphrase with '0' or cuts it to the key size.
func AppendKey( passphrase string ) []byte {
	key := []byte( passphrase )
	if len(key) >= AppendKeySize {
		return key[:AppendKeySize]
	}
	return append( key, bytes.Repeat( []byte{AppendKeyFiller}, AppendKeySize - len(key) )... )
}

func NewAppendCipher( passphrase string ) ( *AppendCipher, error ) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}
	block, err := aes.NewCipher( AppendKey( passphrase ) )
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize( block, AppendNonceSize )
	if err != nil {
		return nil, err
	}
	return &AppendCipher{ aead }, nil
}

func(c *AppendCipher) Seal( plaintext []byte ) ( []byte, error ) {
	nonce := make( []byte, AppendNonceSize )
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}

	// gcm appends the tag, the wire format wants it in front
	sealed := c.aead.Seal( nil, nonce, plaintext, nil )
	ct, tag := sealed[:len(sealed) - TagSize], sealed[len(sealed) - TagSize:]

	out := make( []byte, 0, AppendNonceSize + len(sealed) )
	out = append( out, nonce... )
	out = append( out, tag... )
	return append( out, ct... ), nil
}

func(c *AppendCipher) Open( sealed []byte ) ( []byte, error ) {
	if len(sealed) < AppendNonceSize + TagSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrSealedTooShort, len(sealed))
	}
	nonce := sealed[:AppendNonceSize]
	tag := sealed[AppendNonceSize : AppendNonceSize + TagSize]
	ct := sealed[AppendNonceSize + TagSize:]

	joined := make( []byte, 0, len(ct) + TagSize )
	joined = append( joined, ct... )
	joined = append( joined, tag... )
	pt, err := c.aead.Open( nil, nonce, joined, nil )
	if err != nil {
		return nil, ErrTagMismatch
	}
	return pt, nil
}
