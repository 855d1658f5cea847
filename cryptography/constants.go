package cryptography
import (
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// local storage encryption (config, logs)
	SymKeySize = 32
	TagSize = 16
	NonceSize = chacha20poly1305.NonceSize
	SaltSize = 16

	// appended payloads: aes-256-gcm with a widened nonce
	AppendKeySize = 32
	AppendNonceSize = 16
	AppendKeyFiller = '0'
)
