package cryptography
import (
	"fmt"	// for debug and errors
	"strings"
	"runtime"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)


// chacha20poly1305 encryption+authentication
func Encrypt( data, key []byte ) ( []byte, error ) {

	if len(data) == 0 {
		return nil, nil	// nothing to protect
	}

	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	nonce := make( []byte, NonceSize )
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}

	ct := aead.Seal( nil, nonce, data, nil )
	return append( nonce, ct... ), nil
}

func Decrypt( data, key []byte ) ( []byte, error ) {

	if len(data) == 0 {
		return nil, nil
	}

	if len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}

	if len(data) < NonceSize + TagSize {
		return nil, fmt.Errorf("Invalid length of data")
	}

	nonce := data[:NonceSize]
	data = data[NonceSize:]
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	return aead.Open( nil, nonce, data, nil )
}


// generate a random amount of bytes
func GenRandom( size uint ) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("[cryptography/common.go] GenRandom: Invalid size of random data")
	}
	data := make( []byte, size )
	if _, err := rand.Read( data ); err != nil {
		return nil, err
	}
	return data, nil
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt( password string ) ([]byte, []byte, error) {
	salt, pass, found := strings.Cut( password, ":" )
	if !found {
		return nil, nil, fmt.Errorf("no salt supplied")
	}
	saltBytes, err := base64.StdEncoding.DecodeString( salt )
	if err != nil {
		return nil, nil, err
	}

	return []byte( pass ), saltBytes, nil
}

// GenSalt returns a fresh salt in the format SplitWithSalt expects.
func GenSalt() (string, error) {
	salt, err := GenRandom( SaltSize )
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString( salt ), nil
}

// derive encryption key from password. used for local configuration storage
func DeriveKey( password, saltBytes []byte ) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB) is a sensible number.
	 */
	threads := uint8(runtime.NumCPU())
	return argon2.IDKey( password, saltBytes, 3, 32 * 1024, threads, SymKeySize )
}

// KeyFromPassword accepts "<salt>:<password>" and returns the storage key.
func KeyFromPassword( password string ) ([]byte, error) {
	pass, saltBytes, err := SplitWithSalt( password )
	if err != nil {
		return nil, err
	}
	return DeriveKey( pass, saltBytes ), nil
}
