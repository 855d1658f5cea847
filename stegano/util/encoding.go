package util
import (
	"fmt"
)

/*
 * transform data from/to binary form.
 * every bit is stored as a separate byte holding 0 or 1, most significant
 * bit of every source byte first.
 */
func ToBin( x byte ) []byte {
	result := make( []byte, 8 )
	for i := 0; i < 8; i++ {
		result[i] = (x >> (7 - i)) & 0x1
	}
	return result
}

func FromBin( x []byte ) byte {
	result := byte(0)
	for i := 0; i < 8; i++ {
		result = (result << 1) | (x[i] & 0x1)
	}
	return result
}

// ToBits returns 8 * len(data) bits.
func ToBits( data []byte ) []byte {
	res := make( []byte, 0, len(data)*8 )
	for _, b := range data {
		res = append( res, ToBin( b )... )
	}
	return res
}

// FromBits packs bits back into bytes.
func FromBits( bits []byte ) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of bytes", ErrMalformedBits, len(bits))
	}
	result := make( []byte, 0, len(bits)/8 )
	for i := 0; i < len(bits); i += 8 {
		result = append( result, FromBin( bits[i:i+8] ) )
	}
	return result, nil
}

// HeaderByte packs a length header into 8 big endian bits.
func HeaderByte( n int ) ([]byte, error) {
	if n < 0 || n > 255 {
		return nil, fmt.Errorf("%w: header value %d does not fit in one byte", ErrCapacityExceeded, n)
	}
	return ToBin( byte(n) ), nil
}

// HeaderUint32 packs a 32-bit big endian length prefix.
func HeaderUint32( n uint32 ) []byte {
	return ToBits( []byte{ byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n) } )
}

// Uint32FromBits reads the prefix written by HeaderUint32.
func Uint32FromBits( bits []byte ) (uint32, error) {
	if len(bits) < 32 {
		return 0, fmt.Errorf("%w: need 32 bits for a length prefix, have %d", ErrMalformedBits, len(bits))
	}
	b, err := FromBits( bits[:32] )
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
