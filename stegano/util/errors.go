package util
import (
	"errors"
	"math"
)

// error kinds shared by every codec
var (
	ErrCapacityExceeded	= errors.New( "message does not fit into the cover" )
	ErrInsufficientFrames	= errors.New( "not enough audio frames" )
	ErrMalformedBits	= errors.New( "malformed bit sequence" )
	ErrNoHiddenData	= errors.New( "no hidden data found" )
	ErrAuthenticationFailed	= errors.New( "authentication failed" )
	ErrDecodeUnavailable	= errors.New( "media decoder unavailable" )
	ErrInvalidLengthHeader	= errors.New( "invalid length header" )
	ErrUnsupportedCharacter	= errors.New( "unsupported character" )
	ErrUnsupportedMedium	= errors.New( "unsupported medium" )
	ErrEmptyMessage	= errors.New( "message is empty" )
)

var kinds = []error{
	ErrCapacityExceeded,
	ErrInsufficientFrames,
	ErrMalformedBits,
	ErrNoHiddenData,
	ErrAuthenticationFailed,
	ErrDecodeUnavailable,
	ErrInvalidLengthHeader,
	ErrUnsupportedCharacter,
	ErrUnsupportedMedium,
	ErrEmptyMessage,
}

// Kind returns the sentinel err wraps, or nil for unclassified errors.
func Kind( err error ) error {
	for _, k := range kinds {
		if errors.Is( err, k ) {
			return k
		}
	}
	return nil
}

// Capacity is how many characters a cover can carry.
type Capacity struct {
	Chars	int	`json:"capacity"`
	Unbounded	bool `json:"unbounded"`
}

func Bounded( n int ) Capacity {
	if n < 0 {
		n = 0
	}
	return Capacity{ Chars: n }
}

func Unbounded() Capacity {
	return Capacity{ Chars: math.MaxInt, Unbounded: true }
}

// Fits reports whether a payload of n characters fits.
func ( c Capacity ) Fits( n int ) bool {
	return c.Unbounded || n <= c.Chars
}

/*
 * Result is what crosses the request boundary: status flag, the error kind
 * and a human readable detail. exactly one of Artifact/Message/Capacity is
 * meaningful depending on the operation.
 */
type Result struct {
	Status	bool	`json:"status"`
	Kind	error	`json:"-"`
	Detail	string	`json:"error,omitempty"`
	Artifact	string	`json:"stego_file,omitempty"`
	Message	string	`json:"hidden_message,omitempty"`
	Capacity	Capacity `json:"capacity"`
}

func Fail( err error ) Result {
	return Result{
		Status:	false,
		Kind:	Kind( err ),
		Detail:	err.Error(),
	}
}
