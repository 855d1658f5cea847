package text
import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

/*
 * every character becomes a 12 bit unit: a 4 bit tag choosing how the
 * code point was shifted, and the shifted code point xor-ed with 0xaa.
 * units are written as 6 zero-width marks (2 bits each), one unit after
 * each word of the cover text.
 */
const (
	UnitBits	= 12
	TagBits	= 4
	XorMask	= 0xaa
	CodeShift	= 48
)

var (
	// index is the value of a 2 bit group
	Alphabet = [4]rune{
		'\u200c', // 00
		'\u202c', // 01
		'\u200e', // 10
		'\u202d', // 11
	}

	LowTag	= []byte{ 0, 0, 1, 1 }
	HighTag	= []byte{ 0, 1, 1, 0 }
	Terminator	= bytes.Repeat( []byte{ 1 }, UnitBits )
)

func isMark( r rune ) bool {
	return markValue( r ) >= 0
}

func markValue( r rune ) int {
	for i, m := range Alphabet {
		if m == r {
			return i
		}
	}
	return -1
}

// StripMarks removes anything from the invisible alphabet.
func StripMarks( s string ) string {
	return strings.Map( func( r rune ) rune {
		if isMark( r ) {
			return -1
		}
		return r
	}, s )
}

// TextCapacity is the number of whitespace separated words.
func TextCapacity( cover string ) int {
	return len(strings.Fields( StripMarks( cover ) ))
}

func encodeUnits( message string ) ([]byte, error) {
	bits := []byte{}
	for _, r := range message {
		var tag []byte
		var shifted int
		if r >= 32 && r <= 64 {
			tag, shifted = LowTag, int(r)+CodeShift
		} else {
			tag, shifted = HighTag, int(r)-CodeShift
		}
		if shifted < 0 || shifted > 0xff {
			return nil, fmt.Errorf("%w: %q cannot be hidden in text", util.ErrUnsupportedCharacter, r)
		}
		bits = append( bits, tag... )
		bits = append( bits, util.ToBin( byte(shifted^XorMask) )... )
	}
	return append( bits, Terminator... ), nil
}

func bitsToMarks( bits []byte ) string {
	var sb strings.Builder
	for i := 0; i+1 < len(bits); i += 2 {
		sb.WriteRune( Alphabet[bits[i]<<1|bits[i+1]] )
	}
	return sb.String()
}

/*
 * HideInText appends one unit of marks to each word, in order, keeping the
 * whitespace of the cover exactly as it was. words past the end of the
 * stream stay untouched.
 */
func HideInText( cover, message string ) (string, error) {
	cover = StripMarks( cover )
	capacity := TextCapacity( cover )
	if n := len([]rune(message)); n > capacity {
		return "", fmt.Errorf("%w: %d characters, cover has %d words", util.ErrCapacityExceeded, n, capacity)
	}

	bits, err := encodeUnits( message )
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	word := 0
	inWord := false
	flush := func() {
		start := word * UnitBits
		if start < len(bits) {
			end := start + UnitBits
			if end > len(bits) {
				end = len(bits)
			}
			sb.WriteString( bitsToMarks( bits[start:end] ) )
		}
		word++
	}

	for _, r := range cover {
		if unicode.IsSpace( r ) {
			if inWord {
				flush()
				inWord = false
			}
		} else {
			inWord = true
		}
		sb.WriteRune( r )
	}
	if inWord {
		flush()
	}
	return sb.String(), nil
}

func RevealFromText( stego string ) (string, error) {
	collected := []byte{}
	for _, token := range strings.Fields( stego ) {
		extracted := []byte{}
		for _, r := range token {
			if v := markValue( r ); v >= 0 {
				extracted = append( extracted, byte(v>>1), byte(v&1) )
			}
		}
		if bytes.Equal( extracted, Terminator ) {
			break
		}
		collected = append( collected, extracted... )
	}

	if len(collected) == 0 {
		return "", fmt.Errorf("%w: text carries no zero-width marks", util.ErrNoHiddenData)
	}

	result := []rune{}
	for i := 0; i+UnitBits <= len(collected); i += UnitBits {
		tag := collected[i : i+TagBits]
		payload := int(util.FromBin( collected[i+TagBits:i+UnitBits] )) ^ XorMask
		switch {
		case bytes.Equal( tag, HighTag ):
			result = append( result, rune(payload+CodeShift) )
		case bytes.Equal( tag, LowTag ) && payload >= CodeShift:
			result = append( result, rune(payload-CodeShift) )
		}
	}
	return string(result), nil
}
