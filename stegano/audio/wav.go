package audio
import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

const (
	RiffMagic	= "RIFF"
	WaveMagic	= "WAVE"
	FmtChunk	= "fmt "
	DataChunk	= "data"

	// filler appended after the message, and the run of it which ends the
	// message when revealing.
	FillChar	= '#'
	FillDelimiter	= "###"
	riffHeaderSize	= 12
	chunkHeadSize	= 8
)

// format parameters from the "fmt " chunk.
type WaveFmt struct {
	AudioFormat	uint16
	Channels	uint16
	SampleRate	uint32
	ByteRate	uint32
	BlockAlign	uint16
	BitsPerSample	uint16
}

/*
 * Wave keeps the whole RIFF container as it was read. writing it back
 * changes nothing but the bytes of the first data chunk, so unknown chunks,
 * header sizes and anything trailing the last chunk survive untouched.
 */
type Wave struct {
	WaveFmt
	raw	[]byte
	dataOff	int
	dataLen	int
	chunks	[]string
}

func ParseWave( data []byte ) (*Wave, error) {
	if len(data) < riffHeaderSize ||
		string(data[:4]) != RiffMagic ||
		string(data[8:12]) != WaveMagic {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", util.ErrUnsupportedMedium)
	}

	wv := &Wave{
		raw:	append( []byte(nil), data... ),
		dataOff:	-1,
	}
	pos := riffHeaderSize
	for pos+chunkHeadSize <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32( data[pos+4 : pos+8] ))
		pos += chunkHeadSize

		// streamed files may announce more than they carry
		if size < 0 || pos+size > len(data) {
			size = len(data) - pos
		}
		body := data[pos : pos+size]

		if id == FmtChunk {
			if size < 16 {
				return nil, fmt.Errorf("%w: fmt chunk is too short", util.ErrUnsupportedMedium)
			}
			wv.WaveFmt = WaveFmt{
				AudioFormat:	binary.LittleEndian.Uint16( body[0:2] ),
				Channels:	binary.LittleEndian.Uint16( body[2:4] ),
				SampleRate:	binary.LittleEndian.Uint32( body[4:8] ),
				ByteRate:	binary.LittleEndian.Uint32( body[8:12] ),
				BlockAlign:	binary.LittleEndian.Uint16( body[12:14] ),
				BitsPerSample:	binary.LittleEndian.Uint16( body[14:16] ),
			}
		}
		if id == DataChunk && wv.dataOff < 0 {
			wv.dataOff, wv.dataLen = pos, size
		}
		wv.chunks = append( wv.chunks, id )

		pos += size
		if size%2 == 1 {
			pos++
		}
	}

	if wv.dataOff < 0 {
		return nil, fmt.Errorf("%w: wav file has no data chunk", util.ErrUnsupportedMedium)
	}
	return wv, nil
}

// Samples returns the raw sample bytes of the data chunk.
func ( w *Wave ) Samples() []byte {
	if w == nil || w.dataOff < 0 {
		return nil
	}
	return w.raw[w.dataOff : w.dataOff+w.dataLen]
}

// Chunks lists chunk ids in file order.
func ( w *Wave ) Chunks() []string {
	return w.chunks
}

// withSamples copies the container around new sample bytes of the same length.
func ( w *Wave ) withSamples( samples []byte ) *Wave {
	out := *w
	out.raw = append( []byte(nil), w.raw... )
	copy( out.raw[w.dataOff:w.dataOff+w.dataLen], samples )
	return &out
}

func ( w *Wave ) Bytes() []byte {
	return append( []byte(nil), w.raw... )
}

// every sample byte carries one bit, 8 bits per character.
func WavCapacity( w *Wave ) int {
	return len(w.Samples()) / 8
}

func HideInWav( w *Wave, message string ) (*Wave, error) {
	samples := w.Samples()
	capacity := len(samples) / 8
	if len(message) > capacity {
		return nil, fmt.Errorf("%w: %d characters, wav holds %d", util.ErrCapacityExceeded, len(message), capacity)
	}

	fill := (len(samples) - 8*len(message)) / 8
	padded := message + strings.Repeat( string(FillChar), fill )
	return w.withSamples( encodeWithLSB( util.ToBits( []byte(padded) ), samples ) ), nil
}

func RevealFromWav( w *Wave ) string {
	return decodeFromLSB( w.Samples() )
}

func encodeWithLSB( bits []byte, samples []byte ) []byte {
	out := make( []byte, len(samples) )
	copy( out, samples )
	for i, bit := range bits {
		if i >= len(out) {
			break
		}
		out[i] = (out[i] & 0xfe) | bit
	}
	return out
}

func decodeFromLSB( samples []byte ) string {
	res := make( []byte, 0, len(samples)/8 )
	for i := 0; i+8 <= len(samples); i += 8 {
		b := byte(0)
		for _, s := range samples[i : i+8] {
			b = (b << 1) | (s & 0x1)
		}
		res = append( res, b )
	}

	decoded := string(res)
	if idx := strings.Index( decoded, FillDelimiter ); idx >= 0 {
		return decoded[:idx]
	}
	// a message one or two characters short of capacity leaves a filler run
	// shorter than the delimiter at the very end.
	for i := 0; i < len(FillDelimiter)-1 && strings.HasSuffix( decoded, string(FillChar) ); i++ {
		decoded = decoded[:len(decoded)-1]
	}
	return decoded
}
