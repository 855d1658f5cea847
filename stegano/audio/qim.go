package audio
import (
	"context"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

/*
 * Quantization index modulation over the DCT of fixed size frames.
 * every frame carries one bit in the sign of a single low frequency
 * coefficient, forced to +Delta or -Delta. the sign survives lossy
 * re-encoding as long as Delta is large against the codec's noise.
 * the first 8 frames carry the message length, big endian.
 */
const (
	FrameSize	= 2048
	CoefficientIndex	= 20
	Delta	= 1000.0
	HeaderBits	= 8
	HeaderProbeFrames	= 256
	MaxMessageLength	= 500
	CapacityConfidenceFrames	= 100
	CompressionRatio	= 5
)

// read-only after init, shared by concurrent calls
var basis = newDCTBasis( FrameSize, CoefficientIndex )

func NumFrames( samples int ) int {
	if samples < FrameSize {
		return 0
	}
	return (samples - FrameSize + 1) / FrameSize
}

// FramesCapacity is how many characters numFrames frames can carry.
func FramesCapacity( numFrames int ) int {
	if numFrames < HeaderBits {
		return 0
	}
	return (numFrames - HeaderBits) / 8
}

// EstimateCapacity guesses the frame count from the compressed file size.
// the estimate is trusted only for files big enough to yield 100 frames.
func EstimateCapacity( fileSize int64 ) (int, bool) {
	estimated := fileSize * CompressionRatio / FrameSize
	if estimated < CapacityConfidenceFrames {
		return 0, false
	}
	return FramesCapacity( int(estimated) ), true
}

func EmbedQIM( samples []int16, message string ) ([]int16, error) {
	data := []byte(message)
	header, err := util.HeaderByte( len(data) )
	if err != nil {
		return nil, err
	}
	bits := append( header, util.ToBits( data )... )

	numFrames := NumFrames( len(samples) )
	if len(bits) > numFrames {
		return nil, fmt.Errorf("%w: need %d frames, audio has %d", util.ErrInsufficientFrames, len(bits), numFrames)
	}

	out := make( []int16, len(samples) )
	copy( out, samples )

	frame := make( []float64, FrameSize )
	for i, bit := range bits {
		start := i * FrameSize
		for j, s := range samples[start : start+FrameSize] {
			frame[j] = float64(s)
		}
		target := -Delta
		if bit == 1 {
			target = Delta
		}
		basis.setCoefficient( frame, target )
		for j, v := range frame {
			out[start+j] = clip( v )
		}
	}
	return out, nil
}

func ExtractQIM( samples []int16 ) (string, error) {
	numFrames := NumFrames( len(samples) )
	probe := numFrames
	if probe > HeaderProbeFrames {
		probe = HeaderProbeFrames
	}
	if probe < HeaderBits {
		return "", fmt.Errorf("%w: %d frames cannot hold a length header", util.ErrInsufficientFrames, numFrames)
	}

	length := int(util.FromBin( readBits( samples, HeaderBits ) ))
	if length <= 0 || length > MaxMessageLength {
		return "", fmt.Errorf("%w: length %d", util.ErrInvalidLengthHeader, length)
	}

	needed := HeaderBits + length*8
	if numFrames < needed {
		return "", fmt.Errorf("%w: header announces %d frames, audio has %d", util.ErrInsufficientFrames, needed, numFrames)
	}

	payload, err := util.FromBits( readBits( samples, needed )[HeaderBits:] )
	if err != nil {
		return "", err
	}
	return decodePayload( payload ), nil
}

func readBits( samples []int16, frames int ) []byte {
	bits := make( []byte, frames )
	frame := make( []float64, FrameSize )
	for i := range bits {
		start := i * FrameSize
		for j, s := range samples[start : start+FrameSize] {
			frame[j] = float64(s)
		}
		if basis.coefficient( frame ) > 0 {
			bits[i] = 1
		}
	}
	return bits
}

// invalid utf-8 degrades to printable ascii, NUL ends the message.
func decodePayload( payload []byte ) string {
	if utf8.Valid( payload ) {
		return string(payload)
	}
	res := []byte{}
	for _, b := range payload {
		if b >= 32 && b <= 126 {
			res = append( res, b )
		} else if b == 0 {
			break
		} else {
			res = append( res, '?' )
		}
	}
	return string(res)
}

func clip( v float64 ) int16 {
	v = math.Round( v )
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

/*
 * QimCodec runs the embedding over compressed files, with decoding and
 * re-encoding delegated to a Transcoder.
 */
type QimCodec struct {
	tc Transcoder
}

func NewQimCodec( tc Transcoder ) *QimCodec {
	return &QimCodec{ tc }
}

func ( q *QimCodec ) Capacity( ctx context.Context, path string ) (int, error) {
	info, err := os.Stat( path )
	if err != nil {
		return 0, err
	}
	if capacity, ok := EstimateCapacity( info.Size() ); ok {
		return capacity, nil
	}

	pcm, err := q.tc.Decode( ctx, path )
	if err != nil {
		return 0, err
	}
	return FramesCapacity( NumFrames( len(pcm.Samples) ) ), nil
}

func ( q *QimCodec ) Hide( ctx context.Context, input, message, output string ) error {
	capacity, err := q.Capacity( ctx, input )
	if err != nil {
		return err
	}
	if len(message) > capacity {
		return fmt.Errorf("%w: %d characters, audio holds %d", util.ErrCapacityExceeded, len(message), capacity)
	}

	pcm, err := q.tc.Decode( ctx, input )
	if err != nil {
		return err
	}
	samples, err := EmbedQIM( pcm.Samples, message )
	if err != nil {
		return err
	}

	if err = q.tc.Encode( ctx, &PCM{ samples, pcm.SampleRate }, output ); err != nil {
		// never leave a half written artifact behind
		os.Remove( output )
		return err
	}
	return nil
}

func ( q *QimCodec ) Reveal( ctx context.Context, path string ) (string, error) {
	pcm, err := q.tc.Decode( ctx, path )
	if err != nil {
		return "", err
	}
	return ExtractQIM( pcm.Samples )
}
