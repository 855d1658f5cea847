package audio
import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	sox "github.com/thadeu/go-sox"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

// Sox transcodes through the sox binary. decoded audio comes back as a wav
// stream, encoded audio goes in as raw little endian samples.
type Sox struct {
	SoxPath string
	Quality int // lame quality for mp3 output, negative keeps the default
}

func NewSox( soxPath string, quality int ) (*Sox, error) {
	if soxPath == "" {
		soxPath = "sox"
	}
	path, err := util.PathToProgram( soxPath )
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found: %s", util.ErrDecodeUnavailable, soxPath, err.Error())
	}
	if err := sox.CheckSoxInstalled( path ); err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrDecodeUnavailable, err.Error())
	}
	return &Sox{ path, quality }, nil
}

// monoWave is what every compressed cover is decoded into.
func monoWave() sox.AudioFormat {
	return sox.AudioFormat{
		Type:	sox.TYPE_WAV,
		Encoding:	sox.SIGNED_INTEGER,
		Channels:	1,
		BitDepth:	16,
	}
}

func rawMono( rate int ) sox.AudioFormat {
	return sox.AudioFormat{
		Type:	sox.TYPE_RAW,
		Encoding:	sox.SIGNED_INTEGER,
		Endian:	"little",
		SampleRate:	rate,
		Channels:	1,
		BitDepth:	16,
	}
}

// fileFormat lets sox pick the codec from the extension.
func fileFormat( path string ) sox.AudioFormat {
	return sox.AudioFormat{
		Type: strings.ToLower( strings.TrimPrefix( filepath.Ext( path ), "." ) ),
	}
}

func ( s *Sox ) options( ctx context.Context ) sox.ConversionOptions {
	opts := sox.DefaultOptions()
	opts.SoxPath = s.SoxPath
	opts.Quality = s.Quality
	if deadline, ok := ctx.Deadline(); ok {
		opts.Timeout = time.Until( deadline )
	}
	return opts
}

// convert runs one conversion, giving up when ctx is done.
func ( s *Sox ) convert( ctx context.Context, conv *sox.Converter, in io.Reader, out io.Writer ) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: sox interrupted: %s", util.ErrDecodeUnavailable, err.Error())
	}

	done := make( chan error, 1 )
	go func() {
		done <- conv.Convert( in, out )
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s", util.ErrDecodeUnavailable, err.Error())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: sox interrupted: %s", util.ErrDecodeUnavailable, ctx.Err().Error())
	}
}

func ( s *Sox ) Decode( ctx context.Context, path string ) (*PCM, error) {
	f, err := os.Open( path )
	if err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrDecodeUnavailable, err.Error())
	}
	defer f.Close()

	conv := sox.NewConverter( fileFormat( path ), monoWave() ).WithOptions( s.options( ctx ) )
	out := new( bytes.Buffer )
	if err := s.convert( ctx, conv, f, out ); err != nil {
		return nil, err
	}
	return PCMFromWave( out.Bytes() )
}

func ( s *Sox ) Encode( ctx context.Context, pcm *PCM, path string ) error {
	if pcm == nil || pcm.SampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate", util.ErrDecodeUnavailable)
	}

	f, err := os.OpenFile( path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600 )
	if err != nil {
		return err
	}
	defer f.Close()

	conv := sox.NewConverter( rawMono( pcm.SampleRate ), fileFormat( path ) ).WithOptions( s.options( ctx ) )
	return s.convert( ctx, conv, bytes.NewReader( SamplesToBytes( pcm.Samples ) ), f )
}

// PCMFromWave reads the samples of a 16 bit mono wav stream.
func PCMFromWave( data []byte ) (*PCM, error) {
	wv, err := ParseWave( data )
	if err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrDecodeUnavailable, err.Error())
	}
	if wv.Channels != 1 || wv.BitsPerSample != 16 || wv.SampleRate == 0 {
		return nil, fmt.Errorf("%w: expected 16 bit mono, got %d channels of %d bits at %d Hz",
			util.ErrDecodeUnavailable, wv.Channels, wv.BitsPerSample, wv.SampleRate)
	}
	return &PCM{
		Samples:	BytesToSamples( wv.Samples() ),
		SampleRate:	int(wv.SampleRate),
	}, nil
}
