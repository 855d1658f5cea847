package stegano
import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Surventurer/Steganography-Website/config"
	"github.com/Surventurer/Steganography-Website/stegano/audio"
	"github.com/Surventurer/Steganography-Website/stegano/blob"
	"github.com/Surventurer/Steganography-Website/stegano/img"
	"github.com/Surventurer/Steganography-Website/stegano/text"
	sutil "github.com/Surventurer/Steganography-Website/stegano/util"
	"github.com/Surventurer/Steganography-Website/util"
)

type CoverKind int8

const (
	Opaque	= CoverKind( 0 ) // anything we can only append to
	Wav	= CoverKind( 1 )
	Mp3	= CoverKind( 2 )
	GenericAudio	= CoverKind( 3 )
	Text	= CoverKind( 4 ) // actually, it also can be a code file
	Image	= CoverKind( 5 )
)

var kindNames = map[CoverKind]string{
	Opaque:	"opaque",
	Wav:	"wav",
	Mp3:	"mp3",
	GenericAudio:	"audio",
	Text:	"text",
	Image:	"image",
}

func ( k CoverKind ) String() string {
	return kindNames[k]
}

var extensions = map[CoverKind][]string{
	Wav:	{"wav"},
	Mp3:	{"mp3"},
	GenericAudio:	{"flac", "ogg", "oga", "opus", "m4a", "aac", "wma", "aif", "aiff"},
	Text:	{
		"txt", "md", "py", "java", "rs",
		"go", "sql", "c", "cpp", "h", "hpp",
		"ts", "js", "nim", "toml", "conf", "csv",
	},
	Image: {"png", "jpeg", "jpg", "gif", "bmp"},
}

// DetermineCoverKind maps a file extension (with or without the dot) to the
// codec family which handles it.
func DetermineCoverKind( ext string ) CoverKind {
	ext = strings.ToLower( strings.TrimPrefix( ext, "." ) )
	for kind, exts := range extensions {
		for _, e := range exts {
			if e == ext {
				return kind
			}
		}
	}
	return Opaque
}

func KindOf( path string ) CoverKind {
	return DetermineCoverKind( filepath.Ext( path ) )
}

// SupportedExtensions lists every extension routed to a dedicated codec.
func SupportedExtensions() []string {
	res := []string{}
	for _, kind := range []CoverKind{ Wav, Mp3, GenericAudio, Text, Image } {
		res = append( res, extensions[kind]... )
	}
	return res
}

/*
 * Service routes capacity, encode and decode requests to the codec for the
 * cover's kind. nothing escapes it except a Result: errors and panics inside
 * codecs become failed results.
 */
type Service struct {
	conf	config.SteganoConfig
	tc	audio.Transcoder
	qim	*audio.QimCodec
	blob	*blob.AppendCodec
	logger	*util.Logger
}

// NewService wires the codecs. tc may be nil when no transcoder is installed,
// mp3 covers then fail with DecodeUnavailable.
func NewService( conf config.SteganoConfig, tc audio.Transcoder, logger *util.Logger ) *Service {
	if logger == nil {
		logger = util.NewWriterLogger( io.Discard, 0 )
	}
	s := &Service{
		conf:	conf,
		tc:	tc,
		logger:	logger,
	}
	if tc != nil {
		s.qim = audio.NewQimCodec( tc )
	}
	if conf.AppendKey != "" {
		codec, err := blob.NewAppendCodec( conf.AppendKey )
		if err != nil {
			logger.LogError( err )
		} else {
			s.blob = codec
		}
	}
	return s
}

func ( s *Service ) withTimeout( ctx context.Context ) (context.Context, context.CancelFunc) {
	if t := s.conf.Timeout(); t > 0 {
		return context.WithTimeout( ctx, t )
	}
	return context.WithCancel( ctx )
}

func ( s *Service ) qimCodec() (*audio.QimCodec, error) {
	if s.qim == nil {
		return nil, fmt.Errorf("%w: no audio transcoder configured", sutil.ErrDecodeUnavailable)
	}
	return s.qim, nil
}

func ( s *Service ) appendCodec() (*blob.AppendCodec, error) {
	if s.blob == nil {
		return nil, fmt.Errorf("%w: append key is not configured", sutil.ErrUnsupportedMedium)
	}
	return s.blob, nil
}

// guard turns a panic into a failed result.
func ( s *Service ) guard( op, path string, res *sutil.Result ) {
	if r := recover(); r != nil {
		err := fmt.Errorf("%s %s: internal error: %v", op, path, r)
		s.logger.LogError( err )
		*res = sutil.Fail( err )
	}
}

func ( s *Service ) fail( op, path string, err error ) sutil.Result {
	s.logger.LogError( fmt.Errorf("%s %s: %w", op, path, err) )
	return sutil.Fail( err )
}

func ( s *Service ) Capacity( ctx context.Context, path string ) (res sutil.Result) {
	defer s.guard( "capacity", path, &res )

	capacity, err := s.capacity( ctx, path )
	if err != nil {
		return s.fail( "capacity", path, err )
	}
	return sutil.Result{ Status: true, Capacity: capacity }
}

func ( s *Service ) capacity( ctx context.Context, path string ) (sutil.Capacity, error) {
	ctx, cancel := s.withTimeout( ctx )
	defer cancel()

	switch KindOf( path ) {
	case Wav:
		n, err := audio.WavFileCapacity( path )
		return sutil.Bounded( n ), err
	case Mp3:
		qim, err := s.qimCodec()
		if err != nil {
			return sutil.Capacity{}, err
		}
		n, err := qim.Capacity( ctx, path )
		return sutil.Bounded( n ), err
	case Text:
		data, err := os.ReadFile( path )
		if err != nil {
			return sutil.Capacity{}, err
		}
		return sutil.Bounded( text.Capacity( data ) ), nil
	case Image:
		data, err := os.ReadFile( path )
		if err != nil {
			return sutil.Capacity{}, err
		}
		n, err := img.ImageCapacity( data )
		return sutil.Bounded( n ), err
	}

	if _, err := os.Stat( path ); err != nil {
		return sutil.Capacity{}, err
	}
	return sutil.Unbounded(), nil
}

// payloadLength is the length the codec for kind compares to its capacity.
func payloadLength( kind CoverKind, message string ) int {
	if kind == Text {
		return len([]rune(message))
	}
	return len(message)
}

func ( s *Service ) Encode( ctx context.Context, path, message, output string ) (res sutil.Result) {
	defer s.guard( "encode", path, &res )

	message = sutil.FixUnicode( message )
	if message == "" {
		return s.fail( "encode", path, sutil.ErrEmptyMessage )
	}

	kind := KindOf( path )
	capacity, err := s.capacity( ctx, path )
	if err != nil {
		return s.fail( "encode", path, err )
	}
	if n := payloadLength( kind, message ); !capacity.Fits( n ) {
		return s.fail( "encode", path, fmt.Errorf("%w: %d characters, %s cover holds %d",
			sutil.ErrCapacityExceeded, n, kind, capacity.Chars) )
	}

	data, err := s.encode( ctx, kind, path, message, output )
	if err != nil {
		return s.fail( "encode", path, err )
	}
	s.logger.LogInfo( fmt.Sprintf( "hid %d bytes in %s cover %s -> %s [%s]",
		len(message), kind, path, output, sutil.Fingerprint( data ) ) )
	return sutil.Result{ Status: true, Artifact: output, Capacity: capacity }
}

func ( s *Service ) encode( ctx context.Context, kind CoverKind, path, message, output string ) ([]byte, error) {
	if kind == Wav {
		return audio.HideInWavFile( path, message, output )
	}
	if kind == Mp3 {
		return s.encodeMp3( ctx, path, message, output )
	}

	cover, err := os.ReadFile( path )
	if err != nil {
		return nil, err
	}

	var data []byte
	switch kind {
	case Text:
		data, err = text.Hide( cover, message )
	case Image:
		data, err = img.Hide( cover, message )
	default:
		var codec *blob.AppendCodec
		if codec, err = s.appendCodec(); err == nil {
			data, err = codec.Hide( cover, message )
		}
	}
	if err != nil {
		return nil, err
	}
	return data, os.WriteFile( output, data, 0600 )
}

// encodeMp3 builds the artifact in a temporary file so a failed run never
// leaves anything at output.
func ( s *Service ) encodeMp3( ctx context.Context, path, message, output string ) ([]byte, error) {
	qim, err := s.qimCodec()
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout( ctx )
	defer cancel()

	tmp, err := sutil.CreateTempfile( s.conf.TempDir, "stego-*.mp3", nil )
	if err != nil {
		return nil, err
	}
	defer os.Remove( tmp )

	if err = qim.Hide( ctx, path, message, tmp ); err != nil {
		return nil, err
	}
	if err = audio.CopyTags( path, tmp ); err != nil {
		s.logger.LogWarning( fmt.Sprintf( "tags of %s were not carried over: %s", path, err.Error() ) )
	}

	data, err := os.ReadFile( tmp )
	if err != nil {
		return nil, err
	}
	if err = os.WriteFile( output, data, 0600 ); err != nil {
		return nil, err
	}
	if err = sutil.ShredFile( tmp ); err != nil {
		s.logger.LogWarning( "failed to shred " + tmp + ": " + err.Error() )
	}
	return data, nil
}

func ( s *Service ) Decode( ctx context.Context, path string ) (res sutil.Result) {
	defer s.guard( "decode", path, &res )

	message, err := s.decode( ctx, path )
	if err != nil {
		return s.fail( "decode", path, err )
	}
	return sutil.Result{ Status: true, Message: message }
}

func ( s *Service ) decode( ctx context.Context, path string ) (string, error) {
	kind := KindOf( path )
	switch kind {
	case Wav:
		return audio.RevealFromWavFile( path )
	case Mp3:
		qim, err := s.qimCodec()
		if err != nil {
			return "", err
		}
		ctx, cancel := s.withTimeout( ctx )
		defer cancel()
		return qim.Reveal( ctx, path )
	}

	data, err := os.ReadFile( path )
	if err != nil {
		return "", err
	}
	switch kind {
	case Text:
		return text.Reveal( data )
	case Image:
		return img.Reveal( data )
	}
	codec, err := s.appendCodec()
	if err != nil {
		return "", err
	}
	return codec.Reveal( data )
}
