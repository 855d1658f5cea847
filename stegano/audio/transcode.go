package audio
import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Surventurer/Steganography-Website/stegano/util"
)

const (
	DefaultBitrate = "256k"
)

// PCM is decoded mono audio.
type PCM struct {
	Samples	[]int16
	SampleRate	int
}

/*
 * Transcoder turns a compressed audio file into mono 16 bit samples and
 * back. Both calls block; the caller owns cancellation through ctx.
 */
type Transcoder interface {
	Decode( ctx context.Context, path string ) (*PCM, error)
	Encode( ctx context.Context, pcm *PCM, path string ) error
}

// FFmpeg runs the ffmpeg and ffprobe binaries with pipes.
type FFmpeg struct {
	FFmpegPath	string
	FFprobePath	string
	Bitrate	string
}

func NewFFmpeg( ffmpeg, ffprobe, bitrate string ) (*FFmpeg, error) {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	ffmpegPath, err := util.PathToProgram( ffmpeg )
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found: %s", util.ErrDecodeUnavailable, ffmpeg, err.Error())
	}
	ffprobePath, err := util.PathToProgram( ffprobe )
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found: %s", util.ErrDecodeUnavailable, ffprobe, err.Error())
	}
	return &FFmpeg{ ffmpegPath, ffprobePath, bitrate }, nil
}

func ( f *FFmpeg ) Decode( ctx context.Context, path string ) (*PCM, error) {
	raw := new( bytes.Buffer )
	err := f.run( ctx, f.FFmpegPath, nil, raw,
		"-y", "-v", "quiet", "-i", path,
		"-f", "s16le", "-acodec", "pcm_s16le", "-ac", "1", "-" )
	if err != nil {
		return nil, err
	}

	rate, err := f.sampleRate( ctx, path )
	if err != nil {
		return nil, err
	}
	return &PCM{
		Samples:	BytesToSamples( raw.Bytes() ),
		SampleRate:	rate,
	}, nil
}

func ( f *FFmpeg ) Encode( ctx context.Context, pcm *PCM, path string ) error {
	if pcm == nil || pcm.SampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate", util.ErrDecodeUnavailable)
	}
	return f.run( ctx, f.FFmpegPath, bytes.NewReader( SamplesToBytes( pcm.Samples ) ), io.Discard,
		"-y", "-v", "quiet",
		"-f", "s16le", "-acodec", "pcm_s16le", "-ac", "1",
		"-ar", strconv.Itoa( pcm.SampleRate ), "-i", "-",
		"-b:a", f.Bitrate, path )
}

func ( f *FFmpeg ) sampleRate( ctx context.Context, path string ) (int, error) {
	out := new( bytes.Buffer )
	err := f.run( ctx, f.FFprobePath, nil, out,
		"-v", "quiet", "-select_streams", "a:0",
		"-show_entries", "stream=sample_rate",
		"-of", "csv=p=0", path )
	if err != nil {
		return 0, err
	}
	rate, err := strconv.Atoi( strings.TrimSpace( out.String() ) )
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("%w: ffprobe reported no sample rate for %s", util.ErrDecodeUnavailable, path)
	}
	return rate, nil
}

func ( f *FFmpeg ) run( ctx context.Context, prog string, stdin io.Reader, stdout io.Writer, args ...string ) error {
	cmd := exec.CommandContext( ctx, prog, args... )
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	stderr := new( bytes.Buffer )
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s interrupted: %s", util.ErrDecodeUnavailable, prog, ctx.Err().Error())
		}
		return fmt.Errorf("%w: %s failed: %s (%s)", util.ErrDecodeUnavailable, prog, err.Error(), strings.TrimSpace( stderr.String() ))
	}
	return nil
}

// s16le helpers
func BytesToSamples( raw []byte ) []int16 {
	samples := make( []int16, len(raw)/2 )
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16( raw[2*i:] ))
	}
	return samples
}

func SamplesToBytes( samples []int16 ) []byte {
	raw := make( []byte, 2*len(samples) )
	for i, s := range samples {
		binary.LittleEndian.PutUint16( raw[2*i:], uint16(s) )
	}
	return raw
}
