package main
import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surventurer/Steganography-Website/config"
	sutil "github.com/Surventurer/Steganography-Website/stegano/util"
)

func run( t *testing.T, args ...string ) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut( out )
	rootCmd.SetArgs( args )
	outputFlag = ""
	err := rootCmd.Execute()
	if logger != nil {
		logger.Close()
	}
	return out.String(), err
}

func TestCommands( t *testing.T ) {
	home := t.TempDir()
	covers := t.TempDir()
	t.Setenv( config.AppendKeyVariable, "cli test key" )

	out, err := run( t, "initconfig", "--plain", "--home", home )
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written")
	assert.FileExists(t, filepath.Join( home, ConfigFilename ))

	_, err = run( t, "initconfig", "--plain", "--home", home )
	assert.Error(t, err)

	cover := filepath.Join( covers, "notes.txt" )
	require.NoError(t, os.WriteFile( cover, []byte("the quick brown fox jumps over the lazy dog"), 0600 ))
	blob := filepath.Join( covers, "data.bin" )
	require.NoError(t, os.WriteFile( blob, []byte{1, 2, 3}, 0600 ))

	out, err = run( t, "capacity", "--plain", "--home", home, cover )
	require.NoError(t, err)
	var res sutil.Result
	require.NoError(t, json.Unmarshal( []byte(out), &res ))
	assert.Equal(t, 9, res.Capacity.Chars)

	// a folder lists every supported file
	out, err = run( t, "capacity", "--plain", "--home", home, covers )
	require.NoError(t, err)
	assert.Contains(t, out, "notes.txt\ttext\t9")
	assert.NotContains(t, out, "data.bin")

	stego := filepath.Join( covers, "stego.bin" )
	_, err = run( t, "encode", "--plain", "--home", home, "-o", stego, blob, "meet me" )
	require.NoError(t, err)

	out, err = run( t, "decode", "--plain", "--home", home, stego )
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal( []byte(out), &res ))
	assert.True(t, res.Status)
	assert.Equal(t, "meet me", res.Message)

	// random cover from a folder
	out, err = run( t, "encode", "--plain", "--home", home, covers, "hi" )
	require.NoError(t, err)
	res = sutil.Result{}
	require.NoError(t, json.Unmarshal( []byte(out), &res ))
	assert.True(t, res.Status)
	assert.FileExists(t, res.Artifact)

	_, err = run( t, "decode", "--plain", "--home", home, cover )
	assert.Error(t, err)

	out, err = run( t, "readlog", "--plain", "--home", home )
	require.NoError(t, err)
	assert.Contains(t, out, "hid 7 bytes in opaque cover")

	out, err = run( t, "gensalt" )
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix( out, "[+] Generated salt:" ))
}

func TestNewTranscoder( t *testing.T ) {
	_, err := newTranscoder( config.SteganoConfig{ Transcoder: "lame" } )
	assert.ErrorContains(t, err, "unknown transcoder")

	for _, name := range []string{ config.TranscoderFFmpeg, config.TranscoderSox } {
		sc := config.SteganoConfig{
			Transcoder: name,
			FFmpegPath: "no-such-ffmpeg-binary",
			SoxPath: "no-such-sox-binary",
		}
		tc, err := newTranscoder( sc )
		assert.ErrorIs(t, err, sutil.ErrDecodeUnavailable, name)
		assert.Nil(t, tc)
	}
}
