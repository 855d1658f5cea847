package config
import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Surventurer/Steganography-Website/cryptography"
	"github.com/Surventurer/Steganography-Website/util"
)

// AppendKeyVariable overrides the configured append key when set.
const AppendKeyVariable = "STEGO_APPEND_KEY"

// programs which can decode and encode mp3 covers
const (
	TranscoderFFmpeg	= "ffmpeg"
	TranscoderSox	= "sox"
)

/*
 * Configuration for steganography: the key for appended payloads and the
 * external programs used to decode and encode compressed audio.
 */
type SteganoConfig struct {
	AppendKey	string `yaml:"append_key"`
	Transcoder	string `yaml:"transcoder"` // ffmpeg or sox
	FFmpegPath	string `yaml:"ffmpeg_path"`
	FFprobePath	string `yaml:"ffprobe_path"`
	Bitrate	string `yaml:"mp3_bitrate"`
	SoxPath	string `yaml:"sox_path"`
	Mp3Quality	int	`yaml:"mp3_quality"` // sox only, negative keeps the default
	TranscodeTimeout	uint	`yaml:"transcode_timeout"` // seconds, 0 disables
	TempDir	string `yaml:"temp_dir"`
}

func ( s SteganoConfig ) Timeout() time.Duration {
	return time.Duration( s.TranscodeTimeout ) * time.Second
}

type FullConfig struct {
	StegConfig	SteganoConfig	`yaml:"steganography_config"`
	Logger	util.LoggerInfo `yaml:"logger_config"`
}

func Default( logFile string ) *FullConfig {
	return &FullConfig{
		StegConfig: SteganoConfig{
			Transcoder:	TranscoderFFmpeg,
			FFmpegPath:	"ffmpeg",
			FFprobePath:	"ffprobe",
			Bitrate:	"256k",
			SoxPath:	"sox",
			Mp3Quality:	-1,
			TranscodeTimeout:	120,
		},
		Logger: util.LoggerInfo{
			Filename:	logFile,
			IsColored:	false,
			SaveTime:	true,
			Mode:	util.Error | util.Warning | util.Info,
			MaxSize:	10,
			MaxBackups:	3,
		},
	}
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig( filename string, key []byte ) (*FullConfig, error) {
	data, err := LoadEncrypted( filename, key )
	if err != nil {
		return nil, err
	}

	var conf FullConfig
	if err := yaml.Unmarshal( data, &conf ); err != nil {
		return nil, err
	}
	conf.applyEnv()
	return &conf, nil
}

func SaveConfig( filename string, key []byte, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return SaveEncrypted( filename, key, data )
}

func ( c *FullConfig ) applyEnv() {
	if k := os.Getenv( AppendKeyVariable ); k != "" {
		c.StegConfig.AppendKey = k
	}
}

/*
 * Functions for saving and loading encrypted files.
 */
func LoadEncrypted( filename string, key []byte ) ([]byte, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Decrypt( data, key )
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted( filename string, key, data []byte ) error {

	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt( data, key )
		if err != nil {
			return err
		}
	}
	return os.WriteFile( filename, data, 0600 )
}
