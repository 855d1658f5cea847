package main
import (
	"os"
	"fmt"
	"context"
	"errors"
	"io/fs"
	"os/signal"
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Surventurer/Steganography-Website/util"
	"github.com/Surventurer/Steganography-Website/config"
	"github.com/Surventurer/Steganography-Website/stegano"
	"github.com/Surventurer/Steganography-Website/stegano/audio"
	"github.com/Surventurer/Steganography-Website/cryptography"
	sutil "github.com/Surventurer/Steganography-Website/stegano/util"
)

const (
	StegoFolder = ".stegano"
	ConfigFilename = "config.yaml"
	LogFilename = "log.log"
	SaltFilename = "salt.bin"
)

var (
	homeFlag string
	outputFlag string
	plainFlag bool

	// filled by loadService
	conf *config.FullConfig
	service *stegano.Service
	logger *util.Logger
)

var rootCmd = &cobra.Command{
	Use: "stego",
	Short: "Hide short text messages inside audio, text, image and arbitrary files",
	SilenceUsage: true,
	SilenceErrors: true,
}

var capacityCmd = &cobra.Command{
	Use: "capacity <file|folder>",
	Short: "Show how many characters a cover can carry",
	Args: cobra.ExactArgs(1),
	PreRunE: loadService,
	RunE: runCapacity,
}

var encodeCmd = &cobra.Command{
	Use: "encode <cover|folder> <message>",
	Short: "Hide a message, a folder means a random cover from it",
	Args: cobra.ExactArgs(2),
	PreRunE: loadService,
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use: "decode <file>",
	Short: "Extract a hidden message",
	Args: cobra.ExactArgs(1),
	PreRunE: loadService,
	RunE: runDecode,
}

var gensaltCmd = &cobra.Command{
	Use: "gensalt",
	Short: "Generate base64-encoded salt for a password",
	Args: cobra.NoArgs,
	RunE: func( cmd *cobra.Command, args []string ) error {
		return util.GenSalt( cmd.OutOrStdout() )
	},
}

var initconfigCmd = &cobra.Command{
	Use: "initconfig",
	Short: "Write the default configuration",
	Args: cobra.NoArgs,
	RunE: runInitConfig,
}

var editconfCmd = &cobra.Command{
	Use: "editconf",
	Short: "Edit configuration in a secure manner",
	Args: cobra.NoArgs,
	RunE: func( cmd *cobra.Command, args []string ) error {
		key, err := storageKey()
		if err != nil {
			return err
		}
		return util.EditConfig( configFile(), key )
	},
}

var readlogCmd = &cobra.Command{
	Use: "readlog",
	Short: "Print the log file",
	Args: cobra.NoArgs,
	RunE: runReadLog,
}

func init() {
	rootCmd.PersistentFlags().StringVar( &homeFlag, "home", "", "folder with configuration and logs (default ~/" + StegoFolder + ")" )
	rootCmd.PersistentFlags().BoolVar( &plainFlag, "plain", false, "configuration is stored unencrypted, no password prompt" )
	encodeCmd.Flags().StringVarP( &outputFlag, "output", "o", "", "where to write the artifact (default: next to the cover)" )

	rootCmd.AddCommand( capacityCmd, encodeCmd, decodeCmd, gensaltCmd, initconfigCmd, editconfCmd, readlogCmd )
}

func Execute() error {
	defer func() {
		if logger != nil {
			logger.Close()
		}
	}()
	ctx, stop := signal.NotifyContext( context.Background(), os.Interrupt )
	defer stop()
	return rootCmd.ExecuteContext( ctx )
}

func stegoFolder() string {
	if homeFlag != "" {
		return homeFlag
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return StegoFolder
	}
	return filepath.Join( home, StegoFolder )
}

func configFile() string {
	return filepath.Join( stegoFolder(), ConfigFilename )
}

// read/generate salt
func getSalt( folder string ) ([]byte, error) {
	saltFile := filepath.Join( folder, SaltFilename )
	salt, err := os.ReadFile( saltFile )
	if errors.Is( err, fs.ErrNotExist ) {
		if salt, err = cryptography.GenRandom( cryptography.SaltSize ); err != nil {
			return nil, err
		}
		err = os.WriteFile( saltFile, salt, 0600 )
	}
	return salt, err
}

// storageKey is nil for plain configurations.
func storageKey() ([]byte, error) {
	if plainFlag {
		return nil, nil
	}
	folder := stegoFolder()
	if err := os.MkdirAll( folder, 0700 ); err != nil {
		return nil, fmt.Errorf("Failed to create %s: %w", folder, err)
	}
	saltBytes, err := getSalt( folder )
	if err != nil {
		return nil, fmt.Errorf("Failed to get salt bytes: %w", err)
	}
	password, err := util.GetPasswd( "Password: " )
	if err != nil {
		return nil, fmt.Errorf("Failed to read password: %w", err)
	}
	return cryptography.DeriveKey( password, saltBytes ), nil
}

func runInitConfig( cmd *cobra.Command, args []string ) error {
	key, err := storageKey()
	if err != nil {
		return err
	}
	if err := os.MkdirAll( stegoFolder(), 0700 ); err != nil {
		return err
	}
	if _, err := os.Stat( configFile() ); err == nil {
		return fmt.Errorf("%s already exists, use editconf", configFile())
	}
	c := config.Default( filepath.Join( stegoFolder(), LogFilename ) )
	if err := config.SaveConfig( configFile(), key, c ); err != nil {
		return fmt.Errorf("Failed to save default configuration: %w", err)
	}
	fmt.Fprintln( cmd.OutOrStdout(), "[+] Configuration written to", configFile() )
	return nil
}

func loadService( cmd *cobra.Command, args []string ) error {
	key, err := storageKey()
	if err != nil {
		return err
	}
	conf, err = config.LoadConfig( configFile(), key )
	if err != nil {
		return fmt.Errorf("Failed to load configuration (run initconfig first?): %w", err)
	}
	logger = util.NewLogger( &conf.Logger )

	sc := conf.StegConfig
	tc, err := newTranscoder( sc )
	if err != nil {
		logger.LogWarning( "mp3 covers are unavailable: " + err.Error() )
	}
	service = stegano.NewService( sc, tc, logger )
	return nil
}

// newTranscoder picks the program which handles mp3 covers.
func newTranscoder( sc config.SteganoConfig ) (audio.Transcoder, error) {
	switch sc.Transcoder {
	case "", config.TranscoderFFmpeg:
		ff, err := audio.NewFFmpeg( sc.FFmpegPath, sc.FFprobePath, sc.Bitrate )
		if err != nil {
			return nil, err
		}
		return ff, nil
	case config.TranscoderSox:
		sx, err := audio.NewSox( sc.SoxPath, sc.Mp3Quality )
		if err != nil {
			return nil, err
		}
		return sx, nil
	}
	return nil, fmt.Errorf("unknown transcoder %q", sc.Transcoder)
}

func printResult( cmd *cobra.Command, res sutil.Result ) error {
	out, err := json.MarshalIndent( res, "", "  " )
	if err != nil {
		return err
	}
	fmt.Fprintln( cmd.OutOrStdout(), string(out) )
	if !res.Status {
		return errors.New( res.Detail )
	}
	return nil
}

func runCapacity( cmd *cobra.Command, args []string ) error {
	ctx := cmd.Context()
	info, err := os.Stat( args[0] )
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return printResult( cmd, service.Capacity( ctx, args[0] ) )
	}

	files, err := util.ReadFiles( args[0], stegano.SupportedExtensions() )
	if err != nil {
		return err
	}
	for _, f := range files {
		res := service.Capacity( ctx, f )
		if res.Status {
			fmt.Fprintf( cmd.OutOrStdout(), "%s\t%s\t%s\n", f, stegano.KindOf( f ), capacityString( res.Capacity ) )
		} else {
			fmt.Fprintf( cmd.OutOrStdout(), "%s\t%s\terror: %s\n", f, stegano.KindOf( f ), res.Detail )
		}
	}
	return nil
}

func capacityString( c sutil.Capacity ) string {
	if c.Unbounded {
		return "unbounded"
	}
	return fmt.Sprintf( "%d", c.Chars )
}

// pickCover tries random files of folder until one can carry message.
func pickCover( ctx context.Context, folder, message string ) (string, error) {
	files, err := util.ReadFiles( folder, stegano.SupportedExtensions() )
	if err != nil {
		return "", err
	}
	for len(files) > 0 {
		var file string
		file, files = util.PickFileAtRandom( files )
		res := service.Capacity( ctx, file )
		if res.Status && res.Capacity.Fits( len([]rune( sutil.FixUnicode( message ) )) ) {
			return file, nil
		}
	}
	return "", fmt.Errorf("%w: no file in %s can carry the message", sutil.ErrCapacityExceeded, folder)
}

func runEncode( cmd *cobra.Command, args []string ) error {
	ctx := cmd.Context()
	cover, message := args[0], args[1]

	if info, err := os.Stat( cover ); err == nil && info.IsDir() {
		if cover, err = pickCover( ctx, cover, message ); err != nil {
			return err
		}
	}
	output := outputFlag
	if output == "" {
		output = util.OutputFilename( cover )
	}
	return printResult( cmd, service.Encode( ctx, cover, message, output ) )
}

func runDecode( cmd *cobra.Command, args []string ) error {
	return printResult( cmd, service.Decode( cmd.Context(), args[0] ) )
}

func runReadLog( cmd *cobra.Command, args []string ) error {
	key, err := storageKey()
	if err != nil {
		return err
	}
	c, err := config.LoadConfig( configFile(), key )
	if err != nil {
		return err
	}
	var logKey []byte
	if c.Logger.IsEncrypted {
		if logKey, err = cryptography.KeyFromPassword( c.Logger.Password ); err != nil {
			return err
		}
	}
	return util.ReadLog( cmd.OutOrStdout(), c.Logger.Filename, logKey )
}
