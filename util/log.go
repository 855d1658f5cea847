package util
import (
	"io"
	"os"
	"sync"
	"time"
	"errors"
	"io/fs"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Surventurer/Steganography-Website/cryptography"
)

/*
 * a custom logger. plain logs go through a rotating writer, encrypted logs
 * are rewritten as a whole on every line.
 */
const (
	Error = 1
	Warning = 2
	Info = 4

	RedColor = "\033[31m"
	YellowColor = "\033[33m"
	GreenColor = "\033[32m"
	CyanColor = "\033[36m"
	BlueColor = "\033[34m"
	MagentaColor = "\033[35m"
	ResetColor = "\033[0m"
)

type LoggerInfo struct {
	Filename	string		`yaml:"filename"`
	Password	string		`yaml:"password"`	// <base64 salt>:<password>
	IsEncrypted	bool		`yaml:"is_encrypted"`
	IsColored	bool		`yaml:"is_colored"`
	SaveTime	bool		`yaml:"save_time"`
	Mode		uint8		`yaml:"mode"`

	// rotation of plain logs, megabytes and files
	MaxSize		int		`yaml:"max_size"`
	MaxBackups	int		`yaml:"max_backups"`
	Compress	bool		`yaml:"compress"`
}

type Logger struct {
	li		*LoggerInfo
	mtx		sync.Mutex
	out		io.Writer
	key		[]byte
}

func NewLogger( li *LoggerInfo ) *Logger {
	l := &Logger{ li: li }
	switch {
	case li.IsEncrypted:
		key, err := cryptography.KeyFromPassword( li.Password )
		if err != nil {
			DebugPrintln( "[log] encrypted log without a usable password:", err )
			l.out = io.Discard
		}
		l.key = key
	case li.Filename == "":
		l.out = os.Stderr
	default:
		l.out = &lumberjack.Logger{
			Filename: li.Filename,
			MaxSize: li.MaxSize,
			MaxBackups: li.MaxBackups,
			Compress: li.Compress,
		}
	}
	return l
}

// NewWriterLogger writes every level to w, used by tests and the cli.
func NewWriterLogger( w io.Writer, mode uint8 ) *Logger {
	return &Logger{
		li: &LoggerInfo{ Mode: mode },
		out: w,
	}
}

func(l *Logger) Close() error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if c, ok := l.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func(l *Logger) colorize( line string, color string ) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func(l *Logger) prepareString( str string, clr string ) string {
	toWrite := l.colorize( str, clr ) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format( time.RFC3339 ) + " "
	}
	return toWrite
}

func(l *Logger) LogString( s string ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.out != nil {
		// just append line
		io.WriteString( l.out, s + "\n" )
		return
	}

	currentLog := []byte{}
	data, err := os.ReadFile( l.li.Filename )
	if err == nil {
		currentLog, err = cryptography.Decrypt( data, l.key )
	} else if errors.Is( err, fs.ErrNotExist ) {
		err = nil
	}
	if err != nil {
		DebugPrintln( "[log] failed to read encrypted log:", err )
		return
	}
	newData, err := cryptography.Encrypt( append( currentLog, []byte(s + "\n")... ), l.key )
	if err == nil {
		err = os.WriteFile( l.li.Filename, newData, 0600 )
	}
	if err != nil {
		DebugPrintln( "[log] failed to write encrypted log:", err )
	}
}

func(l *Logger) LogError(err error) {
	if l.li.Mode & Error == Error {
		toWrite := l.prepareString("[ERROR]", RedColor) + err.Error()
		l.LogString( toWrite )
	}
}

func(l *Logger) LogWarning( warning string ) {
	if l.li.Mode & Warning == Warning {
		toWrite := l.prepareString("[WARNING]", YellowColor) + warning
		l.LogString( toWrite )
	}
}


func(l *Logger) LogInfo( info string ) {
	if l.li.Mode & Info == Info {
		toWrite := l.prepareString( "[INFO]", CyanColor ) + info
		l.LogString( toWrite )
	}
}
