package util
import (
	"log"
	"os"
)

// DebugVariable enables debug output when set to a non empty value.
const DebugVariable = "STEGO_DEBUG"

var (
	DebugMode = os.Getenv( DebugVariable ) != ""
)


func DebugPrintln( args ...any ) {
	if DebugMode {
		log.Println( args... )
	}
}

func DebugPrintf( format string, args ...any ) {
	if DebugMode {
		log.Printf( format, args... )
	}
}
