package util
import (
	"os"
	"fmt"
	"bufio"
	"strings"
	"golang.org/x/term"
)

// PasswordVariable supplies the password for non interactive runs.
const PasswordVariable = "STEGO_PASSWORD"

// just a wrapper for term...
func GetPasswd( prompt string ) ([]byte, error) {
	if pass, ok := os.LookupEnv( PasswordVariable ); ok {
		return []byte( pass ), nil
	}
	fd := int( os.Stdin.Fd() )
	if !term.IsTerminal( fd ) {
		// piped input, take the first line
		line, err := bufio.NewReader( os.Stdin ).ReadString( '\n' )
		if err != nil && line == "" {
			return nil, err
		}
		return []byte( strings.TrimRight( line, "\r\n" ) ), nil
	}
	fmt.Fprint( os.Stderr, prompt )
	bytepw, err := term.ReadPassword( fd )
	fmt.Fprintln( os.Stderr )
	return bytepw, err
}
