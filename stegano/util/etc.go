package util
import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"os/exec"

	"github.com/zeebo/blake3"
	"golang.org/x/text/unicode/norm"
)

const (
	ShredingCount = 3
)

func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}

// Fingerprint is a short blake3 digest used to identify artifacts in logs.
func Fingerprint( data []byte ) string {
	sum := blake3.Sum256( data )
	return hex.EncodeToString( sum[:8] )
}

func ShredFile( filename string ) error {

	fileInfo, err := os.Stat( filename )
	if err != nil {
		return err
	}

	buf := make( []byte, fileInfo.Size() )

	for i := 0; i < ShredingCount; i++ {
		// just generate random bytes and write them as file content.
		if _, err := rand.Read( buf ); err != nil {
			return err
		}
		if err = os.WriteFile( filename, buf, 0600 ); err != nil {
			return err
		}
	}
	return os.Remove( filename )
}

// CreateTempfile creates a temporary file in dir ("" for the system default)
// and fills it with data when data is not nil.
func CreateTempfile( dir, pattern string, data []byte ) (string, error) {
	f, err := os.CreateTemp( dir, pattern )
	if err != nil {
		return "", err
	}
	defer f.Close()
	if data != nil {
		if _, err := f.Write( data ); err != nil {
			os.Remove( f.Name() )
			return "", err
		}
	}
	return f.Name(), nil
}

func PathToProgram( prog string ) (string, error) {
	path, err := exec.LookPath( prog )
	if errors.Is( err, exec.ErrDot ) {
		err = nil
	}
	return path, err
}
