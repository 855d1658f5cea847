package util
import (
	"path/filepath"
	"strings"
)

// OutputFilename picks a fresh name next to input keeping its extension.
func OutputFilename( input string ) string {
	ext := strings.TrimPrefix( filepath.Ext( input ), "." )
	base := strings.TrimSuffix( filepath.Base( input ), filepath.Ext( input ) )
	if ext == "" {
		ext = "bin"
	}
	return filepath.Join( filepath.Dir( input ), GenFilename( base + "-", ext ) )
}
