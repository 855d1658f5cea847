package util
import (
	"os"
	"strings"
	"path/filepath"
)

func PickFileAtRandom( files []string ) (string, []string) {
	idx := RandInt( len(files) )
	file := files[idx]
	rest := append( append( []string{}, files[:idx]... ), files[idx+1:]... )
	return file, rest
}

// ReadFiles lists files in folder with one of the extensions (without dot).
func ReadFiles( folder string, supportedExtensions []string ) ([]string, error) {
	allFiles, err := os.ReadDir( folder )
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		if f.IsDir() {
			continue
		}
		for _, ext := range supportedExtensions {
			if strings.HasSuffix( strings.ToLower( f.Name() ), "." + ext ) {
				result = append( result, filepath.Join( folder, f.Name() ) )
				break
			}
		}
	}
	return result, nil
}
