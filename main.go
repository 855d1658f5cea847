package main
import (
	"os"
	"fmt"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln( os.Stderr, "Error:", err )
		os.Exit( 1 )
	}
}
