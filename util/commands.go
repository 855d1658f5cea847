package util
import (
	"os"
	"fmt"
	"io"
	"os/exec"
	"unicode"
	"unicode/utf8"

	"github.com/Surventurer/Steganography-Website/cryptography"
	sutil "github.com/Surventurer/Steganography-Website/stegano/util"
)

const (
	TextEditor = "/usr/bin/vi"
	TextEditorVariableName = "STEGO_EDITOR"
)

/*
 * user-related functions which are required
 * in order not to bother the user with constant decrypt-edit-encrypt things.
 */
func EditConfig( conf string, key []byte ) error {
	// decrypt config, put it into temporary file, edit,
	// read, shred temporary file and put encrypted configuration
	// back.
	te := TextEditor
	if editor := os.Getenv( TextEditorVariableName ); editor != "" {
		te = editor
	}

	data, err := os.ReadFile( conf )
	if err != nil {
		return fmt.Errorf("Failed to read configuration: %w", err)
	}

	pt := data
	if len(key) == cryptography.SymKeySize {
		pt, err = cryptography.Decrypt( data, key )
		if err != nil {
			return fmt.Errorf("Failed to decrypt configuration: %w; Invalid password?", err)
		}
	}

	tempFile, err := sutil.CreateTempfile( "", "stego-config-*.yaml", pt )
	if err != nil {
		return fmt.Errorf("Failed to write into temporary file: %w", err)
	}
	defer sutil.ShredFile( tempFile )	// not to forget to securely delete file

	cmd := exec.Command( te, tempFile )
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("Failed to edit file using %v: %w", te, err)
	}

	pt, err = os.ReadFile( tempFile )
	if err != nil {
		return fmt.Errorf("Failed to read temporary file: %w", err)
	}

	if len(key) == cryptography.SymKeySize {
		if pt, err = cryptography.Encrypt( pt, key ); err != nil {
			return err
		}
	}
	return os.WriteFile( conf, pt, 0600 )
}

// ReadLog prints a log file, decrypting it when key opens it.
func ReadLog( w io.Writer, log string, key []byte ) error {
	data, err := os.ReadFile( log )
	if err != nil {
		return fmt.Errorf("Failed to read file: %w", err)
	}
	if len(key) == cryptography.SymKeySize {
		if logs, err := cryptography.Decrypt( data, key ); err == nil {
			_, err = w.Write( logs )
			return err
		}
	}

	// logs are unencrypted?
	if !utf8.Valid( data ) {
		return fmt.Errorf("Failed to decrypt logs: invalid password.")
	}
	for _, r := range string(data) {
		if !unicode.IsPrint( r ) && !unicode.IsSpace( r ) && r != '\033' {
			return fmt.Errorf("Failed to decrypt logs: invalid password.")
		}
	}
	_, err = w.Write( data )
	return err
}

func GenSalt( w io.Writer ) error {
	salt, err := cryptography.GenSalt()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln( w, "[+] Generated salt:", salt )
	return err
}
