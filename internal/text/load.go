// Package text loads the source novel and splits it into tokens.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Encoding identifies which decoder produced the loaded text
type Encoding string

const (
	UTF8 Encoding = "UTF-8"
	GBK  Encoding = "GBK"
)

// ErrUndecodable is returned when the file is neither UTF-8 nor GBK
var ErrUndecodable = errors.New("text is neither valid UTF-8 nor GBK")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the whole file at path, decoding it as UTF-8 and falling back
// to GBK once.
func Load(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading text: %w", err)
	}

	s, enc, err := Decode(data)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return s, enc, nil
}

// Decode converts raw bytes to a string using UTF-8, then GBK.
func Decode(data []byte) (string, Encoding, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), UTF8, nil
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	// The GBK decoder substitutes U+FFFD for invalid sequences instead of
	// failing; GBK itself cannot encode that rune.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", "", ErrUndecodable
	}
	return string(decoded), GBK, nil
}
