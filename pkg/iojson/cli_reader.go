package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document of type T named by a --file flag. A
// path of "-" reads stdin, which must not be a terminal.
type FileReader[T any] struct {
	path string
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON file, or - to read stdin",
		Destination: &fr.path,
	}
}

// Provided reports whether the flag was set.
func (fr *FileReader[T]) Provided() bool {
	return fr.path != ""
}

// Read opens the file (or stdin) and decodes it.
func (fr *FileReader[T]) Read() (T, error) {
	var zero T

	if fr.path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return zero, fmt.Errorf("no input provided (stdin is a terminal); pipe JSON input or pass a file path")
		}
		return Decode[T](os.Stdin)
	}

	f, err := os.Open(fr.path)
	if err != nil {
		return zero, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode[T](f)
}

// Decode reads one JSON document of type T from r.
func Decode[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return v, fmt.Errorf("decode JSON: %w", err)
	}
	return v, nil
}
