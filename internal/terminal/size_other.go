//go:build !unix

package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// windowSize returns the size of the terminal behind w.
func windowSize(w io.Writer) (int, int, error) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, errors.New("output is not a file")
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}
