//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// windowSize queries the kernel for the size of the terminal behind w.
func windowSize(w io.Writer) (int, int, error) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, errors.New("output is not a file")
	}
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
