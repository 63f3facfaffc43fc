package editor

import "fmt"

// FatalError reports a terminal I/O failure. The editor cannot continue
// after one: the caller must restore the terminal and exit.
type FatalError struct {
	Op  string // Operation that failed (e.g., "refresh screen", "read key")
	Err error  // Underlying error
}

func (e *FatalError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
