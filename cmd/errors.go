package cmd

import "fmt"

type ErrorKind int

const (
	// KindParse covers unknown or malformed flags, missing required flags and
	// invalid flag values. Nothing was downloaded.
	KindParse ErrorKind = iota + 1
	// KindRun covers every fault raised while talking to storage or writing
	// local files.
	KindRun
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindRun:
		return "run"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by Execute so callers can tell argument errors from
// download failures.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func parseError(err error) error {
	return &Error{Kind: KindParse, Err: err}
}

func runError(err error) error {
	return &Error{Kind: KindRun, Err: err}
}
