package resource

import (
	"fmt"

	"golang.org/x/xerrors"
)

// xErrorsFrameCaller is passed into error functions to indicate the default stack frame
const xErrorsFrameCaller = 1

// Sentinel conditions callers may test with xerrors.Is.
var (
	// ErrNoContent indicates the resource declares no content files at all.
	ErrNoContent = xerrors.New("resource has no content files")

	// ErrNoSource indicates neither a cached copy nor an online direct URL
	// is available for the main file.
	ErrNoSource = xerrors.New("no local or remote source for main file")

	// ErrNotCached indicates no local package directory exists for a URL.
	ErrNotCached = xerrors.New("package is not cached locally")
)

// ErrMsgResourceLoad keys the user-facing error shown when downloading or
// opening a resource's files fails. Translation and display belong to the
// presentation layer.
const ErrMsgResourceLoad = "resource.errorwhileloadingthecontent"

// Error is a coded error for more granular tracking
type Error struct {
	Context string
	Message string
	Code    int
	Frame   xerrors.Frame
	Cond    error
}

// FormatError will print a simple message to the Printer object. This will be what you see when you Println or use %s/%v in a formatted print statement.
func (e Error) FormatError(p xerrors.Printer) error {
	if len(e.Context) > 0 {
		p.Printf("COURSEKITRES-%d %s (%s)", e.Code, e.Message, e.Context)
	} else {
		p.Printf("COURSEKITRES-%d %s", e.Code, e.Message)
	}
	e.Frame.Format(p)
	return nil
}

// Format provide backwards compatibility with pre-xerrors package
func (e Error) Format(f fmt.State, c rune) {
	xerrors.FormatError(e, f, c)
}

// Error satisfies the Go error contract
func (e Error) Error() string {
	return fmt.Sprint(e)
}

// Unwrap exposes the sentinel condition so xerrors.Is can match it.
func (e Error) Unwrap() error {
	return e.Cond
}

func noContentError(context string, frame xerrors.Frame) *Error {
	return &Error{
		Context: context,
		Message: "resource declares no content files",
		Code:    100,
		Frame:   frame,
		Cond:    ErrNoContent,
	}
}

func noSourceError(context string, frame xerrors.Frame) *Error {
	return &Error{
		Context: context,
		Message: "main file has neither a cached copy nor a reachable remote URL",
		Code:    110,
		Frame:   frame,
		Cond:    ErrNoSource,
	}
}

func notCachedError(context string, frame xerrors.Frame) *Error {
	return &Error{
		Context: context,
		Message: "no cached package directory for URL",
		Code:    120,
		Frame:   frame,
		Cond:    ErrNotCached,
	}
}
