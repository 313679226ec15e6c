package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	hintColor = color.New(color.Faint)
)

func printErr(w io.Writer, msg string) {
	_, _ = errColor.Fprintln(w, "Error: "+msg)
}

func printOK(w io.Writer, format string, args ...any) {
	_, _ = okColor.Fprintf(w, format+"\n", args...)
}

func printHint(w io.Writer, format string, args ...any) {
	_, _ = hintColor.Fprintf(w, format+"\n", args...)
}

// reportedError marks an error whose message the user has already seen.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// Reported reports whether err was already printed by the console.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// fieldErrors prints one line per invalid form field.
func fieldErrors(w io.Writer, err error) {
	fmt.Fprintln(w, "Please fix the following:")
	for _, line := range splitErrors(err) {
		_, _ = errColor.Fprintln(w, "  - "+line)
	}
}
