// Package errs is the project's error vocabulary, a thin layer over
// cockroachdb/errors. Domain and usecase code returns sentinel errors
// marked with Mark so handlers can match them with errors.Is while the
// full cause chain and stack stay attached for logging.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches sentinel as an errors.Is target on err without hiding
// the original cause. A nil err yields the sentinel itself.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return cr.Mark(err, sentinel)
}

// ExtractStackLines renders the %+v form of err and returns at most
// maxLines lines of it, for structured log fields.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
