package cmd

import (
	"errors"
	"strings"

	cerrors "github.com/hiperion-pscc/pscc/internal/errors"
)

// Exit codes mirror the original compiler's error.h table, so a script
// driving this binary can distinguish failure kinds without scraping text.
const (
	ExitOK = 0

	ExitBadToken    = 100 // ERRTOK
	ExitDupSymbol   = 110 // DUPSYM
	ExitBadSymbol   = 111 // BADSYM: identifier not found at use
	ExitBadCategory = 112 // BADCTG: symbol used against its declared kind
	ExitWrongType   = 113 // ERTYPE
	ExitBadArgCount = 114 // BADLEN
	ExitBadRefArg   = 115 // BADREF: reference argument's shape is wrong
	ExitNonRefArg   = 106 // OBJREF: plain value where a reference was required

	ExitNoCommand   = 995 // ENOCMD
	ExitPanic       = 996 // EPANIC
	ExitAbort       = 997 // EABORT
	ExitBadArgument = 998 // EARGMT: bad CLI invocation
)

// exitError pairs an error with the process exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCodeFor returns the process exit code for err, defaulting to
// ExitBadArgument for plain errors that were never classified (cobra's own
// usage errors, missing-file errors, and the like).
func ExitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitBadArgument
}

// classifyDiagnostics picks the exit code a *cerrors.List's first fatal
// diagnostic corresponds to, by matching the distinguishing substrings the
// semantic analyzer and parser use when reporting it.
func classifyDiagnostics(list *cerrors.List) int {
	for _, e := range list.All() {
		if !e.Fatal {
			continue
		}
		switch {
		case e.Phase == cerrors.PhaseLex:
			return ExitBadToken
		case e.Phase == cerrors.PhaseParse:
			return ExitBadToken
		case strings.Contains(e.Message, "already declared"), strings.Contains(e.Message, "duplicate declaration"):
			return ExitDupSymbol
		case strings.Contains(e.Message, "undeclared identifier"):
			return ExitBadSymbol
		case strings.Contains(e.Message, "BADREF"):
			return ExitBadRefArg
		case strings.Contains(e.Message, "not variable object"), strings.Contains(e.Message, "not array object"):
			return ExitNonRefArg
		case strings.Contains(e.Message, "wrong number of arguments"):
			return ExitBadArgCount
		case strings.Contains(e.Message, "cannot be used as a scalar"),
			strings.Contains(e.Message, "is not an array"),
			strings.Contains(e.Message, "is not a function"),
			strings.Contains(e.Message, "is not a procedure"),
			strings.Contains(e.Message, "cannot be assigned to"):
			return ExitBadCategory
		default:
			return ExitWrongType
		}
	}
	return ExitAbort
}
