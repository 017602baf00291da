// Package diag implements the error-reporting policy of spec.md §7:
// one human-readable line per failure, mapped to the exit codes of
// §6.4. Colorizing the severity word when stderr is a terminal is
// grounded on the teacher's use of golang.org/x/term for the same
// purpose in its readline-backed REPL tooling.
package diag

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/buildc/buildc/pkg/codegen"
	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/mir"
	"github.com/buildc/buildc/pkg/parser"
	"github.com/buildc/buildc/pkg/passes"
)

// Exit codes, spec.md §6.4.
const (
	ExitSuccess           = 0
	ExitParseOrLowering   = 1
	ExitUnknownToolchain  = 2
	ExitIOFailure         = 3
	ExitInternalInvariant = 4
)

// IOFailure wraps a failed filesystem operation with the path and
// underlying cause (spec.md §7).
type IOFailure struct {
	Op   string
	Path string
	Err  error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOFailure) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the pipeline to the process exit
// code spec.md §6.4 assigns its kind. A nil error is success.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch err.(type) {
	case *parser.ParseError, *hir.LoweringError:
		return ExitParseOrLowering
	case *mir.UnknownMethod, *mir.UnknownLanguage, *codegen.UnknownBackend:
		return ExitUnknownToolchain
	case *IOFailure:
		return ExitIOFailure
	case *passes.PassDivergence, *mir.UnreducedIR, *mir.InvalidArguments:
		return ExitInternalInvariant
	default:
		return ExitInternalInvariant
	}
}

var severityWord = map[int]string{
	ExitParseOrLowering:   "error",
	ExitUnknownToolchain:  "error",
	ExitIOFailure:         "error",
	ExitInternalInvariant: "internal error",
}

// Report writes one line describing err to w, colored red when w is a
// terminal.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	code := ExitCode(err)
	word := severityWord[code]
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(w, "\x1b[31m%s:\x1b[0m %v\n", word, err)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", word, err)
}
