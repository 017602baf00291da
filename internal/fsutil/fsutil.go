//go:build unix

// Package fsutil implements the build-directory lifecycle of spec.md
// §6.3: create it if absent, accept it if already present, and fail
// with a typed I/O error otherwise. Reading the process umask to mask
// the requested 0777 mode is grounded on the teacher's pattern of
// reaching for golang.org/x/sys for OS facilities the standard
// library doesn't expose directly (pkg/readline uses x/sys/unix and
// x/term together for terminal control).
package fsutil

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/buildc/buildc/internal/diag"
)

// EnsureBuildDir creates path with mode 0777 masked by the process's
// effective umask if it does not already exist. A pre-existing
// directory is accepted silently; a pre-existing non-directory, or
// any other os error, is reported as an *diag.IOFailure.
func EnsureBuildDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return &diag.IOFailure{Op: "mkdir", Path: path, Err: fmt.Errorf("exists and is not a directory")}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return &diag.IOFailure{Op: "stat", Path: path, Err: err}
	}
	mode := os.FileMode(0o777) &^ os.FileMode(effectiveUmask())
	if err := os.MkdirAll(path, mode); err != nil {
		return &diag.IOFailure{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// effectiveUmask reads the process umask without permanently changing
// it: unix.Umask both sets and returns the prior mask in one syscall,
// so the read is a set-then-immediately-restore.
func effectiveUmask() int {
	old := unix.Umask(0)
	unix.Umask(old)
	return old
}
