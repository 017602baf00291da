//go:build !unix

// Package fsutil implements the build-directory lifecycle of spec.md
// §6.3 on platforms without a umask to read: create it if absent,
// accept it if already present, and fail with a typed I/O error
// otherwise. Grounded on the teacher's plain os.MkdirAll usage in
// pkg/module/module.go, which makes no umask adjustment either.
package fsutil

import (
	"fmt"
	"os"

	"github.com/buildc/buildc/internal/diag"
)

// EnsureBuildDir creates path with mode 0777 if it does not already
// exist. A pre-existing directory is accepted silently; a
// pre-existing non-directory, or any other os error, is reported as
// a *diag.IOFailure.
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
	if err := os.MkdirAll(path, 0o777); err != nil {
		return &diag.IOFailure{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}
