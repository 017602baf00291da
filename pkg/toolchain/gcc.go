// Package toolchain implements component C1: concrete compiler/
// linker/archiver objects and the per-language registry that resolves
// a language string to a mir.Toolchain for a given machine. The
// registry pattern is grounded in the teacher's backend registry
// (pkg/codegen/backend.go: RegisterBackend/GetBackend/ListBackends).
package toolchain

import (
	"github.com/buildc/buildc/pkg/mir"
)

// gccCompiler is a GCC-family compiler handle (also used for clang,
// which is argv-compatible).
type gccCompiler struct {
	program string
	id      string
}

func (c *gccCompiler) Command() []string          { return []string{c.program} }
func (c *gccCompiler) Identifier() string         { return c.id }
func (c *gccCompiler) RspSupport() mir.RspSupport { return mir.RspGCC }
func (c *gccCompiler) OutputCommand(out string) []string {
	return []string{"-o", out}
}
func (c *gccCompiler) CompileOnlyCommand() []string { return []string{"-c"} }

// gccLinker drives the compiler binary itself as the link driver, the
// common Unix convention.
type gccLinker struct {
	program string
}

func (l *gccLinker) Command() []string { return []string{l.program} }
func (l *gccLinker) OutputCommand(out string) []string {
	return []string{"-o", out}
}

// gnuArchiver wraps the `ar` tool.
type gnuArchiver struct{}

func (a *gnuArchiver) Command() []string          { return []string{"ar"} }
func (a *gnuArchiver) RspSupport() mir.RspSupport { return mir.RspGCC }

// NewGCCToolchain builds a Toolchain using gcc/g++ for the given
// language, with `ar` as the archiver.
func NewGCCToolchain(lang mir.Language) mir.Toolchain {
	program := "gcc"
	id := "gcc"
	if lang == mir.LanguageCPP {
		program = "g++"
		id = "gcc (g++)"
	}
	return mir.Toolchain{
		Compiler: &gccCompiler{program: program, id: id},
		Linker:   &gccLinker{program: program},
		Archiver: &gnuArchiver{},
	}
}

// msvcCompiler models the MSVC cl.exe argv convention, which differs
// from GCC's in every command shape (spec.md §3.3: RspSupport exists
// precisely to let a pass distinguish these).
type msvcCompiler struct{}

func (c *msvcCompiler) Command() []string          { return []string{"cl.exe"} }
func (c *msvcCompiler) Identifier() string         { return "msvc" }
func (c *msvcCompiler) RspSupport() mir.RspSupport { return mir.RspMSVC }
func (c *msvcCompiler) OutputCommand(out string) []string {
	return []string{"/Fo" + out}
}
func (c *msvcCompiler) CompileOnlyCommand() []string { return []string{"/c"} }

type msvcLinker struct{}

func (l *msvcLinker) Command() []string { return []string{"link.exe"} }
func (l *msvcLinker) OutputCommand(out string) []string {
	return []string{"/OUT:" + out}
}

type msvcArchiver struct{}

func (a *msvcArchiver) Command() []string          { return []string{"lib.exe"} }
func (a *msvcArchiver) RspSupport() mir.RspSupport { return mir.RspMSVC }

// NewMSVCToolchain builds a Toolchain around the MSVC cl/link/lib
// trio; language is accepted for signature symmetry with
// NewGCCToolchain even though MSVC's cl.exe handles both C and C++.
func NewMSVCToolchain(mir.Language) mir.Toolchain {
	return mir.Toolchain{
		Compiler: &msvcCompiler{},
		Linker:   &msvcLinker{},
		Archiver: &msvcArchiver{},
	}
}
