package mir

// RspSupport records which response-file convention a tool accepts
// for long command lines, if any (spec.md §3.3).
type RspSupport int

const (
	RspNone RspSupport = iota
	RspGCC
	RspMSVC
)

// CompilerTool is the capability set a compiler object exposes
// (spec.md §3.3): full command, an identifying name, response-file
// support, and two command-building helpers.
type CompilerTool interface {
	Command() []string
	Identifier() string
	RspSupport() RspSupport
	OutputCommand(out string) []string
	CompileOnlyCommand() []string
}

// LinkerTool exposes only command and output_command — it never
// compiles, so it carries no compile-only or rsp capability.
type LinkerTool interface {
	Command() []string
	OutputCommand(out string) []string
}

// ArchiverTool exposes only command and rsp_support.
type ArchiverTool interface {
	Command() []string
	RspSupport() RspSupport
}

// Toolchain is the compiler/linker/archiver triple for one language
// and one machine (spec.md §3.3, GLOSSARY).
type Toolchain struct {
	Compiler CompilerTool
	Linker   LinkerTool
	Archiver ArchiverTool
}

// Language names a recognized source language; the registry that
// resolves a language string to a Toolchain lives in pkg/toolchain
// (component C1).
type Language string

const (
	LanguageC   Language = "c"
	LanguageCPP Language = "cpp"
)
