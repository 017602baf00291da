package mir

import "fmt"

// UnknownMethod is raised by machine_lower when a method call on a
// recognized machine holder names a method the pass does not know
// how to fold (spec.md §4.5, §7).
type UnknownMethod struct {
	Holder string
	Name   string
}

func (e *UnknownMethod) Error() string {
	return fmt.Sprintf("unknown method %s.%s", e.Holder, e.Name)
}

// UnknownLanguage is raised by insert_compilers when a language
// string does not match any entry in the toolchain registry
// (spec.md §4.6, §7).
type UnknownLanguage struct {
	Language string
}

func (e *UnknownLanguage) Error() string {
	return fmt.Sprintf("unknown language %q", e.Language)
}

// InvalidArguments surfaces a call whose argument shape a pass cannot
// process (spec.md §7).
type InvalidArguments struct {
	Call   string
	Reason string
}

func (e *InvalidArguments) Error() string {
	return fmt.Sprintf("invalid arguments to %s: %s", e.Call, e.Reason)
}

// UnreducedIR is raised at manifest emission time when the optimizer
// suite reached a fixed point while an instruction that should have
// reduced to a build target or literal still has not (spec.md §6.2,
// §7). It is reported with the rendered form of the offending
// instruction so the message reads like the source line that produced
// it.
type UnreducedIR struct {
	Instruction Object
}

func (e *UnreducedIR) Error() string {
	return fmt.Sprintf("unreduced instruction: %s", Render(e.Instruction))
}
