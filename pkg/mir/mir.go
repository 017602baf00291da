// Package mir implements the Mid-level IR: the control-flow graph of
// basic blocks that is the working representation of the whole pass
// pipeline (spec.md §3.3). There is no teacher package of this shape;
// the instruction value types below follow the tagged-variant,
// interface-per-kind style of pkg/ast.go, generalized from a tree to
// a CFG, with the Opcode/Instruction split of pkg/ir/ir.go folded
// into one Object interface per spec.md's design (tagged Object
// values rather than opcode + register operands).
package mir

import "fmt"

// Variable is the (name, version) annotation every Object carries,
// used by value numbering (spec.md §4.8, §8). Unbound temporaries
// have an empty Name and Version 0.
type Variable struct {
	Name    string
	Version int
}

// Object is the MIR instruction value — spec.md §3.3's tagged union.
type Object interface {
	// Var returns this object's Variable side-annotation.
	Var() Variable
	// SetVar replaces the Variable side-annotation in place.
	SetVar(Variable)
	mirNode()
}

// base is embedded by every concrete Object to provide the Variable
// annotation without repeating the accessor pair on each type.
type base struct {
	variable Variable
}

func (b *base) Var() Variable     { return b.variable }
func (b *base) SetVar(v Variable) { b.variable = v }

// Number is an integer literal.
type Number struct {
	base
	Value int64
}

func (*Number) mirNode() {}

// Boolean is a boolean literal.
type Boolean struct {
	base
	Value bool
}

func (*Boolean) mirNode() {}

// String is a string literal.
type String struct {
	base
	Value string
}

func (*String) mirNode() {}

// Array is an ordered sequence of Objects.
type Array struct {
	base
	Elements []Object
}

func (*Array) mirNode() {}

// Dict maps string keys to Objects.
type Dict struct {
	base
	Keys   []string
	Values []Object
}

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (Object, bool) {
	for i, k := range d.Keys {
		if k == key {
			return d.Values[i], true
		}
	}
	return nil, false
}

func (*Dict) mirNode() {}

// Identifier is a variable reference that has not yet been resolved
// to a value (or, after constant_propagation, one the pass chose not
// to replace).
type Identifier struct {
	base
	Name string
}

func (*Identifier) mirNode() {}

// FunctionCall is an unresolved or partially-resolved call. Holder is
// the receiver name for method-call-shaped calls (e.g. "host_machine",
// "meson"); it is empty for plain function calls. KwOrder preserves
// the order keyword arguments were first seen in, even though KwArgs
// is logically a mapping, so emission and diagnostics stay
// deterministic (spec.md §6.2).
type FunctionCall struct {
	base
	Holder  string
	Name    string
	PosArgs []Object
	KwOrder []string
	KwArgs  map[string]Object
}

func (*FunctionCall) mirNode() {}

// SetKwArg sets a keyword argument, erroring if the key is already
// present — spec.md §3.4 forbids duplicate keys.
func (f *FunctionCall) SetKwArg(key string, val Object) error {
	if f.KwArgs == nil {
		f.KwArgs = make(map[string]Object)
	}
	if _, exists := f.KwArgs[key]; exists {
		return fmt.Errorf("duplicate keyword argument %q", key)
	}
	f.KwArgs[key] = val
	f.KwOrder = append(f.KwOrder, key)
	return nil
}

// Compiler is a shared, immutable reference to a toolchain entry
// owned by the PersistentState; it must never be deep-copied
// (spec.md §9).
type Compiler struct {
	base
	Toolchain *Toolchain
}

func (*Compiler) mirNode() {}

// File is a source or generated file, relative to either the source
// or build root.
type File struct {
	Name       string
	Subdir     string
	Built      bool
	SourceRoot string
	BuildRoot  string
}

// RelativePath returns the file's path relative to its owning root
// (build root if Built, source root otherwise).
func (f *File) RelativePath() string {
	if f.Subdir == "" {
		return f.Name
	}
	return f.Subdir + "/" + f.Name
}

// AbsolutePath returns the file's path joined with its owning root.
func (f *File) AbsolutePath() string {
	root := f.SourceRoot
	if f.Built {
		root = f.BuildRoot
	}
	if root == "" {
		return f.RelativePath()
	}
	return root + "/" + f.RelativePath()
}

// BuildTarget is implemented by every MIR node that denotes a final
// build product (spec.md §3.3: "Executable ... and other BuildTarget
// variants").
type BuildTarget interface {
	Object
	TargetName() string
}

// Executable is a linked binary target.
type Executable struct {
	base
	Name    string
	Sources []*File
	Machine Machine
}

func (*Executable) mirNode()            {}
func (e *Executable) TargetName() string { return e.Name }
