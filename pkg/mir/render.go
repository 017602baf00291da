package mir

import (
	"fmt"
	"strconv"
	"strings"
)

// Render prints an Object in the same canonical call-syntax the AST
// uses, so a diagnostic naming an unreduced instruction reads like
// the source that produced it (spec.md §7: UnreducedIR "reported with
// the rendered form of the offending instruction").
func Render(o Object) string {
	switch v := o.(type) {
	case *Number:
		return strconv.FormatInt(v.Value, 10)
	case *Boolean:
		return strconv.FormatBool(v.Value)
	case *String:
		return "'" + strings.ReplaceAll(v.Value, "'", "\\'") + "'"
	case *Identifier:
		return v.Name
	case *Array:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = Render(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dict:
		parts := make([]string, len(v.Keys))
		for i, k := range v.Keys {
			parts[i] = fmt.Sprintf("%s: %s", Render(&String{Value: k}), Render(v.Values[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *FunctionCall:
		return renderCall(v)
	case *Compiler:
		id := ""
		if v.Toolchain != nil && v.Toolchain.Compiler != nil {
			id = v.Toolchain.Compiler.Identifier()
		}
		return fmt.Sprintf("<compiler %s>", id)
	case *Executable:
		names := make([]string, len(v.Sources))
		for i, f := range v.Sources {
			names[i] = Render(&String{Value: f.RelativePath()})
		}
		return fmt.Sprintf("executable(%s, [%s])", Render(&String{Value: v.Name}), strings.Join(names, ", "))
	default:
		return fmt.Sprintf("<unknown mir object %T>", o)
	}
}

func renderCall(f *FunctionCall) string {
	parts := make([]string, 0, len(f.PosArgs)+len(f.KwOrder))
	for _, a := range f.PosArgs {
		parts = append(parts, Render(a))
	}
	for _, k := range f.KwOrder {
		parts = append(parts, fmt.Sprintf("%s : %s", k, Render(f.KwArgs[k])))
	}
	name := f.Name
	if f.Holder != "" {
		return fmt.Sprintf("%s.%s(%s)", f.Holder, name, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}
