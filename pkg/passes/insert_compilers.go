package passes

import "github.com/buildc/buildc/pkg/mir"

// InsertCompilers replaces meson.get_compiler(lang[, native: bool])
// calls with the mir.Compiler the toolchain registry holds for that
// language (spec.md §4.6). It defers (reports no match, not an error)
// when the language argument has not yet reduced to a String literal
// — a later constant_propagation round will resolve it first, and
// this pass is re-run to a fixed point alongside it. It fails with
// *mir.UnknownLanguage when a reduced language string matches no
// registered toolchain.
type InsertCompilers struct {
	Toolchains map[mir.Language]mir.PerMachine[mir.Toolchain]
}

func (p *InsertCompilers) Name() string { return "insert_compilers" }

func (p *InsertCompilers) Run(graph *mir.Graph) (bool, error) {
	return walkGraph(graph, p.rewrite)
}

func (p *InsertCompilers) rewrite(obj mir.Object) (mir.Object, error) {
	call, ok := obj.(*mir.FunctionCall)
	if !ok || call.Holder != "meson" || call.Name != "get_compiler" {
		return nil, nil
	}
	if len(call.PosArgs) < 1 {
		return nil, &mir.InvalidArguments{Call: "meson.get_compiler", Reason: "missing language argument"}
	}
	langStr, ok := call.PosArgs[0].(*mir.String)
	if !ok {
		return nil, nil
	}
	lang := mir.Language(langStr.Value)
	perMachine, known := p.Toolchains[lang]
	if !known {
		return nil, &mir.UnknownLanguage{Language: langStr.Value}
	}

	role := mir.Host
	if native, present := call.KwArgs["native"]; present {
		nativeBool, ok := native.(*mir.Boolean)
		if !ok {
			return nil, nil
		}
		if nativeBool.Value {
			role = mir.Build
		}
	}

	toolchain := perMachine.Get(role)
	return &mir.Compiler{Toolchain: &toolchain}, nil
}
