package codegen

import (
	"fmt"
	"strings"

	"github.com/buildc/buildc/pkg/hir"
	"github.com/buildc/buildc/pkg/mir"
)

func init() {
	RegisterBackend("ninja", func() Backend { return &NinjaBackend{} })
}

// NinjaBackend emits a Ninja-style manifest: one rule per (language,
// role) pair, one build edge per compiled object and per linked
// target, in the order targets appear in the reduced MIR (spec.md
// §6.2). Each rule is emitted once, at the point its first use is
// reached; target ordering follows IR order, not source-file
// alphabetical order, so the manifest reads in the same order the
// build file declared the targets.
type NinjaBackend struct{}

func (NinjaBackend) Name() string { return "ninja" }

func (NinjaBackend) Emit(graph *mir.Graph, state *mir.PersistentState) (string, error) {
	var targets []mir.BuildTarget
	for b := graph.Entry; b != nil; b = b.Next {
		if b.Condition != nil {
			return "", &mir.UnreducedIR{Instruction: b.Condition.Cond}
		}
		for _, inst := range b.Instructions {
			if isAssignment(inst) {
				continue
			}
			bt, ok := inst.(mir.BuildTarget)
			if !ok {
				return "", &mir.UnreducedIR{Instruction: inst}
			}
			targets = append(targets, bt)
		}
	}
	return renderManifest(targets, state)
}

func isAssignment(obj mir.Object) bool {
	call, ok := obj.(*mir.FunctionCall)
	return ok && call.Holder == "" && call.Name == hir.CallAssign
}

type rule struct {
	name    string
	command string
}

type edge struct {
	rule string
	out  string
	ins  []string
}

func renderManifest(targets []mir.BuildTarget, state *mir.PersistentState) (string, error) {
	ruleSeen := map[string]bool{}
	var ruleOrder []string
	rules := map[string]rule{}
	var edges []edge

	for _, target := range targets {
		exe, ok := target.(*mir.Executable)
		if !ok {
			return "", &mir.UnreducedIR{Instruction: target}
		}

		var objFiles []string
		var linkLang mir.Language
		for _, src := range exe.Sources {
			lang, ok := languageForFile(src.Name)
			if !ok {
				return "", &mir.UnreducedIR{Instruction: target}
			}
			linkLang = lang
			perMachine, ok := state.Toolchains[lang]
			if !ok {
				return "", &mir.UnreducedIR{Instruction: target}
			}
			toolchain := perMachine.Get(exe.Machine)

			compileRuleName := string(lang) + "_compile"
			if !ruleSeen[compileRuleName] {
				ruleSeen[compileRuleName] = true
				ruleOrder = append(ruleOrder, compileRuleName)
				rules[compileRuleName] = rule{name: compileRuleName, command: compileCommand(toolchain.Compiler)}
			}

			relPath := escapePath(src.RelativePath())
			objName := relPath + ".o"
			objFiles = append(objFiles, objName)
			edges = append(edges, edge{rule: compileRuleName, out: objName, ins: []string{relPath}})
		}

		if linkLang == "" {
			continue
		}
		perMachine := state.Toolchains[linkLang]
		toolchain := perMachine.Get(exe.Machine)
		linkRuleName := string(linkLang) + "_link"
		if !ruleSeen[linkRuleName] {
			ruleSeen[linkRuleName] = true
			ruleOrder = append(ruleOrder, linkRuleName)
			rules[linkRuleName] = rule{name: linkRuleName, command: linkCommand(toolchain.Linker)}
		}
		edges = append(edges, edge{rule: linkRuleName, out: escapePath(exe.Name), ins: objFiles})
	}

	var sb strings.Builder
	for _, name := range ruleOrder {
		r := rules[name]
		fmt.Fprintf(&sb, "rule %s\n  command = %s\n\n", r.name, r.command)
	}
	for _, e := range edges {
		fmt.Fprintf(&sb, "build %s: %s %s\n", e.out, e.rule, strings.Join(e.ins, " "))
	}
	return sb.String(), nil
}

func compileCommand(c mir.CompilerTool) string {
	parts := append([]string{}, c.Command()...)
	parts = append(parts, c.CompileOnlyCommand()...)
	parts = append(parts, "$in")
	parts = append(parts, c.OutputCommand("$out")...)
	return strings.Join(parts, " ")
}

func linkCommand(l mir.LinkerTool) string {
	parts := append([]string{}, l.Command()...)
	parts = append(parts, "$in")
	parts = append(parts, l.OutputCommand("$out")...)
	return strings.Join(parts, " ")
}

func languageForFile(name string) (mir.Language, bool) {
	switch {
	case strings.HasSuffix(name, ".cpp"), strings.HasSuffix(name, ".cc"), strings.HasSuffix(name, ".cxx"):
		return mir.LanguageCPP, true
	case strings.HasSuffix(name, ".c"):
		return mir.LanguageC, true
	default:
		return "", false
	}
}

// escapePath escapes the characters Ninja's lexer treats specially
// ($, then space, then colon) so a path token survives manifest re-parsing
// untouched. $ must be escaped first so the $ introduced for spaces
// isn't itself re-escaped.
func escapePath(path string) string {
	path = strings.ReplaceAll(path, "$", "$$")
	path = strings.ReplaceAll(path, " ", "$ ")
	return strings.ReplaceAll(path, ":", "$:")
}
