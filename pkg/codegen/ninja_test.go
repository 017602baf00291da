package codegen

import (
	"strings"
	"testing"

	"github.com/buildc/buildc/pkg/mir"
	"github.com/buildc/buildc/pkg/toolchain"
)

func TestGetBackendResolvesNinja(t *testing.T) {
	backend, ok := GetBackend("ninja")
	if !ok {
		t.Fatal("expected ninja backend to be registered")
	}
	if backend.Name() != "ninja" {
		t.Errorf("unexpected backend name %q", backend.Name())
	}
}

func TestListBackendsIncludesNinja(t *testing.T) {
	found := false
	for _, name := range ListBackends() {
		if name == "ninja" {
			found = true
		}
	}
	if !found {
		t.Error("expected ninja in ListBackends()")
	}
}

func TestNinjaEmitProducesCompileAndLinkEdges(t *testing.T) {
	exe := &mir.Executable{
		Name:    "app",
		Sources: []*mir.File{{Name: "main.cpp"}},
		Machine: mir.Host,
	}
	graph := &mir.Graph{Entry: &mir.BasicBlock{Instructions: []mir.Object{exe}}}
	state := mir.NewPersistentState("test", "/src", "/build")
	state.Toolchains[mir.LanguageCPP] = mir.PerMachine[mir.Toolchain]{
		BuildVal: toolchain.NewGCCToolchain(mir.LanguageCPP),
	}

	manifest, err := (NinjaBackend{}).Emit(graph, state)
	if err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if !strings.Contains(manifest, "rule cpp_compile") {
		t.Errorf("expected a cpp_compile rule, got:\n%s", manifest)
	}
	if !strings.Contains(manifest, "rule cpp_link") {
		t.Errorf("expected a cpp_link rule, got:\n%s", manifest)
	}
	if !strings.Contains(manifest, "build app:") {
		t.Errorf("expected a build edge for app, got:\n%s", manifest)
	}
}

func TestNinjaEmitFailsOnUnreducedInstruction(t *testing.T) {
	graph := &mir.Graph{Entry: &mir.BasicBlock{
		Instructions: []mir.Object{&mir.FunctionCall{Name: "unresolved"}},
	}}
	state := mir.NewPersistentState("test", "/src", "/build")
	if _, err := (NinjaBackend{}).Emit(graph, state); err == nil {
		t.Fatal("expected UnreducedIR error")
	} else if _, ok := err.(*mir.UnreducedIR); !ok {
		t.Fatalf("expected *mir.UnreducedIR, got %T", err)
	}
}

func TestEscapePathEscapesSpaces(t *testing.T) {
	if got := escapePath("a dir/b.cpp"); got != "a$ dir/b.cpp" {
		t.Errorf("escapePath() = %q", got)
	}
}
