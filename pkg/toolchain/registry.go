package toolchain

import (
	"sort"

	"github.com/buildc/buildc/pkg/mir"
)

// Family selects which concrete toolchain family backs a language
// registration — the compiler-suite analogue of the teacher's
// per-backend factory.
type Family int

const (
	GCC Family = iota
	MSVC
)

// Factory builds a mir.Toolchain for one language.
type Factory func(mir.Language) mir.Toolchain

var registry = map[mir.Language]Factory{
	mir.LanguageC:   NewGCCToolchain,
	mir.LanguageCPP: NewGCCToolchain,
}

// RegisterLanguage adds or replaces the toolchain factory used for
// lang. Exported so a host configuration step (out of this core's
// scope, per spec.md §1) can switch a project to MSVC, a cross
// compiler, etc.
func RegisterLanguage(lang mir.Language, factory Factory) {
	registry[lang] = factory
}

// Resolve builds the mir.Toolchain for lang, or reports that lang is
// not registered.
func Resolve(lang mir.Language) (mir.Toolchain, bool) {
	factory, ok := registry[lang]
	if !ok {
		return mir.Toolchain{}, false
	}
	return factory(lang), true
}

// KnownLanguages lists every language with a registered toolchain
// factory, in a stable order.
func KnownLanguages() []mir.Language {
	langs := make([]mir.Language, 0, len(registry))
	for lang := range registry {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// BuildToolchains constructs the PersistentState.Toolchains map for
// every known language, using the same toolchain for build, host, and
// target machines — cross-compilation toolchain selection is out of
// this core's scope (spec.md §1 names only the PerMachine<T> schema
// as fixed).
func BuildToolchains() map[mir.Language]mir.PerMachine[mir.Toolchain] {
	out := make(map[mir.Language]mir.PerMachine[mir.Toolchain], len(registry))
	for lang := range registry {
		tc, _ := Resolve(lang)
		out[lang] = mir.PerMachine[mir.Toolchain]{BuildVal: tc}
	}
	return out
}
