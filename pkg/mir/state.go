package mir

// PersistentState is constructed once after parsing and shared
// read-only across every pass and the emitter for the duration of one
// compilation (spec.md §3.3, §5).
type PersistentState struct {
	Name       string
	SourceRoot string
	BuildRoot  string
	Toolchains map[Language]PerMachine[Toolchain]
	Machines   PerMachine[MachineInfo]
}

// NewPersistentState builds an empty PersistentState for the given
// project identity; toolchains and machine info are filled in by the
// driver before lowering begins.
func NewPersistentState(name, sourceRoot, buildRoot string) *PersistentState {
	return &PersistentState{
		Name:       name,
		SourceRoot: sourceRoot,
		BuildRoot:  buildRoot,
		Toolchains: make(map[Language]PerMachine[Toolchain]),
	}
}
