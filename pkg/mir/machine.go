package mir

import "strings"

// Machine identifies which of the three build/host/target roles a
// MachineInfo or Toolchain entry describes (spec.md §3.3).
type Machine int

const (
	Build Machine = iota
	Host
	Target
)

func (m Machine) String() string {
	switch m {
	case Build:
		return "build"
	case Host:
		return "host"
	case Target:
		return "target"
	default:
		return "unknown"
	}
}

// Endian is byte order.
type Endian int

const (
	Little Endian = iota
	Big
)

func (e Endian) String() string {
	if e == Big {
		return "big"
	}
	return "little"
}

// MachineInfo describes one of the three machine roles. Detecting the
// real build machine is an external collaborator per spec.md §1
// ("Build-machine detection ... only the schema of its result is
// fixed") — only this schema is defined here; DetectBuildMachine in
// pkg/toolchain is the stand-in detector.
type MachineInfo struct {
	Machine    Machine
	Kernel     string
	Endian     Endian
	CPUFamily  string
	CPU        string
}

// System returns the lower-cased kernel name (spec.md §4.5, e.g.
// "linux").
func (m MachineInfo) System() string {
	return strings.ToLower(m.Kernel)
}

// PerMachine holds up to three values indexed by Machine, with the
// fallback chain host→build, target→host→build (spec.md §3.3, §9:
// this corrects the teacher-analogue bug of swapping host/target on
// copy — see DESIGN.md).
type PerMachine[T any] struct {
	BuildVal  T
	HostVal   *T
	TargetVal *T
}

// Get resolves the value for m, applying the fallback chain.
func (p PerMachine[T]) Get(m Machine) T {
	switch m {
	case Build:
		return p.BuildVal
	case Host:
		if p.HostVal != nil {
			return *p.HostVal
		}
		return p.BuildVal
	case Target:
		if p.TargetVal != nil {
			return *p.TargetVal
		}
		if p.HostVal != nil {
			return *p.HostVal
		}
		return p.BuildVal
	default:
		return p.BuildVal
	}
}
