package toolchain

import (
	"runtime"

	"github.com/buildc/buildc/pkg/mir"
)

// DetectBuildMachine is the stand-in for the real build-machine
// detector, which spec.md §1 treats as an external collaborator
// ("only the schema of its result is fixed"). It reports the
// process's own OS/arch, which is always correct for the BUILD
// machine (the machine running buildc itself); HOST and TARGET
// default to it via PerMachine's fallback chain unless a caller
// overrides them explicitly (e.g. from a cross-file, which is itself
// out of this core's scope).
func DetectBuildMachine() mir.MachineInfo {
	return mir.MachineInfo{
		Machine:   mir.Build,
		Kernel:    kernelName(runtime.GOOS),
		Endian:    endianOf(runtime.GOARCH),
		CPUFamily: cpuFamily(runtime.GOARCH),
		CPU:       runtime.GOARCH,
	}
}

// endianOf reports big-endian for the GOARCH values mips, mips64,
// ppc64 and s390x, and little-endian for every other GOARCH.
func endianOf(goarch string) mir.Endian {
	switch goarch {
	case "mips", "mips64", "ppc64", "s390x":
		return mir.Big
	default:
		return mir.Little
	}
}

func kernelName(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return goos
	}
}

func cpuFamily(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	default:
		return goarch
	}
}
