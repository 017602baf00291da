package passes

import "github.com/buildc/buildc/pkg/mir"

// machineHolders maps the three recognized machine-holder identifiers
// (spec.md §4.5) to the PerMachine role they query.
var machineHolders = map[string]mir.Machine{
	"build_machine":  mir.Build,
	"host_machine":   mir.Host,
	"target_machine": mir.Target,
}

// MachineLower replaces calls on build_machine/host_machine/
// target_machine with the literal the queried MachineInfo holds
// (spec.md §4.5). It fails with *mir.UnknownMethod for a holder call
// whose method name it does not recognize.
type MachineLower struct {
	Machines mir.PerMachine[mir.MachineInfo]
}

func (p *MachineLower) Name() string { return "machine_lower" }

func (p *MachineLower) Run(graph *mir.Graph) (bool, error) {
	return walkGraph(graph, p.rewrite)
}

func (p *MachineLower) rewrite(obj mir.Object) (mir.Object, error) {
	call, ok := obj.(*mir.FunctionCall)
	if !ok {
		return nil, nil
	}
	role, known := machineHolders[call.Holder]
	if !known {
		return nil, nil
	}
	info := p.Machines.Get(role)
	switch call.Name {
	case "system":
		return &mir.String{Value: info.System()}, nil
	case "cpu_family":
		return &mir.String{Value: info.CPUFamily}, nil
	case "cpu":
		return &mir.String{Value: info.CPU}, nil
	case "endian":
		return &mir.String{Value: info.Endian.String()}, nil
	case "kernel":
		return &mir.String{Value: info.Kernel}, nil
	default:
		return nil, &mir.UnknownMethod{Holder: call.Holder, Name: call.Name}
	}
}
