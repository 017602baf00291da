package mir

import "testing"

func TestPerMachineFallbackChain(t *testing.T) {
	build := MachineInfo{Machine: Build, CPUFamily: "x86_64"}
	host := MachineInfo{Machine: Host, CPUFamily: "arm64"}

	onlyBuild := PerMachine[MachineInfo]{BuildVal: build}
	if got := onlyBuild.Get(Host); got.CPUFamily != "x86_64" {
		t.Errorf("host should fall back to build, got %q", got.CPUFamily)
	}
	if got := onlyBuild.Get(Target); got.CPUFamily != "x86_64" {
		t.Errorf("target should fall back to build, got %q", got.CPUFamily)
	}

	withHost := PerMachine[MachineInfo]{BuildVal: build, HostVal: &host}
	if got := withHost.Get(Target); got.CPUFamily != "arm64" {
		t.Errorf("target should fall back to host before build, got %q", got.CPUFamily)
	}
}

func TestMachineInfoSystemIsLowerCased(t *testing.T) {
	info := MachineInfo{Kernel: "LINUX"}
	if got := info.System(); got != "linux" {
		t.Errorf("System() = %q, want %q", got, "linux")
	}
}

func TestFunctionCallRejectsDuplicateKeywordArgs(t *testing.T) {
	call := &FunctionCall{Name: "executable"}
	if err := call.SetKwArg("native", &Boolean{Value: true}); err != nil {
		t.Fatalf("unexpected error on first set: %v", err)
	}
	if err := call.SetKwArg("native", &Boolean{Value: false}); err == nil {
		t.Fatal("expected error on duplicate keyword argument")
	}
}

func TestVariableDefaultsToUnbound(t *testing.T) {
	n := &Number{Value: 5}
	if v := n.Var(); v.Name != "" || v.Version != 0 {
		t.Errorf("expected unbound Variable, got %+v", v)
	}
	n.SetVar(Variable{Name: "x", Version: 2})
	if v := n.Var(); v.Name != "x" || v.Version != 2 {
		t.Errorf("SetVar did not take effect, got %+v", v)
	}
}

func TestBasicBlockWalkVisitsEachBlockOnce(t *testing.T) {
	join := &BasicBlock{}
	trueBlk := &BasicBlock{Next: join}
	falseBlk := &BasicBlock{Next: join}
	entry := &BasicBlock{Condition: &Condition{
		Cond:       &Boolean{Value: true},
		TrueBlock:  trueBlk,
		FalseBlock: falseBlk,
	}}

	var visited []*BasicBlock
	entry.Walk(func(b *BasicBlock) { visited = append(visited, b) })

	if len(visited) != 4 {
		t.Fatalf("expected 4 distinct blocks visited, got %d", len(visited))
	}
}

func TestRenderFunctionCallWithHolder(t *testing.T) {
	call := &FunctionCall{Holder: "host_machine", Name: "cpu_family"}
	want := "host_machine.cpu_family()"
	if got := Render(call); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
