package command_test

import (
	"reflect"
	"testing"

	"github.com/dshills/stenoterm/internal/command"
	"github.com/dshills/stenoterm/internal/plugin"
)

func testRegistry(t *testing.T, machines ...string) *plugin.Registry {
	t.Helper()
	r := plugin.NewRegistry()
	for _, name := range machines {
		if err := r.RegisterMachine(&plugin.Machine{
			Name:    name,
			Options: []plugin.OptionInfo{plugin.StringOption("port", "auto")},
		}); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestMachineSubtreeMirrorsRegistryOrder(t *testing.T) {
	s := &sink{}
	node, err := command.NewMachineCommand(s.output, testRegistry(t, "A", "B"), newFakeEngine())
	if err != nil {
		t.Fatalf("NewMachineCommand: %v", err)
	}

	children := node.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for i, want := range []struct{ name, desc string }{
		{"A", "sets machine to A"},
		{"B", "sets machine to B"},
	} {
		if children[i].Name() != want.name || children[i].Description() != want.desc {
			t.Errorf("child %d = %q/%q, want %q/%q",
				i, children[i].Name(), children[i].Description(), want.name, want.desc)
		}
	}
}

func TestMachineSetterWritesConfig(t *testing.T) {
	s := &sink{}
	eng := newFakeEngine()
	node, err := command.NewMachineCommand(s.output, testRegistry(t, "keyboard"), eng)
	if err != nil {
		t.Fatal(err)
	}

	handled, err := node.Handle([]string{"keyboard"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if handled {
		t.Error("machine setter reports not-handled, matching its help-like return")
	}
	if eng.cfg["machine_type"] != "keyboard" {
		t.Errorf("machine_type = %v", eng.cfg["machine_type"])
	}

	// Repeating the command is side-effect-equivalent.
	before := make(map[string]any, len(eng.cfg))
	for k, v := range eng.cfg {
		before[k] = v
	}
	node.Handle([]string{"keyboard"})
	if !reflect.DeepEqual(before, eng.cfg) {
		t.Errorf("repeat changed config: %v -> %v", before, eng.cfg)
	}
}

func TestMachineOptionsListing(t *testing.T) {
	s := &sink{}
	node, err := command.NewMachineCommand(s.output, testRegistry(t, "keyboard"), newFakeEngine())
	if err != nil {
		t.Fatal(err)
	}

	node.Handle([]string{"keyboard", "options"})
	if s.joined() != "Machine\n-------\nOptions\n-------\nport - setting: port - default: auto" {
		t.Errorf("output = %q", s.joined())
	}
}

func TestMachineOptionSetter(t *testing.T) {
	s := &sink{}
	eng := newFakeEngine()
	node, err := command.NewMachineCommand(s.output, testRegistry(t, "keyboard"), eng)
	if err != nil {
		t.Fatal(err)
	}

	handled, err := node.Handle([]string{"keyboard", "options", "port", "/dev/ttyACM0"})
	if err != nil || !handled {
		t.Fatalf("option set = (%v, %v)", handled, err)
	}
	if eng.cfg["port"] != "/dev/ttyACM0" {
		t.Errorf("port = %v", eng.cfg["port"])
	}
	// Current value printed before the write.
	found := false
	for _, line := range s.lines {
		if line == "current: auto" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'current: auto' line, got %v", s.lines)
	}
}

func TestMachineOptionSetterNoArg(t *testing.T) {
	s := &sink{}
	eng := newFakeEngine()
	node, err := command.NewMachineCommand(s.output, testRegistry(t, "keyboard"), eng)
	if err != nil {
		t.Fatal(err)
	}

	handled, err := node.Handle([]string{"keyboard", "options", "port"})
	if err != nil || handled {
		t.Errorf("no-arg option set = (%v, %v), want (false, nil)", handled, err)
	}
	if _, ok := eng.cfg["port"]; ok {
		t.Error("no-arg invocation must not write")
	}
}

func TestSystemSubtree(t *testing.T) {
	s := &sink{}
	eng := newFakeEngine()
	reg := plugin.NewDefaultRegistry()
	node, err := command.NewSystemCommand(s.output, reg, eng)
	if err != nil {
		t.Fatal(err)
	}

	children := node.Children()
	if len(children) != 1 || children[0].Name() != "english-stenotype" {
		t.Fatalf("children = %v", children)
	}
	if children[0].Description() != "sets system to english-stenotype" {
		t.Errorf("description = %q", children[0].Description())
	}

	handled, err := node.Handle([]string{"english-stenotype"})
	if err != nil || !handled {
		t.Fatalf("system set = (%v, %v)", handled, err)
	}
	if eng.cfg["system_name"] != "english-stenotype" {
		t.Errorf("system_name = %v", eng.cfg["system_name"])
	}
}

func TestBuildTreeShape(t *testing.T) {
	s := &sink{}
	deps := command.Dependencies{
		Output:            s.output,
		Engine:            newFakeEngine(),
		Registry:          plugin.NewDefaultRegistry(),
		Store:             newFakeStore(),
		UI:                &fakeUI{},
		ToggleTape:        func() bool { return true },
		ToggleSuggestions: func() bool { return true },
		ResetMachine:      func() {},
	}
	root, err := command.BuildTree(deps)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	want := []string{"configure", "lookup", "reset", "output", "ui", "exit"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("root children = %v, want %v", names, want)
	}
}

func TestTreeIsSnapshotOfRegistry(t *testing.T) {
	s := &sink{}
	reg := testRegistry(t, "A")
	eng := newFakeEngine()
	node, err := command.NewMachineCommand(s.output, reg, eng)
	if err != nil {
		t.Fatal(err)
	}

	// A plugin installed after the build is invisible until a rebuild.
	if err := reg.RegisterMachine(&plugin.Machine{Name: "B"}); err != nil {
		t.Fatal(err)
	}
	if len(node.Children()) != 1 {
		t.Errorf("snapshot grew: %d children", len(node.Children()))
	}

	rebuilt, err := command.NewMachineCommand(s.output, reg, eng)
	if err != nil {
		t.Fatal(err)
	}
	if len(rebuilt.Children()) != 2 {
		t.Errorf("rebuild should see 2 machines, got %d", len(rebuilt.Children()))
	}
}

func TestThreeLevelDescentReachesOnlyTheLeaf(t *testing.T) {
	s := &sink{}
	eng := newFakeEngine()
	deps := command.Dependencies{
		Output:            s.output,
		Engine:            eng,
		Registry:          plugin.NewDefaultRegistry(),
		Store:             newFakeStore(),
		UI:                &fakeUI{},
		ToggleTape:        func() bool { return true },
		ToggleSuggestions: func() bool { return true },
		ResetMachine:      func() {},
	}
	root, err := command.BuildTree(deps)
	if err != nil {
		t.Fatal(err)
	}

	root.Handle([]string{"configure", "machine", "keyboard"})
	if eng.cfg["machine_type"] != "keyboard" {
		t.Errorf("machine_type = %v", eng.cfg["machine_type"])
	}
	if eng.cfg["system_name"] != nil {
		t.Error("system setter must not have executed")
	}
	if eng.Output() {
		t.Error("output toggle must not have executed")
	}
}
