package command

// Dependencies carries the collaborators the tree's commands act on.
type Dependencies struct {
	Output            Output
	Engine            Engine
	Registry          Registry
	Store             ConfigStore
	UI                UIHost
	ToggleTape        Toggler
	ToggleSuggestions Toggler
	ResetMachine      Resetter
}

// BuildTree constructs the full command tree from the current plugin
// registry state. The tree is a snapshot: registry changes after this
// call are invisible until BuildTree runs again.
func BuildTree(deps Dependencies) (*Node, error) {
	out := deps.Output

	machine, err := NewMachineCommand(out, deps.Registry, deps.Engine)
	if err != nil {
		return nil, err
	}
	system, err := NewSystemCommand(out, deps.Registry, deps.Engine)
	if err != nil {
		return nil, err
	}

	return NewRoot(out,
		NewBranch("configure", "configuration commands", out, machine, system),
		NewLookupCommand(out, deps.Engine),
		NewResetMachineCommand(out, deps.ResetMachine),
		NewToggleOutputCommand(out, deps.Engine),
		NewBranch("ui", "commands for user interface", out,
			NewToggleTapeCommand(out, deps.ToggleTape, deps.Engine),
			NewToggleSuggestionsCommand(out, deps.ToggleSuggestions, deps.Engine),
			NewColorCommand(out, deps.UI, deps.Store),
		),
		NewExitCommand(out, deps.UI),
	), nil
}
