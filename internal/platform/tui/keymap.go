package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a viewer command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRPMUp
	ActionRPMDown
	ActionLoadUp
	ActionLoadDown
	ActionAdvanceUp
	ActionAdvanceDown
	ActionCRUp
	ActionCRDown
	ActionNextModel
	ActionToggleChart
	ActionPause
	ActionStep
	ActionExport
	ActionScreenshot
	ActionReset
	ActionHelp
	ActionPresetIdle
	ActionPresetCruise
	ActionPresetFull
)

// KeyMap defines the key bindings of the viewer.
type KeyMap struct {
	RPMUp       key.Binding
	RPMDown     key.Binding
	LoadUp      key.Binding
	LoadDown    key.Binding
	AdvanceUp   key.Binding
	AdvanceDown key.Binding
	CRUp        key.Binding
	CRDown      key.Binding
	NextModel   key.Binding
	ToggleChart key.Binding
	Pause       key.Binding
	Step        key.Binding
	Export      key.Binding
	Screenshot  key.Binding
	Reset       key.Binding
	Presets     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RPMUp, k.LoadUp, k.NextModel, k.ToggleChart, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RPMUp, k.RPMDown, k.LoadUp, k.LoadDown},
		{k.AdvanceUp, k.AdvanceDown, k.CRUp, k.CRDown},
		{k.NextModel, k.ToggleChart, k.Pause, k.Step},
		{k.Export, k.Screenshot, k.Reset, k.Presets},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RPMUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "rpm +"),
		),
		RPMDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "rpm -"),
		),
		LoadUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "load +"),
		),
		LoadDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "load -"),
		),
		AdvanceUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "advance +"),
		),
		AdvanceDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "advance -"),
		),
		CRUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "CR +"),
		),
		CRDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "CR -"),
		),
		NextModel: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "model"),
		),
		ToggleChart: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "P-V/P-θ"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "step"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Presets: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1/2/3", "idle/cruise/full"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a viewer action.
// This centralizes key bindings and makes them testable.
func (k KeyMap) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.RPMUp):
		return ActionRPMUp
	case key.Matches(msg, k.RPMDown):
		return ActionRPMDown
	case key.Matches(msg, k.LoadUp):
		return ActionLoadUp
	case key.Matches(msg, k.LoadDown):
		return ActionLoadDown
	case key.Matches(msg, k.AdvanceUp):
		return ActionAdvanceUp
	case key.Matches(msg, k.AdvanceDown):
		return ActionAdvanceDown
	case key.Matches(msg, k.CRUp):
		return ActionCRUp
	case key.Matches(msg, k.CRDown):
		return ActionCRDown
	case key.Matches(msg, k.NextModel):
		return ActionNextModel
	case key.Matches(msg, k.ToggleChart):
		return ActionToggleChart
	case key.Matches(msg, k.Pause):
		return ActionPause
	case key.Matches(msg, k.Step):
		return ActionStep
	case key.Matches(msg, k.Export):
		return ActionExport
	case key.Matches(msg, k.Screenshot):
		return ActionScreenshot
	case key.Matches(msg, k.Reset):
		return ActionReset
	case key.Matches(msg, k.Help):
		return ActionHelp
	case key.Matches(msg, k.Presets):
		switch msg.String() {
		case "1":
			return ActionPresetIdle
		case "2":
			return ActionPresetCruise
		default:
			return ActionPresetFull
		}
	}
	return ActionNone
}
