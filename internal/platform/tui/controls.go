package tui

import (
	"github.com/vovakirdan/engine-cycle/internal/config"
	"github.com/vovakirdan/engine-cycle/internal/core"
	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Interactive control steps and limits
const (
	rpmStep     = 100.0
	rpmMin      = 500.0
	rpmMax      = 8000.0
	loadStep    = 0.5
	advanceStep = 1.0
	advanceMax  = 40.0
	crStep      = 0.5
	crMin       = 4.0
	crMax       = 14.0
)

// ControlUpdate returns the parameter change for an action applied to cfg.
// ok is false for actions that do not touch the engine.
func ControlUpdate(a Action, cfg engine.Config) (u engine.Update, ok bool) {
	switch a {
	case ActionRPMUp, ActionRPMDown:
		rpm := cfg.RPM + sign(a == ActionRPMUp)*rpmStep
		return engine.Update{RPM: engine.Float(core.ClampF(rpm, rpmMin, rpmMax))}, true
	case ActionLoadUp, ActionLoadDown:
		load := cfg.Load + sign(a == ActionLoadUp)*loadStep
		return engine.Update{Load: engine.Float(core.ClampF(load, 0, cfg.MaxLoad))}, true
	case ActionAdvanceUp, ActionAdvanceDown:
		adv := cfg.IgnitionAdvance + sign(a == ActionAdvanceUp)*advanceStep
		return engine.Update{IgnitionAdvance: engine.Float(core.ClampF(adv, 0, advanceMax))}, true
	case ActionCRUp, ActionCRDown:
		cr := cfg.CompressionRatio + sign(a == ActionCRUp)*crStep
		return engine.Update{CompressionRatio: engine.Float(core.ClampF(cr, crMin, crMax))}, true
	case ActionPresetIdle:
		return config.PresetUpdate(config.PresetIdle, cfg.MaxLoad), true
	case ActionPresetCruise:
		return config.PresetUpdate(config.PresetCruise, cfg.MaxLoad), true
	case ActionPresetFull:
		return config.PresetUpdate(config.PresetFull, cfg.MaxLoad), true
	}
	return engine.Update{}, false
}

func sign(up bool) float64 {
	if up {
		return 1
	}
	return -1
}
