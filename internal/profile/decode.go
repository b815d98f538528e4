package profile

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gamacros/gamacrosd/internal/engine"
)

// CurrentVersion is the only profile schema version this repo decodes.
// A missing `version` field is treated as CurrentVersion for operator
// convenience; any other value is ErrUnsupportedVersion.
const CurrentVersion = 1

// Load reads and decodes a TOML profile from path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, decodeErr(err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes a TOML profile from an in-memory buffer.
//
// Chord iteration order within each app's button rules is taken from the
// TOML document's source order (via toml.MetaData.Keys), not Go's
// randomized map iteration, so that chord tie-break order (§4.2 of the
// engine spec) is deterministic for a given profile file.
func DecodeBytes(data []byte) (*Profile, error) {
	var raw rawProfile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, decodeErr(err)
	}
	if raw.Version != 0 && raw.Version != CurrentVersion {
		return nil, versionErr(uint8(raw.Version))
	}

	p := &Profile{
		Controllers: make(map[ControllerKey]ControllerSettings, len(raw.Controllers)),
		Blacklist:   make(map[string]struct{}, len(raw.Blacklist)),
		Rules:       make(map[BundleId]AppRules, len(raw.Rules)),
		Shell:       raw.Shell,
	}

	for _, app := range raw.Blacklist {
		p.Blacklist[app] = struct{}{}
	}

	for key, cfg := range raw.Controllers {
		ck, err := parseControllerKey(key)
		if err != nil {
			return nil, err
		}
		settings, err := convertControllerCfg(cfg)
		if err != nil {
			return nil, err
		}
		p.Controllers[ck] = settings
	}

	for appName, rawRules := range raw.Rules {
		appRules := AppRules{Sticks: make(map[StickSide]StickMode, len(rawRules.Sticks))}

		for _, chordKey := range chordOrder(meta, appName) {
			rbr := rawRules.Buttons[chordKey]
			chord, err := parseChord(chordKey)
			if err != nil {
				return nil, err
			}
			rule, err := convertButtonRule(rbr)
			if err != nil {
				return nil, err
			}
			appRules.Buttons = append(appRules.Buttons, ChordRule{Chord: chord, Rule: rule})
		}

		for sideName, rawMode := range rawRules.Sticks {
			side, err := parseStickSide(sideName)
			if err != nil {
				return nil, err
			}
			mode, err := convertStickMode(rawMode)
			if err != nil {
				return nil, err
			}
			appRules.Sticks[side] = mode
		}

		p.Rules[BundleId(appName)] = appRules
	}

	return p, nil
}

// chordOrder returns the chord table keys under rules.<app>.buttons in
// the order they appear in the source document.
func chordOrder(meta toml.MetaData, appName string) []string {
	prefix := []string{"rules", appName, "buttons"}
	var order []string
	seen := make(map[string]bool)
	for _, k := range meta.Keys() {
		if len(k) != len(prefix)+1 {
			continue
		}
		match := true
		for i, seg := range prefix {
			if k[i] != seg {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		chord := k[len(prefix)]
		if seen[chord] {
			continue
		}
		seen[chord] = true
		order = append(order, chord)
	}
	return order
}

func parseControllerKey(key string) (ControllerKey, error) {
	vid, pid, ok := strings.Cut(key, ":")
	if !ok {
		return ControllerKey{}, validationErr("controllers: key %q must be \"vendor:product\"", key)
	}
	v, err := strconv.ParseUint(vid, 0, 16)
	if err != nil {
		return ControllerKey{}, validationErr("controllers: bad vendor id %q: %v", vid, err)
	}
	pr, err := strconv.ParseUint(pid, 0, 16)
	if err != nil {
		return ControllerKey{}, validationErr("controllers: bad product id %q: %v", pid, err)
	}
	return ControllerKey{VendorID: uint16(v), ProductID: uint16(pr)}, nil
}

func convertControllerCfg(cfg rawControllerCfg) (ControllerSettings, error) {
	mapping := make(map[engine.Button]engine.Button, len(cfg.Mapping))
	for from, to := range cfg.Mapping {
		fb, ok := engine.ButtonByName(from)
		if !ok {
			return ControllerSettings{}, validationErr("controllers: unknown button %q", from)
		}
		tb, ok := engine.ButtonByName(to)
		if !ok {
			return ControllerSettings{}, validationErr("controllers: unknown button %q", to)
		}
		mapping[fb] = tb
	}
	return ControllerSettings{Mapping: mapping}, nil
}

func parseChord(chordKey string) (engine.ButtonChord, error) {
	var chord engine.ButtonChord
	for _, name := range strings.Split(chordKey, "+") {
		name = strings.TrimSpace(name)
		b, ok := engine.ButtonByName(name)
		if !ok {
			return 0, validationErr("rules: unknown button %q in chord %q", name, chordKey)
		}
		chord = chord.Insert(b)
	}
	if chord.Empty() {
		return 0, validationErr("rules: empty chord %q", chordKey)
	}
	return chord, nil
}

func parseStickSide(name string) (StickSide, error) {
	switch name {
	case "left":
		return StickLeft, nil
	case "right":
		return StickRight, nil
	default:
		return 0, validationErr("sticks: unknown side %q (want \"left\" or \"right\")", name)
	}
}

func convertKeyCombo(key string, modifiers []string) (engine.KeyCombo, error) {
	if key == "" {
		return engine.KeyCombo{}, validationErr("key combo: missing \"key\"")
	}
	mods := make([]engine.Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		switch strings.ToLower(m) {
		case "control", "ctrl":
			mods = append(mods, engine.ModControl)
		case "shift":
			mods = append(mods, engine.ModShift)
		case "command", "cmd":
			mods = append(mods, engine.ModCommand)
		case "option", "alt":
			mods = append(mods, engine.ModOption)
		default:
			return engine.KeyCombo{}, validationErr("key combo: unknown modifier %q", m)
		}
	}
	return engine.KeyCombo{Key: engine.Key(key), Modifiers: mods}, nil
}

func convertButtonRule(rbr rawButtonRule) (ButtonRule, error) {
	rule := ButtonRule{
		VibrateMS:        rbr.Vibrate,
		RepeatDelayMS:    rbr.RepeatDelayMS,
		RepeatIntervalMS: rbr.RepeatIntervalMS,
	}

	switch strings.ToLower(rbr.Action) {
	case "keystroke", "":
		combo, err := convertKeyCombo(rbr.Key, rbr.Modifiers)
		if err != nil {
			return rule, err
		}
		rule.Action = ButtonAction{Kind: ActionKeystroke, Keystroke: combo}
	case "tap", "tap_keystroke":
		combo, err := convertKeyCombo(rbr.Key, rbr.Modifiers)
		if err != nil {
			return rule, err
		}
		rule.Action = ButtonAction{Kind: ActionTapKeystroke, Keystroke: combo}
	case "macros":
		combos := make(engine.Macros, 0, len(rbr.Macros))
		for _, m := range rbr.Macros {
			combo, err := convertKeyCombo(m.Key, m.Modifiers)
			if err != nil {
				return rule, err
			}
			combos = append(combos, combo)
		}
		rule.Action = ButtonAction{Kind: ActionMacros, Macros: combos}
	case "shell":
		if rbr.Shell == "" {
			return rule, validationErr("rules: shell action missing \"shell\"")
		}
		rule.Action = ButtonAction{Kind: ActionShell, Shell: rbr.Shell}
	case "mouse_click":
		btn, err := parseMouseButton(rbr.MouseButton)
		if err != nil {
			return rule, err
		}
		ct, err := parseClickType(rbr.ClickType)
		if err != nil {
			return rule, err
		}
		rule.Action = ButtonAction{Kind: ActionMouseClick, MouseBtn: btn, ClickType: ct}
	case "raw_modifier":
		rm, err := parseRawModifier(rbr.RawModifier)
		if err != nil {
			return rule, err
		}
		rule.Action = ButtonAction{Kind: ActionRawModifier, RawMod: rm}
	default:
		return rule, validationErr("rules: unknown action %q", rbr.Action)
	}

	return rule, nil
}

func parseMouseButton(name string) (engine.MouseButton, error) {
	switch strings.ToLower(name) {
	case "left", "":
		return engine.MouseButtonLeft, nil
	case "right":
		return engine.MouseButtonRight, nil
	case "middle":
		return engine.MouseButtonMiddle, nil
	default:
		return 0, validationErr("rules: unknown mouse button %q", name)
	}
}

func parseClickType(name string) (engine.MouseClickType, error) {
	switch strings.ToLower(name) {
	case "click", "single", "":
		return engine.ClickSingle, nil
	case "double", "double_click":
		return engine.ClickDouble, nil
	default:
		return 0, validationErr("rules: unknown click type %q", name)
	}
}

func parseRawModifier(name string) (engine.RawModifierKey, error) {
	switch strings.ToLower(name) {
	case "control":
		return engine.RawModControl, nil
	case "rcontrol":
		return engine.RawModRControl, nil
	case "shift":
		return engine.RawModShift, nil
	case "rshift":
		return engine.RawModRShift, nil
	case "command":
		return engine.RawModCommand, nil
	case "rcommand":
		return engine.RawModRCommand, nil
	case "option":
		return engine.RawModOption, nil
	case "roption":
		return engine.RawModROption, nil
	default:
		return 0, validationErr("rules: unknown raw modifier %q", name)
	}
}

func convertStickMode(raw rawStickMode) (StickMode, error) {
	switch strings.ToLower(raw.Mode) {
	case "arrows":
		return StickMode{Kind: ModeArrows, Arrows: ArrowsParams{
			Deadzone:         nonZero(raw.Deadzone, 0.2),
			RepeatDelayMS:    nonZeroU64(raw.RepeatDelayMS, 300),
			RepeatIntervalMS: nonZeroU64(raw.RepeatIntervalMS, 80),
			InvertX:          raw.InvertX,
			InvertY:          raw.InvertY,
		}}, nil
	case "volume", "brightness":
		axis, err := parseAxis(raw.Axis)
		if err != nil {
			return StickMode{}, err
		}
		kind := ModeVolume
		if strings.ToLower(raw.Mode) == "brightness" {
			kind = ModeBrightness
		}
		return StickMode{Kind: kind, Stepper: StepperParams{
			Axis:          axis,
			Deadzone:      nonZero(raw.Deadzone, 0.2),
			MinIntervalMS: nonZeroU64(raw.MinIntervalMS, 60),
			MaxIntervalMS: nonZeroU64(raw.MaxIntervalMS, 400),
			Invert:        raw.Invert,
		}}, nil
	case "mouse_move":
		gamma := raw.Gamma
		if gamma == 0 {
			gamma = 1.0
		}
		return StickMode{Kind: ModeMouseMove, MouseMove: MouseParams{
			Deadzone:    nonZero(raw.Deadzone, 0.1),
			MaxSpeedPxS: nonZero(raw.MaxSpeedPxS, 800),
			Gamma:       gamma,
			InvertX:     raw.InvertX,
			InvertY:     raw.InvertY,
		}}, nil
	case "scroll":
		return StickMode{Kind: ModeScroll, Scroll: ScrollParams{
			Deadzone:    nonZero(raw.Deadzone, 0.1),
			SpeedLinesS: nonZero(raw.SpeedLinesS, 20),
			Horizontal:  raw.Horizontal,
			InvertX:     raw.InvertX,
			InvertY:     raw.InvertY,
		}}, nil
	default:
		return StickMode{}, validationErr("sticks: unknown mode %q", raw.Mode)
	}
}

func parseAxis(name string) (StickAxis, error) {
	switch strings.ToUpper(name) {
	case "X", "":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	default:
		return 0, validationErr("sticks: unknown axis %q", name)
	}
}

func nonZero(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func nonZeroU64(v, def uint64) uint64 {
	if v == 0 {
		return def
	}
	return v
}
