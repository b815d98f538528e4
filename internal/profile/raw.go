package profile

// raw* types mirror the TOML wire format 1:1; Load/DecodeBytes convert
// them into the validated, engine-facing types in types.go/stickmode.go.

type rawProfile struct {
	Version     int                          `toml:"version"`
	Shell       string                       `toml:"shell"`
	Blacklist   []string                     `toml:"blacklist"`
	Controllers map[string]rawControllerCfg  `toml:"controllers"`
	Rules       map[string]rawAppRules       `toml:"rules"`
}

type rawControllerCfg struct {
	Mapping map[string]string `toml:"mapping"`
}

type rawAppRules struct {
	Buttons map[string]rawButtonRule `toml:"buttons"`
	Sticks  map[string]rawStickMode  `toml:"sticks"`
}

type rawKeyCombo struct {
	Key       string   `toml:"key"`
	Modifiers []string `toml:"modifiers"`
}

type rawButtonRule struct {
	Action      string        `toml:"action"`
	Key         string        `toml:"key"`
	Modifiers   []string      `toml:"modifiers"`
	Macros      []rawKeyCombo `toml:"macros"`
	Shell       string        `toml:"shell"`
	MouseButton string        `toml:"mouse_button"`
	ClickType   string        `toml:"click_type"`
	RawModifier string        `toml:"raw_modifier"`

	Vibrate          *uint16 `toml:"vibrate"`
	RepeatDelayMS    *uint64 `toml:"repeat_delay_ms"`
	RepeatIntervalMS *uint64 `toml:"repeat_interval_ms"`
}

type rawStickMode struct {
	Mode string `toml:"mode"`
	Axis string `toml:"axis"`

	Deadzone         float32 `toml:"deadzone"`
	RepeatDelayMS    uint64  `toml:"repeat_delay_ms"`
	RepeatIntervalMS uint64  `toml:"repeat_interval_ms"`
	MinIntervalMS    uint64  `toml:"min_interval_ms"`
	MaxIntervalMS    uint64  `toml:"max_interval_ms"`
	MaxSpeedPxS      float32 `toml:"max_speed_px_s"`
	Gamma            float32 `toml:"gamma"`
	SpeedLinesS      float32 `toml:"speed_lines_s"`
	Horizontal       bool    `toml:"horizontal"`
	InvertX          bool    `toml:"invert_x"`
	InvertY          bool    `toml:"invert_y"`
	Invert           bool    `toml:"invert"`
}
