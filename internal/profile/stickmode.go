package profile

// StickAxis selects which analog axis a stepper mode reads.
type StickAxis int

const (
	AxisX StickAxis = iota
	AxisY
)

// StickModeKind discriminates the StickMode variants.
type StickModeKind int

const (
	ModeArrows StickModeKind = iota
	ModeVolume
	ModeBrightness
	ModeMouseMove
	ModeScroll
)

// ArrowsParams configures Arrows mode: discrete arrow-key taps with
// initial-delay-then-interval auto-repeat while the stick is held past
// the deadzone in a dominant direction.
type ArrowsParams struct {
	Deadzone         float32
	RepeatDelayMS    uint64
	RepeatIntervalMS uint64
	InvertX          bool
	InvertY          bool
}

// StepperParams configures Volume/Brightness mode: a single-axis rate
// stepper whose inter-tap interval scales linearly with deflection.
type StepperParams struct {
	Axis         StickAxis
	Deadzone     float32
	MinIntervalMS uint64
	MaxIntervalMS uint64
	Invert       bool
}

// MouseParams configures MouseMove mode: continuous cursor delta
// proportional to magnitude^Gamma * MaxSpeedPxS * dt.
type MouseParams struct {
	Deadzone     float32
	MaxSpeedPxS  float32
	Gamma        float32
	InvertX      bool
	InvertY      bool
}

// ScrollParams configures Scroll mode: continuous scroll delta at
// SpeedLinesS * dt along the selected axis.
type ScrollParams struct {
	Deadzone     float32
	SpeedLinesS  float32
	Horizontal   bool
	InvertX      bool
	InvertY      bool
}

// StickMode is a tagged union of the five stick behaviors a side of a
// controller's analog stick can be bound to.
type StickMode struct {
	Kind StickModeKind

	Arrows     ArrowsParams
	Stepper    StepperParams // Volume, Brightness
	MouseMove  MouseParams
	Scroll     ScrollParams
}
