// Package gamepad wraps SDL2's GameController API, translating SDL
// controller events into the engine's ControllerInfo/Button/Axis
// vocabulary. It owns the mapping between SDL's button/axis ordinals
// and the engine's platform-neutral ones, mirroring the teacher's
// input_processor.go button/axis translation tables.
package gamepad

import (
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gamacros/gamacrosd/internal/engine"
)

// ButtonEvent and AxisEvent are the normalized events the backend feeds
// to the runner's event loop, one per SDL poll iteration.
type ButtonEvent struct {
	Controller engine.ControllerId
	Button     engine.Button
	Phase      engine.ButtonPhase
}

type AxisEvent struct {
	Controller engine.ControllerId
	Axis       engine.Axis
	Value      float32
}

// ConnectEvent/DisconnectEvent report a controller joining or leaving.
type ConnectEvent struct {
	Info engine.ControllerInfo
}

type DisconnectEvent struct {
	Controller engine.ControllerId
}

var sdlButtonToEngine = map[sdl.GameControllerButton]engine.Button{
	sdl.CONTROLLER_BUTTON_A:             engine.ButtonA,
	sdl.CONTROLLER_BUTTON_B:             engine.ButtonB,
	sdl.CONTROLLER_BUTTON_X:             engine.ButtonX,
	sdl.CONTROLLER_BUTTON_Y:             engine.ButtonY,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  engine.ButtonLeftShoulder,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: engine.ButtonRightShoulder,
	sdl.CONTROLLER_BUTTON_DPAD_UP:       engine.ButtonDPadUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     engine.ButtonDPadDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     engine.ButtonDPadLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    engine.ButtonDPadRight,
	sdl.CONTROLLER_BUTTON_LEFTSTICK:     engine.ButtonLeftStick,
	sdl.CONTROLLER_BUTTON_RIGHTSTICK:    engine.ButtonRightStick,
	sdl.CONTROLLER_BUTTON_START:         engine.ButtonStart,
	sdl.CONTROLLER_BUTTON_BACK:          engine.ButtonSelect,
	sdl.CONTROLLER_BUTTON_GUIDE:         engine.ButtonGuide,
}

var sdlAxisToEngine = map[sdl.GameControllerAxis]engine.Axis{
	sdl.CONTROLLER_AXIS_LEFTX:        engine.AxisLX,
	sdl.CONTROLLER_AXIS_LEFTY:        engine.AxisLY,
	sdl.CONTROLLER_AXIS_RIGHTX:       engine.AxisRX,
	sdl.CONTROLLER_AXIS_RIGHTY:       engine.AxisRY,
	sdl.CONTROLLER_AXIS_TRIGGERLEFT:  engine.AxisLT,
	sdl.CONTROLLER_AXIS_TRIGGERRIGHT: engine.AxisRT,
}

// triggerButtonThreshold is the analog trigger value (out of int16 max)
// above which a trigger axis is also surfaced as ButtonLeftTrigger /
// ButtonRightTrigger, since profiles bind chords to buttons, not axes.
const triggerButtonThreshold = 0.5

// axisScale converts SDL's int16 axis range to the engine's [-1, 1]
// float32 convention.
const axisScale = 1.0 / 32767.0

// Backend owns the open SDL GameController handles and the
// axis-threshold state needed to synthesize trigger button events.
type Backend struct {
	log         *slog.Logger
	controllers map[engine.ControllerId]*sdl.GameController
	triggerHeld map[engine.ControllerId][2]bool // [left, right]
	nextID      engine.ControllerId
	joyToID     map[sdl.JoystickID]engine.ControllerId
}

// New opens SDL's game controller subsystem. The caller is responsible
// for sdl.Init(sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK) beforehand
// and sdl.Quit() on shutdown.
func New(log *slog.Logger) *Backend {
	return &Backend{
		log:         log,
		controllers: make(map[engine.ControllerId]*sdl.GameController),
		triggerHeld: make(map[engine.ControllerId][2]bool),
		joyToID:     make(map[sdl.JoystickID]engine.ControllerId),
	}
}

// Scan opens every currently attached game controller and returns a
// ConnectEvent for each, mirroring InitInputProcessor's startup sweep.
func (b *Backend) Scan() []ConnectEvent {
	var events []ConnectEvent
	n := sdl.NumJoysticks()
	b.log.Debug("scanning for controllers", "joystick_count", n)
	for i := 0; i < n; i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if ev, ok := b.open(i); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (b *Backend) open(joystickIndex int) (ConnectEvent, bool) {
	ctrl := sdl.GameControllerOpen(joystickIndex)
	if ctrl == nil {
		b.log.Error("failed to open game controller", "index", joystickIndex)
		return ConnectEvent{}, false
	}
	joy := ctrl.Joystick()
	id := b.nextID
	b.nextID++

	b.controllers[id] = ctrl
	b.joyToID[joy.InstanceID()] = id

	info := engine.ControllerInfo{
		ID:             id,
		Name:           ctrl.Name(),
		VendorID:       joy.Vendor(),
		ProductID:      joy.Product(),
		SupportsRumble: ctrl.HasRumble(),
	}
	b.log.Debug("opened game controller", "id", id, "name", info.Name)
	return ConnectEvent{Info: info}, true
}

// HandleDeviceEvent translates an sdl.ControllerDeviceEvent into a
// Connect or Disconnect event. ok is false for event types this backend
// does not act on (e.g. remapping notifications).
func (b *Backend) HandleDeviceEvent(e *sdl.ControllerDeviceEvent) (any, bool) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		ev, ok := b.open(int(e.Which))
		return ev, ok
	case sdl.CONTROLLERDEVICEREMOVED:
		id, ok := b.joyToID[sdl.JoystickID(e.Which)]
		if !ok {
			return nil, false
		}
		if ctrl, ok := b.controllers[id]; ok {
			ctrl.Close()
		}
		delete(b.controllers, id)
		delete(b.joyToID, sdl.JoystickID(e.Which))
		delete(b.triggerHeld, id)
		return DisconnectEvent{Controller: id}, true
	default:
		return nil, false
	}
}

// HandleButtonEvent translates an sdl.ControllerButtonEvent.
func (b *Backend) HandleButtonEvent(e *sdl.ControllerButtonEvent) (ButtonEvent, bool) {
	id, ok := b.joyToID[sdl.JoystickID(e.Which)]
	if !ok {
		return ButtonEvent{}, false
	}
	btn, ok := sdlButtonToEngine[sdl.GameControllerButton(e.Button)]
	if !ok {
		return ButtonEvent{}, false
	}
	phase := engine.Released
	if e.Type == sdl.CONTROLLERBUTTONDOWN {
		phase = engine.Pressed
	}
	return ButtonEvent{Controller: id, Button: btn, Phase: phase}, true
}

// HandleAxisEvent translates an sdl.ControllerAxisEvent into a
// normalized AxisEvent, and for the two trigger axes also synthesizes a
// ButtonEvent when the analog value crosses triggerButtonThreshold, so
// profiles can bind chords to L2/R2 without special-casing axes.
func (b *Backend) HandleAxisEvent(e *sdl.ControllerAxisEvent) (AxisEvent, bool, *ButtonEvent) {
	id, ok := b.joyToID[sdl.JoystickID(e.Which)]
	if !ok {
		return AxisEvent{}, false, nil
	}
	axis, ok := sdlAxisToEngine[sdl.GameControllerAxis(e.Axis)]
	if !ok {
		return AxisEvent{}, false, nil
	}
	value := float32(e.Value) * axisScale

	ae := AxisEvent{Controller: id, Axis: axis, Value: value}

	var triggerIdx int
	var triggerButton engine.Button
	switch axis {
	case engine.AxisLT:
		triggerIdx, triggerButton = 0, engine.ButtonLeftTrigger
	case engine.AxisRT:
		triggerIdx, triggerButton = 1, engine.ButtonRightTrigger
	default:
		return ae, true, nil
	}

	held := b.triggerHeld[id]
	past := value >= triggerButtonThreshold
	if past == held[triggerIdx] {
		return ae, true, nil
	}
	held[triggerIdx] = past
	b.triggerHeld[id] = held

	phase := engine.Released
	if past {
		phase = engine.Pressed
	}
	be := ButtonEvent{Controller: id, Button: triggerButton, Phase: phase}
	return ae, true, &be
}

// Rumble drives a controller's haptics for durationMs milliseconds at
// the given low/high frequency motor strengths.
func (b *Backend) Rumble(id engine.ControllerId, low, high uint16, durationMs uint32) {
	ctrl, ok := b.controllers[id]
	if !ok {
		return
	}
	if err := ctrl.Rumble(low, high, durationMs); err != nil {
		b.log.Debug("rumble failed", "controller", id, "err", err)
	}
}

// Close closes every open controller handle.
func (b *Backend) Close() {
	for _, ctrl := range b.controllers {
		ctrl.Close()
	}
}
