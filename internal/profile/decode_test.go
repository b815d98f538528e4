package profile

import (
	"errors"
	"testing"

	"github.com/gamacros/gamacrosd/internal/engine"
)

func TestDecodeMinimalProfile(t *testing.T) {
	data := []byte(`
shell = "/bin/zsh"

[rules.common.buttons."A"]
action = "keystroke"
key = "a"
`)
	p, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Shell != "/bin/zsh" {
		t.Fatalf("expected shell override, got %q", p.Shell)
	}
	rules, ok := p.Rules[CommonApp]
	if !ok || len(rules.Buttons) != 1 {
		t.Fatalf("expected one button rule, got %+v", rules)
	}
	if rules.Buttons[0].Rule.Action.Kind != ActionKeystroke {
		t.Fatalf("expected a keystroke action, got %+v", rules.Buttons[0].Rule.Action)
	}
}

func TestDecodeChordOrderMatchesSourceOrder(t *testing.T) {
	data := []byte(`
[rules.common.buttons."B"]
action = "tap"
key = "b"

[rules.common.buttons."A+B"]
action = "tap"
key = "x"

[rules.common.buttons."A"]
action = "tap"
key = "a"
`)
	p, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := p.Rules[CommonApp]
	if len(rules.Buttons) != 3 {
		t.Fatalf("expected 3 chord rules, got %d", len(rules.Buttons))
	}
	wantKeys := []engine.Key{"b", "x", "a"}
	for i, want := range wantKeys {
		if rules.Buttons[i].Rule.Action.Keystroke.Key != want {
			t.Fatalf("chord order mismatch at %d: want key %q, got %q", i, want, rules.Buttons[i].Rule.Action.Keystroke.Key)
		}
	}
}

func TestDecodeUnknownButtonNameFails(t *testing.T) {
	data := []byte(`
[rules.common.buttons."NotAButton"]
action = "tap"
key = "a"
`)
	_, err := DecodeBytes(data)
	assertValidationError(t, err)
}

func TestDecodeUnsupportedVersionFails(t *testing.T) {
	data := []byte(`version = 99`)
	_, err := DecodeBytes(data)
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecodeMissingVersionDefaultsToCurrent(t *testing.T) {
	data := []byte(`shell = "/bin/sh"`)
	if _, err := DecodeBytes(data); err != nil {
		t.Fatalf("missing version should default to the current one: %v", err)
	}
}

func TestDecodeMalformedChordFails(t *testing.T) {
	data := []byte(`
[rules.common.buttons."A+"]
action = "tap"
key = "a"
`)
	_, err := DecodeBytes(data)
	assertValidationError(t, err)
}

func TestDecodeUnknownStickModeFails(t *testing.T) {
	data := []byte(`
[rules.common.sticks.left]
mode = "teleport"
`)
	_, err := DecodeBytes(data)
	assertValidationError(t, err)
}

func TestDecodeControllerMappingKeyFormat(t *testing.T) {
	data := []byte(`
[controllers."0x054c:0x0ce6".mapping]
A = "B"
`)
	p, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings, ok := p.Controllers[ControllerKey{VendorID: 0x054c, ProductID: 0x0ce6}]
	if !ok {
		t.Fatal("expected controller settings for the declared vendor:product key")
	}
	if settings.Mapping[engine.ButtonA] != engine.ButtonB {
		t.Fatalf("expected A remapped to B, got %+v", settings.Mapping)
	}
}

func TestDecodeBadControllerKeyFails(t *testing.T) {
	data := []byte(`
[controllers."not-a-key".mapping]
A = "B"
`)
	_, err := DecodeBytes(data)
	assertValidationError(t, err)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var pe *Error
	if !errors.As(err, &pe) || pe.Kind != ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
