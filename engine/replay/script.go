// Package replay plays scripted input against a navigation controller: a
// headless stand-in for a user at the preview page, used for regression
// scripts and demos.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"gopkg.in/yaml.v3"
)

// Step kinds.
const (
	StepDown        = "down"
	StepUp          = "up"
	StepMove        = "move"
	StepDrag        = "drag"
	StepContextMenu = "contextmenu"
	StepKey         = "key"
	StepKeyDown     = "keydown"
	StepKeyUp       = "keyup"
	StepResize      = "resize"
	StepMode        = "mode"
	StepExpect      = "expect"
)

var (
	// ErrInvalidScript is returned for scripts with unknown steps or malformed values.
	ErrInvalidScript = errors.New("invalid replay script")
	// ErrExpectation is returned when an expect step does not match the controller state.
	ErrExpectation = errors.New("expectation failed")
)

// Script is a named sequence of input steps.
type Script struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Steps  []Step `yaml:"steps"`
}

// Step is one scripted action. Which fields apply depends on Do.
type Step struct {
	Do     string  `yaml:"do"`
	Button string  `yaml:"button,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`

	// Drag end point and number of intermediate moves.
	ToX   float64 `yaml:"toX,omitempty"`
	ToY   float64 `yaml:"toY,omitempty"`
	Moves int     `yaml:"moves,omitempty"`

	// Key name for key steps, e.g. "w", "up", "alt", "2".
	Key string `yaml:"key,omitempty"`
	// Repeat presses a key step several times.
	Repeat int `yaml:"repeat,omitempty"`

	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Mode   string `yaml:"mode,omitempty"`

	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation checks controller state; empty fields are not checked.
// Vectors use the XML3D attribute syntax.
type Expectation struct {
	Position     string  `yaml:"position,omitempty"`
	Direction    string  `yaml:"direction,omitempty"`
	RevolvePoint string  `yaml:"revolvePoint,omitempty"`
	Mode         string  `yaml:"mode,omitempty"`
	Tolerance    float64 `yaml:"tolerance,omitempty"`
}

// Load reads a YAML script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML script. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step for a known kind and well-formed values.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("%w: step %d (%s): %v", ErrInvalidScript, i+1, step.Do, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Do {
	case StepDown, StepDrag:
		if _, err := ParseButton(st.Button); err != nil {
			return err
		}
	case StepUp, StepMove, StepContextMenu:
	case StepKey, StepKeyDown, StepKeyUp:
		if ParseKey(st.Key) == common.KeyUnknown {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	case StepResize:
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("size must be positive, got %dx%d", st.Width, st.Height)
		}
	case StepMode:
		if st.Mode == "" {
			return errors.New("mode is empty")
		}
	case StepExpect:
		if st.Expect == nil {
			return errors.New("expect is empty")
		}
		for _, v := range []string{st.Expect.Position, st.Expect.Direction, st.Expect.RevolvePoint} {
			if v == "" {
				continue
			}
			if _, err := common.ParseVec3(v); err != nil {
				return err
			}
		}
	default:
		return errors.New("unknown step")
	}
	return nil
}

// ParseButton maps a button name to DOM button numbering.
func ParseButton(name string) (window.Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "primary", "left":
		return window.ButtonPrimary, nil
	case "middle":
		return window.ButtonMiddle, nil
	case "secondary", "right":
		return window.ButtonSecondary, nil
	default:
		return window.ButtonNone, fmt.Errorf("unknown button %q", name)
	}
}

// ParseKey maps a key name to a virtual key code, or common.KeyUnknown.
func ParseKey(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "w":
		return common.KeyW
	case "a":
		return common.KeyA
	case "s":
		return common.KeyS
	case "d":
		return common.KeyD
	case "r":
		return common.KeyR
	case "f":
		return common.KeyF
	case "1":
		return common.Key1
	case "2":
		return common.Key2
	case "up":
		return common.KeyUp
	case "down":
		return common.KeyDown
	case "left":
		return common.KeyLeft
	case "right":
		return common.KeyRight
	case "alt":
		return common.KeyLeftAlt
	default:
		return common.KeyUnknown
	}
}
