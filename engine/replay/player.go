package replay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// DefaultTolerance is the expect step tolerance when a script sets none.
const DefaultTolerance = 1e-6

// Result summarizes a replay.
type Result struct {
	// Steps is the number of steps played.
	Steps int
	// Events is the number of events dispatched.
	Events int
	// Consumed is the number of events the controller stopped.
	Consumed int
	// Redraws is the number of redraw passes that redrew at least one controller.
	Redraws int
	// Position and Direction are the final camera state.
	Position, Direction mgl64.Vec3
}

// Player plays scripts against one controller.
type Player interface {
	// Run plays a script. Each step is followed by a redraw pass over the registry.
	//
	// Parameters:
	//   - s: the script
	//
	// Returns:
	//   - Result: the replay summary, valid up to the failing step on error
	//   - error: ErrExpectation or ErrInvalidScript
	Run(s *Script) (Result, error)
}

type player struct {
	controller navigation.Controller
	registry   navigation.Registry
	onStep     func(index int, step Step)
	onResize   func(width, height int)
}

// sizedHost is a host whose picking rays depend on a viewport size.
type sizedHost interface {
	SetSize(width, height int)
}

var _ Player = &player{}

// NewPlayer creates a player for a controller. The controller is registered
// with the registry (a private one unless WithRegistry is given) and attached.
// Resize steps also resize the controller's host when it has a viewport size,
// unless WithResizeCallback is given.
//
// Parameters:
//   - c: the controller to drive
//   - options: functional options for player configuration
//
// Returns:
//   - Player: the player
func NewPlayer(c navigation.Controller, options ...PlayerOption) Player {
	p := &player{controller: c}
	for _, option := range options {
		option(p)
	}
	if p.registry == nil {
		p.registry = navigation.NewRegistry()
	}
	if p.onResize == nil {
		if h, ok := c.Host().(sizedHost); ok {
			p.onResize = h.SetSize
		}
	}
	p.registry.Register(c)
	c.Attach()
	return p
}

func (p *player) Run(s *Script) (Result, error) {
	var res Result
	surface := p.controller.Surface()

	if s.Width > 0 && s.Height > 0 {
		if err := p.resize(surface, s.Width, s.Height); err != nil {
			return res, err
		}
	}

	for i, step := range s.Steps {
		if p.onStep != nil {
			p.onStep(i, step)
		}
		if err := p.play(surface, step, &res); err != nil {
			p.finish(&res)
			return res, fmt.Errorf("replay %s: step %d (%s): %w", s.Name, i+1, step.Do, err)
		}
		res.Steps++
		if p.registry.UpdateAll() > 0 {
			res.Redraws++
		}
	}

	p.finish(&res)
	log.Debug("replay finished", "script", s.Name, "steps", res.Steps, "events", res.Events, "redraws", res.Redraws)
	return res, nil
}

func (p *player) play(surface window.Surface, step Step, res *Result) error {
	dispatch := func(e *window.Event) {
		surface.Dispatch(e)
		res.Events++
		if e.Stopped() {
			res.Consumed++
		}
	}

	switch step.Do {
	case StepDown:
		b, err := ParseButton(step.Button)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		dispatch(&window.Event{Type: window.EventPointerDown, Button: b, X: step.X, Y: step.Y})
	case StepUp:
		dispatch(&window.Event{Type: window.EventPointerUp, X: step.X, Y: step.Y})
	case StepMove:
		dispatch(&window.Event{Type: window.EventPointerMove, X: step.X, Y: step.Y})
	case StepContextMenu:
		dispatch(&window.Event{Type: window.EventContextMenu, X: step.X, Y: step.Y})
	case StepDrag:
		b, err := ParseButton(step.Button)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		moves := max(step.Moves, 1)
		dispatch(&window.Event{Type: window.EventPointerDown, Button: b, X: step.X, Y: step.Y})
		for m := 1; m <= moves; m++ {
			t := float64(m) / float64(moves)
			dispatch(&window.Event{
				Type: window.EventPointerMove,
				X:    step.X + t*(step.ToX-step.X),
				Y:    step.Y + t*(step.ToY-step.Y),
			})
		}
		dispatch(&window.Event{Type: window.EventPointerUp, Button: b, X: step.ToX, Y: step.ToY})
	case StepKey, StepKeyDown, StepKeyUp:
		key := ParseKey(step.Key)
		if key == common.KeyUnknown {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidScript, step.Key)
		}
		repeat := max(step.Repeat, 1)
		for r := 0; r < repeat; r++ {
			if step.Do != StepKeyUp {
				dispatch(&window.Event{Type: window.EventKeyDown, Key: key})
			}
			if step.Do != StepKeyDown {
				dispatch(&window.Event{Type: window.EventKeyUp, Key: key})
			}
		}
	case StepResize:
		return p.resize(surface, step.Width, step.Height)
	case StepMode:
		p.controller.SetMode(navigation.ParseMode(step.Mode))
	case StepExpect:
		return p.check(step.Expect)
	default:
		return fmt.Errorf("%w: unknown step", ErrInvalidScript)
	}
	return nil
}

func (p *player) check(exp *Expectation) error {
	if exp == nil {
		return fmt.Errorf("%w: expect is empty", ErrInvalidScript)
	}
	tol := exp.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	cam := p.controller.Camera()
	checks := []struct {
		name   string
		want   string
		actual mgl64.Vec3
	}{
		{"position", exp.Position, cam.Position()},
		{"direction", exp.Direction, cam.Direction()},
		{"revolvePoint", exp.RevolvePoint, p.controller.RevolvePoint()},
	}
	for _, c := range checks {
		if c.want == "" {
			continue
		}
		want, err := common.ParseVec3(c.want)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidScript, c.name, err)
		}
		if !want.ApproxEqualThreshold(c.actual, tol) {
			return fmt.Errorf("%w: %s is %s, want %s", ErrExpectation, c.name, common.FormatVec3(c.actual), common.FormatVec3(want))
		}
	}

	if exp.Mode != "" {
		if want := navigation.ParseMode(exp.Mode); want != p.controller.Mode() {
			return fmt.Errorf("%w: mode is %s, want %s", ErrExpectation, p.controller.Mode(), want)
		}
	}
	return nil
}

func (p *player) finish(res *Result) {
	cam := p.controller.Camera()
	res.Position = cam.Position()
	res.Direction = cam.Direction()
}

func (p *player) resize(surface window.Surface, width, height int) error {
	hs, ok := surface.(window.HeadlessSurface)
	if !ok {
		return fmt.Errorf("%w: resize needs a headless surface", ErrInvalidScript)
	}
	hs.SetSize(width, height)
	if p.onResize != nil {
		p.onResize(width, height)
	}
	return nil
}
