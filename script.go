package stillframe

import (
	"fmt"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a capture script.
type scriptStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	ID     string `yaml:"id,omitempty"`
	Frames int    `yaml:"frames,omitempty"`

	// Animation targets
	Alpha *float64 `yaml:"alpha,omitempty"`
	X     float64  `yaml:"x,omitempty"`
	Y     float64  `yaml:"y,omitempty"`
	Scale *float64 `yaml:"scale,omitempty"`
}

type scriptDoc struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences layout changes and screenshots across frames for
// automated visual checks. Attach it to a Scene with SetScript; one step
// runs per Update, after deliveries have been applied.
//
// Actions:
//
//	screenshot  queue a screenshot named label
//	wait        pause for frames updates
//	await       pause until the image view id holds an image (at most frames
//	            updates when frames > 0)
//	collapse    collapse the panel id
//	expand      expand the panel id
//	hide, show  toggle visibility of node id
//	fade        animate the alpha of node id to alpha over frames updates
//	move        animate the offset of node id to (x, y) over frames updates
//	zoom        animate the scale of node id to scale over frames updates
//	quit        stop the game loop started by Run
//
// Animation steps start the animation and move on; follow them with a wait
// to capture the end state.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	awaiting  *Node
	quit      bool
	done      bool
}

// LoadScript parses a capture script. The document is YAML (and therefore
// also accepts JSON):
//
//	steps:
//	  - action: await
//	    id: currentFrame
//	    frames: 120
//	  - action: screenshot
//	    label: loaded
//	  - action: quit
func LoadScript(data []byte) (*Script, error) {
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "screenshot", "wait", "quit":
		case "await", "collapse", "expand", "hide", "show":
			if st.ID == "" {
				return nil, fmt.Errorf("parse script: step %d: %s needs an id", i, st.Action)
			}
		case "fade", "move", "zoom":
			if err := checkAnimationStep(st); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// SetScript attaches a capture script to the scene. nil detaches it.
func (s *Scene) SetScript(script *Script) {
	s.script = script
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Scene.Update.
func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	if r.awaiting != nil {
		if r.awaiting.image.Get() == nil {
			if r.waitCount == 0 {
				return
			}
			r.waitCount--
			if r.waitCount > 0 {
				return
			}
			logf("script: gave up waiting for %q", r.awaiting.ID)
		}
		r.awaiting = nil
		r.waitCount = 0
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		r.quit = true
	default:
		n, ok := s.Find(st.ID)
		if !ok {
			logf("script: no node %q for %s", st.ID, st.Action)
			break
		}
		switch st.Action {
		case "await":
			if n.image == nil {
				logf("script: node %q is not an image view", st.ID)
				break
			}
			if n.image.Get() == nil {
				r.awaiting = n
				r.waitCount = st.Frames
			}
		case "collapse", "expand":
			if n.Kind != KindPanel {
				logf("script: node %q is a %s, not a panel", st.ID, n.Kind)
				break
			}
			n.Collapsed = st.Action == "collapse"
		case "hide", "show":
			n.Visible = st.Action == "show"
		case "fade":
			s.Animate(FadeTo(n, *st.Alpha, stepSeconds(s, st), ease.InOutQuad))
		case "move":
			s.Animate(MoveTo(n, st.X, st.Y, stepSeconds(s, st), ease.InOutQuad))
		case "zoom":
			s.Animate(ZoomTo(n, *st.Scale, stepSeconds(s, st), ease.InOutQuad))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.awaiting == nil {
		r.done = true
	}
}

// checkAnimationStep validates the target and length of a fade, move or zoom step.
func checkAnimationStep(st scriptStep) error {
	if st.ID == "" {
		return fmt.Errorf("%s needs an id", st.Action)
	}
	if st.Frames <= 0 {
		return fmt.Errorf("%s needs frames > 0", st.Action)
	}
	switch st.Action {
	case "fade":
		if st.Alpha == nil || *st.Alpha < 0 || *st.Alpha > 1 {
			return fmt.Errorf("fade needs an alpha in [0, 1]")
		}
	case "zoom":
		if st.Scale == nil || *st.Scale <= 0 {
			return fmt.Errorf("zoom needs a scale > 0")
		}
	}
	return nil
}

// stepSeconds converts a step's frame count into seconds at the scene's frame time.
func stepSeconds(s *Scene, st scriptStep) float32 {
	return float32(st.Frames) * s.FrameTime
}
