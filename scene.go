package stillframe

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and the
// presentation context (a Dispatcher). Everything on a Scene except
// Dispatcher().Dispatch and Deliver must be called from the goroutine that
// runs Update and Draw.
type Scene struct {
	root       *Node
	dispatcher *Dispatcher
	debug      bool

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	// FrameTime is the step, in seconds, animations advance by on each
	// Update. Run sets it from ebiten.TPS.
	FrameTime  float32
	animations []*Animation

	updateFunc func() error
	script     *Script
	stats      frameStats
}

// NewScene creates a new scene with a pre-created plain root named "root".
func NewScene() *Scene {
	s := &Scene{
		dispatcher:    NewDispatcher(),
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
		FrameTime:     1.0 / 60,
	}
	s.SetRoot(NewPlain("root"))
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetRoot replaces the scene's tree. The old tree is unbound from the
// scene's dispatcher (its image views stop accepting deliveries) but not
// disposed. Panics if root is nil or already has a parent.
func (s *Scene) SetRoot(root *Node) {
	if root == nil {
		panic("stillframe: cannot set nil root")
	}
	if root.Parent != nil {
		panic("stillframe: root node already has a parent")
	}
	if s.root != nil {
		bindSubtree(s.root, nil)
	}
	s.root = root
	bindSubtree(root, s.dispatcher)
	if s.debug {
		debugCheckDuplicateIDs(root)
	}
}

// Find returns the first node below the root with the given ID.
// See FindByID for the traversal order.
func (s *Scene) Find(id string) (*Node, bool) {
	return FindByID(s.root, id)
}

// Dispatcher returns the scene's presentation context. Its Dispatch method
// is the only Scene entry point that is safe from other goroutines.
func (s *Scene) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// SetUpdateFunc sets a callback that Run invokes once per tick after
// Update. Returning a non-nil error (ebiten.Termination for a clean exit)
// stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update applies every write scheduled on the scene's dispatcher since the
// previous frame, advances running animations by FrameTime, then advances
// the attached script, if any.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.dispatcher.Drain()

	if s.debug {
		s.stats.drainTime = time.Since(t0)
	}

	s.advanceAnimations(s.FrameTime)

	if s.script != nil {
		s.script.step(s)
	}
}

// Draw fills the screen with ClearColor, draws every visible image view and
// captures queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())
	drawn := s.drawNode(screen, s.root, drawState{scaleX: 1, scaleY: 1, alpha: 1})
	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawn = drawn
		s.stats.applied, s.stats.dropped = s.dispatcher.takeStats()
		s.debugLog(s.stats)
		s.stats = frameStats{}
	}
}

// Close tears down the scene's presentation context. Deliveries made after
// Close are dropped.
func (s *Scene) Close() {
	s.dispatcher.Close()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth, child count and duplicate ID warnings are
// printed, and per-frame delivery stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug.Store(enabled)
	if enabled {
		debugCheckDuplicateIDs(s.root)
	}
}
