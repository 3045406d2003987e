package stillframe

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// DefaultRunConfig is used for zero fields of the config passed to Run.
var DefaultRunConfig = RunConfig{
	Title:  "stillframe",
	Width:  800,
	Height: 600,
}

// Run opens a window and drives scene with ebiten's game loop until the
// window is closed, the update func returns an error or an attached script
// quits. The scene's dispatcher is closed when the loop exits, so deliveries
// made afterwards are dropped. Returning ebiten.Termination from the update
// func is a clean exit and yields a nil error.
func Run(scene *Scene, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	scene.FrameTime = float32(1 / float64(ebiten.TPS()))

	g := &game{scene: scene, cfg: cfg}
	err := ebiten.RunGame(g)
	scene.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = DefaultRunConfig.Title
	}
	if c.Width <= 0 {
		c.Width = DefaultRunConfig.Width
	}
	if c.Height <= 0 {
		c.Height = DefaultRunConfig.Height
	}
	return c
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if sc := g.scene.script; sc != nil && sc.quit {
		return ebiten.Termination
	}
	if g.scene.updateFunc != nil {
		return g.scene.updateFunc()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		drawFPS(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
