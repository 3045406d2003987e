package stillframe

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsPanel is large enough for "FPS: 60.0\nTPS: 60.0".
const fpsPanelW, fpsPanelH = 100, 32

var fpsPanel *ebiten.Image

// drawFPS draws the current FPS and TPS in the top-left corner over a
// semi-transparent background.
func drawFPS(screen *ebiten.Image) {
	if fpsPanel == nil {
		fpsPanel = ebiten.NewImage(fpsPanelW, fpsPanelH)
	}
	fpsPanel.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(fpsPanel, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	screen.DrawImage(fpsPanel, nil)
}
