package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool

	// Update, if set, runs at the start of every tick before the stage
	// updates. Returning an error stops the game loop with that error.
	Update func() error
}

// Run opens a window and drives s until the window is closed.
//
//	stage := folio.NewStage(1280, 800)
//	// ... build nodes, mount sections ...
//	err := folio.Run(stage, folio.RunConfig{Title: "Portfolio", Width: 1280, Height: 800})
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(s.viewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(s.viewport.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	s.Resize(float64(cfg.Width), float64(cfg.Height))

	g := &game{stage: s, update: cfg.Update}
	if cfg.ShowFPS {
		NewFPSWidget(s)
	}
	return ebiten.RunGame(g)
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage  *Stage
	update func() error
}

func (g *game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	g.stage.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.stage.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
