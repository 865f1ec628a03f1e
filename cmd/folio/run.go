package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/portfolio"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		contentFile string
		watch       bool
		showFPS     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the portfolio window",
		Long: `The run command opens a window and renders the portfolio. With --watch
the content file is watched and every change remounts the page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("content") {
				a.cfg.Content.File = contentFile
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Content.Watch = watch
			}
			if cmd.Flags().Changed("fps") {
				a.cfg.Window.ShowFPS = showFPS
			}
			return a.run()
		},
	}
	cmd.Flags().StringVar(&contentFile, "content", "", "content YAML file (default is the built-in content)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the page when the content file changes")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show the FPS overlay")
	return cmd
}

func (a *app) run() (err error) {
	c, err := a.loadContent()
	if err != nil {
		return err
	}

	w := a.cfg.Window
	stage := folio.NewStage(float64(w.Width), float64(w.Height))
	stage.SetLogger(a.log)
	stage.SetDebugMode(a.cfg.Debug)

	site := portfolio.New(stage, c)
	if err := site.Mount(); err != nil {
		a.log.Warn("some sections failed to mount", zap.Error(err))
	}
	defer stage.UnmountAll()

	fps := &fpsOverlay{stage: stage}
	if w.ShowFPS {
		fps.show()
	}

	var reloads <-chan *portfolio.Content
	if a.cfg.Content.Watch {
		if a.cfg.Content.File == "" {
			a.log.Warn("--watch needs a content file, watching disabled")
		} else {
			cw, werr := watchContent(a.cfg.Content.File, a.log)
			if werr != nil {
				return werr
			}
			defer func() { err = multierr.Append(err, cw.Close()) }()
			reloads = cw.Reloads()
		}
	}

	a.log.Info("opening window", zap.String("title", w.Title), zap.Int("width", w.Width), zap.Int("height", w.Height))
	return folio.Run(stage, folio.RunConfig{
		Title:     w.Title,
		Width:     w.Width,
		Height:    w.Height,
		Resizable: true,
		Update: func() error {
			select {
			case next := <-reloads:
				if err := site.Reload(next); err != nil {
					a.log.Error("reload failed", zap.Error(err))
				}
				if w.ShowFPS {
					fps.show()
				}
			default:
			}
			return nil
		},
	})
}

// fpsOverlay keeps a single FPS widget on the stage across reloads.
type fpsOverlay struct {
	stage *folio.Stage
	node  *folio.Node
	tick  folio.CallbackHandle
}

func (f *fpsOverlay) show() {
	f.tick.Remove()
	if f.node != nil {
		f.node.Dispose()
	}
	f.node, f.tick = folio.NewFPSWidget(f.stage)
}
