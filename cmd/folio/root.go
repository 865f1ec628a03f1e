package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/folio/internal/config"
	"github.com/phanxgames/folio/portfolio"
)

// app carries the state shared by every subcommand once the root
// command has loaded the configuration.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Animated single page portfolio",
		Long: `folio renders a scroll driven portfolio page in a window. Sections
animate in as they scroll into view and react to the pointer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./folio.yaml)")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSizeCheckCmd(a))
	root.AddCommand(newProjectsCmd(a))
	return root
}

func (a *app) initialize() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	log, err := cfg.Logging.Prepare()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.Named("folio")
	if cfg.File != "" {
		a.log.Debug("using config file", zap.String("file", cfg.File))
	}
	return nil
}

// loadContent returns the configured content file, or the embedded
// default content when none is set.
func (a *app) loadContent() (*portfolio.Content, error) {
	if a.cfg.Content.File == "" {
		return portfolio.DefaultContent()
	}
	return portfolio.LoadFile(a.cfg.Content.File)
}
