package portfolio

import (
	"github.com/phanxgames/folio"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// section is a folio.Section that also lays out its own nodes.
type section interface {
	folio.Section
	build(l *layout)
}

// Site builds the portfolio page on a stage and mounts one section
// controller per visual region.
type Site struct {
	stage    *folio.Stage
	content  *Content
	theme    Theme
	log      *zap.Logger
	sections []section
}

// New returns a site that will render c on stage with the default theme.
func New(stage *folio.Stage, c *Content) *Site {
	return &Site{
		stage:   stage,
		content: c,
		theme:   DefaultTheme(),
		log:     stage.Logger().Named("portfolio"),
	}
}

// SetTheme replaces the theme used by the next Mount or Reload.
func (s *Site) SetTheme(t Theme) { s.theme = t }

// Content returns the content currently displayed.
func (s *Site) Content() *Content { return s.content }

// Section returns the mounted section called name, or nil.
func (s *Site) Section(name string) folio.Section {
	for _, sec := range s.sections {
		if sec.Name() == name {
			return sec
		}
	}
	return nil
}

func (s *Site) newSections() []section {
	c, t := s.content, s.theme
	return []section{
		&backdropSection{theme: t},
		&shapesSection{theme: t},
		&heroSection{profile: c.Profile, theme: t},
		&aboutSection{content: c, theme: t},
		&experienceSection{content: c, theme: t},
		&projectsSection{content: c, theme: t},
		&contactSection{profile: c.Profile, theme: t},
		&navSection{theme: t},
		&cursorSection{theme: t},
	}
}

// Mount lays out the page and mounts every section. A section that fails
// to mount does not stop the others; all failures are returned together.
func (s *Site) Mount() error {
	l := newLayout(s.stage, s.theme)
	s.stage.ClearColor = s.theme.Background
	s.sections = s.newSections()
	for _, sec := range s.sections {
		sec.build(l)
	}
	s.stage.Document().SetSize(l.width, l.y)
	s.stage.Viewport().ContentHeight = l.y
	s.stage.Document().UpdateTransforms()
	s.stage.Overlay().UpdateTransforms()

	var err error
	for _, sec := range s.sections {
		if _, e := s.stage.Mount(sec); e != nil {
			err = multierr.Append(err, e)
		}
	}
	s.log.Info("site mounted",
		zap.Int("sections", len(s.sections)),
		zap.Float64("height", l.y),
		zap.Int("projects", len(s.content.Projects)),
	)
	return err
}

// Reload swaps in new content: every section is unmounted, the page is
// rebuilt and mounted again. The scroll offset is kept where possible.
func (s *Site) Reload(c *Content) error {
	if c == nil {
		return nil
	}
	scroll := s.stage.Viewport().ScrollY
	s.stage.Clear()
	s.content = c
	err := s.Mount()
	s.stage.Viewport().SetScroll(scroll)
	s.log.Debug("site reloaded", zap.Float64("scroll", s.stage.Viewport().ScrollY))
	return err
}
