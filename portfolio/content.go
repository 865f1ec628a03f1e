// Package portfolio is the single-page portfolio site built on folio: its
// content model, the page layout and one folio.Section per visual region.
package portfolio

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Stat is a highlighted number on the about card.
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Profile describes the site owner.
type Profile struct {
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Headline  string   `yaml:"headline"`
	Role      string   `yaml:"role"`
	Location  string   `yaml:"location"`
	Bio       []string `yaml:"bio"`
	Stats     []Stat   `yaml:"stats"`
}

// Experience is one position in the work history.
type Experience struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

// Education is one degree or school.
type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Period      string `yaml:"period"`
	Grade       string `yaml:"grade,omitempty"`
}

// Project is one showcased project.
type Project struct {
	Title        string   `yaml:"title"`
	Year         string   `yaml:"year"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Status       string   `yaml:"status"`
	Publication  string   `yaml:"publication,omitempty"`
}

// Published reports whether the project has a publication venue.
func (p Project) Published() bool {
	return p.Publication != ""
}

// SkillGroup is a named list of skills.
type SkillGroup struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Content is everything the site displays. It is not modified after loading.
type Content struct {
	Profile    Profile      `yaml:"profile"`
	Experience []Experience `yaml:"experience"`
	Education  []Education  `yaml:"education"`
	Projects   []Project    `yaml:"projects"`
	Skills     []SkillGroup `yaml:"skills"`
}

// DefaultContent returns the embedded content.
func DefaultContent() (*Content, error) {
	return Parse(bytes.NewReader(defaultContent))
}

// LoadFile reads content from a YAML file.
func LoadFile(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open content: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML content. Unknown keys are rejected.
func Parse(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content is empty")
		}
		return nil, fmt.Errorf("unable to decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every missing required field at once.
func (c *Content) Validate() error {
	var err error
	if c.Profile.FirstName == "" {
		err = multierr.Append(err, errors.New("profile: first_name is required"))
	}
	if c.Profile.Headline == "" {
		err = multierr.Append(err, errors.New("profile: headline is required"))
	}
	for i, e := range c.Experience {
		if e.Title == "" || e.Company == "" {
			err = multierr.Append(err, fmt.Errorf("experience[%d]: title and company are required", i))
		}
	}
	for i, e := range c.Education {
		if e.Degree == "" || e.Institution == "" {
			err = multierr.Append(err, fmt.Errorf("education[%d]: degree and institution are required", i))
		}
	}
	for i, p := range c.Projects {
		if p.Title == "" {
			err = multierr.Append(err, fmt.Errorf("projects[%d]: title is required", i))
		}
		if p.Category == "" {
			err = multierr.Append(err, fmt.Errorf("projects[%d] %q: category is required", i, p.Title))
		} else if p.Category == CategoryAll {
			err = multierr.Append(err, fmt.Errorf("projects[%d] %q: category %q is reserved", i, p.Title, CategoryAll))
		}
	}
	for i, g := range c.Skills {
		if g.Name == "" {
			err = multierr.Append(err, fmt.Errorf("skills[%d]: name is required", i))
		}
	}
	return err
}
