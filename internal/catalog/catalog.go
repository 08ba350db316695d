// Package catalog holds the static portfolio content: contact details,
// experience, projects and skills.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Contact lists the owner's contact points.
type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Location string `yaml:"location"`
}

// Education describes the current degree.
type Education struct {
	School     string `yaml:"school"`
	Degree     string `yaml:"degree"`
	Location   string `yaml:"location"`
	Period     string `yaml:"period"`
	Coursework string `yaml:"coursework"`
}

// Experience is one job on the timeline.
type Experience struct {
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Location    string   `yaml:"location"`
	Period      string   `yaml:"period"`
	Description []string `yaml:"description"`
	Link        string   `yaml:"link,omitempty"`
}

// Project is one entry of the project gallery.
type Project struct {
	Name        string   `yaml:"name"`
	Tech        string   `yaml:"tech"`
	Date        string   `yaml:"date"`
	Description []string `yaml:"description"`
	Video       string   `yaml:"video,omitempty"`
}

// SkillCategory groups related skills.
type SkillCategory struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// Portfolio is the full content catalog.
type Portfolio struct {
	Name       string          `yaml:"name"`
	Headline   string          `yaml:"headline"`
	Tagline    string          `yaml:"tagline"`
	About      string          `yaml:"about"`
	Contact    Contact         `yaml:"contact"`
	Education  Education       `yaml:"education"`
	Experience []Experience    `yaml:"experience"`
	Projects   []Project       `yaml:"projects"`
	Skills     []SkillCategory `yaml:"skills"`
}

// Load reads a YAML content file. Fields the file leaves out keep their
// built-in values. An empty path returns the built-in content.
func Load(path string) (*Portfolio, error) {
	p := Default()
	if strings.TrimSpace(path) == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the fields the site cannot render without.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	for i, e := range p.Experience {
		if strings.TrimSpace(e.Company) == "" {
			return fmt.Errorf("experience[%d]: company is required", i)
		}
	}
	return nil
}

// FindExperience returns the first entry whose company contains substr,
// ignoring case.
func (p *Portfolio) FindExperience(substr string) (Experience, bool) {
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return Experience{}, false
	}
	for _, e := range p.Experience {
		if strings.Contains(strings.ToLower(e.Company), needle) {
			return e, true
		}
	}
	return Experience{}, false
}

// Companies lists employers in timeline order.
func (p *Portfolio) Companies() []string {
	out := make([]string, 0, len(p.Experience))
	for _, e := range p.Experience {
		out = append(out, e.Company)
	}
	return out
}
