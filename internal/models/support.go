package models

import (
	_ "embed"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"sync"
)

//go:embed catalog.yaml
var catalogYAML []byte

type SupportResource struct {
	Title string `json:"title" yaml:"title"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

type SupportBundle struct {
	Message     string            `json:"message" yaml:"message"`
	Suggestions []string          `json:"suggestions" yaml:"suggestions"`
	Resources   []SupportResource `json:"resources" yaml:"resources"`
}

func (b *SupportBundle) Clone() *SupportBundle {
	if b == nil {
		return nil
	}
	out := &SupportBundle{
		Message:     b.Message,
		Suggestions: make([]string, len(b.Suggestions)),
		Resources:   make([]SupportResource, len(b.Resources)),
	}
	copy(out.Suggestions, b.Suggestions)
	copy(out.Resources, b.Resources)
	return out
}

// SupportCatalog is the static content shown next to every support message.
type SupportCatalog struct {
	Version         int               `yaml:"version"`
	FallbackMessage string            `yaml:"fallbackMessage"`
	Suggestions     []string          `yaml:"suggestions"`
	Resources       []SupportResource `yaml:"resources"`
}

// Bundle merges message with the static suggestions and resources. The
// catalog itself is never handed out, callers always get copies.
func (c *SupportCatalog) Bundle(message string) *SupportBundle {
	if message == "" {
		message = c.FallbackMessage
	}
	return (&SupportBundle{
		Message:     message,
		Suggestions: c.Suggestions,
		Resources:   c.Resources,
	}).Clone()
}

func ParseSupportCatalog(data []byte) (*SupportCatalog, error) {
	var c SupportCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unable to parse support catalog: %w", err)
	}
	switch {
	case c.Version < 1:
		return nil, errors.New("support catalog: version is required")
	case c.FallbackMessage == "":
		return nil, errors.New("support catalog: fallbackMessage is required")
	case len(c.Suggestions) == 0:
		return nil, errors.New("support catalog: no suggestions")
	case len(c.Resources) == 0:
		return nil, errors.New("support catalog: no resources")
	}
	return &c, nil
}

var defaultCatalog = sync.OnceValues(func() (*SupportCatalog, error) {
	return ParseSupportCatalog(catalogYAML)
})

// DefaultSupportCatalog returns the embedded catalog.
func DefaultSupportCatalog() (*SupportCatalog, error) {
	return defaultCatalog()
}
