// Package scene reads declarative container trees from YAML or TOML and
// builds them on a ui.Surface.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/OpticalFlyer/canvasui/ui"
)

//go:embed demo.yaml
var demoScene []byte

// Format is a scene file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// Scene is the root of a scene file.
type Scene struct {
	Viewbox   *Viewbox        `yaml:"viewbox,omitempty" toml:"viewbox,omitempty"`
	Templates map[string]Node `yaml:"templates,omitempty" toml:"templates,omitempty"`
	Roots     []Node          `yaml:"roots" toml:"roots"`
	Spawn     *Spawn          `yaml:"spawn,omitempty" toml:"spawn,omitempty"`
}

type Viewbox struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Node describes one container and its children. A node naming a template
// starts from a copy of it; its own fields then override.
type Node struct {
	Name     string `yaml:"name,omitempty" toml:"name,omitempty"`
	Template string `yaml:"template,omitempty" toml:"template,omitempty"`
	// Repeat builds the node this many times in place, 0 means once.
	Repeat int `yaml:"repeat,omitempty" toml:"repeat,omitempty"`

	X1      float64 `yaml:"x1,omitempty" toml:"x1,omitempty"`
	Y1      float64 `yaml:"y1,omitempty" toml:"y1,omitempty"`
	OffsetX float64 `yaml:"offsetX,omitempty" toml:"offsetX,omitempty"`
	OffsetY float64 `yaml:"offsetY,omitempty" toml:"offsetY,omitempty"`
	Width   float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty" toml:"height,omitempty"`

	Style *ui.Style `yaml:"style,omitempty" toml:"style,omitempty"`
	Hover *Event    `yaml:"hover,omitempty" toml:"hover,omitempty"`
	Press *Event    `yaml:"press,omitempty" toml:"press,omitempty"`
	Click *Event    `yaml:"click,omitempty" toml:"click,omitempty"`

	Children []Node `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Event is an interaction overlay. Action names a callback registered with
// Build.
type Event struct {
	Style  *ui.Style `yaml:"style,omitempty" toml:"style,omitempty"`
	Remove bool      `yaml:"remove,omitempty" toml:"remove,omitempty"`
	Action string    `yaml:"action,omitempty" toml:"action,omitempty"`
}

// Spawn describes what a secondary click adds to the scene.
type Spawn struct {
	Target   string `yaml:"target" toml:"target"`
	Template string `yaml:"template" toml:"template"`
}

// Demo returns the built-in scene.
func Demo() (*Scene, error) {
	sc, err := Parse(demoScene, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in scene: %w", err)
	}
	return sc, nil
}

// Load reads a scene file, choosing the decoder by extension.
func Load(path string) (*Scene, error) {
	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, fmt.Errorf("unsupported scene file extension %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scene. Unknown fields are errors in both formats.
func Parse(data []byte, format Format) (*Scene, error) {
	sc := &Scene{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(sc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("scene is empty")
			}
			return nil, fmt.Errorf("failed to decode scene: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(sc); err != nil {
			return nil, fmt.Errorf("failed to decode scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scene format %d", format)
	}
	return sc, nil
}
