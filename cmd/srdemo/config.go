package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/softrender"
)

// Config describes one demo run. Every field can be set from a YAML scene
// file; command-line flags override the file.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Scale enlarges the written image with nearest-neighbour sampling.
	Scale int `yaml:"scale"`

	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
	Workers    int `yaml:"workers"`

	Cull        string `yaml:"cull"` // none, back or front
	Antialias   bool   `yaml:"antialias"`
	Wireframe   bool   `yaml:"wireframe"`
	Perspective bool   `yaml:"perspective"`
	Grid        bool   `yaml:"grid"`

	// Texture modulates the cube faces with a checker pattern read through
	// the named filter.
	Texture bool   `yaml:"texture"`
	Filter  string `yaml:"filter"` // nearest or bilinear

	Frames int    `yaml:"frames"`
	Output string `yaml:"output"`
	Clear  string `yaml:"clear"`
}

// DefaultConfig returns the settings used without a scene file.
func DefaultConfig() Config {
	return Config{
		Width:       320,
		Height:      240,
		Scale:       1,
		Cull:        "back",
		Antialias:   true,
		Perspective: true,
		Grid:        true,
		Texture:     true,
		Filter:      "bilinear",
		Frames:      1,
		Output:      "cube.png",
		Clear:       "midnightblue",
	}
}

// LoadConfig reads a YAML scene file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scene file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing scene file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings and returns the first problem found.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("invalid scale %d", c.Scale)
	case c.Frames <= 0:
		return fmt.Errorf("invalid frame count %d", c.Frames)
	case c.Output == "":
		return errors.New("no output path")
	}
	if _, err := c.CullWinding(); err != nil {
		return err
	}
	if _, err := c.ClearColor(); err != nil {
		return err
	}
	if _, err := c.TextureFilter(); err != nil {
		return err
	}
	return nil
}

// CullWinding maps the cull setting to the screen winding of the faces to
// remove. The cube's faces are counter-clockwise seen from outside, so on
// screen the faces turned away from the camera are the clockwise ones.
func (c *Config) CullWinding() (softrender.FaceWinding, error) {
	switch strings.ToLower(c.Cull) {
	case "", "none":
		return softrender.CullNone, nil
	case "back":
		return softrender.Clockwise, nil
	case "front":
		return softrender.CounterClockwise, nil
	}
	return softrender.CullNone, fmt.Errorf("invalid cull mode %q (want none, back or front)", c.Cull)
}

// TextureFilter maps the filter setting to a texture filter.
func (c *Config) TextureFilter() (softrender.Filter, error) {
	switch strings.ToLower(c.Filter) {
	case "", "nearest":
		return softrender.FilterNearest, nil
	case "bilinear":
		return softrender.FilterBilinear, nil
	}
	return softrender.FilterNearest, fmt.Errorf("invalid texture filter %q (want nearest or bilinear)", c.Filter)
}

// ClearColor parses the background color.
func (c *Config) ClearColor() (softrender.RGBA8, error) {
	return softrender.ParseColor(c.Clear)
}

// FramePath returns the output file of frame i. Multi-frame runs number
// their files before the extension.
func (c *Config) FramePath(i int) string {
	if c.Frames == 1 {
		return c.Output
	}
	ext := ""
	if dot := strings.LastIndexByte(c.Output, '.'); dot > strings.LastIndexByte(c.Output, '/') {
		ext = c.Output[dot:]
	}
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(c.Output, ext), i, ext)
}
