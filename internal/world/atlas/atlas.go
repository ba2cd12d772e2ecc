// Package atlas loads horizontal sprite strips described by JSON configs.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
)

// SequenceDefinition names a run of equally sized frames within a strip
type SequenceDefinition struct {
	Name       string                 `json:"name"`        // Semantic name (e.g., "taxi", "explosion")
	Offset     int                    `json:"offset"`      // X offset of the first frame in pixels
	FrameWidth int                    `json:"frame_width"` // Width of one frame in pixels (0 = strip default)
	Frames     int                    `json:"frames"`      // Number of frames
	Properties map[string]interface{} `json:"properties"`  // Custom properties (mask mode, downsample, ...)
}

// AtlasConfig defines the JSON configuration for a sprite strip
type AtlasConfig struct {
	Name        string               `json:"name"`         // Atlas name
	ImagePath   string               `json:"image_path"`   // Path of the strip image, relative to the config
	FrameWidth  int                  `json:"frame_width"`  // Default frame width in pixels
	FrameHeight int                  `json:"frame_height"` // Height of every frame in pixels
	Sequences   []SequenceDefinition `json:"sequences"`    // Named frame runs
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Atlas represents a loaded sprite strip
type Atlas struct {
	Config          *AtlasConfig
	Image           image.Image
	SequencesByName map[string]*SequenceDefinition
}

// ParseConfig decodes and validates an atlas config
func ParseConfig(data []byte) (*AtlasConfig, error) {
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}

	if config.FrameHeight <= 0 {
		return nil, fmt.Errorf("invalid frame height: %d", config.FrameHeight)
	}
	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}
	for i := range config.Sequences {
		seq := &config.Sequences[i]
		if seq.FrameWidth == 0 {
			seq.FrameWidth = config.FrameWidth
		}
		if seq.FrameWidth <= 0 || seq.Frames <= 0 {
			return nil, fmt.Errorf("sequence %q: invalid frames %dx%d", seq.Name, seq.Frames, seq.FrameWidth)
		}
	}
	return &config, nil
}

// LoadAtlas loads a sprite strip from a JSON configuration file in fsys
func LoadAtlas(fsys fs.FS, configPath string) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	imagePath := path.Join(path.Dir(configPath), config.ImagePath)
	f, err := fsys.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas image %s: %w", imagePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas image %s: %w", imagePath, err)
	}

	return New(config, img)
}

// New builds an atlas from an already decoded strip image
func New(config *AtlasConfig, img image.Image) (*Atlas, error) {
	if _, ok := img.(subImager); !ok {
		return nil, fmt.Errorf("atlas image %T does not support sub-images", img)
	}

	b := img.Bounds()
	byName := make(map[string]*SequenceDefinition)
	for i := range config.Sequences {
		seq := &config.Sequences[i]
		end := seq.Offset + seq.Frames*seq.FrameWidth
		if seq.Offset < 0 || end > b.Dx() || config.FrameHeight > b.Dy() {
			return nil, fmt.Errorf("sequence %q exceeds atlas image %dx%d", seq.Name, b.Dx(), b.Dy())
		}
		if seq.Name != "" {
			byName[seq.Name] = seq
		}
	}

	return &Atlas{
		Config:          config,
		Image:           img,
		SequencesByName: byName,
	}, nil
}

// GetSequence returns a sequence definition by name
func (a *Atlas) GetSequence(name string) (*SequenceDefinition, bool) {
	seq, ok := a.SequencesByName[name]
	return seq, ok
}

// Frames returns the sub-images of a sequence, left to right
func (a *Atlas) Frames(seq *SequenceDefinition) []image.Image {
	b := a.Image.Bounds()
	frames := make([]image.Image, seq.Frames)
	for i := range frames {
		x := b.Min.X + seq.Offset + i*seq.FrameWidth
		rect := image.Rect(x, b.Min.Y, x+seq.FrameWidth, b.Min.Y+a.Config.FrameHeight)
		frames[i] = a.Image.(subImager).SubImage(rect)
	}
	return frames
}

// FramesByName returns the sub-images of a named sequence
func (a *Atlas) FramesByName(name string) ([]image.Image, error) {
	seq, ok := a.GetSequence(name)
	if !ok {
		return nil, fmt.Errorf("sequence not found: %s", name)
	}
	return a.Frames(seq), nil
}

// GetProperty retrieves a property from a sequence definition
func (sd *SequenceDefinition) GetProperty(key string) (interface{}, bool) {
	if sd.Properties == nil {
		return nil, false
	}
	val, ok := sd.Properties[key]
	return val, ok
}

// GetPropertyString retrieves a string property
func (sd *SequenceDefinition) GetPropertyString(key string, defaultVal string) string {
	val, ok := sd.GetProperty(key)
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}

// GetPropertyInt retrieves an integer property
func (sd *SequenceDefinition) GetPropertyInt(key string, defaultVal int) int {
	val, ok := sd.GetProperty(key)
	if !ok {
		return defaultVal
	}
	// JSON numbers are float64
	if floatVal, ok := val.(float64); ok {
		return int(floatVal)
	}
	return defaultVal
}
