package atlas

import (
	"fmt"
	"image"
	"io/fs"
	"sort"
)

// Manager manages multiple sprite strips by name
type Manager struct {
	atlasesByName map[string]*Atlas
}

// NewManager creates a new atlas manager
func NewManager() *Manager {
	return &Manager{
		atlasesByName: make(map[string]*Atlas),
	}
}

// LoadAtlasConfig loads an atlas from a config file and registers it
func (m *Manager) LoadAtlasConfig(fsys fs.FS, configPath string) error {
	atlas, err := LoadAtlas(fsys, configPath)
	if err != nil {
		return err
	}

	return m.RegisterAtlas(atlas)
}

// RegisterAtlas registers a loaded atlas with the manager
func (m *Manager) RegisterAtlas(atlas *Atlas) error {
	if atlas.Config.Name == "" {
		return fmt.Errorf("atlas name cannot be empty")
	}

	if _, exists := m.atlasesByName[atlas.Config.Name]; exists {
		return fmt.Errorf("atlas %s is already registered", atlas.Config.Name)
	}

	m.atlasesByName[atlas.Config.Name] = atlas
	return nil
}

// GetAtlasByName returns an atlas by its name
func (m *Manager) GetAtlasByName(name string) (*Atlas, bool) {
	atlas, ok := m.atlasesByName[name]
	return atlas, ok
}

// Sequence retrieves a sequence definition and its frames from a named atlas
func (m *Manager) Sequence(atlasName, seqName string) (*SequenceDefinition, []image.Image, error) {
	atlas, ok := m.GetAtlasByName(atlasName)
	if !ok {
		return nil, nil, fmt.Errorf("no atlas found: %s", atlasName)
	}

	seq, ok := atlas.GetSequence(seqName)
	if !ok {
		return nil, nil, fmt.Errorf("sequence %s not found in atlas %s", seqName, atlasName)
	}

	return seq, atlas.Frames(seq), nil
}

// GetNames returns all registered atlas names in sorted order
func (m *Manager) GetNames() []string {
	names := make([]string, 0, len(m.atlasesByName))
	for name := range m.atlasesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
