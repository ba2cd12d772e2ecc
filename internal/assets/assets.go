// Package assets decodes the embedded sprite strips, tile set and levels.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"

	"chosenoffset.com/ballistic/internal/core/mask"
	"chosenoffset.com/ballistic/internal/core/sprite"
	"chosenoffset.com/ballistic/internal/world/atlas"
	"chosenoffset.com/ballistic/internal/world/level"
	"chosenoffset.com/ballistic/internal/world/tiles"
)

// ErrMissingAsset is returned when a required atlas, sequence or level is absent.
var ErrMissingAsset = errors.New("missing asset")

const (
	atlasDir  = "atlases"
	levelGlob = "levels/*.png"

	tilesAtlas     = "tiles"
	rawTiles       = "raw"
	explosionName  = "explosion"
	maskProperty   = "mask"
	sampleProperty = "downsample"
)

//go:embed data
var embedded embed.FS

// Embedded returns the assets compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Pack holds every decoded asset.
type Pack struct {
	Atlases    *atlas.Manager
	Tiles      *tiles.Catalog
	Animations map[string]*sprite.Animation
	Levels     []*level.Level
}

// Load decodes all atlases, assembles the tile set and reads the levels from fsys.
func Load(fsys fs.FS) (*Pack, error) {
	manager := atlas.NewManager()
	configs, err := fs.Glob(fsys, path.Join(atlasDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list atlases: %w", err)
	}
	for _, c := range configs {
		if err := manager.LoadAtlasConfig(fsys, c); err != nil {
			return nil, err
		}
	}

	p := &Pack{
		Atlases:    manager,
		Animations: make(map[string]*sprite.Animation),
	}

	_, raw, err := manager.Sequence(tilesAtlas, rawTiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingAsset, err)
	}
	p.Tiles, err = tiles.Assemble(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble tiles: %w", err)
	}

	for _, name := range manager.GetNames() {
		if name == tilesAtlas {
			continue
		}
		a, _ := manager.GetAtlasByName(name)
		for i := range a.Config.Sequences {
			seq := &a.Config.Sequences[i]
			anim, err := animation(a, seq)
			if err != nil {
				return nil, fmt.Errorf("failed to build animation %s: %w", seq.Name, err)
			}
			p.Animations[seq.Name] = anim
		}
	}
	if _, ok := p.Animations[explosionName]; !ok {
		return nil, fmt.Errorf("%w: %s animation", ErrMissingAsset, explosionName)
	}

	p.Levels, err = loadLevels(fsys, p.Tiles)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func animation(a *atlas.Atlas, seq *atlas.SequenceDefinition) (*sprite.Animation, error) {
	frames := a.Frames(seq)
	masks := make([]mask.Mask, len(frames))
	step := seq.GetPropertyInt(sampleProperty, 1)
	for i, f := range frames {
		switch mode := seq.GetPropertyString(maskProperty, "alpha"); mode {
		case "alpha":
			masks[i] = mask.FromAlpha(f, f.Bounds()).Downsample(step)
		case "mismatch":
			masks[i] = mask.FromMismatch(f, f.Bounds(), tiles.Road)
		case "none":
		default:
			return nil, fmt.Errorf("unknown mask mode %q", mode)
		}
	}
	return sprite.NewAnimation(frames, masks)
}

func loadLevels(fsys fs.FS, catalog *tiles.Catalog) ([]*level.Level, error) {
	names, err := fs.Glob(fsys, levelGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no levels match %s", ErrMissingAsset, levelGlob)
	}
	sort.Strings(names)

	levels := make([]*level.Level, 0, len(names))
	for _, name := range names {
		l, err := loadLevel(fsys, name, catalog)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

func loadLevel(fsys fs.FS, name string, catalog *tiles.Catalog) (*level.Level, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", name, err)
	}
	defer f.Close()

	l, err := level.DecodePNG(catalog, f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return l, nil
}

// Animation returns a named animation.
func (p *Pack) Animation(name string) (*sprite.Animation, error) {
	anim, ok := p.Animations[name]
	if !ok {
		return nil, fmt.Errorf("%w: animation %s", ErrMissingAsset, name)
	}
	return anim, nil
}

// Explosion returns the shared explosion animation.
func (p *Pack) Explosion() *sprite.Animation {
	return p.Animations[explosionName]
}

// VehicleAnimations resolves the animation of each vehicle type. sprites maps a
// vehicle type to its sequence name.
func (p *Pack) VehicleAnimations(sprites map[string]string) (map[string]*sprite.Animation, error) {
	out := make(map[string]*sprite.Animation, len(sprites))
	for name, seq := range sprites {
		anim, err := p.Animation(seq)
		if err != nil {
			return nil, fmt.Errorf("vehicle %s: %w", name, err)
		}
		out[name] = anim
	}
	return out, nil
}

// TileImage returns the raster of a tile type.
func (p *Pack) TileImage(tile int) image.Image {
	return p.Tiles.Image(tile)
}
