// Package sprite holds animation sequences and per-entity playback cursors.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"chosenoffset.com/ballistic/internal/core/mask"
)

// ErrNoFrames is returned when an animation is built without frames.
var ErrNoFrames = errors.New("animation has no frames")

// Animation is an immutable sequence of raster frames with one obstacle mask per
// frame. Animations are shared between vehicles; playback state lives in Cursor.
type Animation struct {
	frames []image.Image
	masks  []mask.Mask
}

// NewAnimation creates an animation. frames and masks must have the same, non-zero length.
func NewAnimation(frames []image.Image, masks []mask.Mask) (*Animation, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if len(frames) != len(masks) {
		return nil, fmt.Errorf("animation has %d frames but %d masks", len(frames), len(masks))
	}
	return &Animation{frames: frames, masks: masks}, nil
}

// Len returns the number of frames.
func (a *Animation) Len() int {
	return len(a.frames)
}

// Width returns the pixel width of the first frame.
func (a *Animation) Width() int {
	return a.frames[0].Bounds().Dx()
}

// Frame returns frame i.
func (a *Animation) Frame(i int) image.Image {
	return a.frames[i]
}

// Mask returns the obstacle mask of frame i.
func (a *Animation) Mask(i int) mask.Mask {
	return a.masks[i]
}

// WithMasks returns a copy of the animation sharing frames but using masks.
func (a *Animation) WithMasks(masks []mask.Mask) (*Animation, error) {
	return NewAnimation(a.frames, masks)
}

// Sequence returns a new animation playing the given frame indices in order.
func (a *Animation) Sequence(indices ...int) (*Animation, error) {
	frames := make([]image.Image, 0, len(indices))
	masks := make([]mask.Mask, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(a.frames) {
			return nil, fmt.Errorf("sequence index %d out of range [0,%d)", i, len(a.frames))
		}
		frames = append(frames, a.frames[i])
		masks = append(masks, a.masks[i])
	}
	return NewAnimation(frames, masks)
}

// Cursor plays back an Animation for a single entity.
type Cursor struct {
	anim  *Animation
	frame int
}

// NewCursor starts playback at frame 0.
func NewCursor(anim *Animation) Cursor {
	return Cursor{anim: anim}
}

// Step advances one frame and reports whether playback wrapped to the first frame.
func (c *Cursor) Step() bool {
	c.frame = (c.frame + 1) % c.anim.Len()
	return c.frame == 0
}

// Complete returns the playback progress in [0,1].
func (c *Cursor) Complete() float64 {
	if c.anim.Len() > 1 {
		return float64(c.frame) / float64(c.anim.Len()-1)
	}
	return 1
}

// Index returns the current frame index.
func (c *Cursor) Index() int {
	return c.frame
}

// Image returns the current frame.
func (c *Cursor) Image() image.Image {
	return c.anim.Frame(c.frame)
}

// Mask returns the obstacle mask of the current frame.
func (c *Cursor) Mask() mask.Mask {
	return c.anim.Mask(c.frame)
}

// Animation returns the animation being played.
func (c *Cursor) Animation() *Animation {
	return c.anim
}
