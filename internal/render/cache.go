package render

import "image"

// ImageCache uploads decoded images once and hands out the backend copy afterwards.
// Sprite frames and tiles are shared, so the key is the source image itself.
type ImageCache struct {
	renderer Renderer
	images   map[image.Image]Image
}

// NewImageCache creates an empty cache uploading through r.
func NewImageCache(r Renderer) *ImageCache {
	return &ImageCache{renderer: r, images: make(map[image.Image]Image)}
}

// Get returns the backend image for src, uploading it on first use.
func (c *ImageCache) Get(src image.Image) Image {
	if src == nil {
		return nil
	}
	if img, ok := c.images[src]; ok {
		return img
	}
	img := c.renderer.NewImageFromImage(src)
	c.images[src] = img
	return img
}

// Forget drops src, disposing its backend copy. Edited images must be forgotten
// before they are drawn again.
func (c *ImageCache) Forget(src image.Image) {
	if img, ok := c.images[src]; ok {
		img.Dispose()
		delete(c.images, src)
	}
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	return len(c.images)
}
