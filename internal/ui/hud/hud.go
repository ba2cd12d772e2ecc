// Package hud draws the heads-up display over the road: health pips, the jump
// energy bar, the score and the full-screen banners.
package hud

import (
	"image/color"
	"strconv"

	"chosenoffset.com/ballistic/internal/render"
)

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowHealth bool `json:"show_health"`
	ShowEnergy bool `json:"show_energy"`
	ShowScore  bool `json:"show_score"`
	Margin     int  `json:"margin"` // Distance from the screen edges
}

// DefaultConfig returns the arcade layout
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowHealth: true,
		ShowEnergy: true,
		ShowScore:  true,
		Margin:     8,
	}
}

// Status is what the HUD reads from the player
type Status interface {
	Health() int
	Energy() int
	Score() int
}

const (
	pipWidth   = 9
	pipHeight  = 4
	pipSpacing = 12

	// gradients run over 192 pixels, twice the full jump energy
	gradientWidth = 192

	scoreScale  = 2
	bannerScale = 4
)

var (
	red       = color.RGBA{255, 0, 0, 255}
	yellow    = color.RGBA{255, 255, 0, 255}
	green     = color.RGBA{0, 155, 26, 255}
	outline   = color.RGBA{51, 51, 51, 255}
	black     = color.RGBA{0, 0, 0, 255}
	white     = color.RGBA{255, 255, 255, 255}
	blue      = color.RGBA{0, 0, 255, 255}
	shadowCol = color.RGBA{0, 0, 0, 160}
)

// Banner is a large centered message.
type Banner struct {
	Text    string
	Fill    color.Color
	Outline color.Color
}

var (
	GameOver  = Banner{Text: "GAME OVER", Fill: red, Outline: black}
	NextLevel = Banner{Text: "NEXT LEVEL", Fill: blue, Outline: white}
)

// HUD manages the heads-up display
type HUD struct {
	config       *HUDConfig
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image, s Status) {
	if s == nil {
		return
	}
	if h.config.ShowHealth {
		h.drawHealth(screen, s.Health())
	}
	if h.config.ShowEnergy {
		h.drawEnergy(screen, s.Energy())
	}
	if h.config.ShowScore {
		h.drawScore(screen, s.Score())
	}
}

// drawHealth draws one pip per health point, colored from red to green
func (h *HUD) drawHealth(screen render.Image, health int) {
	m := h.config.Margin
	for i := 0; i < health; i++ {
		x := m + i*pipSpacing
		clr := Gradient(float64(x)/gradientWidth, red, yellow, green)
		h.renderer.FillRect(screen, float32(x), float32(m), pipWidth, pipHeight, clr)
		h.renderer.StrokeRect(screen, float32(x), float32(m), pipWidth, pipHeight, 1, outline)
	}
}

// drawEnergy draws the jump charge as a bar two pixels per energy point
func (h *HUD) drawEnergy(screen render.Image, energy int) {
	m := h.config.Margin
	y := float32(m + pipHeight + 2)
	for i := 0; i < energy; i++ {
		x := m + i*2
		clr := Gradient(float64(x)/gradientWidth, green, yellow, red)
		h.renderer.FillRect(screen, float32(x), y, 2, pipHeight, clr)
	}
}

// drawScore right-aligns the score in the top corner
func (h *HUD) drawScore(screen render.Image, score int) {
	text := strconv.Itoa(score)
	w, _ := h.renderer.MeasureText(text, scoreScale)
	x := h.screenWidth - h.config.Margin - w
	h.DrawText(screen, text, x, h.config.Margin, white, scoreScale)
}

// DrawBanner centers a large message on the screen
func (h *HUD) DrawBanner(screen render.Image, b Banner) {
	_, th := h.renderer.MeasureText(b.Text, bannerScale)
	h.DrawOutlined(screen, b.Text, (h.screenHeight-th)/2, b.Fill, b.Outline, bannerScale)
}

// DrawOutlined writes text centered horizontally at y with a two pixel outline
func (h *HUD) DrawOutlined(screen render.Image, text string, y int, fill, edge color.Color, scale float64) {
	w, _ := h.renderer.MeasureText(text, scale)
	x := (h.screenWidth - w) / 2
	for _, d := range [][2]int{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		h.renderer.DrawText(screen, text, x+d[0], y+d[1], edge, scale)
	}
	h.renderer.DrawText(screen, text, x, y, fill, scale)
}

// DrawCountdown draws the seconds left before the next screen. The digits step
// from right to left as they count down.
func (h *HUD) DrawCountdown(screen render.Image, n int) {
	text := strconv.Itoa(n)
	w, th := h.renderer.MeasureText(text, bannerScale)
	x := h.screenWidth*3/4 - 64*n - w/2
	y := h.screenHeight/2 + 96 - th
	h.DrawText(screen, text, x, y, yellow, bannerScale)
}

// DrawCentered writes text centered horizontally at y
func (h *HUD) DrawCentered(screen render.Image, text string, y int, clr color.Color, scale float64) {
	w, _ := h.renderer.MeasureText(text, scale)
	h.DrawText(screen, text, (h.screenWidth-w)/2, y, clr, scale)
}

// DrawText draws text with a shadow for readability
func (h *HUD) DrawText(screen render.Image, text string, x, y int, clr color.Color, scale float64) {
	h.renderer.DrawText(screen, text, x+1, y+1, shadowCol, scale)
	h.renderer.DrawText(screen, text, x, y, clr, scale)
}

// Gradient interpolates linearly through stops at t in [0,1]. Values outside are clamped.
func Gradient(t float64, stops ...color.RGBA) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{}
	}
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}
