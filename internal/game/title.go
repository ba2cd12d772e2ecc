package game

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/sim"
	"chosenoffset.com/ballistic/internal/sim/vehicle"
	"chosenoffset.com/ballistic/internal/ui/hud"
	"chosenoffset.com/ballistic/internal/world/level"
)

const (
	paradeX       = 128
	paradeY       = 224
	paradeColumn  = 176
	paradeRow     = 48
	paradeEvery   = 7
	blinkPeriod   = 64
	titleScale    = 5
	subtitleScale = 1.5
)

var (
	titleFill    = color.RGBA{255, 255, 255, 255}
	titleOutline = color.RGBA{255, 96, 0, 255}
	titleDim     = color.RGBA{0, 0, 0, 255}
)

// Title is the intro screen: a level scrolling by in the background and every
// vehicle type with its score value.
type Title struct {
	InputMgr render.InputManager
	Scene    *Scene
	HUD      *hud.HUD
	Clock    *sim.Clock

	level     *level.Level
	camera    geom.Vec
	parade    []*vehicle.Vehicle
	frame     int
	highscore int
	viewW     int
	viewH     int

	// a key must be let go before one can start the game
	armed bool
}

// NewTitle builds the parade from factory and scrolls over l.
func NewTitle(input render.InputManager, scene *Scene, h *hud.HUD, clock *sim.Clock,
	factory *vehicle.Factory, l *level.Level, highscore, viewW, viewH int) *Title {
	t := &Title{
		InputMgr:  input,
		Scene:     scene,
		HUD:       h,
		Clock:     clock,
		level:     l,
		highscore: highscore,
		viewW:     viewW,
		viewH:     viewH,
	}
	for i, name := range factory.Names() {
		pos := geom.Vec{X: float64(paradeColumn * (i % 2)), Y: float64(paradeRow * (i / 2))}
		car, err := factory.Car(pos, name)
		if err != nil {
			continue
		}
		car.Stop()
		if name == vehicle.PlayerName {
			car.Normalize()
		}
		t.parade = append(t.parade, car)
	}
	return t
}

// Parade returns the vehicles shown, lightest first.
func (t *Title) Parade() []*vehicle.Vehicle {
	return t.parade
}

// Camera returns the background scroll position.
func (t *Title) Camera() geom.Vec {
	return t.camera
}

// Update scrolls the background and reports whether a key was pressed to start.
func (t *Title) Update(now time.Time) bool {
	pressed := t.InputMgr.AnyKeyPressed()
	if !pressed {
		t.armed = true
	} else if t.armed {
		return true
	}
	if !t.Clock.Ready(now) {
		return false
	}

	t.frame++
	levelW := float64(t.level.Width() * level.TileSize)
	levelH := float64(t.level.Height() * level.TileSize)
	amplitude := math.Max(0, (levelW-float64(t.viewW))/2)
	speed := math.Max(math.Pi/(2*180), math.Pi/(float64(t.level.Height())*2))
	t.camera.X = amplitude + amplitude*math.Cos(float64(t.frame)*speed)
	t.camera.Y--
	if t.camera.Y < 0 {
		t.camera.Y = math.Max(0, levelH-float64(t.viewH))
	}

	if t.frame%paradeEvery == 0 {
		for _, car := range t.parade {
			car.Step()
		}
	}
	return false
}

// Draw renders the scrolling level, the title and the parade.
func (t *Title) Draw(screen render.Image) {
	t.Scene.DrawLevel(screen, t.level, t.camera)

	t.drawTitle(screen, "GOING", 80)
	t.drawTitle(screen, "BALLISTIC", 144)

	origin := geom.Vec{X: -paradeX, Y: -paradeY}
	for _, car := range t.parade {
		t.Scene.DrawVehicle(screen, car, origin)
		pos := car.Position()
		t.HUD.DrawText(screen, strconv.Itoa(car.Value()), int(pos.X)+paradeX+32, int(pos.Y)+paradeY+2, titleFill, subtitleScale)
	}

	prompt := titleFill
	if t.frame%blinkPeriod < blinkPeriod/2 {
		prompt = titleDim
	}
	t.HUD.DrawCentered(screen, "press any key to start", paradeY+208, prompt, subtitleScale)
	t.HUD.DrawCentered(screen, "highscore "+strconv.Itoa(t.highscore), paradeY+240, titleFill, subtitleScale)
}

func (t *Title) drawTitle(screen render.Image, text string, y int) {
	t.HUD.DrawOutlined(screen, text, y, titleFill, titleOutline, titleScale)
}
