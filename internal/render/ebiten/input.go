package ebiten

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/ballistic/internal/render"
)

// Bindings maps each logical key to the physical keys that trigger it.
type Bindings map[render.Key][]ebiten.Key

// DefaultBindings drives with the arrows or WASD.
func DefaultBindings() Bindings {
	return Bindings{
		render.KeyUp:       {ebiten.KeyArrowUp, ebiten.KeyW},
		render.KeyDown:     {ebiten.KeyArrowDown},
		render.KeyLeft:     {ebiten.KeyArrowLeft, ebiten.KeyA},
		render.KeyRight:    {ebiten.KeyArrowRight, ebiten.KeyD},
		render.KeySpace:    {ebiten.KeySpace},
		render.KeyShift:    {ebiten.KeyShift},
		render.KeyControl:  {ebiten.KeyControl, ebiten.KeyMeta},
		render.KeyE:        {ebiten.KeyE},
		render.KeyO:        {ebiten.KeyO},
		render.KeyS:        {ebiten.KeyS},
		render.KeyZ:        {ebiten.KeyZ},
		render.KeyTab:      {ebiten.KeyTab},
		render.KeyPageUp:   {ebiten.KeyPageUp},
		render.KeyPageDown: {ebiten.KeyPageDown},
		render.KeyEnter:    {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
		render.KeyEscape:   {ebiten.KeyEscape},
	}
}

var mouseButtons = map[render.MouseButton]ebiten.MouseButton{
	render.MouseButtonLeft:  ebiten.MouseButtonLeft,
	render.MouseButtonRight: ebiten.MouseButtonRight,
}

// InputManager reads the keyboard and mouse through ebiten and inpututil.
type InputManager struct {
	bindings Bindings
	pressed  []ebiten.Key
}

// NewInputManager creates an input manager with the default bindings.
func NewInputManager() render.InputManager {
	return NewInputManagerWithBindings(DefaultBindings())
}

// NewInputManagerWithBindings creates an input manager with custom bindings.
func NewInputManagerWithBindings(b Bindings) render.InputManager {
	return &InputManager{bindings: b}
}

func (m *InputManager) any(key render.Key, test func(ebiten.Key) bool) bool {
	for _, k := range m.bindings[key] {
		if test(k) {
			return true
		}
	}
	return false
}

func (m *InputManager) IsKeyPressed(key render.Key) bool {
	return m.any(key, ebiten.IsKeyPressed)
}

func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return m.any(key, inpututil.IsKeyJustPressed)
}

// IsKeyJustReleased reports a release only once every bound key is up.
func (m *InputManager) IsKeyJustReleased(key render.Key) bool {
	return m.any(key, inpututil.IsKeyJustReleased) && !m.IsKeyPressed(key)
}

func (m *InputManager) AnyKeyPressed() bool {
	m.pressed = inpututil.AppendPressedKeys(m.pressed[:0])
	return len(m.pressed) > 0
}

func (m *InputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

func (m *InputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	b, ok := mouseButtons[button]
	return ok && ebiten.IsMouseButtonPressed(b)
}

func (m *InputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	b, ok := mouseButtons[button]
	return ok && inpututil.IsMouseButtonJustPressed(b)
}

// DroppedFiles returns the files dropped on the window this tick.
func (m *InputManager) DroppedFiles() fs.FS {
	return ebiten.DroppedFiles()
}
