package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyane/jsnes/snes"
)

// getKeys maps the keyboard to the pad 1 button mask: WASD for directions,
// J/K primary, H/U secondary, shoulder on Q/E, F select, G start.
func getKeys(window *glfw.Window) uint16 {
	var buttons uint16
	press := func(key glfw.Key, mask uint16) {
		if window.GetKey(key) == glfw.Press {
			buttons |= mask
		}
	}
	press(glfw.KeyD, snes.ButtonRight)
	press(glfw.KeyA, snes.ButtonLeft)
	press(glfw.KeyS, snes.ButtonDown)
	press(glfw.KeyW, snes.ButtonUp)
	press(glfw.KeyG, snes.ButtonStart)
	press(glfw.KeyF, snes.ButtonSelect)
	press(glfw.KeyJ, snes.ButtonB)
	press(glfw.KeyK, snes.ButtonA)
	press(glfw.KeyH, snes.ButtonY)
	press(glfw.KeyU, snes.ButtonX)
	press(glfw.KeyQ, snes.ButtonL)
	press(glfw.KeyE, snes.ButtonR)
	return buttons
}
