package component

import "image/color"

// Sprite draws an actor as a filled box with a facing notch.
type Sprite struct {
	Color  color.RGBA
	Width  float64
	Height float64
}

var SpriteComponent = NewComponent[Sprite]()
