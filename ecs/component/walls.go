package component

import "image/color"

// Walls is the solid tile grid of the loaded map. Cells are row-major.
type Walls struct {
	Width    int
	Height   int
	TileSize float64
	Solid    []bool
	Color    color.RGBA
	// Version changes whenever the grid is replaced so physics can rebuild.
	Version int
}

func (w *Walls) At(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= w.Width || ty >= w.Height {
		return true
	}
	return w.Solid[ty*w.Width+tx]
}

var WallsComponent = NewComponent[Walls]()
