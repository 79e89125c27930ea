package planar

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

const (
	// ScreenDim is the width and height in pixels of rendered frames
	ScreenDim int = 500

	// renderMargin is the world-coordinate padding drawn around the
	// legal position domain
	renderMargin float64 = 0.2
)

// worldToPixelCoord converts world coordinates to pixel coordinates.
// The world origin maps to the centre of the frame and the world
// y-axis points up, whereas the pixel y-axis points down.
func worldToPixelCoord(coords [2]float64, scale float64) [2]float64 {
	x := float64(ScreenDim)/2 + coords[0]*scale
	y := float64(ScreenDim)/2 - coords[1]*scale
	return [2]float64{x, y}
}

// Render draws the current world state to a PNG file: the obstacle
// layout, the target, and the body. Bodies with an orientation are
// drawn as an oriented segment, point bodies as a dot.
func (e *Env) Render(filename string) error {
	bounds := e.dyn.StateBounds()
	scale := float64(ScreenDim) / (2 * (bounds[0].Max + renderMargin))

	dc := gg.NewContext(ScreenDim, ScreenDim)
	dc.SetColor(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dc.Clear()

	// Domain boundary
	corner := worldToPixelCoord([2]float64{-bounds[0].Max, bounds[2].Max},
		scale)
	dc.DrawRectangle(corner[0], corner[1], 2*bounds[0].Max*scale,
		2*bounds[2].Max*scale)
	dc.SetColor(color.RGBA{R: 64, G: 64, B: 64, A: 255})
	dc.SetLineWidth(2.0)
	dc.Stroke()

	// Obstacles
	dc.SetColor(color.RGBA{R: 51, G: 153, B: 51, A: 255})
	for _, obstacle := range e.Obstacles() {
		switch obstacle.Kind {
		case Circle:
			centre := worldToPixelCoord([2]float64{obstacle.X, obstacle.Y},
				scale)
			dc.DrawCircle(centre[0], centre[1], obstacle.Size*scale)
		default:
			h := obstacle.Size / 2
			corner := worldToPixelCoord([2]float64{obstacle.X - h,
				obstacle.Y + h}, scale)
			dc.DrawRectangle(corner[0], corner[1], obstacle.Size*scale,
				obstacle.Size*scale)
		}
		dc.Fill()
	}

	// Target
	target := worldToPixelCoord([2]float64{e.target.AtVec(0),
		e.target.AtVec(1)}, scale)
	dc.SetColor(color.RGBA{R: 0, G: 0, B: 0, A: 255})
	dc.DrawCircle(target[0], target[1], 0.08*scale)
	dc.Fill()

	// Body
	dc.SetColor(color.RGBA{R: 128, G: 102, B: 230, A: 255})
	x, y := e.state.AtVec(0), e.state.AtVec(2)
	if e.dyn.StateDims() >= 6 {
		theta := e.state.AtVec(4)
		length := 0.2
		left := worldToPixelCoord([2]float64{x - length*math.Cos(theta),
			y - length*math.Sin(theta)}, scale)
		right := worldToPixelCoord([2]float64{x + length*math.Cos(theta),
			y + length*math.Sin(theta)}, scale)
		dc.SetLineWidth(4.0)
		dc.DrawLine(left[0], left[1], right[0], right[1])
		dc.Stroke()
	} else {
		body := worldToPixelCoord([2]float64{x, y}, scale)
		dc.DrawCircle(body[0], body[1], 0.1*scale)
		dc.Fill()
	}

	return dc.SavePNG(filename)
}
