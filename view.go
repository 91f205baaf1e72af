package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gridpath/grid"
	"github.com/ungerik/go3d/vec3"
)

const (
	viewMargin = 24
	hudHeight  = 64
)

// view maps the grid's X/Z rectangle onto the screen, keeping the aspect
// ratio. Higher Z is drawn higher up.
type view struct {
	scale  float64
	offX   float64
	offY   float64
	left   float64
	top    float64
	bounds Rect
}

func newView(g *grid.Grid, screenW, screenH int) view {
	size := g.WorldSize()
	origin := g.Origin()
	w, h := float64(size[0]), float64(size[1])

	v := view{
		left: float64(origin[0]) - w/2,
		top:  float64(origin[2]) + h/2,
	}
	if w <= 0 || h <= 0 {
		v.scale = 1
		return v
	}
	availW := float64(screenW - 2*viewMargin)
	availH := float64(screenH - 2*viewMargin - hudHeight)
	v.scale = min(availW/w, availH/h)
	v.offX = viewMargin + (availW-w*v.scale)/2
	v.offY = viewMargin + hudHeight + (availH-h*v.scale)/2
	v.bounds = Rect{X: float32(v.offX), Y: float32(v.offY), Width: float32(w * v.scale), Height: float32(h * v.scale)}
	return v
}

func (v view) toScreen(x, z float64) (float32, float32) {
	return float32(v.offX + (x-v.left)*v.scale), float32(v.offY + (v.top-z)*v.scale)
}

func (v view) worldToScreen(p vec3.T) (float32, float32) {
	return v.toScreen(float64(p[0]), float64(p[2]))
}

func (v view) cpToScreen(p cp.Vector) (float32, float32) {
	return v.toScreen(p.X, p.Y)
}

// toWorld maps a screen point back to the grid plane at height y.
func (v view) toWorld(sx, sy int, y float32) vec3.T {
	x := (float64(sx)-v.offX)/v.scale + v.left
	z := v.top - (float64(sy)-v.offY)/v.scale
	return vec3.T{float32(x), y, float32(z)}
}

func (v view) length(d float64) float32 {
	return float32(d * v.scale)
}
