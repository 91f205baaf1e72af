package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gridpath/common"
	"github.com/milk9111/gridpath/occupancy"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugLineWidth      = 1.5
)

// drawObstacles outlines every shape in space. Shapes on unwalkable layers
// are drawn in the blocking color.
func drawObstacles(screen *ebiten.Image, space *occupancy.Space, v view) {
	if space == nil || space.Len() == 0 || screen == nil {
		return
	}
	drawer := &obstacleDrawer{
		screen: screen,
		view:   v,
		mask:   space.UnwalkableMask(),
	}
	cp.DrawSpace(space.CPSpace(), drawer)
}

type obstacleDrawer struct {
	screen *ebiten.Image
	view   view
	mask   uint
}

func (d *obstacleDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, fill)
}

func (d *obstacleDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *obstacleDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	x1, y1 := d.view.cpToScreen(a)
	x2, y2 := d.view.cpToScreen(b)
	width := max(d.view.length(2*radius), debugLineWidth)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, width, toNRGBA(fill), true)
}

func (d *obstacleDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *obstacleDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.cpToScreen(pos)
	half := float32(size / 2)
	vector.FillRect(d.screen, x-half, y-half, float32(size), float32(size), toNRGBA(fill), false)
}

func (d *obstacleDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *obstacleDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 1, G: 1, B: 1, A: 0.9}
}

func (d *obstacleDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Filter.Categories&d.mask != 0 {
		return cp.FColor{R: 1, G: 0.3, B: 0.2, A: 0.95}
	}
	return cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.7}
}

func (d *obstacleDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *obstacleDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *obstacleDrawer) Data() interface{} {
	return nil
}

func (d *obstacleDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.cpToScreen(a)
	x2, y2 := d.view.cpToScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, debugLineWidth, toNRGBA(c), true)
}

func (d *obstacleDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *obstacleDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(c.R) * 255),
		G: uint8(common.Clamp01(c.G) * 255),
		B: uint8(common.Clamp01(c.B) * 255),
		A: uint8(common.Clamp01(c.A) * 255),
	}
}
