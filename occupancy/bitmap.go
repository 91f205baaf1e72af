package occupancy

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/vec3"
)

// Bitmap is a static occupancy layout stretched over a world rectangle.
// Rows are given top first, so the first row covers the highest Z.
type Bitmap struct {
	origin  vec3.T
	size    [2]float32
	cols    int
	rows    int
	cellW   float64
	cellH   float64
	blocked []bool // row-major, row 0 at the lowest Z
}

// ParseBitmap reads rows of '#' (blocked) and '.' (free).
func ParseBitmap(origin vec3.T, size [2]float32, rows []string) (*Bitmap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("occupancy: bitmap has no rows")
	}
	if !(size[0] > 0) || !(size[1] > 0) {
		return nil, fmt.Errorf("occupancy: bitmap world size must be positive, got %v", size)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("occupancy: bitmap row 0 is empty")
	}

	b := &Bitmap{
		origin:  origin,
		size:    size,
		cols:    cols,
		rows:    len(rows),
		cellW:   float64(size[0]) / float64(cols),
		cellH:   float64(size[1]) / float64(len(rows)),
		blocked: make([]bool, cols*len(rows)),
	}
	for i, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("occupancy: bitmap row %d has %d columns, want %d", i, len(line), cols)
		}
		r := b.rows - 1 - i
		for c := 0; c < cols; c++ {
			switch line[c] {
			case '#':
				b.blocked[r*cols+c] = true
			case '.':
			default:
				return nil, fmt.Errorf("occupancy: bitmap row %d column %d: unexpected %q", i, c, line[c])
			}
		}
	}
	return b, nil
}

// Size returns the number of columns and rows.
func (b *Bitmap) Size() (int, int) {
	return b.cols, b.rows
}

// Blocked reports whether the bitmap cell (col, row) is blocked; row 0 is
// the lowest Z.
func (b *Bitmap) Blocked(col, row int) bool {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return false
	}
	return b.blocked[row*b.cols+col]
}

// Occupied reports whether any blocked cell contains center or lies closer
// than radius to it.
func (b *Bitmap) Occupied(center vec3.T, radius float32) bool {
	if b == nil {
		return false
	}
	left := float64(b.origin[0]) - float64(b.size[0])/2
	bottom := float64(b.origin[2]) - float64(b.size[1])/2
	px := float64(center[0]) - left
	pz := float64(center[2]) - bottom
	r := math.Max(float64(radius), 0)

	minC := int(math.Floor((px - r) / b.cellW))
	maxC := int(math.Floor((px + r) / b.cellW))
	minR := int(math.Floor((pz - r) / b.cellH))
	maxR := int(math.Floor((pz + r) / b.cellH))

	for row := max(minR, 0); row <= min(maxR, b.rows-1); row++ {
		for col := max(minC, 0); col <= min(maxC, b.cols-1); col++ {
			if !b.blocked[row*b.cols+col] {
				continue
			}
			x0, x1 := float64(col)*b.cellW, float64(col+1)*b.cellW
			z0, z1 := float64(row)*b.cellH, float64(row+1)*b.cellH
			if px >= x0 && px < x1 && pz >= z0 && pz < z1 {
				return true
			}
			dx := math.Max(math.Max(x0-px, 0), px-x1)
			dz := math.Max(math.Max(z0-pz, 0), pz-z1)
			if math.Hypot(dx, dz) < r {
				return true
			}
		}
	}
	return false
}
