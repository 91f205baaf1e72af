// Package occupancy provides grid.Occupancy implementations: a chipmunk
// physics space of static obstacles, an ASCII bitmap, and tengo scripts.
package occupancy
