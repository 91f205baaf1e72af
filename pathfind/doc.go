// Package pathfind runs A* over a grid.Grid with 8-connected moves and
// octile costs.
//
// Entry points:
//
//   - FindPath / Search: run a search to completion.
//   - Stepper: expand one node per call, for viewers and debugging.
//   - Pathfinder: holds the current grid and the last computed path.
//
// All search bookkeeping is private to a single run, so concurrent searches
// over the same grid are safe.
package pathfind
