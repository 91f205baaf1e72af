package main

import (
	"fmt"
	"io"

	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/pathfind"
	"github.com/ungerik/go3d/vec3"
)

func report(out io.Writer, g *grid.Grid, startPos, targetPos vec3.T, res pathfind.Result, quiet bool) error {
	if quiet {
		_, err := io.WriteString(out, pathfind.FormatPath(res.Path))
		return err
	}

	start, err := g.NodeFromWorldPoint(startPos)
	if err != nil {
		return err
	}
	target, err := g.NodeFromWorldPoint(targetPos)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, pathfind.RenderASCII(g, start, target, res.Path)); err != nil {
		return err
	}
	switch {
	case start == target:
		_, err = fmt.Fprintf(out, "start and target share cell %v\n", start)
	case !res.Found:
		_, err = fmt.Fprintf(out, "no path from %v to %v (%d expanded)\n", start, target, res.Expanded)
	default:
		_, err = fmt.Fprintf(out, "path %v -> %v: %d steps, cost %d, %d expanded\n%s",
			start, target, len(res.Path), res.Cost, res.Expanded, pathfind.FormatPath(res.Path))
	}
	return err
}
