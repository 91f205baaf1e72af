package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/pathfind"
	"github.com/milk9111/gridpath/scenes"
	"github.com/milk9111/gridpath/system"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	stepFrames   = 3
	statusFrames = 180
	markerSize   = 10
)

type action int

const (
	actionResume action = iota
	actionToggleStepper
	actionCopyPath
	actionReload
	actionResetEndpoints
	actionQuit
)

var (
	walkableColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
	blockedColor  = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xc0}
	openColor     = color.RGBA{R: 0x60, G: 0xd0, B: 0x60, A: 0xa0}
	closedColor   = color.RGBA{R: 0xe0, G: 0x90, B: 0x70, A: 0xa0}
)

type Game struct {
	frames int

	world   *system.World
	watcher *scenes.Watcher
	view    view
	debug   bool

	paused  bool
	ui      *ebitenui.UI
	pending []action
	quit    bool

	stepper  *pathfind.Stepper
	snapshot pathfind.Snapshot

	clipboardReady bool
	status         string
	statusUntil    int
}

func NewGame(sceneName string, debug, watch bool) (*Game, error) {
	world, err := system.NewWorld(sceneName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world: world,
		debug: debug,
	}
	g.ui = NewControlsUI(g)
	g.resetView()

	if err := clipboard.Init(); err != nil {
		logger.Log.WithError(err).Warn("viewer: clipboard unavailable, copy is disabled")
	} else {
		g.clipboardReady = true
	}

	if watch {
		w, err := scenes.NewWatcher(scenes.Dir)
		if err != nil {
			logger.Log.WithError(err).WithField("dir", scenes.Dir).Warn("viewer: cannot watch scenes")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) queue(a action) {
	g.pending = append(g.pending, a)
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.handleKeys()
	if g.paused {
		g.ui.Update()
	}
	for _, a := range g.pending {
		g.apply(a)
	}
	g.pending = g.pending[:0]

	if g.quit {
		return ebiten.Termination
	}
	if g.paused {
		return nil
	}

	g.handleMouse()

	if g.stepper != nil {
		if g.frames%stepFrames == 0 && !g.stepper.Done() {
			g.snapshot = g.stepper.Step()
		}
		return nil
	}

	if err := g.world.Update(context.Background()); err != nil {
		g.setStatus("repath failed: %v", err)
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.queue(actionToggleStepper)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.queue(actionCopyPath)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.queue(actionReload)
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.queue(actionResetEndpoints)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.debug = !g.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if g.stepper != nil && !g.stepper.Done() {
			g.snapshot = g.stepper.Step()
		}
	}
}

// handleMouse drags the target with the left button and the seeker with
// the right one.
func (g *Game) handleMouse() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	cx, cy := ebiten.CursorPosition()
	if !g.view.bounds.Contains(float32(cx), float32(cy)) {
		return
	}
	p := g.view.toWorld(cx, cy, g.world.Scene.Grid.Origin[1])
	ps := g.world.Pathfinding
	if left {
		ps.SetTarget(p)
	} else {
		ps.SetSeeker(p)
	}
	// endpoints changed under a running animation, start it over
	if g.stepper != nil {
		g.startStepper()
	}
}

func (g *Game) apply(a action) {
	switch a {
	case actionResume:
		g.paused = false
	case actionToggleStepper:
		if g.stepper != nil {
			g.stepper = nil
			g.snapshot = pathfind.Snapshot{}
			g.world.Pathfinding.Invalidate()
		} else {
			g.startStepper()
		}
		g.paused = false
	case actionCopyPath:
		g.copyPath()
	case actionReload:
		g.reload()
	case actionResetEndpoints:
		g.world.Pathfinding.SetSeeker(g.world.Scene.Seeker)
		g.world.Pathfinding.SetTarget(g.world.Scene.Target)
		if g.stepper != nil {
			g.startStepper()
		}
	case actionQuit:
		g.quit = true
	}
}

func (g *Game) startStepper() {
	ps := g.world.Pathfinding
	st, err := pathfind.NewStepper(g.world.Pathfinder.Grid(), ps.Seeker(), ps.Target())
	if err != nil {
		g.setStatus("cannot step search: %v", err)
		g.stepper = nil
		return
	}
	g.stepper = st
	g.snapshot = pathfind.Snapshot{}
}

func (g *Game) copyPath() {
	path := g.world.Pathfinding.Path()
	if !g.clipboardReady {
		g.setStatus("clipboard unavailable")
		return
	}
	if len(path) == 0 {
		g.setStatus("no path to copy")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(pathfind.FormatPath(path)))
	g.setStatus("copied %d waypoints", len(path))
}

func (g *Game) reload() {
	if err := g.world.Reload(); err != nil {
		logger.Log.WithError(err).WithField("scene", g.world.SceneName).Warn("viewer: reload failed")
		g.setStatus("reload failed: %v", err)
		return
	}
	g.resetView()
	if g.stepper != nil {
		g.startStepper()
	}
	g.setStatus("reloaded %s", g.world.Scene.Name)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Log.WithField("file", name).Debug("viewer: scene file changed")
			g.queue(actionReload)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Log.WithError(err).Warn("viewer: watcher error")
		default:
			return
		}
	}
}

func (g *Game) resetView() {
	g.view = newView(g.world.Pathfinder.Grid(), baseWidth, baseHeight)
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusUntil = g.frames + statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	gr := g.world.Pathfinder.Grid()
	var path []*grid.Node
	if g.stepper != nil {
		g.drawSearch(screen, gr)
		path = g.snapshot.Path
	} else {
		g.drawNodes(screen, gr)
		path = g.world.Pathfinding.Path()
	}
	g.drawPathNodes(screen, gr, path)

	if g.debug {
		drawObstacles(screen, g.world.Built.Space, g.view)
	}

	ps := g.world.Pathfinding
	g.drawPathLine(screen, ps.Seeker(), path)
	g.drawMarker(screen, ps.Seeker(), colornames.Dodgerblue)
	g.drawMarker(screen, ps.Target(), colornames.Gold)

	g.drawHUD(screen)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) nodeRect(gr *grid.Grid, n *grid.Node) (float32, float32, float32) {
	x, y := g.view.worldToScreen(n.Position())
	size := g.view.length(float64(gr.NodeDiameter()))
	if size > 2 {
		size--
	}
	return x - size/2, y - size/2, size
}

func (g *Game) fillNode(screen *ebiten.Image, gr *grid.Grid, n *grid.Node, c color.Color) {
	x, y, size := g.nodeRect(gr, n)
	vector.FillRect(screen, x, y, size, size, c, false)
}

func (g *Game) drawNodes(screen *ebiten.Image, gr *grid.Grid) {
	for _, n := range gr.Nodes() {
		c := walkableColor
		if !n.Walkable() {
			c = blockedColor
		}
		g.fillNode(screen, gr, n, c)
	}
}

func (g *Game) drawSearch(screen *ebiten.Image, gr *grid.Grid) {
	g.drawNodes(screen, gr)
	for _, n := range g.snapshot.Closed {
		g.fillNode(screen, gr, n, closedColor)
	}
	for _, n := range g.snapshot.Open {
		g.fillNode(screen, gr, n, openColor)
	}
	if n := g.snapshot.Current; n != nil {
		x, y, size := g.nodeRect(gr, n)
		vector.StrokeRect(screen, x, y, size, size, 2, colornames.Yellow, false)
	}
}

func (g *Game) drawPathNodes(screen *ebiten.Image, gr *grid.Grid, path []*grid.Node) {
	for _, n := range path {
		g.fillNode(screen, gr, n, colornames.Black)
	}
}

func (g *Game) drawPathLine(screen *ebiten.Image, from vec3.T, path []*grid.Node) {
	if len(path) == 0 {
		return
	}
	x0, y0 := g.view.worldToScreen(from)
	for _, n := range path {
		x1, y1 := g.view.worldToScreen(n.Position())
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, true)
		x0, y0 = x1, y1
	}
}

func (g *Game) drawMarker(screen *ebiten.Image, p vec3.T, c color.Color) {
	x, y := g.view.worldToScreen(p)
	vector.FillRect(screen, x-markerSize/2, y-markerSize/2, markerSize, markerSize, c, false)
	vector.StrokeRect(screen, x-markerSize/2, y-markerSize/2, markerSize, markerSize, 1, colornames.Black, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	res := g.world.Pathfinding.Result()
	text := fmt.Sprintf("Scene: %s    FPS: %.2f", g.world.Scene.Name, ebiten.ActualFPS())
	if g.stepper != nil {
		text += fmt.Sprintf("\nStepping: %d expanded, %d open, done=%v found=%v",
			g.snapshot.Step, len(g.snapshot.Open), g.snapshot.Done, g.snapshot.Found)
	} else {
		text += fmt.Sprintf("\nPath: %d steps, cost %d, %d expanded, found=%v",
			len(g.world.Pathfinding.Path()), res.Cost, res.Expanded, res.Found)
	}
	text += "\nLMB target  RMB seeker  SPACE step  N next  C copy  R reload  G shapes  ESC menu"
	if g.status != "" && g.frames < g.statusUntil {
		text += "\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 4)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func logFields(g *Game) logrus.Fields {
	sx, sy := g.world.Pathfinder.Grid().Size()
	return logrus.Fields{
		"scene":  g.world.Scene.Name,
		"size_x": sx,
		"size_y": sy,
		"debug":  g.debug,
		"watch":  g.watcher != nil,
	}
}
