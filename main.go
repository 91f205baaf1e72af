package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/scenes"
)

func main() {
	sceneName := flag.String("scene", "demo", "scene name in scenes/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "outline obstacle shapes")
	watch := flag.Bool("watch", false, "reload the scene when files in scenes/ change")
	sceneDir := flag.String("dir", scenes.Dir, "directory checked for scene files before the embedded ones")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger.Init()
	scenes.Dir = *sceneDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("gridpath")

	game, err := NewGame(*sceneName, *debug, *watch)
	if err != nil {
		logger.Log.WithError(err).Fatal("viewer: load scene")
	}
	defer game.Close()

	logger.Log.WithFields(logFields(game)).Info("viewer: starting")
	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Error("viewer: run")
	}
}
