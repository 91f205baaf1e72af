package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/pathfind"
	"github.com/milk9111/gridpath/scenes"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
)

type options struct {
	scene         string
	from, to      pointFlag
	maxExpansions int
	timeout       time.Duration
	watch         bool
	copyPath      bool
	quiet         bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "demo", "scene name in scenes/ (basename, .yaml optional)")
	flag.StringVar(&scenes.Dir, "dir", scenes.Dir, "directory checked for scene files before the embedded ones")
	flag.Var(&opts.from, "from", "start position as x,z or x,y,z (default: scene seeker)")
	flag.Var(&opts.to, "to", "target position as x,z or x,y,z (default: scene target)")
	flag.IntVar(&opts.maxExpansions, "max-expansions", 0, "stop searching after this many expansions (0 = scene setting)")
	flag.DurationVar(&opts.timeout, "timeout", 5*time.Second, "give up on a search after this long")
	flag.BoolVar(&opts.watch, "watch", false, "search again whenever a scene file changes")
	flag.BoolVar(&opts.copyPath, "copy", false, "copy the waypoints to the clipboard")
	flag.BoolVar(&opts.quiet, "q", false, "print only the waypoints")
	list := flag.Bool("list", false, "list embedded scenes and exit")
	flag.Parse()

	logger.Init()

	if *list {
		for _, name := range scenes.Names() {
			fmt.Println(name)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, opts); err != nil {
		logger.Log.WithError(err).Fatal("pathfind: failed")
	}
	if !opts.watch {
		return
	}

	w, err := scenes.NewWatcher(scenes.Dir)
	if err != nil {
		logger.Log.WithError(err).WithField("dir", scenes.Dir).Fatal("pathfind: watch scenes")
	}
	defer w.Close()
	logger.Log.WithField("dir", scenes.Dir).Info("pathfind: watching for changes")

	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			logger.Log.WithField("file", name).Info("pathfind: scene changed")
			if err := run(ctx, os.Stdout, opts); err != nil {
				logger.Log.WithError(err).Error("pathfind: search failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Log.WithError(err).Warn("pathfind: watcher error")
		}
	}
}

func run(ctx context.Context, out io.Writer, opts options) error {
	scene, err := scenes.LoadScene(opts.scene)
	if err != nil {
		return err
	}
	world, err := scene.Build()
	if err != nil {
		return err
	}

	start, target := scene.Seeker, scene.Target
	if opts.from.set {
		start = opts.from.p
	}
	if opts.to.set {
		target = opts.to.p
	}

	var searchOpts []pathfind.Option
	if n := opts.maxExpansions; n > 0 {
		searchOpts = append(searchOpts, pathfind.WithMaxExpansions(n))
	} else if scene.MaxExpansions > 0 {
		searchOpts = append(searchOpts, pathfind.WithMaxExpansions(scene.MaxExpansions))
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	began := time.Now()
	res, err := pathfind.Search(ctx, world.Grid, start, target, searchOpts...)
	if err != nil {
		if errors.Is(err, pathfind.ErrExpansionLimit) {
			return fmt.Errorf("scene %s: %w after %d nodes", scene.Name, err, res.Expanded)
		}
		return fmt.Errorf("scene %s: %w", scene.Name, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"scene":    scene.Name,
		"found":    res.Found,
		"steps":    len(res.Path),
		"cost":     res.Cost,
		"expanded": res.Expanded,
		"took":     time.Since(began).String(),
	}).Info("pathfind: search finished")

	if err := report(out, world.Grid, start, target, res, opts.quiet); err != nil {
		return err
	}

	if opts.copyPath {
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		clipboard.Write(clipboard.FmtText, []byte(pathfind.FormatPath(res.Path)))
		logger.Log.WithField("waypoints", len(res.Path)).Info("pathfind: copied path to clipboard")
	}
	return nil
}
