// isoworld runs the scene viewer in the local terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"isoworld/internal/config"
	"isoworld/internal/game"
	"isoworld/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	seed := flag.Int64("seed", 0, "Scene seed (0 = random)")
	name := flag.String("name", os.Getenv("USER"), "Player name")
	flag.Parse()

	if err := run(*configPath, *seed, *name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, name string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// The terminal belongs to the viewer, so logs only go to a file.
	log := logging.Nop()
	if cfg.Log.Path != "" {
		var err error
		if log, err = logging.New(cfg.Log.Level, cfg.Log.Path); err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, scene, err := game.NewScene(seed, name, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "init screen")
	}
	v, err := game.NewViewer(screen, w, scene.Player, cfg, log)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Info("viewer started", zap.Int64("seed", seed))
	return v.Run(ctx)
}
