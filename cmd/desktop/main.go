// Command desktop runs Valentine Dash in a window, or in a browser tab when
// built with GOOS=js GOARCH=wasm.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/valentine-dash/internal/audio"
	"github.com/tomz197/valentine-dash/internal/config"
	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/loop"
	lconfig "github.com/tomz197/valentine-dash/internal/loop/config"
	"github.com/tomz197/valentine-dash/internal/store"
)

const bestKey = "vd_best"

func main() {
	settings := config.Load()

	mute := flag.Bool("mute", !settings.Sound, "start with sound off")
	levelsFile := flag.String("levels", settings.LevelsFile, "YAML level table replacing the built-in levels")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, settings.LogLevel, "desktop")

	table, err := level.Load(*levelsFile)
	if err != nil {
		logger.Fatal("failed to load levels", "err", err)
	}
	levels := level.NewSource(table)
	if settings.WatchLevels && *levelsFile != "" {
		w, err := level.Watch(*levelsFile, levels, logger.WithPrefix("levels"))
		if err != nil {
			logger.Warn("level hot reload disabled", "err", err)
		} else {
			defer w.Close()
		}
	}

	var best loop.BestTimeStore = &store.Memory{}
	if f, err := store.Open(settings.BestFile); err != nil {
		logger.Warn("best time will not be saved", "err", err)
	} else {
		best = f.Slot(bestKey)
	}

	sound := audio.NewService(audio.OpenSpeaker, !*mute, nil)
	defer sound.Close()

	fonts, err := loadFonts()
	if err != nil {
		logger.Fatal("failed to load fonts", "err", err)
	}

	now := time.Now()
	ov := &overlay{}
	g := &Game{
		controller: loop.NewController(loop.Options{
			Levels:  levels,
			Overlay: ov,
			Sound:   sound,
			Best:    best,
			Logger:  logger,
			Now:     now,
		}),
		overlay: ov,
		logger:  logger,
		copy:    copyText,
		soundOn: sound.Enabled(),
		started: now,
		fonts:   fonts,
		debug:   settings.LogLevel == "debug",
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(lconfig.DefaultTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
