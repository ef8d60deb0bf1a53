package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/valentine-dash/internal/audio"
	"github.com/tomz197/valentine-dash/internal/config"
	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/client"
	"github.com/tomz197/valentine-dash/internal/loop/server"
	"github.com/tomz197/valentine-dash/internal/store"
)

// bestKey is the store key of the local player's best time.
const bestKey = "vd_best"

func main() {
	settings := config.Load()

	mute := flag.Bool("mute", !settings.Sound, "start with sound off")
	soundcheck := flag.Bool("soundcheck", false, "play every sound cue once and exit")
	levelsFile := flag.String("levels", settings.LevelsFile, "YAML level table replacing the built-in levels")
	flag.Parse()

	logOut, err := config.OpenLogFile(settings.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logOut.Close()
	logger := config.NewLogger(logOut, settings.LogLevel, "game")

	sound := audio.NewService(audio.OpenSpeaker, !*mute, nil)
	defer sound.Close()

	if *soundcheck {
		runSoundcheck(sound)
		return
	}

	table, err := level.Load(*levelsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load levels: %v\n", err)
		os.Exit(1)
	}
	levels := level.NewSource(table)
	if settings.WatchLevels && *levelsFile != "" {
		w, err := level.Watch(*levelsFile, levels, logger)
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	hub := server.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Levels:   levels,
		Sound:    sound,
		Best:     best,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// runSoundcheck plays every cue in turn, waiting for each to finish.
func runSoundcheck(sound *audio.Service) {
	type check struct {
		name string
		play func()
		d    time.Duration
	}
	tone := func(name string, fx audio.SoundEffect) check {
		return check{name, func() { sound.Play(fx) }, fx.End()}
	}

	win := audio.WinChime()
	checks := []check{
		tone("start", audio.CueStart),
		tone("pickup", audio.CuePickup),
		tone("hit", audio.CueHit),
		{"win", func() { sound.PlayCue(win) }, win.Length()},
		tone("lose", audio.CueLose),
		tone("sound on", audio.CueSoundOn),
		{"clap", sound.Clap, audio.Clap().Length()},
		{"fanfare", func() { sound.Fanfare(1200 * time.Millisecond) }, 3300 * time.Millisecond},
	}

	for _, c := range checks {
		fmt.Printf("%-9s %v\n", c.name, c.d)
		c.play()
		time.Sleep(c.d + 250*time.Millisecond)
	}

	if !sound.Available() {
		fmt.Fprintln(os.Stderr, "no audio device: nothing was heard")
	}
}
