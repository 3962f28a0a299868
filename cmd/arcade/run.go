package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/display"
	"github.com/vovakirdan/matrix-arcade/internal/engine"
	"github.com/vovakirdan/matrix-arcade/internal/input"
	"github.com/vovakirdan/matrix-arcade/internal/platform/tui"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
	"github.com/vovakirdan/matrix-arcade/internal/session"
	"github.com/vovakirdan/matrix-arcade/internal/storage"
)

var (
	flagTerminal   bool
	flagBoth       bool
	flagFBPath     string
	flagNoDuck     bool
	flagNoSound    bool
	flagFPS        int
	flagSeed       int64
	flagProfiles   string
	flagSpectate   string
	flagTicks      int
	flagDifficulty string
)

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&flagTerminal, "terminal", false, "Show the display in the terminal instead of the framebuffer")
	f.BoolVar(&flagBoth, "both", false, "Show the display on the framebuffer and in the terminal")
	f.StringVar(&flagFBPath, "fb-path", "", "Framebuffer device (default /dev/fb0)")
	f.BoolVar(&flagNoDuck, "no-duck", false, "Dino: disable ducking, only low birds spawn")
	f.BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects and speech")
	f.IntVar(&flagFPS, "fps", 0, "Tick rate (default 60)")
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.StringVar(&flagProfiles, "profiles", "", "Directory with extra gamepad profiles")
	f.StringVar(&flagSpectate, "spectate", "", "Serve a read-only SSH mirror on this address (e.g. :23234)")
	f.IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = run until quit)")
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadConfig reads the configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Lookup("terminal") == nil {
		return cfg, nil
	}

	switch {
	case flagBoth:
		cfg.Display.Framebuffer = true
		cfg.Display.Terminal = true
	case flagTerminal:
		cfg.Display.Framebuffer = false
		cfg.Display.Terminal = true
	}
	if flags.Changed("fb-path") {
		cfg.Display.FramebufferPath = flagFBPath
	}
	if flags.Changed("fps") {
		cfg.Engine.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Engine.Seed = flagSeed
	}
	if flags.Changed("ticks") {
		cfg.Engine.MaxTicks = flagTicks
	}
	if flags.Changed("profiles") {
		cfg.Input.ProfilesDir = flagProfiles
	}
	if flags.Changed("spectate") {
		cfg.Spectate.Address = flagSpectate
	}
	if flagNoSound {
		cfg.Audio.Enabled = false
		cfg.Audio.Speech = false
	}
	if flagNoDuck {
		cfg.Games.Dino.DuckEnabled = false
	}
	cfg.Games.ApplyPreset(config.DifficultyPreset(flagDifficulty))
	return cfg, nil
}

// newLogger logs to stderr, or to the log file when the terminal is busy
// showing the display.
func newLogger(cfg config.Config, terminalBusy bool) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if terminalBusy && cfg.Log.File != "" {
		path := config.ExpandHome(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
		}
		logger.SetLevel(level)
	}
	return logger, closer, nil
}

// scoreStore is what the session and the scores command need from storage.
type scoreStore interface {
	session.HighScores
	session.ScoreHistory
	TopScores(game string, limit int) ([]storage.ScoreEntry, error)
	Close() error
}

// openScores opens the score database, falling back to memory so a broken
// database never stops the console.
func openScores(path string, logger *log.Logger) scoreStore {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "error", err)
		return storage.NewMemory()
	}

	game := core.KindDino.String()
	if high, err := store.HighScore(game); err == nil && high == 0 {
		n, err := storage.ImportLegacyHighScore(store, game, storage.LegacyHighScoreFile)
		if err != nil {
			logger.Warn("legacy high score not imported", "error", err)
		} else if n > 0 {
			logger.Info("imported legacy high score", "game", game, "score", n)
		}
	}
	return store
}

// openAudio builds the best available player.
func openAudio(cfg config.AudioConfig, logger *log.Logger) (audio.Player, io.Closer) {
	if !cfg.Enabled && !cfg.Speech {
		return audio.Nop{}, io.NopCloser(nil)
	}

	var voice audio.Voice
	if cfg.Speech {
		esp, err := audio.NewEspeak(cfg.EspeakPath, logger)
		if err != nil {
			logger.Warn("speech disabled", "error", err)
		} else {
			voice = esp
		}
	}
	if !cfg.Enabled {
		return audio.SpeechOnly{Voice: voice}, io.NopCloser(nil)
	}

	spk, err := audio.NewSpeaker(cfg, voice, logger)
	if err != nil {
		logger.Warn("sound effects disabled", "error", err)
		if voice == nil {
			return audio.Nop{}, io.NopCloser(nil)
		}
		return audio.SpeechOnly{Voice: voice}, io.NopCloser(nil)
	}
	return spk, spk
}

// frontEnd is the interactive terminal: a Bubble Tea program and the key
// source it feeds.
type frontEnd struct {
	program *tea.Program
	keys    *input.TerminalKeys
	done    chan struct{}
}

func (f *frontEnd) start(logger *log.Logger) {
	f.done = make(chan struct{})
	go func() {
		defer close(f.done)
		if _, err := f.program.Run(); err != nil {
			logger.Error("terminal front-end failed", "error", err)
		}
		// The engine stops on the next tick however the program ended.
		f.keys.Quit()
	}()
}

func (f *frontEnd) stop() {
	f.program.Quit()
	<-f.done
}

// openSinks opens every configured output. Failures are logged; only
// having no sink at all is an error.
func openSinks(cfg config.Config, logger *log.Logger, interactive bool) (*display.Broadcast, *frontEnd, error) {
	var (
		sinks []display.Sink
		front *frontEnd
	)
	palette := display.Palette{
		Lit:    cfg.Display.LitColor,
		Accent: cfg.Display.AccentColor,
		Dim:    display.DefaultPalette.Dim,
	}

	if cfg.Display.Framebuffer {
		fb, err := display.OpenFramebuffer(cfg.Display.FramebufferPath)
		if err != nil {
			logger.Warn("framebuffer unavailable", "path", cfg.Display.FramebufferPath, "error", err)
		} else {
			logger.Info("framebuffer opened", "path", cfg.Display.FramebufferPath, "driver", fb.Driver(), "bpp", fb.Layout().BitsPerPixel)
			sinks = append(sinks, fb)
		}
	}

	if cfg.Display.Terminal {
		styles := display.NewStyles(nil, palette)
		if interactive {
			keys := input.NewTerminalKeys(time.Duration(cfg.Input.TerminalHoldMS) * time.Millisecond)
			front = &frontEnd{program: tui.NewProgram(keys), keys: keys}
			sinks = append(sinks, display.NewTerminal(tui.FrameWriter(front.program), styles))
		} else {
			sinks = append(sinks, display.NewTerminal(display.StreamWriter{W: os.Stdout}, styles))
		}
	}

	if cfg.Spectate.Address != "" {
		scfg := tui.DefaultSpectatorConfig()
		scfg.Address = cfg.Spectate.Address
		scfg.HostKeyPath = cfg.Spectate.HostKeyPath
		scfg.Palette = palette
		spectator, err := tui.NewSpectator(scfg, logger)
		if err != nil {
			logger.Warn("spectator disabled", "error", err)
		} else {
			spectator.Start()
			sinks = append(sinks, spectator)
		}
	}

	b, err := display.NewBroadcast(logger.WithPrefix("display"), sinks...)
	if err != nil {
		return nil, nil, err
	}
	return b, front, nil
}

func runArcade(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	interactive := cfg.Display.Terminal && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	logger, logCloser, err := newLogger(cfg, cfg.Display.Terminal)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store := openScores(cfg.Storage.DBPath, logger.WithPrefix("storage"))
	defer store.Close()

	player, audioCloser := openAudio(cfg.Audio, logger.WithPrefix("audio"))
	defer audioCloser.Close()

	out, front, err := openSinks(cfg, logger, interactive)
	if err != nil {
		return fmt.Errorf("no usable display: %w", err)
	}
	defer out.Close()

	profiles, err := input.LoadProfiles(config.ExpandHome(cfg.Input.ProfilesDir))
	if err != nil {
		logger.Warn("some gamepad profiles were not loaded", "error", err)
	}
	devices := input.NewRegistry(&input.EvdevDiscoverer{
		Glob:     cfg.Input.DeviceGlob,
		Profiles: profiles,
		// Grabbing the keyboard would starve the terminal front-end.
		Grab: cfg.Input.Grab && front == nil,
		Log:  logger.WithPrefix("input"),
	}, logger.WithPrefix("input"))
	defer devices.Close()
	if front != nil {
		devices.Attach(front.keys)
	}

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess := session.New(session.Context{
		HighScores: store,
		Audio:      player,
		Log:        logger.WithPrefix("session"),
		Games: registry.Env{
			Config: cfg.Games,
			Audio:  player,
			Seed:   seed,
			Log:    logger.WithPrefix("game"),
		},
		Timeouts: cfg.Session,
	})

	eng := engine.New(devices, sess, out, engine.Options{
		TickRate:    cfg.Engine.TickRate,
		RescanEvery: cfg.Input.RescanEvery,
		Log:         logger.WithPrefix("engine"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if front != nil {
		front.start(logger)
		defer front.stop()
	}

	logger.Info("arcade started", "seed", seed, "tick_rate", cfg.Engine.TickRate, "sinks", len(out.Sinks()))
	if cfg.Engine.MaxTicks > 0 {
		_, err = eng.RunTicks(ctx, cfg.Engine.MaxTicks)
	} else {
		err = eng.Run(ctx)
	}
	logger.Info("arcade stopped", "ticks", eng.Tick(), "overruns", eng.Overruns())

	if errors.Is(err, engine.ErrNoUsableSink) {
		for _, s := range out.Sinks() {
			logger.Error("sink failed", "sink", s.Name(), "errors", out.Errors(s.Name()))
		}
	}
	return err
}
