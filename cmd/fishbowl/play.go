package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fishbowl/internal/game"
	"github.com/lox/fishbowl/internal/randutil"
	"github.com/lox/fishbowl/internal/session"
	"github.com/lox/fishbowl/internal/store"
	"github.com/lox/fishbowl/internal/tui"
)

type PlayCmd struct {
	Fresh   bool  `help:"Discard any saved game and start over"`
	Seed    int64 `env:"FISHBOWL_SEED" help:"Seed shuffles for a reproducible game (0 uses system randomness)"`
	NoColor bool  `env:"NO_COLOR" help:"Disable colors"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, logFile, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	clock := quartz.NewReal()
	opts := []game.Option{game.WithClock(clock)}
	if c.Seed != 0 {
		opts = append(opts, game.WithRand(randutil.New(c.Seed)))
	}
	engine := game.NewEngine(opts...)

	st := store.NewFile(cfg.SaveFile, clock)
	sess := session.New(engine, st, game.NewState(cfg.GameSettings()), logger, session.WithClock(clock))

	logger.Info("Starting fishbowl", "version", version, "config", g.Config, "save_file", cfg.SaveFile, "seed", c.Seed)

	if c.Fresh {
		if err := sess.Discard(); err != nil {
			return err
		}
	} else if _, err := sess.Resume(); err != nil {
		// A save we cannot read is not worth refusing to play over.
		logger.Warn("Ignoring unreadable saved game", "path", cfg.SaveFile, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.New(sess, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	sess.Subscribe(tui.ProgramObserver{Program: program})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return sess.Run(gctx)
	})
	group.Go(func() error {
		return sess.RunTicker(gctx, cfg.TickInterval())
	})
	group.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	err = group.Wait()
	logger.Info("Exiting", "error", err)
	return err
}
