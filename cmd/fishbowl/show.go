package main

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/fishbowl/internal/game"
	"github.com/lox/fishbowl/internal/store"
)

type ShowCmd struct {
	Timestamps bool `short:"t" help:"Prefix events with the time they happened"`
}

func (c *ShowCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	snap, ok, err := store.NewFile(cfg.SaveFile, quartz.NewReal()).Snapshot()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No saved game.")
		return nil
	}

	s := snap.State
	fmt.Printf("Saved %s (%s)\n", snap.SavedAt.Format("2006-01-02 15:04:05"), cfg.SaveFile)
	fmt.Printf("Screen: %s\n", s.Screen)
	fmt.Printf("Players: %d/%d, items: %d\n", len(s.Players), s.PlayerCount, len(s.Items))
	if s.CurrentRound > 0 {
		totals := s.Totals()
		fmt.Printf("Round %d, %s to play\n", s.CurrentRound, s.Team(s.CurrentTeamTurn).Name)
		fmt.Printf("%s %d : %d %s\n", s.Teams[0].Name, totals.A, totals.B, s.Teams[1].Name)
	}

	if len(s.Events) == 0 {
		return nil
	}
	fmt.Println()
	formatter := game.NewEventFormatter(s.Teams, game.FormattingOptions{
		ShowTimestamps: c.Timestamps,
		ShowRound:      true,
	})
	for _, line := range formatter.FormatAll(s.Events) {
		fmt.Println(line)
	}
	return nil
}
