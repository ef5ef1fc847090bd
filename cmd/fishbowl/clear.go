package main

import (
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/fishbowl/internal/store"
)

type ClearCmd struct{}

func (c *ClearCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if err := store.NewFile(cfg.SaveFile, quartz.NewReal()).Clear(); err != nil {
		return err
	}
	fmt.Printf("Cleared %s\n", cfg.SaveFile)
	return nil
}
