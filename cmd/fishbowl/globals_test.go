package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fishbowl.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "warn"
save_file = "from-config.json"
`), 0o644))

	g := &Globals{Config: path, SaveFile: filepath.Join(dir, "flag.json"), LogLevel: "debug"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flag.json"), cfg.SaveFile)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestGlobalsRejectBadOverride(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), LogLevel: "shouty"}
	_, err := g.load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCLIParsesEnv(t *testing.T) {
	t.Setenv("FISHBOWL_SAVE_FILE", "/tmp/env.json")
	t.Setenv("FISHBOWL_SEED", "42")

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse([]string{"play", "--fresh"})
	require.NoError(t, err)

	assert.Equal(t, "play", ctx.Command())
	assert.Equal(t, "/tmp/env.json", cli.SaveFile)
	assert.Equal(t, int64(42), cli.Play.Seed)
	assert.True(t, cli.Play.Fresh)
	assert.Equal(t, "fishbowl.hcl", cli.Config)
}

func TestClearAndShowWithoutSave(t *testing.T) {
	dir := t.TempDir()
	g := &Globals{
		Config:   filepath.Join(dir, "missing.hcl"),
		SaveFile: filepath.Join(dir, "game.json"),
	}
	require.NoError(t, (&ClearCmd{}).Run(g))
	require.NoError(t, (&ShowCmd{}).Run(g))
}
