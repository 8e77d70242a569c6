package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/outlaw/drops"
	"github.com/milk9111/outlaw/item"
	"github.com/milk9111/outlaw/shop"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no disk override is
// picked up, and returns that directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeOverride(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEmbeddedGameMatchesDefaults(t *testing.T) {
	chdirTemp(t)
	g, err := LoadGame(GameFile)
	require.NoError(t, err)

	want := DefaultGame()
	assert.Equal(t, want.TargetTPS, g.TargetTPS)
	assert.Equal(t, want.MaxGameTime, g.MaxGameTime)
	assert.Equal(t, want.VendorInterval, g.VendorInterval)
	assert.Equal(t, want.Radii, g.Radii)
	assert.Equal(t, want.Player, g.Player)
	assert.Equal(t, want.Catalog, g.Catalog)
	assert.Equal(t, want.Drops.Weights, g.Drops.Weights)
	assert.InDelta(t, want.Enemy.SmartChance, g.Enemy.SmartChance, 1e-6)
	assert.Equal(t, "drops.tengo", g.Drops.Script)
	assert.InDelta(t, 0.05, g.MaxDelta(), 1e-12)
}

func TestDiskOverrideMergesOverDefaults(t *testing.T) {
	dir := chdirTemp(t)
	writeOverride(t, dir, "game.yaml", `
max_game_time: 30
hard_mode: true
drops:
  chance: 1
  weights:
    nuke: 1
`)
	g, err := LoadGame(GameFile)
	require.NoError(t, err)
	assert.Equal(t, 30.0, g.MaxGameTime)
	assert.Equal(t, 60, g.TargetTPS, "unset fields keep defaults")
	assert.Equal(t, []item.Weight{{Type: item.Nuke, Weight: 1}}, g.DropWeights())
	assert.Equal(t, 2, g.EnemyConfig().Health)
	assert.Len(t, g.Catalog, len(shop.DefaultCatalog()))
}

func TestLoadGameRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "target_tps: [",
		"zero tps":     "target_tps: 0",
		"bad chance":   "drops: {chance: 2}",
		"unknown item": "drops: {weights: {banana: 3}}",
		"bad catalog":  "catalog: [{type: x, slot: 9, grant: {kind: life}}]",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := chdirTemp(t)
			writeOverride(t, dir, "game.yaml", body)
			g, err := LoadGame(GameFile)
			assert.Error(t, err)
			assert.Equal(t, DefaultGame().TargetTPS, g.TargetTPS, "defaults on error")
		})
	}
}

func TestLoadGameMissingFile(t *testing.T) {
	chdirTemp(t)
	_, err := LoadGame("nope.yaml")
	assert.ErrorContains(t, err, "config: load nope.yaml")
}

func TestLoadSpec(t *testing.T) {
	dir := chdirTemp(t)
	writeOverride(t, dir, "radii.yaml", "player: 5\nenemy: 6\nbullet: 1\n")
	type radii struct {
		Player float64 `yaml:"player"`
	}
	r, err := LoadSpec[radii]("config/radii.yaml")
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.Player)
}

func TestTrackerSeesDiskChanges(t *testing.T) {
	dir := chdirTemp(t)
	tr := NewTracker(GameFile)
	assert.False(t, tr.Changed(), "no disk copy yet")

	writeOverride(t, dir, GameFile, "max_game_time: 5\n")
	assert.True(t, tr.Changed())
	assert.False(t, tr.Changed())

	path := filepath.Join(dir, Dir, GameFile)
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.True(t, tr.Changed())

	require.NoError(t, os.Remove(path))
	assert.True(t, tr.Changed())
	assert.False(t, tr.Changed())
}

func TestDropPolicyUsesEmbeddedScript(t *testing.T) {
	chdirTemp(t)
	g := DefaultGame()
	g.Drops.Script = "drops.tengo"
	p := g.DropPolicy(nil)
	_, isScript := p.(*drops.Script)
	require.True(t, isScript)

	d := p.Decide(drops.Context{GameTime: 10})
	assert.InDelta(t, 0.3, d.Chance, 1e-9)
	assert.Equal(t, len(item.Types()), d.Table.Len())

	hard := p.Decide(drops.Context{HardMode: true})
	assert.InDelta(t, 0.25, hard.Chance, 1e-9)
}

func TestDropPolicyFallsBack(t *testing.T) {
	dir := chdirTemp(t)
	log, hook := test.NewNullLogger()

	g := DefaultGame()
	g.Drops.Script = "missing.tengo"
	_, isStatic := g.DropPolicy(log).(*drops.Static)
	assert.True(t, isStatic)
	assert.Len(t, hook.AllEntries(), 1)

	writeOverride(t, dir, "scripts/broken.tengo", "chance := ")
	g.Drops.Script = "broken.tengo"
	_, isStatic = g.DropPolicy(log).(*drops.Static)
	assert.True(t, isStatic)
	assert.Len(t, hook.AllEntries(), 2)

	g.Drops.Script = ""
	_, isStatic = g.DropPolicy(nil).(*drops.Static)
	assert.True(t, isStatic)
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "game.yaml", cleanConfigPath("config/game.yaml"))
	assert.Equal(t, "scripts/drops.tengo", cleanScriptPath("config/scripts/drops.tengo"))
	assert.Equal(t, "scripts/drops.tengo", cleanScriptPath("drops.tengo"))
	assert.True(t, IsConfigFile("a/b.YML"))
	assert.True(t, IsScriptFile("drops.tengo"))
	assert.False(t, IsScriptFile("drops.lua"))
}
