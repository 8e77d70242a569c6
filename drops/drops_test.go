package drops

import (
	"math/rand"
	"testing"

	"github.com/milk9111/outlaw/item"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPolicy(t *testing.T) {
	p := NewStatic(0.5, []item.Weight{{Type: item.Nuke, Weight: 1}})
	d := p.Decide(Context{GameTime: 100})
	assert.Equal(t, 0.5, d.Chance)
	assert.Equal(t, item.Nuke, d.Table.Pick(0.7))
}

func TestRollRate(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	p := Default()
	hits := 0
	for i := 0; i < 10000; i++ {
		if _, ok := Roll(p, Context{}, rng); ok {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/10000, 0.02)

	_, ok := Roll(NewStatic(0, item.DefaultWeights()), Context{}, rng)
	assert.False(t, ok)
	_, ok = Roll(nil, Context{}, rng)
	assert.False(t, ok)
}

const testScript = `
chance := 0.25
weights := {coin: 1}
if hard_mode {
	chance = 0.5
}
if game_time > 60 {
	weights = {nuke: 2, coin: 0}
}
`

func TestScriptPolicy(t *testing.T) {
	s, err := NewScript([]byte(testScript), nil, nil)
	require.NoError(t, err)

	d := s.Decide(Context{GameTime: 10})
	assert.Equal(t, 0.25, d.Chance)
	assert.Equal(t, 1, d.Table.Len())
	assert.Equal(t, item.Coin, d.Table.Pick(0.9))

	d = s.Decide(Context{GameTime: 90, HardMode: true})
	assert.Equal(t, 0.5, d.Chance)
	assert.Equal(t, 1, d.Table.Len())
	assert.Equal(t, item.Nuke, d.Table.Pick(0.1))
}

func TestScriptCompileErrors(t *testing.T) {
	_, err := NewScript([]byte(`chance := `), nil, nil)
	assert.ErrorContains(t, err, "drops: compile")

	_, err = NewScript([]byte(`weights := {coin: 1}`), nil, nil)
	assert.ErrorContains(t, err, "does not define chance")

	_, err = NewScript([]byte("chance := 0.1\nweights := {coin: \"lots\"}"), nil, nil)
	assert.ErrorContains(t, err, "want a number")
}

func TestScriptFallsBackOnRuntimeError(t *testing.T) {
	log, hook := test.NewNullLogger()
	src := `
chance := 0.2
weights := {coin: 1}
if kills > 3 {
	weights = 5 / (kills - kills)
}
`
	s, err := NewScript([]byte(src), NewStatic(0.9, []item.Weight{{Type: item.Wheel, Weight: 1}}), log)
	require.NoError(t, err)

	d := s.Decide(Context{Kills: 10})
	assert.Equal(t, 0.9, d.Chance)
	assert.Equal(t, item.Wheel, d.Table.Pick(0.5))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestScriptWarnsOnUnknownItems(t *testing.T) {
	log, hook := test.NewNullLogger()
	s, err := NewScript([]byte("chance := 1\nweights := {coin: 1, banana: 4}"), nil, log)
	require.NoError(t, err)
	s.Decide(Context{})
	assert.Len(t, hook.AllEntries(), 1)
}
