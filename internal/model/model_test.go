package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHitDerivesPoints(t *testing.T) {
	for sector := 1; sector <= 20; sector++ {
		for _, m := range []Multiplier{MultiplierSingle, MultiplierDouble, MultiplierTriple} {
			hit, err := NewHit(sector, m)
			require.NoError(t, err)
			assert.Equal(t, sector*m.Factor(), hit.Points)
		}
	}
}

func TestNewHitBull(t *testing.T) {
	outer, err := NewHit(BullSector, MultiplierSingle)
	require.NoError(t, err)
	assert.Equal(t, 25, outer.Points)

	inner, err := NewHit(BullSector, MultiplierDouble)
	require.NoError(t, err)
	assert.Equal(t, 50, inner.Points)

	_, err = NewHit(BullSector, MultiplierTriple)
	assert.ErrorIs(t, err, ErrInvalidThrow)
}

func TestNewHitRejectsInvalidInput(t *testing.T) {
	_, err := NewHit(21, MultiplierSingle)
	assert.ErrorIs(t, err, ErrInvalidThrow)

	_, err = NewHit(5, Multiplier("quadruple"))
	assert.ErrorIs(t, err, ErrInvalidThrow)
}

func TestNewHitMiss(t *testing.T) {
	hit, err := NewHit(MissSector, MultiplierTriple)
	require.NoError(t, err)
	assert.Equal(t, Hit{Sector: 0, Multiplier: MultiplierSingle, Points: 0}, hit)
}

func TestHitLabel(t *testing.T) {
	assert.Equal(t, "T20", Hit{Sector: 20, Multiplier: MultiplierTriple}.Label())
	assert.Equal(t, "D16", Hit{Sector: 16, Multiplier: MultiplierDouble}.Label())
	assert.Equal(t, "7", Hit{Sector: 7, Multiplier: MultiplierSingle}.Label())
	assert.Equal(t, "BULL", Hit{Sector: 25, Multiplier: MultiplierDouble}.Label())
	assert.Equal(t, "25", Hit{Sector: 25, Multiplier: MultiplierSingle}.Label())
	assert.Equal(t, "MISS", Hit{}.Label())
}

func TestGameStatePhase(t *testing.T) {
	g := &GameState{}
	assert.Equal(t, PhaseNotStarted, g.Phase())

	g.Started = true
	assert.Equal(t, PhaseInProgress, g.Phase())

	g.IsFinished = true
	assert.Equal(t, PhaseFinished, g.Phase())
}

func TestGameStateCloneIsIndependent(t *testing.T) {
	g := &GameState{
		ID:      "game-1",
		Players: []Player{{ID: "p1", Score: 501}},
		Throws:  []Throw{{ID: "t1", PlayerID: "p1", Points: 20, Timestamp: time.Now()}},
		Turns:   []Turn{{PlayerID: "p1", Throws: []Throw{{ID: "t1"}}}},
	}

	c := g.Clone()
	c.Players[0].Score = 1
	c.Throws[0].Points = 60
	c.Turns[0].Throws[0].ID = "changed"

	assert.Equal(t, 501, g.Players[0].Score)
	assert.Equal(t, 20, g.Throws[0].Points)
	assert.Equal(t, ThrowID("t1"), g.Turns[0].Throws[0].ID)
}

func TestGameStateLookups(t *testing.T) {
	g := &GameState{
		Players: []Player{{ID: "p1"}, {ID: "p2"}},
		Throws: []Throw{
			{ID: "t1", PlayerID: "p1"},
			{ID: "t2", PlayerID: "p2"},
			{ID: "t3", PlayerID: "p1"},
		},
		CurrentPlayerIndex: 1,
	}

	assert.Equal(t, PlayerID("p2"), g.CurrentPlayer().ID)
	assert.Equal(t, 0, g.PlayerIndex("p1"))
	assert.Equal(t, -1, g.PlayerIndex("nobody"))
	assert.Nil(t, g.GetPlayer("nobody"))
	assert.Equal(t, ThrowID("t3"), g.LastThrow().ID)
	assert.Len(t, g.ThrowsFor("p1"), 2)

	empty := &GameState{}
	assert.Nil(t, empty.CurrentPlayer())
	assert.Nil(t, empty.LastThrow())
}
