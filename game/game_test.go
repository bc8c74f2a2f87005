package game

import (
	"fmt"
	"testing"

	"github.com/andyzhou/hideseek/define"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnN(t *testing.T, g *Game, n int) []*Player {
	t.Helper()
	out := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		p, err := g.SpawnPlayer()
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestSpawnAssignsUniqueIDsAndOneSeeker(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	players := spawnN(t, g, 12)

	ids := map[uint8]bool{}
	seekers := 0
	for i, p := range players {
		assert.False(t, ids[p.ID], "duplicate id %d", p.ID)
		ids[p.ID] = true
		assert.Equal(t, uint8(i), p.ID)
		assert.Equal(t, fmt.Sprintf("Player %d", i+1), p.Name)
		if p.Role == RoleSeeker {
			seekers++
		}
		assert.False(t, p.IsReady)
		assert.False(t, p.IsCaught)
	}
	assert.Equal(t, 1, seekers)
	assert.Equal(t, RoleSeeker, players[0].Role)
	assert.Equal(t, 11, g.HiderCount)
}

func TestSpawnPlacesPlayerInsideInsetWithNormalizedColor(t *testing.T) {
	g := NewGame(7, define.RoundTime)
	extent := define.ArenaMax.Sub(define.ArenaMin)
	lo := define.ArenaMin.Add(extent.Mul(0.1))
	hi := define.ArenaMin.Add(extent.Mul(0.9))
	for _, p := range spawnN(t, g, 50) {
		for axis := 0; axis < 2; axis++ {
			assert.GreaterOrEqual(t, p.Position[axis], lo[axis])
			assert.LessOrEqual(t, p.Position[axis], hi[axis])
		}
		assert.InDelta(t, 1.0, p.Color.Len(), 1e-5)
	}
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	a := spawnN(t, NewGame(42, define.RoundTime), 4)
	b := spawnN(t, NewGame(42, define.RoundTime), 4)
	for i := range a {
		assert.Equal(t, a[i].Position, b[i].Position)
		assert.Equal(t, a[i].Color, b[i].Color)
	}
}

func TestRemovePlayerKeepsOtherReferences(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	players := spawnN(t, g, 6)

	g.RemovePlayer(players[1])
	g.RemovePlayer(players[2])
	g.RemovePlayer(players[4])

	left := g.Players()
	require.Len(t, left, 3)
	assert.Same(t, players[0], left[0])
	assert.Same(t, players[3], left[1])
	assert.Same(t, players[5], left[2])
	assert.Same(t, players[3], g.PlayerByID(3))
	assert.Nil(t, g.PlayerByID(1))

	//surviving references are still the live players
	players[5].Position[0] = 1.5
	assert.Equal(t, float32(1.5), g.PlayerByID(5).Position[0])
}

func TestRemovePlayerNotPresentPanics(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	p := spawnN(t, g, 1)[0]
	g.RemovePlayer(p)

	assert.Panics(t, func() { g.RemovePlayer(p) })
	assert.Panics(t, func() { g.RemovePlayer(&Player{}) })
}

func TestIDsAreNotReusedWhilePresent(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	first := spawnN(t, g, 2)
	g.RemovePlayer(first[0])

	p, err := g.SpawnPlayer()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), p.ID)
	assert.Equal(t, "Player 3", p.Name)
}

func TestIDWrapSkipsPresentPlayers(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	keep := spawnN(t, g, 1)[0]
	g.currentPlayerID = 0

	p, err := g.SpawnPlayer()
	require.NoError(t, err)
	assert.NotEqual(t, keep.ID, p.ID)
}

func TestSpawnFailsWhenFull(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	spawnN(t, g, define.MaxPlayers)

	_, err := g.SpawnPlayer()
	assert.ErrorIs(t, err, define.ErrSessionFull)
}

func TestRemoveRecountsHiders(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	players := spawnN(t, g, 4)
	players[2].IsCaught = true
	g.CaughtHiderCount = 1

	g.RemovePlayer(players[2])
	assert.Equal(t, 2, g.HiderCount)
	assert.Equal(t, 0, g.CaughtHiderCount)

	g.RemovePlayer(players[0])
	assert.Equal(t, 2, g.HiderCount, "seeker removal leaves hiders alone")
}

func TestSpawnAfterSeekerLeftKeepsCountRule(t *testing.T) {
	g := NewGame(define.SpawnSeed, define.RoundTime)
	players := spawnN(t, g, 3)
	g.RemovePlayer(players[0])
	require.Equal(t, 2, g.HiderCount)

	p, err := g.SpawnPlayer()
	require.NoError(t, err)
	assert.Equal(t, RoleHider, p.Role, "seeker is never reassigned")
	assert.Equal(t, 2, g.HiderCount, "spawn counts every player but one")

	hiders := 0
	for _, v := range g.Players() {
		if v.Role == RoleHider {
			hiders++
		}
	}
	assert.Equal(t, 3, hiders)
}

func TestGameStateHelpers(t *testing.T) {
	assert.False(t, BeforeStart.IsOver())
	assert.False(t, Playing.IsOver())
	assert.True(t, SeekerWin.IsOver())
	assert.True(t, HiderWin.IsOver())
	assert.False(t, GameState(9).Valid())
	assert.Panics(t, func() { GameState(9).IsOver() })
	assert.False(t, Role(2).Valid())
	assert.Equal(t, "seeker", RoleSeeker.String())
}
