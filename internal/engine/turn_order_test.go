package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedForOrder(t *testing.T, eng *Engine, names ...string) *Room {
	t.Helper()
	r := newPlayingRoom(t, eng, names...)
	r.WaitingForTurnOrder = true
	return r
}

func TestRollForOrder_TiesKeepJoinOrder(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := startedForOrder(t, eng, "Alice", "Bob", "Carol")

	rng.dice(4, 5) // Alice 9
	events, err := eng.RollForOrder(r, connOf("Alice"))
	require.NoError(t, err)
	result, ok := FindEvent[TurnOrderRollResult](events)
	require.True(t, ok)
	assert.Equal(t, [2]int{4, 5}, result.Dice)
	assert.Equal(t, 9, result.Total)
	assert.False(t, ContainsEvent(events, "turn-order-finalized"))

	rng.dice(3, 4) // Bob 7
	_, err = eng.RollForOrder(r, connOf("Bob"))
	require.NoError(t, err)

	rng.dice(6, 3) // Carol 9
	events, err = eng.RollForOrder(r, connOf("Carol"))
	require.NoError(t, err)

	final, ok := FindEvent[TurnOrderFinalized](events)
	require.True(t, ok)
	assert.Equal(t, "p1", final.CurrentPlayerID)

	names := []string{r.Players[0].Name, r.Players[1].Name, r.Players[2].Name}
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, names)
	for i, p := range r.Players {
		assert.Equal(t, i+1, p.TurnOrder)
	}
	assert.Equal(t, 1, r.Players[0].TurnOrder)
	assert.Equal(t, 0, r.CurrentPlayerIndex)
	assert.False(t, r.WaitingForTurnOrder)
	assert.Equal(t, PhasePlaying, DerivePhase(r))
}

func TestRollForOrder_Rejections(t *testing.T) {
	eng, rng := newTestEngine(t)
	r := startedForOrder(t, eng, "Alice", "Bob")

	rng.dice(1, 2)
	_, err := eng.RollForOrder(r, connOf("Alice"))
	require.NoError(t, err)

	_, err = eng.RollForOrder(r, connOf("Alice"))
	require.ErrorIs(t, err, ErrAlreadyRolled)
	assert.Equal(t, []string{"p1"}, r.PlayersRolledForOrder)

	_, err = eng.RollForOrder(r, hostConn)
	require.ErrorIs(t, err, ErrPlayerNotFound)

	r.WaitingForTurnOrder = false
	_, err = eng.RollForOrder(r, connOf("Bob"))
	require.ErrorIs(t, err, ErrNoTurnOrderPhase)

	r.Started = false
	_, err = eng.RollForOrder(r, connOf("Bob"))
	require.ErrorIs(t, err, ErrNotStarted)
}
