package engine

import (
	"slices"
)

// RollForOrder records the caller's turn order roll. The last roll sorts the
// players by roll, highest first, and opens normal play.
func (e *Engine) RollForOrder(r *Room, connID string) ([]Event, error) {
	if !r.Started {
		return nil, ErrNotStarted
	}
	if !r.WaitingForTurnOrder {
		return nil, ErrNoTurnOrderPhase
	}
	p := r.playerByConn(connID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if slices.Contains(r.PlayersRolledForOrder, p.ID) {
		return nil, ErrAlreadyRolled
	}

	dice := e.rollPair()
	p.TurnOrderRoll = dice[0] + dice[1]
	r.PlayersRolledForOrder = append(r.PlayersRolledForOrder, p.ID)

	events := []Event{TurnOrderRollResult{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Dice:       dice,
		Total:      p.TurnOrderRoll,
	}}
	if len(r.PlayersRolledForOrder) == len(r.Players) {
		events = append(events, finalizeTurnOrder(r))
	}
	return events, nil
}

// finalizeTurnOrder sorts players descending by roll. The sort is stable so
// tied players keep their join order.
func finalizeTurnOrder(r *Room) TurnOrderFinalized {
	slices.SortStableFunc(r.Players, func(a, b *Player) int {
		return b.TurnOrderRoll - a.TurnOrderRoll
	})

	order := make([]OrderEntry, len(r.Players))
	for i, p := range r.Players {
		p.TurnOrder = i + 1
		order[i] = OrderEntry{PlayerID: p.ID, PlayerName: p.Name, Roll: p.TurnOrderRoll, TurnOrder: p.TurnOrder}
	}
	r.CurrentPlayerIndex = 0
	r.WaitingForTurnOrder = false

	return TurnOrderFinalized{Order: order, CurrentPlayerID: r.Players[0].ID}
}
