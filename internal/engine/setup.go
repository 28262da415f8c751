package engine

import (
	"fmt"
	"slices"
)

// UpdateColor gives color to the target player, taking it away from whoever
// held it. An empty color unassigns.
func (e *Engine) UpdateColor(r *Room, connID, targetID, color string) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	target := r.playerByID(targetID)
	if target == nil {
		return nil, ErrPlayerNotFound
	}
	if color != "" && !slices.Contains(e.content.Palette, color) {
		return nil, fmt.Errorf("%q: %w", color, ErrUnknownColor)
	}

	var cleared []string
	if color != "" {
		for _, p := range r.Players {
			if p != target && p.Color == color {
				p.Color = ""
				cleared = append(cleared, p.ID)
			}
		}
	}
	target.Color = color
	return []Event{PlayerColorUpdated{PlayerID: target.ID, Color: color, Cleared: cleared}}, nil
}

// UpdateSettings replaces the room settings and resets every balance to the
// new starting money.
func (e *Engine) UpdateSettings(r *Room, connID string, s Settings) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	if r.Started {
		return nil, ErrGameAlreadyStarted
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r.Settings = s
	balances := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		p.Balance = s.StartingMoney
		balances[p.ID] = p.Balance
	}
	return []Event{SettingsUpdated{Settings: s, Balances: balances}}, nil
}

// StartGame locks the room, deals colors, deed cards and properties and opens
// the turn order phase.
func (e *Engine) StartGame(r *Room, connID string) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	if r.Started {
		return nil, ErrGameAlreadyStarted
	}
	if len(r.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	e.assignColors(r)

	deck := slices.Clone(e.content.DeedCards)
	e.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	for _, p := range r.Players {
		n := min(r.Settings.DeedCardsPerPlayer, len(deck))
		p.DeedCards = append(p.DeedCards, deck[:n]...)
		deck = deck[n:]
	}
	r.AvailableDeeds = deck

	r.Properties = seedProperties(r.Board)
	if r.Settings.StartingProperty {
		e.grantStartingProperties(r)
	}

	r.Started = true
	r.WaitingForTurnOrder = true
	r.PlayersRolledForOrder = []string{}
	r.CurrentPlayerIndex = 0

	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return []Event{
		RoomStarted{Room: r.Clone()},
		TurnOrderRollStarted{Players: ids},
	}, nil
}

func (e *Engine) assignColors(r *Room) {
	free := slices.DeleteFunc(slices.Clone(e.content.Palette), func(c string) bool {
		return slices.ContainsFunc(r.Players, func(p *Player) bool { return p.Color == c })
	})
	for _, p := range r.Players {
		if p.Color != "" || len(free) == 0 {
			continue
		}
		i := e.rng.Intn(len(free))
		p.Color = free[i]
		free = slices.Delete(free, i, i+1)
	}
}

func seedProperties(board []Cell) []*Property {
	props := []*Property{}
	for _, c := range board {
		if c.Type != CellCity || c.Deed == nil {
			continue
		}
		props = append(props, &Property{ID: c.ID, Name: c.Name, Price: c.Deed.Price})
	}
	return props
}

func (e *Engine) grantStartingProperties(r *Room) {
	for _, p := range r.Players {
		var unowned []*Property
		for _, prop := range r.Properties {
			if prop.Owner == "" {
				unowned = append(unowned, prop)
			}
		}
		if len(unowned) == 0 {
			return
		}
		unowned[e.rng.Intn(len(unowned))].Owner = p.ID
	}
}
