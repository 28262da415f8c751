package engine

// turnPlayer resolves connID to the player whose turn it is.
func (e *Engine) turnPlayer(r *Room, connID string) (*Player, error) {
	if !r.Started {
		return nil, ErrNotStarted
	}
	if r.WaitingForTurnOrder {
		return nil, ErrTurnOrderPending
	}
	p := r.playerByConn(connID)
	if p == nil || p != r.currentPlayer() {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// activePlayer resolves connID to any player of a running game.
func (e *Engine) activePlayer(r *Room, connID string) (*Player, error) {
	if !r.Started {
		return nil, ErrNotStarted
	}
	if r.WaitingForTurnOrder {
		return nil, ErrTurnOrderPending
	}
	p := r.playerByConn(connID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// RollDice moves the current player and applies the landing cell. The turn
// passes on unless the roll was a double and the player is still free.
func (e *Engine) RollDice(r *Room, connID string) ([]Event, error) {
	p, err := e.turnPlayer(r, connID)
	if err != nil {
		return nil, err
	}
	if p.InJail {
		return nil, ErrInJail
	}

	dice := e.rollPair()
	total := dice[0] + dice[1]
	from := p.Position
	p.Position = (from + total) % BoardSize
	r.DiceRoll = []int{dice[0], dice[1]}

	var events []Event
	passed := p.Position < from
	if passed {
		done, err := e.transfer(r, BankID, p.ID, PassStartBonus, ReasonPassStart, allowOverdraft)
		if err != nil {
			return nil, err
		}
		events = append(events, done)
	}

	effect, more, err := e.land(r, p, true)
	if err != nil {
		return nil, err
	}
	events = append(events, more...)

	doubles := dice[0] == dice[1]
	if !doubles || p.InJail {
		r.advanceTurn()
	}

	rolled := DiceRolled{
		PlayerID:           p.ID,
		Dice:               dice,
		Total:              total,
		IsDoubles:          doubles,
		From:               from,
		NewPosition:        p.Position,
		PassedStart:        passed,
		SpaceEffect:        effect,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		CurrentPlayerID:    r.currentPlayer().ID,
	}
	return append([]Event{rolled}, events...), nil
}

// land applies the effect of the cell p stands on. A chance cell draws a card
// only when drawChance is set, so a card that moves the player never chains
// into another draw.
func (e *Engine) land(r *Room, p *Player, drawChance bool) (*SpaceEffect, []Event, error) {
	c := r.cell(p.Position)
	effect := &SpaceEffect{Cell: c.ID, CellName: c.Name}

	switch c.Type {
	case CellStart:
		effect.Type = EffectStart
	case CellFree:
		effect.Type = EffectFree
	case CellJail:
		effect.Type = EffectVisitJail
	case CellStation:
		effect.Type = EffectStation
	case CellUtility:
		effect.Type = EffectUtility

	case CellGoToJail:
		effect.Type = EffectJail
		sendToJail(p)

	case CellTax:
		effect.Type = EffectTax
		effect.Amount = c.Amount
		if c.Amount > 0 {
			done, err := e.transfer(r, p.ID, BankID, c.Amount, ReasonTax, allowOverdraft)
			if err != nil {
				return nil, nil, err
			}
			return effect, []Event{done}, nil
		}

	case CellCity:
		return e.landOnCity(r, p, c, effect)

	case CellChance:
		effect.Type = EffectChance
		if !drawChance || len(e.content.ChanceCards) == 0 {
			return effect, nil, nil
		}
		card := e.content.ChanceCards[e.rng.Intn(len(e.content.ChanceCards))]
		effect.Card = &card
		events, err := e.resolveChance(r, p, card, effect)
		if err != nil {
			return nil, nil, err
		}
		return effect, events, nil

	default:
		effect.Type = EffectNone
	}
	return effect, nil, nil
}

func (e *Engine) landOnCity(r *Room, p *Player, c Cell, effect *SpaceEffect) (*SpaceEffect, []Event, error) {
	prop := r.property(c.ID)
	if prop == nil {
		effect.Type = EffectNone
		return effect, nil, nil
	}
	view := *prop
	effect.Property = &view

	switch prop.Owner {
	case "":
		effect.Type = EffectProperty
		effect.CanBuy = true
		offer := view
		return effect, []Event{PropertyOffer{ConnectionID: p.ConnectionID, PlayerID: p.ID, Property: &offer}}, nil
	case p.ID:
		effect.Type = EffectOwnProperty
		return effect, nil, nil
	}

	owner := r.playerByID(prop.Owner)
	effect.Type = EffectRent
	effect.Amount = c.rent(prop)
	effect.OwnerID = prop.Owner
	if owner != nil {
		effect.OwnerName = owner.Name
	}
	if owner == nil || effect.Amount <= 0 {
		return effect, nil, nil
	}
	done, err := e.transfer(r, p.ID, owner.ID, effect.Amount, ReasonRent, allowOverdraft)
	if err != nil {
		return nil, nil, err
	}
	return effect, []Event{done}, nil
}

func sendToJail(p *Player) {
	p.InJail = true
	p.JailTurns = JailTurns
	p.Position = JailPosition
}

func release(p *Player) {
	p.InJail = false
	p.JailTurns = 0
}

// EndTurn passes the turn on. A jailed player serves one jail turn.
func (e *Engine) EndTurn(r *Room, connID string) ([]Event, error) {
	p, err := e.turnPlayer(r, connID)
	if err != nil {
		return nil, err
	}

	released := false
	if p.InJail {
		p.JailTurns--
		if p.JailTurns <= 0 {
			release(p)
			released = true
		}
	}
	r.advanceTurn()

	return []Event{TurnEnded{
		PlayerID:           p.ID,
		ReleasedFromJail:   released,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		CurrentPlayerID:    r.currentPlayer().ID,
	}}, nil
}

// PayJail releases the caller for the jail fee.
func (e *Engine) PayJail(r *Room, connID string) ([]Event, error) {
	p, err := e.activePlayer(r, connID)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	done, err := e.transfer(r, p.ID, BankID, JailFee, ReasonJailFee, mustHaveFunds)
	if err != nil {
		return nil, err
	}
	release(p)
	return []Event{done, JailPaymentAccepted{PlayerID: p.ID, Fee: JailFee}}, nil
}

// UseJailCard releases the caller by spending a get out of jail card.
func (e *Engine) UseJailCard(r *Room, connID string) ([]Event, error) {
	p, err := e.activePlayer(r, connID)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	if !p.HasGetOutOfJailCard {
		return nil, ErrNoJailCard
	}

	for i, c := range p.ChanceCards {
		if c.Kind == ChanceGetOutOfJail {
			p.ChanceCards = append(p.ChanceCards[:i], p.ChanceCards[i+1:]...)
			break
		}
	}
	p.HasGetOutOfJailCard = false
	for _, c := range p.ChanceCards {
		if c.Kind == ChanceGetOutOfJail {
			p.HasGetOutOfJailCard = true
		}
	}
	release(p)
	return []Event{JailCardUsed{PlayerID: p.ID}}, nil
}
