package engine

// resolveChance applies card to p and fills in effect.
func (e *Engine) resolveChance(r *Room, p *Player, card ChanceCard, effect *SpaceEffect) ([]Event, error) {
	var events []Event
	pay := func(fromID, toID string, amount int) error {
		if amount <= 0 {
			return nil
		}
		done, err := e.transfer(r, fromID, toID, amount, ReasonChance, allowOverdraft)
		if err != nil {
			return err
		}
		events = append(events, done)
		return nil
	}

	switch card.Kind {
	case ChanceMoney:
		effect.Amount = card.Amount
		var err error
		if card.Amount > 0 {
			err = pay(BankID, p.ID, card.Amount)
		} else {
			err = pay(p.ID, BankID, -card.Amount)
		}
		if err != nil {
			return nil, err
		}

	case ChanceMove:
		from := p.Position
		p.Position = ((card.Position % BoardSize) + BoardSize) % BoardSize
		if p.Position < from {
			done, err := e.transfer(r, BankID, p.ID, PassStartBonus, ReasonPassStart, allowOverdraft)
			if err != nil {
				return nil, err
			}
			events = append(events, done)
		}
		then, more, err := e.land(r, p, false)
		if err != nil {
			return nil, err
		}
		effect.Then = then
		events = append(events, more...)

	case ChanceJail:
		sendToJail(p)

	case ChanceGetOutOfJail:
		p.HasGetOutOfJailCard = true
		p.ChanceCards = append(p.ChanceCards, card)

	case ChanceBirthday:
		collected := 0
		for _, other := range r.Players {
			if other == p {
				continue
			}
			if err := pay(other.ID, p.ID, card.Amount); err != nil {
				return nil, err
			}
			collected += card.Amount
		}
		effect.Amount = collected

	case ChanceRepair:
		cost := 0
		for _, prop := range r.Properties {
			if prop.Owner != p.ID {
				continue
			}
			if prop.HasHotel {
				cost += card.HotelAmount
			} else {
				cost += prop.Houses * card.Amount
			}
		}
		effect.Amount = cost
		if err := pay(p.ID, BankID, cost); err != nil {
			return nil, err
		}
	}
	return events, nil
}
