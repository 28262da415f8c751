package engine

import "fmt"

func (e *Engine) deedCard(id int) (DeedCard, bool) {
	for _, d := range e.content.DeedCards {
		if d.ID == id {
			return d, true
		}
	}
	return DeedCard{}, false
}

func indexOfDeed(cards []DeedCard, id int) int {
	for i, d := range cards {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// RequestDeed queues a buy or sell offer for the host to approve. Nothing
// changes hands until then.
func (e *Engine) RequestDeed(r *Room, connID string, kind DeedRequestType, deedCardID int) ([]Event, error) {
	p := r.playerByConn(connID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	card, ok := e.deedCard(deedCardID)
	if !ok {
		return nil, fmt.Errorf("deed card %d: %w", deedCardID, ErrInvalidRequest)
	}
	switch kind {
	case DeedBuy:
		if indexOfDeed(r.AvailableDeeds, card.ID) < 0 {
			return nil, ErrDeedUnavailable
		}
	case DeedSell:
		if !p.hasDeed(card.ID) {
			return nil, ErrNotOwner
		}
	default:
		return nil, fmt.Errorf("deed request type %q: %w", kind, ErrInvalidRequest)
	}

	req := DeedRequest{
		ID:         e.newID(),
		Type:       kind,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		DeedCard:   card,
		Timestamp:  e.now(),
	}
	r.DeedRequests = append(r.DeedRequests, req)
	return []Event{DeedRequestCreated{Request: req}}, nil
}

// ConfirmDeedRequest removes the request from the queue and, when approved
// and still valid, applies it. A request that no longer holds is dropped
// without changing anything.
func (e *Engine) ConfirmDeedRequest(r *Room, connID, requestID string, approved bool) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	idx := -1
	for i, req := range r.DeedRequests {
		if req.ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRequestNotFound
	}
	req := r.DeedRequests[idx]
	r.DeedRequests = append(r.DeedRequests[:idx], r.DeedRequests[idx+1:]...)

	resolved := DeedRequestResolved{RequestID: req.ID, Approved: approved}
	if !approved {
		return []Event{resolved}, nil
	}

	applied, err := e.applyDeedRequest(r, req)
	if err != nil {
		resolved.Reason = err.Error()
		return []Event{resolved}, nil
	}
	resolved.Applied = true
	return append([]Event{resolved}, applied...), nil
}

func (e *Engine) applyDeedRequest(r *Room, req DeedRequest) ([]Event, error) {
	p := r.playerByID(req.PlayerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	card := req.DeedCard

	switch req.Type {
	case DeedBuy:
		i := indexOfDeed(r.AvailableDeeds, card.ID)
		if i < 0 {
			return nil, ErrDeedUnavailable
		}
		done, err := e.transfer(r, p.ID, BankID, card.Price, ReasonDeedBuy, mustHaveFunds)
		if err != nil {
			return nil, err
		}
		r.AvailableDeeds = append(r.AvailableDeeds[:i], r.AvailableDeeds[i+1:]...)
		p.DeedCards = append(p.DeedCards, card)
		return []Event{done, e.logDeed(r, DeedBuy, p, card, card.Price)}, nil

	case DeedSell:
		i := indexOfDeed(p.DeedCards, card.ID)
		if i < 0 {
			return nil, ErrNotOwner
		}
		done, err := e.transfer(r, BankID, p.ID, card.Price, ReasonDeedSell, mustHaveFunds)
		if err != nil {
			return nil, err
		}
		p.DeedCards = append(p.DeedCards[:i], p.DeedCards[i+1:]...)
		r.AvailableDeeds = append(r.AvailableDeeds, card)
		return []Event{done, e.logDeed(r, DeedSell, p, card, card.Price)}, nil
	}
	return nil, ErrInvalidRequest
}

// BankGiveDeed hands an available deed card to a player for free.
func (e *Engine) BankGiveDeed(r *Room, connID, targetID string, deedCardID int) ([]Event, error) {
	if !r.isHost(connID) {
		return nil, ErrNotAuthorized
	}
	p := r.playerByID(targetID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	i := indexOfDeed(r.AvailableDeeds, deedCardID)
	if i < 0 {
		return nil, ErrDeedUnavailable
	}
	card := r.AvailableDeeds[i]
	r.AvailableDeeds = append(r.AvailableDeeds[:i], r.AvailableDeeds[i+1:]...)
	p.DeedCards = append(p.DeedCards, card)
	return []Event{e.logDeed(r, DeedGive, p, card, 0)}, nil
}

func (e *Engine) logDeed(r *Room, kind DeedRequestType, p *Player, card DeedCard, price int) DeedTransferred {
	dt := DeedTransaction{
		Type:       kind,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		DeedCard:   card,
		Price:      price,
		Timestamp:  e.now(),
	}
	r.DeedTransactions = append(r.DeedTransactions, dt)
	return DeedTransferred{DeedTransaction: dt}
}
