package engine

func (e *Engine) ownedProperty(r *Room, connID string, propertyID int) (*Player, *Property, Cell, error) {
	p, err := e.activePlayer(r, connID)
	if err != nil {
		return nil, nil, Cell{}, err
	}
	prop := r.property(propertyID)
	if prop == nil {
		return nil, nil, Cell{}, ErrUnknownProperty
	}
	if prop.Owner != p.ID {
		return nil, nil, Cell{}, ErrNotOwner
	}
	if prop.HasHotel {
		return nil, nil, Cell{}, ErrHotelBuilt
	}
	return p, prop, r.cell(prop.ID), nil
}

// BuyProperty sells an unowned city to the player standing on it.
func (e *Engine) BuyProperty(r *Room, connID string, propertyID int) ([]Event, error) {
	p, err := e.activePlayer(r, connID)
	if err != nil {
		return nil, err
	}
	prop := r.property(propertyID)
	if prop == nil {
		return nil, ErrUnknownProperty
	}
	if prop.Owner != "" {
		return nil, ErrPropertyOwned
	}
	if p.Balance < prop.Price {
		return nil, ErrInsufficientBalance
	}
	if p.Position != prop.ID {
		return nil, ErrNotOnProperty
	}

	done, err := e.transfer(r, p.ID, BankID, prop.Price, ReasonPurchase, mustHaveFunds)
	if err != nil {
		return nil, err
	}
	prop.Owner = p.ID
	return []Event{done, PropertyPurchased{PropertyID: prop.ID, PlayerID: p.ID, Price: prop.Price}}, nil
}

// BuildHouse adds one house, up to four.
func (e *Engine) BuildHouse(r *Room, connID string, propertyID int) ([]Event, error) {
	p, prop, c, err := e.ownedProperty(r, connID, propertyID)
	if err != nil {
		return nil, err
	}
	if prop.Houses >= MaxHouses {
		return nil, ErrMaxHouses
	}

	done, err := e.transfer(r, p.ID, BankID, c.Deed.HousePrice, ReasonBuild, mustHaveFunds)
	if err != nil {
		return nil, err
	}
	prop.Houses++
	return []Event{done, HouseBuilt{PropertyID: prop.ID, PlayerID: p.ID, Houses: prop.Houses}}, nil
}

// BuildHotel replaces four houses with a hotel.
func (e *Engine) BuildHotel(r *Room, connID string, propertyID int) ([]Event, error) {
	p, prop, c, err := e.ownedProperty(r, connID, propertyID)
	if err != nil {
		return nil, err
	}
	if prop.Houses < MaxHouses {
		return nil, ErrHousesRequired
	}

	done, err := e.transfer(r, p.ID, BankID, c.Deed.HousePrice, ReasonBuild, mustHaveFunds)
	if err != nil {
		return nil, err
	}
	prop.Houses = 0
	prop.HasHotel = true
	return []Event{done, HotelBuilt{PropertyID: prop.ID, PlayerID: p.ID}}, nil
}
