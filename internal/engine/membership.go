package engine

import (
	"fmt"
	"time"
)

// Join adds a new player bound to connID.
func (e *Engine) Join(r *Room, connID, name string) (*Player, []Event, error) {
	name = NormalizeName(name)
	if name == "" || connID == "" {
		return nil, nil, fmt.Errorf("player name required: %w", ErrInvalidRequest)
	}
	if r.isHost(connID) || r.playerByConn(connID) != nil {
		return nil, nil, fmt.Errorf("connection already in the room: %w", ErrInvalidRequest)
	}
	if r.Started {
		return nil, nil, ErrGameAlreadyStarted
	}
	if len(r.Players) >= r.PlayerCount {
		return nil, nil, ErrRoomFull
	}
	if r.playerByName(name) != nil {
		return nil, nil, ErrNameTaken
	}

	p := &Player{
		ID:           e.newID(),
		ConnectionID: connID,
		Name:         name,
		Balance:      r.Settings.StartingMoney,
		DeedCards:    []DeedCard{},
		ChanceCards:  []ChanceCard{},
	}
	r.Players = append(r.Players, p)
	return p, []Event{PlayerJoined{Player: p.clone()}}, nil
}

// RejoinHost moves host rights to connID.
func (e *Engine) RejoinHost(r *Room, connID string) ([]Event, error) {
	if connID == "" {
		return nil, ErrInvalidRequest
	}
	if r.playerByConn(connID) != nil {
		return nil, fmt.Errorf("connection is bound to a player: %w", ErrInvalidRequest)
	}
	r.HostConnectionID = connID
	r.HostConnected = true
	r.HostDisconnectedAt = time.Time{}
	return []Event{HostReconnected{HostName: r.HostName}}, nil
}

// RejoinPlayer rebinds the player called name to connID and returns the
// connection id it was bound to before.
func (e *Engine) RejoinPlayer(r *Room, connID, name string) (*Player, string, []Event, error) {
	name = NormalizeName(name)
	if name == "" || connID == "" {
		return nil, "", nil, fmt.Errorf("player name required: %w", ErrInvalidRequest)
	}
	p := r.playerByName(name)
	if p == nil {
		return nil, "", nil, ErrPlayerNotFound
	}
	if other := r.playerByConn(connID); r.isHost(connID) || (other != nil && other != p) {
		return nil, "", nil, fmt.Errorf("connection already in the room: %w", ErrInvalidRequest)
	}
	old := p.ConnectionID
	p.ConnectionID = connID
	p.Disconnected = false
	p.DisconnectedAt = nil
	return p, old, []Event{PlayerReconnected{PlayerID: p.ID, PlayerName: p.Name}}, nil
}

// Disconnect handles connID going away. Before the game starts players are
// removed and a departing host closes the room; afterwards everything is kept
// for a later rejoin. closed reports that the room must be deleted.
func (e *Engine) Disconnect(r *Room, connID string) (events []Event, closed bool) {
	if connID == "" {
		return nil, false
	}
	for i, p := range r.Players {
		if p.ConnectionID != connID {
			continue
		}
		if !r.Started {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			events = append(events, PlayerLeft{PlayerID: p.ID, PlayerName: p.Name})
		} else {
			at := e.now()
			p.Disconnected = true
			p.DisconnectedAt = &at
			events = append(events, PlayerDisconnected{PlayerID: p.ID, PlayerName: p.Name, At: at})
		}
		break
	}

	if r.isHost(connID) {
		if !r.Started {
			return append(events, RoomClosed{Reason: "host disconnected"}), true
		}
		r.HostConnected = false
		r.HostDisconnectedAt = e.now()
	}
	return events, false
}
