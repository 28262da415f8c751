// Package group fans encoded messages out to connections, one broadcast group
// per room. It is owned by the hub goroutine and not safe for concurrent use.
package group

// Groups holds every connected client's outbox and the room each one is
// subscribed to.
type Groups struct {
	outboxes map[string]chan []byte
	roomOf   map[string]string
	members  map[string]map[string]struct{}
}

func New() *Groups {
	return &Groups{
		outboxes: make(map[string]chan []byte),
		roomOf:   make(map[string]string),
		members:  make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection's outbox. The group closes it on Detach or
// when the client falls behind.
func (g *Groups) Attach(connID string, out chan []byte) {
	g.outboxes[connID] = out
}

// Detach forgets the connection and closes its outbox. Safe to call twice.
func (g *Groups) Detach(connID string) {
	g.Unsubscribe(connID)
	if ch, ok := g.outboxes[connID]; ok {
		close(ch)
		delete(g.outboxes, connID)
	}
}

// Subscribe moves connID into the group for room.
func (g *Groups) Subscribe(room, connID string) {
	if _, ok := g.outboxes[connID]; !ok {
		return
	}
	g.Unsubscribe(connID)
	set := g.members[room]
	if set == nil {
		set = make(map[string]struct{})
		g.members[room] = set
	}
	set[connID] = struct{}{}
	g.roomOf[connID] = room
}

func (g *Groups) Unsubscribe(connID string) {
	room, ok := g.roomOf[connID]
	if !ok {
		return
	}
	delete(g.roomOf, connID)
	delete(g.members[room], connID)
	if len(g.members[room]) == 0 {
		delete(g.members, room)
	}
}

// Send queues payload for one connection. A client whose outbox is full is
// dropped; Send reports whether the payload was queued.
func (g *Groups) Send(connID string, payload []byte) bool {
	ch, ok := g.outboxes[connID]
	if !ok {
		return false
	}
	select {
	case ch <- payload:
		return true
	default:
		g.Detach(connID)
		return false
	}
}

// Broadcast sends payload to everyone in room and returns the connections
// that were dropped for being slow.
func (g *Groups) Broadcast(room string, payload []byte) (dropped []string) {
	for connID := range g.members[room] {
		if !g.Send(connID, payload) {
			dropped = append(dropped, connID)
		}
	}
	return dropped
}

// CloseRoom unsubscribes every member of room. Connections stay attached.
func (g *Groups) CloseRoom(room string) {
	for connID := range g.members[room] {
		delete(g.roomOf, connID)
	}
	delete(g.members, room)
}

// Members lists the connections subscribed to room. Test-only: the hub
// never needs the list.
func (g *Groups) Members(room string) []string {
	out := make([]string, 0, len(g.members[room]))
	for connID := range g.members[room] {
		out = append(out, connID)
	}
	return out
}

func (g *Groups) Connected() int { return len(g.outboxes) }

// Shutdown closes every outbox.
func (g *Groups) Shutdown() {
	for connID, ch := range g.outboxes {
		close(ch)
		delete(g.outboxes, connID)
	}
	clear(g.roomOf)
	clear(g.members)
}
