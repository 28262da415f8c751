// Package session tracks which room and role each connection is bound to.
package session

import "sync"

type Role string

const (
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// Binding ties a connection to a room. PlayerID is empty for the host.
type Binding struct {
	RoomCode string
	PlayerID string
	Role     Role
}

type Directory struct {
	mu     sync.RWMutex
	byConn map[string]Binding
}

func New() *Directory {
	return &Directory{byConn: make(map[string]Binding)}
}

// Bind replaces any previous binding of connID.
func (d *Directory) Bind(connID string, b Binding) {
	d.mu.Lock()
	d.byConn[connID] = b
	d.mu.Unlock()
}

func (d *Directory) Lookup(connID string) (Binding, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.byConn[connID]
	return b, ok
}

func (d *Directory) Unbind(connID string) (Binding, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.byConn[connID]
	delete(d.byConn, connID)
	return b, ok
}

// UnbindRoom drops every binding to code and returns the connections that
// were bound.
func (d *Directory) UnbindRoom(code string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var conns []string
	for conn, b := range d.byConn {
		if b.RoomCode == code {
			conns = append(conns, conn)
			delete(d.byConn, conn)
		}
	}
	return conns
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byConn)
}
