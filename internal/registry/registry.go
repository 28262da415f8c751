// Package registry stores live rooms by code.
package registry

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6
	maxAttempts = 16
)

var ErrCodesExhausted = errors.New("could not find a free room code")

// Registry maps room codes to rooms. Map access is locked; the rooms
// themselves are only touched by the hub goroutine.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*engine.Room
	generate func() (string, error)
}

func New() *Registry {
	return &Registry{
		rooms:    make(map[string]*engine.Room),
		generate: GenerateCode,
	}
}

// GenerateCode returns a random 6 character uppercase alphanumeric code.
func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}

// Normalize makes user input comparable to stored codes.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create picks an unused code, builds the room with it and stores it.
func (r *Registry) Create(build func(code string) *engine.Room) (*engine.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range maxAttempts {
		code, err := r.generate()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := r.rooms[code]; taken {
			continue
		}
		room := build(code)
		r.rooms[code] = room
		return room, nil
	}
	return nil, ErrCodesExhausted
}

func (r *Registry) Get(code string) (*engine.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[Normalize(code)]
	if !ok {
		return nil, engine.ErrRoomNotFound
	}
	return room, nil
}

func (r *Registry) Delete(code string) {
	r.mu.Lock()
	delete(r.rooms, Normalize(code))
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Rooms returns the live rooms at the time of the call.
func (r *Registry) Rooms() []*engine.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*engine.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out
}
