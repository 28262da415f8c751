package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// scriptedRand returns queued values from Intn and never reorders on Shuffle,
// so dice, card draws and deals are fully predictable.
type scriptedRand struct {
	t    *testing.T
	next []int
}

func (s *scriptedRand) Intn(n int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.next, "rand script exhausted")
	v := s.next[0]
	s.next = s.next[1:]
	require.Less(s.t, v, n, "scripted value out of range")
	return v
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

// dice queues die faces (1..6).
func (s *scriptedRand) dice(faces ...int) {
	for _, f := range faces {
		s.next = append(s.next, f-1)
	}
}

func (s *scriptedRand) ints(vals ...int) {
	s.next = append(s.next, vals...)
}

func newTestEngine(t *testing.T) (*Engine, *scriptedRand) {
	t.Helper()
	rng := &scriptedRand{t: t}
	n := 0
	eng := New(Options{
		Rand: rng,
		Now:  func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("p%d", n)
		},
	})
	return eng, rng
}

const hostConn = "conn-host"

func connOf(name string) string { return "conn-" + name }

// newLobbyRoom creates a room and joins one player per name, in order. With
// the test engine the players get ids p1, p2, ...
func newLobbyRoom(t *testing.T, eng *Engine, names ...string) *Room {
	t.Helper()
	r := eng.NewRoom("ABC123", hostConn, "Banker", DefaultSettings())
	for _, name := range names {
		_, _, err := eng.Join(r, connOf(name), name)
		require.NoError(t, err)
	}
	return r
}

// newPlayingRoom returns a room in normal play with the first player to move,
// skipping the random deal and turn order phase.
func newPlayingRoom(t *testing.T, eng *Engine, names ...string) *Room {
	t.Helper()
	r := newLobbyRoom(t, eng, names...)
	r.Started = true
	r.Properties = seedProperties(r.Board)
	r.WaitingForTurnOrder = false
	r.CurrentPlayerIndex = 0
	return r
}

func transactionsOf(events []Event) []Transaction {
	var txs []Transaction
	for _, ev := range events {
		if done, ok := ev.(TransactionCompleted); ok {
			txs = append(txs, done.Transaction)
		}
	}
	return txs
}
