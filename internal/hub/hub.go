// Package hub is the event gateway. A single goroutine receives every client
// intent, resolves who sent it, runs it through the engine and fans the
// resulting events out to the room's broadcast group.
package hub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
	"github.com/DoyleJ11/monopoly-backend/internal/group"
	"github.com/DoyleJ11/monopoly-backend/internal/registry"
	"github.com/DoyleJ11/monopoly-backend/internal/session"
	"github.com/DoyleJ11/monopoly-backend/internal/types"
	pt "github.com/DoyleJ11/monopoly-backend/pkg/types"
)

var ErrClosed = errors.New("hub closed")

type Msg interface{ isHubMsg() }

// Connect registers a new transport connection. The hub owns Outbox from now
// on and closes it when the connection is dropped.
type Connect struct {
	ConnID string
	Outbox chan []byte
}

type Disconnect struct{ ConnID string }

type FromClient struct {
	ConnID string
	Msg    types.ClientMessage
}

// GetRoom replies with a copy of the room, or nil.
type GetRoom struct {
	Code  string
	Reply chan *engine.Room
}

// Sweep closes rooms abandoned as of Now.
type Sweep struct{ Now time.Time }

// GetState is for tests: reflect internal counts without data races.
type GetState struct {
	Reply chan View
}

type Shutdown struct{}

func (Connect) isHubMsg()    {}
func (Disconnect) isHubMsg() {}
func (FromClient) isHubMsg() {}
func (GetRoom) isHubMsg()    {}
func (Sweep) isHubMsg()      {}
func (GetState) isHubMsg()   {}
func (Shutdown) isHubMsg()   {}

type View struct {
	Rooms    int
	Conns    int
	Bindings int
}

type Options struct {
	Engine   *engine.Engine
	Registry *registry.Registry
	Sessions *session.Directory
	Logger   *zap.Logger

	// Defaults are the settings a room is created with before the host's
	// overrides.
	Defaults engine.Settings

	// IdleTTL is how long a room with nobody connected survives. Zero keeps
	// rooms forever.
	IdleTTL      time.Duration
	ReapInterval time.Duration
	InboxSize    int
}

type Hub struct {
	inbox    chan Msg
	eng      *engine.Engine
	rooms    *registry.Registry
	sessions *session.Directory
	groups   *group.Groups
	log      *zap.Logger
	defaults engine.Settings
	idleTTL  time.Duration
	reap     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(parent context.Context, opts Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if opts.Engine == nil {
		opts.Engine = engine.New(engine.Options{})
	}
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Sessions == nil {
		opts.Sessions = session.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Defaults == (engine.Settings{}) {
		opts.Defaults = engine.DefaultSettings()
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = 256
	}

	h := &Hub{
		inbox:    make(chan Msg, opts.InboxSize),
		eng:      opts.Engine,
		rooms:    opts.Registry,
		sessions: opts.Sessions,
		groups:   group.New(),
		log:      opts.Logger,
		defaults: opts.Defaults,
		idleTTL:  opts.IdleTTL,
		reap:     opts.ReapInterval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

// Send hands m to the hub, giving up when ctx ends or the hub has stopped.
func (h *Hub) Send(ctx context.Context, m Msg) error {
	select {
	case h.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.ctx.Done():
		return ErrClosed
	}
}

// Done is closed once the loop has exited and every outbox is closed.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) loop() {
	defer close(h.done)

	var tick <-chan time.Time
	if h.idleTTL > 0 && h.reap > 0 {
		t := time.NewTicker(h.reap)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case now := <-tick:
			h.sweep(now)

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Connect:
				h.groups.Attach(msg.ConnID, msg.Outbox)

			case Disconnect:
				h.disconnect(msg.ConnID)

			case FromClient:
				h.handle(msg.ConnID, msg.Msg)

			case GetRoom:
				room, err := h.rooms.Get(msg.Code)
				if err != nil {
					msg.Reply <- nil
					break
				}
				msg.Reply <- room.Clone()

			case Sweep:
				h.sweep(msg.Now)

			case GetState:
				msg.Reply <- View{
					Rooms:    h.rooms.Len(),
					Conns:    h.groups.Connected(),
					Bindings: h.sessions.Len(),
				}

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	h.groups.Shutdown()
	h.cancel()
}

func (h *Hub) handle(connID string, m types.ClientMessage) {
	var err error
	switch m.Type {
	case pt.IntentCreateRoom:
		err = h.createRoom(connID, m)
	case pt.IntentJoinRoom:
		err = h.joinRoom(connID, m)
	case pt.IntentRejoinAsHost:
		err = h.rejoinHost(connID, m)
	case pt.IntentRejoinAsPlayer:
		err = h.rejoinPlayer(connID, m)
	default:
		err = h.apply(connID, m)
	}
	if err != nil {
		h.log.Debug("intent rejected",
			zap.String("room", registry.Normalize(m.RoomCode)),
			zap.String("conn", connID),
			zap.String("intent", m.Type),
			zap.Error(err))
		h.groups.Send(connID, types.EncodeError(registry.Normalize(m.RoomCode), err))
	}
}

// unbound fails when connID already belongs to any room.
func (h *Hub) unbound(connID string) error {
	if b, ok := h.sessions.Lookup(connID); ok {
		return fmt.Errorf("connection already in room %s as %s: %w", b.RoomCode, b.Role, engine.ErrInvalidRequest)
	}
	return nil
}

// bound fails when connID already belongs to a room other than code.
func (h *Hub) bound(connID, code string) error {
	if b, ok := h.sessions.Lookup(connID); ok && b.RoomCode != code {
		return fmt.Errorf("connection already in room %s: %w", b.RoomCode, engine.ErrInvalidRequest)
	}
	return nil
}

func (h *Hub) createRoom(connID string, m types.ClientMessage) error {
	if err := h.unbound(connID); err != nil {
		return err
	}
	hostName := engine.NormalizeName(m.HostName)
	if hostName == "" {
		return fmt.Errorf("host name required: %w", engine.ErrInvalidRequest)
	}
	settings := m.Settings.Apply(h.defaults)
	if err := settings.Validate(); err != nil {
		return err
	}

	room, err := h.rooms.Create(func(code string) *engine.Room {
		return h.eng.NewRoom(code, connID, hostName, settings)
	})
	if err != nil {
		return err
	}
	h.sessions.Bind(connID, session.Binding{RoomCode: room.Code, Role: session.RoleHost})
	h.groups.Subscribe(room.Code, connID)
	h.reply(connID, pt.EventRoomCreated, room.Code, types.RoomCreated{RoomCode: room.Code, Room: room.Clone()})
	h.log.Info("room created", zap.String("room", room.Code), zap.String("host", hostName))
	return nil
}

func (h *Hub) joinRoom(connID string, m types.ClientMessage) error {
	room, err := h.rooms.Get(m.RoomCode)
	if err != nil {
		return err
	}
	if err := h.unbound(connID); err != nil {
		return err
	}
	p, events, err := h.eng.Join(room, connID, m.PlayerName)
	if err != nil {
		return err
	}
	h.sessions.Bind(connID, session.Binding{RoomCode: room.Code, PlayerID: p.ID, Role: session.RolePlayer})
	h.groups.Subscribe(room.Code, connID)
	h.reply(connID, pt.EventJoinedRoom, room.Code, types.JoinedRoom{PlayerID: p.ID, Room: room.Clone()})
	h.dispatch(room, events)
	return nil
}

func (h *Hub) rejoinHost(connID string, m types.ClientMessage) error {
	room, err := h.rooms.Get(m.RoomCode)
	if err != nil {
		return err
	}
	if err := h.bound(connID, room.Code); err != nil {
		return err
	}
	old := room.HostConnectionID
	events, err := h.eng.RejoinHost(room, connID)
	if err != nil {
		return err
	}
	h.migrate(old, connID, session.Binding{RoomCode: room.Code, Role: session.RoleHost})
	h.reply(connID, pt.EventRoomUpdated, room.Code, types.RoomUpdated{Room: room.Clone()})
	h.dispatch(room, events)
	return nil
}

func (h *Hub) rejoinPlayer(connID string, m types.ClientMessage) error {
	room, err := h.rooms.Get(m.RoomCode)
	if err != nil {
		return err
	}
	if err := h.bound(connID, room.Code); err != nil {
		return err
	}
	p, old, events, err := h.eng.RejoinPlayer(room, connID, m.PlayerName)
	if err != nil {
		return err
	}
	h.migrate(old, connID, session.Binding{RoomCode: room.Code, PlayerID: p.ID, Role: session.RolePlayer})
	h.reply(connID, pt.EventJoinedRoom, room.Code, types.JoinedRoom{PlayerID: p.ID, Room: room.Clone()})
	h.dispatch(room, events)
	return nil
}

// migrate moves a binding from a stale connection to connID. The stale
// connection, if it is still open, stops receiving the room's events.
func (h *Hub) migrate(oldConn, connID string, b session.Binding) {
	if oldConn != "" && oldConn != connID {
		if prev, ok := h.sessions.Lookup(oldConn); ok && prev == b {
			h.sessions.Unbind(oldConn)
			h.groups.Unsubscribe(oldConn)
		}
	}
	h.sessions.Bind(connID, b)
	h.groups.Subscribe(b.RoomCode, connID)
}

func (h *Hub) apply(connID string, m types.ClientMessage) error {
	room, err := h.rooms.Get(m.RoomCode)
	if err != nil {
		return err
	}
	if b, ok := h.sessions.Lookup(connID); !ok || b.RoomCode != room.Code {
		return engine.ErrNotAuthorized
	}
	cmd, err := types.ToEngineCommand(m, connID, room.Settings)
	if err != nil {
		return err
	}
	before := engine.DerivePhase(room)
	events, err := h.eng.Apply(room, cmd)
	if err != nil {
		return err
	}
	if after := engine.DerivePhase(room); after != before {
		h.log.Info("phase changed",
			zap.String("room", room.Code),
			zap.String("from", string(before)),
			zap.String("to", string(after)),
			zap.Int("players", len(room.Players)))
	}
	h.dispatch(room, events)
	return nil
}

func (h *Hub) disconnect(connID string) {
	h.groups.Detach(connID)
	b, ok := h.sessions.Unbind(connID)
	if !ok {
		return
	}
	room, err := h.rooms.Get(b.RoomCode)
	if err != nil {
		return
	}
	events, _ := h.eng.Disconnect(room, connID)
	h.dispatch(room, events)
}

// dispatch delivers events in order: directed events to their recipient,
// everything else to the room. A RoomClosed event tears the room down after
// it has been delivered.
func (h *Hub) dispatch(room *engine.Room, events []engine.Event) {
	for _, ev := range events {
		payload, err := types.Encode(ev.Kind(), room.Code, ev)
		if err != nil {
			h.log.Error("encode event", zap.String("room", room.Code), zap.String("event", ev.Kind()), zap.Error(err))
			continue
		}
		if d, ok := ev.(engine.Directed); ok {
			h.groups.Send(d.Recipient(), payload)
			continue
		}
		if dropped := h.groups.Broadcast(room.Code, payload); len(dropped) > 0 {
			h.log.Warn("dropped slow clients", zap.String("room", room.Code), zap.Strings("conns", dropped))
		}
		if closed, ok := ev.(engine.RoomClosed); ok {
			h.closeRoom(room.Code, closed.Reason)
			return
		}
	}
}

func (h *Hub) closeRoom(code, reason string) {
	h.groups.CloseRoom(code)
	h.sessions.UnbindRoom(code)
	h.rooms.Delete(code)
	h.log.Info("room closed", zap.String("room", code), zap.String("reason", reason))
}

func (h *Hub) sweep(now time.Time) {
	for _, room := range h.rooms.Rooms() {
		if !room.Abandoned(now, h.idleTTL) {
			continue
		}
		h.dispatch(room, []engine.Event{engine.RoomClosed{Reason: "idle"}})
	}
}

func (h *Hub) reply(connID, kind, room string, data any) {
	payload, err := types.Encode(kind, room, data)
	if err != nil {
		h.log.Error("encode reply", zap.String("room", room), zap.String("event", kind), zap.Error(err))
		return
	}
	h.groups.Send(connID, payload)
}
