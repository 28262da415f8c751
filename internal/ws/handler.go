package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
	"github.com/DoyleJ11/monopoly-backend/internal/hub"
	"github.com/DoyleJ11/monopoly-backend/internal/types"
)

const writeTimeout = 5 * time.Second

type Options struct {
	PingInterval time.Duration
	OutboxSize   int
	// OriginPatterns are passed to websocket.Accept; empty means same origin.
	OriginPatterns []string
	Logger         *zap.Logger
}

// Handler upgrades the request and runs one session: a writer goroutine
// draining the hub's outbox and a reader loop feeding intents to the hub.
func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 20 * time.Second
	}
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 64
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			opts.Logger.Debug("websocket accept", zap.Error(err))
			return
		}
		defer conn.CloseNow()

		connID := uuid.NewString()
		log := opts.Logger.With(zap.String("conn", connID))
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, opts.OutboxSize)
		if err := h.Send(ctx, hub.Connect{ConnID: connID, Outbox: out}); err != nil {
			conn.Close(websocket.StatusTryAgainLater, "server shutting down")
			return
		}
		log.Debug("connected")
		defer func() {
			// The hub closes out, which stops the writer.
			_ = h.Send(context.Background(), hub.Disconnect{ConnID: connID})
			log.Debug("disconnected")
		}()

		go func() {
			defer cancel()
			if err := writeLoop(ctx, conn, out, opts.PingInterval); err != nil && ctx.Err() == nil {
				log.Debug("write loop", zap.Error(err))
			}
		}()

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					if ctx.Err() == nil {
						log.Debug("read", zap.Error(err))
					}
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeCtx, writeCancel := context.WithTimeout(ctx, writeTimeout)
				_ = conn.Write(writeCtx, websocket.MessageText,
					types.EncodeError("", fmt.Errorf("bad json: %w", engine.ErrInvalidRequest)))
				writeCancel()
				continue
			}
			if err := h.Send(ctx, hub.FromClient{ConnID: connID, Msg: cm}); err != nil {
				return
			}
		}
	}
}

var errDropped = errors.New("outbox closed by hub")

func writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan []byte, every time.Duration) error {
	ping := time.NewTicker(every)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case payload, ok := <-out:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "connection dropped")
				return errDropped
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return err
			}

		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
