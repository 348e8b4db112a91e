package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 20 * time.Second
)

// Event is any server frame; unused fields stay zero.
type Event struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	RoomID    string          `json:"roomId,omitempty"`
	Position  int             `json:"position,omitempty"`
	Total     int             `json:"total,omitempty"`
	UserCount int             `json:"userCount,omitempty"`
	PeerID    string          `json:"peerId,omitempty"`
	From      string          `json:"from,omitempty"`
	Signal    json.RawMessage `json:"signal,omitempty"`
}

func newJoinCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room and print every event the server sends until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			u, err := wsURL(opts.server)
			if err != nil {
				return err
			}
			return Watch(ctx, u, args[0], logEvent)
		},
	}
}

func logEvent(ev Event) {
	e := log.Info().Str("type", ev.Type)
	switch ev.Type {
	case "welcome":
		e = e.Str("id", ev.ID)
	case "joined-room":
		e = e.Str("room", ev.RoomID)
	case "added-to-queue":
		e = e.Int("position", ev.Position)
	case "queue-position":
		e = e.Int("position", ev.Position).Int("total", ev.Total)
	case "room-status":
		e = e.Int("users", ev.UserCount)
	case "initiate-call":
		e = e.Str("peer", ev.PeerID)
	case "signal":
		e = e.Str("from", ev.From).RawJSON("signal", nullIfEmpty(ev.Signal))
	}
	e.Msg("event")
}

func nullIfEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}

// Watch joins room over the signaling socket at url and hands every server
// event to onEvent. It returns nil once ctx is cancelled.
func Watch(ctx context.Context, url, room string, onEvent func(Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	var writeMu sync.Mutex
	write := func(msgType int, data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(msgType, data)
	}

	join, _ := json.Marshal(map[string]string{"type": "join-room", "roomId": room})
	if err := write(websocket.TextMessage, join); err != nil {
		return fmt.Errorf("send join-room: %w", err)
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				conn.Close()
				return
			case <-done:
				return
			case <-ticker.C:
				if err := write(websocket.PingMessage, nil); err != nil {
					log.Debug().Err(err).Msg("ping failed")
				}
			}
		}
	}()
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, websocket.ErrCloseSent) ||
				websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Warn().Err(err).Msg("undecodable frame")
			continue
		}
		onEvent(ev)
	}
}
