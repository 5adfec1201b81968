package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

// Handler receives every decoded live event.
type Handler func(ctx context.Context, ev domain.LiveEvent)

// Channel is a read-only WebSocket subscription to live post updates.
// It does not reconnect: Run returns when the connection ends.
type Channel struct {
	url    string
	header http.Header
	dialer *websocket.Dialer
	log    *slog.Logger
}

func NewChannel(url, token string, logger *slog.Logger) *Channel {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	return &Channel{
		url:    url,
		header: header,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		log:    logger.With("channel", url),
	}
}

// Run dials the channel and dispatches events to h until the server closes
// the connection or ctx is cancelled. Undecodable messages are logged and
// skipped.
func (c *Channel) Run(ctx context.Context, h Handler) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, c.header)
	if err != nil {
		c.log.Error("live channel dial failed", "error", err)
		return fmt.Errorf("dial live channel: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	c.log.Info("live channel connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && (closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway) {
				c.log.Info("live channel closed", "code", closeErr.Code)
				return nil
			}
			c.log.Error("live channel read failed", "error", err)
			return fmt.Errorf("read live channel: %w", err)
		}

		var ev domain.LiveEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			c.log.Warn("skipping malformed live message", "error", err)
			continue
		}

		h(ctx, ev)
	}
}
