package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WS is a Transport backed by a single WebSocket connection. Request and
// response bodies are opaque at this layer, so round trips cannot be
// multiplexed: the connection is driven strictly one exchange at a time and
// the transport reports itself as exclusive. Subscriptions are not supported.
type WS struct {
	wsURL          string
	messageTimeout time.Duration
	logger         zerolog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWS creates a WebSocket transport for the given URL. The connection is
// established lazily on the first round trip and re-established after a
// failed one.
func NewWS(wsURL string, messageTimeout time.Duration, logger zerolog.Logger) *WS {
	return &WS{
		wsURL:          wsURL,
		messageTimeout: messageTimeout,
		logger:         logger.With().Str("component", "ws").Logger(),
	}
}

// Exclusive implements the Exclusive interface: a single connection with no
// message correlation cannot be reentered while a request is in flight.
func (t *WS) Exclusive() bool {
	return true
}

// RoundTrip implements Transport
func (t *WS) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	conn, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(t.messageTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetWriteDeadline(deadline); err != nil {
		return nil, t.drop(fmt.Errorf("failed to set write deadline: %w", err))
	}
	if err := conn.WriteMessage(websocket.TextMessage, req); err != nil {
		return nil, t.drop(fmt.Errorf("WebSocket write failed: %w", err))
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, t.drop(fmt.Errorf("failed to set read deadline: %w", err))
	}
	_, body, err := conn.ReadMessage()
	if err != nil {
		return nil, t.drop(fmt.Errorf("WebSocket read failed: %w", err))
	}
	return body, nil
}

// connect returns the active connection, dialing if necessary. Callers hold mu.
func (t *WS) connect(ctx context.Context) (*websocket.Conn, error) {
	if t.conn != nil {
		return t.conn, nil
	}

	t.logger.Info().Str("url", t.wsURL).Msg("WebSocket connecting")
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, t.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect WebSocket: %w", err)
	}
	t.conn = conn
	t.logger.Info().Str("url", t.wsURL).Msg("WebSocket connected")
	return conn, nil
}

// drop closes the connection after a failed exchange so the next round trip
// reconnects. Callers hold mu.
func (t *WS) drop(err error) error {
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	t.logger.Warn().Err(err).Msg("WebSocket round trip failed, connection dropped")
	return err
}

// Close closes the connection.
func (t *WS) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
		t.logger.Info().Msg("WebSocket disconnected")
	}
}
