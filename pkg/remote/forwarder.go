// Package remote relays navigation events to a fleet-monitor endpoint over
// an outbound websocket. The relay is strictly best-effort: it reconnects
// with backoff and drops events while disconnected, so the controller never
// waits on the network.
package remote

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/protocol"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pingPeriod       = 30 * time.Second
	minBackoff       = 1 * time.Second
	maxBackoff       = 30 * time.Second
	sendBuffer       = 128
)

// Forwarder maintains the monitor connection and relays event envelopes.
type Forwarder struct {
	url     string
	robotID string

	send chan []byte
	done chan struct{}
}

// New creates a forwarder for the given websocket URL. Each process gets a
// fresh robot id so the monitor can tell restarts apart.
func New(url string) *Forwarder {
	return &Forwarder{
		url:     url,
		robotID: uuid.NewString(),
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

// Emit queues an envelope for relay. Never blocks; drops when the buffer is
// full or the monitor is unreachable.
func (f *Forwarder) Emit(msg *protocol.Message) {
	data, err := msg.Bytes()
	if err != nil {
		log.Error("remote: encode envelope", "err", err)
		return
	}
	select {
	case f.send <- data:
	default:
		log.Debug("remote: buffer full, dropping event")
	}
}

// Start runs the connect-and-relay loop in a goroutine.
func (f *Forwarder) Start() {
	go f.run()
}

// Stop closes the forwarder. Safe to call once.
func (f *Forwarder) Stop() {
	close(f.done)
}

func (f *Forwarder) run() {
	backoff := minBackoff
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	for {
		select {
		case <-f.done:
			return
		default:
		}

		header := http.Header{"X-Robot-ID": []string{f.robotID}}
		conn, _, err := dialer.Dial(f.url, header)
		if err != nil {
			log.Warn("remote: monitor connect failed", "url", f.url, "retry_in", backoff, "err", err)
			select {
			case <-time.After(backoff):
			case <-f.done:
				return
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		log.Info("remote: connected to monitor", "url", f.url, "robot_id", f.robotID)
		backoff = minBackoff
		f.pump(conn)
	}
}

// pump relays queued events until the connection drops or Stop is called.
func (f *Forwarder) pump(conn *websocket.Conn) {
	defer conn.Close()

	// The monitor sends nothing we act on; the read loop just detects
	// disconnects.
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case err := <-readErr:
			log.Warn("remote: monitor connection lost", "err", err)
			return

		case data := <-f.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn("remote: relay write failed", "err", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
