package net

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the byte stream a session runs on.
type Conn interface {
	io.ReadWriteCloser
	SetWriteDeadline(t time.Time) error
}

// Dialer opens a Conn to a server address.
type Dialer interface {
	Dial(ctx context.Context, address string) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, address string) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, address string) (Conn, error) {
	return f(ctx, address)
}

// Transport names accepted by NewDialer.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
	TransportAuto      = "auto"
)

// NewDialer returns the dialer for a configured transport. The auto
// transport uses WebSocket for ws:// and wss:// addresses and TCP otherwise.
func NewDialer(transport string, timeout time.Duration) (Dialer, error) {
	tcp := &TCPDialer{Timeout: timeout}
	ws := &WebSocketDialer{Timeout: timeout}
	switch transport {
	case TransportTCP:
		return tcp, nil
	case TransportWebSocket:
		return ws, nil
	case TransportAuto, "":
		return DialerFunc(func(ctx context.Context, address string) (Conn, error) {
			if isWebSocketURL(address) {
				return ws.Dial(ctx, address)
			}
			return tcp.Dial(ctx, address)
		}), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", transport)
	}
}

func isWebSocketURL(address string) bool {
	return strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://")
}

// TCPDialer dials plain TCP connections.
type TCPDialer struct {
	Timeout time.Duration
}

func (d *TCPDialer) Dial(ctx context.Context, address string) (Conn, error) {
	nd := net.Dialer{Timeout: d.Timeout, KeepAlive: 30 * time.Second}
	conn, err := nd.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", address, err)
	}
	return conn, nil
}

// WebSocketDialer dials servers behind a WebSocket gateway. Frames travel
// as binary messages; a bare host:port address is dialed as ws://host:port/.
type WebSocketDialer struct {
	Timeout time.Duration
}

func (d *WebSocketDialer) Dial(ctx context.Context, address string) (Conn, error) {
	url := address
	if !isWebSocketURL(url) {
		url = "ws://" + address + "/"
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: d.Timeout,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket %s: %w", url, err)
	}
	return NewWebSocketConn(ws), nil
}

// WebSocketConn presents a WebSocket connection as a byte stream. Message
// boundaries are ignored on read; every Write is sent as one binary message.
type WebSocketConn struct {
	ws *websocket.Conn

	rmu    sync.Mutex
	reader io.Reader

	wmu sync.Mutex
}

func NewWebSocketConn(ws *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{ws: ws}
}

func (c *WebSocketConn) Read(p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()
	for {
		if c.reader == nil {
			kind, r, err := c.ws.NextReader()
			if err != nil {
				return 0, err
			}
			if kind != websocket.BinaryMessage {
				continue
			}
			c.reader = r
		}
		n, err := c.reader.Read(p)
		if err == io.EOF {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *WebSocketConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *WebSocketConn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}

func (c *WebSocketConn) Close() error {
	return c.ws.Close()
}
