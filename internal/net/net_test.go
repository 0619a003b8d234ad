package net

import (
	"bytes"
	"context"
	"errors"
	gonet "net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
	"go.uber.org/zap/zaptest"
)

const waitTimeout = 2 * time.Second

func newTestProvider(t *testing.T, dialer Dialer) *Provider {
	t.Helper()
	p, err := NewProvider(dialer, Options{WriteTimeout: time.Second}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

// pipeDialer hands the client end of a net.Pipe to the session and the
// server end to the test.
func pipeDialer() (Dialer, <-chan gonet.Conn) {
	servers := make(chan gonet.Conn, 4)
	d := DialerFunc(func(ctx context.Context, address string) (Conn, error) {
		client, server := gonet.Pipe()
		servers <- server
		return client, nil
	})
	return d, servers
}

func acceptServer(t *testing.T, servers <-chan gonet.Conn) gonet.Conn {
	t.Helper()
	select {
	case c := <-servers:
		t.Cleanup(func() { c.Close() })
		return c
	case <-time.After(waitTimeout):
		t.Fatalf("no connection dialed")
		return nil
	}
}

func readPayload(t *testing.T, c gonet.Conn) []byte {
	t.Helper()
	c.SetReadDeadline(time.Now().Add(waitTimeout))
	payload, err := ReadFrame(c)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	return payload
}

// collect drains p until it has seen want events or the deadline passes.
func collect(t *testing.T, p *Provider, want int) []gameplay.Event {
	t.Helper()
	buf := gameplay.NewEventBuffer()
	var got []gameplay.Event
	deadline := time.Now().Add(waitTimeout)
	for len(got) < want && time.Now().Before(deadline) {
		p.Events(buf)
		got = append(got, buf.Drain()...)
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) < want {
		t.Fatalf("got %d events, want %d: %#v", len(got), want, got)
	}
	return got
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0x7D, 0x00, 1, 2, 3}
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if got := buf.Bytes()[:2]; got[0] != 7 || got[1] != 0 {
		t.Fatalf("prefix = % X, want 07 00", got)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = % X, want % X", got, payload)
	}
}

func TestReadFrameRejectsHeaderlessLength(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader([]byte{3, 0, 0})); err == nil {
		t.Fatalf("expected error for a frame without room for a header")
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	if err := WriteFrame(&bytes.Buffer{}, make([]byte, MaxFrameSize)); err == nil {
		t.Fatalf("expected error for oversized frame")
	}
}

func TestCommandsRequireConnection(t *testing.T) {
	p := newTestProvider(t, DialerFunc(func(ctx context.Context, address string) (Conn, error) {
		return nil, errors.New("unused")
	}))

	commands := map[string]func() error{
		"RequestCharacterList": p.RequestCharacterList,
		"SelectCharacter":      func() error { return p.SelectCharacter(0) },
		"CreateCharacter":      func() error { return p.CreateCharacter(0, "Poring") },
		"DeleteCharacter":      func() error { return p.DeleteCharacter(1) },
		"SwitchCharacterSlot":  func() error { return p.SwitchCharacterSlot(0, 1) },
		"MapLoaded":            p.MapLoaded,
		"RequestClientTick":    p.RequestClientTick,
		"Respawn":              p.Respawn,
		"LogOut":               p.LogOut,
		"PlayerMove":           func() error { return p.PlayerMove(gameplay.WorldPosition{X: 1, Y: 2}) },
		"SendChatMessage":      func() error { return p.SendChatMessage("a", "b") },
		"PurchaseItems":        func() error { return p.PurchaseItems(nil) },
		"SellItems":            func() error { return p.SellItems(nil) },
		"RequestStatUp":        func() error { return p.RequestStatUp(gameplay.StatLuck) },
	}
	for name, cmd := range commands {
		err := cmd()
		if !errors.Is(err, gameplay.ErrNotConnected) {
			t.Fatalf("%s: err = %v, want NotConnectedError", name, err)
		}
	}

	var nc *gameplay.NotConnectedError
	if err := p.MapLoaded(); !errors.As(err, &nc) || nc.Phase != gameplay.PhaseMap {
		t.Fatalf("MapLoaded: err = %v, want map NotConnectedError", err)
	}
}

func TestConnectFailureEmitsSingleTerminalEvent(t *testing.T) {
	p := newTestProvider(t, DialerFunc(func(ctx context.Context, address string) (Conn, error) {
		return nil, errors.New("connection refused")
	}))

	p.ConnectToLoginServer(gameplay.Version20220406, "127.0.0.1:6900", "user", "pass")
	events := collect(t, p, 1)

	time.Sleep(20 * time.Millisecond)
	buf := gameplay.NewEventBuffer()
	p.Events(buf)
	events = append(events, buf.Drain()...)

	if len(events) != 1 {
		t.Fatalf("events = %#v, want exactly one", events)
	}
	got, ok := events[0].(gameplay.LoginServerDisconnected)
	if !ok || got.Reason != gameplay.FailedToConnect {
		t.Fatalf("event = %#v, want LoginServerDisconnected{FailedToConnect}", events[0])
	}
	if p.IsLoginServerConnected() {
		t.Fatalf("login server reported connected")
	}
}

func TestCommandWhileConnecting(t *testing.T) {
	release := make(chan struct{})
	dialed := make(chan struct{})
	p := newTestProvider(t, DialerFunc(func(ctx context.Context, address string) (Conn, error) {
		close(dialed)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-release:
			return nil, errors.New("released")
		}
	}))
	defer close(release)

	p.ConnectToCharacterServer(gameplay.Version20220406, gameplay.LoginServerLoginData{AccountID: 1}, gameplay.CharacterServerInformation{})
	<-dialed

	if err := p.RequestCharacterList(); !errors.Is(err, gameplay.ErrNotConnected) {
		t.Fatalf("RequestCharacterList while connecting: err = %v", err)
	}

	p.DisconnectFromCharacterServer()
	events := collect(t, p, 1)
	got, ok := events[0].(gameplay.CharacterServerDisconnected)
	if !ok || got.Reason != gameplay.ClosedByClient {
		t.Fatalf("event = %#v, want CharacterServerDisconnected{ClosedByClient}", events[0])
	}
}

func loginSuccessPayload() []byte {
	w := packet.NewWriter(packet.S_OPCODE_LOGIN_SUCCESS)
	w.WriteDU(2000001) // account
	w.WriteDU(11)      // login id 1
	w.WriteDU(22)      // login id 2
	w.WriteBytes(make([]byte, 4+26))
	w.WriteC(byte(gameplay.SexMale))
	w.WriteBytes(make([]byte, 17))

	w.WriteBytes([]byte{127, 0, 0, 1})
	w.WriteH(6121)
	w.WriteFixedS("Prontera", 20)
	w.WriteH(42)
	w.WriteH(0)
	w.WriteH(0)
	w.WriteBytes(make([]byte, 128))
	return w.Bytes()
}

func TestLoginEndToEnd(t *testing.T) {
	dialer, servers := pipeDialer()
	p := newTestProvider(t, dialer)

	p.ConnectToLoginServer(gameplay.Version20220406, "127.0.0.1:6900", "user", "secret")
	server := acceptServer(t, servers)

	hello := packet.NewReader(readPayload(t, server))
	if hello.Header() != packet.C_OPCODE_LOGIN {
		t.Fatalf("hello header = %s, want %s", hello.Header(), packet.C_OPCODE_LOGIN)
	}
	hello.ReadDU()
	if name := hello.ReadFixedS(24); name != "user" {
		t.Fatalf("hello username = %q", name)
	}
	if pass := hello.ReadFixedS(24); pass != "secret" {
		t.Fatalf("hello password = %q", pass)
	}

	if err := WriteFrame(server, loginSuccessPayload()); err != nil {
		t.Fatalf("server write: %v", err)
	}

	events := collect(t, p, 1)
	ok, isOK := events[0].(gameplay.LoginServerConnected)
	if !isOK {
		t.Fatalf("event = %#v, want LoginServerConnected", events[0])
	}
	if ok.LoginData.AccountID != 2000001 || ok.LoginData.Sex != gameplay.SexMale {
		t.Fatalf("login data = %+v", ok.LoginData)
	}
	if len(ok.CharacterServers) != 1 || ok.CharacterServers[0].Name != "Prontera" {
		t.Fatalf("servers = %+v", ok.CharacterServers)
	}
	if addr := ok.CharacterServers[0].Address(); addr != "127.0.0.1:6121" {
		t.Fatalf("server address = %s", addr)
	}
	if !p.IsLoginServerConnected() {
		t.Fatalf("login server not connected")
	}
}

func TestRemoteCloseEmitsConnectionClosed(t *testing.T) {
	dialer, servers := pipeDialer()
	p := newTestProvider(t, dialer)

	p.ConnectToMapServer(gameplay.Version20220406, gameplay.LoginServerLoginData{AccountID: 1}, gameplay.CharacterServerLoginData{CharacterID: 2})
	server := acceptServer(t, servers)
	readPayload(t, server)
	waitFor(t, p.IsMapServerConnected)

	server.Close()

	events := collect(t, p, 1)
	got, ok := events[0].(gameplay.MapServerDisconnected)
	if !ok || got.Reason != gameplay.ConnectionClosed {
		t.Fatalf("event = %#v, want MapServerDisconnected{ConnectionClosed}", events[0])
	}
	waitFor(t, func() bool { return !p.IsMapServerConnected() })

	if err := p.MapLoaded(); !errors.Is(err, gameplay.ErrNotConnected) {
		t.Fatalf("MapLoaded after close: err = %v", err)
	}
}

func TestDisconnectFlushesQueuedCommands(t *testing.T) {
	dialer, servers := pipeDialer()
	p := newTestProvider(t, dialer)

	p.ConnectToMapServer(gameplay.Version20220406, gameplay.LoginServerLoginData{AccountID: 1}, gameplay.CharacterServerLoginData{CharacterID: 2})
	server := acceptServer(t, servers)
	if h := packet.NewReader(readPayload(t, server)).Header(); h != packet.C_OPCODE_MAPSERVER_LOGIN {
		t.Fatalf("hello header = %s", h)
	}
	waitFor(t, p.IsMapServerConnected)

	if err := p.MapLoaded(); err != nil {
		t.Fatalf("MapLoaded: %v", err)
	}
	if err := p.LogOut(); err != nil {
		t.Fatalf("LogOut: %v", err)
	}
	p.DisconnectFromMapServer()

	if h := packet.NewReader(readPayload(t, server)).Header(); h != packet.C_OPCODE_MAP_LOADED {
		t.Fatalf("first frame = %s, want %s", h, packet.C_OPCODE_MAP_LOADED)
	}
	logout := packet.NewReader(readPayload(t, server))
	if logout.Header() != packet.C_OPCODE_RESTART || logout.ReadC() != 1 {
		t.Fatalf("second frame is not a log out request")
	}

	events := collect(t, p, 1)
	if got, ok := events[0].(gameplay.MapServerDisconnected); !ok || got.Reason != gameplay.ClosedByClient {
		t.Fatalf("event = %#v, want MapServerDisconnected{ClosedByClient}", events[0])
	}
	if err := p.MapLoaded(); !errors.Is(err, gameplay.ErrNotConnected) {
		t.Fatalf("MapLoaded after disconnect: err = %v", err)
	}
}

func TestKeepAlive(t *testing.T) {
	dialer, servers := pipeDialer()
	p, err := NewProvider(dialer, Options{KeepAliveInterval: 10 * time.Millisecond}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	p.ConnectToLoginServer(gameplay.Version20120307, "127.0.0.1:6900", "user", "pass")
	server := acceptServer(t, servers)
	readPayload(t, server)

	ka := packet.NewReader(readPayload(t, server))
	if ka.Header() != packet.C_OPCODE_LOGIN_KEEPALIVE {
		t.Fatalf("keep-alive header = %s", ka.Header())
	}
	if name := ka.ReadFixedS(24); name != "user" {
		t.Fatalf("keep-alive username = %q", name)
	}
	p.DisconnectFromLoginServer()
}

func TestReconnectReplacesSession(t *testing.T) {
	dialer, servers := pipeDialer()
	p := newTestProvider(t, dialer)

	p.ConnectToLoginServer(gameplay.Version20220406, "a:1", "user", "pass")
	first := acceptServer(t, servers)
	readPayload(t, first)
	waitFor(t, p.IsLoginServerConnected)

	p.ConnectToLoginServer(gameplay.Version20220406, "b:2", "user", "pass")
	second := acceptServer(t, servers)
	readPayload(t, second)
	waitFor(t, p.IsLoginServerConnected)

	events := collect(t, p, 1)
	if got, ok := events[0].(gameplay.LoginServerDisconnected); !ok || got.Reason != gameplay.ClosedByClient {
		t.Fatalf("event = %#v, want the old session's ClosedByClient", events[0])
	}
}

func TestNewDialer(t *testing.T) {
	for _, name := range []string{TransportTCP, TransportWebSocket, TransportAuto, ""} {
		if _, err := NewDialer(name, time.Second); err != nil {
			t.Fatalf("NewDialer(%q): %v", name, err)
		}
	}
	if _, err := NewDialer("carrier-pigeon", time.Second); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestWebSocketConnStreamsAcrossMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		conn := NewWebSocketConn(ws)
		payload, err := ReadFrame(conn)
		if err != nil {
			return
		}
		received <- payload

		// One frame split over two binary messages.
		frame := []byte{6, 0, 0x7F, 0x00, 0x10, 0x27}
		ws.WriteMessage(websocket.BinaryMessage, frame[:3])
		ws.WriteMessage(websocket.BinaryMessage, frame[3:])
		ws.ReadMessage()
	}))
	defer srv.Close()

	d := &WebSocketDialer{Timeout: time.Second}
	conn, err := d.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if err := WriteFrame(conn, []byte{0x7D, 0x00}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	select {
	case got := <-received:
		if !bytes.Equal(got, []byte{0x7D, 0x00}) {
			t.Fatalf("server got % X", got)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("server received nothing")
	}

	payload, err := ReadFrame(conn)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(payload, []byte{0x7F, 0x00, 0x10, 0x27}) {
		t.Fatalf("payload = % X", payload)
	}
}
