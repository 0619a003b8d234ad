package net

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
	"go.uber.org/zap"
)

// State is the lifecycle state of one phase connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateClosing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// SessionConfig describes one connection attempt.
type SessionConfig struct {
	Phase   gameplay.Phase
	Address string
	// Hello is the first frame written after dialing.
	Hello []byte
	// KeepAlive builds the frame written every KeepAliveInterval while
	// connected. Nil disables keep-alive.
	KeepAlive         func() []byte
	KeepAliveInterval time.Duration
	WriteTimeout      time.Duration

	Dialer   Dialer
	Registry *packet.Registry
	Events   *gameplay.EventQueue
	// Terminal builds the phase's disconnect event.
	Terminal func(gameplay.DisconnectReason) gameplay.Event
}

// Session is one connection to a login, character or map server. Network
// I/O runs in dedicated goroutines; decoded events are pushed to the phase
// queue and drained by the game loop.
type Session struct {
	ID  uuid.UUID
	cfg SessionConfig

	state atomic.Int32

	// mu orders event pushes against the terminal event.
	mu         sync.Mutex
	terminated bool

	outMu sync.Mutex
	out   [][]byte
	wake  chan struct{}

	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}

	// read goroutine only
	reassembly packet.Reassembly

	log *zap.Logger
}

func NewSession(cfg SessionConfig, log *zap.Logger) *Session {
	id := uuid.New()
	s := &Session{
		ID:      id,
		cfg:     cfg,
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
		log: log.With(
			zap.Stringer("phase", cfg.Phase),
			zap.String("attempt", id.String()),
			zap.String("address", cfg.Address),
		),
	}
	s.state.Store(int32(StateDisconnected))
	return s
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) IsConnected() bool {
	return s.State() == StateConnected
}

// Done is closed once the session's goroutines have exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start moves the session to Connecting and launches the I/O goroutine. It
// never blocks on the network.
func (s *Session) Start() {
	if !s.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnecting)) {
		return
	}
	go s.run()
}

// Send queues a frame payload for the writer. It fails with a
// NotConnectedError unless the session is Connected.
func (s *Session) Send(payload []byte) error {
	if !s.IsConnected() {
		return &gameplay.NotConnectedError{Phase: s.cfg.Phase}
	}
	s.outMu.Lock()
	s.out = append(s.out, payload)
	s.outMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Disconnect closes the session from the client side. The ClosedByClient
// event is pushed immediately; queued frames are flushed best-effort by the
// writer before the connection closes.
func (s *Session) Disconnect() {
	for {
		st := s.State()
		if st == StateDisconnected || st == StateClosing {
			return
		}
		if s.state.CompareAndSwap(int32(st), int32(StateClosing)) {
			break
		}
	}
	s.terminate(gameplay.ClosedByClient)
	s.close()
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}

// terminate pushes the terminal event. Only the first call has an effect.
func (s *Session) terminate(reason gameplay.DisconnectReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return
	}
	s.terminated = true
	s.log.Info("session terminated", zap.Stringer("reason", reason))
	s.cfg.Events.Push(s.cfg.Terminal(reason))
}

// push forwards decoded events unless the session already terminated.
func (s *Session) push(events gameplay.Events) {
	if events.Len() == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return
	}
	s.cfg.Events.PushEvents(events)
}

// fail moves a live session to Closing and reports reason.
func (s *Session) fail(reason gameplay.DisconnectReason) {
	for {
		st := s.State()
		if st == StateDisconnected || st == StateClosing {
			break
		}
		if s.state.CompareAndSwap(int32(st), int32(StateClosing)) {
			break
		}
	}
	s.terminate(reason)
	s.close()
}

func (s *Session) run() {
	defer close(s.done)
	defer s.state.Store(int32(StateDisconnected))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.closeCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.log.Debug("connecting")
	conn, err := s.cfg.Dialer.Dial(ctx, s.cfg.Address)
	if err != nil {
		s.log.Warn("connect failed", zap.Error(err))
		s.fail(gameplay.FailedToConnect)
		return
	}

	if err := s.writeFrame(conn, s.cfg.Hello); err != nil {
		s.log.Warn("handshake failed", zap.Error(err))
		conn.Close()
		s.fail(gameplay.FailedToConnect)
		return
	}

	if !s.state.CompareAndSwap(int32(StateConnecting), int32(StateConnected)) {
		// Disconnect won the race while dialing.
		conn.Close()
		return
	}
	s.log.Info("connected")

	writerDone := make(chan struct{})
	go s.writeLoop(conn, writerDone)

	err = s.readLoop(conn)
	select {
	case <-s.closeCh:
	default:
		s.log.Info("connection lost", zap.Error(err))
		s.fail(gameplay.ConnectionClosed)
	}
	<-writerDone
}

// readLoop reads frames until the connection fails. Handler errors are
// logged and the frame is dropped; they never end the session.
func (s *Session) readLoop(conn Conn) error {
	for {
		payload, err := ReadFrame(conn)
		if err != nil {
			return err
		}
		events, err := s.cfg.Registry.Dispatch(&s.reassembly, payload)
		if err != nil {
			lvl := zap.WarnLevel
			if errors.Is(err, packet.ErrInventoryDesync) {
				lvl = zap.ErrorLevel
			}
			s.log.Log(lvl, "packet dropped",
				zap.Stringer("header", packet.NewReader(payload).Header()),
				zap.Error(err),
			)
		}
		s.push(events)
	}
}

// writeLoop drains the outbound queue and emits keep-alives. On close it
// flushes whatever is still queued, then closes the connection, which also
// ends readLoop.
func (s *Session) writeLoop(conn Conn, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()

	var tick <-chan time.Time
	if s.cfg.KeepAlive != nil && s.cfg.KeepAliveInterval > 0 {
		ticker := time.NewTicker(s.cfg.KeepAliveInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-s.wake:
			if !s.flush(conn) {
				return
			}
		case <-tick:
			if err := s.writeFrame(conn, s.cfg.KeepAlive()); err != nil {
				s.log.Debug("keep-alive failed", zap.Error(err))
				return
			}
		case <-s.closeCh:
			s.flush(conn)
			return
		}
	}
}

func (s *Session) flush(conn Conn) bool {
	s.outMu.Lock()
	pending := s.out
	s.out = nil
	s.outMu.Unlock()

	for _, payload := range pending {
		if err := s.writeFrame(conn, payload); err != nil {
			s.log.Debug("write failed", zap.Error(err))
			return false
		}
	}
	return true
}

func (s *Session) writeFrame(conn Conn, payload []byte) error {
	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if len(payload) >= 2 {
		s.log.Debug("TX",
			zap.Stringer("header", packet.NewReader(payload).Header()),
			zap.Int("len", len(payload)),
		)
	}
	return WriteFrame(conn, payload)
}
