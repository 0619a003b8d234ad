package net

import (
	"fmt"
	"sync"
	"time"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/handler"
	"github.com/hasenbanck/korangar/internal/net/packet"
	"go.uber.org/zap"
)

// Values sent in the login packet.
const (
	clientVersion = 55
	clientType    = 10
)

// Options tunes the sessions of a Provider.
type Options struct {
	WriteTimeout      time.Duration
	KeepAliveInterval time.Duration
}

// Provider is the networked gameplay backend. Each phase has its own event
// queue, shared by whichever session currently serves that phase.
type Provider struct {
	dialer Dialer
	opts   Options
	log    *zap.Logger

	registries map[gameplay.PacketVersion]*[3]*packet.Registry
	queues     [3]*gameplay.EventQueue

	mu       sync.Mutex
	sessions [3]*Session
	login    gameplay.LoginServerLoginData

	started time.Time
}

var _ gameplay.Provider = (*Provider)(nil)

// NewProvider wires the packet handlers of every phase and protocol epoch.
// A duplicate registration is a programming error and is returned as is.
func NewProvider(dialer Dialer, opts Options, log *zap.Logger) (*Provider, error) {
	p := &Provider{
		dialer:     dialer,
		opts:       opts,
		log:        log,
		registries: make(map[gameplay.PacketVersion]*[3]*packet.Registry),
		started:    time.Now(),
	}
	for _, version := range []gameplay.PacketVersion{gameplay.Version20120307, gameplay.Version20220406} {
		regs := new([3]*packet.Registry)
		for _, phase := range gameplay.Phases {
			reg := packet.NewRegistry(log.With(zap.Stringer("phase", phase), zap.Stringer("version", version)))
			if err := handler.RegisterPhase(reg, phase, version); err != nil {
				return nil, fmt.Errorf("register %s handlers for %s: %w", phase, version, err)
			}
			regs[phase] = reg
		}
		p.registries[version] = regs
	}
	for _, phase := range gameplay.Phases {
		p.queues[phase] = gameplay.NewEventQueue()
	}
	return p, nil
}

// Events drains the login, character and map queues in that order.
func (p *Provider) Events(buf *gameplay.EventBuffer) {
	for _, q := range p.queues {
		q.DrainInto(buf)
	}
}

func (p *Provider) clientTick() uint32 {
	return uint32(time.Since(p.started).Milliseconds())
}

func (p *Provider) registry(version gameplay.PacketVersion, phase gameplay.Phase) *packet.Registry {
	regs, ok := p.registries[version]
	if !ok {
		regs = p.registries[gameplay.Version20220406]
	}
	return regs[phase]
}

// start replaces the session of a phase. A still live predecessor is
// disconnected first so its terminal event precedes anything the new
// session produces.
func (p *Provider) start(cfg SessionConfig, version gameplay.PacketVersion) {
	cfg.Dialer = p.dialer
	cfg.Registry = p.registry(version, cfg.Phase)
	cfg.Events = p.queues[cfg.Phase]
	cfg.WriteTimeout = p.opts.WriteTimeout
	cfg.KeepAliveInterval = p.opts.KeepAliveInterval

	s := NewSession(cfg, p.log)

	p.mu.Lock()
	old := p.sessions[cfg.Phase]
	p.sessions[cfg.Phase] = s
	p.mu.Unlock()

	if old != nil {
		old.Disconnect()
	}
	s.Start()
}

func (p *Provider) session(phase gameplay.Phase) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[phase]
}

func (p *Provider) send(phase gameplay.Phase, w *packet.Writer) error {
	s := p.session(phase)
	if s == nil {
		return &gameplay.NotConnectedError{Phase: phase}
	}
	return s.Send(w.Bytes())
}

func (p *Provider) disconnect(phase gameplay.Phase) {
	if s := p.session(phase); s != nil {
		s.Disconnect()
	}
}

func (p *Provider) connected(phase gameplay.Phase) bool {
	s := p.session(phase)
	return s != nil && s.IsConnected()
}

func (p *Provider) ConnectToLoginServer(version gameplay.PacketVersion, address, username, password string) {
	w := packet.NewWriter(packet.C_OPCODE_LOGIN)
	w.WriteDU(clientVersion)
	w.WriteFixedS(username, 24)
	w.WriteFixedS(password, 24)
	w.WriteC(clientType)

	p.start(SessionConfig{
		Phase:   gameplay.PhaseLogin,
		Address: address,
		Hello:   w.Bytes(),
		KeepAlive: func() []byte {
			ka := packet.NewWriter(packet.C_OPCODE_LOGIN_KEEPALIVE)
			ka.WriteFixedS(username, 24)
			return ka.Bytes()
		},
		Terminal: func(reason gameplay.DisconnectReason) gameplay.Event {
			return gameplay.LoginServerDisconnected{Reason: reason}
		},
	}, version)
}

func (p *Provider) ConnectToCharacterServer(version gameplay.PacketVersion, login gameplay.LoginServerLoginData, server gameplay.CharacterServerInformation) {
	w := packet.NewWriter(packet.C_OPCODE_CHARSERVER_LOGIN)
	w.WriteDU(uint32(login.AccountID))
	w.WriteDU(login.LoginID1)
	w.WriteDU(login.LoginID2)
	w.WriteH(0)
	w.WriteC(byte(login.Sex))

	p.mu.Lock()
	p.login = login
	p.mu.Unlock()

	p.start(SessionConfig{
		Phase:   gameplay.PhaseCharacter,
		Address: server.Address(),
		Hello:   w.Bytes(),
		KeepAlive: func() []byte {
			ka := packet.NewWriter(packet.C_OPCODE_CHARSERVER_KEEPALIVE)
			ka.WriteDU(uint32(login.AccountID))
			return ka.Bytes()
		},
		Terminal: func(reason gameplay.DisconnectReason) gameplay.Event {
			return gameplay.CharacterServerDisconnected{Reason: reason}
		},
	}, version)
}

func (p *Provider) ConnectToMapServer(version gameplay.PacketVersion, login gameplay.LoginServerLoginData, character gameplay.CharacterServerLoginData) {
	w := packet.NewWriter(packet.C_OPCODE_MAPSERVER_LOGIN)
	w.WriteDU(uint32(login.AccountID))
	w.WriteDU(uint32(character.CharacterID))
	w.WriteDU(login.LoginID1)
	w.WriteDU(p.clientTick())
	w.WriteC(byte(login.Sex))
	w.WriteBytes(make([]byte, 4))

	p.start(SessionConfig{
		Phase:     gameplay.PhaseMap,
		Address:   character.Address(),
		Hello:     w.Bytes(),
		KeepAlive: p.clientTickPacket,
		Terminal: func(reason gameplay.DisconnectReason) gameplay.Event {
			return gameplay.MapServerDisconnected{Reason: reason}
		},
	}, version)
}

func (p *Provider) clientTickPacket() []byte {
	w := packet.NewWriter(packet.C_OPCODE_REQUEST_SERVER_TICK)
	w.WriteDU(p.clientTick())
	return w.Bytes()
}

func (p *Provider) DisconnectFromLoginServer()     { p.disconnect(gameplay.PhaseLogin) }
func (p *Provider) DisconnectFromCharacterServer() { p.disconnect(gameplay.PhaseCharacter) }
func (p *Provider) DisconnectFromMapServer()       { p.disconnect(gameplay.PhaseMap) }

func (p *Provider) IsLoginServerConnected() bool     { return p.connected(gameplay.PhaseLogin) }
func (p *Provider) IsCharacterServerConnected() bool { return p.connected(gameplay.PhaseCharacter) }
func (p *Provider) IsMapServerConnected() bool       { return p.connected(gameplay.PhaseMap) }
