package offline

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/hasenbanck/korangar/internal/data"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/persist"
	"github.com/hasenbanck/korangar/internal/scripting"
	"go.uber.org/zap"
)

// ErrNotImplemented is returned by commands the offline backend does not
// simulate. The connection check still runs first.
var ErrNotImplemented = errors.New("not implemented by the offline backend")

// Loopback addresses handed out in login data so callers can pass them on
// unchanged.
var (
	loopback      = netip.AddrFrom4([4]byte{127, 0, 0, 1})
	characterPort = uint16(6121)
	mapPort       = uint16(5121)
)

type Options struct {
	// AutoCreateAccounts registers unknown usernames on first login.
	AutoCreateAccounts bool
}

// Provider is the offline gameplay backend. Every connect succeeds or fails
// synchronously and commands push their events before returning, so a
// phase is Connected as soon as its connect call returns.
type Provider struct {
	lib      *data.Library
	accounts *persist.AccountRepo
	chars    *persist.CharacterRepo
	items    *persist.ItemRepo
	scripts  *scripting.Engine
	opts     Options
	log      *zap.Logger

	queues [3]*gameplay.EventQueue

	mu        sync.Mutex
	connected [3]bool
	account   *persist.AccountRow
	login     gameplay.LoginServerLoginData
	// selected is the character chosen on the character server; character
	// is the one the map session plays. Only ConnectToMapServer copies one
	// into the other.
	selected  *persist.CharacterRow
	character *persist.CharacterRow
	position  gameplay.WorldPosition
	dialog    dialogState
	shop      *data.Shop

	started time.Time
}

var _ gameplay.Provider = (*Provider)(nil)

func New(lib *data.Library, db *persist.DB, scripts *scripting.Engine, opts Options, log *zap.Logger) *Provider {
	p := &Provider{
		lib:      lib,
		accounts: persist.NewAccountRepo(db),
		chars:    persist.NewCharacterRepo(db),
		items:    persist.NewItemRepo(db),
		scripts:  scripts,
		opts:     opts,
		log:      log.With(zap.String("backend", "offline")),
		started:  time.Now(),
	}
	for _, phase := range gameplay.Phases {
		p.queues[phase] = gameplay.NewEventQueue()
	}
	return p
}

// Events drains the login, character and map queues in that order.
func (p *Provider) Events(buf *gameplay.EventBuffer) {
	for _, q := range p.queues {
		q.DrainInto(buf)
	}
}

func (p *Provider) push(phase gameplay.Phase, events ...gameplay.Event) {
	for _, e := range events {
		p.queues[phase].Push(e)
	}
}

func (p *Provider) clientTick() gameplay.ClientTick {
	return gameplay.ClientTick(time.Since(p.started).Milliseconds())
}

// requireLocked fails with a NotConnectedError unless phase is connected.
// p.mu must be held.
func (p *Provider) requireLocked(phase gameplay.Phase) error {
	if !p.connected[phase] {
		return &gameplay.NotConnectedError{Phase: phase}
	}
	return nil
}

// terminal builds the disconnect event of a phase.
func terminal(phase gameplay.Phase, reason gameplay.DisconnectReason) gameplay.Event {
	switch phase {
	case gameplay.PhaseLogin:
		return gameplay.LoginServerDisconnected{Reason: reason}
	case gameplay.PhaseCharacter:
		return gameplay.CharacterServerDisconnected{Reason: reason}
	default:
		return gameplay.MapServerDisconnected{Reason: reason}
	}
}

// disconnectLocked closes a connected phase and reports reason. p.mu must be
// held.
func (p *Provider) disconnectLocked(phase gameplay.Phase, reason gameplay.DisconnectReason) {
	if !p.connected[phase] {
		return
	}
	p.connected[phase] = false
	p.push(phase, terminal(phase, reason))
	p.log.Info("offline session closed", zap.Stringer("phase", phase), zap.Stringer("reason", reason))
}

func (p *Provider) disconnect(phase gameplay.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectLocked(phase, gameplay.ClosedByClient)
}

func (p *Provider) isConnected(phase gameplay.Phase) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected[phase]
}

func (p *Provider) DisconnectFromLoginServer()     { p.disconnect(gameplay.PhaseLogin) }
func (p *Provider) DisconnectFromCharacterServer() { p.disconnect(gameplay.PhaseCharacter) }
func (p *Provider) DisconnectFromMapServer()       { p.disconnect(gameplay.PhaseMap) }

func (p *Provider) IsLoginServerConnected() bool     { return p.isConnected(gameplay.PhaseLogin) }
func (p *Provider) IsCharacterServerConnected() bool { return p.isConnected(gameplay.PhaseCharacter) }
func (p *Provider) IsMapServerConnected() bool       { return p.isConnected(gameplay.PhaseMap) }

// parseUsername splits the "_M" / "_F" registration suffix off a username.
func parseUsername(username string) (string, gameplay.Sex, bool) {
	switch {
	case strings.HasSuffix(username, "_M"):
		return strings.TrimSuffix(username, "_M"), gameplay.SexMale, true
	case strings.HasSuffix(username, "_F"):
		return strings.TrimSuffix(username, "_F"), gameplay.SexFemale, true
	default:
		return username, gameplay.SexMale, false
	}
}

// ConnectToLoginServer authenticates against the local account store. A
// refused login reports LoginServerConnectionFailed and leaves the phase
// disconnected.
func (p *Provider) ConnectToLoginServer(version gameplay.PacketVersion, address, username, password string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectLocked(gameplay.PhaseLogin, gameplay.ClosedByClient)

	ctx := context.Background()
	name, sex, hasSuffix := parseUsername(username)
	log := p.log.With(zap.String("account", name), zap.Stringer("version", version))

	fail := func(reason gameplay.UnifiedLoginFailedReason) {
		log.Info("offline login refused", zap.String("reason", reason.String()))
		p.push(gameplay.PhaseLogin, gameplay.LoginServerConnectionFailed{Reason: reason, Message: reason.Message()})
	}

	acct, err := p.accounts.Load(ctx, name)
	if err != nil {
		log.Error("load account", zap.Error(err))
		fail(gameplay.LoginRejectedFromServer)
		return
	}
	if acct == nil {
		if !p.opts.AutoCreateAccounts && !hasSuffix {
			fail(gameplay.LoginUnregisteredID)
			return
		}
		acct, err = p.accounts.Create(ctx, name, password, uint8(sex))
		if err != nil {
			log.Error("create account", zap.Error(err))
			fail(gameplay.LoginRejectedFromServer)
			return
		}
		log.Info("offline account created", zap.Stringer("sex", sex))
	} else if !p.accounts.ValidatePassword(acct.PasswordHash, password) {
		fail(gameplay.LoginIncorrectPassword)
		return
	}
	if err := p.accounts.UpdateLastActive(ctx, acct.ID); err != nil {
		log.Warn("update last active", zap.Error(err))
	}

	tick := uint32(time.Now().UnixNano())
	p.account = acct
	p.login = gameplay.LoginServerLoginData{
		AccountID: gameplay.AccountID(acct.ID),
		LoginID1:  tick,
		LoginID2:  tick ^ acct.ID,
		Sex:       gameplay.Sex(acct.Sex),
	}
	p.connected[gameplay.PhaseLogin] = true

	p.push(gameplay.PhaseLogin, gameplay.LoginServerConnected{
		CharacterServers: []gameplay.CharacterServerInformation{{
			ServerIP:   loopback,
			ServerPort: characterPort,
			Name:       p.lib.Server.Name,
			UserCount:  p.lib.Server.UserCount,
		}},
		LoginData: p.login,
	})
	log.Info("offline login accepted")
}

// ConnectToCharacterServer accepts only the login data issued by the last
// successful login.
func (p *Provider) ConnectToCharacterServer(version gameplay.PacketVersion, login gameplay.LoginServerLoginData, server gameplay.CharacterServerInformation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectLocked(gameplay.PhaseCharacter, gameplay.ClosedByClient)

	if p.account == nil || login != p.login {
		reason := gameplay.LoginRejectedFromServer
		p.push(gameplay.PhaseCharacter, gameplay.CharacterServerConnectionFailed{Reason: reason, Message: reason.Message()})
		return
	}
	p.connected[gameplay.PhaseCharacter] = true
	p.push(gameplay.PhaseCharacter, gameplay.CharacterServerConnected{NormalSlotCount: p.lib.Character.NormalSlots})
	p.pushCharacterListLocked()
}

// ConnectToMapServer places the selected character on its saved map.
func (p *Provider) ConnectToMapServer(version gameplay.PacketVersion, login gameplay.LoginServerLoginData, character gameplay.CharacterServerLoginData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnectLocked(gameplay.PhaseMap, gameplay.ClosedByClient)

	if p.account == nil || login != p.login || p.selected == nil || gameplay.CharacterID(p.selected.ID) != character.CharacterID {
		p.push(gameplay.PhaseMap, gameplay.MapServerDisconnected{Reason: gameplay.FailedToConnect})
		return
	}

	inventory, err := p.inventoryLocked(p.selected)
	if err != nil {
		p.log.Error("load inventory", zap.Error(err))
		p.push(gameplay.PhaseMap, gameplay.MapServerDisconnected{Reason: gameplay.FailedToConnect})
		return
	}

	active := *p.selected
	p.character = &active
	p.connected[gameplay.PhaseMap] = true
	p.dialog = dialogState{}
	p.shop = nil
	p.position = gameplay.WorldPosition{X: p.character.X, Y: p.character.Y}

	p.push(gameplay.PhaseMap,
		gameplay.AccountIDReceived{AccountID: gameplay.AccountID(p.account.ID)},
		gameplay.ChangeMap{
			MapName:  p.character.MapName,
			Position: gameplay.TilePosition{X: p.character.X, Y: p.character.Y},
		},
		gameplay.SetInventory{Items: inventory},
		gameplay.UpdateClientTick{ClientTick: p.clientTick(), ReceivedAt: time.Now()},
	)
	p.log.Info("offline map entered",
		zap.String("character", p.character.Name),
		zap.String("map", p.character.MapName),
	)
}
