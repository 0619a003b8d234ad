package client

import (
	"errors"
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"go.uber.org/zap"
)

// Stage is how far the autopilot has walked the login flow.
type Stage int

const (
	StageIdle Stage = iota
	StageLogin
	StageCharacter
	StageMap
	StageInWorld
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageLogin:
		return "Login"
	case StageCharacter:
		return "Character"
	case StageMap:
		return "Map"
	case StageInWorld:
		return "InWorld"
	case StageFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Config holds the credentials and character choice of one run.
type Config struct {
	Version       gameplay.PacketVersion
	LoginAddress  string
	Username      string
	Password      string
	CharacterSlot int
	// CharacterName is used to create a character when the slot is empty.
	// Empty disables creation.
	CharacterName string
}

// Autopilot drives a Provider from the login server into the world and then
// keeps the map connection alive. It is not safe for concurrent use; the
// game loop calls Tick once per frame.
type Autopilot struct {
	provider gameplay.Provider
	cfg      Config
	log      *zap.Logger

	buf   *gameplay.EventBuffer
	stage Stage
	err   error

	login   gameplay.LoginServerLoginData
	created bool

	mapName  string
	position gameplay.TilePosition
	zeny     int32
	chat     []string

	// OnEvent, when set, sees every drained event before the autopilot
	// reacts to it.
	OnEvent func(gameplay.Event)
}

func New(provider gameplay.Provider, cfg Config, log *zap.Logger) *Autopilot {
	return &Autopilot{
		provider: provider,
		cfg:      cfg,
		log:      log,
		buf:      gameplay.NewEventBuffer(),
	}
}

func (a *Autopilot) Stage() Stage { return a.stage }

// Err returns why the autopilot stopped, if it failed.
func (a *Autopilot) Err() error { return a.err }

func (a *Autopilot) MapName() string { return a.mapName }

func (a *Autopilot) Position() gameplay.TilePosition { return a.position }

func (a *Autopilot) Zeny() int32 { return a.zeny }

// Chat returns the chat lines received so far.
func (a *Autopilot) Chat() []string { return a.chat }

// Start opens the login connection.
func (a *Autopilot) Start() {
	a.stage = StageLogin
	a.log.Info("connecting to login server",
		zap.String("address", a.cfg.LoginAddress),
		zap.String("username", a.cfg.Username),
		zap.Stringer("version", a.cfg.Version),
	)
	a.provider.ConnectToLoginServer(a.cfg.Version, a.cfg.LoginAddress, a.cfg.Username, a.cfg.Password)
}

// Tick drains every pending event and reacts to it.
func (a *Autopilot) Tick() {
	a.provider.Events(a.buf)
	for _, ev := range a.buf.Drain() {
		if a.OnEvent != nil {
			a.OnEvent(ev)
		}
		if a.stage != StageFailed {
			a.handle(ev)
		}
	}
}

// Stop logs out of the map server and closes every connection.
func (a *Autopilot) Stop() {
	if a.provider.IsMapServerConnected() {
		if err := a.provider.LogOut(); err != nil {
			a.log.Debug("logout failed", zap.Error(err))
		}
	}
	a.provider.DisconnectFromMapServer()
	a.provider.DisconnectFromCharacterServer()
	a.provider.DisconnectFromLoginServer()
	a.Tick()
}

func (a *Autopilot) fail(err error) {
	if a.stage == StageFailed {
		return
	}
	a.stage = StageFailed
	a.err = err
	a.log.Error("autopilot stopped", zap.Error(err))
}

func (a *Autopilot) handle(ev gameplay.Event) {
	switch e := ev.(type) {
	case gameplay.LoginServerConnected:
		if len(e.CharacterServers) == 0 {
			a.fail(errors.New("login server offered no character server"))
			return
		}
		server := e.CharacterServers[0]
		a.login = e.LoginData
		a.stage = StageCharacter
		a.log.Info("login accepted",
			zap.Uint32("account", uint32(e.LoginData.AccountID)),
			zap.String("server", server.Name),
			zap.String("address", server.Address()),
		)
		a.provider.ConnectToCharacterServer(a.cfg.Version, e.LoginData, server)

	case gameplay.LoginServerConnectionFailed:
		a.fail(fmt.Errorf("login refused: %s", e.Message))

	case gameplay.LoginServerDisconnected:
		if e.Reason != gameplay.ClosedByClient && a.stage == StageLogin {
			a.fail(fmt.Errorf("login server: %s", e.Reason))
		}

	case gameplay.CharacterServerConnectionFailed:
		a.fail(fmt.Errorf("character server refused: %s", e.Message))

	case gameplay.CharacterServerConnected:
		a.log.Debug("character server connected", zap.Int("slots", e.NormalSlotCount))
		// The login server is done once the character server took over.
		a.provider.DisconnectFromLoginServer()

	case gameplay.CharacterList:
		a.pickCharacter(e.Characters)

	case gameplay.CharacterCreated:
		a.log.Info("character created", zap.String("name", e.Character.Name), zap.Uint8("slot", e.Character.Slot))
		a.selectCharacter()

	case gameplay.CharacterCreationFailed:
		a.fail(fmt.Errorf("character creation: %s", e.Message))

	case gameplay.CharacterSelected:
		a.stage = StageMap
		a.log.Info("character selected",
			zap.Uint32("character", uint32(e.LoginData.CharacterID)),
			zap.String("map_server", e.LoginData.Address()),
		)
		a.provider.ConnectToMapServer(a.cfg.Version, a.login, e.LoginData)

	case gameplay.CharacterSelectionFailed:
		a.fail(fmt.Errorf("character selection: %s", e.Message))

	case gameplay.CharacterServerDisconnected:
		if e.Reason != gameplay.ClosedByClient && a.stage == StageCharacter {
			a.fail(fmt.Errorf("character server: %s", e.Reason))
		}

	case gameplay.ChangeMap:
		a.mapName = e.MapName
		a.position = e.Position
		a.log.Info("entered map", zap.String("map", e.MapName), zap.Uint16("x", e.Position.X), zap.Uint16("y", e.Position.Y))
		if err := a.provider.MapLoaded(); err != nil {
			a.fail(fmt.Errorf("map loaded: %w", err))
			return
		}
		a.stage = StageInWorld

	case gameplay.PlayerMove:
		a.position = gameplay.TilePosition{X: e.Destination.X, Y: e.Destination.Y}

	case gameplay.ChatMessage:
		a.chat = append(a.chat, e.Text)
		a.log.Info("chat", zap.String("text", e.Text))

	case gameplay.UpdateStat:
		if e.Stat.Kind == gameplay.StatKindZeny {
			a.zeny = int32(e.Stat.Value)
		}

	case gameplay.MapServerDisconnected:
		if e.Reason == gameplay.ClosedByClient {
			return
		}
		if a.stage == StageMap || a.stage == StageInWorld {
			a.fail(fmt.Errorf("map server: %s", e.Reason))
		}

	case gameplay.LoggedOut:
		a.log.Info("logged out")
	}
}

func (a *Autopilot) pickCharacter(list []gameplay.CharacterInformation) {
	for _, c := range list {
		if int(c.Slot) == a.cfg.CharacterSlot {
			a.log.Info("using character", zap.String("name", c.Name), zap.Int("slot", a.cfg.CharacterSlot))
			a.selectCharacter()
			return
		}
	}
	if a.cfg.CharacterName == "" || a.created {
		a.fail(fmt.Errorf("no character in slot %d", a.cfg.CharacterSlot))
		return
	}
	a.created = true
	if err := a.provider.CreateCharacter(a.cfg.CharacterSlot, a.cfg.CharacterName); err != nil {
		a.fail(fmt.Errorf("create character: %w", err))
	}
}

func (a *Autopilot) selectCharacter() {
	if err := a.provider.SelectCharacter(a.cfg.CharacterSlot); err != nil {
		a.fail(fmt.Errorf("select character: %w", err))
	}
}
