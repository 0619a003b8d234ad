package gameplay

import "fmt"

// Phase is one of the three independently connected server roles.
type Phase int

const (
	PhaseLogin Phase = iota
	PhaseCharacter
	PhaseMap
)

// Phases lists every phase in drain order.
var Phases = [...]Phase{PhaseLogin, PhaseCharacter, PhaseMap}

func (p Phase) String() string {
	switch p {
	case PhaseLogin:
		return "Login"
	case PhaseCharacter:
		return "Character"
	case PhaseMap:
		return "Map"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PacketVersion selects the wire protocol epoch spoken to the servers.
type PacketVersion int

const (
	Version20120307 PacketVersion = iota
	Version20220406
)

func (v PacketVersion) String() string {
	switch v {
	case Version20120307:
		return "20120307"
	case Version20220406:
		return "20220406"
	default:
		return fmt.Sprintf("PacketVersion(%d)", int(v))
	}
}

// ParsePacketVersion accepts the date form used in configuration files.
func ParsePacketVersion(s string) (PacketVersion, error) {
	switch s {
	case "20120307":
		return Version20120307, nil
	case "20220406", "":
		return Version20220406, nil
	default:
		return 0, fmt.Errorf("unsupported packet version %q", s)
	}
}

// NotConnectedError is returned by every command whose phase is not Connected.
type NotConnectedError struct {
	Phase Phase
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("not connected to %s server", e.Phase)
}

// Is lets errors.Is match any NotConnectedError regardless of phase.
func (e *NotConnectedError) Is(target error) bool {
	_, ok := target.(*NotConnectedError)
	return ok
}

// ErrNotConnected is a phase-less target for errors.Is.
var ErrNotConnected error = &NotConnectedError{}

// Provider is the command and query surface shared by the network backend and
// the offline backend. Every command returns a *NotConnectedError when its
// phase is not connected; commands never block on I/O.
type Provider interface {
	// Events appends every event produced since the last call to buf, in
	// arrival order per phase (Login, then Character, then Map).
	Events(buf *EventBuffer)

	ConnectToLoginServer(version PacketVersion, address, username, password string)
	ConnectToCharacterServer(version PacketVersion, login LoginServerLoginData, server CharacterServerInformation)
	ConnectToMapServer(version PacketVersion, login LoginServerLoginData, character CharacterServerLoginData)

	DisconnectFromLoginServer()
	DisconnectFromCharacterServer()
	DisconnectFromMapServer()

	IsLoginServerConnected() bool
	IsCharacterServerConnected() bool
	IsMapServerConnected() bool

	// Character server.
	RequestCharacterList() error
	SelectCharacter(slot int) error
	CreateCharacter(slot int, name string) error
	DeleteCharacter(id CharacterID) error
	SwitchCharacterSlot(origin, destination int) error

	// Map server.
	MapLoaded() error
	RequestClientTick() error
	Respawn() error
	LogOut() error
	PlayerMove(position WorldPosition) error
	WarpToMap(mapName string, position TilePosition) error
	EntityDetails(id EntityID) error
	PlayerAttack(id EntityID) error
	SendChatMessage(playerName, text string) error
	StartDialog(npc EntityID) error
	NextDialog(npc EntityID) error
	CloseDialog(npc EntityID) error
	ChooseDialogOption(npc EntityID, option int8) error
	RequestItemEquip(index InventoryIndex, position EquipPosition) error
	RequestItemUnequip(index InventoryIndex) error
	CastSkill(skill SkillID, level SkillLevel, target EntityID) error
	CastGroundSkill(skill SkillID, level SkillLevel, target TilePosition) error
	CastChannelingSkill(skill SkillID, level SkillLevel, target EntityID) error
	StopChannelingSkill(skill SkillID) error
	AddFriend(name string) error
	RemoveFriend(account AccountID, character CharacterID) error
	RejectFriendRequest(account AccountID, character CharacterID) error
	AcceptFriendRequest(account AccountID, character CharacterID) error
	SetHotkeyData(tab HotbarTab, slot HotbarSlot, data HotkeyData) error
	SelectBuyOrSell(shop ShopID, choice BuyOrSell) error
	PurchaseItems(items []PurchaseItem) error
	CloseShop() error
	SellItems(items []SoldItem) error
	RequestStatUp(stat StatUpType) error
}
