package gameplay

import (
	"fmt"
	"net/netip"
)

type (
	AccountID      uint32
	CharacterID    uint32
	EntityID       uint32
	InventoryIndex uint16
	ItemID         uint32
	SkillID        uint16
	SkillLevel     uint16
	ShopID         uint32
	UnitID         uint32
	ClientTick     uint32
	HotbarTab      uint16
	HotbarSlot     uint16
)

// Sex as sent by the login server.
type Sex uint8

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "Female"
	case SexMale:
		return "Male"
	default:
		return fmt.Sprintf("Sex(%d)", uint8(s))
	}
}

// Direction is one of the eight compass directions, 0 = north, counter-clockwise.
type Direction uint8

type WorldPosition struct {
	X, Y      uint16
	Direction Direction
}

type TilePosition struct {
	X, Y uint16
}

type Color struct {
	Red, Green, Blue uint8
}

// EquipPosition is a bit set of equipment slots.
type EquipPosition uint32

const EquipNone EquipPosition = 0

// LoginServerLoginData is handed from the login phase to the character phase.
type LoginServerLoginData struct {
	AccountID AccountID
	LoginID1  uint32
	LoginID2  uint32
	Sex       Sex
}

// CharacterServerLoginData is handed from the character phase to the map phase.
type CharacterServerLoginData struct {
	ServerIP    netip.Addr
	ServerPort  uint16
	CharacterID CharacterID
}

// Address returns the map server address in host:port form.
func (d CharacterServerLoginData) Address() string {
	return netip.AddrPortFrom(d.ServerIP, d.ServerPort).String()
}

type CharacterServerInformation struct {
	ServerIP   netip.Addr
	ServerPort uint16
	Name       string
	UserCount  uint16
	ServerType uint16
	DisplayNew uint16
}

// Address returns the character server address in host:port form.
func (c CharacterServerInformation) Address() string {
	return netip.AddrPortFrom(c.ServerIP, c.ServerPort).String()
}

type CharacterInformation struct {
	CharacterID    CharacterID
	Experience     int64
	Money          int32
	JobExperience  int64
	JobLevel       int32
	HealthPoints   int64
	MaxHealth      int64
	SpellPoints    int64
	MaxSpellPoints int64
	MovementSpeed  uint16
	Job            uint16
	Head           uint16
	Weapon         uint32
	BaseLevel      uint16
	Name           string
	Strength       uint8
	Agility        uint8
	Vitality       uint8
	Intelligence   uint8
	Dexterity      uint8
	Luck           uint8
	Slot           uint8
	MapName        string
	Sex            Sex
}

type EntityData struct {
	EntityID      EntityID
	ObjectType    uint8
	MovementSpeed uint16
	Job           uint16
	Head          uint16
	HealthPoints  int32
	MaxHealth     int32
	Sex           Sex
	Position      WorldPosition
	// Destination is set for entities that appeared while walking.
	Destination *WorldPosition
	Name        string
}

// DisappearanceReason tells why an entity left the field of view.
type DisappearanceReason uint8

const (
	DisappearanceOutOfSight DisappearanceReason = iota
	DisappearanceDied
	DisappearanceLoggedOut
	DisappearanceTeleported
	DisappearanceTrickDead
)

// StatUpdate is one status value pushed by the map server. Bonus is only set
// by the base-stat variant.
type StatUpdate struct {
	Kind  uint16
	Value int64
	Bonus int64
}

// Status kinds the client cares about outside the status window.
const (
	StatKindBaseExp = 1
	StatKindJobExp  = 2
	StatKindZeny    = 20
)

type SkillInformation struct {
	SkillID     SkillID
	SkillType   uint32
	SkillLevel  SkillLevel
	SpellPoints uint16
	AttackRange uint16
	Name        string
	Upgradable  bool
}

// HotkeyData is the raw binding of one hotbar slot.
type HotkeyData struct {
	IsSkill  bool
	SkillID  uint32
	Quantity uint16
}

// HotkeyState is either unbound or bound to Data.
type HotkeyState struct {
	Bound bool
	Data  HotkeyData
}

type Friend struct {
	AccountID   AccountID
	CharacterID CharacterID
	Name        string
}

// MessageColorKind selects how a chat line is tinted.
type MessageColorKind uint8

const (
	MessageColorRGB MessageColorKind = iota
	MessageColorBroadcast
	MessageColorServer
	MessageColorError
	MessageColorInformation
)

type MessageColor struct {
	Kind MessageColorKind
	// RGB is only meaningful for MessageColorRGB.
	RGB Color
}

func RGBColor(r, g, b uint8) MessageColor {
	return MessageColor{Kind: MessageColorRGB, RGB: Color{Red: r, Green: g, Blue: b}}
}

// QuestEffect is the minimap/overhead marker shown on an NPC.
type QuestEffect uint16

const QuestEffectNone QuestEffect = 9999

type BuyOrSell uint8

const (
	Buy  BuyOrSell = 0
	Sell BuyOrSell = 1
)

type BuyShopItemsResult uint8

const (
	BuyResultSuccess BuyShopItemsResult = iota
	BuyResultNotEnoughZeny
	BuyResultOverweight
	BuyResultTooManyItems
	BuyResultError
)

type SellItemsResult uint8

const (
	SellResultSuccess SellItemsResult = iota
	SellResultError
)

// StatUpType is a base stat the player can raise.
type StatUpType uint16

const (
	StatStrength     StatUpType = 13
	StatAgility      StatUpType = 14
	StatVitality     StatUpType = 15
	StatIntelligence StatUpType = 16
	StatDexterity    StatUpType = 17
	StatLuck         StatUpType = 18
)

// ItemRemovalReason is why an item left the inventory.
type ItemRemovalReason uint16

const (
	RemovalNormal ItemRemovalReason = iota
	RemovalItemUsedForSkill
	RemovalRefinementFailed
	RemovalMaterialChanged
	RemovalMovedToStorage
	RemovalMovedToCart
	RemovalItemSold
	RemovalConsumedByFourSpiritAnalysis
)
