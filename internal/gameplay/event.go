package gameplay

import "time"

// Event is a backend-agnostic notification for the UI and world consumers.
// The concrete types below are the complete set; consumers type-switch on them.
type Event interface {
	gameplayEvent()
}

// Connection lifecycle.

type LoginServerConnected struct {
	CharacterServers []CharacterServerInformation
	LoginData        LoginServerLoginData
}

type LoginServerConnectionFailed struct {
	Reason  UnifiedLoginFailedReason
	Message string
}

type LoginServerDisconnected struct {
	Reason DisconnectReason
}

type CharacterServerConnected struct {
	NormalSlotCount int
}

type CharacterServerConnectionFailed struct {
	Reason  UnifiedLoginFailedReason
	Message string
}

type CharacterServerDisconnected struct {
	Reason DisconnectReason
}

type MapServerDisconnected struct {
	Reason DisconnectReason
}

type AccountIDReceived struct {
	AccountID AccountID
}

// Character selection.

type CharacterList struct {
	Characters []CharacterInformation
}

type CharacterSelected struct {
	LoginData CharacterServerLoginData
}

type CharacterSelectionFailed struct {
	Reason  UnifiedCharacterSelectionFailedReason
	Message string
}

type CharacterCreated struct {
	Character CharacterInformation
}

type CharacterCreationFailed struct {
	Reason  UnifiedCharacterCreationFailedReason
	Message string
}

type CharacterDeleted struct{}

type CharacterDeletionFailed struct {
	Reason  UnifiedCharacterDeletionFailedReason
	Message string
}

type CharacterSlotSwitched struct{}

type CharacterSlotSwitchFailed struct{}

type LoggedOut struct{}

// Chat.

type ChatMessage struct {
	Text  string
	Color MessageColor
}

// Entities and the player.

type EntityMove struct {
	EntityID          EntityID
	Origin            WorldPosition
	Destination       WorldPosition
	StartingTimestamp ClientTick
}

type PlayerMove struct {
	Origin            WorldPosition
	Destination       WorldPosition
	StartingTimestamp ClientTick
}

type ChangeMap struct {
	MapName  string
	Position TilePosition
}

type ResurrectPlayer struct {
	EntityID EntityID
}

type AddEntity struct {
	Entity EntityData
}

type RemoveEntity struct {
	EntityID EntityID
	Reason   DisappearanceReason
}

type UpdateStat struct {
	Stat StatUpdate
}

type ChangeJob struct {
	AccountID AccountID
	JobID     uint32
}

type ChangeHair struct {
	AccountID AccountID
	HairID    uint32
}

type UpdateEntityDetails struct {
	EntityID EntityID
	Name     string
}

type UpdateEntityHealth struct {
	EntityID            EntityID
	HealthPoints        int
	MaximumHealthPoints int
}

type PlayerStandUp struct {
	EntityID EntityID
}

type UpdateClientTick struct {
	ClientTick ClientTick
	ReceivedAt time.Time
}

// Inventory.

type SetInventory struct {
	Items []InventoryItem
}

type InventoryItemAdded struct {
	Item InventoryItem
}

type InventoryItemRemoved struct {
	Reason ItemRemovalReason
	Index  InventoryIndex
	Amount uint16
}

type UpdateEquippedPosition struct {
	Index            InventoryIndex
	EquippedPosition EquipPosition
}

// Skills and effects.

type SkillTree struct {
	Skills []SkillInformation
}

type AddSkillUnit struct {
	EntityID EntityID
	UnitID   UnitID
	Position TilePosition
}

type RemoveSkillUnit struct {
	EntityID EntityID
}

type HealEffect struct {
	EntityID   EntityID
	HealAmount int
}

type VisualEffect struct {
	EffectPath string
	EntityID   EntityID
}

type AddQuestEffect struct {
	EntityID EntityID
	Position TilePosition
	Effect   QuestEffect
	Color    uint16
}

type RemoveQuestEffect struct {
	EntityID EntityID
}

// DamageEffect with a nil DamageAmount is a miss.
type DamageEffect struct {
	SourceEntityID      EntityID
	DestinationEntityID EntityID
	DamageAmount        *int
	AttackDuration      uint32
	IsCritical          bool
}

type AttackFailed struct {
	TargetEntityID EntityID
	TargetPosition TilePosition
	PlayerPosition TilePosition
	AttackRange    uint16
}

// Hotkeys and stats.

type SetHotkeyData struct {
	Tab     HotbarTab
	Hotkeys []HotkeyState
}

type InitialStats struct {
	StrengthCost     uint8
	AgilityCost      uint8
	VitalityCost     uint8
	IntelligenceCost uint8
	DexterityCost    uint8
	LuckCost         uint8
}

// NPC dialogs.

type OpenDialog struct {
	Text  string
	NpcID EntityID
}

type AddNextButton struct {
	NpcID EntityID
}

type AddCloseButton struct {
	NpcID EntityID
}

type AddChoiceButtons struct {
	Choices []string
	NpcID   EntityID
}

// Friends.

type SetFriendList struct {
	Friends []Friend
}

type FriendRequest struct {
	Requestee Friend
}

type FriendAdded struct {
	Friend Friend
}

type FriendRemoved struct {
	AccountID   AccountID
	CharacterID CharacterID
}

// Shops.

type AskBuyOrSell struct {
	ShopID ShopID
}

type OpenShop struct {
	Items []ShopItem
}

type BuyingCompleted struct {
	Result BuyShopItemsResult
}

type SellItemList struct {
	Items []SellItem
}

type SellingCompleted struct {
	Result SellItemsResult
}

func (LoginServerConnected) gameplayEvent()            {}
func (LoginServerConnectionFailed) gameplayEvent()     {}
func (LoginServerDisconnected) gameplayEvent()         {}
func (CharacterServerConnected) gameplayEvent()        {}
func (CharacterServerConnectionFailed) gameplayEvent() {}
func (CharacterServerDisconnected) gameplayEvent()     {}
func (MapServerDisconnected) gameplayEvent()           {}
func (AccountIDReceived) gameplayEvent()               {}
func (CharacterList) gameplayEvent()                   {}
func (CharacterSelected) gameplayEvent()               {}
func (CharacterSelectionFailed) gameplayEvent()        {}
func (CharacterCreated) gameplayEvent()                {}
func (CharacterCreationFailed) gameplayEvent()         {}
func (CharacterDeleted) gameplayEvent()                {}
func (CharacterDeletionFailed) gameplayEvent()         {}
func (CharacterSlotSwitched) gameplayEvent()           {}
func (CharacterSlotSwitchFailed) gameplayEvent()       {}
func (LoggedOut) gameplayEvent()                       {}
func (ChatMessage) gameplayEvent()                     {}
func (EntityMove) gameplayEvent()                      {}
func (PlayerMove) gameplayEvent()                      {}
func (ChangeMap) gameplayEvent()                       {}
func (ResurrectPlayer) gameplayEvent()                 {}
func (AddEntity) gameplayEvent()                       {}
func (RemoveEntity) gameplayEvent()                    {}
func (UpdateStat) gameplayEvent()                      {}
func (ChangeJob) gameplayEvent()                       {}
func (ChangeHair) gameplayEvent()                      {}
func (UpdateEntityDetails) gameplayEvent()             {}
func (UpdateEntityHealth) gameplayEvent()              {}
func (PlayerStandUp) gameplayEvent()                   {}
func (UpdateClientTick) gameplayEvent()                {}
func (SetInventory) gameplayEvent()                    {}
func (InventoryItemAdded) gameplayEvent()              {}
func (InventoryItemRemoved) gameplayEvent()            {}
func (UpdateEquippedPosition) gameplayEvent()          {}
func (SkillTree) gameplayEvent()                       {}
func (AddSkillUnit) gameplayEvent()                    {}
func (RemoveSkillUnit) gameplayEvent()                 {}
func (HealEffect) gameplayEvent()                      {}
func (VisualEffect) gameplayEvent()                    {}
func (AddQuestEffect) gameplayEvent()                  {}
func (RemoveQuestEffect) gameplayEvent()               {}
func (DamageEffect) gameplayEvent()                    {}
func (AttackFailed) gameplayEvent()                    {}
func (SetHotkeyData) gameplayEvent()                   {}
func (InitialStats) gameplayEvent()                    {}
func (OpenDialog) gameplayEvent()                      {}
func (AddNextButton) gameplayEvent()                   {}
func (AddCloseButton) gameplayEvent()                  {}
func (AddChoiceButtons) gameplayEvent()                {}
func (SetFriendList) gameplayEvent()                   {}
func (FriendRequest) gameplayEvent()                   {}
func (FriendAdded) gameplayEvent()                     {}
func (FriendRemoved) gameplayEvent()                   {}
func (AskBuyOrSell) gameplayEvent()                    {}
func (OpenShop) gameplayEvent()                        {}
func (BuyingCompleted) gameplayEvent()                 {}
func (SellItemList) gameplayEvent()                    {}
func (SellingCompleted) gameplayEvent()                {}
