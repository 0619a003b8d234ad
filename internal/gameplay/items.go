package gameplay

// ItemSlots holds the four card/enchant slots of an item.
type ItemSlots [4]uint32

// InventoryItem is one entry of the player inventory. Details is either
// RegularItemDetails or EquippableItemDetails.
type InventoryItem struct {
	Index              InventoryIndex
	ItemID             ItemID
	ItemType           uint8
	Slot               ItemSlots
	HireExpirationDate uint32
	Details            ItemDetails
}

// ItemDetails is implemented by RegularItemDetails and EquippableItemDetails.
type ItemDetails interface {
	itemDetails()
}

type RegularItemDetails struct {
	Amount           uint16
	EquippedPosition EquipPosition
	Identified       bool
}

// ItemOption is one random option rolled on an equippable item.
type ItemOption struct {
	Index     uint16
	Value     uint16
	Parameter uint8
}

type EquippableItemDetails struct {
	EquipPosition    EquipPosition
	EquippedPosition EquipPosition
	BindOnEquipType  uint16
	SpriteNumber     uint16
	Options          []ItemOption
	RefinementLevel  uint8
	EnchantmentLevel uint8
	Identified       bool
	Broken           bool
}

func (RegularItemDetails) itemDetails()    {}
func (EquippableItemDetails) itemDetails() {}

// ItemQuantity is the stock of a shop entry; Infinite means the NPC never runs out.
type ItemQuantity struct {
	Infinite bool
	Count    uint32
}

type ShopItem struct {
	ItemID   ItemID
	ItemType uint8
	Price    uint32
	Quantity ItemQuantity
	Weight   uint32
	Location uint32
}

// PurchaseItem is one line of a buy request.
type PurchaseItem struct {
	ItemID ItemID
	Amount uint32
}

// SellItem is an inventory entry the shop offers to buy.
type SellItem struct {
	Index           InventoryIndex
	Price           uint32
	OverchargePrice uint32
}

// SoldItem is one line of a sell request.
type SoldItem struct {
	Index  InventoryIndex
	Amount uint16
}
