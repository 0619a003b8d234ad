package data

// Item types as sent in inventory and shop lists.
const (
	TypeHealing    uint8 = 0
	TypeUsable     uint8 = 2
	TypeEtc        uint8 = 3
	TypeArmor      uint8 = 4
	TypeWeapon     uint8 = 5
	TypeCard       uint8 = 6
	TypeAmmunition uint8 = 10
)

// Item is one entry of the item database.
type Item struct {
	ItemID        uint32 `yaml:"item_id"`
	Name          string `yaml:"name"`
	Type          uint8  `yaml:"type"`
	Price         uint32 `yaml:"price"`
	Weight        uint32 `yaml:"weight"`
	EquipPosition uint32 `yaml:"equip_position"`
	Sprite        uint16 `yaml:"sprite"`
}

// Equippable reports whether the item goes into an equipment slot.
func (it *Item) Equippable() bool {
	return it.EquipPosition != 0
}

// SellPrice is what an NPC pays for one unit.
func (it *Item) SellPrice() uint32 {
	return it.Price / 2
}

// ItemTable indexes items by id.
type ItemTable struct {
	items map[uint32]*Item
}

func newItemTable(list []Item) *ItemTable {
	t := &ItemTable{items: make(map[uint32]*Item, len(list))}
	for i := range list {
		t.items[list[i].ItemID] = &list[i]
	}
	return t
}

// Get returns an item by id, or nil if not found.
func (t *ItemTable) Get(id uint32) *Item {
	return t.items[id]
}

// Count returns the number of items loaded.
func (t *ItemTable) Count() int {
	return len(t.items)
}
