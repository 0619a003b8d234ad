package data

// ShopItem holds one item entry in an NPC's shop.
type ShopItem struct {
	ItemID       uint32
	SellingPrice uint32 // price the NPC sells at; 0 uses the item price
}

// Shop holds the item list for one NPC.
type Shop struct {
	NpcID        uint32
	SellingItems []*ShopItem
	// Buys reports whether the NPC takes items from the player.
	Buys bool
}

// ShopTable holds all NPC shops indexed by NpcID.
type ShopTable struct {
	shops map[uint32]*Shop
}

// Get returns a shop by NPC id, or nil if not found.
func (t *ShopTable) Get(npcID uint32) *Shop {
	return t.shops[npcID]
}

// Count returns the number of shops loaded.
func (t *ShopTable) Count() int {
	return len(t.shops)
}

type shopYAMLItem struct {
	ItemID       uint32 `yaml:"item_id"`
	SellingPrice uint32 `yaml:"selling_price"`
}

type shopYAMLEntry struct {
	NpcID uint32         `yaml:"npc_id"`
	Buys  bool           `yaml:"buys"`
	Items []shopYAMLItem `yaml:"items"`
}

func newShopTable(entries []shopYAMLEntry) *ShopTable {
	t := &ShopTable{shops: make(map[uint32]*Shop, len(entries))}
	for _, entry := range entries {
		shop := &Shop{NpcID: entry.NpcID, Buys: entry.Buys}
		for i := range entry.Items {
			shop.SellingItems = append(shop.SellingItems, &ShopItem{
				ItemID:       entry.Items[i].ItemID,
				SellingPrice: entry.Items[i].SellingPrice,
			})
		}
		t.shops[entry.NpcID] = shop
	}
	return t
}
