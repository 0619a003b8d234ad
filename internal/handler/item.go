package handler

import (
	"errors"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// ErrPickupFailureUnhandled is returned for item pickup results other than
// success. They produce no event until a failure event exists.
var ErrPickupFailureUnhandled = errors.New("item pickup failure is not handled")

// Wire sizes of one inventory entry.
const (
	RegularItemSize    = 34
	EquippableItemSize = 68
	maxItemOptions     = 5
)

const (
	itemFlagIdentified = 1 << 0
	itemFlagBroken     = 1 << 1
)

func handleInventoryStart(st *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadC()        // inventory type
	r.ReadFixedS(24) // name
	return gameplay.NoEvents(), st.Begin()
}

func handleRegularItemList(st *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadC() // inventory type
	items := make([]gameplay.InventoryItem, 0, r.Remaining()/RegularItemSize)
	for r.Remaining() >= RegularItemSize {
		items = append(items, readRegularItem(r))
	}
	return gameplay.NoEvents(), st.Append(items)
}

func handleEquippableItemList(st *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadC() // inventory type
	items := make([]gameplay.InventoryItem, 0, r.Remaining()/EquippableItemSize)
	for r.Remaining() >= EquippableItemSize {
		items = append(items, readEquippableItem(r))
	}
	return gameplay.NoEvents(), st.Append(items)
}

func handleInventoryEnd(st *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadC() // inventory type
	r.ReadC() // flag
	items, err := st.End()
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.SetInventory{Items: items})
}

func readSlots(r *packet.Reader) gameplay.ItemSlots {
	var slots gameplay.ItemSlots
	for i := range slots {
		slots[i] = r.ReadDU()
	}
	return slots
}

func readRegularItem(r *packet.Reader) gameplay.InventoryItem {
	item := gameplay.InventoryItem{
		Index:    gameplay.InventoryIndex(r.ReadH()),
		ItemID:   gameplay.ItemID(r.ReadDU()),
		ItemType: r.ReadC(),
	}
	details := gameplay.RegularItemDetails{
		Amount:           r.ReadH(),
		EquippedPosition: gameplay.EquipPosition(r.ReadDU()),
	}
	item.Slot = readSlots(r)
	item.HireExpirationDate = r.ReadDU()
	details.Identified = r.ReadC()&itemFlagIdentified != 0
	item.Details = details
	return item
}

func readOptions(r *packet.Reader, count int) []gameplay.ItemOption {
	var options []gameplay.ItemOption
	for i := 0; i < maxItemOptions; i++ {
		opt := gameplay.ItemOption{Index: r.ReadH(), Value: r.ReadH(), Parameter: r.ReadC()}
		if i < count {
			options = append(options, opt)
		}
	}
	return options
}

func readEquippableItem(r *packet.Reader) gameplay.InventoryItem {
	item := gameplay.InventoryItem{
		Index:    gameplay.InventoryIndex(r.ReadH()),
		ItemID:   gameplay.ItemID(r.ReadDU()),
		ItemType: r.ReadC(),
	}
	details := gameplay.EquippableItemDetails{
		EquipPosition:    gameplay.EquipPosition(r.ReadDU()),
		EquippedPosition: gameplay.EquipPosition(r.ReadDU()),
	}
	item.Slot = readSlots(r)
	item.HireExpirationDate = r.ReadDU()
	details.BindOnEquipType = r.ReadH()
	details.SpriteNumber = r.ReadH()
	count := int(r.ReadC())
	details.Options = readOptions(r, count)
	details.RefinementLevel = r.ReadC()
	details.EnchantmentLevel = r.ReadC()
	flags := r.ReadC()
	details.Identified = flags&itemFlagIdentified != 0
	details.Broken = flags&itemFlagBroken != 0
	item.Details = details
	return item
}

// handleItemPickup adds a picked up item. A non-equippable item is one whose
// equip position is empty.
func handleItemPickup(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	index := gameplay.InventoryIndex(r.ReadH())
	count := r.ReadH()
	id := gameplay.ItemID(r.ReadDU())
	identified := r.ReadC() != 0
	broken := r.ReadC() != 0
	cards := readSlots(r)
	equip := gameplay.EquipPosition(r.ReadDU())
	itemType := r.ReadC()
	result := r.ReadC()
	hire := r.ReadDU()
	bind := r.ReadH()
	options := readOptions(r, maxItemOptions)
	r.ReadC() // favorite
	r.ReadH() // look
	refine := r.ReadC()
	enchant := r.ReadC()

	if r.Err() != nil {
		return none()
	}
	if result != 0 {
		return gameplay.NoEvents(), ErrPickupFailureUnhandled
	}

	item := gameplay.InventoryItem{
		Index:              index,
		ItemID:             id,
		ItemType:           itemType,
		Slot:               cards,
		HireExpirationDate: hire,
	}
	if equip == gameplay.EquipNone {
		item.Details = gameplay.RegularItemDetails{
			Amount:           count,
			EquippedPosition: equip,
			Identified:       identified,
		}
	} else {
		nonEmpty := options[:0]
		for _, opt := range options {
			if opt.Index != 0 {
				nonEmpty = append(nonEmpty, opt)
			}
		}
		item.Details = gameplay.EquippableItemDetails{
			EquipPosition:    equip,
			EquippedPosition: gameplay.EquipNone,
			BindOnEquipType:  bind,
			Options:          nonEmpty,
			RefinementLevel:  refine,
			EnchantmentLevel: enchant,
			Identified:       identified,
			Broken:           broken,
		}
	}
	return one(gameplay.InventoryItemAdded{Item: item})
}

func handleRemoveItem(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.InventoryItemRemoved{
		Reason: gameplay.ItemRemovalReason(r.ReadH()),
		Index:  gameplay.InventoryIndex(r.ReadH()),
		Amount: r.ReadH(),
	})
}

func handleEquipStatus(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	index := gameplay.InventoryIndex(r.ReadH())
	position := gameplay.EquipPosition(r.ReadDU())
	r.ReadH() // view sprite
	if r.ReadC() != 0 {
		return none()
	}
	return one(gameplay.UpdateEquippedPosition{Index: index, EquippedPosition: position})
}

func handleUnequipStatus(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	index := gameplay.InventoryIndex(r.ReadH())
	r.ReadDU() // previous position
	if r.ReadC() != 0 {
		return none()
	}
	return one(gameplay.UpdateEquippedPosition{Index: index, EquippedPosition: gameplay.EquipNone})
}
