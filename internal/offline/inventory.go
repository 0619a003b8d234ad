package offline

import (
	"context"

	"github.com/hasenbanck/korangar/internal/data"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/persist"
)

// Item rows double as inventory indices.
func inventoryItem(row persist.ItemRow, def *data.Item) gameplay.InventoryItem {
	item := gameplay.InventoryItem{
		Index:  gameplay.InventoryIndex(row.ID),
		ItemID: gameplay.ItemID(row.ItemID),
	}
	var equipped gameplay.EquipPosition
	if row.Equipped {
		equipped = gameplay.EquipPosition(row.EquipPosition)
	}
	if def != nil {
		item.ItemType = def.Type
	}
	if row.EquipPosition != 0 {
		details := gameplay.EquippableItemDetails{
			EquipPosition:    gameplay.EquipPosition(row.EquipPosition),
			EquippedPosition: equipped,
			Identified:       row.Identified,
		}
		if def != nil {
			details.SpriteNumber = def.Sprite
		}
		item.Details = details
		return item
	}
	item.Details = gameplay.RegularItemDetails{
		Amount:           row.Amount,
		EquippedPosition: equipped,
		Identified:       row.Identified,
	}
	return item
}

// inventoryLocked loads the items of character c. p.mu must be held.
func (p *Provider) inventoryLocked(c *persist.CharacterRow) ([]gameplay.InventoryItem, error) {
	rows, err := p.items.LoadByCharID(context.Background(), c.ID)
	if err != nil {
		return nil, err
	}
	items := make([]gameplay.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, inventoryItem(row, p.lib.Items.Get(row.ItemID)))
	}
	return items, nil
}
