package offline

import (
	"context"
	"math"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/persist"
	"go.uber.org/zap"
)

func (p *Provider) SelectBuyOrSell(id gameplay.ShopID, choice gameplay.BuyOrSell) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}

	shop := p.lib.Shops.Get(uint32(id))
	if shop == nil {
		p.errorMessage("This NPC does not trade.")
		return nil
	}
	p.shop = shop

	if choice == gameplay.Buy {
		items := make([]gameplay.ShopItem, 0, len(shop.SellingItems))
		for _, it := range shop.SellingItems {
			def := p.lib.Items.Get(it.ItemID)
			price := it.SellingPrice
			if price == 0 {
				price = def.Price
			}
			items = append(items, gameplay.ShopItem{
				ItemID:   gameplay.ItemID(it.ItemID),
				ItemType: def.Type,
				Price:    price,
				Quantity: gameplay.ItemQuantity{Infinite: true},
				Weight:   def.Weight,
			})
		}
		p.push(gameplay.PhaseMap, gameplay.OpenShop{Items: items})
		return nil
	}

	var sellable []gameplay.SellItem
	if shop.Buys {
		rows, err := p.items.LoadByCharID(context.Background(), p.character.ID)
		if err != nil {
			p.log.Error("load inventory", zap.Error(err))
			return nil
		}
		for _, row := range rows {
			def := p.lib.Items.Get(row.ItemID)
			if def == nil || row.Equipped {
				continue
			}
			sellable = append(sellable, gameplay.SellItem{
				Index:           gameplay.InventoryIndex(row.ID),
				Price:           def.SellPrice(),
				OverchargePrice: def.SellPrice(),
			})
		}
	}
	p.push(gameplay.PhaseMap, gameplay.SellItemList{Items: sellable})
	return nil
}

// priceOf looks up what the open shop charges for id; ok is false when the
// shop does not sell it.
func (p *Provider) priceOf(id gameplay.ItemID) (uint32, bool) {
	for _, it := range p.shop.SellingItems {
		if it.ItemID != uint32(id) {
			continue
		}
		if it.SellingPrice != 0 {
			return it.SellingPrice, true
		}
		return p.lib.Items.Get(it.ItemID).Price, true
	}
	return 0, false
}

func (p *Provider) PurchaseItems(items []gameplay.PurchaseItem) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}

	result := func(r gameplay.BuyShopItemsResult) error {
		p.push(gameplay.PhaseMap, gameplay.BuyingCompleted{Result: r})
		return nil
	}
	if p.shop == nil {
		return result(gameplay.BuyResultError)
	}

	var total uint64
	for _, it := range items {
		price, ok := p.priceOf(it.ItemID)
		if !ok || it.Amount == 0 || it.Amount > math.MaxUint16 {
			return result(gameplay.BuyResultError)
		}
		total += uint64(price) * uint64(it.Amount)
	}
	if total > uint64(p.character.Zeny) {
		return result(gameplay.BuyResultNotEnoughZeny)
	}

	var grants []persist.ItemGrant
	for _, it := range items {
		def := p.lib.Items.Get(uint32(it.ItemID))
		amount := uint16(it.Amount)
		// Equippable items never stack.
		if def.Equippable() {
			for i := uint16(0); i < amount; i++ {
				grants = append(grants, persist.ItemGrant{ItemID: def.ItemID, Amount: 1, EquipPosition: def.EquipPosition})
			}
			continue
		}
		grants = append(grants, persist.ItemGrant{ItemID: def.ItemID, Amount: amount})
	}

	zeny := p.character.Zeny - int32(total)
	rows, err := p.items.Purchase(context.Background(), p.character.ID, grants, zeny)
	if err != nil {
		p.log.Error("store purchase", zap.Uint32("character", p.character.ID), zap.Error(err))
		return result(gameplay.BuyResultError)
	}
	for i, row := range rows {
		added := inventoryItem(row, p.lib.Items.Get(row.ItemID))
		if regular, ok := added.Details.(gameplay.RegularItemDetails); ok {
			regular.Amount = grants[i].Amount
			added.Details = regular
		}
		p.push(gameplay.PhaseMap, gameplay.InventoryItemAdded{Item: added})
	}

	p.character.Zeny = zeny
	p.pushZenyLocked()
	return result(gameplay.BuyResultSuccess)
}

func (p *Provider) pushZenyLocked() {
	p.push(gameplay.PhaseMap, gameplay.UpdateStat{Stat: gameplay.StatUpdate{Kind: gameplay.StatKindZeny, Value: int64(p.character.Zeny)}})
}

func (p *Provider) CloseShop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	p.shop = nil
	return nil
}

func (p *Provider) SellItems(items []gameplay.SoldItem) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}

	result := func(r gameplay.SellItemsResult) error {
		p.push(gameplay.PhaseMap, gameplay.SellingCompleted{Result: r})
		return nil
	}
	if p.shop == nil || !p.shop.Buys {
		return result(gameplay.SellResultError)
	}

	ctx := context.Background()
	rows, err := p.items.LoadByCharID(ctx, p.character.ID)
	if err != nil {
		p.log.Error("load inventory", zap.Error(err))
		return result(gameplay.SellResultError)
	}
	owned := make(map[gameplay.InventoryIndex]persist.ItemRow, len(rows))
	for _, row := range rows {
		owned[gameplay.InventoryIndex(row.ID)] = row
	}

	// Entries naming the same index are summed before checking the stack.
	var order []gameplay.InventoryIndex
	totals := make(map[gameplay.InventoryIndex]uint32, len(items))
	for _, it := range items {
		row, ok := owned[it.Index]
		if !ok || row.Equipped || it.Amount == 0 {
			return result(gameplay.SellResultError)
		}
		if _, seen := totals[it.Index]; !seen {
			order = append(order, it.Index)
		}
		totals[it.Index] += uint32(it.Amount)
		if totals[it.Index] > uint32(row.Amount) {
			return result(gameplay.SellResultError)
		}
	}

	var earned int64
	takes := make([]persist.ItemTake, 0, len(order))
	for _, index := range order {
		row, amount := owned[index], uint16(totals[index])
		if def := p.lib.Items.Get(row.ItemID); def != nil {
			earned += int64(def.SellPrice()) * int64(amount)
		}
		takes = append(takes, persist.ItemTake{ID: row.ID, Amount: amount})
	}
	zeny := int64(p.character.Zeny) + earned
	if zeny > math.MaxInt32 {
		zeny = math.MaxInt32
	}

	if err := p.items.Sell(ctx, p.character.ID, takes, int32(zeny)); err != nil {
		p.log.Error("store sale", zap.Uint32("character", p.character.ID), zap.Error(err))
		return result(gameplay.SellResultError)
	}
	for _, take := range takes {
		p.push(gameplay.PhaseMap, gameplay.InventoryItemRemoved{
			Reason: gameplay.RemovalItemSold,
			Index:  gameplay.InventoryIndex(take.ID),
			Amount: take.Amount,
		})
	}

	p.character.Zeny = int32(zeny)
	p.pushZenyLocked()
	return result(gameplay.SellResultSuccess)
}
