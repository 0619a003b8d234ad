package handler

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

const (
	ShopItemSize = 4 + 4 + 1 + 4 + 4
	SellItemSize = 2 + 4 + 4
)

func handleBuyOrSell(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.AskBuyOrSell{ShopID: gameplay.ShopID(r.ReadDU())})
}

// handleShopItemList opens an NPC shop. NPC stock is never limited.
func handleShopItemList(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	items := make([]gameplay.ShopItem, 0, r.Remaining()/ShopItemSize)
	for r.Remaining() >= ShopItemSize {
		price := r.ReadDU()
		r.ReadDU() // discounted price
		items = append(items, gameplay.ShopItem{
			Price:    price,
			ItemType: r.ReadC(),
			ItemID:   gameplay.ItemID(r.ReadDU()),
			Location: r.ReadDU(),
			Quantity: gameplay.ItemQuantity{Infinite: true},
		})
	}
	return one(gameplay.OpenShop{Items: items})
}

func handleBuyResult(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.BuyingCompleted{Result: gameplay.BuyShopItemsResult(r.ReadC())})
}

func handleSellList(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	items := make([]gameplay.SellItem, 0, r.Remaining()/SellItemSize)
	for r.Remaining() >= SellItemSize {
		items = append(items, gameplay.SellItem{
			Index:           gameplay.InventoryIndex(r.ReadH()),
			Price:           r.ReadDU(),
			OverchargePrice: r.ReadDU(),
		})
	}
	return one(gameplay.SellItemList{Items: items})
}

func handleSellResult(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.SellingCompleted{Result: gameplay.SellItemsResult(r.ReadC())})
}
