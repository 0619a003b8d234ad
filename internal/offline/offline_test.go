package offline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hasenbanck/korangar/internal/data"
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/persist"
	"github.com/hasenbanck/korangar/internal/scripting"
	"go.uber.org/zap/zaptest"
)

const (
	guideNPC      = gameplay.EntityID(110000001)
	toolDealerNPC = gameplay.EntityID(110000100)
)

func newTestProvider(t *testing.T, opts Options) *Provider {
	t.Helper()
	log := zaptest.NewLogger(t)
	db, err := persist.Open(context.Background(), filepath.Join(t.TempDir(), "offline.db"), log)
	if err != nil {
		t.Fatalf("persist.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	lib, err := data.Default()
	if err != nil {
		t.Fatalf("data.Default: %v", err)
	}
	scripts, err := scripting.NewEngine("", log)
	if err != nil {
		t.Fatalf("scripting.NewEngine: %v", err)
	}
	t.Cleanup(scripts.Close)

	return New(lib, db, scripts, opts, log)
}

func drain(p *Provider) []gameplay.Event {
	buf := gameplay.NewEventBuffer()
	p.Events(buf)
	return append([]gameplay.Event(nil), buf.Drain()...)
}

func expectOne[T gameplay.Event](t *testing.T, p *Provider) T {
	t.Helper()
	events := drain(p)
	if len(events) != 1 {
		t.Fatalf("events = %#v, want exactly one", events)
	}
	e, ok := events[0].(T)
	if !ok {
		t.Fatalf("event = %#v, want %T", events[0], *new(T))
	}
	return e
}

// enterMap logs in a fresh account, creates a character in slot 0 and
// enters the map with it.
func enterMap(t *testing.T, p *Provider) []gameplay.Event {
	t.Helper()
	p.ConnectToLoginServer(gameplay.Version20220406, "local", "tester_M", "pw")
	login := expectOne[gameplay.LoginServerConnected](t, p)

	p.ConnectToCharacterServer(gameplay.Version20220406, login.LoginData, login.CharacterServers[0])
	drain(p)
	if err := p.CreateCharacter(0, "Alice"); err != nil {
		t.Fatalf("CreateCharacter: %v", err)
	}
	drain(p)
	if err := p.SelectCharacter(0); err != nil {
		t.Fatalf("SelectCharacter: %v", err)
	}
	selected := expectOne[gameplay.CharacterSelected](t, p)

	p.ConnectToMapServer(gameplay.Version20220406, login.LoginData, selected.LoginData)
	return drain(p)
}

func TestCommandsRequireConnection(t *testing.T) {
	p := newTestProvider(t, Options{})

	checks := map[string]error{
		"RequestCharacterList": p.RequestCharacterList(),
		"CreateCharacter":      p.CreateCharacter(0, "x"),
		"MapLoaded":            p.MapLoaded(),
		"PlayerMove":           p.PlayerMove(gameplay.WorldPosition{}),
		"PlayerAttack":         p.PlayerAttack(1),
		"AddFriend":            p.AddFriend("x"),
		"SellItems":            p.SellItems(nil),
	}
	for name, err := range checks {
		if !errors.Is(err, gameplay.ErrNotConnected) {
			t.Fatalf("%s: err = %v, want NotConnectedError", name, err)
		}
	}
	if events := drain(p); len(events) != 0 {
		t.Fatalf("commands produced events: %#v", events)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	p := newTestProvider(t, Options{})
	p.ConnectToLoginServer(gameplay.Version20220406, "local", "nobody", "pw")

	failed := expectOne[gameplay.LoginServerConnectionFailed](t, p)
	if failed.Reason != gameplay.LoginUnregisteredID {
		t.Fatalf("reason = %v", failed.Reason)
	}
	if p.IsLoginServerConnected() {
		t.Fatalf("refused login is connected")
	}
}

func TestLoginSuffixRegistersAccount(t *testing.T) {
	p := newTestProvider(t, Options{})

	p.ConnectToLoginServer(gameplay.Version20220406, "local", "alice_F", "secret")
	ok := expectOne[gameplay.LoginServerConnected](t, p)
	if ok.LoginData.Sex != gameplay.SexFemale {
		t.Fatalf("sex = %v, want Female", ok.LoginData.Sex)
	}
	if len(ok.CharacterServers) != 1 || ok.CharacterServers[0].Name != "Offline" {
		t.Fatalf("servers = %+v", ok.CharacterServers)
	}

	p.ConnectToLoginServer(gameplay.Version20220406, "local", "alice", "wrong")
	events := drain(p)
	if len(events) != 2 {
		t.Fatalf("events = %#v", events)
	}
	if d, isD := events[0].(gameplay.LoginServerDisconnected); !isD || d.Reason != gameplay.ClosedByClient {
		t.Fatalf("first event = %#v, want the previous session closing", events[0])
	}
	failed, isFailed := events[1].(gameplay.LoginServerConnectionFailed)
	if !isFailed || failed.Reason != gameplay.LoginIncorrectPassword || failed.Message != "Incorrect password" {
		t.Fatalf("second event = %#v", events[1])
	}

	p.ConnectToLoginServer(gameplay.Version20220406, "local", "alice", "secret")
	again := expectOne[gameplay.LoginServerConnected](t, p)
	if again.LoginData.AccountID != ok.LoginData.AccountID {
		t.Fatalf("account id changed: %d -> %d", ok.LoginData.AccountID, again.LoginData.AccountID)
	}
}

func TestCharacterServerRejectsForeignLoginData(t *testing.T) {
	p := newTestProvider(t, Options{AutoCreateAccounts: true})
	p.ConnectToLoginServer(gameplay.Version20220406, "local", "bob", "pw")
	drain(p)

	p.ConnectToCharacterServer(gameplay.Version20220406, gameplay.LoginServerLoginData{AccountID: 1}, gameplay.CharacterServerInformation{})
	if got := expectOne[gameplay.CharacterServerConnectionFailed](t, p); got.Reason != gameplay.LoginRejectedFromServer {
		t.Fatalf("reason = %v", got.Reason)
	}
	if p.IsCharacterServerConnected() {
		t.Fatalf("character server connected")
	}
}

func TestCharacterManagement(t *testing.T) {
	p := newTestProvider(t, Options{AutoCreateAccounts: true})
	p.ConnectToLoginServer(gameplay.Version20220406, "local", "carol", "pw")
	login := expectOne[gameplay.LoginServerConnected](t, p)

	p.ConnectToCharacterServer(gameplay.Version20220406, login.LoginData, login.CharacterServers[0])
	events := drain(p)
	if len(events) != 2 {
		t.Fatalf("events = %#v", events)
	}
	if c, ok := events[0].(gameplay.CharacterServerConnected); !ok || c.NormalSlotCount != 9 {
		t.Fatalf("first event = %#v", events[0])
	}
	if l, ok := events[1].(gameplay.CharacterList); !ok || len(l.Characters) != 0 {
		t.Fatalf("second event = %#v", events[1])
	}

	if err := p.CreateCharacter(0, "Alice"); err != nil {
		t.Fatalf("CreateCharacter: %v", err)
	}
	created := expectOne[gameplay.CharacterCreated](t, p)
	if created.Character.Name != "Alice" || created.Character.MapName != "prontera" || created.Character.Money != 500 {
		t.Fatalf("created = %+v", created.Character)
	}

	if err := p.CreateCharacter(1, "Alice"); err != nil {
		t.Fatalf("CreateCharacter duplicate: %v", err)
	}
	if got := expectOne[gameplay.CharacterCreationFailed](t, p); got.Reason != gameplay.CreationNameAlreadyUsed {
		t.Fatalf("duplicate name reason = %v", got.Reason)
	}
	if err := p.CreateCharacter(42, "Bob"); err != nil {
		t.Fatalf("CreateCharacter slot: %v", err)
	}
	if got := expectOne[gameplay.CharacterCreationFailed](t, p); got.Reason != gameplay.CreationNotAllowedToUseSlot {
		t.Fatalf("bad slot reason = %v", got.Reason)
	}

	if err := p.SwitchCharacterSlot(0, 3); err != nil {
		t.Fatalf("SwitchCharacterSlot: %v", err)
	}
	expectOne[gameplay.CharacterSlotSwitched](t, p)
	if err := p.SwitchCharacterSlot(0, 3); err != nil {
		t.Fatalf("SwitchCharacterSlot empty: %v", err)
	}
	expectOne[gameplay.CharacterSlotSwitchFailed](t, p)

	if err := p.SelectCharacter(0); err != nil {
		t.Fatalf("SelectCharacter: %v", err)
	}
	if got := expectOne[gameplay.CharacterSelectionFailed](t, p); got.Reason != gameplay.SelectionRejectedFromServer {
		t.Fatalf("select empty slot reason = %v", got.Reason)
	}

	if err := p.RequestCharacterList(); err != nil {
		t.Fatalf("RequestCharacterList: %v", err)
	}
	list := expectOne[gameplay.CharacterList](t, p)
	if len(list.Characters) != 1 || list.Characters[0].Slot != 3 {
		t.Fatalf("list = %+v", list.Characters)
	}

	if err := p.DeleteCharacter(list.Characters[0].CharacterID); err != nil {
		t.Fatalf("DeleteCharacter: %v", err)
	}
	expectOne[gameplay.CharacterDeleted](t, p)
	if err := p.DeleteCharacter(list.Characters[0].CharacterID); err != nil {
		t.Fatalf("DeleteCharacter again: %v", err)
	}
	if got := expectOne[gameplay.CharacterDeletionFailed](t, p); got.Reason != gameplay.DeletionCharacterNotFound {
		t.Fatalf("delete missing reason = %v", got.Reason)
	}
}

func TestMapLogin(t *testing.T) {
	p := newTestProvider(t, Options{})
	events := enterMap(t, p)

	if len(events) != 4 {
		t.Fatalf("events = %#v, want 4", events)
	}
	if _, ok := events[0].(gameplay.AccountIDReceived); !ok {
		t.Fatalf("event 0 = %#v", events[0])
	}
	change, ok := events[1].(gameplay.ChangeMap)
	if !ok || change.MapName != "prontera" || change.Position != (gameplay.TilePosition{X: 155, Y: 185}) {
		t.Fatalf("event 1 = %#v", events[1])
	}
	inv, ok := events[2].(gameplay.SetInventory)
	if !ok || len(inv.Items) != 3 {
		t.Fatalf("event 2 = %#v", events[2])
	}
	if potion, ok := inv.Items[0].Details.(gameplay.RegularItemDetails); !ok || potion.Amount != 10 {
		t.Fatalf("first item = %#v", inv.Items[0])
	}
	if _, ok := inv.Items[1].Details.(gameplay.EquippableItemDetails); !ok {
		t.Fatalf("second item = %#v", inv.Items[1])
	}
	if _, ok := events[3].(gameplay.UpdateClientTick); !ok {
		t.Fatalf("event 3 = %#v", events[3])
	}
	if !p.IsMapServerConnected() {
		t.Fatalf("map server not connected")
	}
	if err := p.MapLoaded(); err != nil {
		t.Fatalf("MapLoaded: %v", err)
	}
}

func TestDrainIsMonotonic(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if events := drain(p); len(events) != 0 {
		t.Fatalf("second drain = %#v", events)
	}
	if err := p.RequestClientTick(); err != nil {
		t.Fatalf("RequestClientTick: %v", err)
	}
	expectOne[gameplay.UpdateClientTick](t, p)
	if events := drain(p); len(events) != 0 {
		t.Fatalf("third drain = %#v", events)
	}
}

func TestMovementAndWarp(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.PlayerMove(gameplay.WorldPosition{X: 160, Y: 190}); err != nil {
		t.Fatalf("PlayerMove: %v", err)
	}
	move := expectOne[gameplay.PlayerMove](t, p)
	if move.Origin.X != 155 || move.Destination.X != 160 || move.Destination.Y != 190 {
		t.Fatalf("move = %+v", move)
	}

	if err := p.PlayerMove(gameplay.WorldPosition{X: 9999, Y: 1}); err != nil {
		t.Fatalf("PlayerMove off map: %v", err)
	}
	if events := drain(p); len(events) != 0 {
		t.Fatalf("off-map move produced %#v", events)
	}

	if err := p.WarpToMap("atlantis", gameplay.TilePosition{X: 1, Y: 1}); err != nil {
		t.Fatalf("WarpToMap unknown: %v", err)
	}
	if msg := expectOne[gameplay.ChatMessage](t, p); msg.Color.Kind != gameplay.MessageColorError {
		t.Fatalf("unknown map message = %+v", msg)
	}

	if err := p.WarpToMap("geffen", gameplay.TilePosition{X: 119, Y: 59}); err != nil {
		t.Fatalf("WarpToMap: %v", err)
	}
	if change := expectOne[gameplay.ChangeMap](t, p); change.MapName != "geffen" {
		t.Fatalf("change = %+v", change)
	}

	if err := p.Respawn(); err != nil {
		t.Fatalf("Respawn: %v", err)
	}
	events := drain(p)
	if len(events) != 2 {
		t.Fatalf("respawn events = %#v", events)
	}
	if change, ok := events[1].(gameplay.ChangeMap); !ok || change.MapName != "prontera" {
		t.Fatalf("respawn map = %#v", events[1])
	}
}

func TestChatAndLogout(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.SendChatMessage("Alice", "hello"); err != nil {
		t.Fatalf("SendChatMessage: %v", err)
	}
	if msg := expectOne[gameplay.ChatMessage](t, p); msg.Text != "Alice : hello" {
		t.Fatalf("chat = %+v", msg)
	}

	if err := p.LogOut(); err != nil {
		t.Fatalf("LogOut: %v", err)
	}
	expectOne[gameplay.LoggedOut](t, p)

	p.DisconnectFromMapServer()
	if got := expectOne[gameplay.MapServerDisconnected](t, p); got.Reason != gameplay.ClosedByClient {
		t.Fatalf("reason = %v", got.Reason)
	}
	if err := p.MapLoaded(); !errors.Is(err, gameplay.ErrNotConnected) {
		t.Fatalf("MapLoaded after disconnect: %v", err)
	}
	p.DisconnectFromMapServer()
	if events := drain(p); len(events) != 0 {
		t.Fatalf("second disconnect produced %#v", events)
	}
}

func TestScriptedDialog(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.StartDialog(guideNPC); err != nil {
		t.Fatalf("StartDialog: %v", err)
	}
	events := drain(p)
	if len(events) != 2 {
		t.Fatalf("page 0 = %#v", events)
	}
	if _, ok := events[1].(gameplay.AddNextButton); !ok {
		t.Fatalf("page 0 button = %#v", events[1])
	}

	if err := p.NextDialog(guideNPC); err != nil {
		t.Fatalf("NextDialog: %v", err)
	}
	events = drain(p)
	if len(events) != 2 {
		t.Fatalf("page 1 = %#v", events)
	}
	choices, ok := events[1].(gameplay.AddChoiceButtons)
	if !ok || len(choices.Choices) != 3 || choices.Choices[1] != "Shops" {
		t.Fatalf("page 1 choices = %#v", events[1])
	}

	if err := p.ChooseDialogOption(guideNPC, 2); err != nil {
		t.Fatalf("ChooseDialogOption: %v", err)
	}
	events = drain(p)
	if len(events) != 2 {
		t.Fatalf("page 2 = %#v", events)
	}
	if open, ok := events[0].(gameplay.OpenDialog); !ok || open.Text != "The tool dealer is right next to the fountain." {
		t.Fatalf("page 2 text = %#v", events[0])
	}
	if _, ok := events[1].(gameplay.AddCloseButton); !ok {
		t.Fatalf("page 2 button = %#v", events[1])
	}

	if err := p.CloseDialog(guideNPC); err != nil {
		t.Fatalf("CloseDialog: %v", err)
	}
	if err := p.NextDialog(guideNPC); err != nil {
		t.Fatalf("NextDialog after close: %v", err)
	}
	if events := drain(p); len(events) != 0 {
		t.Fatalf("closed dialog produced %#v", events)
	}
}

func TestShopBuyAndSell(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.StartDialog(toolDealerNPC); err != nil {
		t.Fatalf("StartDialog: %v", err)
	}
	ask := expectOne[gameplay.AskBuyOrSell](t, p)
	if ask.ShopID != gameplay.ShopID(toolDealerNPC) {
		t.Fatalf("shop id = %d", ask.ShopID)
	}

	if err := p.SelectBuyOrSell(ask.ShopID, gameplay.Buy); err != nil {
		t.Fatalf("SelectBuyOrSell: %v", err)
	}
	shop := expectOne[gameplay.OpenShop](t, p)
	if len(shop.Items) != 5 || shop.Items[4].Price != 250 || !shop.Items[0].Quantity.Infinite {
		t.Fatalf("shop = %+v", shop.Items)
	}

	if err := p.PurchaseItems([]gameplay.PurchaseItem{{ItemID: 501, Amount: 2}}); err != nil {
		t.Fatalf("PurchaseItems: %v", err)
	}
	events := drain(p)
	if len(events) != 3 {
		t.Fatalf("purchase events = %#v", events)
	}
	added, ok := events[0].(gameplay.InventoryItemAdded)
	if !ok || added.Item.ItemID != 501 {
		t.Fatalf("added = %#v", events[0])
	}
	if zeny, ok := events[1].(gameplay.UpdateStat); !ok || zeny.Stat.Value != 400 {
		t.Fatalf("zeny = %#v", events[1])
	}
	if done, ok := events[2].(gameplay.BuyingCompleted); !ok || done.Result != gameplay.BuyResultSuccess {
		t.Fatalf("result = %#v", events[2])
	}

	if err := p.PurchaseItems([]gameplay.PurchaseItem{{ItemID: 602, Amount: 100}}); err != nil {
		t.Fatalf("PurchaseItems expensive: %v", err)
	}
	if got := expectOne[gameplay.BuyingCompleted](t, p); got.Result != gameplay.BuyResultNotEnoughZeny {
		t.Fatalf("expensive result = %v", got.Result)
	}
	if err := p.PurchaseItems([]gameplay.PurchaseItem{{ItemID: 1201, Amount: 1}}); err != nil {
		t.Fatalf("PurchaseItems foreign: %v", err)
	}
	if got := expectOne[gameplay.BuyingCompleted](t, p); got.Result != gameplay.BuyResultError {
		t.Fatalf("foreign item result = %v", got.Result)
	}

	if err := p.SelectBuyOrSell(ask.ShopID, gameplay.Sell); err != nil {
		t.Fatalf("SelectBuyOrSell sell: %v", err)
	}
	sellList := expectOne[gameplay.SellItemList](t, p)
	if len(sellList.Items) != 3 {
		t.Fatalf("sell list = %+v", sellList.Items)
	}

	potion := added.Item.Index
	if err := p.SellItems([]gameplay.SoldItem{{Index: potion, Amount: 1}}); err != nil {
		t.Fatalf("SellItems: %v", err)
	}
	events = drain(p)
	if len(events) != 3 {
		t.Fatalf("sell events = %#v", events)
	}
	if removed, ok := events[0].(gameplay.InventoryItemRemoved); !ok || removed.Index != potion || removed.Reason != gameplay.RemovalItemSold {
		t.Fatalf("removed = %#v", events[0])
	}
	if zeny, ok := events[1].(gameplay.UpdateStat); !ok || zeny.Stat.Value != 425 {
		t.Fatalf("zeny after sell = %#v", events[1])
	}

	if err := p.SellItems([]gameplay.SoldItem{{Index: potion, Amount: 500}}); err != nil {
		t.Fatalf("SellItems too many: %v", err)
	}
	if got := expectOne[gameplay.SellingCompleted](t, p); got.Result != gameplay.SellResultError {
		t.Fatalf("oversell result = %v", got.Result)
	}

	if err := p.CloseShop(); err != nil {
		t.Fatalf("CloseShop: %v", err)
	}
}

func starterPotion(t *testing.T, events []gameplay.Event) gameplay.InventoryIndex {
	t.Helper()
	for _, ev := range events {
		inv, ok := ev.(gameplay.SetInventory)
		if !ok {
			continue
		}
		for _, it := range inv.Items {
			if it.ItemID == 501 {
				return it.Index
			}
		}
	}
	t.Fatalf("no potion in %#v", events)
	return 0
}

func openSellList(t *testing.T, p *Provider) gameplay.SellItemList {
	t.Helper()
	if err := p.StartDialog(toolDealerNPC); err != nil {
		t.Fatalf("StartDialog: %v", err)
	}
	drain(p)
	if err := p.SelectBuyOrSell(gameplay.ShopID(toolDealerNPC), gameplay.Sell); err != nil {
		t.Fatalf("SelectBuyOrSell: %v", err)
	}
	return expectOne[gameplay.SellItemList](t, p)
}

func TestSellSumsRepeatedIndex(t *testing.T) {
	p := newTestProvider(t, Options{})
	potion := starterPotion(t, enterMap(t, p))
	if list := openSellList(t, p); len(list.Items) != 3 {
		t.Fatalf("sell list = %+v", list.Items)
	}

	if err := p.SellItems([]gameplay.SoldItem{{Index: potion, Amount: 6}, {Index: potion, Amount: 6}}); err != nil {
		t.Fatalf("SellItems: %v", err)
	}
	if got := expectOne[gameplay.SellingCompleted](t, p); got.Result != gameplay.SellResultError {
		t.Fatalf("result = %v, want error", got.Result)
	}
	rows, err := p.items.LoadByCharID(context.Background(), p.character.ID)
	if err != nil {
		t.Fatalf("LoadByCharID: %v", err)
	}
	for _, row := range rows {
		if row.ItemID == 501 && row.Amount != 10 {
			t.Fatalf("potions = %d, want 10", row.Amount)
		}
	}
	stored, err := p.chars.Load(context.Background(), p.character.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Zeny != 500 || p.character.Zeny != 500 {
		t.Fatalf("zeny = %d stored, %d in session; want 500", stored.Zeny, p.character.Zeny)
	}

	if err := p.SellItems([]gameplay.SoldItem{{Index: potion, Amount: 4}, {Index: potion, Amount: 6}}); err != nil {
		t.Fatalf("SellItems whole stack: %v", err)
	}
	events := drain(p)
	if len(events) != 3 {
		t.Fatalf("sell events = %#v", events)
	}
	if removed, ok := events[0].(gameplay.InventoryItemRemoved); !ok || removed.Index != potion || removed.Amount != 10 {
		t.Fatalf("removed = %#v", events[0])
	}
	if zeny, ok := events[1].(gameplay.UpdateStat); !ok || zeny.Stat.Value != 750 {
		t.Fatalf("zeny = %#v", events[1])
	}
	if list := openSellList(t, p); len(list.Items) != 2 {
		t.Fatalf("sell list after selling potions = %+v", list.Items)
	}
}

func TestPurchaseFailureStoresNothing(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)
	if err := p.StartDialog(toolDealerNPC); err != nil {
		t.Fatalf("StartDialog: %v", err)
	}
	drain(p)
	if err := p.SelectBuyOrSell(gameplay.ShopID(toolDealerNPC), gameplay.Buy); err != nil {
		t.Fatalf("SelectBuyOrSell: %v", err)
	}
	drain(p)
	p.character.Zeny = 10_000_000

	// The potions overflow the starter stack after the first item is added.
	order := []gameplay.PurchaseItem{{ItemID: 502, Amount: 1}, {ItemID: 501, Amount: 65535}}
	if err := p.PurchaseItems(order); err != nil {
		t.Fatalf("PurchaseItems: %v", err)
	}
	if got := expectOne[gameplay.BuyingCompleted](t, p); got.Result != gameplay.BuyResultError {
		t.Fatalf("result = %v, want error", got.Result)
	}
	if p.character.Zeny != 10_000_000 {
		t.Fatalf("session zeny = %d", p.character.Zeny)
	}
	rows, err := p.items.LoadByCharID(context.Background(), p.character.ID)
	if err != nil {
		t.Fatalf("LoadByCharID: %v", err)
	}
	for _, row := range rows {
		if row.ItemID == 502 {
			t.Fatalf("item 502 stored by a failed purchase: %+v", row)
		}
		if row.ItemID == 501 && row.Amount != 10 {
			t.Fatalf("potions = %d, want 10", row.Amount)
		}
	}
	stored, err := p.chars.Load(context.Background(), p.character.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored.Zeny != 500 {
		t.Fatalf("stored zeny = %d, want 500", stored.Zeny)
	}
}

func TestDeleteActiveCharacterRefused(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.RequestCharacterList(); err != nil {
		t.Fatalf("RequestCharacterList: %v", err)
	}
	list := expectOne[gameplay.CharacterList](t, p)
	if len(list.Characters) != 1 {
		t.Fatalf("characters = %+v", list.Characters)
	}
	active := list.Characters[0].CharacterID

	if err := p.DeleteCharacter(active); err != nil {
		t.Fatalf("DeleteCharacter: %v", err)
	}
	if got := expectOne[gameplay.CharacterDeletionFailed](t, p); got.Reason != gameplay.DeletionNotAllowed {
		t.Fatalf("reason = %v, want DeletionNotAllowed", got.Reason)
	}

	// Selecting and deleting another character leaves the map session alone.
	if err := p.CreateCharacter(1, "Bob"); err != nil {
		t.Fatalf("CreateCharacter: %v", err)
	}
	created := expectOne[gameplay.CharacterCreated](t, p)
	if err := p.SelectCharacter(1); err != nil {
		t.Fatalf("SelectCharacter: %v", err)
	}
	expectOne[gameplay.CharacterSelected](t, p)
	if err := p.DeleteCharacter(created.Character.CharacterID); err != nil {
		t.Fatalf("DeleteCharacter other: %v", err)
	}
	expectOne[gameplay.CharacterDeleted](t, p)

	if err := p.PlayerMove(gameplay.WorldPosition{X: 160, Y: 190}); err != nil {
		t.Fatalf("PlayerMove: %v", err)
	}
	move := expectOne[gameplay.PlayerMove](t, p)
	if move.Origin.X != 155 || move.Destination.X != 160 {
		t.Fatalf("move = %+v", move)
	}
}

func TestUnsimulatedCommands(t *testing.T) {
	p := newTestProvider(t, Options{})
	enterMap(t, p)

	if err := p.PlayerAttack(5); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("PlayerAttack: %v", err)
	}
	if err := p.RequestStatUp(gameplay.StatLuck); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("RequestStatUp: %v", err)
	}
	if err := p.AddFriend("Bob"); err != nil {
		t.Fatalf("AddFriend: %v", err)
	}
	if err := p.AcceptFriendRequest(1, 2); err != nil {
		t.Fatalf("AcceptFriendRequest: %v", err)
	}
	if events := drain(p); len(events) != 0 {
		t.Fatalf("unsimulated commands produced %#v", events)
	}
}
