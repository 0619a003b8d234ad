package net

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Action types of the map server action request.
const (
	actionContinuousAttack = 7
)

// Placeholder e-mail sent with a deletion request; servers without e-mail
// confirmation accept any well-formed address.
const deletionEmail = "a@a.com"

// Character server.

func (p *Provider) RequestCharacterList() error {
	return p.send(gameplay.PhaseCharacter, packet.NewWriter(packet.C_OPCODE_REQUEST_CHARACTERS))
}

func (p *Provider) SelectCharacter(slot int) error {
	w := packet.NewWriter(packet.C_OPCODE_SELECT_CHARACTER)
	w.WriteC(byte(slot))
	return p.send(gameplay.PhaseCharacter, w)
}

func (p *Provider) CreateCharacter(slot int, name string) error {
	w := packet.NewWriter(packet.C_OPCODE_CREATE_CHARACTER)
	w.WriteFixedS(name, 24)
	w.WriteC(byte(slot))
	w.WriteH(0) // hair color
	w.WriteH(0) // hair style
	w.WriteH(0) // start job
	w.WriteH(0)

	p.mu.Lock()
	sex := p.login.Sex
	p.mu.Unlock()
	w.WriteC(byte(sex))
	return p.send(gameplay.PhaseCharacter, w)
}

func (p *Provider) DeleteCharacter(id gameplay.CharacterID) error {
	w := packet.NewWriter(packet.C_OPCODE_DELETE_CHARACTER)
	w.WriteDU(uint32(id))
	w.WriteFixedS(deletionEmail, 50)
	return p.send(gameplay.PhaseCharacter, w)
}

func (p *Provider) SwitchCharacterSlot(origin, destination int) error {
	w := packet.NewWriter(packet.C_OPCODE_SWITCH_SLOT)
	w.WriteH(uint16(origin))
	w.WriteH(uint16(destination))
	w.WriteH(1) // remaining moves
	return p.send(gameplay.PhaseCharacter, w)
}

// Map server.

func (p *Provider) MapLoaded() error {
	return p.send(gameplay.PhaseMap, packet.NewWriter(packet.C_OPCODE_MAP_LOADED))
}

func (p *Provider) RequestClientTick() error {
	w := packet.NewWriter(packet.C_OPCODE_REQUEST_SERVER_TICK)
	w.WriteDU(p.clientTick())
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) restart(kind byte) error {
	w := packet.NewWriter(packet.C_OPCODE_RESTART)
	w.WriteC(kind)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) Respawn() error { return p.restart(0) }

func (p *Provider) LogOut() error { return p.restart(1) }

func (p *Provider) PlayerMove(position gameplay.WorldPosition) error {
	w := packet.NewWriter(packet.C_OPCODE_MOVE)
	w.WritePosition(position)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) WarpToMap(mapName string, position gameplay.TilePosition) error {
	w := packet.NewWriter(packet.C_OPCODE_WARP_TO_MAP)
	w.WriteFixedS(mapName+".gat", 16)
	w.WriteTile(position)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) EntityDetails(id gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_REQUEST_DETAILS)
	w.WriteDU(uint32(id))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) PlayerAttack(id gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_ACTION)
	w.WriteDU(uint32(id))
	w.WriteC(actionContinuousAttack)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) SendChatMessage(playerName, text string) error {
	w := packet.NewWriter(packet.C_OPCODE_GLOBAL_MESSAGE)
	w.WriteS(playerName + " : " + text)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) StartDialog(npc gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_START_DIALOG)
	w.WriteDU(uint32(npc))
	w.WriteC(1)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) NextDialog(npc gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_NEXT_DIALOG)
	w.WriteDU(uint32(npc))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) CloseDialog(npc gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_CLOSE_DIALOG)
	w.WriteDU(uint32(npc))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) ChooseDialogOption(npc gameplay.EntityID, option int8) error {
	w := packet.NewWriter(packet.C_OPCODE_DIALOG_MENU_RESPONSE)
	w.WriteDU(uint32(npc))
	w.WriteC(byte(option))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) RequestItemEquip(index gameplay.InventoryIndex, position gameplay.EquipPosition) error {
	w := packet.NewWriter(packet.C_OPCODE_EQUIP_ITEM)
	w.WriteH(uint16(index))
	w.WriteDU(uint32(position))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) RequestItemUnequip(index gameplay.InventoryIndex) error {
	w := packet.NewWriter(packet.C_OPCODE_UNEQUIP_ITEM)
	w.WriteH(uint16(index))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) CastSkill(skill gameplay.SkillID, level gameplay.SkillLevel, target gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_USE_SKILL)
	w.WriteH(uint16(level))
	w.WriteH(uint16(skill))
	w.WriteDU(uint32(target))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) CastGroundSkill(skill gameplay.SkillID, level gameplay.SkillLevel, target gameplay.TilePosition) error {
	w := packet.NewWriter(packet.C_OPCODE_USE_SKILL_ON_GROUND)
	w.WriteH(uint16(level))
	w.WriteH(uint16(skill))
	w.WriteTile(target)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) CastChannelingSkill(skill gameplay.SkillID, level gameplay.SkillLevel, target gameplay.EntityID) error {
	w := packet.NewWriter(packet.C_OPCODE_START_USE_SKILL)
	w.WriteH(uint16(skill))
	w.WriteH(uint16(level))
	w.WriteDU(uint32(target))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) StopChannelingSkill(skill gameplay.SkillID) error {
	w := packet.NewWriter(packet.C_OPCODE_END_USE_SKILL)
	w.WriteH(uint16(skill))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) AddFriend(name string) error {
	w := packet.NewWriter(packet.C_OPCODE_ADD_FRIEND)
	w.WriteFixedS(name, 24)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) RemoveFriend(account gameplay.AccountID, character gameplay.CharacterID) error {
	w := packet.NewWriter(packet.C_OPCODE_REMOVE_FRIEND)
	w.WriteDU(uint32(account))
	w.WriteDU(uint32(character))
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) answerFriendRequest(account gameplay.AccountID, character gameplay.CharacterID, accept bool) error {
	w := packet.NewWriter(packet.C_OPCODE_FRIEND_REQUEST_ANSWER)
	w.WriteDU(uint32(account))
	w.WriteDU(uint32(character))
	if accept {
		w.WriteDU(1)
	} else {
		w.WriteDU(0)
	}
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) RejectFriendRequest(account gameplay.AccountID, character gameplay.CharacterID) error {
	return p.answerFriendRequest(account, character, false)
}

func (p *Provider) AcceptFriendRequest(account gameplay.AccountID, character gameplay.CharacterID) error {
	return p.answerFriendRequest(account, character, true)
}

func (p *Provider) SetHotkeyData(tab gameplay.HotbarTab, slot gameplay.HotbarSlot, data gameplay.HotkeyData) error {
	w := packet.NewWriter(packet.C_OPCODE_SET_HOTKEY)
	w.WriteH(uint16(tab))
	w.WriteH(uint16(slot))
	if data.IsSkill {
		w.WriteC(1)
	} else {
		w.WriteC(0)
	}
	w.WriteDU(data.SkillID)
	w.WriteH(data.Quantity)
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) SelectBuyOrSell(shop gameplay.ShopID, choice gameplay.BuyOrSell) error {
	w := packet.NewWriter(packet.C_OPCODE_SELECT_BUY_OR_SELL)
	w.WriteDU(uint32(shop))
	w.WriteC(byte(choice))
	return p.send(gameplay.PhaseMap, w)
}

// PurchaseItems and SellItems carry a length field covering the whole
// packet: header, the field itself and the entries.
func (p *Provider) PurchaseItems(items []gameplay.PurchaseItem) error {
	w := packet.NewWriter(packet.C_OPCODE_PURCHASE_ITEMS)
	w.WriteH(uint16(4 + 8*len(items)))
	for _, it := range items {
		w.WriteDU(it.Amount)
		w.WriteDU(uint32(it.ItemID))
	}
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) CloseShop() error {
	return p.send(gameplay.PhaseMap, packet.NewWriter(packet.C_OPCODE_CLOSE_SHOP))
}

func (p *Provider) SellItems(items []gameplay.SoldItem) error {
	w := packet.NewWriter(packet.C_OPCODE_SELL_ITEMS)
	w.WriteH(uint16(4 + 4*len(items)))
	for _, it := range items {
		w.WriteH(uint16(it.Index))
		w.WriteH(it.Amount)
	}
	return p.send(gameplay.PhaseMap, w)
}

func (p *Provider) RequestStatUp(stat gameplay.StatUpType) error {
	w := packet.NewWriter(packet.C_OPCODE_STAT_UP)
	w.WriteH(uint16(stat))
	w.WriteC(1)
	return p.send(gameplay.PhaseMap, w)
}
