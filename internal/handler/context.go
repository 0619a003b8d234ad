package handler

import (
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

type route struct {
	header packet.Header
	fn     packet.HandlerFunc
}

func registerRoutes(reg *packet.Registry, routes []route, noops []packet.Header) error {
	for _, rt := range routes {
		if err := reg.Register(rt.header, rt.fn); err != nil {
			return err
		}
	}
	return reg.RegisterNoop(noops...)
}

// RegisterPhase fills reg with every handler of one phase for the given
// protocol epoch.
func RegisterPhase(reg *packet.Registry, phase gameplay.Phase, version gameplay.PacketVersion) error {
	switch phase {
	case gameplay.PhaseLogin:
		return RegisterLoginPackets(reg, version)
	case gameplay.PhaseCharacter:
		return RegisterCharacterPackets(reg, version)
	case gameplay.PhaseMap:
		return RegisterMapPackets(reg, version)
	default:
		return fmt.Errorf("register handlers: unknown phase %s", phase)
	}
}

// RegisterLoginPackets registers the login server packets.
func RegisterLoginPackets(reg *packet.Registry, version gameplay.PacketVersion) error {
	routes := []route{
		{packet.S_OPCODE_LOGIN_SUCCESS, handleLoginSuccess},
		{packet.S_OPCODE_LOGIN_FAILED, handleLoginFailed},
	}
	if version == gameplay.Version20120307 {
		routes = append(routes, route{packet.S_OPCODE_LOGIN_REFUSED, handleLoginRefusedByte})
	} else {
		routes = append(routes, route{packet.S_OPCODE_LOGIN_REFUSED2, handleLoginRefused})
	}
	return registerRoutes(reg, routes, nil)
}

// RegisterCharacterPackets registers the character server packets.
func RegisterCharacterPackets(reg *packet.Registry, _ gameplay.PacketVersion) error {
	routes := []route{
		{packet.S_OPCODE_LOGIN_FAILED, handleCharacterServerLoginFailed},
		{packet.S_OPCODE_CHARSERVER_LOGIN_SUCCESS, handleCharacterServerLoginSuccess},
		{packet.S_OPCODE_CHARACTER_LIST_SUCCESS, handleCharacterList},
		{packet.S_OPCODE_SELECT_SUCCESS, handleSelectSuccess},
		{packet.S_OPCODE_SELECT_FAILED, handleSelectFailed},
		{packet.S_OPCODE_MAPSERVER_UNAVAILABLE, handleMapServerUnavailable},
		{packet.S_OPCODE_CREATE_SUCCESS, handleCreateSuccess},
		{packet.S_OPCODE_CREATE_FAILED, handleCreateFailed},
		{packet.S_OPCODE_DELETE_SUCCESS, handleDeleteSuccess},
		{packet.S_OPCODE_DELETE_FAILED, handleDeleteFailed},
		{packet.S_OPCODE_SWITCH_SLOT_RESPONSE, handleSwitchSlotResponse},
	}
	noops := []packet.Header{
		packet.S_OPCODE_CHARACTER_LIST,
		packet.S_OPCODE_CHARACTER_SLOT_PAGE,
		packet.S_OPCODE_CHARACTER_BAN_LIST,
		packet.S_OPCODE_LOGIN_PINCODE,
		packet.S_OPCODE_0B18,
	}
	return registerRoutes(reg, routes, noops)
}

// RegisterMapPackets registers the map server packets.
func RegisterMapPackets(reg *packet.Registry, version gameplay.PacketVersion) error {
	routes := []route{
		{packet.S_OPCODE_ACCOUNT_ID, handleAccountID},
		{packet.S_OPCODE_SERVER_TICK, handleServerTick},

		// chat
		{packet.S_OPCODE_BROADCAST, handleBroadcast},
		{packet.S_OPCODE_BROADCAST2, handleBroadcast2},
		{packet.S_OPCODE_OVERHEAD_MESSAGE, handleOverheadMessage},
		{packet.S_OPCODE_SERVER_MESSAGE, handleServerMessage},
		{packet.S_OPCODE_ENTITY_MESSAGE, handleEntityMessage},

		// movement and visibility
		{packet.S_OPCODE_ENTITY_MOVE, handleEntityMove},
		{packet.S_OPCODE_PLAYER_MOVE, handlePlayerMove},
		{packet.S_OPCODE_CHANGE_MAP, handleChangeMap},
		{packet.S_OPCODE_RESURRECTION, handleResurrection},
		{packet.S_OPCODE_ENTITY_APPEARED, handleEntityAppeared},
		{packet.S_OPCODE_ENTITY_APPEARED2, handleEntityAppeared},
		{packet.S_OPCODE_MOVING_ENTITY_APPEARED, handleMovingEntityAppeared},
		{packet.S_OPCODE_ENTITY_DISAPPEARED, handleEntityDisappeared},
		{packet.S_OPCODE_PLAYER_DETAILS, handleEntityDetails},
		{packet.S_OPCODE_ENTITY_DETAILS, handleEntityDetails},
		{packet.S_OPCODE_ENTITY_HEALTH, handleEntityHealth},

		// stats
		{packet.S_OPCODE_UPDATE_STAT, handleUpdateStat},
		{packet.S_OPCODE_UPDATE_STAT1, handleUpdateStat1},
		{packet.S_OPCODE_UPDATE_STAT2, handleUpdateStat2},
		{packet.S_OPCODE_UPDATE_STAT3, handleUpdateStat3},
		{packet.S_OPCODE_SPRITE_CHANGE, handleSpriteChange},
		{packet.S_OPCODE_INITIAL_STATS, handleInitialStats},

		// inventory
		{packet.S_OPCODE_INVENTORY_START, handleInventoryStart},
		{packet.S_OPCODE_REGULAR_ITEM_LIST, handleRegularItemList},
		{packet.S_OPCODE_EQUIPPABLE_ITEM_LIST, handleEquippableItemList},
		{packet.S_OPCODE_INVENTORY_END, handleInventoryEnd},
		{packet.S_OPCODE_ITEM_PICKUP, handleItemPickup},
		{packet.S_OPCODE_REMOVE_ITEM, handleRemoveItem},
		{packet.S_OPCODE_EQUIP_ITEM_STATUS, handleEquipStatus},
		{packet.S_OPCODE_UNEQUIP_ITEM_STATUS, handleUnequipStatus},

		// skills and effects
		{packet.S_OPCODE_UPDATE_SKILL_TREE, handleSkillTree},
		{packet.S_OPCODE_UPDATE_HOTKEYS, handleHotkeys},
		{packet.S_OPCODE_SKILL_EFFECT_NO_DAMAGE, handleHealEffect},
		{packet.S_OPCODE_VISUAL_EFFECT, handleVisualEffect},
		{packet.S_OPCODE_QUEST_EFFECT, handleQuestEffect},
		{packet.S_OPCODE_NOTIFY_SKILL_UNIT, handleNotifySkillUnit},
		{packet.S_OPCODE_SKILL_UNIT_DISAPPEAR, handleSkillUnitDisappear},

		// combat
		{packet.S_OPCODE_ATTACK_FAILED, handleAttackFailed},
		{packet.S_OPCODE_DAMAGE, handleDamage},
		{packet.S_OPCODE_DAMAGE3, handleDamage3},

		// dialogs
		{packet.S_OPCODE_NPC_DIALOG, handleNpcDialog},
		{packet.S_OPCODE_NEXT_BUTTON, handleNextButton},
		{packet.S_OPCODE_CLOSE_BUTTON, handleCloseButton},
		{packet.S_OPCODE_DIALOG_MENU, handleDialogMenu},

		// session
		{packet.S_OPCODE_RESTART_RESPONSE, handleRestartResponse},
		{packet.S_OPCODE_DISCONNECT_RESPONSE, handleDisconnectResponse},

		// friends
		{packet.S_OPCODE_FRIEND_LIST, handleFriendList},
		{packet.S_OPCODE_FRIEND_REQUEST, handleFriendRequest},
		{packet.S_OPCODE_FRIEND_REQUEST_RESULT, handleFriendRequestResult},
		{packet.S_OPCODE_FRIEND_REMOVED, handleFriendRemoved},

		// shops
		{packet.S_OPCODE_BUY_OR_SELL, handleBuyOrSell},
		{packet.S_OPCODE_SHOP_ITEM_LIST, handleShopItemList},
		{packet.S_OPCODE_BUY_RESULT, handleBuyResult},
		{packet.S_OPCODE_SELL_LIST, handleSellList},
		{packet.S_OPCODE_SELL_RESULT, handleSellResult},
	}
	if version == gameplay.Version20120307 {
		routes = append(routes, route{packet.S_OPCODE_MAPSERVER_LOGIN_ACK, handleMapServerLoginAck})
	} else {
		routes = append(routes, route{packet.S_OPCODE_MAPSERVER_LOGIN_SUCCESS, handleMapServerLoginSuccess})
	}

	noops := []packet.Header{
		packet.S_OPCODE_MAPSERVER_PING,
		packet.S_OPCODE_MESSAGE_TABLE,
		packet.S_OPCODE_DISPLAY_EMOTION,
		packet.S_OPCODE_ENTITY_STOP_MOVE,
		packet.S_OPCODE_UPDATE_ATTACK_RANGE,
		packet.S_OPCODE_NEW_MAIL_STATUS,
		packet.S_OPCODE_ACHIEVEMENT_UPDATE,
		packet.S_OPCODE_ACHIEVEMENT_LIST,
		packet.S_OPCODE_CRITICAL_WEIGHT_UPDATE,
		packet.S_OPCODE_EQUIPPABLE_SWITCH_LIST,
		packet.S_OPCODE_MAP_TYPE,
		packet.S_OPCODE_PARTY_INVITATION_STATE,
		packet.S_OPCODE_SHOW_EQUIP,
		packet.S_OPCODE_UPDATE_CONFIGURATION,
		packet.S_OPCODE_NAVIGATE_TO_MONSTER,
		packet.S_OPCODE_MARK_MINIMAP_POSITION,
		packet.S_OPCODE_SPECIAL_EFFECT,
		packet.S_OPCODE_SKILL_COOLDOWN,
		packet.S_OPCODE_SKILL_EFFECT_DAMAGE,
		packet.S_OPCODE_PLAYER_HEAL_EFFECT,
		packet.S_OPCODE_STATUS_CHANGE,
		packet.S_OPCODE_QUEST_NOTIFICATION,
		packet.S_OPCODE_HUNTING_QUEST_NOTIFY,
		packet.S_OPCODE_HUNTING_QUEST_UPDATE,
		packet.S_OPCODE_QUEST_REMOVED,
		packet.S_OPCODE_QUEST_LIST,
		packet.S_OPCODE_GAINED_EXPERIENCE,
		packet.S_OPCODE_DISPLAY_IMAGE,
		packet.S_OPCODE_STATE_CHANGE,
		packet.S_OPCODE_8302,
		packet.S_OPCODE_0B18,
		packet.S_OPCODE_USE_SKILL_SUCCESS,
		packet.S_OPCODE_TO_USE_SKILL_SUCCESS,
		packet.S_OPCODE_NOTIFY_GROUND_SKILL,
		packet.S_OPCODE_FRIEND_ONLINE_STATUS,
		packet.S_OPCODE_PARTY_INVITE,
		packet.S_OPCODE_STATUS_CHANGE_SEQUENCE,
		packet.S_OPCODE_REPUTATION,
		packet.S_OPCODE_CLAN_INFO,
		packet.S_OPCODE_CLAN_ONLINE_COUNT,
		packet.S_OPCODE_CHANGE_MAP_CELL,
		packet.S_OPCODE_OPEN_MARKET,
		packet.S_OPCODE_PARAMETER_CHANGE,
		packet.S_OPCODE_STAT_UP_RESPONSE,
		packet.S_OPCODE_EQUIP_AMMUNITION,
		packet.S_OPCODE_AMMUNITION_ACTION,
	}
	return registerRoutes(reg, routes, noops)
}

func one(e gameplay.Event) (gameplay.Events, error) {
	return gameplay.OneEvent(e), nil
}

func none() (gameplay.Events, error) {
	return gameplay.NoEvents(), nil
}
