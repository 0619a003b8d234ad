package packet

import "fmt"

// Header is the 16-bit packet identifier at the start of every frame payload.
type Header uint16

func (h Header) String() string {
	return fmt.Sprintf("0x%04X", uint16(h))
}

// Server -> client, login server.
const (
	S_OPCODE_LOGIN_SUCCESS  Header = 0x0AC4
	S_OPCODE_LOGIN_FAILED   Header = 0x0081 // also sent by the character server
	S_OPCODE_LOGIN_REFUSED  Header = 0x006A // 2012 epoch, u8 reason
	S_OPCODE_LOGIN_REFUSED2 Header = 0x083E // 2022 epoch, u32 reason
)

// Server -> client, character server.
const (
	S_OPCODE_CHARSERVER_LOGIN_SUCCESS Header = 0x082D
	S_OPCODE_CHARACTER_LIST_SUCCESS   Header = 0x099D
	S_OPCODE_CHARACTER_LIST           Header = 0x006B
	S_OPCODE_LOGIN_PINCODE            Header = 0x08B9
	S_OPCODE_CHARACTER_SLOT_PAGE      Header = 0x09A0
	S_OPCODE_CHARACTER_BAN_LIST       Header = 0x020D
	S_OPCODE_0B18                     Header = 0x0B18 // also sent by the map server
	S_OPCODE_SELECT_SUCCESS           Header = 0x0AC5
	S_OPCODE_SELECT_FAILED            Header = 0x006C
	S_OPCODE_MAPSERVER_UNAVAILABLE    Header = 0x0840
	S_OPCODE_CREATE_SUCCESS           Header = 0x0B6F
	S_OPCODE_CREATE_FAILED            Header = 0x006E
	S_OPCODE_DELETE_SUCCESS           Header = 0x006F
	S_OPCODE_DELETE_FAILED            Header = 0x0070
	S_OPCODE_SWITCH_SLOT_RESPONSE     Header = 0x0B70
)

// Server -> client, map server.
const (
	S_OPCODE_MAPSERVER_LOGIN_SUCCESS  Header = 0x02EB // 2022 epoch
	S_OPCODE_MAPSERVER_LOGIN_ACK      Header = 0x0073 // 2012 epoch
	S_OPCODE_ACCOUNT_ID               Header = 0x0283
	S_OPCODE_MAPSERVER_PING           Header = 0x0187
	S_OPCODE_SERVER_TICK              Header = 0x007F
	S_OPCODE_BROADCAST                Header = 0x009A
	S_OPCODE_BROADCAST2               Header = 0x01C3
	S_OPCODE_OVERHEAD_MESSAGE         Header = 0x008D
	S_OPCODE_SERVER_MESSAGE           Header = 0x008E
	S_OPCODE_ENTITY_MESSAGE           Header = 0x02C1
	S_OPCODE_MESSAGE_TABLE            Header = 0x0291
	S_OPCODE_DISPLAY_EMOTION          Header = 0x00C0
	S_OPCODE_ENTITY_MOVE              Header = 0x0086
	S_OPCODE_ENTITY_STOP_MOVE         Header = 0x0088
	S_OPCODE_PLAYER_MOVE              Header = 0x0087
	S_OPCODE_CHANGE_MAP               Header = 0x0091
	S_OPCODE_RESURRECTION             Header = 0x0148
	S_OPCODE_ENTITY_APPEARED          Header = 0x09FF
	S_OPCODE_ENTITY_APPEARED2         Header = 0x09FE
	S_OPCODE_MOVING_ENTITY_APPEARED   Header = 0x09FD
	S_OPCODE_ENTITY_DISAPPEARED       Header = 0x0080
	S_OPCODE_UPDATE_STAT              Header = 0x00B0
	S_OPCODE_UPDATE_STAT1             Header = 0x00B1
	S_OPCODE_UPDATE_STAT2             Header = 0x00BE
	S_OPCODE_UPDATE_STAT3             Header = 0x0141
	S_OPCODE_UPDATE_ATTACK_RANGE      Header = 0x013A
	S_OPCODE_NEW_MAIL_STATUS          Header = 0x09E7
	S_OPCODE_ACHIEVEMENT_UPDATE       Header = 0x0A24
	S_OPCODE_ACHIEVEMENT_LIST         Header = 0x0A23
	S_OPCODE_CRITICAL_WEIGHT_UPDATE   Header = 0x0ADE
	S_OPCODE_SPRITE_CHANGE            Header = 0x01D7
	S_OPCODE_INVENTORY_START          Header = 0x0B08
	S_OPCODE_REGULAR_ITEM_LIST        Header = 0x0B09
	S_OPCODE_EQUIPPABLE_ITEM_LIST     Header = 0x0B39
	S_OPCODE_INVENTORY_END            Header = 0x0B0B
	S_OPCODE_EQUIPPABLE_SWITCH_LIST   Header = 0x0A9B
	S_OPCODE_MAP_TYPE                 Header = 0x01D6
	S_OPCODE_UPDATE_SKILL_TREE        Header = 0x010F
	S_OPCODE_UPDATE_HOTKEYS           Header = 0x0B20
	S_OPCODE_INITIAL_STATS            Header = 0x00BD
	S_OPCODE_PARTY_INVITATION_STATE   Header = 0x02C9
	S_OPCODE_SHOW_EQUIP               Header = 0x02DA
	S_OPCODE_UPDATE_CONFIGURATION     Header = 0x02D9
	S_OPCODE_NAVIGATE_TO_MONSTER      Header = 0x08E2
	S_OPCODE_MARK_MINIMAP_POSITION    Header = 0x0144
	S_OPCODE_NEXT_BUTTON              Header = 0x00B5
	S_OPCODE_CLOSE_BUTTON             Header = 0x00B6
	S_OPCODE_DIALOG_MENU              Header = 0x00B7
	S_OPCODE_NPC_DIALOG               Header = 0x00B4
	S_OPCODE_SPECIAL_EFFECT           Header = 0x01F3
	S_OPCODE_SKILL_COOLDOWN           Header = 0x043D
	S_OPCODE_SKILL_EFFECT_DAMAGE      Header = 0x01DE
	S_OPCODE_SKILL_EFFECT_NO_DAMAGE   Header = 0x09CB
	S_OPCODE_PLAYER_HEAL_EFFECT       Header = 0x0A27
	S_OPCODE_STATUS_CHANGE            Header = 0x0983
	S_OPCODE_QUEST_NOTIFICATION       Header = 0x02B3
	S_OPCODE_HUNTING_QUEST_NOTIFY     Header = 0x08FE
	S_OPCODE_HUNTING_QUEST_UPDATE     Header = 0x09FA
	S_OPCODE_QUEST_REMOVED            Header = 0x02B4
	S_OPCODE_QUEST_LIST               Header = 0x09F8
	S_OPCODE_VISUAL_EFFECT            Header = 0x019B
	S_OPCODE_GAINED_EXPERIENCE        Header = 0x0ACC
	S_OPCODE_DISPLAY_IMAGE            Header = 0x01B3
	S_OPCODE_STATE_CHANGE             Header = 0x0229
	S_OPCODE_QUEST_EFFECT             Header = 0x0446
	S_OPCODE_ITEM_PICKUP              Header = 0x0A37
	S_OPCODE_REMOVE_ITEM              Header = 0x07FA
	S_OPCODE_PLAYER_DETAILS           Header = 0x0A30
	S_OPCODE_ENTITY_DETAILS           Header = 0x0ADF
	S_OPCODE_ENTITY_HEALTH            Header = 0x0977
	S_OPCODE_ATTACK_FAILED            Header = 0x0139
	S_OPCODE_DAMAGE                   Header = 0x08C8
	S_OPCODE_DAMAGE3                  Header = 0x02E1
	S_OPCODE_EQUIP_ITEM_STATUS        Header = 0x0999
	S_OPCODE_UNEQUIP_ITEM_STATUS      Header = 0x099A
	S_OPCODE_8302                     Header = 0x8302
	S_OPCODE_RESTART_RESPONSE         Header = 0x00B3
	S_OPCODE_DISCONNECT_RESPONSE      Header = 0x018B
	S_OPCODE_USE_SKILL_SUCCESS        Header = 0x07FB
	S_OPCODE_TO_USE_SKILL_SUCCESS     Header = 0x0B1A
	S_OPCODE_NOTIFY_SKILL_UNIT        Header = 0x09CA
	S_OPCODE_SKILL_UNIT_DISAPPEAR     Header = 0x0120
	S_OPCODE_NOTIFY_GROUND_SKILL      Header = 0x0117
	S_OPCODE_FRIEND_LIST              Header = 0x0201
	S_OPCODE_FRIEND_ONLINE_STATUS     Header = 0x0206
	S_OPCODE_FRIEND_REQUEST           Header = 0x0207
	S_OPCODE_FRIEND_REQUEST_RESULT    Header = 0x0209
	S_OPCODE_FRIEND_REMOVED           Header = 0x020A
	S_OPCODE_PARTY_INVITE             Header = 0x02C6
	S_OPCODE_STATUS_CHANGE_SEQUENCE   Header = 0x0196
	S_OPCODE_REPUTATION               Header = 0x0AF1
	S_OPCODE_CLAN_INFO                Header = 0x098A
	S_OPCODE_CLAN_ONLINE_COUNT        Header = 0x0988
	S_OPCODE_CHANGE_MAP_CELL          Header = 0x0192
	S_OPCODE_OPEN_MARKET              Header = 0x0B3D
	S_OPCODE_BUY_OR_SELL              Header = 0x00C4
	S_OPCODE_SHOP_ITEM_LIST           Header = 0x00C6
	S_OPCODE_BUY_RESULT               Header = 0x00CA
	S_OPCODE_PARAMETER_CHANGE         Header = 0x0ACB
	S_OPCODE_SELL_LIST                Header = 0x00C7
	S_OPCODE_SELL_RESULT              Header = 0x00CB
	S_OPCODE_STAT_UP_RESPONSE         Header = 0x00BC
	S_OPCODE_EQUIP_AMMUNITION         Header = 0x013C
	S_OPCODE_AMMUNITION_ACTION        Header = 0x013B
)

// Client -> server.
const (
	C_OPCODE_LOGIN                 Header = 0x0064
	C_OPCODE_LOGIN_KEEPALIVE       Header = 0x0200
	C_OPCODE_CHARSERVER_LOGIN      Header = 0x0065
	C_OPCODE_CHARSERVER_KEEPALIVE  Header = 0x0187
	C_OPCODE_REQUEST_CHARACTERS    Header = 0x09A1
	C_OPCODE_SELECT_CHARACTER      Header = 0x0066
	C_OPCODE_CREATE_CHARACTER      Header = 0x0A39
	C_OPCODE_DELETE_CHARACTER      Header = 0x01FB
	C_OPCODE_SWITCH_SLOT           Header = 0x08D4
	C_OPCODE_MAPSERVER_LOGIN       Header = 0x0436
	C_OPCODE_MAP_LOADED            Header = 0x007D
	C_OPCODE_REQUEST_SERVER_TICK   Header = 0x0360
	C_OPCODE_RESTART               Header = 0x00B2
	C_OPCODE_MOVE                  Header = 0x035F
	C_OPCODE_WARP_TO_MAP           Header = 0x0140
	C_OPCODE_REQUEST_DETAILS       Header = 0x0368
	C_OPCODE_ACTION                Header = 0x0437
	C_OPCODE_GLOBAL_MESSAGE        Header = 0x00F3
	C_OPCODE_START_DIALOG          Header = 0x0090
	C_OPCODE_NEXT_DIALOG           Header = 0x00B9
	C_OPCODE_CLOSE_DIALOG          Header = 0x0146
	C_OPCODE_DIALOG_MENU_RESPONSE  Header = 0x00B8
	C_OPCODE_EQUIP_ITEM            Header = 0x0998
	C_OPCODE_UNEQUIP_ITEM          Header = 0x00AB
	C_OPCODE_USE_SKILL             Header = 0x0113
	C_OPCODE_USE_SKILL_ON_GROUND   Header = 0x0438
	C_OPCODE_START_USE_SKILL       Header = 0x07EC
	C_OPCODE_END_USE_SKILL         Header = 0x07ED
	C_OPCODE_ADD_FRIEND            Header = 0x0202
	C_OPCODE_REMOVE_FRIEND         Header = 0x0203
	C_OPCODE_FRIEND_REQUEST_ANSWER Header = 0x0208
	C_OPCODE_SET_HOTKEY            Header = 0x0B21
	C_OPCODE_SELECT_BUY_OR_SELL    Header = 0x00C5
	C_OPCODE_PURCHASE_ITEMS        Header = 0x00C8
	C_OPCODE_CLOSE_SHOP            Header = 0x09D4
	C_OPCODE_SELL_ITEMS            Header = 0x00C9
	C_OPCODE_STAT_UP               Header = 0x00BB
)
