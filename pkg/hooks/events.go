// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hooks

// ServerEvent identifies world, map, auction, weather and addon events.
type ServerEvent uint32

// Server event kinds.
const (
	WorldOnOpenStateChange ServerEvent = 8
	WorldOnConfigLoad      ServerEvent = 9
	WorldOnShutdownInit    ServerEvent = 11
	WorldOnShutdownCancel  ServerEvent = 12
	WorldOnUpdate          ServerEvent = 13
	WorldOnStartup         ServerEvent = 14
	WorldOnShutdown        ServerEvent = 15
	StateOnClose           ServerEvent = 16
	MapOnCreate            ServerEvent = 17
	MapOnDestroy           ServerEvent = 18
	MapOnPlayerEnter       ServerEvent = 21
	MapOnPlayerLeave       ServerEvent = 22
	MapOnUpdate            ServerEvent = 23
	TriggerOnTrigger       ServerEvent = 24
	WeatherOnChange        ServerEvent = 25
	AuctionOnAdd           ServerEvent = 26
	AuctionOnRemove        ServerEvent = 27
	AuctionOnSuccessful    ServerEvent = 28
	AuctionOnExpire        ServerEvent = 29
	AddonOnMessage         ServerEvent = 30
	WorldOnDeleteCreature  ServerEvent = 31
	WorldOnDeleteGameObj   ServerEvent = 32
	StateOnOpen            ServerEvent = 33
	GameEventStart         ServerEvent = 34
	GameEventStop          ServerEvent = 35
)

func (e ServerEvent) String() string { return Server.KindName(uint32(e)) }

// Server is the family of ServerEvent kinds.
var Server = newFamily("SERVER", map[uint32]string{
	uint32(WorldOnOpenStateChange): "WORLD_ON_OPEN_STATE_CHANGE",
	uint32(WorldOnConfigLoad):      "WORLD_ON_CONFIG_LOAD",
	uint32(WorldOnShutdownInit):    "WORLD_ON_SHUTDOWN_INIT",
	uint32(WorldOnShutdownCancel):  "WORLD_ON_SHUTDOWN_CANCEL",
	uint32(WorldOnUpdate):          "WORLD_ON_UPDATE",
	uint32(WorldOnStartup):         "WORLD_ON_STARTUP",
	uint32(WorldOnShutdown):        "WORLD_ON_SHUTDOWN",
	uint32(StateOnClose):           "STATE_ON_CLOSE",
	uint32(MapOnCreate):            "MAP_ON_CREATE",
	uint32(MapOnDestroy):           "MAP_ON_DESTROY",
	uint32(MapOnPlayerEnter):       "MAP_ON_PLAYER_ENTER",
	uint32(MapOnPlayerLeave):       "MAP_ON_PLAYER_LEAVE",
	uint32(MapOnUpdate):            "MAP_ON_UPDATE",
	uint32(TriggerOnTrigger):       "TRIGGER_ON_TRIGGER",
	uint32(WeatherOnChange):        "WEATHER_ON_CHANGE",
	uint32(AuctionOnAdd):           "AUCTION_ON_ADD",
	uint32(AuctionOnRemove):        "AUCTION_ON_REMOVE",
	uint32(AuctionOnSuccessful):    "AUCTION_ON_SUCCESSFUL",
	uint32(AuctionOnExpire):        "AUCTION_ON_EXPIRE",
	uint32(AddonOnMessage):         "ADDON_ON_MESSAGE",
	uint32(WorldOnDeleteCreature):  "WORLD_ON_DELETE_CREATURE",
	uint32(WorldOnDeleteGameObj):   "WORLD_ON_DELETE_GAMEOBJECT",
	uint32(StateOnOpen):            "STATE_ON_OPEN",
	uint32(GameEventStart):         "GAME_EVENT_START",
	uint32(GameEventStop):          "GAME_EVENT_STOP",
})

// PlayerEvent identifies events raised for any player.
type PlayerEvent uint32

// Player event kinds.
const (
	PlayerOnCharacterCreate   PlayerEvent = 1
	PlayerOnCharacterDelete   PlayerEvent = 2
	PlayerOnLogin             PlayerEvent = 3
	PlayerOnLogout            PlayerEvent = 4
	PlayerOnSpellCast         PlayerEvent = 5
	PlayerOnKillPlayer        PlayerEvent = 6
	PlayerOnKillCreature      PlayerEvent = 7
	PlayerOnKilledByCreature  PlayerEvent = 8
	PlayerOnDuelRequest       PlayerEvent = 9
	PlayerOnDuelStart         PlayerEvent = 10
	PlayerOnDuelEnd           PlayerEvent = 11
	PlayerOnGiveXP            PlayerEvent = 12
	PlayerOnLevelChange       PlayerEvent = 13
	PlayerOnMoneyChange       PlayerEvent = 14
	PlayerOnReputationChange  PlayerEvent = 15
	PlayerOnTalentsChange     PlayerEvent = 16
	PlayerOnTalentsReset      PlayerEvent = 17
	PlayerOnChat              PlayerEvent = 18
	PlayerOnWhisper           PlayerEvent = 19
	PlayerOnGroupChat         PlayerEvent = 20
	PlayerOnGuildChat         PlayerEvent = 21
	PlayerOnChannelChat       PlayerEvent = 22
	PlayerOnEmote             PlayerEvent = 23
	PlayerOnTextEmote         PlayerEvent = 24
	PlayerOnSave              PlayerEvent = 25
	PlayerOnBindToInstance    PlayerEvent = 26
	PlayerOnUpdateZone        PlayerEvent = 27
	PlayerOnMapChange         PlayerEvent = 28
	PlayerOnEquip             PlayerEvent = 29
	PlayerOnFirstLogin        PlayerEvent = 30
	PlayerOnCanUseItem        PlayerEvent = 31
	PlayerOnLootItem          PlayerEvent = 32
	PlayerOnEnterCombat       PlayerEvent = 33
	PlayerOnLeaveCombat       PlayerEvent = 34
	PlayerOnRepop             PlayerEvent = 35
	PlayerOnResurrect         PlayerEvent = 36
	PlayerOnLootMoney         PlayerEvent = 37
	PlayerOnQuestAbandon      PlayerEvent = 38
	PlayerOnLearnTalents      PlayerEvent = 39
	PlayerOnCommand           PlayerEvent = 42
	PlayerOnPetAddedToWorld   PlayerEvent = 43
	PlayerOnLearnSpell        PlayerEvent = 44
	PlayerOnAchievement       PlayerEvent = 45
	PlayerOnFFAPvPChange      PlayerEvent = 46
	PlayerOnUpdateArea        PlayerEvent = 47
	PlayerOnCanInitTrade      PlayerEvent = 48
	PlayerOnCanSendMail       PlayerEvent = 49
	PlayerOnCanJoinLFG        PlayerEvent = 50
	PlayerOnCanGroupInvite    PlayerEvent = 51
	PlayerOnGroupRollReward   PlayerEvent = 52
	PlayerOnBGDesertion       PlayerEvent = 53
	PlayerOnPetKill           PlayerEvent = 54
	PlayerOnCanResurrect      PlayerEvent = 55
	PlayerOnCanUpdateSkill    PlayerEvent = 56
	PlayerOnBeforeUpdateSkill PlayerEvent = 57
	PlayerOnUpdateSkill       PlayerEvent = 58
	PlayerOnQuestRewardItem   PlayerEvent = 59
	PlayerOnCreateItem        PlayerEvent = 60
	PlayerOnStoreNewItem      PlayerEvent = 61
	PlayerOnCompleteQuest     PlayerEvent = 62
)

func (e PlayerEvent) String() string { return Player.KindName(uint32(e)) }

// Player is the family of PlayerEvent kinds.
var Player = newFamily("PLAYER", map[uint32]string{
	uint32(PlayerOnCharacterCreate):   "ON_CHARACTER_CREATE",
	uint32(PlayerOnCharacterDelete):   "ON_CHARACTER_DELETE",
	uint32(PlayerOnLogin):             "ON_LOGIN",
	uint32(PlayerOnLogout):            "ON_LOGOUT",
	uint32(PlayerOnSpellCast):         "ON_SPELL_CAST",
	uint32(PlayerOnKillPlayer):        "ON_KILL_PLAYER",
	uint32(PlayerOnKillCreature):      "ON_KILL_CREATURE",
	uint32(PlayerOnKilledByCreature):  "ON_KILLED_BY_CREATURE",
	uint32(PlayerOnDuelRequest):       "ON_DUEL_REQUEST",
	uint32(PlayerOnDuelStart):         "ON_DUEL_START",
	uint32(PlayerOnDuelEnd):           "ON_DUEL_END",
	uint32(PlayerOnGiveXP):            "ON_GIVE_XP",
	uint32(PlayerOnLevelChange):       "ON_LEVEL_CHANGE",
	uint32(PlayerOnMoneyChange):       "ON_MONEY_CHANGE",
	uint32(PlayerOnReputationChange):  "ON_REPUTATION_CHANGE",
	uint32(PlayerOnTalentsChange):     "ON_TALENTS_CHANGE",
	uint32(PlayerOnTalentsReset):      "ON_TALENTS_RESET",
	uint32(PlayerOnChat):              "ON_CHAT",
	uint32(PlayerOnWhisper):           "ON_WHISPER",
	uint32(PlayerOnGroupChat):         "ON_GROUP_CHAT",
	uint32(PlayerOnGuildChat):         "ON_GUILD_CHAT",
	uint32(PlayerOnChannelChat):       "ON_CHANNEL_CHAT",
	uint32(PlayerOnEmote):             "ON_EMOTE",
	uint32(PlayerOnTextEmote):         "ON_TEXT_EMOTE",
	uint32(PlayerOnSave):              "ON_SAVE",
	uint32(PlayerOnBindToInstance):    "ON_BIND_TO_INSTANCE",
	uint32(PlayerOnUpdateZone):        "ON_UPDATE_ZONE",
	uint32(PlayerOnMapChange):         "ON_MAP_CHANGE",
	uint32(PlayerOnEquip):             "ON_EQUIP",
	uint32(PlayerOnFirstLogin):        "ON_FIRST_LOGIN",
	uint32(PlayerOnCanUseItem):        "ON_CAN_USE_ITEM",
	uint32(PlayerOnLootItem):          "ON_LOOT_ITEM",
	uint32(PlayerOnEnterCombat):       "ON_ENTER_COMBAT",
	uint32(PlayerOnLeaveCombat):       "ON_LEAVE_COMBAT",
	uint32(PlayerOnRepop):             "ON_REPOP",
	uint32(PlayerOnResurrect):         "ON_RESURRECT",
	uint32(PlayerOnLootMoney):         "ON_LOOT_MONEY",
	uint32(PlayerOnQuestAbandon):      "ON_QUEST_ABANDON",
	uint32(PlayerOnLearnTalents):      "ON_LEARN_TALENTS",
	uint32(PlayerOnCommand):           "ON_COMMAND",
	uint32(PlayerOnPetAddedToWorld):   "ON_PET_ADDED_TO_WORLD",
	uint32(PlayerOnLearnSpell):        "ON_LEARN_SPELL",
	uint32(PlayerOnAchievement):       "ON_ACHIEVEMENT_COMPLETE",
	uint32(PlayerOnFFAPvPChange):      "ON_FFAPVP_CHANGE",
	uint32(PlayerOnUpdateArea):        "ON_UPDATE_AREA",
	uint32(PlayerOnCanInitTrade):      "ON_CAN_INIT_TRADE",
	uint32(PlayerOnCanSendMail):       "ON_CAN_SEND_MAIL",
	uint32(PlayerOnCanJoinLFG):        "ON_CAN_JOIN_LFG",
	uint32(PlayerOnCanGroupInvite):    "ON_CAN_GROUP_INVITE",
	uint32(PlayerOnGroupRollReward):   "ON_GROUP_ROLL_REWARD_ITEM",
	uint32(PlayerOnBGDesertion):       "ON_BG_DESERTION",
	uint32(PlayerOnPetKill):           "ON_PET_KILL",
	uint32(PlayerOnCanResurrect):      "ON_CAN_RESURRECT",
	uint32(PlayerOnCanUpdateSkill):    "ON_CAN_UPDATE_SKILL",
	uint32(PlayerOnBeforeUpdateSkill): "ON_BEFORE_UPDATE_SKILL",
	uint32(PlayerOnUpdateSkill):       "ON_UPDATE_SKILL",
	uint32(PlayerOnQuestRewardItem):   "ON_QUEST_REWARD_ITEM",
	uint32(PlayerOnCreateItem):        "ON_CREATE_ITEM",
	uint32(PlayerOnStoreNewItem):      "ON_STORE_NEW_ITEM",
	uint32(PlayerOnCompleteQuest):     "ON_COMPLETE_QUEST",
})

// GuildEvent identifies guild events.
type GuildEvent uint32

// Guild event kinds.
const (
	GuildOnAddMember     GuildEvent = 1
	GuildOnRemoveMember  GuildEvent = 2
	GuildOnMOTDChange    GuildEvent = 3
	GuildOnInfoChange    GuildEvent = 4
	GuildOnCreate        GuildEvent = 5
	GuildOnDisband       GuildEvent = 6
	GuildOnMoneyWithdraw GuildEvent = 7
	GuildOnMoneyDeposit  GuildEvent = 8
	GuildOnItemMove      GuildEvent = 9
	GuildOnEvent         GuildEvent = 10
	GuildOnBankEvent     GuildEvent = 11
)

func (e GuildEvent) String() string { return Guild.KindName(uint32(e)) }

// Guild is the family of GuildEvent kinds.
var Guild = newFamily("GUILD", map[uint32]string{
	uint32(GuildOnAddMember):     "ON_ADD_MEMBER",
	uint32(GuildOnRemoveMember):  "ON_REMOVE_MEMBER",
	uint32(GuildOnMOTDChange):    "ON_MOTD_CHANGE",
	uint32(GuildOnInfoChange):    "ON_INFO_CHANGE",
	uint32(GuildOnCreate):        "ON_CREATE",
	uint32(GuildOnDisband):       "ON_DISBAND",
	uint32(GuildOnMoneyWithdraw): "ON_MONEY_WITHDRAW",
	uint32(GuildOnMoneyDeposit):  "ON_MONEY_DEPOSIT",
	uint32(GuildOnItemMove):      "ON_ITEM_MOVE",
	uint32(GuildOnEvent):         "ON_EVENT",
	uint32(GuildOnBankEvent):     "ON_BANK_EVENT",
})

// GroupEvent identifies party and raid events.
type GroupEvent uint32

// Group event kinds.
const (
	GroupOnMemberAdd    GroupEvent = 1
	GroupOnMemberInvite GroupEvent = 2
	GroupOnMemberRemove GroupEvent = 3
	GroupOnLeaderChange GroupEvent = 4
	GroupOnDisband      GroupEvent = 5
	GroupOnCreate       GroupEvent = 6
)

func (e GroupEvent) String() string { return Group.KindName(uint32(e)) }

// Group is the family of GroupEvent kinds.
var Group = newFamily("GROUP", map[uint32]string{
	uint32(GroupOnMemberAdd):    "ON_MEMBER_ADD",
	uint32(GroupOnMemberInvite): "ON_MEMBER_INVITE",
	uint32(GroupOnMemberRemove): "ON_MEMBER_REMOVE",
	uint32(GroupOnLeaderChange): "ON_LEADER_CHANGE",
	uint32(GroupOnDisband):      "ON_DISBAND",
	uint32(GroupOnCreate):       "ON_CREATE",
})

// VehicleEvent identifies vehicle events.
type VehicleEvent uint32

// Vehicle event kinds.
const (
	VehicleOnInstall          VehicleEvent = 1
	VehicleOnUninstall        VehicleEvent = 2
	VehicleOnInstallAccessory VehicleEvent = 4
	VehicleOnAddPassenger     VehicleEvent = 5
	VehicleOnRemovePassenger  VehicleEvent = 6
)

func (e VehicleEvent) String() string { return Vehicle.KindName(uint32(e)) }

// Vehicle is the family of VehicleEvent kinds.
var Vehicle = newFamily("VEHICLE", map[uint32]string{
	uint32(VehicleOnInstall):          "ON_INSTALL",
	uint32(VehicleOnUninstall):        "ON_UNINSTALL",
	uint32(VehicleOnInstallAccessory): "ON_INSTALL_ACCESSORY",
	uint32(VehicleOnAddPassenger):     "ON_ADD_PASSENGER",
	uint32(VehicleOnRemovePassenger):  "ON_REMOVE_PASSENGER",
})

// TicketEvent identifies GM ticket events.
type TicketEvent uint32

// Ticket event kinds.
const (
	TicketOnCreate           TicketEvent = 1
	TicketOnUpdateLastChange TicketEvent = 2
	TicketOnClose            TicketEvent = 3
	TicketOnResolve          TicketEvent = 4
)

func (e TicketEvent) String() string { return Ticket.KindName(uint32(e)) }

// Ticket is the family of TicketEvent kinds.
var Ticket = newFamily("TICKET", map[uint32]string{
	uint32(TicketOnCreate):           "ON_CREATE",
	uint32(TicketOnUpdateLastChange): "UPDATE_LAST_CHANGE",
	uint32(TicketOnClose):            "ON_CLOSE",
	uint32(TicketOnResolve):          "ON_RESOLVE",
})

// BGEvent identifies battleground events.
type BGEvent uint32

// Battleground event kinds.
const (
	BGOnStart      BGEvent = 1
	BGOnEnd        BGEvent = 2
	BGOnCreate     BGEvent = 3
	BGOnPreDestroy BGEvent = 4
)

func (e BGEvent) String() string { return BG.KindName(uint32(e)) }

// BG is the family of BGEvent kinds.
var BG = newFamily("BG", map[uint32]string{
	uint32(BGOnStart):      "ON_START",
	uint32(BGOnEnd):        "ON_END",
	uint32(BGOnCreate):     "ON_CREATE",
	uint32(BGOnPreDestroy): "ON_PRE_DESTROY",
})

// CreatureEvent identifies events bound per creature entry or per creature.
type CreatureEvent uint32

// Creature event kinds.
const (
	CreatureOnEnterCombat       CreatureEvent = 1
	CreatureOnLeaveCombat       CreatureEvent = 2
	CreatureOnTargetDied        CreatureEvent = 3
	CreatureOnDied              CreatureEvent = 4
	CreatureOnSpawn             CreatureEvent = 5
	CreatureOnReachWP           CreatureEvent = 6
	CreatureOnAIUpdate          CreatureEvent = 7
	CreatureOnReceiveEmote      CreatureEvent = 8
	CreatureOnDamageTaken       CreatureEvent = 9
	CreatureOnPreCombat         CreatureEvent = 10
	CreatureOnOwnerAttacked     CreatureEvent = 12
	CreatureOnOwnerAttackedAt   CreatureEvent = 13
	CreatureOnHitBySpell        CreatureEvent = 14
	CreatureOnSpellHitTarget    CreatureEvent = 15
	CreatureOnJustSummoned      CreatureEvent = 19
	CreatureOnSummonedDespawn   CreatureEvent = 20
	CreatureOnSummonedDied      CreatureEvent = 21
	CreatureOnSummoned          CreatureEvent = 22
	CreatureOnReset             CreatureEvent = 23
	CreatureOnReachHome         CreatureEvent = 24
	CreatureOnCorpseRemoved     CreatureEvent = 26
	CreatureOnMoveInLOS         CreatureEvent = 27
	CreatureOnDummyEffect       CreatureEvent = 30
	CreatureOnQuestAccept       CreatureEvent = 31
	CreatureOnQuestReward       CreatureEvent = 34
	CreatureOnDialogStatus      CreatureEvent = 35
	CreatureOnAdd               CreatureEvent = 36
	CreatureOnRemove            CreatureEvent = 37
)

func (e CreatureEvent) String() string { return Creature.KindName(uint32(e)) }

// Creature is the family of CreatureEvent kinds.
var Creature = newFamily("CREATURE", map[uint32]string{
	uint32(CreatureOnEnterCombat):     "ON_ENTER_COMBAT",
	uint32(CreatureOnLeaveCombat):     "ON_LEAVE_COMBAT",
	uint32(CreatureOnTargetDied):      "ON_TARGET_DIED",
	uint32(CreatureOnDied):            "ON_DIED",
	uint32(CreatureOnSpawn):           "ON_SPAWN",
	uint32(CreatureOnReachWP):         "ON_REACH_WP",
	uint32(CreatureOnAIUpdate):        "ON_AIUPDATE",
	uint32(CreatureOnReceiveEmote):    "ON_RECEIVE_EMOTE",
	uint32(CreatureOnDamageTaken):     "ON_DAMAGE_TAKEN",
	uint32(CreatureOnPreCombat):       "ON_PRE_COMBAT",
	uint32(CreatureOnOwnerAttacked):   "ON_OWNER_ATTACKED",
	uint32(CreatureOnOwnerAttackedAt): "ON_OWNER_ATTACKED_AT",
	uint32(CreatureOnHitBySpell):      "ON_HIT_BY_SPELL",
	uint32(CreatureOnSpellHitTarget):  "ON_SPELL_HIT_TARGET",
	uint32(CreatureOnJustSummoned):    "ON_JUST_SUMMONED_CREATURE",
	uint32(CreatureOnSummonedDespawn): "ON_SUMMONED_CREATURE_DESPAWN",
	uint32(CreatureOnSummonedDied):    "ON_SUMMONED_CREATURE_DIED",
	uint32(CreatureOnSummoned):        "ON_SUMMONED",
	uint32(CreatureOnReset):           "ON_RESET",
	uint32(CreatureOnReachHome):       "ON_REACH_HOME",
	uint32(CreatureOnCorpseRemoved):   "ON_CORPSE_REMOVED",
	uint32(CreatureOnMoveInLOS):       "ON_MOVE_IN_LOS",
	uint32(CreatureOnDummyEffect):     "ON_DUMMY_EFFECT",
	uint32(CreatureOnQuestAccept):     "ON_QUEST_ACCEPT",
	uint32(CreatureOnQuestReward):     "ON_QUEST_REWARD",
	uint32(CreatureOnDialogStatus):    "ON_DIALOG_STATUS",
	uint32(CreatureOnAdd):             "ON_ADD",
	uint32(CreatureOnRemove):          "ON_REMOVE",
})

// GameObjectEvent identifies events bound per game object entry.
type GameObjectEvent uint32

// Game object event kinds.
const (
	GameObjectOnAIUpdate         GameObjectEvent = 1
	GameObjectOnSpawn            GameObjectEvent = 2
	GameObjectOnDummyEffect      GameObjectEvent = 3
	GameObjectOnQuestAccept      GameObjectEvent = 4
	GameObjectOnQuestReward      GameObjectEvent = 5
	GameObjectOnDialogStatus     GameObjectEvent = 6
	GameObjectOnDestroyed        GameObjectEvent = 7
	GameObjectOnDamaged          GameObjectEvent = 8
	GameObjectOnLootStateChange  GameObjectEvent = 9
	GameObjectOnGOStateChanged   GameObjectEvent = 10
	GameObjectOnAdd              GameObjectEvent = 12
	GameObjectOnRemove           GameObjectEvent = 13
	GameObjectOnUse              GameObjectEvent = 14
)

func (e GameObjectEvent) String() string { return GameObject.KindName(uint32(e)) }

// GameObject is the family of GameObjectEvent kinds.
var GameObject = newFamily("GAMEOBJECT", map[uint32]string{
	uint32(GameObjectOnAIUpdate):        "ON_AIUPDATE",
	uint32(GameObjectOnSpawn):           "ON_SPAWN",
	uint32(GameObjectOnDummyEffect):     "ON_DUMMY_EFFECT",
	uint32(GameObjectOnQuestAccept):     "ON_QUEST_ACCEPT",
	uint32(GameObjectOnQuestReward):     "ON_QUEST_REWARD",
	uint32(GameObjectOnDialogStatus):    "ON_DIALOG_STATUS",
	uint32(GameObjectOnDestroyed):       "ON_DESTROYED",
	uint32(GameObjectOnDamaged):         "ON_DAMAGED",
	uint32(GameObjectOnLootStateChange): "ON_LOOT_STATE_CHANGE",
	uint32(GameObjectOnGOStateChanged):  "ON_GO_STATE_CHANGED",
	uint32(GameObjectOnAdd):             "ON_ADD",
	uint32(GameObjectOnRemove):          "ON_REMOVE",
	uint32(GameObjectOnUse):             "ON_USE",
})

// SpellEvent identifies events bound per spell id.
type SpellEvent uint32

// Spell event kinds.
const (
	SpellOnCast       SpellEvent = 1
	SpellOnCastCancel SpellEvent = 2
	SpellOnPrepare    SpellEvent = 3
)

func (e SpellEvent) String() string { return Spell.KindName(uint32(e)) }

// Spell is the family of SpellEvent kinds.
var Spell = newFamily("SPELL", map[uint32]string{
	uint32(SpellOnCast):       "ON_CAST",
	uint32(SpellOnCastCancel): "ON_CAST_CANCEL",
	uint32(SpellOnPrepare):    "ON_PREPARE",
})

// GossipEvent identifies gossip events. The same kinds are used by the
// creature, game object, item and player gossip tables.
type GossipEvent uint32

// Gossip event kinds.
const (
	GossipOnHello  GossipEvent = 1
	GossipOnSelect GossipEvent = 2
)

func (e GossipEvent) String() string { return Gossip.KindName(uint32(e)) }

// Gossip is the family of GossipEvent kinds.
var Gossip = newFamily("GOSSIP", map[uint32]string{
	uint32(GossipOnHello):  "ON_HELLO",
	uint32(GossipOnSelect): "ON_SELECT",
})

// InstanceEvent identifies instance script events, bound per map id or per
// instance id.
type InstanceEvent uint32

// Instance event kinds.
const (
	InstanceOnInitialize        InstanceEvent = 1
	InstanceOnLoad              InstanceEvent = 2
	InstanceOnUpdate            InstanceEvent = 3
	InstanceOnPlayerEnter       InstanceEvent = 4
	InstanceOnCreatureCreate    InstanceEvent = 5
	InstanceOnGameObjectCreate  InstanceEvent = 6
	InstanceOnCheckEncounter    InstanceEvent = 7
)

func (e InstanceEvent) String() string { return Instance.KindName(uint32(e)) }

// Instance is the family of InstanceEvent kinds.
var Instance = newFamily("INSTANCE", map[uint32]string{
	uint32(InstanceOnInitialize):       "ON_INITIALIZE",
	uint32(InstanceOnLoad):             "ON_LOAD",
	uint32(InstanceOnUpdate):           "ON_UPDATE",
	uint32(InstanceOnPlayerEnter):      "ON_PLAYER_ENTER",
	uint32(InstanceOnCreatureCreate):   "ON_CREATURE_CREATE",
	uint32(InstanceOnGameObjectCreate): "ON_GAMEOBJECT_CREATE",
	uint32(InstanceOnCheckEncounter):   "ON_CHECK_ENCOUNTER_IN_PROGRESS",
})
