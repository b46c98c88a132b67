package commands

import (
	"github.com/mcoot/mixplugin-go/internal/chat"
	"github.com/mcoot/mixplugin-go/internal/model"
)

const (
	msgNoPermissionUse = "You do not have permission to use this command!"
	msgNoPermission    = "You do not have permission to use that command!"
	msgUnknownCommand  = "Unknown command, type /mp for help"
	msgPlayersOnly     = "Only players can use this command!"
	msgHostUnavailable = "The server could not complete that right now, try again"

	msgNoDeathLocation = "You have no death location to return to!"
	msgDeathWorldGone  = "The world you died in no longer exists"
	msgBackDone        = "Teleported to your death location"

	msgTpaUsage        = "Usage: /mp tpa <player|accept|deny>"
	msgTpaSelf         = "You cannot send a request to yourself!"
	msgTpaNoPending    = "You have no pending teleport request!"
	msgTpaExpired      = "That teleport request has expired"
	msgTpaOffline      = "The player who sent the request is offline"
	msgTpaHowToRespond = "Type /mp tpa accept to accept or /mp tpa deny to deny"
	msgTpaDenied       = "Teleport request denied"

	msgBanUsage          = "Usage: /mp ban <player> <days (0 = permanent)> <reason>"
	msgBanExampleDays    = "Example: /mp ban Player1 7 Using cheats"
	msgBanExamplePerm    = "Example: /mp ban Player1 0 Using cheats"
	msgBanTargetOffline  = "That player is not online or does not exist!"
	msgBanDaysNotNumber  = "Days must be a number!"
	msgBanReasonRequired = "Please provide a ban reason!"

	msgUnbanUsage    = "Usage: /mp unban <player|uuid>"
	msgUnbanNotFound = "No ban record found for that player!"

	msgNoBans     = "There are no bans"
	msgBansHeader = "---------------- Ban list ----------------"
	msgBansRule   = "------------------------------------------"

	msgSpawnStored  = "Teleported to this world's spawn"
	msgSpawnDefault = "Teleported to this world's default spawn"

	msgFirstSpawnSet = "First-join spawn set"
	msgWorldSpawnSet = "Spawn set for this world"
	msgNoWorld       = "Your location has no world"

	unknownPlayer = "Unknown player"
)

var helpLines = []string{
	"------------------------------------------",
	"MixPlugin commands",
	"/mp back - return to your death location",
	"/mp tpa <player> - ask to teleport to a player",
	"/mp tpa accept - accept a teleport request",
	"/mp tpa deny - deny a teleport request",
	"/mp ban <player> <days (0 = permanent)> <reason> - ban a player",
	"/mp unban <player> - lift a ban",
	"/mp bans - list bans",
	"/mp spawn - go to this world's spawn",
	"/mp setfirstspawn - set where new players appear",
	"/mp setworldspawn - set this world's spawn",
	"------------------------------------------",
}

// help lists every verb. It is shown regardless of permissions.
func help() []model.Effect {
	return reply(helpLines...)
}

// durationLabel renders the ban length shown on the kick screen
func durationLabel(days int) string {
	if days <= 0 {
		return "permanent"
	}
	return "in about " + chat.Days(days)
}
