package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mixplugin-go/internal/dependencies/mocks"
	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/death"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
	"github.com/mcoot/mixplugin-go/internal/services/teleport"
	"github.com/mcoot/mixplugin-go/internal/storage"
	"github.com/mcoot/mixplugin-go/internal/storage/memory"
	"github.com/mcoot/mixplugin-go/internal/testutil"
)

const (
	aliceID = model.PlayerID("a11ce000-0000-4000-8000-000000000001")
	bobID   = model.PlayerID("b0b00000-0000-4000-8000-000000000002")
)

type RouterSuite struct {
	suite.Suite
	clock     *mocks.MockClock
	host      *mocks.MockHost
	bans      *bans.Registry
	teleports *teleport.Table
	deaths    *death.Table
	spawns    *spawn.Registry
	router    *Router
	ctx       context.Context

	alice   model.Sender
	bob     model.Sender
	console model.Sender
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctx = context.Background()
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.host = mocks.NewMockHost()
	s.host.AddWorld("world", model.Location{X: 0, Y: 64, Z: 0})
	s.host.AddWorld("world_nether", model.Location{X: 0, Y: 80, Z: 0})

	s.bans = bans.New(storage.New(bans.DocumentName, memory.New(), logger), s.clock, s.host, logger)
	s.teleports = teleport.New(s.clock, s.host)
	s.deaths = death.New()
	s.spawns = spawn.New(s.ctx, storage.New(spawn.DocumentName, memory.New(), logger), logger)
	s.router = NewRouter(s.host, s.bans, s.teleports, s.deaths, s.spawns, s.clock, logger)

	s.alice = s.player(aliceID, "Alice", model.Location{World: "world", X: 10, Y: 64, Z: 10})
	s.bob = s.player(bobID, "Bob", model.Location{World: "world", X: -50, Y: 70, Z: 5})
	s.console = model.Sender{IsOp: true}
}

// player registers an online player holding every permission
func (s *RouterSuite) player(id model.PlayerID, name string, loc model.Location) model.Sender {
	s.host.AddPlayer(id, name)
	return model.Sender{
		Player:   model.Player{ID: id, Name: name},
		IsPlayer: true,
		Permissions: []string{
			PermUse, PermBack, PermTpa, PermTpaAccept, PermTpaDeny, PermSpawn,
		},
		Location: loc,
	}
}

func (s *RouterSuite) dispatch(sender model.Sender, line string) []model.Effect {
	return s.router.Dispatch(s.ctx, sender, strings.Fields(line))
}

// replies returns the text of messages addressed to the sender
func replies(effects []model.Effect) []string {
	var out []string
	for _, e := range effects {
		if e.Kind == model.EffectMessage && e.Target == "" {
			out = append(out, e.Message)
		}
	}
	return out
}

func ofKind(effects []model.Effect, kind model.EffectKind) []model.Effect {
	var out []model.Effect
	for _, e := range effects {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (s *RouterSuite) assertReply(effects []model.Effect, text string) {
	s.T().Helper()
	for _, r := range replies(effects) {
		if strings.Contains(r, text) {
			return
		}
	}
	s.Failf("reply not found", "wanted %q in %v", text, replies(effects))
}

// General dispatch tests

func (s *RouterSuite) TestEmptyArgsShowsHelp() {
	effects := s.router.Dispatch(s.ctx, model.Sender{IsPlayer: true}, nil)
	s.Len(effects, len(helpLines))
}

func (s *RouterSuite) TestUnknownVerb() {
	s.assertReply(s.dispatch(s.alice, "fly"), msgUnknownCommand)
}

func (s *RouterSuite) TestVerbIsCaseInsensitive() {
	s.assertReply(s.dispatch(s.alice, "BACK"), msgNoDeathLocation)
}

func (s *RouterSuite) TestRequiresUsePermission() {
	s.alice.Permissions = []string{PermBack}
	s.assertReply(s.dispatch(s.alice, "back"), msgNoPermissionUse)
}

func (s *RouterSuite) TestRequiresVerbPermission() {
	s.alice.Permissions = []string{PermUse}
	s.assertReply(s.dispatch(s.alice, "back"), msgNoPermission)
}

func (s *RouterSuite) TestOpHasAllPermissions() {
	s.alice.Permissions = nil
	s.alice.IsOp = true
	s.assertReply(s.dispatch(s.alice, "back"), msgNoDeathLocation)
}

func (s *RouterSuite) TestPlayerOnlyVerbsRejectConsole() {
	for _, verb := range []string{"back", "tpa Bob", "spawn", "setfirstspawn", "setworldspawn"} {
		s.assertReply(s.dispatch(s.console, verb), msgPlayersOnly)
	}
}

// back tests

func (s *RouterSuite) TestBackTeleportsAndConsumes() {
	deathLoc := model.Location{World: "world", X: 1, Y: 2, Z: 3}
	s.deaths.Record(aliceID, deathLoc)

	effects := s.dispatch(s.alice, "back")
	teleports := ofKind(effects, model.EffectTeleport)
	s.Require().Len(teleports, 1)
	s.Equal(aliceID, teleports[0].Target)
	s.Equal(deathLoc, *teleports[0].Location)
	s.assertReply(effects, msgBackDone)

	s.assertReply(s.dispatch(s.alice, "back"), msgNoDeathLocation)
}

func (s *RouterSuite) TestBackToVanishedWorldConsumes() {
	s.deaths.Record(aliceID, model.Location{World: "deleted_world"})

	effects := s.dispatch(s.alice, "back")
	s.Empty(ofKind(effects, model.EffectTeleport))
	s.assertReply(effects, msgDeathWorldGone)
	s.Equal(0, s.deaths.Len())
}

func (s *RouterSuite) TestBackKeepsLocationWhenHostFails() {
	s.deaths.Record(aliceID, model.Location{World: "world"})
	s.host.Err = errors.New("host unreachable")

	s.assertReply(s.dispatch(s.alice, "back"), msgHostUnavailable)
	s.Equal(1, s.deaths.Len())
}

// tpa tests

func (s *RouterSuite) TestTpaUsage() {
	s.assertReply(s.dispatch(s.alice, "tpa"), msgTpaUsage)
}

func (s *RouterSuite) TestTpaRequestNotifiesTarget() {
	effects := s.dispatch(s.alice, "tpa bob")

	s.assertReply(effects, "Teleport request sent to Bob")
	var toBob []string
	for _, e := range ofKind(effects, model.EffectMessage) {
		if e.Target == bobID {
			toBob = append(toBob, e.Message)
		}
	}
	s.Require().Len(toBob, 2)
	s.Contains(toBob[0], "Alice wants to teleport to you")

	req, ok := s.teleports.Pending(bobID)
	s.Require().True(ok)
	s.Equal(aliceID, req.Requester)
}

func (s *RouterSuite) TestTpaRequestUnknownPlayer() {
	s.assertReply(s.dispatch(s.alice, "tpa Nobody"), "Player Nobody is not online")
	s.Equal(0, s.teleports.Len())
}

func (s *RouterSuite) TestTpaRequestOfflinePlayer() {
	s.host.SetOnline(bobID, false)
	s.assertReply(s.dispatch(s.alice, "tpa Bob"), "Player Bob is not online")
}

func (s *RouterSuite) TestTpaRequestSelf() {
	s.assertReply(s.dispatch(s.alice, "tpa Alice"), msgTpaSelf)
	s.Equal(0, s.teleports.Len())
}

func (s *RouterSuite) TestTpaAcceptTeleportsRequester() {
	s.dispatch(s.alice, "tpa Bob")
	s.clock.Advance(30 * time.Second)

	effects := s.dispatch(s.bob, "tpa accept")
	teleports := ofKind(effects, model.EffectTeleport)
	s.Require().Len(teleports, 1)
	s.Equal(aliceID, teleports[0].Target)
	s.Equal(s.bob.Location, *teleports[0].Location)
	s.assertReply(effects, "Accepted Alice's teleport request")
	s.Equal(0, s.teleports.Len())
}

func (s *RouterSuite) TestTpaAcceptExpired() {
	s.dispatch(s.alice, "tpa Bob")
	s.clock.Advance(121 * time.Second)

	effects := s.dispatch(s.bob, "tpa accept")
	s.Empty(ofKind(effects, model.EffectTeleport))
	s.assertReply(effects, msgTpaExpired)

	s.assertReply(s.dispatch(s.bob, "tpa accept"), msgTpaNoPending)
}

func (s *RouterSuite) TestTpaAcceptOfflineRequester() {
	s.dispatch(s.alice, "tpa Bob")
	s.host.SetOnline(aliceID, false)

	effects := s.dispatch(s.bob, "tpa accept")
	s.Empty(ofKind(effects, model.EffectTeleport))
	s.assertReply(effects, msgTpaOffline)
	s.Equal(0, s.teleports.Len())
}

func (s *RouterSuite) TestTpaAcceptWithoutRequest() {
	s.assertReply(s.dispatch(s.bob, "tpa accept"), msgTpaNoPending)
}

func (s *RouterSuite) TestTpaDenyNotifiesRequester() {
	s.dispatch(s.alice, "tpa Bob")

	effects := s.dispatch(s.bob, "tpa deny")
	s.assertReply(effects, msgTpaDenied)
	var toAlice int
	for _, e := range ofKind(effects, model.EffectMessage) {
		if e.Target == aliceID {
			toAlice++
		}
	}
	s.Equal(1, toAlice)
	s.Equal(0, s.teleports.Len())
}

func (s *RouterSuite) TestTpaDenyAfterTimeoutStillDenies() {
	s.dispatch(s.alice, "tpa Bob")
	s.clock.Advance(10 * time.Minute)

	s.assertReply(s.dispatch(s.bob, "tpa deny"), msgTpaDenied)
}

func (s *RouterSuite) TestTpaDenyWithoutRequest() {
	s.assertReply(s.dispatch(s.bob, "tpa deny"), msgTpaNoPending)
}

func (s *RouterSuite) TestTpaNeedsOnlyUsePermission() {
	s.alice.Permissions = []string{PermUse}
	s.bob.Permissions = []string{PermUse}

	s.assertReply(s.dispatch(s.alice, "tpa Bob"), "Teleport request sent to Bob")
	s.Equal(1, s.teleports.Len())

	effects := s.dispatch(s.bob, "tpa accept")
	s.Require().NotEmpty(effects)
	s.Equal(model.EffectTeleport, effects[0].Kind)
	s.Equal(0, s.teleports.Len())

	s.dispatch(s.alice, "tpa Bob")
	s.assertReply(s.dispatch(s.bob, "tpa deny"), msgTpaDenied)
}

func (s *RouterSuite) TestTpaNeedsUsePermission() {
	s.alice.Permissions = []string{PermTpa}
	s.assertReply(s.dispatch(s.alice, "tpa Bob"), msgNoPermissionUse)
	s.Equal(0, s.teleports.Len())
}

// ban tests

func (s *RouterSuite) TestBanKicksAndBroadcasts() {
	effects := s.dispatch(s.console, "ban bob 7 using x-ray mods")

	kicks := ofKind(effects, model.EffectKick)
	s.Require().Len(kicks, 1)
	s.Equal(bobID, kicks[0].Target)
	s.Contains(kicks[0].Message, "using x-ray mods")
	s.Contains(kicks[0].Message, "in about 7 days")

	broadcasts := ofKind(effects, model.EffectBroadcast)
	s.Require().Len(broadcasts, 1)
	s.Contains(broadcasts[0].Message, "Player Bob has been banned")
	s.Contains(broadcasts[0].Message, "Banned by: Console")

	ban, ok := s.bans.Get(bobID)
	s.Require().True(ok)
	s.Equal("using x-ray mods", ban.Reason)
	s.Equal("Console", ban.Operator)
	s.Equal(s.clock.Now().UnixMilli()+7*86_400_000, ban.Until.UnixMilli())
}

func (s *RouterSuite) TestBanByPlayerRecordsOperator() {
	s.alice.Permissions = append(s.alice.Permissions, PermBan)

	s.dispatch(s.alice, "ban Bob 0 griefing")

	ban, ok := s.bans.Get(bobID)
	s.Require().True(ok)
	s.Equal("Alice", ban.Operator)
	s.True(ban.IsPermanent())
}

func (s *RouterSuite) TestBanUsage() {
	s.Len(replies(s.dispatch(s.console, "ban Bob")), 3)
}

func (s *RouterSuite) TestBanNonNumericDays() {
	s.assertReply(s.dispatch(s.console, "ban Bob seven griefing"), msgBanDaysNotNumber)
	_, ok := s.bans.Get(bobID)
	s.False(ok)
}

func (s *RouterSuite) TestBanMissingReason() {
	s.assertReply(s.dispatch(s.console, "ban Bob 7"), msgBanReasonRequired)
	_, ok := s.bans.Get(bobID)
	s.False(ok)
}

func (s *RouterSuite) TestBanOfflinePlayer() {
	s.host.SetOnline(bobID, false)
	s.assertReply(s.dispatch(s.console, "ban Bob 7 griefing"), msgBanTargetOffline)
}

func (s *RouterSuite) TestBanNeedsPermission() {
	s.assertReply(s.dispatch(s.alice, "ban Bob 7 griefing"), msgNoPermission)
}

// unban tests

func (s *RouterSuite) TestUnbanByName() {
	s.dispatch(s.console, "ban Bob 0 griefing")

	s.assertReply(s.dispatch(s.console, "unban bob"), "Lifted the ban on Bob")
	_, ok := s.bans.Get(bobID)
	s.False(ok)
}

func (s *RouterSuite) TestUnbanByID() {
	s.dispatch(s.console, "ban Bob 0 griefing")

	s.assertReply(s.dispatch(s.console, "unban "+string(bobID)), "Lifted the ban on Bob")
}

func (s *RouterSuite) TestUnbanUnknown() {
	s.assertReply(s.dispatch(s.console, "unban Bob"), msgUnbanNotFound)
}

func (s *RouterSuite) TestUnbanUsage() {
	s.assertReply(s.dispatch(s.console, "unban"), msgUnbanUsage)
}

// bans tests

func (s *RouterSuite) TestBansEmpty() {
	s.assertReply(s.dispatch(s.console, "bans"), msgNoBans)
}

func (s *RouterSuite) TestBansListsEntries() {
	s.dispatch(s.console, "ban Bob 7 griefing")
	s.clock.Advance(time.Hour)

	effects := s.dispatch(s.console, "bans")
	all := replies(effects)
	s.Require().Len(all, 3)
	s.Equal(msgBansHeader, all[0])
	s.Contains(all[1], "Bob (b0b00000)")
	s.Contains(all[1], "Reason: griefing")
	s.Contains(all[1], "Unbanned in 6d 23h")
}

func (s *RouterSuite) TestBansDropsExpired() {
	s.dispatch(s.console, "ban Bob 1 griefing")
	s.clock.Advance(48 * time.Hour)

	s.assertReply(s.dispatch(s.console, "bans"), msgNoBans)
}

// spawn tests

func (s *RouterSuite) TestSpawnUsesStoredWorldSpawn() {
	stored := model.Location{World: "world", X: 5, Y: 65, Z: 5}
	_ = s.spawns.SetWorldSpawn(s.ctx, "world", stored)

	effects := s.dispatch(s.alice, "spawn")
	teleports := ofKind(effects, model.EffectTeleport)
	s.Require().Len(teleports, 1)
	s.Equal(stored, *teleports[0].Location)
	s.assertReply(effects, msgSpawnStored)
}

func (s *RouterSuite) TestSpawnFallsBackToHostDefault() {
	effects := s.dispatch(s.alice, "spawn")
	teleports := ofKind(effects, model.EffectTeleport)
	s.Require().Len(teleports, 1)
	s.Equal(model.Location{World: "world", Y: 64}, *teleports[0].Location)
	s.assertReply(effects, msgSpawnDefault)
}

func (s *RouterSuite) TestSpawnWithStoredSpawnInUnloadedWorld() {
	_ = s.spawns.SetWorldSpawn(s.ctx, "world", model.Location{World: "old_world", Y: 10})

	effects := s.dispatch(s.alice, "spawn")
	s.assertReply(effects, msgSpawnDefault)
}

// setfirstspawn / setworldspawn tests

func (s *RouterSuite) TestSetFirstSpawn() {
	s.alice.Permissions = append(s.alice.Permissions, PermSetFirstSpawn)

	s.assertReply(s.dispatch(s.alice, "setfirstspawn"), msgFirstSpawnSet)
	loc, ok := s.spawns.FirstJoinSpawn()
	s.Require().True(ok)
	s.Equal(s.alice.Location, loc)
}

func (s *RouterSuite) TestSetWorldSpawnUpdatesHost() {
	s.alice.Permissions = append(s.alice.Permissions, PermSetWorldSpawn)

	effects := s.dispatch(s.alice, "setworldspawn")
	s.assertReply(effects, msgWorldSpawnSet)
	updates := ofKind(effects, model.EffectSetWorldSpawn)
	s.Require().Len(updates, 1)
	s.Equal(s.alice.Location, *updates[0].Location)

	loc, ok := s.spawns.WorldSpawn("world")
	s.Require().True(ok)
	s.Equal(s.alice.Location, loc)
}

func (s *RouterSuite) TestSetWorldSpawnNeedsPermission() {
	s.assertReply(s.dispatch(s.alice, "setworldspawn"), msgNoPermission)
	s.Empty(s.spawns.WorldSpawns())
}

func (s *RouterSuite) TestParseDays() {
	days, err := ParseDays("7")
	s.Require().NoError(err)
	s.Equal(7, days)

	days, err = ParseDays("-1")
	s.Require().NoError(err)
	s.Equal(-1, days)

	_, err = ParseDays("7d")
	s.ErrorIs(err, model.ErrInvalidDays)

	days, err = ParseDays("2147483647")
	s.Require().NoError(err)
	s.Equal(2147483647, days)

	_, err = ParseDays("2147483648")
	s.ErrorIs(err, model.ErrInvalidDays)
}
