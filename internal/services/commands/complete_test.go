package commands

import (
	"strings"

	"github.com/mcoot/mixplugin-go/internal/model"
)

func (s *RouterSuite) complete(sender model.Sender, line string) []string {
	args := strings.Split(line, " ")
	return s.router.Complete(s.ctx, sender, args)
}

func (s *RouterSuite) TestCompleteVerbsFilteredByPermission() {
	s.Equal([]string{"back", "spawn", "tpa"}, s.complete(s.alice, ""))
}

func (s *RouterSuite) TestCompleteVerbsForOp() {
	s.Equal([]string{"back", "ban", "bans", "setfirstspawn", "setworldspawn", "spawn", "tpa", "unban"},
		s.complete(s.console, ""))
}

func (s *RouterSuite) TestCompleteVerbPrefix() {
	s.Equal([]string{"setfirstspawn", "setworldspawn", "spawn"}, s.complete(s.console, "s"))
}

func (s *RouterSuite) TestCompleteTpa() {
	s.Equal([]string{"Alice", "Bob", "accept", "deny"}, s.complete(s.alice, "tpa "))
	s.Equal([]string{"Alice", "accept"}, s.complete(s.alice, "tpa a"))
}

func (s *RouterSuite) TestCompleteTpaAnswersFollowTheirNodes() {
	s.alice.Permissions = []string{PermUse, PermTpa, PermTpaDeny}
	s.Equal([]string{"Alice", "Bob", "deny"}, s.complete(s.alice, "tpa "))

	s.alice.Permissions = []string{PermUse}
	s.Empty(s.complete(s.alice, "tpa "))
}

func (s *RouterSuite) TestCompleteBanTarget() {
	s.Equal([]string{"Bob"}, s.complete(s.console, "ban b"))
	s.Empty(s.complete(s.alice, "ban b"))
}

func (s *RouterSuite) TestCompleteBanDaysAndReason() {
	s.Equal([]string{"0", "30", "7"}, s.complete(s.console, "ban Bob "))
	s.Equal([]string{"<reason>"}, s.complete(s.console, "ban Bob 7 "))
}

func (s *RouterSuite) TestCompleteUnban() {
	s.dispatch(s.console, "ban Bob 0 griefing")

	s.Equal([]string{"Bob"}, s.complete(s.console, "unban "))
	s.Empty(s.complete(s.console, "unban x"))
}
