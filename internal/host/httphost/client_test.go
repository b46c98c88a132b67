package httphost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mixplugin-go/internal/model"
)

const steveID = "5b7d3f2a-0c1e-4a6b-9f8e-1d2c3b4a5f60"

// fakeBridge is a minimal game server bridge
type fakeBridge struct {
	players map[string]playerInfo
	worlds  map[string]location
	applied []effect
	auth    string
}

func (b *fakeBridge) router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/players/online", func(w http.ResponseWriter, r *http.Request) {
		var online []playerInfo
		for _, p := range b.players {
			if p.Online {
				online = append(online, p)
			}
		}
		writeJSON(w, online)
	}).Methods(http.MethodGet)
	r.HandleFunc("/players/online/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		for _, p := range b.players {
			if p.Online && strings.EqualFold(p.Name, name) {
				writeJSON(w, p)
				return
			}
		}
		http.NotFound(w, r)
	}).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := b.players[mux.Vars(r)["id"]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, p)
	}).Methods(http.MethodGet)
	r.HandleFunc("/worlds/{name}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.worlds[mux.Vars(r)["name"]]; !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]string{"name": mux.Vars(r)["name"]})
	}).Methods(http.MethodGet)
	r.HandleFunc("/worlds/{name}/spawn", func(w http.ResponseWriter, r *http.Request) {
		loc, ok := b.worlds[mux.Vars(r)["name"]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, loc)
	}).Methods(http.MethodGet)
	r.HandleFunc("/effects", func(w http.ResponseWriter, r *http.Request) {
		b.auth = r.Header.Get("Authorization")
		var req effectsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.applied = append(b.applied, req.Effects...)
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)
	r.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type ClientSuite struct {
	suite.Suite
	bridge *fakeBridge
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.bridge = &fakeBridge{
		players: map[string]playerInfo{
			steveID: {ID: steveID, Name: "Steve", Online: true},
			"00000000-0000-0000-0000-000000000002": {ID: "00000000-0000-0000-0000-000000000002", Name: "Alex", Online: false},
		},
		worlds: map[string]location{
			"world": {World: "world", Y: 64},
		},
	}
	s.server = httptest.NewServer(s.bridge.router())
	s.client = New(Config{BaseURL: s.server.URL + "/", Token: "secret", Timeout: time.Second})
	s.ctx = context.Background()
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestIsOnline() {
	online, err := s.client.IsOnline(s.ctx, steveID)
	s.Require().NoError(err)
	s.True(online)

	online, err = s.client.IsOnline(s.ctx, "00000000-0000-0000-0000-000000000002")
	s.Require().NoError(err)
	s.False(online)
}

func (s *ClientSuite) TestIsOnlineUnknownPlayer() {
	online, err := s.client.IsOnline(s.ctx, "00000000-0000-0000-0000-000000000009")
	s.Require().NoError(err)
	s.False(online)
}

func (s *ClientSuite) TestPlayerName() {
	name, err := s.client.PlayerName(s.ctx, "00000000-0000-0000-0000-000000000002")
	s.Require().NoError(err)
	s.Equal("Alex", name)

	name, err = s.client.PlayerName(s.ctx, "00000000-0000-0000-0000-000000000009")
	s.Require().NoError(err)
	s.Empty(name)
}

func (s *ClientSuite) TestFindOnlinePlayer() {
	p, err := s.client.FindOnlinePlayer(s.ctx, "steve")
	s.Require().NoError(err)
	s.Equal(model.Player{ID: steveID, Name: "Steve"}, p)
}

func (s *ClientSuite) TestFindOnlinePlayerNotFound() {
	_, err := s.client.FindOnlinePlayer(s.ctx, "Alex")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ClientSuite) TestOnlinePlayers() {
	players, err := s.client.OnlinePlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Steve", players[0].Name)
}

func (s *ClientSuite) TestWorldExists() {
	exists, err := s.client.WorldExists(s.ctx, "world")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.client.WorldExists(s.ctx, "world_the_end")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ClientSuite) TestWorldSpawn() {
	loc, err := s.client.WorldSpawn(s.ctx, "world")
	s.Require().NoError(err)
	s.Equal(model.Location{World: "world", Y: 64}, loc)

	_, err = s.client.WorldSpawn(s.ctx, "missing")
	s.ErrorIs(err, model.ErrWorldNotFound)
}

func (s *ClientSuite) TestApply() {
	effects := []model.Effect{
		model.Kick(steveID, "banned"),
		model.Broadcast("Steve has been banned"),
		model.SetWorldSpawn(model.Location{World: "world", Y: 70}),
	}
	s.Require().NoError(s.client.Apply(s.ctx, effects))

	s.Require().Len(s.bridge.applied, 3)
	s.Equal("kick", s.bridge.applied[0].Kind)
	s.Equal(steveID, s.bridge.applied[0].Target)
	s.Equal("broadcast", s.bridge.applied[1].Kind)
	s.Empty(s.bridge.applied[1].Target)
	s.Require().NotNil(s.bridge.applied[2].Location)
	s.Equal(70.0, s.bridge.applied[2].Location.Y)
	s.Equal("Bearer secret", s.bridge.auth)
}

func (s *ClientSuite) TestApplyNothing() {
	s.Require().NoError(s.client.Apply(s.ctx, nil))
	s.Empty(s.bridge.applied)
}

func (s *ClientSuite) TestServerError() {
	err := s.client.do(s.ctx, http.MethodGet, "/broken", nil, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "HTTP 500")
}

func (s *ClientSuite) TestBridgeDown() {
	s.server.Close()

	_, err := s.client.IsOnline(s.ctx, steveID)
	s.Error(err)
}
