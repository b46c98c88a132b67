package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mixplugin-go/internal/api/handler"
	"github.com/mcoot/mixplugin-go/internal/api/middleware"
	"github.com/mcoot/mixplugin-go/internal/api/response"
	"github.com/mcoot/mixplugin-go/internal/host"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
	"github.com/mcoot/mixplugin-go/internal/services/bans"
	"github.com/mcoot/mixplugin-go/internal/services/commands"
	"github.com/mcoot/mixplugin-go/internal/services/listener"
	"github.com/mcoot/mixplugin-go/internal/services/spawn"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Listener    *listener.Listener
	Commands    *commands.Router
	Bans        *bans.Registry
	Spawns      *spawn.Registry
	Host        host.Host
	Effects     host.Effects
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	eventHandler := handler.NewEventHandler(cfg.Listener)
	commandHandler := handler.NewCommandHandler(cfg.Commands)
	banHandler := handler.NewBanHandler(cfg.Bans, cfg.Host, cfg.Effects, cfg.Logger)
	spawnHandler := handler.NewSpawnHandler(cfg.Spawns, cfg.Effects, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.AuthService))

	// Host bridge
	protected.HandleFunc("/events/death", eventHandler.Death).Methods(http.MethodPost)
	protected.HandleFunc("/events/login", eventHandler.Login).Methods(http.MethodPost)
	protected.HandleFunc("/events/join", eventHandler.Join).Methods(http.MethodPost)
	protected.HandleFunc("/commands", commandHandler.Dispatch).Methods(http.MethodPost)
	protected.HandleFunc("/commands/complete", commandHandler.Complete).Methods(http.MethodPost)

	// Administration
	protected.HandleFunc("/bans", banHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/bans", banHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bans/{player}", banHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/spawns", spawnHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/spawns/first", spawnHandler.SetFirst).Methods(http.MethodPut)
	protected.HandleFunc("/spawns/worlds/{world}", spawnHandler.SetWorld).Methods(http.MethodPut)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
