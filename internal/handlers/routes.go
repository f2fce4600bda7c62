package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
)

type RouterConfig struct {
	Storage storage.Storage
	Feed    activity.Feed
	Logger  *slog.Logger
	Version string
}

// NewRouter registers every admin route. Literal paths are registered
// before their {id} siblings so they are matched first.
func NewRouter(cfg RouterConfig) *mux.Router {
	log := cfg.Logger
	r := mux.NewRouter()
	r.NotFoundHandler = jsonStatus(http.StatusNotFound, "Resource not found")
	r.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "Method not allowed")

	var feedPinger Pinger
	if cfg.Feed != nil {
		feedPinger = cfg.Feed
	}
	r.Handle("/health", NewHealthHandler(cfg.Storage, feedPinger, log)).Methods(http.MethodGet)

	api := prefixed{router: r, prefix: "/api"}

	npcs := NewNPCHandler(log, cfg.Storage, cfg.Feed)
	api.HandleFunc("/npcs", npcs.List).Methods(http.MethodGet)
	api.HandleFunc("/npcs", npcs.Create).Methods(http.MethodPost)
	api.HandleFunc("/npcs/types/enum", npcs.Enums).Methods(http.MethodGet)
	api.HandleFunc("/npcs/{id}", npcs.Get).Methods(http.MethodGet)
	api.HandleFunc("/npcs/{id}", npcs.Update).Methods(http.MethodPut)
	api.HandleFunc("/npcs/{id}", npcs.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/npcs/{id}/validate", npcs.Validate).Methods(http.MethodPost)

	cards := NewCardHandler(log, cfg.Storage, cfg.Feed)
	api.HandleFunc("/cards", cards.List).Methods(http.MethodGet)
	api.HandleFunc("/cards", cards.Create).Methods(http.MethodPost)
	api.HandleFunc("/cards/types/enum", cards.Enums).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id}", cards.Get).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id}", cards.Update).Methods(http.MethodPut)
	api.HandleFunc("/cards/{id}", cards.Delete).Methods(http.MethodDelete)

	scenes := NewSceneHandler(log, cfg.Storage, cfg.Feed)
	api.HandleFunc("/scenes", scenes.List).Methods(http.MethodGet)
	api.HandleFunc("/scenes", scenes.Create).Methods(http.MethodPost)
	api.HandleFunc("/scenes/list-all", scenes.ListAll).Methods(http.MethodGet)
	api.HandleFunc("/scenes/available-cards", scenes.AvailableCards).Methods(http.MethodGet)
	api.HandleFunc("/scenes/available-player-npcs", scenes.AvailablePlayerNPCs).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}", scenes.Get).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}", scenes.Update).Methods(http.MethodPut)
	api.HandleFunc("/scenes/{id}", scenes.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/scenes/{id}/config", scenes.GetConfig).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/config", scenes.UpdateConfig).Methods(http.MethodPut)
	api.HandleFunc("/scenes/{id}/test", scenes.Test).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/requirements", scenes.GetRequirements).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/requirements", scenes.SaveRequirements).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/card-bindings", scenes.ListCardBindings).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/card-bindings", scenes.CreateCardBinding).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/card-bindings/{binding_id}", scenes.DeleteCardBinding).Methods(http.MethodDelete)
	api.HandleFunc("/scenes/{id}/extended-rewards", scenes.GetExtendedRewards).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/extended-rewards", scenes.SaveExtendedRewards).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/rewards", scenes.GetRewards).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/rewards", scenes.SaveRewards).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/npcs", scenes.ListNPCs).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/npcs", scenes.AddNPC).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/npcs/{npc_id}", scenes.RemoveNPC).Methods(http.MethodDelete)
	api.HandleFunc("/scenes/{id}/display-config", scenes.GetDisplayConfig).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/display-config", scenes.SaveDisplayConfig).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/ai-configs", scenes.ListAIConfigs).Methods(http.MethodGet)
	api.HandleFunc("/scenes/{id}/ai-configs", scenes.AddAIConfig).Methods(http.MethodPost)
	api.HandleFunc("/scenes/{id}/ai-configs/{config_id}", scenes.RemoveAIConfig).Methods(http.MethodDelete)

	ai := NewAIConfigHandler(log, cfg.Storage, cfg.Feed)
	api.HandleFunc("/ai-configs", ai.List).Methods(http.MethodGet)
	api.HandleFunc("/ai-configs", ai.Create).Methods(http.MethodPost)
	api.HandleFunc("/ai-configs/types/enum", ai.Enums).Methods(http.MethodGet)
	api.HandleFunc("/ai-configs/{id}", ai.Get).Methods(http.MethodGet)
	api.HandleFunc("/ai-configs/{id}", ai.Update).Methods(http.MethodPut)
	api.HandleFunc("/ai-configs/{id}", ai.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/ai-configs/{id}/performance", ai.Performance).Methods(http.MethodGet)
	api.HandleFunc("/ai-configs/{id}/test", ai.Test).Methods(http.MethodPost)
	api.HandleFunc("/ai-configs/{id}/optimize", ai.Optimize).Methods(http.MethodPost)

	templates := NewTemplateHandler(log, cfg.Storage, cfg.Feed)
	api.HandleFunc("/templates", templates.List).Methods(http.MethodGet)
	api.HandleFunc("/templates", templates.Create).Methods(http.MethodPost)
	api.HandleFunc("/templates/from-scene", templates.FromScene).Methods(http.MethodPost)
	api.HandleFunc("/templates/from-ai-config/{id}", templates.FromAIConfig).Methods(http.MethodPost)
	api.HandleFunc("/templates/categories/enum", templates.Categories).Methods(http.MethodGet)
	api.HandleFunc("/templates/types/enum", templates.Types).Methods(http.MethodGet)
	api.HandleFunc("/templates/{id}", templates.Get).Methods(http.MethodGet)
	api.HandleFunc("/templates/{id}", templates.Update).Methods(http.MethodPut)
	api.HandleFunc("/templates/{id}", templates.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/templates/{id}/apply-to-scene/{scene_id}", templates.ApplyToScene).Methods(http.MethodPost)

	system := NewSystemHandler(log, cfg.Storage, cfg.Feed, cfg.Version)
	api.HandleFunc("/dashboard/stats", system.Stats).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/activities", system.Activities).Methods(http.MethodGet)
	api.HandleFunc("/system/info", system.Info).Methods(http.MethodGet)
	api.HandleFunc("/validate/config", system.ValidateConfig).Methods(http.MethodPost)
	api.HandleFunc("/batch/import", system.Import).Methods(http.MethodPost)
	api.HandleFunc("/batch/export", system.Export).Methods(http.MethodPost)

	return r
}

// prefixed registers routes on the root router under a path prefix. A mux
// subrouter reports method mismatches as 404, so /api routes are not
// mounted on one.
type prefixed struct {
	router *mux.Router
	prefix string
}

func (p prefixed) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
	return p.router.HandleFunc(p.prefix+path, f)
}

func jsonStatus(status int, msg string) http.Handler {
	b := &base{log: slog.Default()}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.writeJSON(w, status, ErrorResponse{Error: msg, StatusCode: status})
	})
}
