package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/storage"
	"github.com/jwebster45206/sultan-admin/pkg/game"
)

type SceneHandler struct {
	base
}

func NewSceneHandler(log *slog.Logger, storage storage.Storage, feed activity.Feed) *SceneHandler {
	return &SceneHandler{base{log: log, storage: storage, feed: feed}}
}

type sceneSummary struct {
	SceneID  string             `json:"scene_id"`
	Name     string             `json:"name"`
	Category game.SceneCategory `json:"category"`
}

type cardSummary struct {
	ID       string            `json:"id"`
	CardID   string            `json:"card_id"`
	Name     string            `json:"name"`
	Rarity   game.Rarity       `json:"rarity"`
	Category game.CardCategory `json:"category"`
}

type playerNPC struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Tier    game.Tier    `json:"tier"`
	Faction game.Faction `json:"faction"`
	Level   int          `json:"level"`
	Status  string       `json:"status"`
}

type bindingCreated struct {
	Message   string `json:"message"`
	BindingID string `json:"binding_id"`
}

type sceneTestResponse struct {
	Message string                `json:"message"`
	Results *game.SceneTestResult `json:"results"`
}

func (h *SceneHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		h.fail(w, err, sceneResource, "list scenes")
		return
	}
	f := storage.SceneFilter{ListOptions: opts}
	if f.Category, err = enumQuery(r, "category", game.SceneCategories); err == nil {
		f.Status, err = enumQuery(r, "status", game.SceneStatuses)
	}
	if err != nil {
		h.fail(w, err, sceneResource, "list scenes")
		return
	}

	scenes, err := h.storage.ListScenes(r.Context(), f)
	if err != nil {
		h.fail(w, err, sceneResource, "list scenes")
		return
	}
	h.writeJSON(w, http.StatusOK, scenes)
}

func (h *SceneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req game.SceneCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, sceneResource, "create scene")
		return
	}

	sc := req.Scene()
	if err := h.storage.CreateScene(r.Context(), sc); err != nil {
		h.fail(w, err, sceneResource, "create scene", "scene_id", sc.SceneID)
		return
	}
	h.log.Info("Scene created", "id", sc.ID, "scene_id", sc.SceneID)
	h.record(r.Context(), activity.ActionCreate, "scene", sc.ID, fmt.Sprintf("Created scene %s", sc.Name))
	h.writeJSON(w, http.StatusCreated, sc)
}

func (h *SceneHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, sc)
}

func (h *SceneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	var req game.SceneUpdate
	if !h.decode(w, r, &req) {
		return
	}

	sc, err := h.storage.GetScene(r.Context(), id)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene", "id", id)
		return
	}
	if err := req.Apply(sc); err != nil {
		h.fail(w, err, sceneResource, "update scene", "id", id)
		return
	}
	if err := h.storage.UpdateScene(r.Context(), sc); err != nil {
		h.fail(w, err, sceneResource, "update scene", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, sc)
}

func (h *SceneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")
	if err := h.storage.DeleteScene(r.Context(), id); err != nil {
		h.fail(w, err, sceneResource, "delete scene", "id", id)
		return
	}
	h.record(r.Context(), activity.ActionDelete, "scene", id, "Deleted scene")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Scene deleted successfully"})
}

func (h *SceneHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.storage.ListScenes(r.Context(), storage.SceneFilter{})
	if err != nil {
		h.fail(w, err, sceneResource, "list scenes")
		return
	}
	out := make([]sceneSummary, 0, len(scenes))
	for _, sc := range scenes {
		out = append(out, sceneSummary{SceneID: sc.SceneID, Name: sc.Name, Category: sc.Category})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *SceneHandler) AvailableCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.storage.ListCards(r.Context(), storage.CardFilter{})
	if err != nil {
		h.fail(w, err, cardResource, "list cards")
		return
	}
	out := make([]cardSummary, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardSummary{ID: c.ID, CardID: c.CardID, Name: c.Name, Rarity: c.Rarity, Category: c.Category})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *SceneHandler) AvailablePlayerNPCs(w http.ResponseWriter, r *http.Request) {
	npcs, err := h.storage.ListNPCs(r.Context(), storage.NPCFilter{NPCType: game.NPCTypePlayer})
	if err != nil {
		h.fail(w, err, npcResource, "list NPCs")
		return
	}
	out := make([]playerNPC, 0, len(npcs))
	for _, n := range npcs {
		out = append(out, playerNPC{ID: n.ID, Name: n.Name, Tier: n.Tier, Faction: n.Faction, Level: 1, Status: "available"})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// scene loads the scene named by the {id} path variable, writing the
// error response itself when it cannot.
func (h *SceneHandler) scene(w http.ResponseWriter, r *http.Request) (*game.Scene, bool) {
	id := pathVar(r, "id")
	sc, err := h.storage.GetScene(r.Context(), id)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene", "id", id)
		return nil, false
	}
	return sc, true
}

// aiSettings returns the stored settings, or nil when none were saved.
func (h *SceneHandler) aiSettings(r *http.Request, sceneID string) (*game.SceneAISettings, error) {
	ai, err := h.storage.GetSceneAISettings(r.Context(), sceneID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return ai, err
}

func (h *SceneHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	ai, err := h.aiSettings(r, sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene config", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, game.BuildSceneConfig(sc, ai))
}

// UpdateConfig merges the body into the stored AI settings.
func (h *SceneHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	ai, err := h.aiSettings(r, sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene config", "id", sc.ID)
		return
	}
	if ai == nil {
		ai = game.DefaultSceneAISettings(sc.ID)
	}
	if !h.decode(w, r, ai) {
		return
	}
	ai.SceneID = sc.ID
	if err := ai.Validate(); err != nil {
		h.fail(w, err, sceneResource, "update scene config")
		return
	}
	if err := h.storage.SaveSceneAISettings(r.Context(), ai); err != nil {
		h.fail(w, err, sceneResource, "update scene config", "id", sc.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated AI config of scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, game.BuildSceneConfig(sc, ai))
}

func (h *SceneHandler) Test(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	ai, err := h.aiSettings(r, sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "test scene", "id", sc.ID)
		return
	}
	reqs, err := h.storage.ListSceneRequirements(r.Context(), sc.ID, "")
	if err != nil {
		h.fail(w, err, sceneResource, "test scene", "id", sc.ID)
		return
	}
	npcs, err := h.storage.ListSceneNPCs(r.Context(), sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "test scene", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, sceneTestResponse{
		Message: "Scene test completed",
		Results: game.TestScene(sc, ai, reqs, npcs),
	})
}

func (h *SceneHandler) attributeRequirements(r *http.Request, sceneID string) (game.AttributeRequirements, error) {
	rows, err := h.storage.ListSceneRequirements(r.Context(), sceneID, game.RequirementAttribute)
	if err != nil {
		return nil, err
	}
	reqs := game.DefaultAttributeRequirements()
	reqs.Overlay(rows)
	return reqs, nil
}

func (h *SceneHandler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	reqs, err := h.attributeRequirements(r, sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene requirements", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, reqs)
}

// SaveRequirements replaces every attribute requirement of the scene.
// Attributes missing from the body end up at zero.
func (h *SceneHandler) SaveRequirements(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var req game.AttributeRequirements
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, sceneResource, "save scene requirements")
		return
	}
	if err := h.storage.ReplaceAttributeRequirements(r.Context(), sc.ID, req.Rows(sc.ID)); err != nil {
		h.fail(w, err, sceneResource, "save scene requirements", "id", sc.ID)
		return
	}
	reqs, err := h.attributeRequirements(r, sc.ID)
	if err != nil {
		h.fail(w, err, sceneResource, "get scene requirements", "id", sc.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated requirements of scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, reqs)
}

func (h *SceneHandler) ListCardBindings(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	bindings, err := h.storage.ListCardBindings(r.Context(), sc.ID)
	if err != nil {
		h.fail(w, err, bindingResource, "list scene card bindings", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, bindings)
}

func (h *SceneHandler) CreateCardBinding(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var req game.SceneCardBindingCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, bindingResource, "create scene card binding")
		return
	}
	card, err := h.storage.GetCard(r.Context(), req.CardID)
	if err == nil && !card.IsActive {
		err = storage.ErrNotFound
	}
	if err != nil {
		h.fail(w, err, cardResource, "get card", "card_id", req.CardID)
		return
	}

	b := req.Binding(sc.ID)
	if err := h.storage.CreateCardBinding(r.Context(), b); err != nil {
		h.fail(w, err, bindingResource, "create scene card binding", "id", sc.ID, "card_id", req.CardID)
		return
	}
	h.record(r.Context(), activity.ActionBind, "scene", sc.ID, fmt.Sprintf("Bound card %s to scene %s", card.Name, sc.Name))
	h.writeJSON(w, http.StatusCreated, bindingCreated{Message: "Card binding created successfully", BindingID: b.ID})
}

func (h *SceneHandler) DeleteCardBinding(w http.ResponseWriter, r *http.Request) {
	sceneID, bindingID := pathVar(r, "id"), pathVar(r, "binding_id")
	if err := h.storage.DeleteCardBinding(r.Context(), sceneID, bindingID); err != nil {
		h.fail(w, err, bindingResource, "delete scene card binding", "id", sceneID, "binding_id", bindingID)
		return
	}
	h.record(r.Context(), activity.ActionUnbind, "scene", sceneID, "Removed card binding")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Card binding deleted successfully"})
}

func (h *SceneHandler) GetExtendedRewards(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	rw, err := h.storage.GetSceneRewardExtended(r.Context(), sc.ID)
	if errors.Is(err, storage.ErrNotFound) {
		rw, err = game.DefaultSceneRewardExtended(sc.ID), nil
	}
	if err != nil {
		h.fail(w, err, sceneRewardResource, "get scene rewards", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, rw)
}

// SaveExtendedRewards overwrites the whole extended reward row. Keys
// missing from the body fall back to the zero shape, not the stored values.
func (h *SceneHandler) SaveExtendedRewards(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	rw := game.DefaultSceneRewardExtended(sc.ID)
	if !h.decode(w, r, rw) {
		return
	}
	rw.SceneID = sc.ID
	if err := rw.Validate(); err != nil {
		h.fail(w, err, sceneRewardResource, "save scene rewards")
		return
	}
	if err := h.storage.SaveSceneRewardExtended(r.Context(), rw); err != nil {
		h.fail(w, err, sceneRewardResource, "save scene rewards", "id", sc.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated extended rewards of scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, rw)
}

func (h *SceneHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	rw, err := h.storage.GetSceneReward(r.Context(), sc.ID)
	if errors.Is(err, storage.ErrNotFound) {
		rw, err = game.DefaultSceneReward(sc.ID), nil
	}
	if err != nil {
		h.fail(w, err, sceneRewardResource, "get scene rewards", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, rw)
}

func (h *SceneHandler) SaveRewards(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var req game.SceneRewardUpdate
	if !h.decode(w, r, &req) {
		return
	}
	rw := req.Reward(sc.ID)
	if err := h.storage.SaveSceneReward(r.Context(), rw); err != nil {
		h.fail(w, err, sceneRewardResource, "save scene rewards", "id", sc.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated rewards of scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, rw)
}

func (h *SceneHandler) ListNPCs(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	npcs, err := h.storage.ListSceneNPCs(r.Context(), sc.ID)
	if err != nil {
		h.fail(w, err, sceneNPCResource, "list scene NPCs", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, npcs)
}

func (h *SceneHandler) AddNPC(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var req game.SceneNPCCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, sceneNPCResource, "add scene NPC")
		return
	}
	npc, err := h.storage.GetNPC(r.Context(), req.NPCID)
	if err != nil {
		h.fail(w, err, npcResource, "get NPC", "npc_id", req.NPCID)
		return
	}

	link := req.SceneNPC(sc.ID)
	if err := h.storage.AddSceneNPC(r.Context(), link); err != nil {
		h.fail(w, err, sceneNPCResource, "add scene NPC", "id", sc.ID, "npc_id", req.NPCID)
		return
	}
	link.Name = npc.Name
	h.record(r.Context(), activity.ActionBind, "scene", sc.ID, fmt.Sprintf("Added NPC %s to scene %s", npc.Name, sc.Name))
	h.writeJSON(w, http.StatusCreated, link)
}

func (h *SceneHandler) RemoveNPC(w http.ResponseWriter, r *http.Request) {
	sceneID, npcID := pathVar(r, "id"), pathVar(r, "npc_id")
	if err := h.storage.RemoveSceneNPC(r.Context(), sceneID, npcID); err != nil {
		h.fail(w, err, sceneNPCResource, "remove scene NPC", "id", sceneID, "npc_id", npcID)
		return
	}
	h.record(r.Context(), activity.ActionUnbind, "scene", sceneID, "Removed NPC from scene")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "NPC removed from scene successfully"})
}

func (h *SceneHandler) GetDisplayConfig(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	prereqs := sc.PrerequisiteScenes
	if prereqs == nil {
		prereqs = []string{}
	}
	h.writeJSON(w, http.StatusOK, game.DisplayConfig{
		CardCount:          sc.CardCount,
		PrerequisiteScenes: prereqs,
		DaysRequired:       sc.DaysRequired,
	})
}

// SaveDisplayConfig rejects the whole body when any prerequisite is not
// the scene_id of an active scene.
func (h *SceneHandler) SaveDisplayConfig(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var d game.DisplayConfig
	if !h.decode(w, r, &d) {
		return
	}
	if d.PrerequisiteScenes == nil {
		d.PrerequisiteScenes = []string{}
	}
	if err := d.Validate(); err != nil {
		h.fail(w, err, sceneResource, "save display config")
		return
	}
	missing, err := h.storage.MissingScenes(r.Context(), d.PrerequisiteScenes)
	if err != nil {
		h.fail(w, err, sceneResource, "save display config", "id", sc.ID)
		return
	}
	if len(missing) > 0 {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Prerequisite scene '%s' not found", missing[0]))
		return
	}
	if err := h.storage.UpdateSceneDisplay(r.Context(), sc.ID, &d); err != nil {
		h.fail(w, err, sceneResource, "save display config", "id", sc.ID)
		return
	}
	h.record(r.Context(), activity.ActionUpdate, "scene", sc.ID, fmt.Sprintf("Updated display config of scene %s", sc.Name))
	h.writeJSON(w, http.StatusOK, d)
}

func (h *SceneHandler) ListAIConfigs(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	links, err := h.storage.ListSceneAIConfigs(r.Context(), sc.ID)
	if err != nil {
		h.fail(w, err, sceneAIResource, "list scene AI configs", "id", sc.ID)
		return
	}
	h.writeJSON(w, http.StatusOK, links)
}

func (h *SceneHandler) AddAIConfig(w http.ResponseWriter, r *http.Request) {
	sc, ok := h.scene(w, r)
	if !ok {
		return
	}
	var req game.SceneAIConfigCreate
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, err, sceneAIResource, "add scene AI config")
		return
	}
	cfg, err := h.storage.GetAIConfig(r.Context(), req.AIConfigID)
	if err != nil {
		h.fail(w, err, aiConfigResource, "get AI config", "ai_config_id", req.AIConfigID)
		return
	}

	link := req.Link(sc.ID)
	if err := h.storage.AddSceneAIConfig(r.Context(), link); err != nil {
		h.fail(w, err, sceneAIResource, "add scene AI config", "id", sc.ID, "ai_config_id", req.AIConfigID)
		return
	}
	link.AIConfigName, link.AIType = cfg.Name, cfg.AIType
	h.record(r.Context(), activity.ActionBind, "scene", sc.ID, fmt.Sprintf("Linked AI config %s to scene %s", cfg.Name, sc.Name))
	h.writeJSON(w, http.StatusCreated, link)
}

func (h *SceneHandler) RemoveAIConfig(w http.ResponseWriter, r *http.Request) {
	sceneID, configID := pathVar(r, "id"), pathVar(r, "config_id")
	if err := h.storage.RemoveSceneAIConfig(r.Context(), sceneID, configID); err != nil {
		h.fail(w, err, sceneAIResource, "remove scene AI config", "id", sceneID, "ai_config_id", configID)
		return
	}
	h.record(r.Context(), activity.ActionUnbind, "scene", sceneID, "Removed AI config from scene")
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "AI config removed from scene successfully"})
}
