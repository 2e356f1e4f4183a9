package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"idleverse/internal/app/activity"
	"idleverse/internal/app/advance"
	"idleverse/internal/app/changelog"
	"idleverse/internal/app/forecast"
	"idleverse/internal/app/packfiles"
	"idleverse/internal/app/ports"
	"idleverse/internal/app/status"
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/sim"
)

const playerIDHeader = "X-Player-ID"

type Handler struct {
	AdvanceUC   advance.UseCase
	ForecastUC  forecast.UseCase
	ActivityUC  activity.UseCase
	StatusUC    status.UseCase
	ChangeLogUC changelog.UseCase
	PackUC      packfiles.UseCase
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	player := s.Group("/api/player")
	player.POST("/advance", h.advance)
	player.POST("/forecast", h.forecast)
	player.POST("/activity", h.activity)
	player.GET("/state", h.state)
	player.GET("/horizon", h.horizon)
	player.GET("/changes", h.changes)

	s.GET("/content/index.json", h.contentIndex)
	s.GET("/content/*filepath", h.contentFile)
	s.GET("/ops/kpi", h.kpi)
}

type advanceRequest struct {
	Ticks          int     `json:"ticks"`
	IdempotencyKey string  `json:"idempotency_key"`
	Seed           *uint64 `json:"seed,omitempty"`
}

type forecastRequest struct {
	Ticks int            `json:"ticks"`
	Goal  *forecast.Goal `json:"goal,omitempty"`
	Seed  *uint64        `json:"seed,omitempty"`
}

// activityRequest is the op-dispatching body of POST /api/player/activity.
// Only the fields the op needs are read; the rest stay zero.
type activityRequest struct {
	Op        string               `json:"op"`
	Action    content.ActionID     `json:"action,omitempty"`
	Area      content.AreaID       `json:"area,omitempty"`
	Obstacles []content.ObstacleID `json:"obstacles,omitempty"`
	Station   content.StationID    `json:"station,omitempty"`
	Plot      content.PlotID       `json:"plot,omitempty"`
	Crop      content.CropID       `json:"crop,omitempty"`
	Item      content.ItemID       `json:"item,omitempty"`
	Slot      content.EquipSlot    `json:"slot,omitempty"`
	Style     content.AttackStyle  `json:"style,omitempty"`
}

func (h Handler) advance(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body advanceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.AdvanceUC.Execute(c, advance.Request{
		PlayerID:       playerID,
		IdempotencyKey: body.IdempotencyKey,
		Ticks:          body.Ticks,
		Seed:           body.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) forecast(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body forecastRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ForecastUC.Execute(c, forecast.Request{
		PlayerID: playerID,
		Ticks:    body.Ticks,
		Goal:     body.Goal,
		Seed:     body.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) activity(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body activityRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	var resp activity.Response
	switch body.Op {
	case "start_skilling":
		resp, err = h.ActivityUC.StartSkilling(c, playerID, body.Action)
	case "start_combat":
		resp, err = h.ActivityUC.StartCombat(c, playerID, body.Area)
	case "start_course":
		resp, err = h.ActivityUC.StartCourse(c, playerID, body.Obstacles)
	case "start_passive":
		resp, err = h.ActivityUC.StartPassive(c, playerID, body.Station)
	case "stop":
		resp, err = h.ActivityUC.Stop(c, playerID)
	case "assign_recipe":
		resp, err = h.ActivityUC.AssignStationRecipe(c, playerID, body.Station, body.Action)
	case "plant":
		resp, err = h.ActivityUC.PlantCrop(c, playerID, body.Plot, body.Crop)
	case "harvest":
		resp, err = h.ActivityUC.HarvestPlot(c, playerID, body.Plot)
	case "equip":
		resp, err = h.ActivityUC.EquipItem(c, playerID, body.Item)
	case "unequip":
		resp, err = h.ActivityUC.UnequipItem(c, playerID, body.Slot)
	case "select_food":
		resp, err = h.ActivityUC.SelectFood(c, playerID, body.Item)
	case "set_style":
		resp, err = h.ActivityUC.SetStyle(c, playerID, body.Style)
	default:
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_op", "unknown activity op "+strconv.Quote(body.Op))
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) horizon(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ForecastUC.NextWake(c, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) changes(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.ChangeLogUC.Execute(c, changelog.Request{PlayerID: playerID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) contentIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.PackUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Data(consts.StatusOK, "application/json", b)
}

func (h Handler) contentFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(string(ctx.Param("filepath")), "/")
	if path == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}

	b, err := h.PackUC.File(c, path)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Data(consts.StatusOK, "text/yaml; charset=utf-8", b)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingPlayerIDHeader = errors.New("missing x-player-id header")

func requirePlayer(ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	if playerID == "" {
		return "", ErrMissingPlayerIDHeader
	}
	return playerID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, activity.ErrStunned):
		writeErrorBody(ctx, consts.StatusConflict, "player_stunned", err.Error())
	case errors.Is(err, activity.ErrLevelTooLow):
		writeErrorDetails(ctx, consts.StatusConflict, "level_too_low", err.Error(), errorDetails(err))
	case errors.Is(err, activity.ErrMissingInput):
		writeErrorDetails(ctx, consts.StatusConflict, "missing_input", err.Error(), errorDetails(err))
	case errors.Is(err, activity.ErrSlotMismatch):
		writeErrorBody(ctx, consts.StatusConflict, "slot_mismatch", err.Error())
	case errors.Is(err, activity.ErrNotFood):
		writeErrorBody(ctx, consts.StatusConflict, "not_food", err.Error())
	case errors.Is(err, activity.ErrInventoryFull):
		writeErrorBody(ctx, consts.StatusConflict, "inventory_full", err.Error())
	case errors.Is(err, activity.ErrInsufficientCoins):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_coins", err.Error())
	case errors.Is(err, activity.ErrPlotOccupied):
		writeErrorBody(ctx, consts.StatusConflict, "plot_occupied", err.Error())
	case errors.Is(err, activity.ErrPlotNotReady):
		writeErrorBody(ctx, consts.StatusConflict, "plot_not_ready", err.Error())
	case errors.Is(err, activity.ErrNoRecipe):
		writeErrorBody(ctx, consts.StatusConflict, "no_recipe", err.Error())
	case errors.Is(err, activity.ErrNotStationRecipe):
		writeErrorBody(ctx, consts.StatusBadRequest, "not_station_recipe", err.Error())
	case errors.Is(err, activity.ErrBadCourse):
		writeErrorDetails(ctx, consts.StatusBadRequest, "bad_course", err.Error(), errorDetails(err))
	case errors.Is(err, sim.ErrUnknownContent):
		writeErrorDetails(ctx, consts.StatusNotFound, "unknown_content", err.Error(), errorDetails(err))
	case errors.Is(err, forecast.ErrInvalidGoal):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_goal", err.Error())
	case errors.Is(err, activity.ErrInvalidRequest),
		errors.Is(err, advance.ErrInvalidRequest),
		errors.Is(err, changelog.ErrInvalidRequest),
		errors.Is(err, forecast.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

// errorDetails pulls the typed fields off precondition errors so
// clients can react without parsing messages.
func errorDetails(err error) map[string]any {
	var levelErr *activity.LevelError
	if errors.As(err, &levelErr) {
		return map[string]any{"skill": string(levelErr.Skill), "need": levelErr.Need, "have": levelErr.Have}
	}
	var inputErr *activity.InputError
	if errors.As(err, &inputErr) {
		return map[string]any{"item": string(inputErr.Item), "need": inputErr.Need, "have": inputErr.Have}
	}
	var courseErr *activity.CourseError
	if errors.As(err, &courseErr) {
		return map[string]any{"reason": courseErr.Reason}
	}
	var unknownErr *sim.UnknownContentError
	if errors.As(err, &unknownErr) {
		return map[string]any{"kind": unknownErr.Kind, "id": unknownErr.ID}
	}
	return nil
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	writeErrorDetails(ctx, status, code, message, nil)
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	errBody := map[string]any{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errBody["details"] = details
	}
	ctx.JSON(status, map[string]any{"error": errBody})
}
