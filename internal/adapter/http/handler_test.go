package httpadapter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"idleverse/internal/app/activity"
	"idleverse/internal/app/advance"
	"idleverse/internal/app/changelog"
	"idleverse/internal/app/forecast"
	"idleverse/internal/app/packfiles"
	"idleverse/internal/app/ports"
	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
	"idleverse/internal/domain/sim"
)

func testRegistry(t *testing.T) content.Registry {
	t.Helper()
	reg, err := content.NewStatic(content.Pack{
		Skills: []content.SkillDef{
			{ID: content.SkillHitpoints, Name: "Hitpoints"},
			{ID: "foraging", Name: "Foraging"},
		},
		Items: []content.ItemDef{
			{ID: "berry", Name: "Berry", SellValue: 1},
		},
		Actions: []content.ActionDef{
			{
				ID: "gather_berries", Name: "Gather Berries", Skill: "foraging", Kind: content.KindGathering,
				Duration: 50, XP: 10, MasteryXP: 5,
				Drops: []content.Drop{{Item: "berry", Min: 1, Max: 1}},
			},
		},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestRequirePlayer_FromHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "  p1  ")

	playerID, err := requirePlayer(ctx)
	if err != nil {
		t.Fatalf("requirePlayer error: %v", err)
	}
	if playerID != "p1" {
		t.Fatalf("unexpected player id: %q", playerID)
	}
}

func TestRequirePlayer_MissingHeader(t *testing.T) {
	ctx := &app.RequestContext{}

	if _, err := requirePlayer(ctx); err != ErrMissingPlayerIDHeader {
		t.Fatalf("expected ErrMissingPlayerIDHeader, got %v", err)
	}
}

func TestWriteError_MapsSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"stunned", activity.ErrStunned, consts.StatusConflict, "player_stunned"},
		{"inventory full", activity.ErrInventoryFull, consts.StatusConflict, "inventory_full"},
		{"insufficient coins", activity.ErrInsufficientCoins, consts.StatusConflict, "insufficient_coins"},
		{"plot occupied", activity.ErrPlotOccupied, consts.StatusConflict, "plot_occupied"},
		{"invalid goal", forecast.ErrInvalidGoal, consts.StatusBadRequest, "invalid_goal"},
		{"bad request", advance.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{"changelog bad request", changelog.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{"not found", ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{"conflict", ports.ErrConflict, consts.StatusConflict, "conflict"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &app.RequestContext{}
			writeError(ctx, tc.err)

			if got := ctx.Response.StatusCode(); got != tc.status {
				t.Fatalf("status mismatch: got=%d want=%d", got, tc.status)
			}
			var body map[string]map[string]any
			if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if got := body["error"]["code"]; got != tc.code {
				t.Fatalf("error code mismatch: got=%v want=%q", got, tc.code)
			}
		})
	}
}

func TestWriteError_LevelDetails(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &activity.LevelError{Skill: "smithing", Need: 15, Have: 3})

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "level_too_low"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
	details, _ := body["error"]["details"].(map[string]any)
	if details["skill"] != "smithing" || details["need"] != float64(15) || details["have"] != float64(3) {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestWriteError_UnknownContentDetails(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, &sim.UnknownContentError{Kind: "action", ID: "chop_mahogany"})

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "unknown_content"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
	details, _ := body["error"]["details"].(map[string]any)
	if details["kind"] != "action" || details["id"] != "chop_mahogany" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestActivity_StartSkilling(t *testing.T) {
	snaps := &fakeSnapshots{state: game.NewPlayerState("p1", 20)}
	h := Handler{
		ActivityUC: activity.UseCase{
			TxManager: fakeTxManager{},
			Snapshots: snaps,
			Content:   testRegistry(t),
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Request.SetBody([]byte(`{"op":"start_skilling","action":"gather_berries"}`))

	h.activity(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	player, _ := body["player"].(map[string]any)
	act, _ := player["activity"].(map[string]any)
	if act["label"] != "Gather Berries" {
		t.Fatalf("expected started activity in view, got %+v", player)
	}
	if snaps.saved == nil || snaps.saved.Version != 2 {
		t.Fatalf("expected persisted snapshot at version 2")
	}
}

func TestActivity_StunnedMapsToConflict(t *testing.T) {
	state := game.NewPlayerState("p1", 20)
	state.StunTicks = 25
	h := Handler{
		ActivityUC: activity.UseCase{
			TxManager: fakeTxManager{},
			Snapshots: &fakeSnapshots{state: state},
			Content:   testRegistry(t),
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Request.SetBody([]byte(`{"op":"start_skilling","action":"gather_berries"}`))

	h.activity(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "player_stunned"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
}

func TestActivity_UnknownOp(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Request.SetBody([]byte(`{"op":"dance"}`))

	h.activity(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "unknown_op"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
}

func TestAdvance_RequiresPlayerHeader(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"ticks":100,"idempotency_key":"k1"}`))

	h.advance(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "missing_player_id"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
}

func TestAdvance_RejectsMalformedJSON(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Request.SetBody([]byte(`{"ticks":`))

	h.advance(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "invalid_json"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
}

func TestChanges_PassesQueryLimit(t *testing.T) {
	log := &fakeChangeLog{batches: []ports.ChangeBatch{
		{BatchID: "b2", PlayerID: "p1"},
		{BatchID: "b1", PlayerID: "p1"},
	}}
	h := Handler{ChangeLogUC: changelog.UseCase{ChangeLog: log}}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerIDHeader, "p1")
	ctx.Request.SetRequestURI("/api/player/changes?limit=2")

	h.changes(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	if log.lastLimit != 2 {
		t.Fatalf("expected limit 2 passed through, got %d", log.lastLimit)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	batches, _ := body["batches"].([]any)
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_ServesSnapshot(t *testing.T) {
	h := Handler{KPI: fakeKPI{snapshot: map[string]any{"advance_total": 3}}}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["advance_total"] != float64(3) {
		t.Fatalf("unexpected snapshot: %+v", body)
	}
}

func TestContentIndex_ServesProviderBytes(t *testing.T) {
	h := Handler{PackUC: packfiles.UseCase{Provider: fakePackProvider{
		index: []byte(`{"files":["skills.yaml"]}`),
	}}}
	ctx := &app.RequestContext{}

	h.contentIndex(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got := string(ctx.Response.Body()); got != `{"files":["skills.yaml"]}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestContentFile_EmptyPathRejected(t *testing.T) {
	h := Handler{PackUC: packfiles.UseCase{Provider: fakePackProvider{}}}
	ctx := &app.RequestContext{}

	h.contentFile(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "invalid_filepath"; got != want {
		t.Fatalf("error code mismatch: got=%v want=%q", got, want)
	}
}

type fakeSnapshots struct {
	state game.PlayerState
	saved *game.PlayerState
}

func (f *fakeSnapshots) GetByPlayerID(_ context.Context, playerID string) (game.PlayerState, error) {
	if playerID != f.state.PlayerID {
		return game.PlayerState{}, ports.ErrNotFound
	}
	return f.state, nil
}

func (f *fakeSnapshots) SaveWithVersion(_ context.Context, state game.PlayerState, _ int64) error {
	f.saved = &state
	return nil
}

func (f *fakeSnapshots) Create(_ context.Context, _ game.PlayerState) error { return nil }

type fakeChangeLog struct {
	batches   []ports.ChangeBatch
	lastLimit int
}

func (f *fakeChangeLog) Append(_ context.Context, _ ports.ChangeBatch) error { return nil }

func (f *fakeChangeLog) ListByPlayerID(_ context.Context, _ string, limit int) ([]ports.ChangeBatch, error) {
	f.lastLimit = limit
	return f.batches, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeKPI struct {
	snapshot any
}

func (f fakeKPI) SnapshotAny() any { return f.snapshot }

type fakePackProvider struct {
	index []byte
}

func (f fakePackProvider) Index(context.Context) ([]byte, error) { return f.index, nil }

func (f fakePackProvider) File(_ context.Context, path string) ([]byte, error) {
	return nil, ports.ErrNotFound
}

var (
	_ ports.SnapshotRepository  = (*fakeSnapshots)(nil)
	_ ports.ChangeLogRepository = (*fakeChangeLog)(nil)
	_ ports.TxManager           = fakeTxManager{}
	_ ports.PackFilesProvider   = fakePackProvider{}
)
