package status

import (
	"context"
	"errors"
	"testing"

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
		t.Fatalf("building registry: %v", err)
	}
	return reg
}

type flatRules struct{}

func (flatRules) ActionModifiers(game.PlayerState, content.ActionDef) sim.ActionModifiers {
	return sim.ActionModifiers{}
}

func (flatRules) AutoEat(game.PlayerState) sim.AutoEatSettings {
	return sim.AutoEatSettings{EfficiencyPct: 100}
}

func (flatRules) PlayerStats(game.PlayerState) sim.CombatStats {
	return sim.CombatStats{Accuracy: 100, MinHit: 2, MaxHit: 2, AttackTicks: 40, Style: content.StyleMelee}
}

func (flatRules) MonsterStats(def content.MonsterDef) sim.CombatStats {
	return sim.CombatStats{
		Accuracy:    def.Accuracy,
		Evasion:     def.Evasion,
		MinHit:      def.MinHit,
		MaxHit:      def.MaxHit,
		AttackTicks: def.AttackTicks,
		Style:       def.Style,
	}
}

type statusSnapshots struct {
	state game.PlayerState
	err   error
}

func (r statusSnapshots) GetByPlayerID(_ context.Context, _ string) (game.PlayerState, error) {
	if r.err != nil {
		return game.PlayerState{}, r.err
	}
	return r.state, nil
}

func (r statusSnapshots) SaveWithVersion(_ context.Context, _ game.PlayerState, _ int64) error {
	return nil
}

func (r statusSnapshots) Create(_ context.Context, _ game.PlayerState) error { return nil }

func testEngine(t *testing.T) *sim.Engine {
	t.Helper()
	return &sim.Engine{Content: testRegistry(t), Modifiers: flatRules{}, Combat: flatRules{}}
}

func TestUseCase_DerivesViewAndHorizon(t *testing.T) {
	state := game.NewPlayerState("p1", 20)
	state.Activity = game.NewSkillingActivity("gather_berries")
	state.Inventory.Add("berry", 4)

	uc := UseCase{Snapshots: statusSnapshots{state: state}, Engine: testEngine(t)}
	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Player.PlayerID != "p1" || resp.Player.Health != 100 {
		t.Fatalf("view mismatch: %+v", resp.Player)
	}
	if len(resp.Player.Inventory) != 1 || resp.Player.Inventory[0].Quantity != 4 {
		t.Fatalf("expected one stack of 4 berries, got %+v", resp.Player.Inventory)
	}
	if !resp.HorizonActive || resp.HorizonTicks != 50 {
		t.Fatalf("expected the first cycle boundary at 50, got active=%v ticks=%d", resp.HorizonActive, resp.HorizonTicks)
	}
}

func TestUseCase_IdlePlayerHasNoHorizon(t *testing.T) {
	uc := UseCase{
		Snapshots: statusSnapshots{state: game.NewPlayerState("p1", 20)},
		Engine:    testEngine(t),
	}
	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.HorizonActive || resp.HorizonTicks != 0 {
		t.Fatalf("expected no pending event, got active=%v ticks=%d", resp.HorizonActive, resp.HorizonTicks)
	}
}

func TestUseCase_RejectsEmptyPlayerID(t *testing.T) {
	uc := UseCase{Engine: testEngine(t)}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("snapshot repo down")
	uc := UseCase{Snapshots: statusSnapshots{err: wantErr}, Engine: testEngine(t)}
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "p1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

var _ ports.SnapshotRepository = statusSnapshots{}
