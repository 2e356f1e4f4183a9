package sim

import (
	"errors"
	"testing"

	"idleverse/internal/domain/content"
	"idleverse/internal/domain/game"
)

func TestCourseLoops(t *testing.T) {
	eng := testEngine(t, basePack())
	s := baseState()
	s.CourseObstacles = []content.ObstacleID{"wall", "rope"}
	s.Activity = game.NewCourseActivity()

	// wall 20, rope 30, wall 20, rope 30: two full laps in 100 ticks.
	r, err := eng.Advance(s, 100, testRNG(1))
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if r.Ticks != 100 || r.Reason != StopMaxTicks {
		t.Fatalf("got ticks=%d reason=%q", r.Ticks, r.Reason)
	}
	if got := r.State.SkillXP["agility"]; got != 24 {
		t.Fatalf("agility xp = %d, want 24 over two laps", got)
	}
	if r.State.Coins != 2 {
		t.Fatalf("coins = %d, want 2 from the wall alone", r.State.Coins)
	}
	var coinTicks []int
	for _, c := range r.Changes {
		if c.Kind == ChangeCoinsGained {
			coinTicks = append(coinTicks, c.Tick)
		}
	}
	if len(coinTicks) != 2 || coinTicks[0] != 20 || coinTicks[1] != 70 {
		t.Fatalf("coin ticks = %v, want [20 70]", coinTicks)
	}
	if r.State.Activity.ObstacleIndex != 0 || r.State.Activity.Remaining != 0 {
		t.Fatalf("activity = %+v, want back at the wall on a boundary", r.State.Activity)
	}
}

func TestCourseRequiresObstacles(t *testing.T) {
	eng := testEngine(t, basePack())
	s := baseState()
	s.Activity = game.NewCourseActivity()

	_, err := eng.Advance(s, 100, testRNG(1))
	if !errors.Is(err, ErrMalformedState) {
		t.Fatalf("err = %v, want ErrMalformedState for an empty course", err)
	}
}
