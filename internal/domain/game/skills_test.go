package game

import "testing"

func TestLevelCurveAnchors(t *testing.T) {
	if got := XPForLevel(1); got != 0 {
		t.Fatalf("level 1 xp = %d, want 0", got)
	}
	if got := XPForLevel(2); got != 83 {
		t.Fatalf("level 2 xp = %d, want 83", got)
	}
	if got := LevelForXP(0); got != 1 {
		t.Fatalf("level at 0 xp = %d, want 1", got)
	}
	if got := LevelForXP(82); got != 1 {
		t.Fatalf("level at 82 xp = %d, want 1", got)
	}
	if got := LevelForXP(83); got != 2 {
		t.Fatalf("level at 83 xp = %d, want 2", got)
	}
}

func TestLevelCurveMonotonic(t *testing.T) {
	prev := 0
	for lvl := 2; lvl <= MaxLevel; lvl++ {
		xp := XPForLevel(lvl)
		if xp <= prev {
			t.Fatalf("xp for level %d = %d, not above level %d's %d", lvl, xp, lvl-1, prev)
		}
		if got := LevelForXP(xp); got != lvl {
			t.Fatalf("round trip level %d came back as %d", lvl, got)
		}
		if got := LevelForXP(xp - 1); got != lvl-1 {
			t.Fatalf("one xp short of level %d gave %d", lvl, got)
		}
		prev = xp
	}
}

func TestLevelForXPClamps(t *testing.T) {
	if got := LevelForXP(-5); got != 1 {
		t.Fatalf("negative xp level = %d, want 1", got)
	}
	if got := LevelForXP(1 << 30); got != MaxLevel {
		t.Fatalf("huge xp level = %d, want %d", got, MaxLevel)
	}
}

func TestNewPlayerStateStartsAtTenHitpoints(t *testing.T) {
	s := NewPlayerState("p-1", 20)
	if got := s.Level("hitpoints"); got != 10 {
		t.Fatalf("starting hitpoints level = %d, want 10", got)
	}
	if s.Health != 100 || s.MaxHealth() != 100 {
		t.Fatalf("starting health = %d/%d, want 100/100", s.Health, s.MaxHealth())
	}
	if s.MasteryLevel("never_done") != 1 {
		t.Fatalf("expected default mastery level 1 for untouched action")
	}
}
