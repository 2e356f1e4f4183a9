package game

import "math"

const MaxLevel = 99

// levelXP[n] is the experience required to hold level n. Levels follow
// the familiar exponential curve: each level's point cost is
// floor(lvl + 300*2^(lvl/7)), and xp is the running point total divided
// by four. Mastery tracks use the same curve.
var levelXP [MaxLevel + 1]int

func init() {
	points := 0
	for lvl := 1; lvl < MaxLevel; lvl++ {
		points += int(float64(lvl) + 300*math.Pow(2, float64(lvl)/7))
		levelXP[lvl+1] = points / 4
	}
}

// XPForLevel returns the minimum experience for the given level, clamped
// to [1, MaxLevel].
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelXP[level]
}

// LevelForXP returns the level held at the given experience. Negative
// experience counts as zero.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	for lvl := MaxLevel; lvl > 1; lvl-- {
		if xp >= levelXP[lvl] {
			return lvl
		}
	}
	return 1
}

// MaxHealthForLevel is ten health per hitpoints level.
func MaxHealthForLevel(hitpointsLevel int) int {
	if hitpointsLevel < 1 {
		hitpointsLevel = 1
	}
	return 10 * hitpointsLevel
}
