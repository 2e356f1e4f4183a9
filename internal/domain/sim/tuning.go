package sim

import "time"

// Fixed engine tuning. Content packs carry everything that varies per
// action; these are the constants the loop itself is built around.
const (
	// TickDuration is the wall-clock length of one tick.
	TickDuration = 100 * time.Millisecond

	// RegenIntervalTicks is the gap between passive health regen points.
	RegenIntervalTicks = 100
	// RegenPerInterval is the health restored per regen interval.
	RegenPerInterval = 1

	// PassiveSlowdown multiplies action durations run on a station.
	PassiveSlowdown = 2

	// TokenXP is the consolation skill XP for a failed cook.
	TokenXP = 1

	// NodeDamagePerCompletion is the health a resource node loses per
	// completed gather.
	NodeDamagePerCompletion = 1

	// XPClampMultiple caps modified XP at this multiple of the base.
	XPClampMultiple = 10
)

// TicksForDuration converts a wall-clock duration into whole ticks,
// rounding down.
func TicksForDuration(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / TickDuration)
}
