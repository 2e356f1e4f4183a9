package sim

import "math/rand/v2"

// stepCourse advances the obstacle course by at most budget ticks. Each
// obstacle's duration is rolled when it starts; completing one pays XP
// and coins and moves to the next slot, wrapping at the end of the
// course.
func (e *Engine) stepCourse(m *Mutator, budget int, rng *rand.Rand) (int, bool) {
	a := m.State().Activity.Clone()
	obstacles := m.State().CourseObstacles
	def, _ := e.Content.Obstacle(obstacles[a.ObstacleIndex])

	if a.Remaining == 0 {
		a.Remaining = atLeastOne(rollRange(def.DurationMin, def.DurationMax, rng))
	}
	step := min(a.Remaining, budget)
	m.advanceTick(step)
	a.Remaining -= step
	m.SetActivity(a)
	if a.Remaining > 0 {
		return step, false
	}

	m.GrantSkillXP(def.Skill, def.XP, 0)
	m.AddCoins(rollRange(def.CoinsMin, def.CoinsMax, rng))
	a.ObstacleIndex = (a.ObstacleIndex + 1) % len(obstacles)
	m.SetActivity(a)
	return step, false
}
