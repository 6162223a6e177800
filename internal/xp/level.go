package xp

import "math"

// Leveling uses triangular-number thresholds: completing level N costs
// 100*N XP, so the cumulative XP needed to reach level N is
// 100*(N-1)*N/2. The formula is load-bearing: changing it changes the
// level derived from existing saved XP totals.

// AwardResult describes the outcome of a single XP mutation.
type AwardResult struct {
	NewXP         int  `json:"new_xp"`
	NewLevel      int  `json:"new_level"`
	LeveledUp     bool `json:"leveled_up"`
	PreviousLevel int  `json:"previous_level"`
}

// xpToReachLevel is the cumulative XP threshold for a level.
func xpToReachLevel(level int) int {
	return 100 * (level - 1) * level / 2
}

// LevelFor returns the level for a cumulative XP total. Levels start at 1
// and are monotonic non-decreasing in XP.
func LevelFor(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	level := 1
	for xpToReachLevel(level+1) <= totalXP {
		level++
	}
	return level
}

// XPForNextLevel returns how much more XP is needed to level up.
func XPForNextLevel(currentXP int) int {
	return xpToReachLevel(LevelFor(currentXP)+1) - currentXP
}

// LevelProgress returns the percentage through the current level's XP
// band, 0-100.
func LevelProgress(currentXP int) int {
	level := LevelFor(currentXP)
	levelStart := xpToReachLevel(level)
	band := xpToReachLevel(level+1) - levelStart
	if currentXP < 0 {
		return 0
	}
	return int(math.Round(float64(currentXP-levelStart) / float64(band) * 100))
}

// AwardXP applies an XP delta and reports whether a level boundary was
// crossed. This is the single mutation entry point for XP totals.
func AwardXP(currentXP, delta int) AwardResult {
	previousLevel := LevelFor(currentXP)
	newXP := currentXP + delta
	newLevel := LevelFor(newXP)

	return AwardResult{
		NewXP:         newXP,
		NewLevel:      newLevel,
		LeveledUp:     newLevel > previousLevel,
		PreviousLevel: previousLevel,
	}
}

// LevelTitle maps a level to its display title.
func LevelTitle(level int) string {
	switch {
	case level <= 5:
		return "Beginner"
	case level <= 10:
		return "Learner"
	case level <= 20:
		return "Apprentice"
	case level <= 30:
		return "Practitioner"
	case level <= 40:
		return "Skilled"
	case level <= 50:
		return "Expert"
	case level <= 75:
		return "Master"
	case level <= 100:
		return "Grandmaster"
	default:
		return "Legend"
	}
}
