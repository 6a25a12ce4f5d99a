package badge

// Thresholds is the ascending point ladder; one badge unlocks per threshold
// crossed.
var Thresholds = []int{100, 1000, 5000, 10000, 25000, 50000, 100000, 500000, 1000000, 10000000}

// UnlockedCount reports how many badge tiers totalPoints has crossed.
// Monotonic non-decreasing in totalPoints.
func UnlockedCount(totalPoints int) int {
	count := 0
	for _, threshold := range Thresholds {
		if totalPoints >= threshold {
			count++
		}
	}
	return count
}

type Badge struct {
	Index     int  `json:"index"`
	Threshold int  `json:"threshold"`
	Unlocked  bool `json:"unlocked"`
}

// Board is the computed view the dashboard renders. NewlyUnlocked is positive
// only when the unlocked count rose since the last render; a drop after a
// deletion lowers the watermark silently.
type Board struct {
	TotalPoints   int     `json:"totalPoints"`
	Badges        []Badge `json:"badges"`
	UnlockedCount int     `json:"unlockedCount"`
	NewlyUnlocked int     `json:"newlyUnlocked"`
}

func Ladder(totalPoints int) []Badge {
	badges := make([]Badge, 0, len(Thresholds))
	for i, threshold := range Thresholds {
		badges = append(badges, Badge{
			Index:     i + 1,
			Threshold: threshold,
			Unlocked:  totalPoints >= threshold,
		})
	}
	return badges
}
