package goal

import "math"

const (
	exercisePointsPerUnit   = 5
	weightLossPointsPerUnit = 30
	customReward            = 15
)

// Reward computes the point value fixed when a goal completes. Exercise and
// Weight Loss scale with the target, falling back to current progress for
// goals that never had one. Custom goals earn a flat amount.
func Reward(g *Goal) int {
	switch g.Type {
	case TypeExercise:
		return scaledReward(g, exercisePointsPerUnit)
	case TypeWeightLoss:
		return scaledReward(g, weightLossPointsPerUnit)
	default:
		return customReward
	}
}

// PotentialReward is the "what you'd earn" figure shown on in-progress goals.
// It always reads the target; there is no progress fallback before completion.
func PotentialReward(g *Goal) int {
	switch g.Type {
	case TypeExercise:
		return scaledPotential(g, exercisePointsPerUnit)
	case TypeWeightLoss:
		return scaledPotential(g, weightLossPointsPerUnit)
	default:
		return customReward
	}
}

func scaledReward(g *Goal, pointsPerUnit float64) int {
	base := g.Progress
	if g.Target != nil && *g.Target > 0 {
		base = *g.Target
	}
	return clampNonNegative(int(math.Round(base * pointsPerUnit)))
}

func scaledPotential(g *Goal, pointsPerUnit float64) int {
	var base float64
	if g.Target != nil {
		base = *g.Target
	}
	return clampNonNegative(int(math.Round(base * pointsPerUnit)))
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
