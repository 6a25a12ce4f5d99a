package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func target(f float64) *float64 { return &f }

func TestReward(t *testing.T) {
	tests := []struct {
		name string
		g    Goal
		want int
	}{
		{"exercise scales with target", Goal{Type: TypeExercise, Target: target(5)}, 25},
		{"weight loss scales with target", Goal{Type: TypeWeightLoss, Target: target(10)}, 300},
		{"weight loss with fractional target", Goal{Type: TypeWeightLoss, Target: target(2.5)}, 75},
		{"custom is flat", Goal{Type: TypeCustom}, 15},
		{"targetless exercise falls back to progress", Goal{Type: TypeExercise, Progress: 4}, 20},
		{"zero target falls back to progress", Goal{Type: TypeWeightLoss, Target: target(0), Progress: 3}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reward(&tt.g))
		})
	}
}

func TestPotentialRewardIgnoresProgress(t *testing.T) {
	g := Goal{Type: TypeExercise, Progress: 4}
	assert.Equal(t, 0, PotentialReward(&g))

	g.Target = target(8)
	assert.Equal(t, 40, PotentialReward(&g))
}

func TestPickCompletionMessageSplitsEmoji(t *testing.T) {
	m := PickCompletionMessage(func(n int) int { return 0 })
	assert.NotEmpty(t, m.Emoji)
	assert.NotEmpty(t, m.Text)
	assert.NotContains(t, m.Text, m.Emoji)
}
