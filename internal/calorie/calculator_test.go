package calorie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calPalAPI/internal/validation"
)

func TestCalculateValidation(t *testing.T) {
	base := Input{Sex: SexMale, Age: 30, HeightFeet: 5, HeightInches: 10, WeightLbs: 180, ActivityLevel: 3, GoalLevel: 1}

	tooYoung := base
	tooYoung.Age = 14
	_, err := Calculate(tooYoung)
	assert.True(t, validation.IsValidation(err))

	tooHeavy := base
	tooHeavy.WeightLbs = 501
	_, err = Calculate(tooHeavy)
	assert.True(t, validation.IsValidation(err))

	noHeight := base
	noHeight.HeightFeet = 0
	_, err = Calculate(noHeight)
	assert.True(t, validation.IsValidation(err))
}

func TestCalculateMaintain(t *testing.T) {
	result, err := Calculate(Input{
		Sex:           SexMale,
		Age:           30,
		HeightFeet:    5,
		HeightInches:  10,
		WeightLbs:     180,
		ActivityLevel: 3,
		GoalLevel:     1,
	})
	require.NoError(t, err)

	// BMR = 88.362 + 13.397*81.647 + 4.799*177.8 - 5.677*30
	assert.Equal(t, 1865, result.BMR)
	assert.Equal(t, 2891, result.Maintenance)
	assert.Equal(t, result.Maintenance, result.TargetCalories)
	assert.Equal(t, "Your target is set to maintain your current weight.", result.Message)

	// Macro split: 30% protein, 25% fat, 45% carbs
	assert.Equal(t, 217, result.ProteinGrams)
	assert.Equal(t, 80, result.FatGrams)
	assert.Equal(t, 325, result.CarbsGrams)
}

func TestCalculateAdjustments(t *testing.T) {
	in := Input{Sex: SexFemale, Age: 25, HeightFeet: 5, HeightInches: 5, WeightLbs: 140, ActivityLevel: 2, GoalLevel: 3}

	result, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, result.Maintenance-500, result.TargetCalories)
	assert.Contains(t, result.Message, "deficit of 500 kcal")

	in.GoalLevel = 5
	result, err = Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, result.Maintenance+250, result.TargetCalories)
	assert.Contains(t, result.Message, "surplus of 250 kcal")
}

func TestCalculateUnknownActivityDefaultsToSedentary(t *testing.T) {
	in := Input{Sex: SexMale, Age: 40, HeightFeet: 6, WeightLbs: 200, ActivityLevel: 9, GoalLevel: 1}
	result, err := Calculate(in)
	require.NoError(t, err)

	in.ActivityLevel = 1
	sedentary, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, sedentary.Maintenance, result.Maintenance)
}
