package service

import (
	"testing"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRepScheme(t *testing.T) {
	tests := []struct {
		goal int
		sets int
		reps string
	}{
		{1, 3, "12-15"},
		{3, 3, "12-15"},
		{4, 4, "8-12"},
		{6, 4, "8-12"},
		{7, 5, "4-6"},
		{8, 5, "4-6"},
	}
	for _, tt := range tests {
		sets, reps := SetRepScheme(tt.goal)
		assert.Equal(t, tt.sets, sets, "goal %d", tt.goal)
		assert.Equal(t, tt.reps, reps, "goal %d", tt.goal)
	}
}

func TestWeeklySplitCoversEveryWeekday(t *testing.T) {
	for sessions := 1; sessions <= 7; sessions++ {
		split := WeeklySplit(sessions)
		require.Len(t, split, 7, "sessions %d", sessions)

		days := make([]string, 0, 7)
		for _, d := range split {
			days = append(days, d.day)
		}
		assert.Equal(t, domain.WeekDays, days, "sessions %d", sessions)
	}
}

func TestWeeklySplitTrainingDayCounts(t *testing.T) {
	trainingDays := func(sessions int) int {
		count := 0
		for _, d := range WeeklySplit(sessions) {
			if len(d.groups) > 0 {
				count++
			}
		}
		return count
	}

	assert.Equal(t, 2, trainingDays(1))
	assert.Equal(t, 2, trainingDays(2))
	assert.Equal(t, 3, trainingDays(3))
	assert.Equal(t, 4, trainingDays(4))
	assert.Equal(t, 5, trainingDays(5))
	assert.Equal(t, 6, trainingDays(6))
	assert.Equal(t, 6, trainingDays(7))
}

func TestWeeklySplitRestDaysHaveNoCount(t *testing.T) {
	for sessions := 1; sessions <= 7; sessions++ {
		for _, d := range WeeklySplit(sessions) {
			if len(d.groups) == 0 {
				assert.Zero(t, d.count, "sessions %d day %s", sessions, d.day)
			} else {
				assert.Positive(t, d.count, "sessions %d day %s", sessions, d.day)
			}
		}
	}
}
