package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// un mercredi
var anchorWednesday = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func TestGenerateWeek_SevenDaysWithExpectedSlotCount(t *testing.T) {
	week := GenerateWeek(8, 20, anchorWednesday)

	require.Len(t, week, 7)

	total := 0
	ids := map[string]bool{}
	for _, dayName := range WeekDays {
		day, ok := week[dayName]
		require.True(t, ok, "jour manquant: %s", dayName)
		assert.Equal(t, dayName, day.DayName)
		assert.Len(t, day.Schedule, 13) // 20 − 8 + 1

		for key, slot := range day.Schedule {
			assert.Equal(t, SlotID(dayName, day.Date, key), slot.ID)
			assert.Empty(t, slot.Title)
			assert.Empty(t, slot.Notes)
			assert.Empty(t, slot.Location)
			assert.Empty(t, slot.Status)
			ids[slot.ID] = true
			total++
		}
	}

	// 7 jours × 13 créneaux, aucun identifiant dupliqué
	assert.Equal(t, 91, total)
	assert.Len(t, ids, 91)
}

func TestGenerateWeek_DatesAnchoredOnCurrentWeek(t *testing.T) {
	week := GenerateWeek(8, 10, anchorWednesday)

	// ancre au mercredi 10-01-2024 → la semaine va du dimanche 07 au samedi 13
	assert.Equal(t, "07-01-2024", week["Sunday"].Date)
	assert.Equal(t, "10-01-2024", week["Wednesday"].Date)
	assert.Equal(t, "13-01-2024", week["Saturday"].Date)

	assert.Contains(t, week["Wednesday"].Schedule, "08:00")
	assert.Equal(t, "Schedule-Wednesday-10-01-2024-08:00", week["Wednesday"].Schedule["08:00"].ID)
}

func TestGenerateWeek_InvertedHoursProduceEmptyDays(t *testing.T) {
	week := GenerateWeek(20, 8, anchorWednesday)

	require.Len(t, week, 7)
	for _, day := range week {
		assert.Empty(t, day.Schedule)
	}
}

func TestRegenerateDay_KeepsHourKeysAndClearsContent(t *testing.T) {
	hours := []string{"08:00", "09:00", "17:00"}

	day, err := RegenerateDay("Monday", hours, anchorWednesday)
	require.NoError(t, err)

	assert.Equal(t, "Monday", day.DayName)
	require.Len(t, day.Schedule, len(hours))
	for _, h := range hours {
		slot, ok := day.Schedule[h]
		require.True(t, ok, "heure perdue: %s", h)
		assert.Equal(t, SlotID("Monday", day.Date, h), slot.ID)
		assert.Empty(t, slot.Title)
		assert.Empty(t, slot.Status)
	}
}

func TestRegenerateDay_NextOccurrenceStrictlyInFuture(t *testing.T) {
	tests := []struct {
		name    string
		dayName string
		want    string
	}{
		// now = mercredi 10-01-2024
		{"lendemain", "Thursday", "11-01-2024"},
		{"fin de semaine", "Saturday", "13-01-2024"},
		{"jour déjà passé cette semaine", "Monday", "15-01-2024"},
		{"même jour → semaine suivante, jamais aujourd'hui", "Wednesday", "17-01-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := RegenerateDay(tt.dayName, []string{"08:00"}, anchorWednesday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, day.Date)
			assert.Equal(t, DayFuture, StateOfDay(day.Date, anchorWednesday))
		})
	}
}

func TestRegenerateDay_UnknownDay(t *testing.T) {
	_, err := RegenerateDay("Lundi", []string{"08:00"}, anchorWednesday)
	assert.Error(t, err)
}

func TestStateOfDay(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"09-01-2024", DayPast},
		{"10-01-2024", DayToday},
		{"11-01-2024", DayFuture},
		{"n'importe quoi", DayPast},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StateOfDay(tt.date, anchorWednesday), "date %s", tt.date)
	}
}

func TestHourKey(t *testing.T) {
	assert.Equal(t, "08:00", HourKey(8))
	assert.Equal(t, "00:00", HourKey(0))
	assert.Equal(t, "23:00", HourKey(23))
}
