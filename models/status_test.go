package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flotahub/fleet-api/models"
)

var statusToday = time.Date(2025, 3, 15, 13, 45, 12, 0, time.UTC)

func dateOffset(days int) string {
	return statusToday.AddDate(0, 0, days).Format(models.DateLayout)
}

func TestStatusForDateBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{-30, models.StatusExpired},
		{-1, models.StatusExpired},
		{0, models.StatusUrgent},
		{1, models.StatusUrgent},
		{7, models.StatusUrgent},
		{8, models.StatusWarning},
		{30, models.StatusWarning},
		{31, models.StatusOK},
		{400, models.StatusOK},
	}

	for _, c := range cases {
		got, err := models.StatusForDate(dateOffset(c.days), statusToday)
		assert.NoError(t, err)
		assert.Equalf(t, c.want, got, "diff of %d days", c.days)
	}
}

func TestStatusForDateIgnoresTimeOfDay(t *testing.T) {
	// same calendar day, different clock times must classify identically
	morning := time.Date(2025, 3, 15, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC)

	a, err := models.StatusForDate("2025-03-22", morning)
	assert.NoError(t, err)
	b, err := models.StatusForDate("2025-03-22", evening)
	assert.NoError(t, err)

	assert.Equal(t, models.StatusUrgent, a)
	assert.Equal(t, a, b)
}

func TestStatusForDateInvalidDate(t *testing.T) {
	_, err := models.StatusForDate("15.03.2025", statusToday)
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)

	_, err = models.DaysUntil("", statusToday)
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)
}

func TestDaysUntil(t *testing.T) {
	days, err := models.DaysUntil("2025-03-20", statusToday)
	assert.NoError(t, err)
	assert.Equal(t, 5, days)

	days, err = models.DaysUntil("2025-03-10", statusToday)
	assert.NoError(t, err)
	assert.Equal(t, -5, days)
}

func TestStatusColorCoversAllBuckets(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []string{models.StatusOK, models.StatusWarning, models.StatusUrgent, models.StatusExpired} {
		c := models.StatusColor(s)
		assert.NotEmpty(t, c)
		assert.False(t, seen[c], "colors must be distinct")
		seen[c] = true
	}
}
