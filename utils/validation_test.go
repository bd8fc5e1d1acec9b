package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateJour(t *testing.T) {
	assert.NoError(t, ValidateJour("2026-02-14"))
	assert.Error(t, ValidateJour("14/02/2026"))
	assert.Error(t, ValidateJour("2026-13-01"))
	assert.Error(t, ValidateJour(""))
}

func TestValidateHeure(t *testing.T) {
	assert.NoError(t, ValidateHeure("09:30"))
	assert.NoError(t, ValidateHeure("23:59"))
	assert.Error(t, ValidateHeure("9h30"))
	assert.Error(t, ValidateHeure("25:00"))
}

func TestSlotInPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	assert.True(t, SlotInPast("2026-03-10", "11:59", now))
	assert.False(t, SlotInPast("2026-03-10", "12:01", now))
	assert.False(t, SlotInPast("2026-03-11", "08:00", now))
	// Malformed values count as past.
	assert.True(t, SlotInPast("pas-une-date", "12:00", now))
}

func TestJourInPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.Local)

	assert.True(t, JourInPast("2026-03-09", now))
	assert.False(t, JourInPast("2026-03-10", now))
	assert.False(t, JourInPast("2026-03-11", now))
}
