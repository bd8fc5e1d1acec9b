package utils

import (
	"errors"
	"time"
)

const (
	JourLayout  = "2006-01-02"
	HeureLayout = "15:04"
)

// ValidateJour checks the ISO date format used by rendez-vous days.
func ValidateJour(value interface{}) error {
	jour, _ := value.(string)
	if _, err := time.Parse(JourLayout, jour); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateHeure checks the HH:MM format used by rendez-vous times.
func ValidateHeure(value interface{}) error {
	heure, _ := value.(string)
	if _, err := time.Parse(HeureLayout, heure); err != nil {
		return errors.New("must be a time in HH:MM format")
	}
	return nil
}

// SlotInPast reports whether the (jour, heure) slot is strictly before now.
// Unparseable values count as past so malformed rows cannot dodge the rule.
func SlotInPast(jour, heure string, now time.Time) bool {
	slot, err := time.ParseInLocation(JourLayout+" "+HeureLayout, jour+" "+heure, now.Location())
	if err != nil {
		return true
	}
	return slot.Before(now)
}

// JourInPast reports whether the day is strictly before today.
func JourInPast(jour string, now time.Time) bool {
	day, err := time.ParseInLocation(JourLayout, jour, now.Location())
	if err != nil {
		return true
	}
	today, _ := time.ParseInLocation(JourLayout, now.Format(JourLayout), now.Location())
	return day.Before(today)
}
