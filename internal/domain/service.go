package domain

import "time"

// BookableService represents a bookable offering of a storefront owner:
// a service sold by the slot (consultation, lesson, shoot)
type BookableService struct {
	ID              int64
	OwnerID         int64
	Title           string
	DurationMinutes int
	BufferMinutes   int
	Timezone        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SlotStep returns the tiling step in minutes: slot duration plus buffer
func (s *BookableService) SlotStep() int {
	return s.DurationMinutes + s.BufferMinutes
}

// Location загружает IANA таймзону услуги
func (s *BookableService) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}
