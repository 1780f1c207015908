package domain

import "time"

// Slot represents a bookable time slot produced by the availability resolver
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Equal reports whether both boundaries match exactly
func (s Slot) Equal(other Slot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}
