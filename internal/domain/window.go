package domain

import (
	"time"

	"github.com/linkhub/booking-service/pkg/types"
)

// AvailabilityWindow represents a recurring weekly availability rule:
// the owner is bookable on the given weekday between StartTime and EndTime.
// Times are wall-clock values interpreted in the window timezone.
// Multiple windows per weekday are allowed and may overlap; the slot
// resolver deduplicates the resulting slots.
type AvailabilityWindow struct {
	ID        int64
	OwnerID   int64
	Weekday   time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	Timezone  string
	CreatedAt time.Time
}

// MatchesWeekday returns true if the window applies to the given weekday
func (w *AvailabilityWindow) MatchesWeekday(day time.Weekday) bool {
	return w.Weekday == day
}
