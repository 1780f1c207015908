package domain

import "time"

// Default configuration values
const (
	DefaultHoldTTLMinutes       = 15
	DefaultSweepIntervalSeconds = 60
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 часов
	MinBufferMinutes   = 0
	MaxBufferMinutes   = 240
	MaxRangeDays       = 62 // максимальный диапазон запроса слотов
	MaxNotesLength     = 500
	MaxTitleLength     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых бронирование занимает слот
// Удержания дополнительно фильтруются по hold_expires_at (ленивое истечение)
var BlockingStatuses = []BookingStatus{
	StatusHold,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет дальнейших переходов
var TerminalStatuses = []BookingStatus{
	StatusExpired,
	StatusCancelled,
}

// ValidWeekday проверяет, что день недели в диапазоне 0-6
func ValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}

// ValidTimezone проверяет, что таймзона является корректной IANA зоной
func ValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
