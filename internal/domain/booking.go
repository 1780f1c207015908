package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	// StatusHold слот временно удержан покупателем на время оформления заказа
	StatusHold BookingStatus = "hold"
	// StatusConfirmed бронирование подтверждено (оплачено или создано владельцем как блокировка)
	StatusConfirmed BookingStatus = "confirmed"
	// StatusExpired удержание истекло без подтверждения
	StatusExpired BookingStatus = "expired"
	// StatusCancelled бронирование отменено покупателем или владельцем
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of one time slot of a bookable service.
// A booking starts as a hold with an expiry deadline and either gets
// confirmed by a successful payment or falls back into the pool.
// Owner-created blocks are confirmed bookings with no buyer fields.
type Booking struct {
	ID        int64
	ServiceID int64
	OwnerID   int64

	SlotStart time.Time
	SlotEnd   time.Time

	Status        BookingStatus
	HoldExpiresAt *time.Time
	HoldToken     *string
	OrderID       *string

	BuyerEmail *string
	BuyerName  *string
	BuyerPhone *string
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking removes its slot from availability
// at the given moment. Expired holds stop blocking even before the sweeper
// persists their expired status (lazy expiry).
func (b *Booking) IsBlocking(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusHold:
		return b.HoldExpiresAt != nil && b.HoldExpiresAt.After(now)
	default:
		return false
	}
}

// IsHoldExpired returns true if the booking is a hold whose deadline passed
func (b *Booking) IsHoldExpired(now time.Time) bool {
	return b.Status == StatusHold && b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now)
}

// CanBeConfirmed returns true if the booking is an unexpired hold
func (b *Booking) CanBeConfirmed(now time.Time) bool {
	return b.Status == StatusHold && b.HoldExpiresAt != nil && b.HoldExpiresAt.After(now)
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusHold || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
// (confirmed is not terminal: it can still be cancelled on refund)
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusExpired || b.Status == StatusCancelled
}

// IsBlock returns true for owner-created blocks (no buyer attached)
func (b *Booking) IsBlock() bool {
	return b.Status == StatusConfirmed && b.BuyerEmail == nil && b.HoldToken == nil
}

// Overlaps reports whether [start, end) intersects the booking slot
// expanded by buffer minutes on both sides. Touching boundaries do not count.
func (b *Booking) Overlaps(start, end time.Time, bufferMinutes int) bool {
	buffer := time.Duration(bufferMinutes) * time.Minute
	blockedStart := b.SlotStart.Add(-buffer)
	blockedEnd := b.SlotEnd.Add(buffer)
	return start.Before(blockedEnd) && end.After(blockedStart)
}

// OwnerBookingsFilter фильтр для получения бронирований владельца
type OwnerBookingsFilter struct {
	OwnerID   int64          // Обязательный параметр
	ServiceID *int64         // Фильтр по услуге (опционально)
	From      *time.Time     // Начало периода (опционально)
	To        *time.Time     // Конец периода (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
	Limit     int
	Offset    int
}
