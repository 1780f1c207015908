package models

import (
	"errors"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// CancelByOrderRequest запрос на каскадную отмену по референсу заказа
type CancelByOrderRequest struct {
	OrderID            string `json:"orderId"`
	CancellationReason string `json:"cancellationReason"`
}

// ListBookingsRequest запрос на получение бронирований владельца
type ListBookingsRequest struct {
	OwnerID   int64      `json:"ownerId"`
	ServiceID *int64     `json:"serviceId,omitempty"` // Фильтр по услуге (опционально)
	From      *time.Time `json:"from,omitempty"`      // Начало периода (опционально)
	To        *time.Time `json:"to,omitempty"`        // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.OwnerBookingsFilter, error) {
	filter := domain.OwnerBookingsFilter{
		OwnerID:   r.OwnerID,
		ServiceID: r.ServiceID,
		From:      r.From,
		To:        r.To,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CreateBlockRequest запрос владельца на блокировку интервала
type CreateBlockRequest struct {
	UserID    int64     `json:"userId"`
	ServiceID int64     `json:"serviceId"`
	SlotStart time.Time `json:"slotStart"`
	SlotEnd   time.Time `json:"slotEnd"`
	Notes     *string   `json:"notes,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
// hold_token намеренно отсутствует: токен выдаётся только при создании удержания
type BookingResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"serviceId"`
	OwnerID   int64  `json:"ownerId"`
	SlotStart string `json:"slotStart"` // ISO 8601
	SlotEnd   string `json:"slotEnd"`   // ISO 8601
	Status    string `json:"status"`

	HoldExpiresAt *string `json:"holdExpiresAt,omitempty"` // ISO 8601
	OrderID       *string `json:"orderId,omitempty"`

	BuyerEmail *string `json:"buyerEmail,omitempty"`
	BuyerName  *string `json:"buyerName,omitempty"`
	BuyerPhone *string `json:"buyerPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ServiceID:          b.ServiceID,
		OwnerID:            b.OwnerID,
		SlotStart:          b.SlotStart.Format(time.RFC3339),
		SlotEnd:            b.SlotEnd.Format(time.RFC3339),
		Status:             string(b.Status),
		OrderID:            b.OrderID,
		BuyerEmail:         b.BuyerEmail,
		BuyerName:          b.BuyerName,
		BuyerPhone:         b.BuyerPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.HoldExpiresAt != nil {
		expiresStr := b.HoldExpiresAt.Format(time.RFC3339)
		resp.HoldExpiresAt = &expiresStr
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusHold,
		domain.StatusConfirmed,
		domain.StatusExpired,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
