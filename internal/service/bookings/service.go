package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только владельцу услуги. Истёкшее удержание отдаётся со статусом
// expired, даже если sweeper ещё не успел его зафиксировать
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	if booking.IsHoldExpired(s.timeProvider.Now()) {
		booking.Status = domain.StatusExpired
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListBookings получает бронирования владельца с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду и статусу
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings for owner=%d", req.OwnerID)

	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		s.logger.Warn("ListBookings: invalid period for owner=%d", req.OwnerID)
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid status=%v for owner=%d", req.Status, req.OwnerID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, booking := range bookings {
		if booking.IsHoldExpired(now) {
			booking.Status = domain.StatusExpired
		}
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование владельца услуги
// Отменить можно активное удержание или подтверждённое бронирование.
// Истёкшее удержание фиксируется как expired и отмене не подлежит
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	now := s.timeProvider.Now()

	var holdExpired bool

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if booking.OwnerID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}

		// Замыкание возвращает nil: ошибка откатила бы транзакцию вместе
		// с записью статуса. ErrCannotCancel отдаётся после коммита
		if booking.IsHoldExpired(now) {
			if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusExpired); err != nil {
				s.logger.Error("Cancel: failed to expire booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: Cancel - failed to expire booking: %v", ErrInternal, err)
			}
			s.logger.Warn("Cancel: booking id=%d hold already expired", bookingID)
			holdExpired = true
			return nil
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
	if err != nil {
		return err
	}

	if holdExpired {
		return ErrCannotCancel
	}

	return nil
}

// CancelByOrder каскадно отменяет бронирование по референсу заказа
// Вызывается при отмене или возврате заказа в платёжном провайдере
func (s *Service) CancelByOrder(ctx context.Context, req *models.CancelByOrderRequest) (*models.BookingResponse, error) {
	s.logger.Info("CancelByOrder: cancelling booking by order=%s", req.OrderID)

	if req.OrderID == "" {
		return nil, fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByOrderID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("CancelByOrder: no booking for order=%s", req.OrderID)
				return ErrBookingNotFound
			}
			s.logger.Error("CancelByOrder: repository error for order=%s: %v", req.OrderID, err)
			return fmt.Errorf("%w: CancelByOrder - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("CancelByOrder: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, booking.ID, req.CancellationReason); err != nil {
			s.logger.Error("CancelByOrder: repository error for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: CancelByOrder - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelByOrder: successfully cancelled booking id=%d for order=%s", cancelled.ID, req.OrderID)
	return models.FromDomainBooking(cancelled), nil
}

// CreateBlock создает блокировку интервала владельцем услуги
// Блокировка хранится как подтверждённое бронирование без покупателя и без
// дедлайна удержания. Диапазон произвольный и не обязан совпадать с тайлингом
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BookingResponse, error) {
	s.logger.Info("CreateBlock: blocking [%s, %s) on service=%d by user=%d",
		req.SlotStart.Format(time.RFC3339), req.SlotEnd.Format(time.RFC3339), req.ServiceID, req.UserID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.SlotStart.IsZero() || req.SlotEnd.IsZero() || !req.SlotStart.Before(req.SlotEnd) {
		return nil, fmt.Errorf("%w: slotStart must be before slotEnd", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	service, err := s.scheduleRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateBlock: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateBlock: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateBlock - failed to get service: %v", ErrInternal, err)
	}

	if service.OwnerID != req.UserID {
		s.logger.Warn("CreateBlock: access denied for user=%d to service id=%d", req.UserID, req.ServiceID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()

	var created *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Просроченные удержания помечаем истёкшими, чтобы они не блокировали
		// вставку через частичный уникальный индекс
		if err := s.bookingRepo.ExpireStaleHolds(txCtx, req.ServiceID, now); err != nil {
			s.logger.Error("CreateBlock: failed to expire stale holds: %v", err)
			return fmt.Errorf("%w: CreateBlock - failed to expire stale holds: %v", ErrInternal, err)
		}

		buffer := time.Duration(service.BufferMinutes) * time.Minute
		existing, err := s.bookingRepo.GetBlockingByServiceBetween(
			txCtx, req.ServiceID, req.SlotStart.Add(-buffer), req.SlotEnd.Add(buffer), now)
		if err != nil {
			s.logger.Error("CreateBlock: failed to get bookings: %v", err)
			return fmt.Errorf("%w: CreateBlock - failed to get bookings: %v", ErrInternal, err)
		}

		for _, b := range existing {
			if b.IsBlocking(now) && b.Overlaps(req.SlotStart, req.SlotEnd, service.BufferMinutes) {
				s.logger.Warn("CreateBlock: range conflicts with booking id=%d (status=%s)", b.ID, b.Status)
				return ErrSlotNotAvailable
			}
		}

		block := &domain.Booking{
			ServiceID: req.ServiceID,
			OwnerID:   req.UserID,
			SlotStart: req.SlotStart,
			SlotEnd:   req.SlotEnd,
			Status:    domain.StatusConfirmed,
			Notes:     req.Notes,
		}

		created, err = s.bookingRepo.Create(txCtx, block)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				s.logger.Warn("CreateBlock: lost race for range on service=%d", req.ServiceID)
				return ErrSlotNotAvailable
			}
			s.logger.Error("CreateBlock: failed to create block: %v", err)
			return fmt.Errorf("%w: CreateBlock - failed to create block: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateBlock: block id=%d created for service=%d", created.ID, req.ServiceID)
	return models.FromDomainBooking(created), nil
}

// SweepExpiredHolds фиксирует статус expired у всех удержаний с прошедшим
// дедлайном. Возвращает количество обновлённых строк. Вызывается фоновым
// sweeper-ом; выдача доступности от него не зависит (ленивое истечение)
func (s *Service) SweepExpiredHolds(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	expired, err := s.bookingRepo.ExpireHoldsBefore(ctx, now)
	if err != nil {
		s.logger.Error("SweepExpiredHolds: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpiredHolds - repository error: %v", ErrInternal, err)
	}

	if expired > 0 {
		s.logger.Info("SweepExpiredHolds: marked %d holds as expired", expired)
	}

	return expired, nil
}
