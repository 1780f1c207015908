package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, from=%s, to=%s",
		req.ServiceID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.scheduleRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Загружаем таймзону услуги
	loc, err := service.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone %q for service id=%d: %v",
			service.Timezone, req.ServiceID, err)
		return nil, ErrInvalidTimezone
	}

	// 5. Получаем окна доступности владельца
	windows, err := uc.scheduleRepo.GetWindowsByOwner(ctx, service.OwnerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for owner=%d: %v", service.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
	}

	// Пустое расписание - не ошибка, просто нет слотов
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: owner=%d has no availability windows", service.OwnerID)
		return uc.emptyResponse(req, service.Timezone, now), nil
	}

	// 6. Получаем блокирующие бронирования
	// Диапазон выборки расширен на буфер с обеих сторон: бронирование за
	// пределами диапазона может блокировать граничный слот своим буфером
	buffer := time.Duration(service.BufferMinutes) * time.Minute
	bookings, err := uc.bookingRepo.GetBlockingByServiceBetween(
		ctx, req.ServiceID, req.From.Add(-buffer), req.To.Add(buffer), now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты
	slots := ResolveSlots(service, windows, bookings, req.From, req.To, now, loc)

	uc.logger.Info("GetAvailableSlots: resolved %d slots for service=%d", len(slots), req.ServiceID)

	return &Response{
		ServiceID: req.ServiceID,
		From:      clampToNow(req.From, now),
		To:        req.To,
		Timezone:  service.Timezone,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, timezone string, now time.Time) *Response {
	return &Response{
		ServiceID: req.ServiceID,
		From:      clampToNow(req.From, now),
		To:        req.To,
		Timezone:  timezone,
		Slots:     nil,
	}
}

// clampToNow не позволяет началу диапазона оказаться в прошлом
func clampToNow(from, now time.Time) time.Time {
	if from.Before(now) {
		return now
	}
	return from
}
