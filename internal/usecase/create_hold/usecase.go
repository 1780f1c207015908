package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/linkhub/booking-service/internal/domain"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
	availability "github.com/linkhub/booking-service/internal/usecase/get_available_slots"
)

// UseCase use case для создания удержания слота
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	tokenGen     TokenGenerator
	timeProvider TimeProvider
	holdTTL      time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		tokenGen:     &uuidTokenGenerator{},
		timeProvider: &RealTimeProvider{},
		holdTTL:      holdTTL,
		logger:       logger,
	}
}

// Execute выполняет use case создания удержания
//
// Запрошенный слот ревалидируется на сервере внутри сериализуемой транзакции:
// клиентским границам слота доверять нельзя, два покупателя могли видеть
// одну и ту же устаревшую выдачу доступности. Проигравший гонку получает
// ErrSlotNotAvailable и должен перезапросить слоты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: service=%d, slot=[%s, %s)",
		req.ServiceID, req.SlotStart.Format(time.RFC3339), req.SlotEnd.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.scheduleRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateHold: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateHold: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	loc, err := service.Location()
	if err != nil {
		uc.logger.Error("CreateHold: invalid timezone %q for service id=%d: %v",
			service.Timezone, req.ServiceID, err)
		return nil, ErrInvalidTimezone
	}

	// 4. Проверяем соответствие границ слота длительности услуги
	if err := validateSlotBounds(req, now); err != nil {
		uc.logger.Warn("CreateHold: slot bounds validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Помечаем истёкшими просроченные удержания услуги, чтобы они
		// не блокировали вставку через частичный уникальный индекс
		if err := uc.bookingRepo.ExpireStaleHolds(txCtx, req.ServiceID, now); err != nil {
			uc.logger.Error("CreateHold: failed to expire stale holds: %v", err)
			return fmt.Errorf("%w: failed to expire stale holds: %v", ErrInternal, err)
		}

		// 5.2. Получаем окна доступности владельца
		windows, err := uc.scheduleRepo.GetWindowsByOwner(txCtx, service.OwnerID)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get windows for owner=%d: %v", service.OwnerID, err)
			return fmt.Errorf("%w: failed to get windows: %v", ErrInternal, err)
		}

		// 5.3. Границы дня слота в таймзоне услуги
		slotLocal := req.SlotStart.In(loc)
		dayStart := time.Date(slotLocal.Year(), slotLocal.Month(), slotLocal.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		// 5.4. Ревалидация тайлинга: слот должен точно совпадать со слотом,
		// который резолвер сгенерировал бы без учета занятости
		requested := domain.Slot{Start: req.SlotStart, End: req.SlotEnd}
		tiled := availability.ResolveSlots(service, windows, nil, dayStart, dayEnd, now, loc)
		if !availability.ContainsSlot(tiled, requested) {
			uc.logger.Warn("CreateHold: slot [%s, %s) does not match schedule for service=%d",
				req.SlotStart.Format(time.RFC3339), req.SlotEnd.Format(time.RFC3339), req.ServiceID)
			return ErrInvalidSlot
		}

		// 5.5. Получаем блокирующие бронирования дня с блокировкой FOR UPDATE
		buffer := time.Duration(service.BufferMinutes) * time.Minute
		bookings, err := uc.bookingRepo.GetBlockingByServiceBetween(
			txCtx, req.ServiceID, dayStart.Add(-buffer), dayEnd.Add(buffer), now)
		if err != nil {
			uc.logger.Error("CreateHold: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.6. Проверяем занятость слота
		for _, existing := range bookings {
			if existing.IsBlocking(now) && existing.Overlaps(req.SlotStart, req.SlotEnd, service.BufferMinutes) {
				uc.logger.Warn("CreateHold: slot conflict with booking id=%d (status=%s)",
					existing.ID, existing.Status)
				return ErrSlotNotAvailable
			}
		}

		// 5.7. Создаем удержание
		token := uc.tokenGen.Generate()
		expiresAt := now.Add(uc.holdTTL)

		booking := &domain.Booking{
			ServiceID:     req.ServiceID,
			OwnerID:       service.OwnerID,
			SlotStart:     req.SlotStart,
			SlotEnd:       req.SlotEnd,
			Status:        domain.StatusHold,
			HoldExpiresAt: &expiresAt,
			HoldToken:     &token,
			BuyerEmail:    req.BuyerEmail,
			BuyerName:     req.BuyerName,
			BuyerPhone:    req.BuyerPhone,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Конкурирующая транзакция успела вставить удержание на этот слот
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateHold: lost race for slot [%s, %s) on service=%d",
					req.SlotStart.Format(time.RFC3339), req.SlotEnd.Format(time.RFC3339), req.ServiceID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateHold: hold id=%d created for service=%d, expires at %s",
		result.ID, req.ServiceID, result.HoldExpiresAt.Format(time.RFC3339))

	return &Response{
		ID:            result.ID,
		ServiceID:     result.ServiceID,
		SlotStart:     result.SlotStart,
		SlotEnd:       result.SlotEnd,
		Status:        string(result.Status),
		HoldToken:     *result.HoldToken,
		HoldExpiresAt: *result.HoldExpiresAt,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// uuidTokenGenerator генерирует hold-токены как случайные UUID
// Токен действует как bearer-credential на одно бронирование и не должен
// выводиться из числового id
type uuidTokenGenerator struct{}

func (g *uuidTokenGenerator) Generate() string {
	return uuid.NewString()
}
