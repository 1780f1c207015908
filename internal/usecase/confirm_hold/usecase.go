package confirm_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkhub/booking-service/internal/domain"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	"github.com/linkhub/booking-service/internal/integrations/payments"
)

// UseCase use case для подтверждения удержания слота
type UseCase struct {
	bookingRepo  BookingRepository
	payments     PaymentsClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// paymentsClient может быть nil, тогда проверка оплаты пропускается
func NewUseCase(
	bookingRepo BookingRepository,
	paymentsClient PaymentsClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		payments:     paymentsClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения удержания
//
// Токен сверяется до любых изменений состояния: неверный токен не должен
// ни подтверждать, ни истекать удержание. Проверка оплаты выполняется
// до открытия транзакции, чтобы не держать блокировку строки на время
// сетевого вызова.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmHold: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем оплату заказа, если передан референс
	if req.OrderReference != nil {
		if err := uc.verifyOrder(ctx, *req.OrderReference); err != nil {
			return nil, err
		}
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking
	var holdExpired bool

	// 3. Выполняем переход состояния в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой FOR UPDATE
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmHold: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmHold: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Сверяем токен до любых изменений
		if booking.HoldToken == nil || *booking.HoldToken != req.HoldToken {
			uc.logger.Warn("ConfirmHold: invalid token for booking id=%d", req.BookingID)
			return ErrInvalidToken
		}

		// 3.3. Подтверждать можно только активное удержание
		if booking.Status != domain.StatusHold {
			uc.logger.Warn("ConfirmHold: booking id=%d has status %s", req.BookingID, booking.Status)
			return ErrNotHold
		}

		// 3.4. Истёкшее удержание фиксируем как expired
		// Замыкание возвращает nil: ошибка откатила бы транзакцию вместе
		// с записью статуса. ErrHoldExpired отдаётся после коммита
		if booking.IsHoldExpired(now) {
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusExpired); err != nil {
				uc.logger.Error("ConfirmHold: failed to expire booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to expire booking: %v", ErrInternal, err)
			}
			uc.logger.Info("ConfirmHold: hold id=%d expired at %s", booking.ID, booking.HoldExpiresAt)
			holdExpired = true
			return nil
		}

		// 3.5. Подтверждаем удержание
		if err := uc.bookingRepo.Confirm(txCtx, booking.ID, req.OrderReference); err != nil {
			uc.logger.Error("ConfirmHold: failed to confirm booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.HoldExpiresAt = nil
		booking.OrderID = req.OrderReference
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if holdExpired {
		return nil, ErrHoldExpired
	}

	uc.logger.Info("ConfirmHold: booking id=%d confirmed", result.ID)

	return &Response{
		ID:        result.ID,
		ServiceID: result.ServiceID,
		SlotStart: result.SlotStart,
		SlotEnd:   result.SlotEnd,
		Status:    string(result.Status),
		OrderID:   result.OrderID,
		UpdatedAt: now,
	}, nil
}

// verifyOrder проверяет статус оплаты заказа у платёжного провайдера
func (uc *UseCase) verifyOrder(ctx context.Context, reference string) error {
	if uc.payments == nil {
		uc.logger.Warn("ConfirmHold: payments verification disabled, skipping order %s", reference)
		return nil
	}

	order, err := uc.payments.VerifyOrder(ctx, reference)
	if err != nil {
		if errors.Is(err, payments.ErrOrderNotFound) {
			uc.logger.Warn("ConfirmHold: order %s not found at provider", reference)
			return ErrOrderNotPaid
		}
		uc.logger.Error("ConfirmHold: failed to verify order %s: %v", reference, err)
		return fmt.Errorf("%w: failed to verify order: %v", ErrInternal, err)
	}

	if !order.IsPaid() {
		uc.logger.Warn("ConfirmHold: order %s has status %s", reference, order.Status)
		return ErrOrderNotPaid
	}

	return nil
}
