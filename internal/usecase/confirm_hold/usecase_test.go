package confirm_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linkhub/booking-service/internal/domain"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	"github.com/linkhub/booking-service/internal/integrations/payments"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Confirm(ctx context.Context, id int64, orderID *string) error {
	args := m.Called(ctx, id, orderID)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPaymentsClient struct {
	mock.Mock
}

func (m *MockPaymentsClient) VerifyOrder(ctx context.Context, reference string) (*payments.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Order), args.Error(1)
}

// fakeTxManager выполняет функцию без реальной транзакции, но моделирует
// семантику коммита: ошибка из замыкания означает откат всех записей
type fakeTxManager struct {
	commits   int
	rollbacks int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// fixedTimeProvider возвращает фиксированное время
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// Тестовые данные

var testNow = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func activeHold() *domain.Booking {
	expiry := testNow.Add(10 * time.Minute)
	token := "token-123"
	return &domain.Booking{
		ID:            42,
		ServiceID:     1,
		OwnerID:       10,
		SlotStart:     testNow.Add(time.Hour),
		SlotEnd:       testNow.Add(90 * time.Minute),
		Status:        domain.StatusHold,
		HoldExpiresAt: &expiry,
		HoldToken:     &token,
	}
}

func newTestUseCase(bookingMock *MockBookingRepository, paymentsClient PaymentsClient) *UseCase {
	uc := NewUseCase(bookingMock, paymentsClient, &fakeTxManager{}, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// Тесты

func TestConfirmHold_Success(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(42)).Return(activeHold(), nil)
	bookingMock.On("Confirm", mock.Anything, int64(42), (*string)(nil)).Return(nil)

	uc := newTestUseCase(bookingMock, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		HoldToken: "token-123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.OrderID)
	bookingMock.AssertExpectations(t)
}

func TestConfirmHold_InvalidTokenLeavesStateUntouched(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(42)).Return(activeHold(), nil)

	uc := newTestUseCase(bookingMock, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		HoldToken: "wrong-token",
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
	// Неверный токен не должен ни подтверждать, ни истекать удержание
	bookingMock.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	bookingMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmHold_ExpiredHoldMarkedExpired(t *testing.T) {
	booking := activeHold()
	expired := testNow.Add(-1 * time.Minute)
	booking.HoldExpiresAt = &expired

	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)
	bookingMock.On("UpdateStatus", mock.Anything, int64(42), domain.StatusExpired).Return(nil)

	txMgr := &fakeTxManager{}
	uc := NewUseCase(bookingMock, nil, txMgr, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		HoldToken: "token-123",
	})

	assert.ErrorIs(t, err, ErrHoldExpired)
	bookingMock.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	bookingMock.AssertExpectations(t)
	// Запись статуса должна пережить транзакцию: откат потерял бы её
	assert.Equal(t, 1, txMgr.commits)
	assert.Equal(t, 0, txMgr.rollbacks)
}

func TestConfirmHold_AlreadyConfirmed(t *testing.T) {
	booking := activeHold()
	booking.Status = domain.StatusConfirmed
	booking.HoldExpiresAt = nil

	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(42)).Return(booking, nil)

	uc := newTestUseCase(bookingMock, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		HoldToken: "token-123",
	})

	assert.ErrorIs(t, err, ErrNotHold)
}

func TestConfirmHold_BookingNotFound(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(99)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := newTestUseCase(bookingMock, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 99,
		HoldToken: "token-123",
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmHold_PaidOrderLinked(t *testing.T) {
	orderRef := "order-777"

	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(42)).Return(activeHold(), nil)
	bookingMock.On("Confirm", mock.Anything, int64(42), &orderRef).Return(nil)

	paymentsMock := &MockPaymentsClient{}
	paymentsMock.On("VerifyOrder", mock.Anything, "order-777").Return(&payments.Order{
		Reference: "order-777",
		Status:    payments.OrderStatusPaid,
	}, nil)

	uc := newTestUseCase(bookingMock, paymentsMock)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:      42,
		HoldToken:      "token-123",
		OrderReference: &orderRef,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.OrderID)
	assert.Equal(t, "order-777", *resp.OrderID)
	paymentsMock.AssertExpectations(t)
	bookingMock.AssertExpectations(t)
}

func TestConfirmHold_UnpaidOrderRejected(t *testing.T) {
	orderRef := "order-777"

	bookingMock := &MockBookingRepository{}

	paymentsMock := &MockPaymentsClient{}
	paymentsMock.On("VerifyOrder", mock.Anything, "order-777").Return(&payments.Order{
		Reference: "order-777",
		Status:    payments.OrderStatusPending,
	}, nil)

	uc := newTestUseCase(bookingMock, paymentsMock)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:      42,
		HoldToken:      "token-123",
		OrderReference: &orderRef,
	})

	assert.ErrorIs(t, err, ErrOrderNotPaid)
	bookingMock.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmHold_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&MockBookingRepository{}, nil)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, HoldToken: "t"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, HoldToken: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
