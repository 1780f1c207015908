package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linkhub/booking-service/internal/domain"
	bookingRepo "github.com/linkhub/booking-service/internal/infra/storage/booking"
	"github.com/linkhub/booking-service/internal/service/bookings/models"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByOwnerWithFilter(ctx context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBlockingByServiceBetween(ctx context.Context, serviceID int64, from, to time.Time, now time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, serviceID, from, to, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) ExpireHoldsBefore(ctx context.Context, deadline time.Time) (int64, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) ExpireStaleHolds(ctx context.Context, serviceID int64, now time.Time) error {
	args := m.Called(ctx, serviceID, now)
	return args.Error(0)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookableService), args.Error(1)
}

// fakeTxManager выполняет функции без реальных транзакций, но моделирует
// семантику коммита: ошибка из замыкания означает откат всех записей
type fakeTxManager struct {
	commits   int
	rollbacks int
}

func (f *fakeTxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.run(ctx, fn)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.run(ctx, fn)
}

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

const (
	ownerID    = int64(10)
	strangerID = int64(99)
)

func newTestService(bookingMock *MockBookingRepository, scheduleMock *MockScheduleRepository) *Service {
	svc := NewService(bookingMock, scheduleMock, &fakeTxManager{}, &noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:        7,
		ServiceID: 1,
		OwnerID:   ownerID,
		SlotStart: testNow.Add(2 * time.Hour),
		SlotEnd:   testNow.Add(3 * time.Hour),
		Status:    domain.StatusConfirmed,
	}
}

func activeHold() *domain.Booking {
	expiry := testNow.Add(10 * time.Minute)
	token := "token-123"
	b := confirmedBooking()
	b.Status = domain.StatusHold
	b.HoldExpiresAt = &expiry
	b.HoldToken = &token
	return b
}

func expiredHold() *domain.Booking {
	b := activeHold()
	expiry := testNow.Add(-1 * time.Minute)
	b.HoldExpiresAt = &expiry
	return b
}

// GetByID

func TestGetByID_Success(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	resp, err := svc.GetByID(context.Background(), 7, ownerID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestGetByID_AccessDenied(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	_, err := svc.GetByID(context.Background(), 7, strangerID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_ExpiredHoldShownAsExpired(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(expiredHold(), nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	resp, err := svc.GetByID(context.Background(), 7, ownerID)

	require.NoError(t, err)
	// Ленивое истечение: статус в выдаче expired, даже если sweeper не успел
	assert.Equal(t, string(domain.StatusExpired), resp.Status)
	bookingMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(404)).Return(nil, bookingRepo.ErrBookingNotFound)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	_, err := svc.GetByID(context.Background(), 404, ownerID)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// ListBookings

func TestListBookings_Success(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByOwnerWithFilter", mock.Anything, mock.MatchedBy(func(f domain.OwnerBookingsFilter) bool {
		return f.OwnerID == ownerID && f.Status != nil && *f.Status == domain.StatusConfirmed
	})).Return([]*domain.Booking{confirmedBooking()}, nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	status := "confirmed"
	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		OwnerID: ownerID,
		Status:  &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(7), resp.Bookings[0].ID)
}

func TestListBookings_InvalidPeriod(t *testing.T) {
	svc := newTestService(&MockBookingRepository{}, &MockScheduleRepository{})

	from := testNow.Add(time.Hour)
	to := testNow
	_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		OwnerID: ownerID,
		From:    &from,
		To:      &to,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&MockBookingRepository{}, &MockScheduleRepository{})

	status := "pending"
	_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		OwnerID: ownerID,
		Status:  &status,
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListBookings_ExpiredHoldsShownAsExpired(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByOwnerWithFilter", mock.Anything, mock.Anything).
		Return([]*domain.Booking{expiredHold(), confirmedBooking()}, nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{OwnerID: ownerID})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, string(domain.StatusExpired), resp.Bookings[0].Status)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Bookings[1].Status)
}

// Cancel

func TestCancel_ConfirmedBooking(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)
	bookingMock.On("Cancel", mock.Anything, int64(7), "клиент попросил перенести").Return(nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "клиент попросил перенести",
	})

	require.NoError(t, err)
	bookingMock.AssertExpectations(t)
}

func TestCancel_ActiveHold(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(activeHold(), nil)
	bookingMock.On("Cancel", mock.Anything, int64(7), "").Return(nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: ownerID})

	require.NoError(t, err)
}

func TestCancel_ExpiredHoldPersistedAndRefused(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(expiredHold(), nil)
	bookingMock.On("UpdateStatus", mock.Anything, int64(7), domain.StatusExpired).Return(nil)

	txMgr := &fakeTxManager{}
	svc := NewService(bookingMock, &MockScheduleRepository{}, txMgr, &noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: ownerID})

	assert.ErrorIs(t, err, ErrCannotCancel)
	bookingMock.AssertExpectations(t)
	bookingMock.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	// Запись статуса должна пережить транзакцию: откат потерял бы её
	assert.Equal(t, 1, txMgr.commits)
	assert.Equal(t, 0, txMgr.rollbacks)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled

	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: ownerID})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessDenied(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByID", mock.Anything, int64(7)).Return(confirmedBooking(), nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: strangerID})

	assert.ErrorIs(t, err, ErrAccessDenied)
	bookingMock.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

// CancelByOrder

func TestCancelByOrder_Success(t *testing.T) {
	orderID := "order-777"
	booking := confirmedBooking()
	booking.OrderID = &orderID

	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByOrderID", mock.Anything, "order-777").Return(booking, nil)
	bookingMock.On("Cancel", mock.Anything, int64(7), "возврат заказа").Return(nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	resp, err := svc.CancelByOrder(context.Background(), &models.CancelByOrderRequest{
		OrderID:            "order-777",
		CancellationReason: "возврат заказа",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	bookingMock.AssertExpectations(t)
}

func TestCancelByOrder_NotFound(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("GetByOrderID", mock.Anything, "order-000").Return(nil, bookingRepo.ErrBookingNotFound)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	_, err := svc.CancelByOrder(context.Background(), &models.CancelByOrderRequest{OrderID: "order-000"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByOrder_EmptyOrderID(t *testing.T) {
	svc := newTestService(&MockBookingRepository{}, &MockScheduleRepository{})

	_, err := svc.CancelByOrder(context.Background(), &models.CancelByOrderRequest{OrderID: ""})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// CreateBlock

func blockRequest() *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:    ownerID,
		ServiceID: 1,
		SlotStart: testNow.Add(24 * time.Hour),
		SlotEnd:   testNow.Add(26 * time.Hour),
	}
}

func bookableService() *domain.BookableService {
	return &domain.BookableService{
		ID:              1,
		OwnerID:         ownerID,
		Title:           "Консультация",
		DurationMinutes: 60,
		BufferMinutes:   15,
		Timezone:        "Europe/Moscow",
	}
}

func TestCreateBlock_Success(t *testing.T) {
	scheduleMock := &MockScheduleRepository{}
	scheduleMock.On("GetServiceByID", mock.Anything, int64(1)).Return(bookableService(), nil)

	bookingMock := &MockBookingRepository{}
	bookingMock.On("ExpireStaleHolds", mock.Anything, int64(1), testNow).Return(nil)
	bookingMock.On("GetBlockingByServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything, testNow).
		Return([]*domain.Booking{}, nil)
	bookingMock.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed &&
			b.HoldToken == nil && b.HoldExpiresAt == nil && b.BuyerEmail == nil
	})).Return(&domain.Booking{
		ID:        15,
		ServiceID: 1,
		OwnerID:   ownerID,
		SlotStart: testNow.Add(24 * time.Hour),
		SlotEnd:   testNow.Add(26 * time.Hour),
		Status:    domain.StatusConfirmed,
	}, nil)

	svc := newTestService(bookingMock, scheduleMock)

	resp, err := svc.CreateBlock(context.Background(), blockRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	bookingMock.AssertExpectations(t)
}

func TestCreateBlock_OverlapWithConfirmed(t *testing.T) {
	scheduleMock := &MockScheduleRepository{}
	scheduleMock.On("GetServiceByID", mock.Anything, int64(1)).Return(bookableService(), nil)

	existing := confirmedBooking()
	existing.SlotStart = testNow.Add(25 * time.Hour)
	existing.SlotEnd = testNow.Add(25*time.Hour + 30*time.Minute)

	bookingMock := &MockBookingRepository{}
	bookingMock.On("ExpireStaleHolds", mock.Anything, int64(1), testNow).Return(nil)
	bookingMock.On("GetBlockingByServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything, testNow).
		Return([]*domain.Booking{existing}, nil)

	svc := newTestService(bookingMock, scheduleMock)

	_, err := svc.CreateBlock(context.Background(), blockRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	bookingMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBlock_LostInsertRace(t *testing.T) {
	scheduleMock := &MockScheduleRepository{}
	scheduleMock.On("GetServiceByID", mock.Anything, int64(1)).Return(bookableService(), nil)

	bookingMock := &MockBookingRepository{}
	bookingMock.On("ExpireStaleHolds", mock.Anything, int64(1), testNow).Return(nil)
	bookingMock.On("GetBlockingByServiceBetween", mock.Anything, int64(1), mock.Anything, mock.Anything, testNow).
		Return([]*domain.Booking{}, nil)
	bookingMock.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrSlotTaken)

	svc := newTestService(bookingMock, scheduleMock)

	_, err := svc.CreateBlock(context.Background(), blockRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateBlock_AccessDenied(t *testing.T) {
	scheduleMock := &MockScheduleRepository{}
	scheduleMock.On("GetServiceByID", mock.Anything, int64(1)).Return(bookableService(), nil)

	svc := newTestService(&MockBookingRepository{}, scheduleMock)

	req := blockRequest()
	req.UserID = strangerID
	_, err := svc.CreateBlock(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateBlock_InvalidRange(t *testing.T) {
	svc := newTestService(&MockBookingRepository{}, &MockScheduleRepository{})

	req := blockRequest()
	req.SlotStart, req.SlotEnd = req.SlotEnd, req.SlotStart
	_, err := svc.CreateBlock(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// SweepExpiredHolds

func TestSweepExpiredHolds_ReturnsCount(t *testing.T) {
	bookingMock := &MockBookingRepository{}
	bookingMock.On("ExpireHoldsBefore", mock.Anything, testNow).Return(int64(3), nil)

	svc := newTestService(bookingMock, &MockScheduleRepository{})

	expired, err := svc.SweepExpiredHolds(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
