package schedule

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linkhub/booking-service/internal/domain"
	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
	"github.com/linkhub/booking-service/internal/service/schedule/models"
	"github.com/linkhub/booking-service/pkg/types"
)

// Mock структуры

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) CreateService(ctx context.Context, service *domain.BookableService) (*domain.BookableService, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookableService), args.Error(1)
}

func (m *MockScheduleRepository) GetServiceByID(ctx context.Context, id int64) (*domain.BookableService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookableService), args.Error(1)
}

func (m *MockScheduleRepository) CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityWindow), args.Error(1)
}

func (m *MockScheduleRepository) GetWindowsByOwner(ctx context.Context, ownerID int64) ([]*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AvailabilityWindow), args.Error(1)
}

func (m *MockScheduleRepository) DeleteWindow(ctx context.Context, id int64, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// CreateService

func validServiceRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		OwnerID:         10,
		Title:           "Консультация",
		DurationMinutes: 60,
		BufferMinutes:   15,
		Timezone:        "Europe/Moscow",
	}
}

func TestCreateService_Success(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("CreateService", mock.Anything, mock.MatchedBy(func(s *domain.BookableService) bool {
		return s.OwnerID == 10 && s.Title == "Консультация" && s.DurationMinutes == 60
	})).Return(&domain.BookableService{
		ID:              1,
		OwnerID:         10,
		Title:           "Консультация",
		DurationMinutes: 60,
		BufferMinutes:   15,
		Timezone:        "Europe/Moscow",
	}, nil)

	svc := NewService(repoMock, &noopLogger{})

	resp, err := svc.CreateService(context.Background(), validServiceRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	repoMock.AssertExpectations(t)
}

func TestCreateService_TrimsTitle(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("CreateService", mock.Anything, mock.MatchedBy(func(s *domain.BookableService) bool {
		return s.Title == "Фотосессия"
	})).Return(&domain.BookableService{ID: 2, OwnerID: 10, Title: "Фотосессия"}, nil)

	svc := NewService(repoMock, &noopLogger{})

	req := validServiceRequest()
	req.Title = "  Фотосессия  "
	_, err := svc.CreateService(context.Background(), req)

	require.NoError(t, err)
	repoMock.AssertExpectations(t)
}

func TestCreateService_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateServiceRequest)
	}{
		{"empty title", func(r *models.CreateServiceRequest) { r.Title = "   " }},
		{"title too long", func(r *models.CreateServiceRequest) { r.Title = strings.Repeat("x", domain.MaxTitleLength+1) }},
		{"duration too short", func(r *models.CreateServiceRequest) { r.DurationMinutes = domain.MinDurationMinutes - 1 }},
		{"duration too long", func(r *models.CreateServiceRequest) { r.DurationMinutes = domain.MaxDurationMinutes + 1 }},
		{"negative buffer", func(r *models.CreateServiceRequest) { r.BufferMinutes = -1 }},
		{"buffer too long", func(r *models.CreateServiceRequest) { r.BufferMinutes = domain.MaxBufferMinutes + 1 }},
		{"empty timezone", func(r *models.CreateServiceRequest) { r.Timezone = "" }},
		{"bad timezone", func(r *models.CreateServiceRequest) { r.Timezone = "Mars/Olympus" }},
		{"zero owner", func(r *models.CreateServiceRequest) { r.OwnerID = 0 }},
	}

	svc := NewService(&MockScheduleRepository{}, &noopLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validServiceRequest()
			tt.mutate(req)

			_, err := svc.CreateService(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// GetService

func TestGetService_NotFound(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("GetServiceByID", mock.Anything, int64(404)).Return(nil, scheduleRepo.ErrServiceNotFound)

	svc := NewService(repoMock, &noopLogger{})

	_, err := svc.GetService(context.Background(), 404)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// CreateWindow

func validWindowRequest() *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		OwnerID:   10,
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "18:00",
		Timezone:  "Europe/Moscow",
	}
}

func TestCreateWindow_Success(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("CreateWindow", mock.Anything, mock.MatchedBy(func(w *domain.AvailabilityWindow) bool {
		return w.OwnerID == 10 &&
			w.Weekday == time.Monday &&
			w.StartTime == types.TimeString("09:00") &&
			w.EndTime == types.TimeString("18:00")
	})).Return(&domain.AvailabilityWindow{
		ID:        5,
		OwnerID:   10,
		Weekday:   time.Monday,
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("18:00"),
		Timezone:  "Europe/Moscow",
	}, nil)

	svc := NewService(repoMock, &noopLogger{})

	resp, err := svc.CreateWindow(context.Background(), validWindowRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, 1, resp.Weekday)
	assert.Equal(t, "09:00", resp.StartTime)
	repoMock.AssertExpectations(t)
}

func TestCreateWindow_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateWindowRequest)
	}{
		{"negative weekday", func(r *models.CreateWindowRequest) { r.Weekday = -1 }},
		{"weekday out of range", func(r *models.CreateWindowRequest) { r.Weekday = 7 }},
		{"bad start time", func(r *models.CreateWindowRequest) { r.StartTime = "9am" }},
		{"bad end time", func(r *models.CreateWindowRequest) { r.EndTime = "25:00" }},
		{"start equals end", func(r *models.CreateWindowRequest) { r.StartTime = "10:00"; r.EndTime = "10:00" }},
		{"start after end", func(r *models.CreateWindowRequest) { r.StartTime = "18:00"; r.EndTime = "09:00" }},
		{"bad timezone", func(r *models.CreateWindowRequest) { r.Timezone = "UTC+3" }},
		{"zero owner", func(r *models.CreateWindowRequest) { r.OwnerID = 0 }},
	}

	svc := NewService(&MockScheduleRepository{}, &noopLogger{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validWindowRequest()
			tt.mutate(req)

			_, err := svc.CreateWindow(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// ListWindows

func TestListWindows_Success(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("GetWindowsByOwner", mock.Anything, int64(10)).Return([]*domain.AvailabilityWindow{
		{ID: 1, OwnerID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "13:00", Timezone: "Europe/Moscow"},
		{ID: 2, OwnerID: 10, Weekday: time.Friday, StartTime: "14:00", EndTime: "18:00", Timezone: "Europe/Moscow"},
	}, nil)

	svc := NewService(repoMock, &noopLogger{})

	resp, err := svc.ListWindows(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, 1, resp.Windows[0].Weekday)
	assert.Equal(t, "14:00", resp.Windows[1].StartTime)
}

func TestListWindows_Empty(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("GetWindowsByOwner", mock.Anything, int64(10)).Return([]*domain.AvailabilityWindow{}, nil)

	svc := NewService(repoMock, &noopLogger{})

	resp, err := svc.ListWindows(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

// DeleteWindow

func TestDeleteWindow_Success(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("DeleteWindow", mock.Anything, int64(5), int64(10)).Return(nil)

	svc := NewService(repoMock, &noopLogger{})

	err := svc.DeleteWindow(context.Background(), 5, 10)

	require.NoError(t, err)
	repoMock.AssertExpectations(t)
}

func TestDeleteWindow_NotFound(t *testing.T) {
	repoMock := &MockScheduleRepository{}
	repoMock.On("DeleteWindow", mock.Anything, int64(5), int64(99)).Return(scheduleRepo.ErrWindowNotFound)

	svc := NewService(repoMock, &noopLogger{})

	err := svc.DeleteWindow(context.Background(), 5, 99)

	assert.ErrorIs(t, err, ErrWindowNotFound)
}
