package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linkhub/booking-service/internal/domain"
	scheduleRepo "github.com/linkhub/booking-service/internal/infra/storage/schedule"
	"github.com/linkhub/booking-service/internal/service/schedule/models"
	"github.com/linkhub/booking-service/pkg/types"
)

// Service сервис для управления услугами и окнами доступности
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// CreateService создает новую услугу владельца
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for owner=%d", req.Title, req.OwnerID)

	if err := validateCreateService(req); err != nil {
		s.logger.Warn("CreateService: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	service := &domain.BookableService{
		OwnerID:         req.OwnerID,
		Title:           strings.TrimSpace(req.Title),
		DurationMinutes: req.DurationMinutes,
		BufferMinutes:   req.BufferMinutes,
		Timezone:        req.Timezone,
	}

	created, err := s.scheduleRepo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: service id=%d created for owner=%d", created.ID, req.OwnerID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%d", id)

	service, err := s.scheduleRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// CreateWindow создает окно еженедельной доступности владельца
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: creating window for owner=%d, weekday=%d, [%s, %s)",
		req.OwnerID, req.Weekday, req.StartTime, req.EndTime)

	startTime, endTime, err := validateCreateWindow(req)
	if err != nil {
		s.logger.Warn("CreateWindow: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	window := &domain.AvailabilityWindow{
		OwnerID:   req.OwnerID,
		Weekday:   time.Weekday(req.Weekday),
		StartTime: startTime,
		EndTime:   endTime,
		Timezone:  req.Timezone,
	}

	created, err := s.scheduleRepo.CreateWindow(ctx, window)
	if err != nil {
		s.logger.Error("CreateWindow: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: window id=%d created for owner=%d", created.ID, req.OwnerID)
	return models.FromDomainWindow(created), nil
}

// ListWindows получает все окна доступности владельца
func (s *Service) ListWindows(ctx context.Context, ownerID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for owner=%d", ownerID)

	windows, err := s.scheduleRepo.GetWindowsByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d windows for owner=%d", len(windows), ownerID)
	return models.FromDomainWindowList(windows), nil
}

// DeleteWindow удаляет окно доступности владельца
// Удаление чужого окна недоступно: запрос фильтруется по owner_id
func (s *Service) DeleteWindow(ctx context.Context, id int64, ownerID int64) error {
	s.logger.Info("DeleteWindow: deleting window id=%d for owner=%d", id, ownerID)

	if err := s.scheduleRepo.DeleteWindow(ctx, id, ownerID); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found for owner=%d", id, ownerID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: window id=%d deleted for owner=%d", id, ownerID)
	return nil
}

// Валидация

func validateCreateService(req *models.CreateServiceRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerId must be positive", ErrInvalidInput)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if !domain.ValidTimezone(req.Timezone) {
		return fmt.Errorf("%w: invalid IANA timezone %q", ErrInvalidInput, req.Timezone)
	}

	return nil
}

func validateCreateWindow(req *models.CreateWindowRequest) (types.TimeString, types.TimeString, error) {
	if req.OwnerID <= 0 {
		return "", "", fmt.Errorf("%w: ownerId must be positive", ErrInvalidInput)
	}

	if !domain.ValidWeekday(req.Weekday) {
		return "", "", fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		return "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if !domain.ValidTimezone(req.Timezone) {
		return "", "", fmt.Errorf("%w: invalid IANA timezone %q", ErrInvalidInput, req.Timezone)
	}

	return startTime, endTime, nil
}
