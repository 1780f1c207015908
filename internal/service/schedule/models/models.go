package models

import (
	"time"

	"github.com/linkhub/booking-service/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	OwnerID         int64  `json:"ownerId"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	BufferMinutes   int    `json:"bufferMinutes"`
	Timezone        string `json:"timezone"`
}

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	OwnerID   int64  `json:"ownerId"`
	Weekday   int    `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Timezone  string `json:"timezone"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"ownerId"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"durationMinutes"`
	BufferMinutes   int       `json:"bufferMinutes"`
	Timezone        string    `json:"timezone"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.BookableService) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		OwnerID:         s.OwnerID,
		Title:           s.Title,
		DurationMinutes: s.DurationMinutes,
		BufferMinutes:   s.BufferMinutes,
		Timezone:        s.Timezone,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainWindow конвертирует domain модель окна в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Weekday:   int(w.Weekday),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		Timezone:  w.Timezone,
		CreatedAt: w.CreatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей окон в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}
