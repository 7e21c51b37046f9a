package models

import (
	"time"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/timeutil"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// BlockDateRequest запрос на блокировку целого дня
type BlockDateRequest struct {
	Date   time.Time `json:"date"`
	Reason *string   `json:"reason,omitempty"`
}

// BlockSlotRequest запрос на блокировку интервала внутри дня
type BlockSlotRequest struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"` // "12:00"
	EndTime   string    `json:"endTime"`   // "13:30"
	Reason    *string   `json:"reason,omitempty"`
}

// Response модели

// WindowResponse окно доступности
type WindowResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// BlockedDateResponse заблокированный день
type BlockedDateResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // "2026-03-15"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotResponse заблокированный интервал
type BlockedSlotResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`      // "2026-03-15"
	StartTime string    `json:"startTime"` // "12:00"
	EndTime   string    `json:"endTime"`   // "13:30"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse полная картина расписания для админки
type ScheduleResponse struct {
	Windows      []WindowResponse      `json:"windows"`
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель окна в DTO
func FromDomainWindow(w *domain.WeeklyWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:        w.ID,
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		IsActive:  w.IsActive,
	}
}

// FromDomainBlockedDate конвертирует domain модель блокировки дня в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedSlot конвертирует domain модель блокировки интервала в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}
	return &BlockedSlotResponse{
		ID:        b.ID,
		Date:      b.StartAt.Format(domain.DateFormat),
		StartTime: timeutil.New(b.StartAt).String(),
		EndTime:   timeutil.New(b.EndAt).String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainSchedule собирает полный ответ расписания
func FromDomainSchedule(
	windows []*domain.WeeklyWindow,
	blockedDates []*domain.BlockedDate,
	blockedSlots []*domain.BlockedSlot,
) *ScheduleResponse {
	resp := &ScheduleResponse{
		Windows:      make([]WindowResponse, 0, len(windows)),
		BlockedDates: make([]BlockedDateResponse, 0, len(blockedDates)),
		BlockedSlots: make([]BlockedSlotResponse, 0, len(blockedSlots)),
	}
	for _, w := range windows {
		if dto := FromDomainWindow(w); dto != nil {
			resp.Windows = append(resp.Windows, *dto)
		}
	}
	for _, b := range blockedDates {
		if dto := FromDomainBlockedDate(b); dto != nil {
			resp.BlockedDates = append(resp.BlockedDates, *dto)
		}
	}
	for _, b := range blockedSlots {
		if dto := FromDomainBlockedSlot(b); dto != nil {
			resp.BlockedSlots = append(resp.BlockedSlots, *dto)
		}
	}
	return resp
}
