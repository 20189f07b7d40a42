package models

import (
	"github.com/driveever/DriveEver-BookingService/internal/domain"
	"github.com/driveever/DriveEver-BookingService/pkg/types"
)

// Request модели

// RuleInput одно окно доступности в запросе на замену шаблона
type RuleInput struct {
	DayOfWeek   int    `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "17:00"
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// ReplaceRequest запрос на полную замену недельного шаблона доступности
// Шаблон заменяется целиком: окна, не вошедшие в запрос, удаляются
type ReplaceRequest struct {
	UserID       int64       `json:"-"`
	InstructorID int64       `json:"-"`
	Rules        []RuleInput `json:"availability"`
}

// Response модели

// RuleResponse одно окно доступности в ответе
type RuleResponse struct {
	ID          int64  `json:"id"`
	DayOfWeek   int    `json:"dayOfWeek"`
	DayName     string `json:"dayName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// TemplateResponse недельный шаблон доступности инструктора
type TemplateResponse struct {
	InstructorID int64          `json:"instructorId"`
	Rules        []RuleResponse `json:"availability"`
	TotalRules   int            `json:"totalRules"`
}

// Методы конвертации

// ToDomainRule конвертирует RuleInput в domain модель
// Не переданный isAvailable трактуется как true
func (r *RuleInput) ToDomainRule(instructorID int64) (*domain.AvailabilityRule, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &domain.AvailabilityRule{
		InstructorID: instructorID,
		DayOfWeek:    r.DayOfWeek,
		StartTime:    startTime,
		EndTime:      endTime,
		IsAvailable:  isAvailable,
	}, nil
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.AvailabilityRule) RuleResponse {
	return RuleResponse{
		ID:          rule.ID,
		DayOfWeek:   rule.DayOfWeek,
		DayName:     domain.WeekdayName(rule.DayOfWeek),
		StartTime:   rule.StartTime.String(),
		EndTime:     rule.EndTime.String(),
		IsAvailable: rule.IsAvailable,
	}
}

// FromDomainRules конвертирует недельный шаблон в DTO
func FromDomainRules(instructorID int64, rules []*domain.AvailabilityRule) *TemplateResponse {
	resp := &TemplateResponse{
		InstructorID: instructorID,
		Rules:        make([]RuleResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, FromDomainRule(rule))
	}
	resp.TotalRules = len(resp.Rules)
	return resp
}
