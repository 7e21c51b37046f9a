package models

import (
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	DurationMinutes  int     `json:"durationMinutes"`
	Price            float64 `json:"price"`
	Mode             string  `json:"mode"`
	SortOrder        int     `json:"sortOrder"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
		DurationMinutes:  s.DurationMinutes,
		Price:            s.Price,
		Mode:             s.Mode,
		SortOrder:        s.SortOrder,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	result := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if resp := FromDomainService(s); resp != nil {
			result.Services = append(result.Services, *resp)
		}
	}
	return result
}
