package get_services

import (
	"context"

	catalogModels "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	ListActive(ctx context.Context) (*catalogModels.ServiceListResponse, error)
	GetByID(ctx context.Context, id string) (*catalogModels.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
