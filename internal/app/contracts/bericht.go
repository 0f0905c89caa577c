package contracts

import (
	"context"
	"isik-bericht-service/internal/app/models"
	"isik-bericht-service/internal/pkg/dto/requests"
	"isik-bericht-service/internal/pkg/dto/responses"
)

type BerichtUsecase interface {
	CreateBericht(ctx context.Context, request *requests.CreateBericht) (*responses.CreateBericht, error)
	CreateBerichtFromServer(ctx context.Context, request *requests.CreateBerichtFromServer) (*responses.CreateBericht, error)
	FindBerichtByID(ctx context.Context, berichtID string) (*responses.FindBericht, error)
}

type BerichtRepository interface {
	InsertBericht(ctx context.Context, bericht *models.Bericht) error
	FindBerichtByID(ctx context.Context, berichtID string) (*models.Bericht, error)
}

type BerichtPublisher interface {
	PublishBerichtAssembled(ctx context.Context, event *models.BerichtAssembledEvent) error
}
