package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/internal/domains/zone/model"
	gDto "venue/shared/dto"
	gRepo "venue/shared/repository"
)

type Zone interface {
	Insert(ctx context.Context, model model.Zone) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Zone, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Zone, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Zone]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Zone {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Zone](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
