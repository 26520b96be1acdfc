package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/internal/domains/booking/model"
	gDto "venue/shared/dto"
	gRepo "venue/shared/repository"
	"venue/shared/timezone"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CountFutureNonTerminal(ctx context.Context, tableIDs []string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountFutureNonTerminal counts the outstanding obligations the deactivation
// guard cares about: bookings on today or later whose status still occupies a
// table.
func (repo *repositoryImpl) CountFutureNonTerminal(ctx context.Context, tableIDs []string) (int, error) {
	today := timezone.Now().Format("2006-01-02")

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableID,
				Operator: gDto.FilterOperatorIn,
				Value:    tableIDs,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    today,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "terminal_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotIn,
				Value:    model.TerminalStatuses(),
				Table:    model.TableName,
			},
		},
	}

	return repo.Count(ctx, filter)
}
