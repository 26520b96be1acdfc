package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"
	"venue/infras/otel"
	"venue/infras/postgres"
	"venue/internal/domains/session/model"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/logger"
	gRepo "venue/shared/repository"

	"github.com/lib/pq"
)

type Session interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Session, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Session, error)
	GetActiveByTable(ctx context.Context, tableID string) (model.Session, error)
	Claim(ctx context.Context, session model.Session) (claimed bool, err error)
	EndByID(ctx context.Context, sessionID string, endedAt time.Time, endedBy string) (ended bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetActiveByTable returns the table-truth record: the single unended session
// for a table, or a zero session when the table is free.
func (repo *repositoryImpl) GetActiveByTable(ctx context.Context, tableID string) (model.Session, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableID,
				Operator: gDto.FilterOperatorEq,
				Value:    tableID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndedAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}

	return repo.Get(ctx, filter)
}

// Claim inserts a new session only if the table has no active one, in a
// single conditional statement so concurrent starts cannot both win. A false
// return without error means another session already holds the table; the
// caller should re-read table-truth and join it.
func (repo *repositoryImpl) Claim(ctx context.Context, session model.Session) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Claim", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %[1]s (id, table_id, game_id, started_at, ended_at, created_at, created_by, modified_at, modified_by)
		SELECT :id, :table_id, :game_id, :started_at, NULL, :created_at, :created_by, :modified_at, :modified_by
		WHERE NOT EXISTS (SELECT 1 FROM %[1]s WHERE table_id = :table_id AND ended_at IS NULL)`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, session)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			// The partial unique index caught a race the NOT EXISTS missed.
			return false, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to claim table session (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to claim table session (%s): %w", model.EntityName, err)
	}

	return rows == 1, nil
}

// EndByID closes a session if it is still open. Returns false when the
// session was already ended, which callers treat as a benign outcome.
func (repo *repositoryImpl) EndByID(ctx context.Context, sessionID string, endedAt time.Time, endedBy string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.EndByID", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET ended_at = :ended_at, modified_at = :ended_at, modified_by = :ended_by
		WHERE id = :id AND ended_at IS NULL`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"id":       sessionID,
		"ended_at": endedAt,
		"ended_by": endedBy,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to end session (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to end session (%s): %w", model.EntityName, err)
	}

	return rows == 1, nil
}
