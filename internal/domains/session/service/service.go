package service

import (
	"context"
	"time"
	"venue/config"
	"venue/infras/otel"
	"venue/internal/domains/session/model"
	"venue/internal/domains/session/model/dto"
	"venue/internal/domains/session/repository"
	tableModel "venue/internal/domains/table/model"
	tableRepo "venue/internal/domains/table/repository"
	timelineService "venue/internal/domains/timeline/service"
	"venue/internal/events"
	"venue/shared"
	"venue/shared/constant"
	"venue/shared/failure"
	gModel "venue/shared/model"
	"venue/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const systemActor = "system"

type Session interface {
	Resolve(ctx context.Context, tableID, clientPointer string) (dto.TableSessionResponse, error)
	Start(ctx context.Context, tableID, clientPointer string, req dto.StartSessionRequest) (dto.StartSessionResponse, error)
	End(ctx context.Context, tableID, clientPointer string) (dto.EndSessionResponse, error)
}

type serviceImpl struct {
	repo     repository.Session
	tables   tableRepo.Table
	timeline timelineService.Timeline
	events   events.Publisher
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Session, tables tableRepo.Table, timeline timelineService.Timeline, events events.Publisher, cfg *config.Config, otel otel.Otel) Session {
	return &serviceImpl{
		repo:     repo,
		tables:   tables,
		timeline: timeline,
		events:   events,
		cfg:      cfg,
		otel:     otel,
	}
}

// Resolve reconciles a guest's view of a table with the store. The store is
// the truth: the client-held pointer is a hint only and is never consulted to
// decide whether the table is occupied. The returned Pointer field tells the
// transport layer what the client should hold from now on.
func (s *serviceImpl) Resolve(ctx context.Context, tableID, clientPointer string) (res dto.TableSessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureTableExists(ctx, tableID, false); err != nil {
		return res, err
	}

	active, err := s.activeSession(ctx, tableID)
	if err != nil {
		return res, err
	}

	res.TableID = tableID

	if !active.IsActive() {
		if clientPointer != constant.Empty {
			log.Info().Str("tableID", tableID).Str("pointer", clientPointer).Msg("client held a pointer to a session the table no longer has")
		}

		return res, nil
	}

	sessionRes := dto.SessionResponse{}
	sessionRes.FromModel(active)

	res.Session = &sessionRes
	res.Pointer = active.ID

	return res, nil
}

// Start seats a guest at a table. If the table already has a live session the
// guest joins it instead of creating a duplicate; the claim itself is a
// single conditional insert, so two guests scanning the same table at once
// cannot both open a session.
func (s *serviceImpl) Start(ctx context.Context, tableID, clientPointer string, req dto.StartSessionRequest) (res dto.StartSessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureTableExists(ctx, tableID, true); err != nil {
		return res, err
	}

	active, err := s.activeSession(ctx, tableID)
	if err != nil {
		return res, err
	}

	if active.IsActive() {
		res.Session.FromModel(active)
		res.Joined = true

		return res, nil
	}

	now := timezone.Now()

	session := model.Session{
		ID:        uuid.NewString(),
		TableID:   tableID,
		StartedAt: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			CreatedBy:  constant.ContextGuest,
			ModifiedAt: now,
			ModifiedBy: constant.ContextGuest,
		},
	}
	if req.GameID != constant.Empty {
		session.GameID = &req.GameID
	}

	claimed, err := s.repo.Claim(ctx, session)
	if err != nil {
		log.Error().Err(err).Str("tableID", tableID).Msg("failed to claim table session")

		return res, failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
	}

	if !claimed {
		// Lost the race: someone opened a session between our read and our
		// claim. Re-read and join their session.
		winner, err := s.repo.GetActiveByTable(ctx, tableID)
		if err != nil || !winner.IsActive() {
			return res, failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
		}

		res.Session.FromModel(winner)
		res.Joined = true

		return res, nil
	}

	res.Session.FromModel(session)

	s.events.SessionEvent(ctx, events.TypeSessionStarted, session.ID, tableID)
	s.timeline.Invalidate(ctx)

	return res, nil
}

// End closes the table's live session, whichever session the caller's
// pointer names: the table is the truth and the pointer is only a hint.
// Ending an already-free table is a benign no-op, so a guest double-tapping
// the end button never sees an error.
func (s *serviceImpl) End(ctx context.Context, tableID, clientPointer string) (res dto.EndSessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".End")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.ensureTableExists(ctx, tableID, false); err != nil {
		return res, err
	}

	active, err := s.activeSession(ctx, tableID)
	if err != nil {
		return res, err
	}

	if !active.IsActive() {
		res.Message = "table is already free"

		return res, nil
	}

	if clientPointer != constant.Empty && clientPointer != active.ID {
		log.Info().
			Str("tableID", tableID).
			Str("pointer", clientPointer).
			Str("sessionID", active.ID).
			Msg("pointer names a different session than the table holds")
	}

	ended, err := s.repo.EndByID(ctx, active.ID, timezone.Now(), constant.ContextGuest)
	if err != nil {
		log.Error().Err(err).Str("sessionID", active.ID).Msg("failed to end table session")

		return res, failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
	}

	res.Ended = ended
	if !ended {
		res.Message = "session was already ended"

		return res, nil
	}

	s.events.SessionEvent(ctx, events.TypeSessionEnded, active.ID, tableID)
	s.timeline.Invalidate(ctx)

	return res, nil
}

// activeSession reads table-truth and lazily expires a session that has
// outlived the staleness threshold. Expiry happens on read because nothing
// guarantees a guest ever taps "end"; the next scan of the table heals it.
func (s *serviceImpl) activeSession(ctx context.Context, tableID string) (model.Session, error) {
	active, err := s.repo.GetActiveByTable(ctx, tableID)
	if err != nil {
		log.Error().Err(err).Str("tableID", tableID).Msg("failed to read active table session")

		return model.Session{}, failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
	}

	threshold := time.Duration(s.cfg.Venue.Session.StaleHours) * time.Hour
	if !active.IsStale(timezone.Now(), threshold) {
		return active, nil
	}

	log.Info().
		Str("sessionID", active.ID).
		Str("tableID", tableID).
		Time("startedAt", active.StartedAt).
		Msg("auto-closing stale table session")

	ended, err := s.repo.EndByID(ctx, active.ID, timezone.Now(), systemActor)
	if err != nil {
		log.Error().Err(err).Str("sessionID", active.ID).Msg("failed to auto-close stale session")

		return model.Session{}, failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
	}

	if ended {
		s.events.SessionEvent(ctx, events.TypeSessionExpired, active.ID, tableID)
		s.timeline.Invalidate(ctx)
	}

	return model.Session{}, nil
}

func (s *serviceImpl) ensureTableExists(ctx context.Context, tableID string, mustBeActive bool) error {
	table, err := s.tables.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("tableID", tableID).Msg("failed to get table")

		return failure.Unavailable("table occupancy is temporarily unavailable") // nolint:wrapcheck
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	if mustBeActive && !table.Active {
		return failure.BadRequestFromString("table is inactive") // nolint:wrapcheck
	}

	return nil
}
