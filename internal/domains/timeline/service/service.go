package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"venue/config"
	"venue/infras/otel"
	bookingModel "venue/internal/domains/booking/model"
	bookingRepo "venue/internal/domains/booking/repository"
	sessionModel "venue/internal/domains/session/model"
	sessionRepo "venue/internal/domains/session/repository"
	tableModel "venue/internal/domains/table/model"
	tableRepo "venue/internal/domains/table/repository"
	"venue/internal/domains/timeline/model"
	"venue/internal/domains/timeline/model/dto"
	"venue/shared"
	"venue/shared/cache"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"
	"venue/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheBuildTimeline = "timeline:build"
)

type Timeline interface {
	Build(ctx context.Context, venueID string, date time.Time, fromHour, toHour int) (dto.TimelineResponse, error)
	TableBlocks(ctx context.Context, tableID string, date time.Time, excludeBookingID string) ([]model.TimelineBlock, error)
	Invalidate(ctx context.Context)
}

type serviceImpl struct {
	tables   tableRepo.Table
	bookings bookingRepo.Booking
	sessions sessionRepo.Session
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(tables tableRepo.Table, bookings bookingRepo.Booking, sessions sessionRepo.Session, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Timeline {
	return &serviceImpl{
		tables:   tables,
		bookings: bookings,
		sessions: sessions,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Build assembles the per-table occupancy view for one venue and one day.
// Every active table gets a lane, even an empty one, and overlapping blocking
// blocks on the same lane are reported as conflicts instead of being hidden.
func (s *serviceImpl) Build(ctx context.Context, venueID string, date time.Time, fromHour, toHour int) (res dto.TimelineResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Build")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Negative hours mean the caller left the bound unset; hour 0 is a real
	// midnight bound.
	if fromHour < 0 {
		fromHour = s.cfg.Venue.Timeline.OpenHour
	}

	if toHour < 0 {
		toHour = s.cfg.Venue.Timeline.CloseHour
	}

	if toHour <= fromHour {
		return res, failure.BadRequestFromString("timeline range must end after it starts") // nolint:wrapcheck
	}

	rangeStart, rangeEnd := dayRange(date, fromHour, toHour)

	cacheKey := shared.BuildCacheKey(cacheBuildTimeline, venueID, date.Format(constant.DateOnlyFormat), strconv.Itoa(fromHour), strconv.Itoa(toHour))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for timeline")

		return res, nil
	}

	tables, err := s.tables.GetAll(ctx, gDto.QueryParams{SortBy: tableModel.FieldLabel, SortDir: "ASC"}, activeTablesOfVenue(venueID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue tables")

		return res, fmt.Errorf("failed to get venue tables: %w", err)
	}

	res = dto.TimelineResponse{
		VenueID:   venueID,
		Date:      date.Format(constant.DateOnlyFormat),
		FromHour:  fromHour,
		ToHour:    toHour,
		Tables:    make([]dto.TableTimelineResponse, 0, len(tables)),
		Conflicts: make([]dto.ConflictResponse, 0),
	}

	if len(tables) == 0 {
		return res, nil
	}

	tableIDs := make([]string, 0, len(tables))
	for _, table := range tables {
		tableIDs = append(tableIDs, table.ID)
	}

	blocksByTable, err := s.collectBlocks(ctx, tableIDs, rangeStart, rangeEnd, constant.Empty)
	if err != nil {
		return res, err
	}

	for _, table := range tables {
		blocks := blocksByTable[table.ID]
		model.SortBlocks(blocks)

		lane := dto.TableTimelineResponse{
			TableID: table.ID,
			Label:   table.Label,
			Blocks:  make([]dto.BlockResponse, 0, len(blocks)),
		}
		if table.ZoneID != nil {
			lane.ZoneID = *table.ZoneID
		}

		for _, block := range blocks {
			blockRes := dto.BlockResponse{}
			blockRes.FromModel(block, rangeStart)
			lane.Blocks = append(lane.Blocks, blockRes)
		}

		res.Tables = append(res.Tables, lane)

		for _, conflict := range model.DetectConflicts(blocks) {
			conflictRes := dto.ConflictResponse{}
			conflictRes.FromModel(conflict)
			res.Conflicts = append(res.Conflicts, conflictRes)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save timeline to cache")
		}
	}()

	return res, nil
}

// TableBlocks returns one table's blocks for a full day, straight from the
// store. The reschedule engine validates placements against this view, so it
// must never be served from cache.
func (s *serviceImpl) TableBlocks(ctx context.Context, tableID string, date time.Time, excludeBookingID string) (res []model.TimelineBlock, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TableBlocks")
	defer scope.End()
	defer scope.TraceIfError(err)

	rangeStart, rangeEnd := dayRange(date, 0, 24)

	blocksByTable, err := s.collectBlocks(ctx, []string{tableID}, rangeStart, rangeEnd, excludeBookingID)
	if err != nil {
		return nil, err
	}

	blocks := blocksByTable[tableID]
	model.SortBlocks(blocks)

	return blocks, nil
}

// Invalidate drops every cached timeline view. Called by the write paths of
// bookings, sessions, tables and zones, all of which change what a timeline
// would show.
func (s *serviceImpl) Invalidate(ctx context.Context) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheBuildTimeline)
}

func (s *serviceImpl) collectBlocks(ctx context.Context, tableIDs []string, rangeStart, rangeEnd time.Time, excludeBookingID string) (map[string][]model.TimelineBlock, error) {
	blocksByTable := make(map[string][]model.TimelineBlock, len(tableIDs))

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, bookingsOnDate(tableIDs, rangeStart, excludeBookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for timeline")

		return nil, fmt.Errorf("failed to get bookings for timeline: %w", err)
	}

	for _, booking := range bookings {
		start, end := booking.Span()

		blocksByTable[booking.TableID] = append(blocksByTable[booking.TableID], model.TimelineBlock{
			ID:      booking.ID,
			TableID: booking.TableID,
			Kind:    model.BlockKindBooking,
			Span:    model.Interval{Start: start, End: end},
			Label:   booking.GuestName,
			Status:  booking.Status,
			// Terminal bookings stay visible but no longer occupy the table.
			Blocking: !bookingModel.IsTerminal(booking.Status),
		})
	}

	sessions, err := s.sessions.GetAll(ctx, gDto.QueryParams{}, sessionsIntersecting(tableIDs, rangeStart, rangeEnd))
	if err != nil {
		log.Error().Err(err).Msg("failed to get sessions for timeline")

		return nil, fmt.Errorf("failed to get sessions for timeline: %w", err)
	}

	for _, session := range sessions {
		// The range is half-open: a session starting exactly at range end
		// has no width on this view.
		if !session.StartedAt.Before(rangeEnd) {
			continue
		}

		// An open session holds its table for the rest of the visible range.
		end := rangeEnd
		if session.EndedAt != nil {
			end = *session.EndedAt
		}

		label := "walk-in session"
		if session.GameID != nil && *session.GameID != constant.Empty {
			label = *session.GameID
		}

		status := "active"
		if session.EndedAt != nil {
			status = "ended"
		}

		blocksByTable[session.TableID] = append(blocksByTable[session.TableID], model.TimelineBlock{
			ID:       session.ID,
			TableID:  session.TableID,
			Kind:     model.BlockKindSession,
			Span:     model.Interval{Start: session.StartedAt, End: end},
			Label:    label,
			Status:   status,
			Blocking: true,
		})
	}

	return blocksByTable, nil
}

// dayRange anchors [fromHour, toHour) onto the given date in the venue's
// local time. toHour may be 24, which lands on the next day's midnight.
func dayRange(date time.Time, fromHour, toHour int) (start, end time.Time) {
	loc := timezone.GetLocation()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	return midnight.Add(time.Duration(fromHour) * time.Hour), midnight.Add(time.Duration(toHour) * time.Hour)
}

func activeTablesOfVenue(venueID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldVenueID,
				Operator: gDto.FilterOperatorEq,
				Value:    venueID,
				Table:    tableModel.TableName,
			},
			gDto.Filter{
				Field:    tableModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    tableModel.TableName,
			},
		},
	}
}

func bookingsOnDate(tableIDs []string, rangeStart time.Time, excludeBookingID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    bookingModel.FieldTableID,
			Operator: gDto.FilterOperatorIn,
			Value:    tableIDs,
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			Field:    bookingModel.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    rangeStart.Format(constant.DateOnlyFormat),
			Table:    bookingModel.TableName,
		},
		gDto.Filter{
			ArgName:  "cancelled_status",
			Field:    bookingModel.FieldStatus,
			Operator: gDto.FilterOperatorNotIn,
			Value:    bookingModel.CancelledStatuses(),
			Table:    bookingModel.TableName,
		},
	}

	if excludeBookingID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_booking_id",
			Field:    bookingModel.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeBookingID,
			Table:    bookingModel.TableName,
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func sessionsIntersecting(tableIDs []string, rangeStart, rangeEnd time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    sessionModel.FieldTableID,
				Operator: gDto.FilterOperatorIn,
				Value:    tableIDs,
				Table:    sessionModel.TableName,
			},
			gDto.Filter{
				Field:    sessionModel.FieldStartedAt,
				Operator: gDto.FilterOperatorLess,
				Value:    rangeEnd,
				Table:    sessionModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						Field:    sessionModel.FieldEndedAt,
						Operator: gDto.FilterIsNull,
						Table:    sessionModel.TableName,
					},
					gDto.Filter{
						Field:    sessionModel.FieldEndedAt,
						Operator: gDto.FilterOperatorGreaterEq,
						Value:    rangeStart,
						Table:    sessionModel.TableName,
					},
				},
			},
		},
	}
}
