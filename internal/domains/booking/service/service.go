package service

import (
	"context"
	"fmt"
	"time"
	"venue/config"
	"venue/infras/otel"
	"venue/internal/domains/booking/model"
	"venue/internal/domains/booking/model/dto"
	"venue/internal/domains/booking/repository"
	tableModel "venue/internal/domains/table/model"
	tableRepo "venue/internal/domains/table/repository"
	timelineModel "venue/internal/domains/timeline/model"
	timelineService "venue/internal/domains/timeline/service"
	"venue/internal/events"
	"venue/shared"
	"venue/shared/cache"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/failure"
	"venue/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Reschedule(ctx context.Context, req dto.RescheduleBookingRequest, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	tables   tableRepo.Table
	timeline timelineService.Timeline
	events   events.Publisher
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Booking, tables tableRepo.Table, timeline timelineService.Timeline, events events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		tables:   tables,
		timeline: timeline,
		events:   events,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create records a booking without checking for overlaps: double-booking a
// table is allowed at creation time and surfaces as a conflict on the
// timeline, where staff resolve it by rescheduling.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking times")

		return failure.BadRequestFromString("booking date or times are malformed") // nolint:wrapcheck
	}

	start, end := booking.Span()
	if !start.Before(end) {
		return failure.BadRequestFromString("booking must end after it starts") // nolint:wrapcheck
	}

	if err = s.ensureTableActive(ctx, booking.TableID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return fmt.Errorf("failed to insert booking: %w", err)
	}

	s.timeline.Invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	// A status change can release or reclaim the table on the timeline.
	s.timeline.Invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

// Reschedule moves a booking to a new table and start time, preserving its
// duration. Unlike Create, a reschedule must not introduce a conflict, and
// the target lane is re-read from the store on every attempt; a cached
// conflict view is never trusted for this decision.
func (s *serviceImpl) Reschedule(ctx context.Context, req dto.RescheduleBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if model.IsTerminal(current.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot reschedule a booking with status %s", current.Status)) // nolint:wrapcheck
	}

	if err = s.ensureTableActive(ctx, req.TableID); err != nil {
		return res, err
	}

	moved, err := placeBooking(current, req)
	if err != nil {
		return res, err
	}

	newStart, newEnd := moved.Span()
	if !newStart.Before(newEnd) {
		return res, failure.BadRequestFromString("booking cannot cross midnight") // nolint:wrapcheck
	}

	blocks, err := s.timeline.TableBlocks(ctx, req.TableID, moved.BookingDate, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get target table blocks")

		return res, fmt.Errorf("failed to get target table blocks: %w", err)
	}

	candidate := timelineModel.Interval{Start: newStart, End: newEnd}
	for _, block := range blocks {
		if !block.Blocking {
			continue
		}

		if timelineModel.Overlaps(candidate, block.Span) {
			return res, failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
				"booking would overlap %s %q from %s to %s",
				block.Kind,
				block.Label,
				timezone.Format(block.Span.Start, constant.TimeOnlyFormat),
				timezone.Format(block.Span.End, constant.TimeOnlyFormat),
			))
		}
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldTableID:       moved.TableID,
		model.FieldBookingDate:   moved.BookingDate,
		model.FieldStartTime:     moved.StartTime,
		model.FieldEndTime:       moved.EndTime,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to reschedule booking")

		return res, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	moved.ModifiedAt = now
	moved.ModifiedBy = user
	res.FromModel(moved)

	s.events.BookingEvent(ctx, events.TypeBookingRescheduled, id, moved.TableID)
	s.timeline.Invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// placeBooking computes where the booking lands: the requested table, the
// requested date (or the current one), the requested start, and an end that
// keeps the booking's original duration.
func placeBooking(current model.Booking, req dto.RescheduleBookingRequest) (model.Booking, error) {
	moved := current
	moved.TableID = req.TableID

	if req.BookingDate != constant.Empty {
		bookingDate, err := timezone.Parse(constant.DateOnlyFormat, req.BookingDate)
		if err != nil {
			return model.Booking{}, failure.BadRequestFromString("booking date is malformed") // nolint:wrapcheck
		}

		moved.BookingDate = bookingDate
	}

	startTime, err := time.Parse(constant.TimeOnlyFormat, req.StartTime)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("start time is malformed") // nolint:wrapcheck
	}

	currentStart, currentEnd := current.Span()
	duration := currentEnd.Sub(currentStart)

	moved.StartTime = startTime
	moved.EndTime = startTime.Add(duration)

	return moved, nil
}

func (s *serviceImpl) ensureTableActive(ctx context.Context, tableID string) error {
	table, err := s.tables.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("tableID", tableID).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	if !table.Active {
		return failure.BadRequestFromString("table is inactive") // nolint:wrapcheck
	}

	return nil
}
