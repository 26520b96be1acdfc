package service

import (
	"context"
	"fmt"
	"venue/config"
	"venue/infras/otel"
	bookingRepo "venue/internal/domains/booking/repository"
	tableModel "venue/internal/domains/table/model"
	tableRepo "venue/internal/domains/table/repository"
	tableService "venue/internal/domains/table/service"
	timelineService "venue/internal/domains/timeline/service"
	"venue/internal/domains/zone/model"
	"venue/internal/domains/zone/model/dto"
	"venue/internal/domains/zone/repository"
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
	cacheGetZone    = "zone:get"
	cacheGetAllZone = "zone:gets"
	cacheCountZone  = "zone:count"
)

type Zone interface {
	Create(ctx context.Context, req dto.CreateZoneRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetZonesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ZoneResponse, error)
	Update(ctx context.Context, req dto.UpdateZoneRequest, id string) error
	Deactivate(ctx context.Context, id string, force bool) (dto.DeactivateZoneResponse, error)
	Activate(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Zone
	tables   tableRepo.Table
	tableSvc tableService.Table
	bookings bookingRepo.Booking
	timeline timelineService.Timeline
	events   events.Publisher
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Zone, tables tableRepo.Table, tableSvc tableService.Table, bookings bookingRepo.Booking, timeline timelineService.Timeline, events events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Zone {
	return &serviceImpl{
		repo:     repo,
		tables:   tables,
		tableSvc: tableSvc,
		bookings: bookings,
		timeline: timeline,
		events:   events,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateZoneRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to insert zone")

		return fmt.Errorf("failed to insert zone: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllZone)
		shared.InvalidateCaches(c, s.cache, cacheCountZone)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetZonesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllZone, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for zones")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count zones")

		return res, fmt.Errorf("failed to count zones: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get zones")

		return res, fmt.Errorf("failed to get zones: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save zones to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountZone, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for zone count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count zones")

		return res, fmt.Errorf("failed to count zones: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save zone count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ZoneResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetZone, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for zone")

		return res, nil
	}

	zone, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get zone")

		return res, fmt.Errorf("failed to get zone: %w", err)
	}

	if zone.ID == constant.Empty {
		return res, failure.NotFound("zone not found") // nolint:wrapcheck
	}

	res.FromModel(zone)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save zone to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateZoneRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check zone existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("zone not found")

		return failure.NotFound("zone not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update zone")

		return fmt.Errorf("failed to update zone: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Deactivate takes a zone and its active tables out of service. The guard
// counts outstanding future bookings across every table in the zone; once
// confirmed, the zone itself is committed first and the per-table cascade is
// best-effort, with tables that could not be deactivated reported back so
// staff can retry them individually.
func (s *serviceImpl) Deactivate(ctx context.Context, id string, force bool) (res dto.DeactivateZoneResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get zone")

		return res, fmt.Errorf("failed to get zone: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("zone not found") // nolint:wrapcheck
	}

	if !current.Active {
		res.Deactivated = true

		return res, nil
	}

	tables, err := s.tables.GetAll(ctx, gDto.QueryParams{}, activeTablesOfZone(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get zone tables")

		return res, fmt.Errorf("failed to get zone tables: %w", err)
	}

	tableIDs := make([]string, 0, len(tables))
	for _, table := range tables {
		tableIDs = append(tableIDs, table.ID)
	}

	if len(tableIDs) > 0 {
		outstanding, err := s.bookings.CountFutureNonTerminal(ctx, tableIDs)
		if err != nil {
			log.Error().Err(err).Msg("failed to count outstanding bookings")

			return res, fmt.Errorf("failed to count outstanding bookings: %w", err)
		}

		res.OutstandingFutures = outstanding

		if outstanding > 0 && !force {
			res.NeedsConfirmation = true

			return res, nil
		}
	}

	updatedFields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate zone")

		return res, fmt.Errorf("failed to deactivate zone: %w", err)
	}

	res.Deactivated = true

	s.events.TableEvent(ctx, events.TypeZoneDeactivated, id)

	for _, tableID := range tableIDs {
		if _, err := s.tableSvc.Deactivate(ctx, tableID, true); err != nil {
			log.Error().Err(err).Str("tableID", tableID).Msg("failed to deactivate table in zone cascade")

			res.FailedTables = append(res.FailedTables, tableID)

			continue
		}

		res.DeactivatedTables++
	}

	s.timeline.Invalidate(ctx)
	s.invalidate(ctx, id)

	return res, nil
}

// Activate brings the zone itself back; its tables stay inactive and are
// reactivated individually, since some may have been taken down for reasons
// unrelated to the zone.
func (s *serviceImpl) Activate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Activate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check zone existence")

		return fmt.Errorf("failed to check zone existence: %w", err)
	}

	if !exist {
		return failure.NotFound("zone not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldActive:        true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to activate zone")

		return fmt.Errorf("failed to activate zone: %w", err)
	}

	s.events.TableEvent(ctx, events.TypeZoneActivated, id)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetZone, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete zone cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllZone)
		shared.InvalidateCaches(c, s.cache, cacheCountZone)
	}()
}

func activeTablesOfZone(zoneID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldZoneID,
				Operator: gDto.FilterOperatorEq,
				Value:    zoneID,
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
