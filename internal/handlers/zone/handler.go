package zone

import (
	"net/http"
	"venue/infras/otel"
	"venue/internal/domains/zone/model"
	"venue/internal/domains/zone/model/dto"
	"venue/internal/domains/zone/service"
	"venue/shared"
	"venue/shared/constant"
	gDto "venue/shared/dto"
	"venue/shared/validator"
	"venue/transport/http/middleware"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Zone
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Zone, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/zones", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateZone)
		routerGroup.Get("/", handler.GetZones)
		routerGroup.Get("/{id}", handler.GetZoneByID)
		routerGroup.Patch("/{id}", handler.UpdateZone)
		routerGroup.Post("/{id}/deactivate", handler.DeactivateZone)
		routerGroup.Post("/{id}/activate", handler.ActivateZone)
	})
}

// CreateZone registers a new zone for a venue.
// @Summary Create a new zone
// @Description Create a new zone grouping tables within a venue.
// @Tags Zone
// @Accept json
// @Produce json
// @Param request body dto.CreateZoneRequest true "Create Zone Request"
// @Success 201 {object} response.Message "Zone created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones [post]
// @Security BearerAuth
func (handler *Handler) CreateZone(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateZone")
	defer scope.End()

	req := dto.CreateZoneRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create zone")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Zone created successfully")
}

// GetZones retrieves zones with optional filtering.
// @Summary Get all zones
// @Description Retrieve zones with optional venue and active filters.
// @Tags Zone
// @Accept json
// @Produce json
// @Param venue_id query string false "Filter by venue"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetZonesResponse "List of zones"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones [get]
// @Security BearerAuth
func (handler *Handler) GetZones(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetZones")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if venueID := r.URL.Query().Get(constant.RequestParamVenueID); venueID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVenueID,
			Operator: gDto.FilterOperatorEq,
			Value:    venueID,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	zones, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get zones")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, zones)
}

// GetZoneByID retrieves a zone by its ID.
// @Summary Get a zone by ID
// @Tags Zone
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} dto.ZoneResponse "Zone details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetZoneByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetZoneByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	zone, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get zone by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, zone)
}

// UpdateZone updates an existing zone.
// @Summary Update a zone by ID
// @Tags Zone
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param request body dto.UpdateZoneRequest true "Update Zone Request"
// @Success 200 {object} response.Message "Zone updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateZone")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateZoneRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update zone")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Zone updated successfully")
}

// DeactivateZone takes a zone and its tables out of service.
// @Summary Deactivate a zone
// @Description Deactivate a zone and cascade to its active tables. Without force, outstanding future bookings turn the call into a confirmation prompt.
// @Tags Zone
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param request body dto.DeactivateZoneRequest false "Deactivate Zone Request"
// @Success 200 {object} dto.DeactivateZoneResponse "Deactivation outcome"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones/{id}/deactivate [post]
// @Security BearerAuth
func (handler *Handler) DeactivateZone(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateZone")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DeactivateZoneRequest{}
	if r.Body != nil && r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Deactivate(ctx, id, req.Force)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate zone")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ActivateZone brings a zone back into service.
// @Summary Activate a zone
// @Tags Zone
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} response.Message "Zone activated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/zones/{id}/activate [post]
// @Security BearerAuth
func (handler *Handler) ActivateZone(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateZone")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Activate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate zone")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Zone activated successfully")
}
