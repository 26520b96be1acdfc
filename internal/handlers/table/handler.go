package table

import (
	"net/http"
	"venue/infras/otel"
	"venue/internal/domains/table/model"
	"venue/internal/domains/table/model/dto"
	"venue/internal/domains/table/service"
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
	service    service.Table
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Table, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Get("/{id}", handler.GetTableByID)
		routerGroup.Patch("/{id}", handler.UpdateTable)
		routerGroup.Post("/{id}/deactivate", handler.DeactivateTable)
		routerGroup.Post("/{id}/activate", handler.ActivateTable)
	})
}

// CreateTable registers a new table on the venue floor.
// @Summary Create a new table
// @Description Create a new table, optionally placed inside a zone of the same venue.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} response.Message "Table created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Table created successfully")
}

// GetTables retrieves tables with optional filtering.
// @Summary Get all tables
// @Description Retrieve tables with optional venue, zone and active filters.
// @Tags Table
// @Accept json
// @Produce json
// @Param venue_id query string false "Filter by venue"
// @Param zone_id query string false "Filter by zone"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetTablesResponse "List of tables"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
// @Security BearerAuth
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
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

	if zoneID := r.URL.Query().Get(constant.RequestParamZoneID); zoneID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldZoneID,
			Operator: gDto.FilterOperatorEq,
			Value:    zoneID,
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

	tables, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tables)
}

// GetTableByID retrieves a table by its ID.
// @Summary Get a table by ID
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} dto.TableResponse "Table details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTableByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	table, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// UpdateTable updates an existing table.
// @Summary Update a table by ID
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Update Table Request"
// @Success 200 {object} response.Message "Table updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTableRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Table updated successfully")
}

// DeactivateTable takes a table out of service.
// @Summary Deactivate a table
// @Description Deactivate a table. Without force, outstanding future bookings turn the call into a confirmation prompt instead of committing.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.DeactivateTableRequest false "Deactivate Table Request"
// @Success 200 {object} dto.DeactivateTableResponse "Deactivation outcome"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id}/deactivate [post]
// @Security BearerAuth
func (handler *Handler) DeactivateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DeactivateTableRequest{}
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
		log.Error().Err(err).Msg("failed to deactivate table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ActivateTable brings a table back into service.
// @Summary Activate a table
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Message "Table activated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{id}/activate [post]
// @Security BearerAuth
func (handler *Handler) ActivateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Activate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate table")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Table activated successfully")
}
