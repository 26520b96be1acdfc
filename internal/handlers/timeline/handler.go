package timeline

import (
	"net/http"
	"strconv"
	"venue/infras/otel"
	"venue/internal/domains/timeline/service"
	"venue/shared/constant"
	"venue/shared/failure"
	"venue/shared/timezone"
	"venue/transport/http/middleware"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Timeline
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Timeline, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/timeline", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RBAC)

		routerGroup.Get("/", handler.GetTimeline)
	})
}

// GetTimeline renders the per-table occupancy view for one venue and one day.
// @Summary Get the venue timeline
// @Description Build the per-table lane view for a venue on a given date. Each active table gets a lane with its bookings and sessions, and overlapping blocking slots are reported as conflicts.
// @Tags Timeline
// @Accept json
// @Produce json
// @Param venue_id query string true "Venue ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param from query int false "Start hour of the visible range"
// @Param to query int false "End hour of the visible range"
// @Success 200 {object} dto.TimelineResponse "Timeline for the venue"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/timeline [get]
// @Security BearerAuth
func (handler *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeline")
	defer scope.End()

	venueID := r.URL.Query().Get(constant.RequestParamVenueID)
	if venueID == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("venue_id is required"))

		return
	}

	date := timezone.Now()

	if rawDate := r.URL.Query().Get(constant.RequestParamDate); rawDate != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, rawDate)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to parse timeline date")

			response.WithError(w, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD"))

			return
		}

		date = parsed
	}

	fromHour := parseHour(r.URL.Query().Get(constant.RequestParamFrom))
	toHour := parseHour(r.URL.Query().Get(constant.RequestParamTo))

	timeline, err := handler.service.Build(ctx, venueID, date, fromHour, toHour)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build timeline")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, timeline)
}

// parseHour returns -1 for absent or malformed values, which the service
// replaces with the venue's configured opening hours. Hour 0 stays a valid
// range bound for venues that open at midnight.
func parseHour(raw string) int {
	if raw == constant.Empty {
		return -1
	}

	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 24 {
		return -1
	}

	return hour
}
