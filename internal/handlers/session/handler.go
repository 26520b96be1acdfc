package session

import (
	"context"
	"net/http"
	"time"
	"venue/config"
	"venue/infras/otel"
	"venue/internal/domains/session/model/dto"
	"venue/internal/domains/session/service"
	"venue/shared/constant"
	"venue/shared/validator"
	"venue/transport/http/middleware"
	"venue/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the guest occupancy endpoints. The session pointer lives in
// an HttpOnly cookie: the handler reads it as a hint, and rewrites it from
// whatever the service says is authoritative after each call.
type Handler struct {
	service    service.Session
	middleware middleware.AuthRole
	cfg        *config.Config
	otel       otel.Otel
}

func New(service service.Session, middleware middleware.AuthRole, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		cfg:        cfg,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables/{id}/session", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTableSession)
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Delete("/", handler.EndSession)
	})
}

// GetTableSession reports whether the table is occupied.
// @Summary Get the live session of a table
// @Description Report the table's current occupancy. The response also refreshes or discards the guest's session cookie to match what the table actually holds.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} dto.TableSessionResponse "Table occupancy"
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/guest/tables/{id}/session [get]
func (handler *Handler) GetTableSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableSession")
	defer scope.End()

	ctx, cancel := handler.storeContext(ctx)
	defer cancel()

	tableID := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Resolve(ctx, tableID, handler.readPointer(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve table session")

		response.WithError(w, err)

		return
	}

	handler.writePointer(w, res.Pointer)
	response.WithJSON(w, http.StatusOK, res)
}

// StartSession claims the table for the guest, or joins the live session.
// @Summary Start a session on a table
// @Description Claim the table for the guest. If the table already holds a live session the guest joins it instead of creating a duplicate.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.StartSessionRequest false "Start Session Request"
// @Success 200 {object} dto.StartSessionResponse "Joined the existing session"
// @Success 201 {object} dto.StartSessionResponse "Session started"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/guest/tables/{id}/session [post]
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	ctx, cancel := handler.storeContext(ctx)
	defer cancel()

	tableID := chi.URLParam(r, constant.RequestParamID)

	req := dto.StartSessionRequest{}
	if r.Body != nil && r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	res, err := handler.service.Start(ctx, tableID, handler.readPointer(r), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start session")

		response.WithError(w, err)

		return
	}

	handler.writePointer(w, res.Session.ID)

	status := http.StatusCreated
	if res.Joined {
		status = http.StatusOK
	}

	response.WithJSON(w, status, res)
}

// EndSession releases the table.
// @Summary End the session on a table
// @Description Release the table. The table's live session is ended even when the caller's pointer names a different one. Ending a table that is already free succeeds with an explanatory message.
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} dto.EndSessionResponse "End outcome"
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/guest/tables/{id}/session [delete]
func (handler *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EndSession")
	defer scope.End()

	ctx, cancel := handler.storeContext(ctx)
	defer cancel()

	tableID := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.End(ctx, tableID, handler.readPointer(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to end session")

		response.WithError(w, err)

		return
	}

	// The pointer is spent whether the end committed or turned out benign.
	handler.writePointer(w, constant.Empty)
	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(handler.cfg.Venue.Session.StoreTimeoutMS)*time.Millisecond)
}

func (handler *Handler) readPointer(r *http.Request) string {
	cookie, err := r.Cookie(handler.cfg.Venue.Session.CookieName)
	if err != nil {
		return constant.Empty
	}

	return cookie.Value
}

func (handler *Handler) writePointer(w http.ResponseWriter, pointer string) {
	cookie := &http.Cookie{
		Name:     handler.cfg.Venue.Session.CookieName,
		Value:    pointer,
		Path:     "/",
		MaxAge:   handler.cfg.Venue.Session.CookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if pointer == constant.Empty {
		cookie.MaxAge = -1
	}

	http.SetCookie(w, cookie)
}
