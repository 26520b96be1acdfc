package router

import (
	"venue/internal/handlers/booking"
	"venue/internal/handlers/session"
	"venue/internal/handlers/table"
	"venue/internal/handlers/timeline"
	"venue/internal/handlers/zone"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Zone     zone.Handler
	Table    table.Handler
	Booking  booking.Handler
	Timeline timeline.Handler
	Session  session.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Zone.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Timeline.Router(routerGroup)

		routerGroup.Route("/guest", func(guestGroup chi.Router) {
			r.DomainHandlers.Session.Router(guestGroup)
		})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
