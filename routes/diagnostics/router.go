package diagnostics

import (
	"classchime/routes/diagnostics/endpoints/failure_management"
	"classchime/routes/diagnostics/endpoints/ping"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Diagnostics"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints allow diagnosing potential connection issues to the API."
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/",
		OpId:    "ping",
		Method:  uapi.GET,
		Docs:    ping.Docs,
		Handler: ping.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/failure-management",
		OpId:    "failure_management",
		Method:  uapi.POST,
		Docs:    failure_management.Docs,
		Handler: failure_management.Route,
	}.Route(r)
}
