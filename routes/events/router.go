package events

import (
	"classchime/api"
	"classchime/routes/events/endpoints/create_event"
	"classchime/routes/events/endpoints/delete_event"
	"classchime/routes/events/endpoints/get_day_events"
	"classchime/routes/events/endpoints/get_event"
	"classchime/routes/events/endpoints/get_events"
	"classchime/routes/events/endpoints/update_event"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Class Events"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to class events on the timetable"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/events",
		OpId:    "get_events",
		Method:  uapi.GET,
		Docs:    get_events.Docs,
		Handler: get_events.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events/days/{day}",
		OpId:    "get_day_events",
		Method:  uapi.GET,
		Docs:    get_day_events.Docs,
		Handler: get_day_events.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events/{id}",
		OpId:    "get_event",
		Method:  uapi.GET,
		Docs:    get_event.Docs,
		Handler: get_event.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events",
		OpId:    "create_event",
		Method:  uapi.POST,
		Docs:    create_event.Docs,
		Handler: create_event.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events/{id}",
		OpId:    "update_event",
		Method:  uapi.PATCH,
		Docs:    update_event.Docs,
		Handler: update_event.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events/{id}",
		OpId:    "delete_event",
		Method:  uapi.DELETE,
		Docs:    delete_event.Docs,
		Handler: delete_event.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)
}
