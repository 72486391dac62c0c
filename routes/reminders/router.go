package reminders

import (
	"classchime/api"
	"classchime/routes/reminders/endpoints/acknowledge_reminder"
	"classchime/routes/reminders/endpoints/check_reminders"
	"classchime/routes/reminders/endpoints/get_event_reminders"
	"classchime/routes/reminders/endpoints/get_upcoming_reminders"
	"classchime/routes/reminders/endpoints/snooze_reminder"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Reminders"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to scheduled reminders and active alarms"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/reminders/upcoming",
		OpId:    "get_upcoming_reminders",
		Method:  uapi.GET,
		Docs:    get_upcoming_reminders.Docs,
		Handler: get_upcoming_reminders.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/events/{id}/reminders",
		OpId:    "get_event_reminders",
		Method:  uapi.GET,
		Docs:    get_event_reminders.Docs,
		Handler: get_event_reminders.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/reminders/{id}/acknowledge",
		OpId:    "acknowledge_reminder",
		Method:  uapi.POST,
		Docs:    acknowledge_reminder.Docs,
		Handler: acknowledge_reminder.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/reminders/{id}/snooze",
		OpId:    "snooze_reminder",
		Method:  uapi.POST,
		Docs:    snooze_reminder.Docs,
		Handler: snooze_reminder.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/reminders/check",
		OpId:    "check_reminders",
		Method:  uapi.POST,
		Docs:    check_reminders.Docs,
		Handler: check_reminders.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)
}
