package get_event_reminders

import (
	"errors"
	"net/http"

	"classchime/eventstore"
	"classchime/state"
	"classchime/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Event Reminders",
		Description: "Gets all reminders of a class event, including already-triggered ones, ordered by scheduled time",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The class event's ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.ReminderList{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	// 404 on a missing event, empty list on an event without reminders
	_, err := state.Store.GetEvent(d.Context, id)

	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return uapi.DefaultResponse(http.StatusNotFound)
		}

		state.Logger.Error("Error while fetching class event", zap.Error(err), zap.String("eventId", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	reminders, err := state.Store.GetRemindersForEvent(d.Context, id)

	if err != nil {
		state.Logger.Error("Error while fetching event reminders", zap.Error(err), zap.String("eventId", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.ReminderList{
			Reminders: reminders,
		},
	}
}
