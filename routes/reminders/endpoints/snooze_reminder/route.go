package snooze_reminder

import (
	"errors"
	"net/http"

	"classchime/eventstore"
	"classchime/state"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Snooze Reminder",
		Description: "Acknowledges the alarm for a triggered reminder and schedules a one-shot re-alert after the snooze delay",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The reminder's ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: nil,
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	sess, ok := state.Alarms.Registry.Get(id)

	if !ok {
		// The session died locally or lives in the other process, rebuild
		// the rendering context from the store.
		rebuilt, err := state.Dispatcher.RebuildSession(d.Context, id)

		if err != nil {
			if errors.Is(err, eventstore.ErrNotFound) {
				return uapi.DefaultResponse(http.StatusNotFound)
			}

			state.Logger.Error("Error while rebuilding alarm session", zap.Error(err), zap.String("reminderId", id))
			return uapi.DefaultResponse(http.StatusInternalServerError)
		}

		sess = rebuilt
	}

	state.Alarms.Snooze(sess)

	return uapi.DefaultResponse(http.StatusNoContent)
}
