package delete_event

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
		Summary:     "Delete Class Event",
		Description: "Deletes a class event together with all its reminders, triggered or not",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The class event's ID",
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

	err := state.Store.DeleteEvent(d.Context, id)

	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return uapi.DefaultResponse(http.StatusNotFound)
		}

		state.Logger.Error("Error while deleting class event", zap.Error(err), zap.String("eventId", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
