package get_event

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
		Summary:     "Get Class Event",
		Description: "Gets a single class event by its ID",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The class event's ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.ClassEvent{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	ev, err := state.Store.GetEvent(d.Context, id)

	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return uapi.DefaultResponse(http.StatusNotFound)
		}

		state.Logger.Error("Error while fetching class event", zap.Error(err), zap.String("eventId", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json:   ev,
	}
}
