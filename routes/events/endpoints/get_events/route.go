package get_events

import (
	"net/http"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Class Events",
		Description: "Gets the full weekly timetable, ordered by day and start time",
		Resp:        types.ClassEventList{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	events, err := state.Store.GetEvents(d.Context)

	if err != nil {
		state.Logger.Error("Error while fetching class events", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.ClassEventList{
			Events: events,
		},
	}
}
