package get_day_events

import (
	"net/http"
	"strconv"

	"classchime/state"
	"classchime/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Day Events",
		Description: "Gets all class events for one day of the week, ordered by start time",
		Params: []docs.Parameter{
			{
				Name:        "day",
				Description: "Day of week, 0 = Sunday through 6 = Saturday",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.ClassEventList{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))

	if err != nil || day < 0 || day > 6 {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Message: "Day of week must be an integer between 0 (Sunday) and 6 (Saturday)",
			},
		}
	}

	events, err := state.Store.GetEventsByDay(d.Context, day)

	if err != nil {
		state.Logger.Error("Error while fetching day events", zap.Error(err), zap.Int("day", day))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.ClassEventList{
			Events: events,
		},
	}
}
