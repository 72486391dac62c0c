package acknowledge_reminder

import (
	"net/http"

	"classchime/state"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Acknowledge Reminder",
		Description: "Stops the alarm for a triggered reminder. The acknowledgment is broadcast so an alarm owned by the background worker stops too",
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

	// Always broadcast, even without a local session: the alarm may be
	// running in the other process.
	state.Alarms.Acknowledge(id)

	return uapi.DefaultResponse(http.StatusNoContent)
}
