package delete_subscription

import (
	"net/http"

	"classchime/state"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Delete Push Subscription",
		Description: "Deletes a stored push subscription by its notification ID",
		Params: []docs.Parameter{
			{
				Name:        "nid",
				Description: "The notification subscription's ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: nil,
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	nid := chi.URLParam(r, "nid")

	if nid == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	tag, err := state.Pool.Exec(d.Context, "DELETE FROM push_subscriptions WHERE notif_id = $1", nid)

	if err != nil {
		state.Logger.Error("Error while deleting subscription", zap.Error(err), zap.String("notifId", nid))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if tag.RowsAffected() == 0 {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
