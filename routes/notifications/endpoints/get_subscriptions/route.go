package get_subscriptions

import (
	"net/http"
	"strings"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/jackc/pgx/v5"
	ua "github.com/mileusna/useragent"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Push Subscriptions",
		Description: "Gets all stored push subscriptions with parsed browser info",
		Resp:        types.NotifGetList{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	rows, err := state.Pool.Query(d.Context, "SELECT endpoint, notif_id, created_at, ua FROM push_subscriptions ORDER BY created_at DESC")

	if err != nil {
		state.Logger.Error("Error while querying subscriptions", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	subs, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.NotifGet])

	if err != nil {
		state.Logger.Error("Error while collecting subscriptions", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	for i := range subs {
		uaD := ua.Parse(subs[i].UA)

		subs[i].BrowserInfo = types.NotifBrowserInfo{
			OS:         uaD.OS,
			Browser:    uaD.Name,
			BrowserVer: uaD.Version,
			Mobile:     uaD.Mobile,
		}

		// Endpoints embed per-subscription secrets in the path, show only
		// the origin
		if len(subs[i].Endpoint) > 8 {
			if idx := strings.Index(subs[i].Endpoint[8:], "/"); idx != -1 {
				subs[i].Endpoint = subs[i].Endpoint[:idx+8]
			}
		}
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.NotifGetList{
			Notifications: subs,
		},
	}
}
