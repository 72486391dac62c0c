package test_notification

import (
	"net/http"
	"time"

	"classchime/constants"
	"classchime/notifications"
	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/infinitybotlist/eureka/ratelimit"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Test Notification",
		Description: "Sends a canned test notification to every stored subscription so delivery can be verified end to end",
		Resp:        nil,
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, err := ratelimit.Ratelimit{
		Expiry:      1 * time.Minute,
		MaxRequests: 3,
		Bucket:      "test_notification",
	}.Limit(d.Context, r)

	if err != nil {
		state.Logger.Error("Error while ratelimiting", zap.Error(err), zap.String("bucket", "test_notification"))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if limit.Exceeded {
		return uapi.HttpResponse{
			Json: types.ApiError{
				Message: "You are being ratelimited. Please try again in " + limit.TimeToReset.String(),
			},
			Headers: limit.Headers(),
			Status:  http.StatusTooManyRequests,
		}
	}

	rows, err := state.Pool.Query(d.Context, "SELECT notif_id FROM push_subscriptions")

	if err != nil {
		state.Logger.Error("Error while querying subscriptions", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	defer rows.Close()

	for rows.Next() {
		var notifID string

		err = rows.Scan(&notifID)

		if err != nil {
			state.Logger.Error("Error decoding subscription", zap.Error(err))
			continue
		}

		err = notifications.PushToClient(d.Context, notifID, []byte(constants.TestNotif))

		if err != nil {
			state.Logger.Error("Error pushing test notification", zap.Error(err), zap.String("notifId", notifID))
			continue
		}
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
