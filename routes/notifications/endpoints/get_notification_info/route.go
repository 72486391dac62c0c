package get_notification_info

import (
	"net/http"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Notification Info",
		Description: "Gets the public data needed to subscribe to push notifications, such as the VAPID public key",
		Resp:        types.NotificationInfo{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.NotificationInfo{
			PublicKey: state.Config.Notifications.VapidPublicKey,
		},
	}
}
