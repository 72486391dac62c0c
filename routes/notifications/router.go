package notifications

import (
	"classchime/api"
	"classchime/routes/notifications/endpoints/delete_subscription"
	"classchime/routes/notifications/endpoints/get_notification_info"
	"classchime/routes/notifications/endpoints/get_subscriptions"
	"classchime/routes/notifications/endpoints/post_subscription"
	"classchime/routes/notifications/endpoints/test_notification"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Notifications"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to web push subscriptions"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/notifications/info",
		OpId:    "get_notification_info",
		Method:  uapi.GET,
		Docs:    get_notification_info.Docs,
		Handler: get_notification_info.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/notifications/subscriptions",
		OpId:    "get_subscriptions",
		Method:  uapi.GET,
		Docs:    get_subscriptions.Docs,
		Handler: get_subscriptions.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/notifications/subscriptions",
		OpId:    "post_subscription",
		Method:  uapi.POST,
		Docs:    post_subscription.Docs,
		Handler: post_subscription.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/notifications/subscriptions/{nid}",
		OpId:    "delete_subscription",
		Method:  uapi.DELETE,
		Docs:    delete_subscription.Docs,
		Handler: delete_subscription.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/notifications/test",
		OpId:    "test_notification",
		Method:  uapi.POST,
		Docs:    test_notification.Docs,
		Handler: test_notification.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)
}
