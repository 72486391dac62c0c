package post_subscription

import (
	"net/http"

	"classchime/state"
	"classchime/types"

	"github.com/infinitybotlist/eureka/crypto"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = uapi.CompileValidationErrors(types.UserSubscription{})

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Push Subscription",
		Description: "Stores a browser push subscription for reminder notifications. Re-subscribing the same endpoint replaces the stored keys",
		Req:         types.UserSubscription{},
		Resp:        types.ApiError{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.UserSubscription

	hresp, ok := uapi.MarshalReq(r, &payload)

	if !ok {
		return hresp
	}

	err := state.Validator.Struct(payload)

	if err != nil {
		errors := err.(validator.ValidationErrors)
		return uapi.ValidatorErrorResponse(compiledMessages, errors)
	}

	// The UA is stored so subscriptions can be told apart when managing them
	ua := r.UserAgent()

	notifID := crypto.RandString(64)

	_, err = state.Pool.Exec(
		d.Context,
		`INSERT INTO push_subscriptions (notif_id, auth, p256dh, endpoint, ua)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (endpoint) DO UPDATE SET
			auth = excluded.auth,
			p256dh = excluded.p256dh,
			ua = excluded.ua`,
		notifID, payload.Auth, payload.P256dh, payload.Endpoint, ua,
	)

	if err != nil {
		state.Logger.Error("Error while storing subscription", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
