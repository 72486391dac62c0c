package check_reminders

import (
	"net/http"
	"time"

	"classchime/bus"
	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/infinitybotlist/eureka/ratelimit"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Check Reminders",
		Description: "Requests an immediate reminder scan outside the poll cadence, in this process and in the background worker. Used when the UI regains visibility",
		Resp:        nil,
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, err := ratelimit.Ratelimit{
		Expiry:      1 * time.Minute,
		MaxRequests: 30,
		Bucket:      "check_reminders",
	}.Limit(d.Context, r)

	if err != nil {
		state.Logger.Error("Error while ratelimiting", zap.Error(err), zap.String("bucket", "check_reminders"))
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

	state.Poller.Kick()

	err = bus.Publish(d.Context, state.Redis, bus.Message{Type: bus.TypeCheckReminders})

	if err != nil {
		// The local kick already went through, a lost broadcast only delays
		// the worker until its next tick.
		state.Logger.Warn("Error broadcasting reminder check", zap.Error(err))
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
