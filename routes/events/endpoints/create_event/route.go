package create_event

import (
	"net/http"
	"time"

	"classchime/schedule"
	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/infinitybotlist/eureka/ratelimit"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var compiledMessages = uapi.CompileValidationErrors(types.CreateClassEvent{})

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Class Event",
		Description: "Creates a class event and schedules its reminders for the coming week. Returns the created event on success",
		Req:         types.CreateClassEvent{},
		Resp:        types.ClassEvent{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, err := ratelimit.Ratelimit{
		Expiry:      1 * time.Minute,
		MaxRequests: 20,
		Bucket:      "create_event",
	}.Limit(d.Context, r)

	if err != nil {
		state.Logger.Error("Error while ratelimiting", zap.Error(err), zap.String("bucket", "create_event"))
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

	var payload types.CreateClassEvent

	hresp, ok := uapi.MarshalReq(r, &payload)

	if !ok {
		return hresp
	}

	err = state.Validator.Struct(payload)

	if err != nil {
		errors := err.(validator.ValidationErrors)
		return uapi.ValidatorErrorResponse(compiledMessages, errors)
	}

	if _, _, err := schedule.ParseHHMM(payload.StartTime); err != nil {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Message: "Invalid start time: " + err.Error(),
			},
		}
	}

	if _, _, err := schedule.ParseHHMM(payload.EndTime); err != nil {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Message: "Invalid end time: " + err.Error(),
			},
		}
	}

	now := time.Now()

	ev := types.ClassEvent{
		ID:              uuid.New().String(),
		Title:           payload.Title,
		Location:        payload.Location,
		DayOfWeek:       payload.DayOfWeek,
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		Color:           payload.Color,
		ReminderMinutes: payload.ReminderMinutes,
		VoiceEnabled:    payload.VoiceEnabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = state.Store.PutEvent(d.Context, ev)

	if err != nil {
		state.Logger.Error("Error while creating class event", zap.Error(err), zap.String("eventId", ev.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	err = schedule.ScheduleRemindersForEvent(d.Context, state.Store, ev, now)

	if err != nil {
		state.Logger.Error("Error while scheduling reminders", zap.Error(err), zap.String("eventId", ev.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusCreated,
		Json:   ev,
	}
}
