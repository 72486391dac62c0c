package update_event

import (
	"errors"
	"net/http"
	"time"

	"classchime/eventstore"
	"classchime/schedule"
	"classchime/state"
	"classchime/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = uapi.CompileValidationErrors(types.CreateClassEvent{})

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Update Class Event",
		Description: "Replaces a class event with the given payload and reschedules all its reminders. Already-triggered reminders for the old schedule are dropped",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The class event's ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Req:  types.CreateClassEvent{},
		Resp: types.ClassEvent{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	var payload types.CreateClassEvent

	hresp, ok := uapi.MarshalReq(r, &payload)

	if !ok {
		return hresp
	}

	err := state.Validator.Struct(payload)

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

	existing, err := state.Store.GetEvent(d.Context, id)

	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return uapi.DefaultResponse(http.StatusNotFound)
		}

		state.Logger.Error("Error while fetching class event", zap.Error(err), zap.String("eventId", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	now := time.Now()

	ev := types.ClassEvent{
		ID:              existing.ID,
		Title:           payload.Title,
		Location:        payload.Location,
		DayOfWeek:       payload.DayOfWeek,
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		Color:           payload.Color,
		ReminderMinutes: payload.ReminderMinutes,
		VoiceEnabled:    payload.VoiceEnabled,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       now,
	}

	err = state.Store.PutEvent(d.Context, ev)

	if err != nil {
		state.Logger.Error("Error while updating class event", zap.Error(err), zap.String("eventId", ev.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	err = schedule.ScheduleRemindersForEvent(d.Context, state.Store, ev, now)

	if err != nil {
		state.Logger.Error("Error while rescheduling reminders", zap.Error(err), zap.String("eventId", ev.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json:   ev,
	}
}
