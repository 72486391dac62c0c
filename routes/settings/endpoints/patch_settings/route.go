package patch_settings

import (
	"net/http"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = uapi.CompileValidationErrors(types.PatchAppSettings{})

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Patch Settings",
		Description: "Replaces the app-wide settings record. The retrigger interval applies to alarms started after the update",
		Req:         types.PatchAppSettings{},
		Resp:        types.AppSettings{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.PatchAppSettings

	hresp, ok := uapi.MarshalReq(r, &payload)

	if !ok {
		return hresp
	}

	err := state.Validator.Struct(payload)

	if err != nil {
		errors := err.(validator.ValidationErrors)
		return uapi.ValidatorErrorResponse(compiledMessages, errors)
	}

	updated := types.AppSettings{
		NotificationsEnabled: payload.NotificationsEnabled,
		VoiceEnabled:         payload.VoiceEnabled,
		VoiceVolume:          payload.VoiceVolume,
		VoiceRate:            payload.VoiceRate,
		AlarmRetriggerSecs:   payload.AlarmRetriggerSecs,
		Onboarded:            payload.Onboarded,
	}

	err = state.Store.UpdateSettings(d.Context, updated)

	if err != nil {
		state.Logger.Error("Error while updating settings", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	s, err := state.Store.GetSettings(d.Context)

	if err != nil {
		state.Logger.Error("Error while fetching settings after update", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json:   s,
	}
}
