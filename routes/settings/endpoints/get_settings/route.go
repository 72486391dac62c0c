package get_settings

import (
	"net/http"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Settings",
		Description: "Gets the app-wide settings record",
		Resp:        types.AppSettings{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	s, err := state.Store.GetSettings(d.Context)

	if err != nil {
		state.Logger.Error("Error while fetching settings", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json:   s,
	}
}
