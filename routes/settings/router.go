package settings

import (
	"classchime/api"
	"classchime/routes/settings/endpoints/get_settings"
	"classchime/routes/settings/endpoints/patch_settings"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Settings"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to app-wide settings"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/settings",
		OpId:    "get_settings",
		Method:  uapi.GET,
		Docs:    get_settings.Docs,
		Handler: get_settings.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/settings",
		OpId:    "patch_settings",
		Method:  uapi.PATCH,
		Docs:    patch_settings.Docs,
		Handler: patch_settings.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)
}
