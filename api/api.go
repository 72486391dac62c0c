// Binds onto eureka uapi
package api

import (
	"net/http"
	"strings"

	"classchime/constants"
	"classchime/state"
	"classchime/types"

	"github.com/infinitybotlist/eureka/uapi"
)

const (
	// Single-user app: the only auth target is the owning user, identified
	// by the API token in the settings row.
	TargetTypeUser = "user"
)

type DefaultResponder struct{}

func (d DefaultResponder) New(err string, ctx map[string]string) any {
	return types.ApiError{
		Message: err,
		Context: ctx,
	}
}

// Authorizes a request
func Authorize(r uapi.Route, req *http.Request) (uapi.AuthData, uapi.HttpResponse, bool) {
	authHeader := req.Header.Get("Authorization")

	if len(r.Auth) > 0 && authHeader == "" && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	authData := uapi.AuthData{}

	for _, auth := range r.Auth {
		if authData.Authorized {
			break
		}

		if authHeader == "" {
			continue
		}

		if auth.Type != TargetTypeUser {
			continue
		}

		var token string

		err := state.Pool.QueryRow(state.Context, "SELECT api_token FROM app_settings").Scan(&token)

		if err != nil {
			continue
		}

		if token == "" || strings.Replace(authHeader, "User ", "", 1) != token {
			continue
		}

		authData = uapi.AuthData{
			TargetType: TargetTypeUser,
			ID:         "owner",
			Authorized: true,
		}
	}

	if len(r.Auth) > 0 && !authData.Authorized && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	return authData, uapi.HttpResponse{}, true
}

func Setup() {
	uapi.SetupState(uapi.UAPIState{
		Logger:    state.Logger.Desugar(),
		Authorize: Authorize,
		AuthTypeMap: map[string]string{
			TargetTypeUser: "user",
		},
		Context: state.Context,
		Constants: &uapi.UAPIConstants{
			ResourceNotFound:    constants.ResourceNotFound,
			BadRequest:          constants.BadRequest,
			Forbidden:           constants.Forbidden,
			Unauthorized:        constants.Unauthorized,
			InternalServerError: constants.InternalServerError,
			MethodNotAllowed:    constants.MethodNotAllowed,
			BodyRequired:        constants.BodyRequired,
		},
		DefaultResponder: DefaultResponder{},
	})
}
