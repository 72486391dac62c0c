package get_upcoming_reminders

import (
	"net/http"
	"time"

	"classchime/state"
	"classchime/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Upcoming Reminders",
		Description: "Gets all untriggered reminders scheduled within the next 7 days, ordered by scheduled time",
		Resp:        types.ReminderList{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	now := time.Now()

	reminders, err := state.Store.GetRemindersInWindow(d.Context, now, now.AddDate(0, 0, 7))

	if err != nil {
		state.Logger.Error("Error while fetching upcoming reminders", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusOK,
		Json: types.ReminderList{
			Reminders: reminders,
		},
	}
}
