package main

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"classchime/alarm"
	"classchime/alerts"
	"classchime/api"
	"classchime/bus"
	"classchime/constants"
	"classchime/eventstore"
	"classchime/migrations"
	"classchime/notifications"
	"classchime/routes/diagnostics"
	"classchime/routes/events"
	notificationroutes "classchime/routes/notifications"
	"classchime/routes/reminders"
	"classchime/routes/settings"
	"classchime/schedule"
	"classchime/speech"
	"classchime/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/infinitybotlist/eureka/zapchi"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var openapi []byte

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 10mb
		r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)

		if strings.HasPrefix(r.Header.Get("Origin"), "http://localhost:") || strings.HasPrefix(r.Header.Get("Origin"), "https://localhost:") {
			w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

func main() {
	state.Setup()

	migrations.Migrate(state.Context, state.Pool)

	docs.Setup()
	docs.AddSecuritySchema("User", "Authorization", "Requires the app API token, prefixed with `User `")

	api.Setup()

	state.Store = eventstore.NewPostgres(state.Pool)

	speaker := &speech.CommandSpeaker{
		Command: state.Config.Speech.Command,
		Timeout: time.Duration(state.Config.Speech.TimeoutSecs) * time.Second,
		Logger:  state.Logger,
	}

	registry := alarm.NewRegistry()

	state.Alarms = alarm.NewManager(
		registry,
		nil, // renderer is set below, the dispatcher needs the manager first
		state.Logger,
		func() time.Duration {
			s, err := state.Store.GetSettings(state.Context)

			if err != nil {
				state.Logger.Error("Error loading settings for retrigger interval", zap.Error(err))
				return 30 * time.Second
			}

			return time.Duration(s.AlarmRetriggerSecs) * time.Second
		},
		time.Duration(state.Config.Scheduling.AlarmMaxMins)*time.Minute,
		time.Duration(state.Config.Scheduling.SnoozeMins)*time.Minute,
	)

	state.Alarms.OnAcknowledged = func(reminderID string) {
		err := bus.Publish(state.Context, state.Redis, bus.Message{
			Type:       bus.TypeReminderAcknowledged,
			ReminderID: reminderID,
		})

		if err != nil {
			state.Logger.Error("Error broadcasting acknowledgment", zap.Error(err), zap.String("reminderId", reminderID))
		}
	}

	state.Dispatcher = alerts.NewDispatcher(
		state.Store,
		notifications.WebPusher{},
		speaker,
		state.Alarms,
		state.Logger,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	state.Alarms.Renderer = state.Dispatcher

	state.Poller = schedule.NewPoller(
		state.Store,
		state.Dispatcher,
		state.Logger,
		time.Duration(state.Config.Scheduling.PollIntervalSecs)*time.Second,
		time.Duration(state.Config.Scheduling.GracePeriodMins)*time.Minute,
	)

	go state.Poller.Run(state.Context)

	go bus.Listen(state.Context, state.Redis, state.Logger, func(msg bus.Message) {
		switch msg.Type {
		case bus.TypeReminderAcknowledged:
			state.Alarms.AcknowledgeLocal(msg.ReminderID)
		case bus.TypeCheckReminders:
			state.Poller.Kick()
		}
	})

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		zapchi.Logger(state.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	routers := []api.APIRouter{
		// Use same order as routes folder
		diagnostics.Router{},
		events.Router{},
		notificationroutes.Router{},
		reminders.Router{},
		settings.Router{},
	}

	for _, router := range routers {
		name, desc := router.Tag()
		if name != "" {
			docs.AddTag(name, desc)
			uapi.State.SetCurrentTag(name)
		} else {
			panic("Router tag name cannot be empty")
		}

		router.Routes(r)
	}

	r.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		w.Write(openapi)
	})

	// Load openapi here to avoid large marshalling in every request
	var err error
	openapi, err = json.Marshal(docs.GetSchema())

	if err != nil {
		panic(err)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.NotFoundPage))
	})

	state.Logger.Info("Starting API server", zap.String("port", state.Config.Meta.Port))

	err = http.ListenAndServe(state.Config.Meta.Port, r)

	if err != nil {
		state.Logger.Fatal("Error serving API", zap.Error(err))
	}
}
