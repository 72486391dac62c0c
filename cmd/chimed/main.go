// chimed is the background worker: it polls for due reminders and runs alarm
// escalation even when the API process is not running. It shares nothing with
// the API process except the durable store and the Redis bus.
package main

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"classchime/alarm"
	"classchime/alerts"
	"classchime/bus"
	"classchime/eventstore"
	"classchime/notifications"
	"classchime/schedule"
	"classchime/speech"
	"classchime/state"

	"go.uber.org/zap"
)

func main() {
	state.Setup()

	state.Store = eventstore.NewPostgres(state.Pool)

	speaker := &speech.CommandSpeaker{
		Command: state.Config.Speech.Command,
		Timeout: time.Duration(state.Config.Speech.TimeoutSecs) * time.Second,
		Logger:  state.Logger,
	}

	registry := alarm.NewRegistry()

	state.Alarms = alarm.NewManager(
		registry,
		nil,
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go bus.Listen(ctx, state.Redis, state.Logger, func(msg bus.Message) {
		switch msg.Type {
		case bus.TypeReminderAcknowledged:
			state.Alarms.AcknowledgeLocal(msg.ReminderID)
		case bus.TypeCheckReminders:
			state.Poller.Kick()
		}
	})

	state.Logger.Info("Starting background reminder worker")

	state.Poller.Run(ctx)

	state.Alarms.StopAll()
}
