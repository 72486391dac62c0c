// Package alerts turns due reminders into user-facing alerts: a persistent
// action-bearing push notification plus a spoken announcement with a tone
// fallback.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"classchime/alarm"
	"classchime/eventstore"
	"classchime/speech"
	"classchime/types"

	"go.uber.org/zap"
)

// Pusher delivers an alert payload over web push. Implemented by
// notifications.WebPusher.
type Pusher interface {
	Push(ctx context.Context, alert types.Alert) error
}

type Dispatcher struct {
	Store   eventstore.Store
	Pusher  Pusher
	Speaker speech.Speaker
	Alarms  *alarm.Manager
	Logger  *zap.SugaredLogger

	mu   sync.Mutex
	rand *rand.Rand
}

func NewDispatcher(store eventstore.Store, pusher Pusher, speaker speech.Speaker, alarms *alarm.Manager, logger *zap.SugaredLogger, rng *rand.Rand) *Dispatcher {
	return &Dispatcher{
		Store:   store,
		Pusher:  pusher,
		Speaker: speaker,
		Alarms:  alarms,
		Logger:  logger,
		rand:    rng,
	}
}

// Dispatch alerts for a due reminder and begins alarm escalation. Winning
// the persisted triggered flag is what makes dispatch at-most-once: a second
// poll tick, or the other context's poller, loses the conditional update and
// backs off. Safe to call concurrently for distinct reminders.
func (d *Dispatcher) Dispatch(ctx context.Context, r types.Reminder) error {
	ev, err := d.Store.GetEvent(ctx, r.EventID)

	if errors.Is(err, eventstore.ErrNotFound) {
		// Dangling reference, finalize quietly
		_, err := d.Store.MarkReminderTriggered(ctx, r.ID, true)

		if err != nil {
			return fmt.Errorf("error finalizing dangling reminder: %w", err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("error resolving reminder event: %w", err)
	}

	settings, err := d.Store.GetSettings(ctx)

	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}

	won, err := d.Store.MarkReminderTriggered(ctx, r.ID, false)

	if err != nil {
		return fmt.Errorf("error marking reminder triggered: %w", err)
	}

	if !won {
		return nil
	}

	d.mu.Lock()
	body := ComposeMessage(d.rand, ev.Title, ev.Location, r.MinutesBefore)
	d.mu.Unlock()

	sess := alarm.NewSession(r.ID, ev.Title, body, r.MinutesBefore, ev.VoiceEnabled)

	d.render(ctx, sess, settings)
	d.Alarms.Start(sess)

	return nil
}

// RebuildSession reconstructs the rendering context of a reminder from the
// store, for callers (the snooze endpoint) whose in-memory session already
// died or lives in the other process.
func (d *Dispatcher) RebuildSession(ctx context.Context, reminderID string) (*alarm.Session, error) {
	r, err := d.Store.GetReminder(ctx, reminderID)

	if err != nil {
		return nil, fmt.Errorf("error fetching reminder: %w", err)
	}

	ev, err := d.Store.GetEvent(ctx, r.EventID)

	if err != nil {
		return nil, fmt.Errorf("error resolving reminder event: %w", err)
	}

	d.mu.Lock()
	body := ComposeMessage(d.rand, ev.Title, ev.Location, r.MinutesBefore)
	d.mu.Unlock()

	return alarm.NewSession(r.ID, ev.Title, body, r.MinutesBefore, ev.VoiceEnabled), nil
}

// Render re-renders an alert for an active alarm session. Satisfies
// alarm.Renderer.
func (d *Dispatcher) Render(ctx context.Context, sess *alarm.Session) {
	settings, err := d.Store.GetSettings(ctx)

	if err != nil {
		d.Logger.Error("Error loading settings for re-render", zap.Error(err), zap.String("reminderId", sess.ReminderID))
		return
	}

	d.render(ctx, sess, settings)
}

// render performs one alert pass. Every channel is best-effort: failures
// degrade to fewer channels, never to a dropped poll loop.
func (d *Dispatcher) render(ctx context.Context, sess *alarm.Session, settings *types.AppSettings) {
	if settings.NotificationsEnabled {
		err := d.Pusher.Push(ctx, types.Alert{
			Tag:                sess.ReminderID,
			Title:              sess.Title,
			Message:            sess.Body,
			Urgency:            types.AlertUrgencyHigh,
			RequireInteraction: true,
			Actions: []types.AlertAction{
				{Action: "acknowledge", Title: "Got it!"},
				{Action: "snooze", Title: "Snooze 5 min"},
			},
		})

		if err != nil {
			d.Logger.Error("Error pushing reminder notification", zap.Error(err), zap.String("reminderId", sess.ReminderID))
		}
	}

	if settings.VoiceEnabled && sess.VoiceEnabled {
		err := d.Speaker.Speak(ctx, sess.Body, settings.VoiceVolume, settings.VoiceRate)

		if err != nil {
			if !errors.Is(err, speech.ErrSpeechDisabled) {
				d.Logger.Warn("Speech failed, falling back to tone", zap.Error(err), zap.String("reminderId", sess.ReminderID))
			}

			d.Speaker.PlayTone(speech.UrgencyHigh, settings.VoiceVolume)
		}
	}
}
