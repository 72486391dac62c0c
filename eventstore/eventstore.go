// Package eventstore is the durable store shared by the API process and the
// background worker. All mutations are whole-record replaces keyed by id; the
// one exception is MarkReminderTriggered which is a conditional update so the
// two contexts cannot both win the same reminder.
package eventstore

import (
	"context"
	"errors"
	"time"

	"classchime/types"
)

var ErrNotFound = errors.New("eventstore: not found")

type Store interface {
	GetEvents(ctx context.Context) ([]types.ClassEvent, error)
	GetEventsByDay(ctx context.Context, day int) ([]types.ClassEvent, error)
	GetEvent(ctx context.Context, id string) (*types.ClassEvent, error)
	PutEvent(ctx context.Context, ev types.ClassEvent) error
	DeleteEvent(ctx context.Context, id string) error

	// GetRemindersInWindow returns untriggered reminders with
	// from <= scheduled_time <= to.
	GetRemindersInWindow(ctx context.Context, from, to time.Time) ([]types.Reminder, error)
	GetReminder(ctx context.Context, id string) (*types.Reminder, error)
	GetRemindersForEvent(ctx context.Context, eventID string) ([]types.Reminder, error)
	PutReminder(ctx context.Context, r types.Reminder) error
	DeleteRemindersForEvent(ctx context.Context, eventID string) error

	// MarkReminderTriggered flips triggered (and optionally missed) on an
	// untriggered reminder. Returns false when another caller already won
	// the flag, which makes dispatch at-most-once across contexts.
	MarkReminderTriggered(ctx context.Context, id string, missed bool) (bool, error)

	GetSettings(ctx context.Context) (*types.AppSettings, error)
	UpdateSettings(ctx context.Context, s types.AppSettings) error
}
