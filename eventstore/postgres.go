package eventstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"classchime/db"
	"classchime/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	eventColsArr = db.GetCols(types.ClassEvent{})
	eventCols    = strings.Join(eventColsArr, ",")

	reminderColsArr = db.GetCols(types.Reminder{})
	reminderCols    = strings.Join(reminderColsArr, ",")

	settingsColsArr = db.GetCols(types.AppSettings{})
	settingsCols    = strings.Join(settingsColsArr, ",")
)

type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{Pool: pool}
}

func (p *Postgres) GetEvents(ctx context.Context) ([]types.ClassEvent, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+eventCols+" FROM class_events ORDER BY day_of_week, start_time")

	if err != nil {
		return nil, fmt.Errorf("error querying class events: %w", err)
	}

	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.ClassEvent])

	if err != nil {
		return nil, fmt.Errorf("error collecting class events: %w", err)
	}

	return events, nil
}

func (p *Postgres) GetEventsByDay(ctx context.Context, day int) ([]types.ClassEvent, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+eventCols+" FROM class_events WHERE day_of_week = $1 ORDER BY start_time", day)

	if err != nil {
		return nil, fmt.Errorf("error querying class events: %w", err)
	}

	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.ClassEvent])

	if err != nil {
		return nil, fmt.Errorf("error collecting class events: %w", err)
	}

	return events, nil
}

func (p *Postgres) GetEvent(ctx context.Context, id string) (*types.ClassEvent, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+eventCols+" FROM class_events WHERE id = $1", id)

	if err != nil {
		return nil, fmt.Errorf("error querying class event: %w", err)
	}

	ev, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.ClassEvent])

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error collecting class event: %w", err)
	}

	return &ev, nil
}

func (p *Postgres) PutEvent(ctx context.Context, ev types.ClassEvent) error {
	_, err := p.Pool.Exec(
		ctx,
		`INSERT INTO class_events (id, title, location, day_of_week, start_time, end_time, color, reminder_minutes, voice_enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			location = excluded.location,
			day_of_week = excluded.day_of_week,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			color = excluded.color,
			reminder_minutes = excluded.reminder_minutes,
			voice_enabled = excluded.voice_enabled,
			updated_at = excluded.updated_at`,
		ev.ID, ev.Title, ev.Location, ev.DayOfWeek, ev.StartTime, ev.EndTime, ev.Color, ev.ReminderMinutes, ev.VoiceEnabled, ev.CreatedAt, ev.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("error upserting class event: %w", err)
	}

	return nil
}

func (p *Postgres) DeleteEvent(ctx context.Context, id string) error {
	// Reminders cascade with the event
	_, err := p.Pool.Exec(ctx, "DELETE FROM reminders WHERE event_id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting reminders of class event: %w", err)
	}

	tag, err := p.Pool.Exec(ctx, "DELETE FROM class_events WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting class event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Postgres) GetRemindersInWindow(ctx context.Context, from, to time.Time) ([]types.Reminder, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+reminderCols+" FROM reminders WHERE NOT triggered AND scheduled_time >= $1 AND scheduled_time <= $2 ORDER BY scheduled_time", from, to)

	if err != nil {
		return nil, fmt.Errorf("error querying reminders in window: %w", err)
	}

	reminders, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.Reminder])

	if err != nil {
		return nil, fmt.Errorf("error collecting reminders: %w", err)
	}

	return reminders, nil
}

func (p *Postgres) GetReminder(ctx context.Context, id string) (*types.Reminder, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+reminderCols+" FROM reminders WHERE id = $1", id)

	if err != nil {
		return nil, fmt.Errorf("error querying reminder: %w", err)
	}

	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Reminder])

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error collecting reminder: %w", err)
	}

	return &r, nil
}

func (p *Postgres) GetRemindersForEvent(ctx context.Context, eventID string) ([]types.Reminder, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+reminderCols+" FROM reminders WHERE event_id = $1 ORDER BY scheduled_time", eventID)

	if err != nil {
		return nil, fmt.Errorf("error querying reminders of event: %w", err)
	}

	reminders, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.Reminder])

	if err != nil {
		return nil, fmt.Errorf("error collecting reminders: %w", err)
	}

	return reminders, nil
}

func (p *Postgres) PutReminder(ctx context.Context, r types.Reminder) error {
	_, err := p.Pool.Exec(
		ctx,
		`INSERT INTO reminders (id, event_id, scheduled_time, minutes_before, triggered, missed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			event_id = excluded.event_id,
			scheduled_time = excluded.scheduled_time,
			minutes_before = excluded.minutes_before,
			triggered = excluded.triggered,
			missed = excluded.missed`,
		r.ID, r.EventID, r.ScheduledTime, r.MinutesBefore, r.Triggered, r.Missed,
	)

	if err != nil {
		return fmt.Errorf("error upserting reminder: %w", err)
	}

	return nil
}

func (p *Postgres) DeleteRemindersForEvent(ctx context.Context, eventID string) error {
	_, err := p.Pool.Exec(ctx, "DELETE FROM reminders WHERE event_id = $1", eventID)

	if err != nil {
		return fmt.Errorf("error deleting reminders of event: %w", err)
	}

	return nil
}

func (p *Postgres) MarkReminderTriggered(ctx context.Context, id string, missed bool) (bool, error) {
	tag, err := p.Pool.Exec(ctx, "UPDATE reminders SET triggered = true, missed = $2 WHERE id = $1 AND NOT triggered", id, missed)

	if err != nil {
		return false, fmt.Errorf("error marking reminder triggered: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (p *Postgres) GetSettings(ctx context.Context) (*types.AppSettings, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+settingsCols+" FROM app_settings")

	if err != nil {
		return nil, fmt.Errorf("error querying settings: %w", err)
	}

	s, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.AppSettings])

	if err != nil {
		return nil, fmt.Errorf("error collecting settings: %w", err)
	}

	return &s, nil
}

func (p *Postgres) UpdateSettings(ctx context.Context, s types.AppSettings) error {
	_, err := p.Pool.Exec(
		ctx,
		`UPDATE app_settings SET
			notifications_enabled = $1,
			voice_enabled = $2,
			voice_volume = $3,
			voice_rate = $4,
			alarm_retrigger_secs = $5,
			onboarded = $6`,
		s.NotificationsEnabled, s.VoiceEnabled, s.VoiceVolume, s.VoiceRate, s.AlarmRetriggerSecs, s.Onboarded,
	)

	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}

	return nil
}
