package migrations

import (
	"context"

	"classchime/state"

	"github.com/jackc/pgx/v5/pgxpool"
)

type migrator struct {
	name string
	fn   func(context.Context, *pgxpool.Pool)
}

var migs = []migrator{
	{
		name: "create class_events",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "class_events") {
				return
			}

			_, err := pool.Exec(ctx, `
				CREATE TABLE class_events (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					location TEXT,
					day_of_week INT NOT NULL CHECK (day_of_week >= 0 AND day_of_week <= 6),
					start_time TEXT NOT NULL,
					end_time TEXT NOT NULL,
					color TEXT NOT NULL DEFAULT '',
					reminder_minutes INT[] NOT NULL DEFAULT '{}',
					voice_enabled BOOLEAN NOT NULL DEFAULT true,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)
			`)

			if err != nil {
				panic(err)
			}

			_, err = pool.Exec(ctx, "CREATE INDEX class_events_day_of_week_idx ON class_events (day_of_week)")

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "create reminders",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "reminders") {
				return
			}

			_, err := pool.Exec(ctx, `
				CREATE TABLE reminders (
					id TEXT PRIMARY KEY,
					event_id TEXT NOT NULL,
					scheduled_time TIMESTAMPTZ NOT NULL,
					minutes_before INT NOT NULL,
					triggered BOOLEAN NOT NULL DEFAULT false,
					missed BOOLEAN NOT NULL DEFAULT false,
					CHECK (triggered OR NOT missed)
				)
			`)

			if err != nil {
				panic(err)
			}

			_, err = pool.Exec(ctx, "CREATE INDEX reminders_event_id_idx ON reminders (event_id)")

			if err != nil {
				panic(err)
			}

			// Partial index, the poller only ever scans untriggered rows
			_, err = pool.Exec(ctx, "CREATE INDEX reminders_scheduled_time_idx ON reminders (scheduled_time) WHERE NOT triggered")

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "create push_subscriptions",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "push_subscriptions") {
				return
			}

			_, err := pool.Exec(ctx, `
				CREATE TABLE push_subscriptions (
					notif_id TEXT PRIMARY KEY,
					endpoint TEXT NOT NULL UNIQUE,
					auth TEXT NOT NULL,
					p256dh TEXT NOT NULL,
					ua TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				)
			`)

			if err != nil {
				panic(err)
			}
		},
	},
	{
		name: "create app_settings",
		fn: func(ctx context.Context, pool *pgxpool.Pool) {
			if tableExists(ctx, pool, "app_settings") {
				return
			}

			_, err := pool.Exec(ctx, `
				CREATE TABLE app_settings (
					onerow BOOLEAN PRIMARY KEY DEFAULT true CHECK (onerow),
					notifications_enabled BOOLEAN NOT NULL DEFAULT true,
					voice_enabled BOOLEAN NOT NULL DEFAULT true,
					voice_volume DOUBLE PRECISION NOT NULL DEFAULT 1.0,
					voice_rate DOUBLE PRECISION NOT NULL DEFAULT 1.0,
					alarm_retrigger_secs INT NOT NULL DEFAULT 30,
					onboarded BOOLEAN NOT NULL DEFAULT false,
					api_token TEXT NOT NULL
				)
			`)

			if err != nil {
				panic(err)
			}

			_, err = pool.Exec(ctx, "INSERT INTO app_settings (api_token) VALUES (md5(random()::text) || md5(random()::text))")

			if err != nil {
				panic(err)
			}
		},
	},
}

// Migrate brings the schema up to date. Each migrator is idempotent, so
// running this on every startup is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) {
	for _, mig := range migs {
		state.Logger.Info("Running migration: " + mig.name)
		mig.fn(ctx, pool)
	}
}
