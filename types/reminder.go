package types

import "time"

// A reminder is a one-shot alert for a specific weekly occurrence of a class
// event. ScheduledTime is computed once when the event is created or edited
// and is never recomputed by the poller; edits recreate all reminders for the
// event.
//
// Triggered is monotonic (false -> true, set exactly once). Missed may only
// be true alongside Triggered.
type Reminder struct {
	ID            string    `db:"id" json:"id" description:"The reminder's ID"`
	EventID       string    `db:"event_id" json:"event_id" description:"Owning class event. Weak reference, may dangle if the event was deleted"`
	ScheduledTime time.Time `db:"scheduled_time" json:"scheduled_time" description:"Absolute time the reminder should fire"`
	MinutesBefore int       `db:"minutes_before" json:"minutes_before" description:"The offset that produced scheduled_time"`
	Triggered     bool      `db:"triggered" json:"triggered" description:"Whether the reminder has been dispatched (or finalized as missed)"`
	Missed        bool      `db:"missed" json:"missed" description:"Whether the reminder was discovered too late to alert"`
}

type ReminderList struct {
	Reminders []Reminder `json:"reminders" description:"List of reminders"`
}
