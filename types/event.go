package types

import "time"

// A class event is a weekly recurring slot on the timetable. Start/end times
// are minute-precision wall clock strings ("HH:mm", 24h) in local time.
type ClassEvent struct {
	ID              string    `db:"id" json:"id" description:"The class event's ID"`
	Title           string    `db:"title" json:"title" validate:"required" description:"Class title as shown on alerts"`
	Location        *string   `db:"location" json:"location" description:"Where the class takes place"` // Optional
	DayOfWeek       int       `db:"day_of_week" json:"day_of_week" validate:"gte=0,lte=6" description:"Day of week, 0 = Sunday"`
	StartTime       string    `db:"start_time" json:"start_time" validate:"required" description:"Start time as HH:mm (24h)"`
	EndTime         string    `db:"end_time" json:"end_time" validate:"required" description:"End time as HH:mm (24h)"`
	Color           string    `db:"color" json:"color" description:"Color tag used by the timetable UI"` // Optional
	ReminderMinutes []int     `db:"reminder_minutes" json:"reminder_minutes" validate:"dive,gt=0" description:"Reminder offsets in minutes before start, unique and ascending"`
	VoiceEnabled    bool      `db:"voice_enabled" json:"voice_enabled" description:"Whether spoken reminders are enabled for this class"`
	CreatedAt       time.Time `db:"created_at" json:"created_at" description:"The class event's creation date"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at" description:"The class event's last update date"`
}

type ClassEventList struct {
	Events []ClassEvent `json:"events" description:"List of class events"`
}

// CreateClassEvent is the payload accepted when creating or replacing a
// class event. The ID is assigned server-side on create.
type CreateClassEvent struct {
	Title           string  `json:"title" validate:"required,max=100"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	DayOfWeek       int     `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime       string  `json:"start_time" validate:"required,hhmm"`
	EndTime         string  `json:"end_time" validate:"required,hhmm"`
	Color           string  `json:"color" validate:"omitempty,max=32"`
	ReminderMinutes []int   `json:"reminder_minutes" validate:"dive,gt=0"`
	VoiceEnabled    bool    `json:"voice_enabled"`
}
