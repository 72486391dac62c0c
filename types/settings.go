package types

// AppSettings is a singleton record read by every component that needs to
// decide whether/how to alert.
type AppSettings struct {
	NotificationsEnabled bool    `db:"notifications_enabled" json:"notifications_enabled" description:"Whether push notifications are shown at all"`
	VoiceEnabled         bool    `db:"voice_enabled" json:"voice_enabled" description:"Global switch for spoken reminders"`
	VoiceVolume          float64 `db:"voice_volume" json:"voice_volume" validate:"gte=0.1,lte=1" description:"Speech volume, 0.1 to 1.0"`
	VoiceRate            float64 `db:"voice_rate" json:"voice_rate" validate:"gte=0.5,lte=1.5" description:"Speech rate, 0.5 to 1.5"`
	AlarmRetriggerSecs   int     `db:"alarm_retrigger_secs" json:"alarm_retrigger_secs" validate:"oneof=15 30 60 120" description:"Seconds between alarm re-alerts until acknowledged"`
	Onboarded            bool    `db:"onboarded" json:"onboarded" description:"Whether first-run onboarding has completed"`
	APIToken             string  `db:"api_token" json:"-"`
}

// PatchAppSettings is the payload accepted on settings updates. Settings are
// replaced whole-record; absent fields keep their stored value client-side.
type PatchAppSettings struct {
	NotificationsEnabled bool    `json:"notifications_enabled"`
	VoiceEnabled         bool    `json:"voice_enabled"`
	VoiceVolume          float64 `json:"voice_volume" validate:"gte=0.1,lte=1"`
	VoiceRate            float64 `json:"voice_rate" validate:"gte=0.5,lte=1.5"`
	AlarmRetriggerSecs   int     `json:"alarm_retrigger_secs" validate:"oneof=15 30 60 120"`
	Onboarded            bool    `json:"onboarded"`
}
