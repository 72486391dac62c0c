package config

type Config struct {
	Meta          Meta          `yaml:"meta" validate:"required"`
	Scheduling    Scheduling    `yaml:"scheduling" validate:"required"`
	Notifications Notifications `yaml:"notifications" validate:"required"`
	Speech        Speech        `yaml:"speech" validate:"required"`
}

type Meta struct {
	PostgresURL string `yaml:"postgres_url" default:"postgresql:///classchime" comment:"Postgres URL" validate:"required"`
	RedisURL    string `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	Port        string `yaml:"port" default:":8391" comment:"Port to run the API server on" validate:"required"`
	TraceHost   string `yaml:"trace_host" default:"" comment:"Trusted sentry host for frontend trace relaying. Leave empty to disable"`
}

type Scheduling struct {
	PollIntervalSecs int `yaml:"poll_interval_secs" default:"30" comment:"How often the reminder poller scans for due reminders, in seconds" validate:"required,gte=5,lte=300"`
	GracePeriodMins  int `yaml:"grace_period_mins" default:"3" comment:"Reminders older than this are finalized as missed instead of alerting" validate:"required,gte=1,lte=60"`
	SnoozeMins       int `yaml:"snooze_mins" default:"5" comment:"Snooze delay before a snoozed reminder re-alerts" validate:"required,gte=1,lte=60"`
	AlarmMaxMins     int `yaml:"alarm_max_mins" default:"5" comment:"Hard ceiling on how long an unacknowledged alarm keeps re-alerting" validate:"required,gte=1,lte=30"`
}

type Notifications struct {
	VapidPublicKey  string `yaml:"vapid_public_key" comment:"Vapid Public Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	VapidPrivateKey string `yaml:"vapid_private_key" comment:"Vapid Private Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	Subscriber      string `yaml:"subscriber" default:"reminders@classchime.app" comment:"Subscriber contact sent with web push requests" validate:"required"`
}

type Speech struct {
	Command     string `yaml:"command" default:"espeak-ng" comment:"Text-to-speech command. Leave empty to disable speech and always use the fallback tone"`
	TimeoutSecs int    `yaml:"timeout_secs" default:"10" comment:"Hard timeout on a single speech synthesis call" validate:"required,gte=1,lte=60"`
}
