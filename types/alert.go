package types

type AlertUrgency string

const (
	AlertUrgencyNormal AlertUrgency = "normal"
	AlertUrgencyHigh   AlertUrgency = "high"
)

// An alert action surfaced as a button on the push notification. The UI's
// service worker routes action clicks back to the reminders API.
type AlertAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Alert is the payload delivered over web push. RequireInteraction asks the
// platform to keep the notification up until the user dismisses it.
type Alert struct {
	Tag                string        `json:"tag" description:"Collapse key, the reminder ID. Re-pushing the same tag resurfaces a dismissed notification"`
	Title              string        `json:"title" validate:"required"`
	Message            string        `json:"message" validate:"required"`
	Urgency            AlertUrgency  `json:"urgency"`
	RequireInteraction bool          `json:"require_interaction"`
	Actions            []AlertAction `json:"actions"`
}
