package state

import (
	"classchime/alarm"
	"classchime/alerts"
	"classchime/eventstore"
	"classchime/schedule"
)

// App-level singletons, wired in main after Setup(). Route handlers reach
// the running poller/alarm manager of this process through these.
var (
	Store      eventstore.Store
	Poller     *schedule.Poller
	Alarms     *alarm.Manager
	Dispatcher *alerts.Dispatcher
)
