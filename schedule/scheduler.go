package schedule

import (
	"context"
	"fmt"
	"time"

	"classchime/eventstore"
	"classchime/types"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Dispatcher turns a due reminder into a user-facing alert. Implemented by
// alerts.Dispatcher; the poller only cares that dispatch either succeeds or
// returns an error to log.
type Dispatcher interface {
	Dispatch(ctx context.Context, r types.Reminder) error
}

// Poller scans the store on a fixed cadence for reminders whose scheduled
// time falls inside a symmetric window around now, finalizes stale ones as
// missed and hands the rest to the dispatcher. Ticks are strictly
// sequential within one poller.
type Poller struct {
	Store      eventstore.Store
	Dispatcher Dispatcher
	Logger     *zap.SugaredLogger

	// Interval is the poll cadence and the forward reach of the scan
	// window. Grace is how far past its scheduled time a reminder may fire
	// before it is silently suppressed as missed.
	Interval time.Duration
	Grace    time.Duration

	kick chan struct{}
}

func NewPoller(store eventstore.Store, dispatcher Dispatcher, logger *zap.SugaredLogger, interval, grace time.Duration) *Poller {
	return &Poller{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
		Interval:   interval,
		Grace:      grace,
		kick:       make(chan struct{}, 1),
	}
}

// Kick requests an opportunistic scan outside the fixed cadence, e.g. when
// the UI regains visibility or a CHECK_REMINDERS message arrives. Coalesces
// if a kick is already pending.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Start launches the poll loop and returns a handle that stops it.
func (p *Poller) Start() (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())

	go p.Run(ctx)

	return stop
}

func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.Interval)
	defer t.Stop()

	for {
		err := p.CheckNow(ctx)

		if err != nil {
			p.Logger.Error("Reminder scan failed, retrying next tick", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		case <-p.kick:
		}
	}
}

// CheckNow performs a single scan. An error processing one reminder never
// aborts the rest of the batch; a reminder left unprocessed by a transient
// error stays untriggered and is picked up again next tick.
//
// The scan window reaches back past the grace period so a reminder that came
// due while no poller was running is still observed and finalized as missed
// instead of lingering untriggered.
func (p *Poller) CheckNow(ctx context.Context) error {
	now := time.Now()

	reminders, err := p.Store.GetRemindersInWindow(ctx, now.Add(-(p.Grace + p.Interval)), now.Add(p.Interval))

	if err != nil {
		return fmt.Errorf("error scanning reminder window: %w", err)
	}

	for _, r := range reminders {
		if r.Triggered || r.ScheduledTime.After(now) {
			continue
		}

		if now.Sub(r.ScheduledTime) > p.Grace {
			// Stale reminders are suppressed, not back-filled
			_, err := p.Store.MarkReminderTriggered(ctx, r.ID, true)

			if err != nil {
				p.Logger.Error("Error finalizing missed reminder", zap.Error(err), zap.String("reminderId", r.ID))
			}

			continue
		}

		err := p.Dispatcher.Dispatch(ctx, r)

		if err != nil {
			p.Logger.Error("Error dispatching reminder", zap.Error(err), zap.String("reminderId", r.ID))
			continue
		}
	}

	return nil
}

// ScheduleRemindersForEvent recreates all reminders of an event from its
// configured offsets. Replace-all semantics: existing reminders are dropped
// first, including already-triggered ones.
func ScheduleRemindersForEvent(ctx context.Context, store eventstore.Store, ev types.ClassEvent, now time.Time) error {
	err := store.DeleteRemindersForEvent(ctx, ev.ID)

	if err != nil {
		return fmt.Errorf("error dropping old reminders: %w", err)
	}

	offsets := mapset.NewSet[int]()

	for _, m := range ev.ReminderMinutes {
		if m > 0 {
			offsets.Add(m)
		}
	}

	sorted := offsets.ToSlice()
	slices.Sort(sorted)

	for _, m := range sorted {
		sched, err := ScheduledTime(now, ev.DayOfWeek, ev.StartTime, m)

		if err != nil {
			return fmt.Errorf("error computing reminder time: %w", err)
		}

		err = store.PutReminder(ctx, types.Reminder{
			ID:            uuid.New().String(),
			EventID:       ev.ID,
			ScheduledTime: sched,
			MinutesBefore: m,
		})

		if err != nil {
			return fmt.Errorf("error storing reminder: %w", err)
		}
	}

	return nil
}
