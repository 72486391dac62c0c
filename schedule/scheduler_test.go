package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"classchime/eventstore"
	"classchime/types"

	"go.uber.org/zap"
)

// memStore is an in-memory store with the same conditional-update semantics
// as the Postgres implementation.
type memStore struct {
	mu        sync.Mutex
	events    map[string]types.ClassEvent
	reminders map[string]types.Reminder
}

func newMemStore() *memStore {
	return &memStore{
		events:    make(map[string]types.ClassEvent),
		reminders: make(map[string]types.Reminder),
	}
}

func (m *memStore) GetEvents(ctx context.Context) ([]types.ClassEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.ClassEvent

	for _, ev := range m.events {
		out = append(out, ev)
	}

	return out, nil
}

func (m *memStore) GetEventsByDay(ctx context.Context, day int) ([]types.ClassEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.ClassEvent

	for _, ev := range m.events {
		if ev.DayOfWeek == day {
			out = append(out, ev)
		}
	}

	return out, nil
}

func (m *memStore) GetEvent(ctx context.Context, id string) (*types.ClassEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]

	if !ok {
		return nil, eventstore.ErrNotFound
	}

	return &ev, nil
}

func (m *memStore) PutEvent(ctx context.Context, ev types.ClassEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[ev.ID] = ev

	return nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return eventstore.ErrNotFound
	}

	delete(m.events, id)

	for rid, r := range m.reminders {
		if r.EventID == id {
			delete(m.reminders, rid)
		}
	}

	return nil
}

func (m *memStore) GetRemindersInWindow(ctx context.Context, from, to time.Time) ([]types.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.Reminder

	for _, r := range m.reminders {
		if !r.Triggered && !r.ScheduledTime.Before(from) && !r.ScheduledTime.After(to) {
			out = append(out, r)
		}
	}

	return out, nil
}

func (m *memStore) GetReminder(ctx context.Context, id string) (*types.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reminders[id]

	if !ok {
		return nil, eventstore.ErrNotFound
	}

	return &r, nil
}

func (m *memStore) GetRemindersForEvent(ctx context.Context, eventID string) ([]types.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []types.Reminder

	for _, r := range m.reminders {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (m *memStore) PutReminder(ctx context.Context, r types.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reminders[r.ID] = r

	return nil
}

func (m *memStore) DeleteRemindersForEvent(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for rid, r := range m.reminders {
		if r.EventID == eventID {
			delete(m.reminders, rid)
		}
	}

	return nil
}

func (m *memStore) MarkReminderTriggered(ctx context.Context, id string, missed bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reminders[id]

	if !ok || r.Triggered {
		return false, nil
	}

	r.Triggered = true
	r.Missed = missed
	m.reminders[id] = r

	return true, nil
}

func (m *memStore) GetSettings(ctx context.Context) (*types.AppSettings, error) {
	return &types.AppSettings{
		NotificationsEnabled: true,
		VoiceEnabled:         true,
		VoiceVolume:          0.8,
		VoiceRate:            1,
		AlarmRetriggerSecs:   30,
	}, nil
}

func (m *memStore) UpdateSettings(ctx context.Context, s types.AppSettings) error {
	return nil
}

// recordingDispatcher marks reminders triggered like the real dispatcher so
// repeated polls exercise the at-most-once guarantee.
type recordingDispatcher struct {
	store eventstore.Store

	mu         sync.Mutex
	dispatched []string
	failOn     string
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, r types.Reminder) error {
	if r.ID == d.failOn {
		return errors.New("dispatch failure")
	}

	won, err := d.store.MarkReminderTriggered(ctx, r.ID, false)

	if err != nil {
		return err
	}

	if !won {
		return nil
	}

	d.mu.Lock()
	d.dispatched = append(d.dispatched, r.ID)
	d.mu.Unlock()

	return nil
}

func (d *recordingDispatcher) ids() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.dispatched...)
}

func testPoller(store eventstore.Store, d Dispatcher) *Poller {
	return NewPoller(store, d, zap.NewNop().Sugar(), 30*time.Second, 3*time.Minute)
}

func TestCheckNowDispatchesDueReminder(t *testing.T) {
	store := newMemStore()
	d := &recordingDispatcher{store: store}
	p := testPoller(store, d)

	store.PutReminder(context.Background(), types.Reminder{
		ID:            "due",
		EventID:       "ev",
		ScheduledTime: time.Now().Add(-10 * time.Second),
		MinutesBefore: 10,
	})

	err := p.CheckNow(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if got := d.ids(); len(got) != 1 || got[0] != "due" {
		t.Errorf("Expected [due], got %v", got)
	}
}

func TestCheckNowSkipsFutureReminder(t *testing.T) {
	store := newMemStore()
	d := &recordingDispatcher{store: store}
	p := testPoller(store, d)

	store.PutReminder(context.Background(), types.Reminder{
		ID:            "future",
		EventID:       "ev",
		ScheduledTime: time.Now().Add(20 * time.Second),
		MinutesBefore: 10,
	})

	err := p.CheckNow(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if got := d.ids(); len(got) != 0 {
		t.Errorf("Expected no dispatches, got %v", got)
	}

	r, _ := store.GetReminder(context.Background(), "future")

	if r.Triggered {
		t.Error("Future reminder must stay untriggered")
	}
}

func TestCheckNowFinalizesStaleReminderAsMissed(t *testing.T) {
	store := newMemStore()
	d := &recordingDispatcher{store: store}
	p := NewPoller(store, d, zap.NewNop().Sugar(), 10*time.Minute, 3*time.Minute)

	store.PutReminder(context.Background(), types.Reminder{
		ID:            "stale",
		EventID:       "ev",
		ScheduledTime: time.Now().Add(-5 * time.Minute),
		MinutesBefore: 10,
	})

	err := p.CheckNow(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if got := d.ids(); len(got) != 0 {
		t.Errorf("Expected no dispatches for stale reminder, got %v", got)
	}

	r, _ := store.GetReminder(context.Background(), "stale")

	if !r.Triggered || !r.Missed {
		t.Errorf("Expected stale reminder finalized as missed, got triggered=%v missed=%v", r.Triggered, r.Missed)
	}
}

func TestCheckNowIsIdempotentAcrossPolls(t *testing.T) {
	store := newMemStore()
	d := &recordingDispatcher{store: store}
	p := testPoller(store, d)

	store.PutReminder(context.Background(), types.Reminder{
		ID:            "due",
		EventID:       "ev",
		ScheduledTime: time.Now().Add(-5 * time.Second),
		MinutesBefore: 10,
	})

	for i := 0; i < 3; i++ {
		if err := p.CheckNow(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if got := d.ids(); len(got) != 1 {
		t.Errorf("Expected exactly one dispatch across polls, got %v", got)
	}
}

func TestCheckNowIsolatesPerReminderErrors(t *testing.T) {
	store := newMemStore()
	d := &recordingDispatcher{store: store, failOn: "bad"}
	p := testPoller(store, d)

	now := time.Now()

	store.PutReminder(context.Background(), types.Reminder{
		ID:            "bad",
		EventID:       "ev",
		ScheduledTime: now.Add(-10 * time.Second),
		MinutesBefore: 10,
	})
	store.PutReminder(context.Background(), types.Reminder{
		ID:            "good",
		EventID:       "ev",
		ScheduledTime: now.Add(-10 * time.Second),
		MinutesBefore: 5,
	})

	err := p.CheckNow(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	found := false

	for _, id := range d.ids() {
		if id == "good" {
			found = true
		}
	}

	if !found {
		t.Error("A failing reminder must not block the rest of the batch")
	}

	// The failed reminder stays untriggered for the next tick
	r, _ := store.GetReminder(context.Background(), "bad")

	if r.Triggered {
		t.Error("Failed reminder must stay untriggered")
	}
}

func TestScheduleRemindersForEventReplacesAndDedupes(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	ev := types.ClassEvent{
		ID:              "ev",
		Title:           "Linear Algebra",
		DayOfWeek:       3,
		StartTime:       "14:00",
		EndTime:         "15:30",
		ReminderMinutes: []int{30, 10, 30, -5, 10},
	}

	// Pre-existing reminder from an earlier schedule, already triggered
	store.PutReminder(ctx, types.Reminder{
		ID:        "old",
		EventID:   "ev",
		Triggered: true,
	})

	err := ScheduleRemindersForEvent(ctx, store, ev, monday)

	if err != nil {
		t.Fatal(err)
	}

	reminders, _ := store.GetRemindersForEvent(ctx, "ev")

	if len(reminders) != 2 {
		t.Fatalf("Expected 2 reminders after dedupe, got %d", len(reminders))
	}

	offsets := map[int]bool{}

	for _, r := range reminders {
		if r.Triggered || r.Missed {
			t.Errorf("Fresh reminder %s must be untriggered", r.ID)
		}

		if r.ID == "old" {
			t.Error("Old reminders must be replaced, not kept")
		}

		offsets[r.MinutesBefore] = true

		want := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC).Add(-time.Duration(r.MinutesBefore) * time.Minute)

		if !r.ScheduledTime.Equal(want) {
			t.Errorf("Expected %v for offset %d, got %v", want, r.MinutesBefore, r.ScheduledTime)
		}
	}

	if !offsets[10] || !offsets[30] {
		t.Errorf("Expected offsets 10 and 30, got %v", offsets)
	}
}

func TestKickCoalesces(t *testing.T) {
	p := testPoller(newMemStore(), &recordingDispatcher{})

	// A flood of kicks must never block
	for i := 0; i < 10; i++ {
		p.Kick()
	}
}
