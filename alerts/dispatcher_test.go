package alerts

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"classchime/alarm"
	"classchime/eventstore"
	"classchime/speech"
	"classchime/types"

	"go.uber.org/zap"
)

type fakeStore struct {
	mu        sync.Mutex
	events    map[string]types.ClassEvent
	reminders map[string]types.Reminder
	settings  types.AppSettings
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:    make(map[string]types.ClassEvent),
		reminders: make(map[string]types.Reminder),
		settings: types.AppSettings{
			NotificationsEnabled: true,
			VoiceEnabled:         true,
			VoiceVolume:          0.8,
			VoiceRate:            1,
			AlarmRetriggerSecs:   30,
		},
	}
}

func (f *fakeStore) GetEvents(ctx context.Context) ([]types.ClassEvent, error) {
	return nil, nil
}

func (f *fakeStore) GetEventsByDay(ctx context.Context, day int) ([]types.ClassEvent, error) {
	return nil, nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id string) (*types.ClassEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ev, ok := f.events[id]

	if !ok {
		return nil, eventstore.ErrNotFound
	}

	return &ev, nil
}

func (f *fakeStore) PutEvent(ctx context.Context, ev types.ClassEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events[ev.ID] = ev

	return nil
}

func (f *fakeStore) DeleteEvent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeStore) GetRemindersInWindow(ctx context.Context, from, to time.Time) ([]types.Reminder, error) {
	return nil, nil
}

func (f *fakeStore) GetReminder(ctx context.Context, id string) (*types.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reminders[id]

	if !ok {
		return nil, eventstore.ErrNotFound
	}

	return &r, nil
}

func (f *fakeStore) GetRemindersForEvent(ctx context.Context, eventID string) ([]types.Reminder, error) {
	return nil, nil
}

func (f *fakeStore) PutReminder(ctx context.Context, r types.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reminders[r.ID] = r

	return nil
}

func (f *fakeStore) DeleteRemindersForEvent(ctx context.Context, eventID string) error {
	return nil
}

func (f *fakeStore) MarkReminderTriggered(ctx context.Context, id string, missed bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reminders[id]

	if !ok || r.Triggered {
		return false, nil
	}

	r.Triggered = true
	r.Missed = missed
	f.reminders[id] = r

	return true, nil
}

func (f *fakeStore) GetSettings(ctx context.Context) (*types.AppSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.settings

	return &s, nil
}

func (f *fakeStore) UpdateSettings(ctx context.Context, s types.AppSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.settings = s

	return nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []types.Alert
}

func (f *fakePusher) Push(ctx context.Context, alert types.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pushed = append(f.pushed, alert)

	return nil
}

func (f *fakePusher) all() []types.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]types.Alert(nil), f.pushed...)
}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken []string
	tones  int
	err    error
}

func (f *fakeSpeaker) Speak(ctx context.Context, text string, volume, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.spoken = append(f.spoken, text)

	return nil
}

func (f *fakeSpeaker) PlayTone(urgency speech.Urgency, volume float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tones++
}

func testDispatcher(store eventstore.Store, pusher Pusher, speaker speech.Speaker) *Dispatcher {
	logger := zap.NewNop().Sugar()

	alarms := alarm.NewManager(
		alarm.NewRegistry(),
		nil,
		logger,
		func() time.Duration { return time.Hour },
		2*time.Hour,
		time.Hour,
	)

	d := NewDispatcher(store, pusher, speaker, alarms, logger, rand.New(rand.NewSource(7)))
	alarms.Renderer = d

	return d
}

func TestDispatchAlertsAndStartsAlarm(t *testing.T) {
	store := newFakeStore()
	pusher := &fakePusher{}
	speaker := &fakeSpeaker{}
	d := testDispatcher(store, pusher, speaker)
	defer d.Alarms.StopAll()

	ctx := context.Background()
	loc := "Room 204"

	store.PutEvent(ctx, types.ClassEvent{
		ID:           "ev",
		Title:        "Linear Algebra",
		Location:     &loc,
		VoiceEnabled: true,
	})
	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	err := d.Dispatch(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	if err != nil {
		t.Fatal(err)
	}

	pushed := pusher.all()

	if len(pushed) != 1 {
		t.Fatalf("Expected one push, got %d", len(pushed))
	}

	alert := pushed[0]

	if alert.Tag != "r1" || alert.Title != "Linear Algebra" || alert.Urgency != types.AlertUrgencyHigh || !alert.RequireInteraction {
		t.Errorf("Unexpected alert: %+v", alert)
	}

	if len(alert.Actions) != 2 || alert.Actions[0].Action != "acknowledge" || alert.Actions[1].Action != "snooze" {
		t.Errorf("Unexpected alert actions: %+v", alert.Actions)
	}

	if len(speaker.spoken) != 1 {
		t.Errorf("Expected one spoken alert, got %d", len(speaker.spoken))
	}

	if speaker.tones != 0 {
		t.Error("Tone fallback must not fire when speech works")
	}

	if _, ok := d.Alarms.Registry.Get("r1"); !ok {
		t.Error("Dispatch must start an alarm session")
	}

	r, _ := store.GetReminder(ctx, "r1")

	if !r.Triggered || r.Missed {
		t.Errorf("Expected reminder triggered and not missed, got triggered=%v missed=%v", r.Triggered, r.Missed)
	}
}

func TestDispatchLosesRaceQuietly(t *testing.T) {
	store := newFakeStore()
	pusher := &fakePusher{}
	d := testDispatcher(store, pusher, &fakeSpeaker{})
	defer d.Alarms.StopAll()

	ctx := context.Background()

	store.PutEvent(ctx, types.ClassEvent{ID: "ev", Title: "Math"})
	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10, Triggered: true})

	err := d.Dispatch(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	if err != nil {
		t.Fatal(err)
	}

	if len(pusher.all()) != 0 {
		t.Error("A lost race must not alert")
	}

	if _, ok := d.Alarms.Registry.Get("r1"); ok {
		t.Error("A lost race must not start an alarm")
	}
}

func TestDispatchFinalizesDanglingReminder(t *testing.T) {
	store := newFakeStore()
	pusher := &fakePusher{}
	d := testDispatcher(store, pusher, &fakeSpeaker{})
	defer d.Alarms.StopAll()

	ctx := context.Background()

	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "gone", MinutesBefore: 10})

	err := d.Dispatch(ctx, types.Reminder{ID: "r1", EventID: "gone", MinutesBefore: 10})

	if err != nil {
		t.Fatal(err)
	}

	if len(pusher.all()) != 0 {
		t.Error("A dangling reminder must not alert")
	}

	r, _ := store.GetReminder(ctx, "r1")

	if !r.Triggered || !r.Missed {
		t.Errorf("Expected dangling reminder finalized as missed, got triggered=%v missed=%v", r.Triggered, r.Missed)
	}
}

func TestDispatchRespectsDisabledChannels(t *testing.T) {
	store := newFakeStore()
	store.settings.NotificationsEnabled = false
	store.settings.VoiceEnabled = false

	pusher := &fakePusher{}
	speaker := &fakeSpeaker{}
	d := testDispatcher(store, pusher, speaker)
	defer d.Alarms.StopAll()

	ctx := context.Background()

	store.PutEvent(ctx, types.ClassEvent{ID: "ev", Title: "Math", VoiceEnabled: true})
	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	err := d.Dispatch(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	if err != nil {
		t.Fatal(err)
	}

	if len(pusher.all()) != 0 || len(speaker.spoken) != 0 || speaker.tones != 0 {
		t.Error("Disabled channels must stay silent")
	}

	// Escalation still runs so the reminder is not lost
	if _, ok := d.Alarms.Registry.Get("r1"); !ok {
		t.Error("Alarm escalation must start even with all channels disabled")
	}
}

func TestSpeechFailureFallsBackToTone(t *testing.T) {
	store := newFakeStore()
	pusher := &fakePusher{}
	speaker := &fakeSpeaker{err: speech.ErrSpeechDisabled}
	d := testDispatcher(store, pusher, speaker)
	defer d.Alarms.StopAll()

	ctx := context.Background()

	store.PutEvent(ctx, types.ClassEvent{ID: "ev", Title: "Math", VoiceEnabled: true})
	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	err := d.Dispatch(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 10})

	if err != nil {
		t.Fatal(err)
	}

	if speaker.tones != 1 {
		t.Errorf("Expected one fallback tone, got %d", speaker.tones)
	}
}

func TestRebuildSession(t *testing.T) {
	store := newFakeStore()
	d := testDispatcher(store, &fakePusher{}, &fakeSpeaker{})
	defer d.Alarms.StopAll()

	ctx := context.Background()
	loc := "Lab 3"

	store.PutEvent(ctx, types.ClassEvent{ID: "ev", Title: "Physics", Location: &loc, VoiceEnabled: true})
	store.PutReminder(ctx, types.Reminder{ID: "r1", EventID: "ev", MinutesBefore: 15, Triggered: true})

	sess, err := d.RebuildSession(ctx, "r1")

	if err != nil {
		t.Fatal(err)
	}

	if sess.ReminderID != "r1" || sess.Title != "Physics" || sess.MinutesBefore != 15 || !sess.VoiceEnabled {
		t.Errorf("Unexpected session: %+v", sess)
	}

	if _, err := d.RebuildSession(ctx, "missing"); err == nil {
		t.Error("Expected error for unknown reminder, got none")
	}
}
