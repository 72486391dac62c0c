package alarm

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingRenderer struct {
	mu       sync.Mutex
	rendered []string
}

func (c *countingRenderer) Render(ctx context.Context, s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rendered = append(c.rendered, s.ReminderID)
}

func (c *countingRenderer) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.rendered)
}

func (c *countingRenderer) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.rendered) == 0 {
		return ""
	}

	return c.rendered[len(c.rendered)-1]
}

func testManager(r Renderer, interval, maxDuration, snoozeDelay time.Duration) *Manager {
	return NewManager(
		NewRegistry(),
		r,
		zap.NewNop().Sugar(),
		func() time.Duration { return interval },
		maxDuration,
		snoozeDelay,
	)
}

func waitForIdle(t *testing.T, m *Manager, id string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		if _, ok := m.Registry.Get(id); !ok {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("Session %s never went idle", id)
}

func TestStartIsIdempotent(t *testing.T) {
	r := &countingRenderer{}
	m := testManager(r, time.Hour, 2*time.Hour, time.Hour)
	defer m.StopAll()

	if !m.Start(NewSession("r1", "Math", "body", 10, false)) {
		t.Fatal("First start must succeed")
	}

	if m.Start(NewSession("r1", "Math", "body", 10, false)) {
		t.Error("Second start for the same reminder must be a no-op")
	}

	if ids := m.Registry.Active(); len(ids) != 1 {
		t.Errorf("Expected one active session, got %v", ids)
	}
}

func TestAcknowledgeStopsRetriggering(t *testing.T) {
	r := &countingRenderer{}
	m := testManager(r, 20*time.Millisecond, time.Hour, time.Hour)
	defer m.StopAll()

	acked := make(chan string, 1)
	m.OnAcknowledged = func(id string) { acked <- id }

	m.Start(NewSession("r1", "Math", "body", 10, false))

	if !m.Acknowledge("r1") {
		t.Fatal("Acknowledge of an active session must return true")
	}

	select {
	case id := <-acked:
		if id != "r1" {
			t.Errorf("Expected broadcast for r1, got %s", id)
		}
	default:
		t.Error("Acknowledge must broadcast")
	}

	before := r.count()
	time.Sleep(80 * time.Millisecond)

	if r.count() != before {
		t.Error("Acknowledged alarm must not re-render")
	}

	if m.Acknowledge("r1") {
		t.Error("Acknowledge of an idle reminder must return false")
	}
}

func TestAcknowledgeLocalDoesNotBroadcast(t *testing.T) {
	r := &countingRenderer{}
	m := testManager(r, time.Hour, 2*time.Hour, time.Hour)
	defer m.StopAll()

	broadcast := false
	m.OnAcknowledged = func(string) { broadcast = true }

	m.Start(NewSession("r1", "Math", "body", 10, false))

	if !m.AcknowledgeLocal("r1") {
		t.Fatal("Expected local acknowledge to find the session")
	}

	if broadcast {
		t.Error("Local acknowledge must not re-broadcast")
	}
}

func TestAlarmCeilingBoundsRerenders(t *testing.T) {
	r := &countingRenderer{}

	// Ticks at 1x and 2x the interval re-render; the 3x tick crosses the
	// ceiling and force-acknowledges without rendering.
	m := testManager(r, 20*time.Millisecond, 50*time.Millisecond, time.Hour)
	defer m.StopAll()

	m.Start(NewSession("r1", "Math", "body", 10, false))

	waitForIdle(t, m, "r1")

	if got := r.count(); got != 2 {
		t.Errorf("Expected exactly 2 re-renders before the ceiling, got %d", got)
	}
}

func TestSnoozeReArmsUnderFreshIdentity(t *testing.T) {
	r := &countingRenderer{}
	m := testManager(r, time.Hour, 2*time.Hour, 20*time.Millisecond)
	defer m.StopAll()

	s := NewSession("r1", "Math", "body", 10, false)
	m.Start(s)

	m.Snooze(s)

	if _, ok := m.Registry.Get("r1"); ok {
		t.Fatal("Snooze must acknowledge the original session")
	}

	deadline := time.Now().Add(2 * time.Second)

	for r.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if r.count() == 0 {
		t.Fatal("Snoozed alarm never re-alerted")
	}

	if r.last() == "r1" {
		t.Error("Snoozed re-alert must run under a fresh identity")
	}

	if ids := m.Registry.Active(); len(ids) != 1 || ids[0] == "r1" {
		t.Errorf("Expected one fresh active session, got %v", ids)
	}
}

func TestAcknowledgeCancelsPendingSnooze(t *testing.T) {
	r := &countingRenderer{}
	m := testManager(r, time.Hour, 2*time.Hour, 30*time.Millisecond)
	defer m.StopAll()

	s := NewSession("r1", "Math", "body", 10, false)
	m.Start(s)
	m.Snooze(s)

	if !m.Acknowledge("r1") {
		t.Fatal("Acknowledge must find the pending snooze")
	}

	time.Sleep(100 * time.Millisecond)

	if r.count() != 0 {
		t.Error("Acknowledged snooze must not re-alert")
	}
}

func TestRegistrySingleSessionPerReminder(t *testing.T) {
	reg := NewRegistry()

	a := NewSession("r1", "Math", "body", 10, false)
	b := NewSession("r1", "Math", "body", 10, false)

	if !reg.Add(a) {
		t.Fatal("First add must succeed")
	}

	if reg.Add(b) {
		t.Error("Second add for the same reminder must fail")
	}

	got, ok := reg.Get("r1")

	if !ok || got != a {
		t.Error("Registry must keep the first session")
	}

	if !reg.Cancel("r1") {
		t.Error("Cancel of a live session must return true")
	}

	select {
	case <-a.Done():
	default:
		t.Error("Cancel must close the session's done channel")
	}

	if reg.Cancel("r1") {
		t.Error("Cancel of an idle reminder must return false")
	}
}
