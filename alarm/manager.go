package alarm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Renderer re-renders an alert: re-show the persistent notification and
// re-play speech/tone. Implemented by alerts.Dispatcher.
type Renderer interface {
	Render(ctx context.Context, s *Session)
}

// Manager drives alarm escalation. States per reminder id: Idle (no
// session) -> Alarming (session in the registry, tick loop running) -> Idle
// again via acknowledgment, snooze replacement or the max-duration ceiling.
type Manager struct {
	Registry *Registry
	Renderer Renderer
	Logger   *zap.SugaredLogger

	// RetriggerInterval is read per session start so settings changes apply
	// to new alarms without a restart.
	RetriggerInterval func() time.Duration
	MaxDuration       time.Duration
	SnoozeDelay       time.Duration

	// OnAcknowledged broadcasts an acknowledgment to the other execution
	// context. May be nil.
	OnAcknowledged func(reminderID string)

	mu           sync.Mutex
	snoozeTimers map[string]*time.Timer
}

func NewManager(registry *Registry, renderer Renderer, logger *zap.SugaredLogger, retrigger func() time.Duration, maxDuration, snoozeDelay time.Duration) *Manager {
	return &Manager{
		Registry:          registry,
		Renderer:          renderer,
		Logger:            logger,
		RetriggerInterval: retrigger,
		MaxDuration:       maxDuration,
		SnoozeDelay:       snoozeDelay,
		snoozeTimers:      make(map[string]*time.Timer),
	}
}

// Start begins escalation for a reminder that was just rendered for the
// first time. Idempotent: a reminder id with an active session is a no-op
// and returns false.
func (m *Manager) Start(s *Session) bool {
	if !m.Registry.Add(s) {
		return false
	}

	go m.run(s)

	return true
}

func (m *Manager) run(s *Session) {
	interval := m.RetriggerInterval()
	t := time.NewTicker(interval)
	defer t.Stop()

	// Re-render count is bounded by MaxDuration/interval; the ceiling tick
	// force-acknowledges without rendering so a forgotten alarm cannot
	// drain the battery forever.
	for tick := 1; ; tick++ {
		select {
		case <-s.Done():
			return
		case <-t.C:
		}

		if _, ok := m.Registry.Get(s.ReminderID); !ok {
			return
		}

		if time.Duration(tick)*interval > m.MaxDuration {
			m.Logger.Info("Alarm hit max duration, force-acknowledging", zap.String("reminderId", s.ReminderID))
			m.Acknowledge(s.ReminderID)
			return
		}

		m.Renderer.Render(context.Background(), s)
	}
}

// Acknowledge tears down the session for a reminder id and broadcasts the
// acknowledgment so a session in the other context is torn down too.
// Returns false when there was neither a session nor a pending snooze.
func (m *Manager) Acknowledge(reminderID string) bool {
	had := m.Registry.Cancel(reminderID)
	had = m.cancelSnooze(reminderID) || had

	if m.OnAcknowledged != nil {
		m.OnAcknowledged(reminderID)
	}

	return had
}

// AcknowledgeLocal tears down local state without re-broadcasting. Used for
// acknowledgments received over the bus, so two contexts don't ping-pong.
func (m *Manager) AcknowledgeLocal(reminderID string) bool {
	had := m.Registry.Cancel(reminderID)

	return m.cancelSnooze(reminderID) || had
}

func (m *Manager) cancelSnooze(reminderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.snoozeTimers[reminderID]

	if !ok {
		return false
	}

	t.Stop()
	delete(m.snoozeTimers, reminderID)

	return true
}

// Snooze acknowledges the current session and schedules a single-shot
// re-alert after the snooze delay. The re-alert runs under a fresh synthetic
// identity since the original reminder is terminally triggered by now. The
// caller supplies the rendering context, rebuilt from the store if its
// session already died.
func (m *Manager) Snooze(s *Session) {
	m.Acknowledge(s.ReminderID)

	snoozed := NewSession(uuid.New().String(), s.Title, s.Body, s.MinutesBefore, s.VoiceEnabled)

	m.snoozeLater(snoozed, s.ReminderID)
}

func (m *Manager) snoozeLater(snoozed *Session, originalID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snoozeTimers[originalID] = time.AfterFunc(m.SnoozeDelay, func() {
		m.mu.Lock()
		delete(m.snoozeTimers, originalID)
		m.mu.Unlock()

		snoozed.StartedAt = time.Now()

		m.Renderer.Render(context.Background(), snoozed)
		m.Start(snoozed)
	})
}

// StopAll cancels every live session and pending snooze, releasing all
// timers. Used on shutdown.
func (m *Manager) StopAll() {
	for _, id := range m.Registry.Active() {
		m.Registry.Cancel(id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.snoozeTimers {
		t.Stop()
		delete(m.snoozeTimers, id)
	}
}
