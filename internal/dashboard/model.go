package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thesrcielos/exambuddy/internal/stats"
)

const DefaultReconcileDelay = 500 * time.Millisecond

// StatsClient is the slice of the Stats API the dashboard needs.
type StatsClient interface {
	GetStats(ctx context.Context) (stats.StatsMap, error)
	ResetStats(ctx context.Context) error
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is a copy of the model's observable state.
type Snapshot struct {
	State  State
	Stats  stats.StatsMap
	Err    error
	Notice string
}

// Model holds the dashboard read path: load with loading and error states,
// retry, and an optimistic reset followed by a delayed reconciliation.
type Model struct {
	mu     sync.Mutex
	client StatsClient
	delay  time.Duration

	state  State
	stats  stats.StatsMap
	err    error
	notice string

	nextID    int
	listeners map[int]func(Snapshot)
}

type Option func(*Model)

func WithReconcileDelay(d time.Duration) Option {
	return func(m *Model) { m.delay = d }
}

func New(client StatsClient, opts ...Option) *Model {
	m := &Model{
		client:    client,
		delay:     DefaultReconcileDelay,
		stats:     stats.StatsMap{},
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load fetches the user's stats. The model is Loading while the request is in
// flight, then Ready or Failed.
func (m *Model) Load(ctx context.Context) error {
	m.update(func() {
		m.state = StateLoading
		m.err = nil
	})

	fetched, err := m.client.GetStats(ctx)
	if err != nil {
		m.update(func() {
			m.state = StateFailed
			m.err = err
		})
		return err
	}

	m.update(func() {
		m.state = StateReady
		m.stats = fetched
	})
	return nil
}

// Retry reloads after a failed load. In any other state it does nothing.
func (m *Model) Retry(ctx context.Context) error {
	if m.Snapshot().State != StateFailed {
		return nil
	}
	return m.Load(ctx)
}

// Reset clears the stats after confirm approves. The view is emptied before
// the server answers; after the reconcile delay the stats are re-fetched.
// When the reset or the re-fetch fails the view stays empty and Notice
// describes the failure. The boolean reports whether confirm approved.
func (m *Model) Reset(ctx context.Context, confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}

	m.update(func() {
		m.state = StateReady
		m.stats = stats.StatsMap{}
		m.err = nil
		m.notice = ""
	})

	if err := m.client.ResetStats(ctx); err != nil {
		m.setNotice(fmt.Sprintf("Failed to reset stats: %v", err))
		return true, err
	}

	if err := sleep(ctx, m.delay); err != nil {
		m.setNotice("Reset sent but could not be confirmed")
		return true, err
	}

	fetched, err := m.client.GetStats(ctx)
	if err != nil {
		m.setNotice(fmt.Sprintf("Reset sent but stats could not be refreshed: %v", err))
		return true, err
	}
	m.update(func() {
		m.stats = fetched
	})
	return true, nil
}

// Apply replaces the stats with a mapping pushed by the server.
func (m *Model) Apply(update stats.StatsMap) {
	if update == nil {
		update = stats.StatsMap{}
	}
	m.update(func() {
		m.state = StateReady
		m.stats = update
		m.err = nil
	})
}

func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Model) Cards(topics []string) []stats.TopicCard {
	return stats.TopicCards(m.Snapshot().Stats, topics)
}

func (m *Model) WeakTopics(topics []string) []stats.TopicCard {
	return stats.WeakTopics(m.Snapshot().Stats, topics)
}

// Subscribe registers fn to be called after every change. Listeners run on
// the goroutine that made the change.
func (m *Model) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Model) setNotice(notice string) {
	m.update(func() { m.notice = notice })
}

func (m *Model) update(change func()) {
	m.mu.Lock()
	change()
	snap := m.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (m *Model) snapshotLocked() Snapshot {
	copied := make(stats.StatsMap, len(m.stats))
	for k, v := range m.stats {
		copied[k] = v
	}
	return Snapshot{State: m.state, Stats: copied, Err: m.err, Notice: m.notice}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
