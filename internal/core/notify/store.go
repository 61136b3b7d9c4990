package notify

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/toast/pkg/sched"
)

// Snapshot is the ordered set of active notifications at one point in time.
// Items are ordered oldest first. Version increases by one on every mutation,
// so consumers that coalesce deliveries can discard stale snapshots.
type Snapshot struct {
	Version uint64
	Items   []Notification
}

// Len returns the number of active notifications.
func (s Snapshot) Len() int { return len(s.Items) }

// Get returns the notification with the given id.
func (s Snapshot) Get(id ID) (Notification, bool) {
	for _, n := range s.Items {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

// Has reports whether id is active in the snapshot.
func (s Snapshot) Has(id ID) bool {
	_, ok := s.Get(id)
	return ok
}

// IDs returns the ids in snapshot order.
func (s Snapshot) IDs() []ID {
	ids := make([]ID, len(s.Items))
	for i, n := range s.Items {
		ids[i] = n.ID
	}
	return ids
}

// Listener receives a snapshot after every mutation of the store.
type Listener func(Snapshot)

type entry struct {
	n    Notification
	task sched.Task
}

type subscription struct {
	fn Listener
	// since is the store version at Subscribe time; older snapshots still
	// queued for delivery are skipped.
	since   uint64
	removed atomic.Bool
}

// Store is the single source of truth for which notifications are active and
// in what order. New notifications are appended, so snapshots list the oldest
// first and the newest last.
//
// Store is safe for concurrent use; auto-dismiss timers fire on their own
// goroutines. Listeners run outside the store's lock, one snapshot at a time,
// in mutation order. A listener may call back into the store: the resulting
// snapshot is delivered after the current delivery round completes.
type Store struct {
	ids        IDGenerator
	scheduler  sched.Scheduler
	now        func() time.Time
	maxActive  int
	defaultTTL time.Duration
	logger     zerolog.Logger

	mu        sync.Mutex
	entries   []*entry
	seq       uint64
	version   uint64
	closed    bool
	listeners []*subscription
	pending   []Snapshot
	draining  bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDs sets the identity generator. Defaults to UUIDs.
func WithIDs(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithScheduler sets the scheduler used for auto-dismiss timers. Defaults to
// sched.Real.
func WithScheduler(sc sched.Scheduler) Option {
	return func(s *Store) { s.scheduler = sc }
}

// WithClock sets the clock used for CreatedAt. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMaxActive caps the number of active notifications. When an enqueue
// pushes the count over n, the oldest notifications are dismissed. Zero
// means unlimited.
func WithMaxActive(n int) Option {
	return func(s *Store) { s.maxActive = n }
}

// WithDefaultTTL sets the auto-dismiss duration used by the Success, Info,
// Warn and Error helpers. Zero makes helper notifications persistent.
func WithDefaultTTL(d time.Duration) Option {
	return func(s *Store) { s.defaultTTL = d }
}

// WithLogger sets the store's logger. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ids:       UUIDs(),
		scheduler: sched.Real{},
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue validates req, appends a new notification to the end of the
// collection and schedules its auto-dismiss timer. A valid request always
// succeeds while the store is open.
func (s *Store) Enqueue(req Request) (ID, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("title", req.Title).Msg("rejected notification")
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrClosed
	}

	id := s.ids.NewID()
	if s.indexLocked(id) >= 0 {
		s.mu.Unlock()
		panic(fmt.Sprintf("notify: id generator returned live id %q", id))
	}

	s.seq++
	e := &entry{
		n: Notification{
			ID:          id,
			Kind:        req.Kind,
			Title:       req.Title,
			Message:     req.Message,
			Seq:         s.seq,
			CreatedAt:   s.now(),
			AutoDismiss: req.AutoDismiss,
			Source:      req.Source,
		},
	}
	if req.AutoDismiss > 0 {
		e.task = s.scheduler.AfterFunc(req.AutoDismiss, func() { s.expire(id) })
	}
	s.entries = append(s.entries, e)

	var evicted []ID
	for s.maxActive > 0 && len(s.entries) > s.maxActive {
		oldest := s.entries[0]
		stopTask(oldest)
		s.entries = s.entries[1:]
		evicted = append(evicted, oldest.n.ID)
	}

	s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug().
		Str("id", string(id)).
		Str("kind", string(req.Kind)).
		Dur("auto_dismiss", req.AutoDismiss).
		Msg("notification enqueued")
	for _, ev := range evicted {
		s.logger.Debug().Str("id", string(ev)).Msg("notification evicted")
	}

	s.drain()
	return id, nil
}

// Dismiss removes the notification with the given id and cancels its timer.
// Dismissing an unknown or already dismissed id does nothing. It reports
// whether a notification was removed.
func (s *Store) Dismiss(id ID) bool {
	return s.remove(id, "dismissed")
}

func (s *Store) expire(id ID) {
	s.remove(id, "expired")
}

func (s *Store) remove(id ID, reason string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	stopTask(s.entries[i])
	s.entries = slices.Delete(s.entries, i, i+1)
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("id", string(id)).Str("reason", reason).Msg("notification removed")

	s.drain()
	return true
}

// DismissAll removes every active notification with a single broadcast. It
// returns the number removed.
func (s *Store) DismissAll() int {
	s.mu.Lock()
	n := len(s.entries)
	if n == 0 {
		s.mu.Unlock()
		return 0
	}
	for _, e := range s.entries {
		stopTask(e)
	}
	s.entries = nil
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Debug().Int("count", n).Msg("all notifications dismissed")

	s.drain()
	return n
}

// Subscribe registers fn to receive a snapshot after every mutation made
// from now on; snapshots of earlier mutations still waiting for delivery are
// not replayed to it. The
// returned function deregisters it and may be called more than once. A
// listener that is never deregistered keeps receiving snapshots for the
// lifetime of the store.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	sub := &subscription{fn: fn, since: s.version}
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	return func() {
		if sub.removed.Swap(true) {
			return
		}
		s.mu.Lock()
		s.listeners = slices.DeleteFunc(s.listeners, func(o *subscription) bool { return o == sub })
		s.mu.Unlock()
	}
}

// Snapshot returns the current ordered collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of active notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close cancels every outstanding timer and drops all listeners. Later calls
// to Enqueue return ErrClosed; Dismiss stays a no-op.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, e := range s.entries {
		stopTask(e)
	}
	s.entries = nil
	for _, sub := range s.listeners {
		sub.removed.Store(true)
	}
	s.listeners = nil
	s.pending = nil
}

// Success enqueues a success notification with the default TTL.
func (s *Store) Success(title, message string) ID {
	return s.notify(KindSuccess, title, message)
}

// Info enqueues an info notification with the default TTL.
func (s *Store) Info(title, message string) ID {
	return s.notify(KindInfo, title, message)
}

// Warn enqueues a warning notification with the default TTL.
func (s *Store) Warn(title, message string) ID {
	return s.notify(KindWarning, title, message)
}

// Error enqueues an error notification with the default TTL.
func (s *Store) Error(title, message string) ID {
	return s.notify(KindError, title, message)
}

// Errorf enqueues an error notification whose title is built from format.
func (s *Store) Errorf(format string, args ...any) ID {
	return s.notify(KindError, fmt.Sprintf(format, args...), "")
}

func (s *Store) notify(kind Kind, title, message string) ID {
	id, err := s.Enqueue(Request{
		Kind:        kind,
		Title:       title,
		Message:     message,
		AutoDismiss: s.defaultTTL,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to enqueue notification")
		return ""
	}
	return id
}

func (s *Store) indexLocked(id ID) int {
	return slices.IndexFunc(s.entries, func(e *entry) bool { return e.n.ID == id })
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]Notification, len(s.entries))
	for i, e := range s.entries {
		items[i] = e.n
	}
	return Snapshot{Version: s.version, Items: items}
}

// publishLocked bumps the version and queues the new snapshot for delivery.
func (s *Store) publishLocked() {
	s.version++
	if len(s.listeners) > 0 {
		s.pending = append(s.pending, s.snapshotLocked())
	}
}

// drain delivers queued snapshots. Only one goroutine drains at a time; any
// other caller returns immediately and leaves its snapshot to the active
// drainer, which keeps delivery in mutation order.
func (s *Store) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for len(s.pending) > 0 {
		snap := s.pending[0]
		s.pending = s.pending[1:]
		subs := slices.Clone(s.listeners)
		s.mu.Unlock()

		for _, sub := range subs {
			if !sub.removed.Load() && snap.Version > sub.since {
				sub.fn(snap)
			}
		}

		s.mu.Lock()
	}

	s.draining = false
	s.mu.Unlock()
}

func stopTask(e *entry) {
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
}
