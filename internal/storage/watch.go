package storage

import (
	"sync"

	"github.com/sprouthq/sprout/internal/logger"
	"github.com/sprouthq/sprout/internal/models"
)

// Subscription delivers full habit-list snapshots on C: one immediately on
// subscribe and another after every write published through the watcher.
// Consumers must call Unsubscribe when their view goes away; snapshots may
// include the consumer's own writes echoed back, so handling must be
// idempotent.
type Subscription struct {
	C chan []models.Habit

	once    sync.Once
	release func()
}

// Unsubscribe releases the subscription and closes C. Safe to call more
// than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.release)
}

// HabitWatcher fans out habit-list snapshots to any number of subscribers.
// It does not intercept writes; callers invoke Notify after mutating habits
// through the Provider.
type HabitWatcher struct {
	mu     sync.Mutex
	store  Provider
	subs   map[int]*Subscription
	nextID int
}

func NewHabitWatcher(store Provider) *HabitWatcher {
	return &HabitWatcher{
		store: store,
		subs:  make(map[int]*Subscription),
	}
}

// Subscribe registers a new subscriber and pushes the current snapshot
// before returning.
func (w *HabitWatcher) Subscribe() (*Subscription, error) {
	snapshot, err := w.store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++

	sub := &Subscription{C: make(chan []models.Habit, 1)}
	sub.release = func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
		close(sub.C)
	}
	w.subs[id] = sub

	sub.C <- snapshot
	return sub, nil
}

// Notify re-reads the habit list and delivers it to every subscriber. A
// subscriber that has not drained its previous snapshot gets the stale one
// replaced; only the latest snapshot matters.
func (w *HabitWatcher) Notify() {
	snapshot, err := w.store.GetAllHabits()
	if err != nil {
		logger.Error("Failed to read habits for snapshot delivery", "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, sub := range w.subs {
		select {
		case sub.C <- snapshot:
		default:
			// Drop the undrained snapshot and replace it with the new one.
			select {
			case <-sub.C:
			default:
			}
			sub.C <- snapshot
		}
	}
}
