package store

import (
	"sync"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
)

// Saver is a write-behind wrapper around a schedule.Persister. Day
// writes are queued and coalesced so that only the latest pending
// state per day key reaches the underlying store; config writes are
// rare and pass through synchronously.
//
// Write failures surface through the onError callback, never through
// the mutation path.
type Saver struct {
	dst     schedule.Persister
	onError func(error)

	mu      sync.Mutex
	pending map[string][]*task.Task
	kick    chan struct{}

	// drainMu serializes drains so a stale state can never be written
	// after a newer one for the same key.
	drainMu sync.Mutex

	wg     sync.WaitGroup
	closed chan struct{}
}

// NewSaver starts the drain goroutine. onError may be nil.
func NewSaver(dst schedule.Persister, onError func(error)) *Saver {
	if onError == nil {
		onError = func(error) {}
	}
	s := &Saver{
		dst:     dst,
		onError: onError,
		pending: make(map[string][]*task.Task),
		kick:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// SaveDay queues the day's state, replacing any pending write for the
// same key. The tasks are cloned here: the drain goroutine reads the
// queued state after the caller has moved on, and the caller is free
// to mutate the originals in the meantime.
func (s *Saver) SaveDay(dayKey string, tasks []*task.Task) error {
	snapshot := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		snapshot[i] = t.Clone()
	}

	s.mu.Lock()
	s.pending[dayKey] = snapshot
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
	return nil
}

// SaveDayConfig passes through to the underlying store.
func (s *Saver) SaveDayConfig(dayKey string, cfg schedule.DayConfig) error {
	return s.dst.SaveDayConfig(dayKey, cfg)
}

// DeleteDayConfig passes through to the underlying store.
func (s *Saver) DeleteDayConfig(dayKey string) error {
	return s.dst.DeleteDayConfig(dayKey)
}

// SaveGlobalConfig passes through to the underlying store.
func (s *Saver) SaveGlobalConfig(cfg schedule.DayConfig) error {
	return s.dst.SaveGlobalConfig(cfg)
}

// Flush drains all pending day writes synchronously.
func (s *Saver) Flush() {
	s.drain()
}

// Close stops the drain goroutine after flushing pending writes.
func (s *Saver) Close() {
	close(s.closed)
	s.wg.Wait()
	s.drain()
}

func (s *Saver) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.kick:
			s.drain()
		case <-s.closed:
			return
		}
	}
}

func (s *Saver) drain() {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()
	for {
		s.mu.Lock()
		var key string
		var tasks []*task.Task
		found := false
		for k, v := range s.pending {
			key, tasks, found = k, v, true
			break
		}
		if found {
			delete(s.pending, key)
		}
		s.mu.Unlock()

		if !found {
			return
		}
		if err := s.dst.SaveDay(key, tasks); err != nil {
			s.onError(err)
		}
	}
}
