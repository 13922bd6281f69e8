package daemon

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"fboard/internal/application/dto"
)

// LoadFunc reads the board
type LoadFunc func(ctx context.Context) (*dto.BoardDTO, error)

// Snapshot is the outcome of one reload
type Snapshot struct {
	Generation uint64
	Board      *dto.BoardDTO
	Err        error
}

// Reloader runs board reloads in the background. Every request gets a new
// generation; a finished load is published only when no newer load was
// requested in the meantime. Older loads are never cancelled, their result
// is just dropped.
type Reloader struct {
	load        LoadFunc
	logger      logrus.FieldLogger
	mu          sync.Mutex
	generation  uint64
	subscribers map[chan Snapshot]struct{}
	wg          sync.WaitGroup
}

// NewReloader creates a reloader around load
func NewReloader(load LoadFunc, logger logrus.FieldLogger) *Reloader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reloader{
		load:        load,
		logger:      logger,
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Subscribe returns a channel that always holds the latest published
// snapshot, and a function that unsubscribes
func (r *Reloader) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	r.mu.Unlock()

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
	}
}

// Reload starts a load and returns its generation
func (r *Reloader) Reload(ctx context.Context) uint64 {
	r.mu.Lock()
	r.generation++
	generation := r.generation
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		board, err := r.load(ctx)
		r.publish(Snapshot{Generation: generation, Board: board, Err: err})
	}()
	return generation
}

// Run reloads once, then again after every value on changes, until ctx is
// done or changes is closed
func (r *Reloader) Run(ctx context.Context, changes <-chan struct{}) {
	r.Reload(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			r.Reload(ctx)
		}
	}
}

// Wait blocks until every started load has finished
func (r *Reloader) Wait() {
	r.wg.Wait()
}

func (r *Reloader) publish(snapshot Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.Generation != r.generation {
		r.logger.WithField("generation", snapshot.Generation).Debug("Dropping superseded reload")
		return
	}
	if snapshot.Err != nil {
		r.logger.WithError(snapshot.Err).Warn("Board reload failed")
	}

	for ch := range r.subscribers {
		// Replace an unread snapshot with the newer one
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
