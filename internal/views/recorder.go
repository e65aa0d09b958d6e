// Package views records post views asynchronously so read requests never
// block on the write path.
package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/yesaroun/taskboard/pkg/logging"
)

// recordTimeout bounds a single view write so a stuck database cannot pin
// pool workers.
const recordTimeout = 5 * time.Second

// ViewWriter persists a single view event.
type ViewWriter interface {
	Record(ctx context.Context, postID, userID int64) error
}

// Recorder fans view events out to a bounded worker pool. Submission never
// blocks the caller; when the pool is saturated the event is dropped and
// logged.
type Recorder struct {
	pool   *ants.Pool
	writer ViewWriter
	wg     sync.WaitGroup
}

// NewRecorder creates a Recorder backed by a pool of size workers.
func NewRecorder(writer ViewWriter, workers int) (*Recorder, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("creating view worker pool: %w", err)
	}
	return &Recorder{pool: pool, writer: writer}, nil
}

// Record submits a view event for background persistence.
func (r *Recorder) Record(postID, userID int64) {
	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := r.writer.Record(ctx, postID, userID); err != nil {
			logging.Warn().
				Err(err).
				Int64("post_id", postID).
				Int64("user_id", userID).
				Msg("recording view failed")
		}
	})
	if err != nil {
		r.wg.Done()
		logging.Warn().
			Err(err).
			Int64("post_id", postID).
			Msg("view worker pool saturated, dropping view event")
	}
}

// Close waits for in-flight view writes and releases the pool.
func (r *Recorder) Close() {
	r.wg.Wait()
	r.pool.Release()
}
