package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// RatingRecomputer is the work each job performs.
type RatingRecomputer interface {
	Recompute(ctx context.Context, gigID string) error
}

// RatingDispatcher routes rating recompute jobs to a fixed set of workers
// using consistent hashing on the gig id, so recomputes for the same gig are
// applied in order and never race each other.
type RatingDispatcher struct {
	workers []chan string
	rating  RatingRecomputer
	log     zerolog.Logger
}

// NewRatingDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRatingDispatcher(numWorkers int, rating RatingRecomputer, log zerolog.Logger) *RatingDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &RatingDispatcher{
		workers: make([]chan string, numWorkers),
		rating:  rating,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *RatingDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a recompute for the given gig. The call is non-blocking
// up to channelBuffer capacity.
func (d *RatingDispatcher) Enqueue(gigID string) {
	i := d.shardIndex(gigID)
	d.workers[i] <- gigID
	metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a gig id deterministically to a worker index.
func (d *RatingDispatcher) shardIndex(gigID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(gigID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *RatingDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case gigID, ok := <-ch:
			if !ok {
				return
			}
			metrics.RatingQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			result := "ok"
			if err := d.rating.Recompute(ctx, gigID); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("gig_id", gigID).
					Int("worker_id", id).
					Msg("rating recompute failed")
			}
			metrics.RatingRecomputeDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
