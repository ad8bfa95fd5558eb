package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ScoreAward is one queued point award.
type ScoreAward struct {
	UserID string
	Event  domain.ScoreEvent
}

// Dispatcher routes score awards to a fixed set of workers using consistent
// hashing on the user id, so awards for the same user apply in arrival order.
type Dispatcher struct {
	workers []chan ScoreAward
	scores  ports.ScoreService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, scores ports.ScoreService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ScoreAward, numWorkers),
		scores:  scores,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ScoreAward, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an award to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(award ScoreAward) {
	i := d.shardIndex(award.UserID)
	d.workers[i] <- award
	metrics.ScoreQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ScoreAward) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case award, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.scores.Award(ctx, award.UserID, award.Event); err != nil {
				d.log.Error().Err(err).
					Str("user_id", award.UserID).
					Str("event", string(award.Event)).
					Int("worker_id", id).
					Msg("score award failed")
			}
			metrics.ScoreQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
