package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicvoice/participation/internal/api/metrics"
	"github.com/civicvoice/participation/internal/core/domain"
	"github.com/civicvoice/participation/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher records proposal activity in the background. Events are routed
// to a fixed set of workers by hashing the proposal ID, so the events of one
// proposal are recorded in the order they were published.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.ActivityPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands event to the worker responsible for its proposal. It never
// blocks: when that worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Publish(event domain.ActivityEvent) {
	idx := d.shardIndex(event.ProposalID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("proposal_id", event.ProposalID).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a proposal ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(proposalID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(proposalID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			depth.Dec()
			start := time.Now()
			if err := d.service.Record(ctx, event); err != nil {
				metrics.ActivityErrorsTotal.WithLabelValues("record_failed").Inc()
				d.log.Error().Err(err).
					Str("proposal_id", event.ProposalID).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("activity recording failed")
				continue
			}
			metrics.ActivityRecordedTotal.WithLabelValues(string(event.Kind)).Inc()
			metrics.ActivityRecordDuration.Observe(time.Since(start).Seconds())
		}
	}
}
