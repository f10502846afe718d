package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/ports"
	"github.com/easework/jobboard-api/internal/pkg/metrics"
)

const (
	defaultWorkers     = 4
	defaultMaxRetries  = 3
	defaultBackoffBase = 2 * time.Second
	channelBuffer      = 256
)

// TaskRunner performs one task, e.g. by handing it to the mail worker.
type TaskRunner interface {
	Run(ctx context.Context, task ports.Task) error
}

// Options tunes a Dispatcher. Zero values pick the defaults.
type Options struct {
	Workers     int
	Buffer      int
	MaxRetries  int // negative disables retries
	BackoffBase time.Duration
}

// Dispatcher runs tasks in the background on a fixed set of workers.
// Tasks for the same recipient land on the same worker, so they run in
// the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.Task
	runner  TaskRunner
	opts    Options
	log     zerolog.Logger
	wg      sync.WaitGroup
	sleep   func(ctx context.Context, d time.Duration) error
	now     func() time.Time
}

var _ ports.TaskQueue = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. Call Start before enqueueing.
func NewDispatcher(runner TaskRunner, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Buffer <= 0 {
		opts.Buffer = channelBuffer
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	d := &Dispatcher{
		workers: make([]chan ports.Task, opts.Workers),
		runner:  runner,
		opts:    opts,
		log:     log,
		sleep:   sleepCtx,
		now:     time.Now,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Task, opts.Buffer)
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

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands task to its worker without blocking. When that worker's
// buffer is full the task is dropped.
func (d *Dispatcher) Enqueue(task ports.Task) {
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = d.now().UTC()
	}
	idx := d.shardIndex(task.Args["recipient_email"])
	select {
	case d.workers[idx] <- task:
		metrics.TasksTotal.WithLabelValues(task.Name, "enqueued").Inc()
		metrics.TaskQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.TasksTotal.WithLabelValues(task.Name, "dropped").Inc()
		d.log.Warn().Str("task", task.Name).Int("worker_id", idx).Msg("task queue full, task dropped")
	}
}

// shardIndex maps a routing key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Task) {
	defer d.wg.Done()
	depth := metrics.TaskQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, task)
		}
	}
}

// process runs task, waiting base·2^n before the n-th retry (n from 0).
func (d *Dispatcher) process(ctx context.Context, worker int, task ports.Task) {
	start := time.Now()
	var err error
	for attempt := 0; attempt <= d.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := d.opts.BackoffBase << (attempt - 1)
			if serr := d.sleep(ctx, backoff); serr != nil {
				err = serr
				break
			}
		}
		if err = d.runner.Run(ctx, task); err == nil {
			metrics.TasksTotal.WithLabelValues(task.Name, "delivered").Inc()
			metrics.TaskDuration.WithLabelValues("delivered").Observe(time.Since(start).Seconds())
			return
		}
		d.log.Warn().Err(err).
			Str("task", task.Name).
			Int("attempt", attempt+1).
			Int("worker_id", worker).
			Msg("task attempt failed")
	}

	metrics.TasksTotal.WithLabelValues(task.Name, "failed").Inc()
	metrics.TaskDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
	d.log.Error().Err(err).
		Str("task", task.Name).
		Int("worker_id", worker).
		Msg("task failed, retries exhausted")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
