package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/sitepress/internal/config"
	"github.com/dgallion1/sitepress/internal/publish"
	"github.com/dgallion1/sitepress/internal/search"
	"github.com/dgallion1/sitepress/internal/sitestore"
)

// Orchestrator manages the page build pipeline.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	store *sitestore.Store
	index *search.Index
	pub   *publish.Client
	stats *BuildStats
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. The publish client may be nil when
// no remote host is configured.
func NewOrchestrator(cfg config.Config, store *sitestore.Store, index *search.Index, pub *publish.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		store: store,
		index: index,
		pub:   pub,
		stats: NewBuildStats(time.Hour),
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.store, o.index, o.pub, o.stats, o.log, o.cfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Store returns the site store for direct use by API handlers.
func (o *Orchestrator) Store() *sitestore.Store {
	return o.store
}

// Index returns the search index for direct use by API handlers.
func (o *Orchestrator) Index() *search.Index {
	return o.index
}

// Publisher returns the publish client, nil when publishing is disabled.
func (o *Orchestrator) Publisher() *publish.Client {
	return o.pub
}

// Stats returns the rolling build duration stats.
func (o *Orchestrator) Stats() *BuildStats {
	return o.stats
}
