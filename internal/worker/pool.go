// Package worker runs per-artist enrichment on a bounded set of goroutines.
package worker

import (
	"context"
	"sync"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
)

// Job is one artist lookup belonging to a batch.
type Job struct {
	ctx    context.Context
	Artist string
	out    *domain.EnrichmentMeta
	done   *sync.WaitGroup
}

// Pool fans enrichment out across workers and joins results in input order.
type Pool struct {
	enricher ports.MetadataEnricher
	jobs     chan Job
	wg       sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

var _ ports.BatchEnricher = (*Pool)(nil)

// NewPool creates a pool with the given queue size. Call Start before use;
// a pool that is not running enriches inline.
func NewPool(enricher ports.MetadataEnricher, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{enricher: enricher, jobs: make(chan Job, queueSize), stopped: true}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	p.mu.Lock()
	p.stopped = false
	p.mu.Unlock()

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for queued jobs to drain. Later batches
// run inline on the caller's goroutine.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// EnrichAll returns one meta per artist, index-aligned with artists. Slots
// whose job could not be queued before ctx ended are left empty.
func (p *Pool) EnrichAll(ctx context.Context, artists []string) []domain.EnrichmentMeta {
	results := make([]domain.EnrichmentMeta, len(artists))
	if len(artists) == 0 {
		return results
	}

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		for i, artist := range artists {
			results[i] = p.enricher.EnrichOne(ctx, artist)
		}
		return results
	}

	var batch sync.WaitGroup
submit:
	for i, artist := range artists {
		batch.Add(1)
		job := Job{ctx: ctx, Artist: artist, out: &results[i], done: &batch}
		select {
		case p.jobs <- job:
		case <-ctx.Done():
			batch.Done()
			logging.Ctx(ctx).Warn().
				Int("queued", i).
				Int("total", len(artists)).
				Msg("worker: context ended before all lookups were queued")
			break submit
		}
	}
	p.mu.RUnlock()

	batch.Wait()
	return results
}

func (p *Pool) processJob(job Job) {
	defer job.done.Done()
	*job.out = p.enricher.EnrichOne(job.ctx, job.Artist)
}
