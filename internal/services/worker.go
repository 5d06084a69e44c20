package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/repositories"
)

// Worker runs queued category evaluations on a fixed pool of goroutines.
// Jobs for different (bidder, category) pairs are independent; finalization
// is the only step that reads across a bidder's whole score set, and it runs
// synchronously in the request path.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	evalRepo         repositories.EvaluationRepository
	evaluatorService EvaluatorService
	jobQueue         chan uuid.UUID
	concurrency      int
	wg               sync.WaitGroup
	stopChan         chan struct{}
}

func NewWorker(
	evalRepo repositories.EvaluationRepository,
	evaluatorService EvaluatorService,
	concurrency int,
) Worker {
	return &worker{
		evalRepo:         evalRepo,
		evaluatorService: evaluatorService,
		jobQueue:         make(chan uuid.UUID, 100),
		concurrency:      concurrency,
		stopChan:         make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Requeue jobs that were accepted but never picked up, e.g. after a
	// restart.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Job %s enqueued\n", jobID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", jobID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("👷 Worker #%d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, jobID)
			if err := w.evaluatorService.EvaluateCategory(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.evalRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending jobs\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
