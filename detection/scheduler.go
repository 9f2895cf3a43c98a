package detection

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"

	pc "github.com/scanforge/scandetect/pointcloud"
)

// Scheduler defers detection passes off the interactive path. Requests are
// debounced so a burst of mesh-load events produces at most one pass, and
// scheduling a new pass cancels any outstanding one first, so a stale pass
// over a replaced mesh never delivers its detections.
type Scheduler struct {
	detector  *Detector
	logger    golog.Logger
	debounced func(func())

	mu     sync.Mutex
	cancel context.CancelFunc

	activeBackgroundWorkers sync.WaitGroup
}

// NewScheduler wraps a detector with debounced background scheduling. delay
// is how long a request may sit before the pass starts; further requests
// within the window replace it.
func NewScheduler(detector *Detector, delay time.Duration, logger golog.Logger) *Scheduler {
	return &Scheduler{
		detector:  detector,
		logger:    logger,
		debounced: debounce.New(delay),
	}
}

// Schedule queues a detection pass over the mesh and delivers the results to
// deliver once the pass completes. A pass superseded before completion is
// canceled and delivers nothing.
func (s *Scheduler) Schedule(mesh pc.Mesh, opts Options, deliver func([]Detection)) {
	s.debounced(func() {
		s.mu.Lock()
		if s.cancel != nil {
			s.cancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.mu.Unlock()

		s.activeBackgroundWorkers.Add(1)
		goutils.PanicCapturingGo(func() {
			defer s.activeBackgroundWorkers.Done()
			defer cancel()
			detections, err := s.detector.Detect(ctx, mesh, opts)
			if err != nil {
				s.logger.Debugw("detection pass aborted", "error", err)
				return
			}
			deliver(detections)
		})
	})
}

// Close cancels any outstanding pass and waits for it to wind down.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.activeBackgroundWorkers.Wait()
}
