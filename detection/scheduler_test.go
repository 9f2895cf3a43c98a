package detection

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSchedulerDeliversResults(t *testing.T) {
	logger := golog.NewTestLogger(t)
	s := NewScheduler(New(logger), 10*time.Millisecond, logger)
	defer s.Close()

	mesh := meshOf(spherePoints(500, 1.0, r3.Vector{}))
	results := make(chan []Detection, 1)
	s.Schedule(mesh, featureOnlyOptions(), func(dets []Detection) {
		results <- dets
	})

	select {
	case dets := <-results:
		test.That(t, dets, test.ShouldNotBeEmpty)
		test.That(t, dets[0].Kind, test.ShouldEqual, ShapeSphere)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled pass never delivered")
	}
}

func TestSchedulerDebouncesBursts(t *testing.T) {
	logger := golog.NewTestLogger(t)
	s := NewScheduler(New(logger), 50*time.Millisecond, logger)
	defer s.Close()

	mesh := meshOf(spherePoints(200, 1.0, r3.Vector{}))
	var delivered int32
	for i := 0; i < 5; i++ {
		s.Schedule(mesh, featureOnlyOptions(), func([]Detection) {
			atomic.AddInt32(&delivered, 1)
		})
	}

	// one burst of schedules runs exactly one pass
	time.Sleep(500 * time.Millisecond)
	test.That(t, atomic.LoadInt32(&delivered), test.ShouldEqual, 1)
}

func TestSchedulerCloseWithoutSchedule(t *testing.T) {
	logger := golog.NewTestLogger(t)
	s := NewScheduler(New(logger), time.Millisecond, logger)
	s.Close()
}
