package detection

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	pc "github.com/scanforge/scandetect/pointcloud"
	"github.com/scanforge/scandetect/segmentation"
)

// Options control which classification strategies a detection pass runs and
// the confidence floor its results must clear.
type Options struct {
	UseICP               bool    `json:"use_icp"`
	UseCurvatureAnalysis bool    `json:"use_curvature_analysis"`
	UseFeatureExtraction bool    `json:"use_feature_extraction"`
	MinConfidence        float64 `json:"min_confidence"`
}

// DefaultOptions enables every strategy with a 0.6 confidence floor.
func DefaultOptions() Options {
	return Options{
		UseICP:               true,
		UseCurvatureAnalysis: true,
		UseFeatureExtraction: true,
		MinConfidence:        0.6,
	}
}

// Detector recognizes primitive shapes in scanned meshes. A Detector is
// stateless across passes; the only thing it carries between calls is the
// read-only reference shape library built at construction. Callers must not
// run two passes over the same mesh concurrently.
type Detector struct {
	logger       golog.Logger
	clock        clock.Clock
	segCfg       segmentation.Config
	fullRigidICP bool
	references   []referenceShape
}

// DetectorOption configures a Detector at construction.
type DetectorOption func(*Detector)

// WithClock swaps the wall clock, letting tests pin detection timestamps.
func WithClock(c clock.Clock) DetectorOption {
	return func(d *Detector) { d.clock = c }
}

// WithSegmentationConfig overrides the clustering parameters.
func WithSegmentationConfig(cfg segmentation.Config) DetectorOption {
	return func(d *Detector) { d.segCfg = cfg }
}

// WithFullRigidICP replaces the translation-only ICP transform step with a
// full rigid Kabsch solve that also recovers rotation. Off by default to
// match the original system's behavior.
func WithFullRigidICP() DetectorOption {
	return func(d *Detector) { d.fullRigidICP = true }
}

// New builds a Detector, including its reference shape library.
func New(logger golog.Logger, opts ...DetectorOption) *Detector {
	d := &Detector{
		logger:     logger,
		clock:      clock.New(),
		segCfg:     segmentation.DefaultConfig(),
		references: buildReferenceShapes(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs one full detection pass over the mesh and returns the ranked
// detections. An empty mesh yields an empty result, not an error; the only
// error returned is context cancellation. A failure while classifying one
// cluster is contained to that cluster: it contributes zero detections and
// the pass carries on.
func (d *Detector) Detect(ctx context.Context, mesh pc.Mesh, opts Options) ([]Detection, error) {
	start := d.clock.Now()
	cloud := pc.FromMesh(mesh)
	if cloud.Size() == 0 {
		return []Detection{}, nil
	}

	clusters := segmentation.RadiusClustering(cloud, d.segCfg)

	var candidates []Detection
	var clusterErrs error
	nextID := 0
	for _, cluster := range clusters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dets, err := d.classifyCluster(ctx, cluster, opts, &nextID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			clusterErrs = multierr.Append(clusterErrs, err)
			continue
		}
		candidates = append(candidates, dets...)
	}
	if clusterErrs != nil {
		d.logger.Warnw("some clusters failed to classify", "error", clusterErrs)
	}

	accepted := mergeDetections(candidates, opts.MinConfidence)
	d.logger.Debugw("detection pass complete",
		"points", cloud.Size(),
		"clusters", len(clusters),
		"candidates", len(candidates),
		"accepted", len(accepted),
		"elapsed", d.clock.Since(start),
	)
	return accepted, nil
}

// classifyCluster runs every enabled strategy over one cluster. A panic while
// classifying is converted into an error so one malformed cluster cannot
// abort the whole pass.
func (d *Detector) classifyCluster(ctx context.Context, cluster *pc.PointCloud, opts Options, nextID *int) (dets []Detection, err error) {
	defer func() {
		if r := recover(); r != nil {
			dets = nil
			err = errors.Errorf("cluster classification panicked: %v", r)
		}
	}()

	emit := func(det Detection) {
		det.ID = *nextID
		*nextID++
		det.CreatedAt = d.clock.Now()
		dets = append(dets, det)
	}

	if opts.UseFeatureExtraction {
		if det, ok := classifyFeatures(cluster); ok {
			emit(det)
		}
	}
	if opts.UseCurvatureAnalysis {
		if det, ok := analyzeCurvature(cluster); ok {
			emit(det)
		}
	}
	if opts.UseICP && cluster.Size() >= icpMinClusterSize {
		for _, ref := range d.references {
			res, icpErr := registerICP(ctx, cluster, ref, d.fullRigidICP)
			if icpErr != nil {
				return nil, icpErr
			}
			if det, ok := icpDetection(cluster, ref, res); ok {
				emit(det)
			}
		}
	}
	return dets, nil
}
