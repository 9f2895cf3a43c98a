// Command scandetect reads a PCD scan and prints the primitive shapes
// detected in it.
package main

import (
	"context"
	"os"

	"github.com/edaniels/golog"
	goutils "go.viam.com/utils"

	"github.com/scanforge/scandetect/detection"
	"github.com/scanforge/scandetect/pointcloud"
)

var logger = golog.NewDevelopmentLogger("scandetect")

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ScanFile         string `flag:"0,required,usage=pcd scan to analyze"`
	MinConfidencePct int    `flag:"minconf,default=60,usage=minimum detection confidence as a percentage"`
	NoFeatures       bool   `flag:"nofeatures,usage=disable bounding-volume feature classification"`
	NoCurvature      bool   `flag:"nocurvature,usage=disable curvature analysis"`
	NoICP            bool   `flag:"noicp,usage=disable icp registration"`
	FullRigidICP     bool   `flag:"rigidicp,usage=use the full rigid-transform icp solve"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	f, err := os.Open(argsParsed.ScanFile)
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	cloud, err := pointcloud.ReadPCD(f)
	if err != nil {
		return err
	}
	logger.Infow("scan loaded", "file", argsParsed.ScanFile, "points", cloud.Size())

	var detectorOpts []detection.DetectorOption
	if argsParsed.FullRigidICP {
		detectorOpts = append(detectorOpts, detection.WithFullRigidICP())
	}
	detector := detection.New(logger, detectorOpts...)

	opts := detection.DefaultOptions()
	opts.MinConfidence = float64(argsParsed.MinConfidencePct) / 100
	opts.UseFeatureExtraction = !argsParsed.NoFeatures
	opts.UseCurvatureAnalysis = !argsParsed.NoCurvature
	opts.UseICP = !argsParsed.NoICP

	detections, err := detector.Detect(ctx, cloud, opts)
	if err != nil {
		return err
	}

	logger.Infow("detection pass finished", "geometries", len(detections))
	for _, det := range detections {
		logger.Infof("%-9s conf=%.2f via=%-18s center=(%.2f, %.2f, %.2f) half-extents=(%.2f, %.2f, %.2f)",
			det.Kind, det.Confidence, det.Algorithm,
			det.Center.X, det.Center.Y, det.Center.Z,
			det.HalfExtents.X, det.HalfExtents.Y, det.HalfExtents.Z)
	}
	return nil
}
