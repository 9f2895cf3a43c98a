package detection

import "sort"

// mergeSuppressionRadius is how close two accepted detections of the same
// shape kind may sit before the lower-confidence one is treated as a
// duplicate found by a different algorithm or cluster.
const mergeSuppressionRadius = 2.0

// mergeDetections filters and deduplicates the concatenated per-cluster,
// per-algorithm candidates into one ranked list. Candidates below the minimum
// confidence are dropped, the rest are ranked confidence-descending (ID
// ascending on ties, for determinism), and each is accepted greedily unless
// an already accepted detection of the same kind sits within the suppression
// radius.
func mergeDetections(candidates []Detection, minConfidence float64) []Detection {
	kept := make([]Detection, 0, len(candidates))
	for _, d := range candidates {
		if d.Confidence >= minConfidence {
			kept = append(kept, d)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Confidence != kept[j].Confidence {
			return kept[i].Confidence > kept[j].Confidence
		}
		return kept[i].ID < kept[j].ID
	})

	accepted := make([]Detection, 0, len(kept))
	for _, d := range kept {
		duplicate := false
		for _, a := range accepted {
			if a.Kind == d.Kind && a.Center.Distance(d.Center) < mergeSuppressionRadius {
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, d)
		}
	}
	return accepted
}
