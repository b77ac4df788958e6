package feature

import "github.com/dmitrymomot/flagkit/pkg/bucket"

// variantSaltSuffix keeps variant stickiness independent from percentage
// rollout membership: the same subject lands in unrelated buckets for the
// two decisions.
const variantSaltSuffix = ":variant"

// assignVariant picks the sticky variant for a subject, or nil when the flag
// defines none.
//
// Weights are normalized into cumulative percentage boundaries over the total
// weight, so [70, 30] and [7, 3] allocate identically. The subject's variant
// bucket selects the first variant whose boundary exceeds it; if floating
// point rounding leaves no boundary above the bucket, the first variant in
// list order wins.
func assignVariant(flag *Flag, subjectID string) *Variant {
	if len(flag.Variants) == 0 {
		return nil
	}

	var total float64
	for _, v := range flag.Variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total <= 0 {
		return &flag.Variants[0]
	}

	b := float64(bucket.Bucket(subjectID, flag.Key+variantSaltSuffix))
	var cumulative float64
	for i := range flag.Variants {
		w := flag.Variants[i].Weight
		if w < 0 {
			w = 0
		}
		cumulative += w / total * 100
		if b < cumulative {
			return &flag.Variants[i]
		}
	}
	return &flag.Variants[0]
}
