// Package bucket implements the deterministic subject bucketing used for
// percentage rollouts and sticky variant assignment.
//
// The hash is a compatibility contract: identical (subject, salt) pairs must
// yield identical buckets across calls, processes, and restarts so that
// rollout membership never shifts under a redeploy. The arithmetic below is
// specified exactly and must not be replaced with another hash function, even
// a better one, since changing it would re-bucket every existing subject.
package bucket

// Bucket maps a subject id and a salt to an integer in [0, 100).
//
// The hashed input is subjectID + ":" + salt. Each character code feeds a
// 32-bit signed rolling hash h = (h*31 - h) + c, wrapping at every step; the
// bucket is abs(h) mod 100. The absolute value is taken in 64-bit arithmetic
// because abs(MinInt32) does not fit in an int32.
func Bucket(subjectID, salt string) int {
	var h int32
	for _, c := range subjectID + ":" + salt {
		h = h*31 - h + c
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % 100)
}
