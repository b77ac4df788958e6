package bucket_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/bucket"
)

func TestBucketKnownValues(t *testing.T) {
	t.Parallel()

	// Fixed expectations pinned against the reference implementation of the
	// rolling hash. These must never change.
	tests := []struct {
		subject string
		salt    string
		want    int
	}{
		{"user-42", "new-ui", 99},
		{"user-42", "new-ui:variant", 28},
		{"anonymous", "new-ui", 27},
		{"sess-1", "new-ui", 3},
		{"alice", "checkout", 22},
		{"bob", "checkout", 86},
		{"user-7", "beta", 25},
		{"alice", "dark-mode", 19},
		{"bob", "dark-mode", 95},
		{"carol", "dark-mode", 7},
		{"", "new-ui", 55},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.subject+"/"+tt.salt, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bucket.Bucket(tt.subject, tt.salt))
		})
	}
}

func TestBucketDeterminism(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		subject := fmt.Sprintf("subject-%d", i)
		first := bucket.Bucket(subject, "salt")
		for n := 0; n < 10; n++ {
			require.Equal(t, first, bucket.Bucket(subject, "salt"))
		}
	}
}

func TestBucketRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10000; i++ {
		b := bucket.Bucket(fmt.Sprintf("user-%d", i), "range-check")
		require.GreaterOrEqual(t, b, 0)
		require.Less(t, b, 100)
	}
}

func TestBucketSaltIndependence(t *testing.T) {
	t.Parallel()

	// The flag-key salt and the variant salt must bucket the same subject
	// independently; at least some subjects must land in different buckets.
	diff := 0
	for i := 0; i < 1000; i++ {
		subject := fmt.Sprintf("user-%d", i)
		if bucket.Bucket(subject, "new-ui") != bucket.Bucket(subject, "new-ui:variant") {
			diff++
		}
	}
	assert.Greater(t, diff, 500)
}

func TestBucketDistribution(t *testing.T) {
	t.Parallel()

	// Fractions below each threshold converge within +/-2% over 100k
	// distinct subjects.
	const n = 100000
	for _, threshold := range []int{10, 25, 50, 75} {
		threshold := threshold
		t.Run(fmt.Sprintf("threshold_%d", threshold), func(t *testing.T) {
			t.Parallel()
			hits := 0
			for i := 0; i < n; i++ {
				if bucket.Bucket(fmt.Sprintf("user-%d", i), "new-ui") < threshold {
					hits++
				}
			}
			frac := float64(hits) / float64(n)
			assert.InDelta(t, float64(threshold)/100, frac, 0.02)
		})
	}
}
