package domain

import "github.com/samber/lo"

// MileageBucket is one selectable odometer band. Buckets overlap on purpose:
// a 12k-mile car is both "under-15000" and "under-30000".
type MileageBucket struct {
	Key   string
	Label string
	Min   int // inclusive
	Max   int // exclusive, 0 means unbounded
}

var MileageBuckets = []MileageBucket{
	{Key: "under-15000", Label: "Under 15,000 miles", Max: 15000},
	{Key: "under-30000", Label: "Under 30,000 miles", Max: 30000},
	{Key: "under-60000", Label: "Under 60,000 miles", Max: 60000},
	{Key: "under-100000", Label: "Under 100,000 miles", Max: 100000},
	{Key: "over-100000", Label: "100,000 miles and up", Min: 100000},
}

func IsMileageBucket(key string) bool {
	_, ok := FindMileageBucket(key)
	return ok
}

func FindMileageBucket(key string) (MileageBucket, bool) {
	return lo.Find(MileageBuckets, func(b MileageBucket) bool { return b.Key == key })
}

// Contains reports whether an odometer reading falls inside the bucket.
func (b MileageBucket) Contains(mileage int) bool {
	if mileage < b.Min {
		return false
	}
	return b.Max == 0 || mileage < b.Max
}

// MileageBucketsFor returns the keys of every bucket the reading belongs to.
func MileageBucketsFor(mileage int) []string {
	return lo.FilterMap(MileageBuckets, func(b MileageBucket, _ int) (string, bool) {
		return b.Key, b.Contains(mileage)
	})
}
