package value_objects

import (
	"errors"
	"strings"
)

// Bucket is a 1-3-5 planning category.
type Bucket int

const (
	BucketMajor Bucket = iota + 1
	BucketMedium
	BucketSmall
)

var (
	ErrInvalidBucket = errors.New("invalid 1-3-5 bucket")
)

var bucketNames = map[Bucket]string{
	BucketMajor:  "major",
	BucketMedium: "medium",
	BucketSmall:  "small",
}

var bucketValues = map[string]Bucket{
	"major":  BucketMajor,
	"medium": BucketMedium,
	"small":  BucketSmall,
}

// Per-day quotas of the 1-3-5 method.
var bucketQuotas = map[Bucket]int{
	BucketMajor:  1,
	BucketMedium: 3,
	BucketSmall:  5,
}

// Buckets lists the buckets from largest to smallest.
func Buckets() []Bucket {
	return []Bucket{BucketMajor, BucketMedium, BucketSmall}
}

// ParseBucket creates a Bucket from a string.
func ParseBucket(s string) (Bucket, error) {
	b, ok := bucketValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidBucket
	}
	return b, nil
}

// String returns the string representation of the bucket.
func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the bucket is a valid value.
func (b Bucket) IsValid() bool {
	_, ok := bucketNames[b]
	return ok
}

// Quota returns the maximum number of tasks of this bucket per day.
func (b Bucket) Quota() int {
	return bucketQuotas[b]
}
