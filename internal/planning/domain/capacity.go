package domain

import (
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// BucketPlan is the 1-3-5 view of one bucket on one day.
type BucketPlan struct {
	Bucket     value_objects.Bucket
	Quota      int
	Scheduled  []*task.Task
	TotalCount int
	Exceeded   bool
}

// DayPlan is the 1-3-5 plan for a date.
type DayPlan struct {
	Date   value_objects.Date
	Major  BucketPlan
	Medium BucketPlan
	Small  BucketPlan
}

// Buckets returns the bucket plans from major to small.
func (p DayPlan) Buckets() []BucketPlan {
	return []BucketPlan{p.Major, p.Medium, p.Small}
}

// Bucket returns the plan of bucket b.
func (p DayPlan) Bucket(b value_objects.Bucket) BucketPlan {
	switch b {
	case value_objects.BucketMajor:
		return p.Major
	case value_objects.BucketMedium:
		return p.Medium
	default:
		return p.Small
	}
}

// PlanDay builds the 1-3-5 plan for date. Scheduled lists keep list order and are
// truncated to the bucket quota; TotalCount is the untruncated count.
func PlanDay(tasks []*task.Task, date value_objects.Date) DayPlan {
	return DayPlan{
		Date:   date,
		Major:  planBucket(tasks, date, value_objects.BucketMajor),
		Medium: planBucket(tasks, date, value_objects.BucketMedium),
		Small:  planBucket(tasks, date, value_objects.BucketSmall),
	}
}

// CountOnDay returns the number of tasks of bucket due on date.
func CountOnDay(tasks []*task.Task, date value_objects.Date, bucket value_objects.Bucket) int {
	n := 0
	for _, t := range tasks {
		if t.Bucket() == bucket && t.IsDueOn(date) {
			n++
		}
	}
	return n
}

func planBucket(tasks []*task.Task, date value_objects.Date, bucket value_objects.Bucket) BucketPlan {
	quota := bucket.Quota()
	plan := BucketPlan{Bucket: bucket, Quota: quota, Scheduled: []*task.Task{}}
	for _, t := range tasks {
		if t.Bucket() != bucket || !t.IsDueOn(date) {
			continue
		}
		plan.TotalCount++
		if len(plan.Scheduled) < quota {
			plan.Scheduled = append(plan.Scheduled, t)
		}
	}
	plan.Exceeded = plan.TotalCount > quota
	return plan
}
