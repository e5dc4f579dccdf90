package domain

import (
	"fmt"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
)

// RolloverHorizonDays bounds the forward search for a day with spare capacity.
const RolloverHorizonDays = 14

// CapacityExceeded describes a (date, bucket) pair that is already at quota.
type CapacityExceeded struct {
	Date   value_objects.Date
	Bucket value_objects.Bucket
	Quota  int
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("%s already has %d %s task(s)", e.Date, e.Quota, e.Bucket)
}

// Resolution is the outcome of checking a candidate against the daily quotas.
type Resolution struct {
	Valid            bool
	RequestedDate    value_objects.Date
	ResolvedDate     value_objects.Date
	Violation        *CapacityExceeded
	HorizonExhausted bool
}

// RolledOver reports whether the candidate was moved to another day.
func (r Resolution) RolledOver() bool {
	return !r.RequestedDate.Equal(r.ResolvedDate)
}

// ValidateCapacity checks whether candidate fits on its due date.
// A stored task with the same id, bucket and date does not count against itself.
func ValidateCapacity(candidate *task.Task, tasks []*task.Task) *CapacityExceeded {
	due := candidate.DueDate()
	if due == nil {
		return nil
	}

	count := 0
	for _, t := range tasks {
		if t.ID() == candidate.ID() {
			if t.Bucket() == candidate.Bucket() && t.IsDueOn(*due) {
				return nil
			}
			continue
		}
		if t.Bucket() == candidate.Bucket() && t.IsDueOn(*due) {
			count++
		}
	}

	quota := candidate.Bucket().Quota()
	if count >= quota {
		return &CapacityExceeded{Date: *due, Bucket: candidate.Bucket(), Quota: quota}
	}
	return nil
}

// NextAvailableDay returns the first day from start onward, within the horizon,
// where bucket is below quota. When every day is full it returns the day after
// the last one checked and reports exhausted.
func NextAvailableDay(tasks []*task.Task, bucket value_objects.Bucket, start value_objects.Date) (day value_objects.Date, exhausted bool) {
	quota := bucket.Quota()
	day = start
	for i := 0; i <= RolloverHorizonDays; i++ {
		if CountOnDay(tasks, day, bucket) < quota {
			return day, false
		}
		day = day.AddDays(1)
	}
	return day, true
}

// ResolveCapacity validates candidate and, when its day is full, moves it to the
// next day with spare capacity. Only the due date of candidate is changed.
func ResolveCapacity(candidate *task.Task, tasks []*task.Task) Resolution {
	due := candidate.DueDate()
	if due == nil {
		return Resolution{Valid: true}
	}

	res := Resolution{Valid: true, RequestedDate: *due, ResolvedDate: *due}
	violation := ValidateCapacity(candidate, tasks)
	if violation == nil {
		return res
	}

	res.Valid = false
	res.Violation = violation
	res.ResolvedDate, res.HorizonExhausted = NextAvailableDay(tasks, candidate.Bucket(), *due)
	candidate.Reschedule(res.ResolvedDate)
	return res
}

// ResolveUpdate applies ResolveCapacity to an edited candidate only when its
// bucket or due date differs from the stored version.
func ResolveUpdate(stored, candidate *task.Task, tasks []*task.Task) Resolution {
	if stored != nil && !scheduleChanged(stored, candidate) {
		res := Resolution{Valid: true}
		if due := candidate.DueDate(); due != nil {
			res.RequestedDate = *due
			res.ResolvedDate = *due
		}
		return res
	}
	return ResolveCapacity(candidate, tasks)
}

func scheduleChanged(stored, candidate *task.Task) bool {
	if stored.Bucket() != candidate.Bucket() {
		return true
	}
	a, b := stored.DueDate(), candidate.DueDate()
	if a == nil || b == nil {
		return a != b
	}
	return !a.Equal(*b)
}
