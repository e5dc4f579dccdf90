package value_objects_test

import (
	"testing"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected value_objects.Priority
		wantErr  bool
	}{
		{"a", "a", value_objects.PriorityA, false},
		{"b", "b", value_objects.PriorityB, false},
		{"c", "c", value_objects.PriorityC, false},
		{"d", "d", value_objects.PriorityD, false},
		{"e", "e", value_objects.PriorityE, false},
		{"upper case", "A", value_objects.PriorityA, false},
		{"padded", " e ", value_objects.PriorityE, false},
		{"invalid letter", "f", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := value_objects.ParsePriority(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "a", value_objects.PriorityA.String())
	assert.Equal(t, "e", value_objects.PriorityE.String())
	assert.Equal(t, "unknown", value_objects.Priority(99).String())
}

func TestPriority_Label(t *testing.T) {
	assert.Equal(t, "A - Most Important", value_objects.PriorityA.Label())
	assert.Equal(t, "E - Eliminate", value_objects.PriorityE.Label())
}

func TestPriority_IsValid(t *testing.T) {
	for _, p := range value_objects.Priorities() {
		assert.True(t, p.IsValid())
	}
	assert.False(t, value_objects.Priority(0).IsValid())
}

func TestPriority_DefaultBucket(t *testing.T) {
	tests := []struct {
		priority value_objects.Priority
		expected value_objects.Bucket
	}{
		{value_objects.PriorityA, value_objects.BucketMajor},
		{value_objects.PriorityB, value_objects.BucketMedium},
		{value_objects.PriorityC, value_objects.BucketSmall},
		{value_objects.PriorityD, value_objects.BucketSmall},
		{value_objects.PriorityE, value_objects.BucketSmall},
	}

	for _, tt := range tests {
		t.Run(tt.priority.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.priority.DefaultBucket())
		})
	}
}
