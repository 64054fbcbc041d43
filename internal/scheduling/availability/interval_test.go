package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2026, 9, 1, h, m, 0, 0, time.UTC)
}

func TestInterval_Contains(t *testing.T) {
	iv := Interval{Start: at(9, 0), End: at(17, 0)}

	assert.True(t, iv.Contains(at(9, 0), at(17, 0)), "exact boundaries")
	assert.True(t, iv.Contains(at(10, 0), at(11, 0)))
	assert.False(t, iv.Contains(at(8, 59), at(10, 0)))
	assert.False(t, iv.Contains(at(16, 0), at(17, 1)))
}

func TestCovers(t *testing.T) {
	free := []Interval{
		{Start: at(9, 0), End: at(13, 0)},
		{Start: at(14, 0), End: at(18, 0)},
	}

	assert.True(t, Covers(free, at(9, 0), at(10, 0)))
	assert.True(t, Covers(free, at(14, 0), at(18, 0)))

	// Слот через обеденный перерыв не покрыт ни одним интервалом
	assert.False(t, Covers(free, at(12, 30), at(14, 30)))
	assert.False(t, Covers(free, at(18, 0), at(19, 0)))
	assert.False(t, Covers(nil, at(9, 0), at(10, 0)))
}

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name  string
		input []Interval
		want  []Interval
	}{
		{
			name:  "disjoint stay separate",
			input: []Interval{{at(9, 0), at(12, 0)}, {at(14, 0), at(18, 0)}},
			want:  []Interval{{at(9, 0), at(12, 0)}, {at(14, 0), at(18, 0)}},
		},
		{
			name:  "overlapping merge",
			input: []Interval{{at(9, 0), at(13, 0)}, {at(12, 0), at(18, 0)}},
			want:  []Interval{{at(9, 0), at(18, 0)}},
		},
		{
			name:  "adjacent merge",
			input: []Interval{{at(9, 0), at(13, 0)}, {at(13, 0), at(18, 0)}},
			want:  []Interval{{at(9, 0), at(18, 0)}},
		},
		{
			name:  "contained interval is swallowed",
			input: []Interval{{at(9, 0), at(18, 0)}, {at(10, 0), at(11, 0)}},
			want:  []Interval{{at(9, 0), at(18, 0)}},
		},
		{
			name:  "unsorted input",
			input: []Interval{{at(14, 0), at(18, 0)}, {at(9, 0), at(12, 0)}},
			want:  []Interval{{at(9, 0), at(12, 0)}, {at(14, 0), at(18, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeIntervals(tt.input))
		})
	}
}
