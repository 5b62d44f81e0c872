package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOrder(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{
			name:     "empty scope starts at zero",
			existing: nil,
			want:     0,
		},
		{
			name:     "dense sequence appends after max",
			existing: []int{0, 1, 2},
			want:     3,
		},
		{
			name:     "sparse sequence appends after max",
			existing: []int{0, 5, 2},
			want:     6,
		},
		{
			name:     "single item",
			existing: []int{3},
			want:     4,
		},
		{
			name:     "unordered input",
			existing: []int{7, 1, 4},
			want:     8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOrder(tt.existing)
			assert.Equal(t, tt.want, got)

			// The result never collides with an existing value.
			for _, o := range tt.existing {
				assert.Greater(t, got, o)
			}
		})
	}
}
