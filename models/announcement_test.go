package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"urgent", PriorityUrgent},
		{"URGENT", PriorityUrgent},
		{"Urgent", PriorityUrgent},
		{"normal", PriorityNormal},
		{"NORMAL", PriorityNormal},
		{"", PriorityNormal},
		{"shouty", PriorityNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePriority(tt.in), "input %q", tt.in)
	}
}
