package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredibilityDelta(t *testing.T) {
	tests := []struct {
		rating   int
		expected int
	}{
		{5, 1},
		{4, 1},
		{3, 1},
		{2, -1},
		{1, -1},
	}

	for _, tt := range tests {
		vouch := &Vouch{Rating: tt.rating}
		assert.Equal(t, tt.expected, vouch.CredibilityDelta(), "rating %d", tt.rating)
	}
}
