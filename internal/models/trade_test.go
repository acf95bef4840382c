package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    TradeStatus
		to      TradeStatus
		allowed bool
	}{
		{"open to in_progress", TradeStatusOpen, TradeStatusInProgress, true},
		{"in_progress to completed", TradeStatusInProgress, TradeStatusCompleted, true},
		{"open to cancelled", TradeStatusOpen, TradeStatusCancelled, true},
		{"in_progress to cancelled", TradeStatusInProgress, TradeStatusCancelled, true},
		{"open to completed skips in_progress", TradeStatusOpen, TradeStatusCompleted, false},
		{"in_progress back to open", TradeStatusInProgress, TradeStatusOpen, false},
		{"completed is terminal", TradeStatusCompleted, TradeStatusCancelled, false},
		{"cancelled is terminal", TradeStatusCancelled, TradeStatusOpen, false},
		{"completed cannot reopen", TradeStatusCompleted, TradeStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTradeStatusTerminal(t *testing.T) {
	assert.False(t, TradeStatusOpen.Terminal())
	assert.False(t, TradeStatusInProgress.Terminal())
	assert.True(t, TradeStatusCompleted.Terminal())
	assert.True(t, TradeStatusCancelled.Terminal())
}

func TestValidTradeStatus(t *testing.T) {
	assert.True(t, ValidTradeStatus(TradeStatusOpen))
	assert.False(t, ValidTradeStatus("haggling"))
}
