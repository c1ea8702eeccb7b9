package service

import (
	"testing"

	"admin-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardPath(t *testing.T) {
	path := []string{
		models.OrderStatusPlaced,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusOutForDelivery,
		models.OrderStatusDelivered,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]),
			"expected %s -> %s to be allowed", path[i], path[i+1])
	}
}

func TestCanTransitionRejectsBackwards(t *testing.T) {
	assert.False(t, CanTransition(models.OrderStatusDelivered, models.OrderStatusPlaced))
	assert.False(t, CanTransition(models.OrderStatusShipped, models.OrderStatusConfirmed))
	assert.False(t, CanTransition(models.OrderStatusPlaced, models.OrderStatusShipped))
}

func TestCancelledAndReturnedReachableFromNonTerminal(t *testing.T) {
	nonTerminal := []string{
		models.OrderStatusPlaced,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusOutForDelivery,
	}

	for _, from := range nonTerminal {
		assert.True(t, CanTransition(from, models.OrderStatusCancelled), "from %s", from)
		assert.True(t, CanTransition(from, models.OrderStatusReturned), "from %s", from)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusReturned,
	} {
		assert.True(t, IsTerminalStatus(terminal))
		for status := range transitions {
			assert.False(t, CanTransition(terminal, status),
				"terminal %s must not transition to %s", terminal, status)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(models.OrderStatusPlaced))
	assert.True(t, IsValidStatus(models.OrderStatusOutForDelivery))
	assert.False(t, IsValidStatus("PAID"))
	assert.False(t, IsValidStatus(""))
}
