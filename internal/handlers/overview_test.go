package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestSummarizeOrdersCountsByStatus(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderStatusPending, Total: 100},
		{Status: models.OrderStatusCompleted, Total: 250.50},
		{Status: models.OrderStatusCompleted, Total: 99.50},
		{Status: models.OrderStatusCancelled, Total: 400},
	}

	stats := summarizeOrders(orders)

	if stats.Total != 4 {
		t.Fatalf("expected total=4, got %d", stats.Total)
	}
	if stats.Pending != 1 || stats.Completed != 2 || stats.Cancelled != 1 {
		t.Fatalf("unexpected status counts: %+v", stats)
	}
	if stats.Revenue != 350 {
		t.Fatalf("expected revenue=350 from completed orders only, got %v", stats.Revenue)
	}
}

func TestSummarizeOrdersEmpty(t *testing.T) {
	stats := summarizeOrders(nil)
	if stats.Total != 0 || stats.Revenue != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
