package scheduler

import (
	"context"
	"time"
)

// RefundScheduler defines the interface for a component that schedules an
// auction's expiry refund for later processing.
type RefundScheduler interface {
	// ScheduleRefund enqueues the auction for refund processing after delay.
	ScheduleRefund(ctx context.Context, auctionID string, delay time.Duration) error
}

// RefundMessage is the queue payload for a pending expiry refund.
type RefundMessage struct {
	AuctionID string `json:"auction_id"`
}
