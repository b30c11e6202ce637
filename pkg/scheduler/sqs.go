package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQS caps per-message delay at 15 minutes. Auctions live longer than that,
// so the refund worker re-enqueues a message that arrives before expiry; the
// scheduled sweep catches anything the queue drops.
const MaxDelay = 15 * time.Minute

// SQSScheduler implements the RefundScheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client *sqs.Client, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ RefundScheduler = (*SQSScheduler)(nil)

// ScheduleRefund sends the auction id to the refund queue, delayed by delay
// clamped to the SQS maximum.
func (s *SQSScheduler) ScheduleRefund(ctx context.Context, auctionID string, delay time.Duration) error {
	body, err := json.Marshal(RefundMessage{AuctionID: auctionID})
	if err != nil {
		return fmt.Errorf("failed to marshal refund message: %w", err)
	}

	if delay > MaxDelay {
		delay = MaxDelay
	}
	if delay < 0 {
		delay = 0
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
