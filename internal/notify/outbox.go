package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rimmelzwaan/salon-booking/internal/appointments"
	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

const outboxKey = "salon:email_outbox"

// outboxItem is the queued form of a confirmation email.
type outboxItem struct {
	Confirmation appointments.Confirmation `json:"confirmation"`
	Attempts     int                       `json:"attempts"`
	NotBefore    time.Time                 `json:"not_before"`
}

// Outbox queues confirmation emails in Redis and drains them with retries,
// so a booked appointment never loses its email to a transient provider
// failure. Without Redis it degrades to a synchronous best-effort send.
type Outbox struct {
	redis       *redis.Client
	sender      EmailSender
	mailer      *ConfirmationMailer
	logger      *logging.Logger
	maxAttempts int
	baseDelay   time.Duration
	interval    time.Duration
	batchSize   int
}

// NewOutbox creates an outbox. redisClient may be nil for synchronous mode.
func NewOutbox(redisClient *redis.Client, sender EmailSender, mailer *ConfirmationMailer, logger *logging.Logger) *Outbox {
	if sender == nil {
		panic("notify: email sender required")
	}
	if mailer == nil {
		panic("notify: confirmation mailer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Outbox{
		redis:       redisClient,
		sender:      sender,
		mailer:      mailer,
		logger:      logger,
		maxAttempts: 5,
		baseDelay:   2 * time.Minute,
		interval:    30 * time.Second,
		batchSize:   25,
	}
}

func (o *Outbox) WithMaxAttempts(n int) *Outbox {
	if n > 0 {
		o.maxAttempts = n
	}
	return o
}

func (o *Outbox) WithBaseDelay(d time.Duration) *Outbox {
	if d > 0 {
		o.baseDelay = d
	}
	return o
}

func (o *Outbox) WithInterval(d time.Duration) *Outbox {
	if d > 0 {
		o.interval = d
	}
	return o
}

// EnqueueConfirmation implements appointments.Notifier.
func (o *Outbox) EnqueueConfirmation(ctx context.Context, c appointments.Confirmation) error {
	if o.redis == nil {
		msg := o.mailer.Compose(c)
		if err := o.sender.Send(ctx, msg); err != nil {
			return fmt.Errorf("notify: direct send: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(outboxItem{Confirmation: c, NotBefore: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("notify: marshal outbox item: %w", err)
	}
	if err := o.redis.LPush(ctx, outboxKey, raw).Err(); err != nil {
		return fmt.Errorf("notify: enqueue confirmation: %w", err)
	}
	return nil
}

// Run drains the outbox until ctx is canceled.
func (o *Outbox) Run(ctx context.Context) {
	if o.redis == nil {
		return
	}
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	o.Drain(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.Drain(ctx)
		}
	}
}

// Drain processes up to one batch of queued emails. Items that fail go back
// on the queue with a delay until they run out of attempts.
func (o *Outbox) Drain(ctx context.Context) {
	if o.redis == nil {
		return
	}
	for i := 0; i < o.batchSize; i++ {
		raw, err := o.redis.RPop(ctx, outboxKey).Result()
		if err == redis.Nil {
			return
		}
		if err != nil {
			o.logger.Error("outbox pop failed", "error", err)
			return
		}

		var item outboxItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			o.logger.Error("dropping malformed outbox item", "error", err)
			continue
		}

		// The queue is FIFO, so the popped item is the oldest. If even it is
		// not due yet, this pass is over; put it back at the front untouched
		// rather than cycling it through the queue once per batch slot.
		if time.Now().UTC().Before(item.NotBefore) {
			if err := o.redis.RPush(ctx, outboxKey, raw).Err(); err != nil {
				o.logger.Error("outbox requeue failed", "error", err)
			}
			return
		}

		msg := o.mailer.Compose(item.Confirmation)
		if err := o.sender.Send(ctx, msg); err != nil {
			item.Attempts++
			if item.Attempts >= o.maxAttempts {
				o.logger.Error("giving up on confirmation email",
					"error", err,
					"to", item.Confirmation.ClientEmail,
					"attempts", item.Attempts,
				)
				continue
			}
			item.NotBefore = time.Now().UTC().Add(o.backoff(item.Attempts))
			o.logger.Warn("confirmation email failed, will retry",
				"error", err,
				"to", item.Confirmation.ClientEmail,
				"attempt", item.Attempts,
			)
			o.requeue(ctx, item)
		}
	}
}

func (o *Outbox) requeue(ctx context.Context, item outboxItem) {
	raw, err := json.Marshal(item)
	if err != nil {
		o.logger.Error("outbox requeue marshal failed", "error", err)
		return
	}
	if err := o.redis.LPush(ctx, outboxKey, raw).Err(); err != nil {
		o.logger.Error("outbox requeue failed", "error", err)
	}
}

// backoff doubles the base delay per attempt.
func (o *Outbox) backoff(attempts int) time.Duration {
	d := o.baseDelay
	for i := 1; i < attempts; i++ {
		d *= 2
	}
	return d
}

var _ appointments.Notifier = (*Outbox)(nil)
