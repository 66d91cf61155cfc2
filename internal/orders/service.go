package orders

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
)

// Notifier receives order-created events. Implementations are best effort.
type Notifier interface {
	OrderCreated(ctx context.Context, o Order) error
}

// Service assembles orders.
type Service struct {
	ids      ids.Generator
	notifier Notifier
	nowFunc  func() time.Time
	logger   *log.Entry
}

// NewService creates a new orders Service. notifier may be nil.
func NewService(gen ids.Generator, notifier Notifier, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders")
	}
	return &Service{
		ids:      gen,
		notifier: notifier,
		nowFunc:  time.Now,
		logger:   logger,
	}
}

// WithClock overrides the time source used for created_at.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFunc = now
	return s
}

// Create builds the order, sums its total and hands it to the notifier. A
// notifier failure is logged and does not fail the order.
func (s *Service) Create(ctx context.Context, req Request) Order {
	items := append([]Item{}, req.Items...)
	now := s.nowFunc().UTC()

	o := Order{
		OrderID:     s.ids.OrderID(),
		StoreID:     req.StoreID,
		Items:       items,
		TotalAmount: Total(items),
		Language:    req.Language,
		CreatedAt:   now,
		CreatedAtTS: now.Format(CreatedAtLayout),
	}

	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, o); err != nil {
			s.logger.WithError(err).WithField("order_id", o.OrderID).Warn("order notification failed")
		}
	}
	return o
}

// Total returns the exact sum of item subtotals.
func Total(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// Notifiers fans an event out to every notifier and joins their errors.
type Notifiers []Notifier

func (ns Notifiers) OrderCreated(ctx context.Context, o Order) error {
	var errs []error
	for _, n := range ns {
		if err := n.OrderCreated(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
