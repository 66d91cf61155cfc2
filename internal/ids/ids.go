package ids

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces identifiers for orders and OCR-synthesized menu items.
type Generator interface {
	// OrderID returns an id unique for the life of the process.
	OrderID() string
	// MenuItemID returns an id for the item at index within one OCR result.
	MenuItemID(index int) string
}

// Clock derives ids from a timestamp. Order ids carry a sequence number so two
// orders created in the same millisecond still differ.
type Clock struct {
	nowFunc func() time.Time
	seq     atomic.Uint64
}

// NewClock returns a Clock generator. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{nowFunc: now}
}

func (c *Clock) OrderID() string {
	n := c.seq.Add(1)
	return fmt.Sprintf("ORDER-%d-%d", c.nowFunc().UnixMilli(), n)
}

func (c *Clock) MenuItemID(index int) string {
	return fmt.Sprintf("ocr-%d-%d", c.nowFunc().UnixMilli(), index)
}

// UUID issues random v4 ids.
type UUID struct{}

func (UUID) OrderID() string { return "ORDER-" + uuid.NewString() }

func (UUID) MenuItemID(index int) string { return fmt.Sprintf("ocr-%s-%d", uuid.NewString(), index) }

// Strategy names accepted by New.
const (
	StrategyClock = "clock"
	StrategyUUID  = "uuid"
)

// New returns the generator for a strategy name.
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", StrategyClock:
		return NewClock(nil), nil
	case StrategyUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
