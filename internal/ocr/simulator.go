package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
)

// DefaultDelay is the simulated recognition latency clients observe.
const DefaultDelay = 2000 * time.Millisecond

// ItemDescription is attached to every recognized item.
const ItemDescription = "OCR 辨識的菜單項目"

// Request describes one uploaded menu image. The image bytes are never read.
type Request struct {
	Language  string
	StoreID   string
	ImageSize int64
}

// Simulator pretends to recognize a menu image and returns canned dishes.
type Simulator struct {
	catalog *catalog.Catalog
	ids     ids.Generator
	delay   time.Duration
}

// NewSimulator returns a Simulator. A negative delay is treated as zero.
func NewSimulator(c *catalog.Catalog, gen ids.Generator, delay time.Duration) *Simulator {
	if delay < 0 {
		delay = 0
	}
	return &Simulator{catalog: c, ids: gen, delay: delay}
}

// Delay reports the configured latency.
func (s *Simulator) Delay() time.Duration { return s.delay }

// Recognize waits for the simulated latency and then builds the menu. The wait
// parks only the calling goroutine on a timer; if ctx ends first the timer is
// stopped and ctx.Err() is returned.
func (s *Simulator) Recognize(ctx context.Context, req Request) (catalog.Menu, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return catalog.Menu{}, fmt.Errorf("ocr canceled: %w", ctx.Err())
	case <-timer.C:
	}

	return s.build(req), nil
}

func (s *Simulator) build(req Request) catalog.Menu {
	lang := req.Language
	if lang == "" {
		lang = catalog.DefaultLanguage
	}

	// unknown tags fall back to zh-TW inside the catalog
	canned := s.catalog.OCRItems(lang)
	items := make([]catalog.MenuItem, 0, len(canned))
	for i, it := range canned {
		items = append(items, catalog.MenuItem{
			ID:          s.ids.MenuItemID(i),
			Name:        it.Name,
			Description: ItemDescription,
			PriceSmall:  it.PriceSmall,
		})
	}

	return catalog.Menu{
		StoreName: StoreLabel(req.StoreID),
		Items:     items,
	}
}

// StoreLabel names a recognized menu after the free-form store id.
func StoreLabel(storeID string) string {
	if storeID == "" {
		return "店家"
	}
	return "店家 " + storeID
}
