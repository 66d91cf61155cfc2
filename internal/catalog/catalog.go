package catalog

import (
	"fmt"
	"sort"
)

// Catalog holds read-only fixture data. It is safe for concurrent use because
// nothing mutates it after New returns.
type Catalog struct {
	stores []Store
	byID   map[int]Store
	menus  map[string]Menu
	ocr    map[string][]OCRItem
}

// New builds a Catalog from the given fixtures. Store ids must be positive and
// unique, and prices non-negative.
func New(stores []Store, menus map[string]Menu, ocr map[string][]OCRItem) (*Catalog, error) {
	c := &Catalog{
		stores: make([]Store, 0, len(stores)),
		byID:   make(map[int]Store, len(stores)),
		menus:  make(map[string]Menu, len(menus)),
		ocr:    make(map[string][]OCRItem, len(ocr)),
	}

	for _, s := range stores {
		if s.ID <= 0 {
			return nil, fmt.Errorf("store %q: id must be positive, got %d", s.Name, s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate store id %d", s.ID)
		}
		c.stores = append(c.stores, s)
		c.byID[s.ID] = s
	}

	for lang, m := range menus {
		for _, it := range m.Items {
			if it.PriceSmall < 0 {
				return nil, fmt.Errorf("menu %s item %v: negative price %d", lang, it.ID, it.PriceSmall)
			}
		}
		c.menus[lang] = Menu{StoreName: m.StoreName, Items: append([]MenuItem(nil), m.Items...)}
	}

	for lang, items := range ocr {
		c.ocr[lang] = append([]OCRItem(nil), items...)
	}
	if _, ok := c.ocr[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("ocr table is missing the %s fallback set", DefaultLanguage)
	}

	return c, nil
}

// ListStores returns all stores in fixture order.
func (c *Catalog) ListStores() []Store {
	return append([]Store(nil), c.stores...)
}

// GetStore looks a store up by id.
func (c *Catalog) GetStore(id int) (Store, error) {
	s, ok := c.byID[id]
	if !ok {
		return Store{}, fmt.Errorf("store %d: %w", id, ErrStoreNotFound)
	}
	return s, nil
}

// GetMenu returns the menu for an exact language tag. There is no fallback.
func (c *Catalog) GetMenu(lang string) (Menu, error) {
	m, ok := c.menus[lang]
	if !ok {
		return Menu{}, fmt.Errorf("menu %q: %w", lang, ErrUnsupportedLanguage)
	}
	return Menu{StoreName: m.StoreName, Items: append([]MenuItem(nil), m.Items...)}, nil
}

// OCRItems returns the canned recognition result for lang, falling back to
// the zh-TW set for unknown tags.
func (c *Catalog) OCRItems(lang string) []OCRItem {
	items, ok := c.ocr[lang]
	if !ok {
		items = c.ocr[DefaultLanguage]
	}
	return append([]OCRItem(nil), items...)
}

// Languages lists the tags GetMenu accepts.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.menus))
	for lang := range c.menus {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
