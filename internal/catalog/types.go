package catalog

import "errors"

// Partner levels
const (
	PartnerA = "A"
	PartnerB = "B"
	PartnerC = "C"
)

// Supported language tags
const (
	LangZhTW = "zh-TW"
	LangEnUS = "en-US"
	LangJaJP = "ja-JP"
	LangKoKR = "ko-KR"
)

// DefaultLanguage is used when a request carries no language tag.
const DefaultLanguage = LangZhTW

var (
	// ErrStoreNotFound is returned when no store has the requested id.
	ErrStoreNotFound = errors.New("store not found")
	// ErrUnsupportedLanguage is returned when no menu exists for a language tag.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Store is a partner store.
type Store struct {
	ID           int    `json:"store_id"`
	Name         string `json:"store_name"`
	PartnerLevel string `json:"partner_level"` // A | B | C
	Address      string `json:"address"`
}

// MenuItem is a single dish on a menu. ID is an int for fixture menus and a
// string for OCR-synthesized items.
type MenuItem struct {
	ID          interface{} `json:"menu_item_id"`
	Name        string      `json:"item_name"`
	Description string      `json:"description"`
	PriceSmall  int64       `json:"price_small"`
}

// Menu is the localized menu returned for a language tag.
type Menu struct {
	StoreName string     `json:"store_name"`
	Items     []MenuItem `json:"items"`
}

// OCRItem is a canned dish produced by the simulated menu recognizer.
type OCRItem struct {
	Name       string
	PriceSmall int64
}
