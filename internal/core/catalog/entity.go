package catalog

import (
	"github.com/shopspring/decimal"
)

// WatchStatus represents the availability of a watch in the catalog
type WatchStatus int

const (
	WatchStatusUnknown WatchStatus = iota
	WatchStatusActive
	WatchStatusInactive
)

// String returns the string representation of watch status
func (s WatchStatus) String() string {
	switch s {
	case WatchStatusActive:
		return "ACTIVE"
	case WatchStatusInactive:
		return "INACTIVE"
	default:
		return "UNKNOWN"
	}
}

// WatchStatusFromString converts string to WatchStatus enum
func WatchStatusFromString(s string) WatchStatus {
	switch s {
	case "ACTIVE":
		return WatchStatusActive
	case "INACTIVE":
		return WatchStatusInactive
	default:
		return WatchStatusUnknown
	}
}

// MarshalText implements encoding.TextMarshaler
func (s WatchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *WatchStatus) UnmarshalText(text []byte) error {
	*s = WatchStatusFromString(string(text))
	return nil
}

// Watch is a catalog entry. Prices are fixed-point decimals; they travel
// through the cache as strings to preserve precision.
type Watch struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	Price            decimal.Decimal `json:"price"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	ImageURL         string          `json:"watch_image_url"`
	SpecialEvent     string          `json:"special_event,omitempty"`
	Status           WatchStatus     `json:"status"`
}

// DiscountedPrice applies the discount percentage to the list price,
// rounded to two decimal places.
func (w Watch) DiscountedPrice() decimal.Decimal {
	if w.DiscountPercent.IsZero() {
		return w.Price
	}
	factor := decimal.NewFromInt(100).Sub(w.DiscountPercent).Div(decimal.NewFromInt(100))
	return w.Price.Mul(factor).Round(2)
}

// Brand is a watch manufacturer entry
type Brand struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	ImageURL string `json:"image_url,omitempty"`
}

// User is a catalog account
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
}

// FeaturedParams selects watches for the featured section
type FeaturedParams struct {
	Limit int `json:"limit"`
}

// TopWeeklyParams selects the most liked watches of the week
type TopWeeklyParams struct {
	Limit int `json:"limit"`
}

// NewArrivalsParams selects recently added watches
type NewArrivalsParams struct {
	Limit int `json:"limit"`
}
