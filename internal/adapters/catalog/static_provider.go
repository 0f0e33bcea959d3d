package catalog

import (
	"context"
	"sync/atomic"

	"github.com/shopspring/decimal"
	core "watchcatalog.app/internal/core/catalog"
)

// StaticProvider is a fixture-backed implementation of the catalog
// provider ports. It stands in for the real data source during local
// runs and tests; results are deterministic and invocations are counted
// so callers can observe how often the cache delegated to it.
type StaticProvider struct {
	watches []core.Watch
	brands  []core.Brand
	users   []core.User

	invocations int64
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		watches: []core.Watch{
			{
				ID:               1,
				Name:             "Seamaster Diver 300M",
				ShortDescription: "Stainless steel diver with ceramic bezel",
				Price:            decimal.RequireFromString("5600.00"),
				DiscountPercent:  decimal.RequireFromString("10.00"),
				ImageURL:         "/static/watches/seamaster-300m.jpg",
				Status:           core.WatchStatusActive,
			},
			{
				ID:               2,
				Name:             "Speedmaster Professional",
				ShortDescription: "Manual-winding chronograph, hesalite crystal",
				Price:            decimal.RequireFromString("7150.00"),
				DiscountPercent:  decimal.Zero,
				ImageURL:         "/static/watches/speedmaster-pro.jpg",
				SpecialEvent:     "moonwatch-anniversary",
				Status:           core.WatchStatusActive,
			},
			{
				ID:               3,
				Name:             "Tank Must",
				ShortDescription: "Rectangular quartz dress watch",
				Price:            decimal.RequireFromString("3050.00"),
				DiscountPercent:  decimal.RequireFromString("5.50"),
				ImageURL:         "/static/watches/tank-must.jpg",
				Status:           core.WatchStatusInactive,
			},
		},
		brands: []core.Brand{
			{ID: 1, Name: "Omega", IsActive: true, ImageURL: "/static/brands/omega.svg"},
			{ID: 2, Name: "Cartier", IsActive: true, ImageURL: "/static/brands/cartier.svg"},
			{ID: 3, Name: "Longines", IsActive: false},
		},
		users: []core.User{
			{ID: 42, Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+44100000001", IsActive: true},
			{ID: 43, Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper", PhoneNumber: "+1100000002", IsActive: true},
		},
	}
}

// Invocations reports how many backing operations have executed
func (p *StaticProvider) Invocations() int64 {
	return atomic.LoadInt64(&p.invocations)
}

func (p *StaticProvider) GetFeaturedWatches(ctx context.Context, params core.FeaturedParams) ([]core.Watch, error) {
	atomic.AddInt64(&p.invocations, 1)
	return p.activeWatches(params.Limit), nil
}

func (p *StaticProvider) GetTopWeeklyWatches(ctx context.Context, params core.TopWeeklyParams) ([]core.Watch, error) {
	atomic.AddInt64(&p.invocations, 1)
	return p.activeWatches(params.Limit), nil
}

func (p *StaticProvider) GetNewArrivals(ctx context.Context, params core.NewArrivalsParams) ([]core.Watch, error) {
	atomic.AddInt64(&p.invocations, 1)
	// Fixtures are ordered oldest first
	watches := p.activeWatches(0)
	for i, j := 0, len(watches)-1; i < j; i, j = i+1, j-1 {
		watches[i], watches[j] = watches[j], watches[i]
	}
	if params.Limit > 0 && params.Limit < len(watches) {
		watches = watches[:params.Limit]
	}
	return watches, nil
}

func (p *StaticProvider) GetWatchByID(ctx context.Context, watchID int64) (*core.Watch, error) {
	atomic.AddInt64(&p.invocations, 1)
	for _, w := range p.watches {
		if w.ID == watchID {
			watch := w
			return &watch, nil
		}
	}
	return nil, nil
}

func (p *StaticProvider) ListBrands(ctx context.Context) ([]core.Brand, error) {
	atomic.AddInt64(&p.invocations, 1)
	brands := make([]core.Brand, len(p.brands))
	copy(brands, p.brands)
	return brands, nil
}

func (p *StaticProvider) GetBrandByID(ctx context.Context, brandID int64) (*core.Brand, error) {
	atomic.AddInt64(&p.invocations, 1)
	for _, b := range p.brands {
		if b.ID == brandID {
			brand := b
			return &brand, nil
		}
	}
	return nil, nil
}

func (p *StaticProvider) GetUserByID(ctx context.Context, userID int64) (*core.User, error) {
	atomic.AddInt64(&p.invocations, 1)
	for _, u := range p.users {
		if u.ID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (p *StaticProvider) activeWatches(limit int) []core.Watch {
	watches := make([]core.Watch, 0, len(p.watches))
	for _, w := range p.watches {
		if w.Status == core.WatchStatusActive {
			watches = append(watches, w)
		}
	}
	if limit > 0 && limit < len(watches) {
		watches = watches[:limit]
	}
	return watches
}
