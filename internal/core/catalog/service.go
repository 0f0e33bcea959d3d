package catalog

import (
	"context"
	"time"

	"watchcatalog.app/internal/cache"
	"watchcatalog.app/pkg/errors"
)

// WatchProvider is the backing operation provider for watch data. On a
// cache miss the services delegate here; where the data actually comes
// from (database, external API, computed aggregate) is not this
// package's concern. A missing watch is reported as a nil result, not an
// error.
type WatchProvider interface {
	GetFeaturedWatches(ctx context.Context, params FeaturedParams) ([]Watch, error)
	GetTopWeeklyWatches(ctx context.Context, params TopWeeklyParams) ([]Watch, error)
	GetNewArrivals(ctx context.Context, params NewArrivalsParams) ([]Watch, error)
	GetWatchByID(ctx context.Context, watchID int64) (*Watch, error)
}

// BrandProvider is the backing operation provider for brand data
type BrandProvider interface {
	ListBrands(ctx context.Context) ([]Brand, error)
	GetBrandByID(ctx context.Context, brandID int64) (*Brand, error)
}

// UserProvider is the backing operation provider for user data
type UserProvider interface {
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

// WatchService serves watch reads through the memoization layer. Each
// operation is wrapped once at construction; repeated calls with
// equivalent parameters are served from the store until the TTL elapses.
type WatchService struct {
	cache.Service
	provider WatchProvider

	getFeatured    func(context.Context, FeaturedParams) ([]Watch, error)
	getTopWeekly   func(context.Context, TopWeeklyParams) ([]Watch, error)
	getNewArrivals func(context.Context, NewArrivalsParams) ([]Watch, error)
	getByID        func(context.Context, int64) (*Watch, error)
}

// NewWatchService wires the service to its backing provider and memoizer
func NewWatchService(provider WatchProvider, m *cache.Memoizer, opts ...cache.Option) (*WatchService, error) {
	if provider == nil {
		return nil, errors.NewConfigurationError("watch provider cannot be nil", nil)
	}
	base, err := cache.NewService(m)
	if err != nil {
		return nil, err
	}

	s := &WatchService{
		Service:  base,
		provider: provider,
	}
	s.getFeatured = cache.Func1(m, "WatchService.GetFeaturedWatches", provider.GetFeaturedWatches, opts...)
	s.getTopWeekly = cache.Func1(m, "WatchService.GetTopWeeklyWatches", provider.GetTopWeeklyWatches, opts...)
	s.getNewArrivals = cache.Func1(m, "WatchService.GetNewArrivals", provider.GetNewArrivals, opts...)
	s.getByID = cache.Func1(m, "WatchService.GetWatchByID", provider.GetWatchByID,
		append(opts, cache.WithExcludeResultTypes(cache.NilResult))...)
	return s, nil
}

func (s *WatchService) GetFeaturedWatches(ctx context.Context, params FeaturedParams) ([]Watch, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getFeatured(ctx, params)
}

func (s *WatchService) GetTopWeeklyWatches(ctx context.Context, params TopWeeklyParams) ([]Watch, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getTopWeekly(ctx, params)
}

func (s *WatchService) GetNewArrivals(ctx context.Context, params NewArrivalsParams) ([]Watch, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getNewArrivals(ctx, params)
}

func (s *WatchService) GetWatchByID(ctx context.Context, watchID int64) (*Watch, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getByID(ctx, watchID)
}

// BrandService serves brand reads through the memoization layer. Brand
// lists change rarely, so entries live longer than the default TTL.
type BrandService struct {
	cache.Service
	provider BrandProvider

	list    func(context.Context) ([]Brand, error)
	getByID func(context.Context, int64) (*Brand, error)
}

func NewBrandService(provider BrandProvider, m *cache.Memoizer) (*BrandService, error) {
	if provider == nil {
		return nil, errors.NewConfigurationError("brand provider cannot be nil", nil)
	}
	base, err := cache.NewService(m)
	if err != nil {
		return nil, err
	}

	s := &BrandService{
		Service:  base,
		provider: provider,
	}
	s.list = cache.Func0(m, "BrandService.ListBrands", provider.ListBrands,
		cache.WithExpiry(time.Hour))
	s.getByID = cache.Func1(m, "BrandService.GetBrandByID", provider.GetBrandByID,
		cache.WithExpiry(time.Hour), cache.WithExcludeResultTypes(cache.NilResult))
	return s, nil
}

func (s *BrandService) ListBrands(ctx context.Context) ([]Brand, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.list(ctx)
}

func (s *BrandService) GetBrandByID(ctx context.Context, brandID int64) (*Brand, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getByID(ctx, brandID)
}

// UserService serves user reads through the memoization layer
type UserService struct {
	cache.Service
	provider UserProvider

	getByID func(context.Context, int64) (*User, error)
}

func NewUserService(provider UserProvider, m *cache.Memoizer) (*UserService, error) {
	if provider == nil {
		return nil, errors.NewConfigurationError("user provider cannot be nil", nil)
	}
	base, err := cache.NewService(m)
	if err != nil {
		return nil, err
	}

	s := &UserService{
		Service:  base,
		provider: provider,
	}
	s.getByID = cache.Func1(m, "UserService.GetUserByID", provider.GetUserByID,
		cache.WithExcludeResultTypes(cache.NilResult))
	return s, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	if err := s.RequireWired(); err != nil {
		return nil, err
	}
	return s.getByID(ctx, userID)
}
