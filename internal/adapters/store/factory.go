package store

import (
	"fmt"

	"watchcatalog.app/internal/config"
	"watchcatalog.app/internal/ports"
	"watchcatalog.app/pkg/errors"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateCacheProvider builds the store configured by cfg.Type
func (f *Factory) CreateCacheProvider(cfg *config.CacheConfig) (ports.CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryStore(), nil
	case config.CacheTypeRedis:
		return NewRedisStore(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
