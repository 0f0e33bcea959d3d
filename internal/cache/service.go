package cache

import (
	"watchcatalog.app/pkg/errors"
)

// Service is the embeddable base for domain cache services. It associates
// the service with a memoizer at construction time; the zero value is
// deliberately unusable so that a service built without wiring fails fast
// instead of silently running uncached.
type Service struct {
	memo  *Memoizer
	wired bool
}

// NewService wires a service base to its memoizer.
func NewService(m *Memoizer) (Service, error) {
	if m == nil {
		return Service{}, errors.NewConfigurationError("memoizer cannot be nil", nil)
	}
	return Service{memo: m, wired: true}, nil
}

// Memoizer returns the wired memoizer.
func (s *Service) Memoizer() *Memoizer {
	return s.memo
}

// RequireWired returns a configuration error when the service was never
// wired. This is the one cache-adjacent failure that propagates to the
// caller: it indicates a startup defect, not a runtime cache hiccup.
func (s *Service) RequireWired() error {
	if !s.wired || s.memo == nil {
		return errors.NewConfigurationError(
			"cache service is not wired: memoizer and backing provider must be set at startup", nil)
	}
	return nil
}
