package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/usecase"
)

const catalogKey = "template-catalog"

// TemplateCatalog serves the content template list through an injected TTL
// cache. The cache is explicit state with an explicit Refresh, not a
// module-level variable, so concurrent access and expiry are handled by the
// cache itself and the whole thing is swappable in tests.
type TemplateCatalog struct {
	repo  usecase.TemplateRepository
	cache *cache.Cache
}

func NewTemplateCatalog(repo usecase.TemplateRepository, ttl time.Duration) *TemplateCatalog {
	return &TemplateCatalog{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

// List returns the cached catalog, loading it from the store on a miss.
func (s *TemplateCatalog) List(ctx context.Context) ([]domain.Template, error) {
	if cached, found := s.cache.Get(catalogKey); found {
		return cached.([]domain.Template), nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the catalog from the store and replaces the cached copy,
// regardless of its remaining TTL.
func (s *TemplateCatalog) Refresh(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(catalogKey, templates, cache.DefaultExpiration)
	return templates, nil
}
