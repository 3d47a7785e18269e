package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
)

var (
	// ErrMissingSlug means the route carried no service slug at all; the
	// caller redirects home instead of attempting a lookup.
	ErrMissingSlug = errors.New("missing service slug")
	// ErrServiceNotFound means the slug resolved to zero or ambiguous
	// records.
	ErrServiceNotFound = errors.New("service not found")
)

// CatalogService resolves route slugs to catalog records. The detail page
// and the request form both go through BySlug so they always agree on which
// service is being discussed.
type CatalogService struct {
	services repository.ServiceStore
}

func NewCatalogService(services repository.ServiceStore) *CatalogService {
	return &CatalogService{services: services}
}

// BySlug resolves a slug to exactly one service: an exact service_type
// match first, then a case-insensitive name match with slug dashes turned
// into spaces. Zero or multiple fallback hits fail with ErrServiceNotFound.
func (s *CatalogService) BySlug(ctx context.Context, slug string) (*models.Service, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrMissingSlug
	}

	svc, err := s.services.ServiceByType(ctx, slug)
	if err == nil {
		return svc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	pattern := strings.ReplaceAll(slug, "-", " ")
	matches, err := s.services.ServicesByNamePattern(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("catalog name fallback: %w", err)
	}
	if len(matches) != 1 {
		return nil, ErrServiceNotFound
	}
	return &matches[0], nil
}

// List returns the whole catalog for the storefront home view.
func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.services.ListServices(ctx)
}
