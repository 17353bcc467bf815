package assessment

import (
	"context"

	"ares-site-service/internal/domain"
)

// CatalogRepository loads question catalogs (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, id string) (domain.Catalog, error)
}
