package smm

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// ShopCatalog adapts the cached panel client to the engine's catalog
// surface.
type ShopCatalog struct {
	catalog *CachedCatalog
}

func NewShopCatalog(catalog *CachedCatalog) *ShopCatalog {
	return &ShopCatalog{catalog: catalog}
}

func (s *ShopCatalog) FindService(ctx context.Context, serviceID string) (*shop.CatalogService, error) {
	svc, err := s.catalog.FindService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, nil
	}
	converted := convertService(svc)
	return &converted, nil
}

func (s *ShopCatalog) AddOrder(ctx context.Context, serviceID, link string, quantity int) (int64, error) {
	return s.catalog.AddOrder(ctx, serviceID, link, quantity)
}

func convertService(svc *Service) shop.CatalogService {
	return shop.CatalogService{
		ID:       string(svc.ID),
		Name:     svc.Name,
		Category: svc.Category,
		Rate:     decimal.NewFromFloat(float64(svc.Rate)),
		Min:      int(svc.Min),
		Max:      int(svc.Max),
	}
}
