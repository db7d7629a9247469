package procurement

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
)

// Statistics итоги по журналу закупок. Результат кэшируется до следующей
// записи в журнал тенанта.
func (s *Service) Statistics(ctx context.Context, scope Scope, filter ds.PurchaseFilter) (ds.PurchaseStats, error) {
	if err := validateFilter(filter); err != nil {
		return ds.PurchaseStats{}, err
	}

	key := filter.Key()
	generation := int64(-1)
	if s.cache != nil {
		cached, gen, ok := s.cache.GetStatistics(ctx, scope.TenantID, key)
		if ok {
			return *cached, nil
		}
		generation = gen
	}

	stats, err := s.store.PurchaseStatistics(ctx, scope.TenantID, filter)
	if err != nil {
		return ds.PurchaseStats{}, apperr.Wrap("purchase statistics", err)
	}

	if s.cache != nil && generation >= 0 {
		s.cache.SetStatistics(ctx, scope.TenantID, generation, key, stats)
	}
	return stats, nil
}
