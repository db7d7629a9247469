package procurement

import (
	"buildcost/internal/app/apperr"
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// compensate сдвигает счётчик закупленного у потребности на delta.
// Вызывается только внутри транзакции журнала; без привязки ничего не делает.
func (s *Service) compensate(ctx context.Context, tenantID uint, requirementID *uint, delta decimal.Decimal) error {
	if requirementID == nil || delta.IsZero() {
		return nil
	}
	return s.store.AdjustPurchasedQuantity(ctx, tenantID, *requirementID, delta)
}

// Discrepancy расхождение счётчика потребности с журналом
type Discrepancy struct {
	RequirementID     uint
	PurchasedQuantity decimal.Decimal
	LedgerQuantity    decimal.Decimal
	LedgerEntries     int64
}

// Audit сверяет PurchasedQuantity каждой потребности сметы с суммой по журналу.
// Чтение выполняется под разделяемой блокировкой, чтобы не видеть
// перегенерацию на середине. Пустой результат означает, что расхождений нет.
func (s *Service) Audit(ctx context.Context, scope Scope, estimateID uint) ([]Discrepancy, error) {
	if estimateID == 0 {
		return nil, apperr.Invalid("estimate_id", "is required")
	}
	if _, err := s.store.GetEstimate(ctx, scope.TenantID, estimateID); err != nil {
		return nil, apperr.Wrap("audit", err)
	}

	var discrepancies []Discrepancy
	err := s.store.InEstimateTx(ctx, scope.TenantID, estimateID, false, func(ctx context.Context) error {
		reqs, err := s.store.ListRequirements(ctx, scope.TenantID, estimateID)
		if err != nil {
			return err
		}
		totals, err := s.store.RequirementLedgerTotals(ctx, scope.TenantID, estimateID)
		if err != nil {
			return err
		}
		for _, req := range reqs {
			t := totals[req.ID]
			if !req.PurchasedQuantity.Equal(t.Quantity) {
				discrepancies = append(discrepancies, Discrepancy{
					RequirementID:     req.ID,
					PurchasedQuantity: req.PurchasedQuantity,
					LedgerQuantity:    t.Quantity,
					LedgerEntries:     t.Entries,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("audit", err)
	}

	if len(discrepancies) > 0 {
		logrus.WithFields(logrus.Fields{
			"tenant_id":   scope.TenantID,
			"estimate_id": estimateID,
			"count":       len(discrepancies),
		}).Warn("purchased quantity out of sync with ledger")
	}
	return discrepancies, nil
}
