package memory

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ============ План закупок ============

func (s *Store) ListRequirements(ctx context.Context, tenantID, estimateID uint) ([]ds.PurchaseRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ds.PurchaseRequirement
	for _, r := range s.requirements {
		if r.TenantID == tenantID && r.EstimateID == estimateID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetRequirement(ctx context.Context, tenantID, id uint) (*ds.PurchaseRequirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requirements[id]
	if !ok || r.TenantID != tenantID {
		return nil, apperr.NotFound("requirement", id)
	}
	return &r, nil
}

func (s *Store) UpsertPlannedRequirement(ctx context.Context, req *ds.PurchaseRequirement) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, existing := range s.requirements {
		if existing.IsExtraCharge || existing.EstimateID != req.EstimateID || existing.MaterialID != req.MaterialID {
			continue
		}
		existing.ProjectID = req.ProjectID
		existing.SKU = req.SKU
		existing.Name = req.Name
		existing.Unit = req.Unit
		existing.ImageURL = req.ImageURL
		existing.Category = req.Category
		existing.QuantityRequired = req.QuantityRequired
		existing.UnitPricePlanned = req.UnitPricePlanned
		existing.IsOrphaned = false
		existing.UpdatedAt = now
		s.requirements[id] = existing
		*req = existing
		return nil
	}

	req.ID = s.id()
	req.IsExtraCharge = false
	req.IsOrphaned = false
	req.PurchasedQuantity = decimal.Zero
	req.CreatedAt = now
	req.UpdatedAt = now
	s.requirements[req.ID] = *req
	return nil
}

func (s *Store) CreateRequirement(ctx context.Context, req *ds.PurchaseRequirement) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	req.ID = s.id()
	req.CreatedAt = now
	req.UpdatedAt = now
	s.requirements[req.ID] = *req
	return nil
}

func (s *Store) MarkRequirementsOrphaned(ctx context.Context, tenantID uint, ids []uint) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		r, ok := s.requirements[id]
		if !ok || r.TenantID != tenantID {
			continue
		}
		r.IsOrphaned = true
		r.UpdatedAt = time.Now()
		s.requirements[id] = r
	}
	return nil
}

func (s *Store) DeleteRequirements(ctx context.Context, tenantID uint, ids []uint) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if r, ok := s.requirements[id]; ok && r.TenantID == tenantID {
			delete(s.requirements, id)
		}
	}
	return nil
}

func (s *Store) LinkedRequirementIDs(ctx context.Context, tenantID uint, ids []uint) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	linked := make(map[uint]bool)
	for _, p := range s.purchases {
		if p.TenantID == tenantID && p.SourceRequirementID != nil && wanted[*p.SourceRequirementID] {
			linked[*p.SourceRequirementID] = true
		}
	}
	return linked, nil
}

func (s *Store) RequirementLedgerTotals(ctx context.Context, tenantID, estimateID uint) (map[uint]ds.LedgerTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	totals := make(map[uint]ds.LedgerTotals)
	for _, p := range s.purchases {
		if p.TenantID != tenantID || p.EstimateID != estimateID || p.SourceRequirementID == nil {
			continue
		}
		t := totals[*p.SourceRequirementID]
		t.RequirementID = *p.SourceRequirementID
		t.Quantity = t.Quantity.Add(p.Quantity)
		t.TotalPrice = t.TotalPrice.Add(p.TotalPrice)
		t.Entries++
		totals[*p.SourceRequirementID] = t
	}
	return totals, nil
}

// AdjustPurchasedQuantity аналог UPDATE ... SET purchased_quantity = purchased_quantity + delta
func (s *Store) AdjustPurchasedQuantity(ctx context.Context, tenantID, requirementID uint, delta decimal.Decimal) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAdjust != nil {
		return s.FailAdjust
	}
	r, ok := s.requirements[requirementID]
	if !ok || r.TenantID != tenantID {
		return apperr.NotFound("requirement", requirementID)
	}
	r.PurchasedQuantity = r.PurchasedQuantity.Add(delta)
	r.UpdatedAt = time.Now()
	s.requirements[requirementID] = r
	return nil
}

// ============ Журнал закупок ============

func (s *Store) CreatePurchase(ctx context.Context, p *ds.ActualPurchase) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.SourceRequirementID != nil {
		if _, ok := s.requirements[*p.SourceRequirementID]; !ok {
			return apperr.NotFound("requirement", *p.SourceRequirementID)
		}
	}
	now := time.Now()
	p.ID = s.id()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.purchases[p.ID] = *p
	return nil
}

func (s *Store) GetPurchase(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.purchases[id]
	if !ok || p.TenantID != tenantID {
		return nil, apperr.NotFound("purchase", id)
	}
	return &p, nil
}

// GetPurchaseForUpdate в памяти строки не блокируются: транзакции и так идут по одной
func (s *Store) GetPurchaseForUpdate(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error) {
	return s.GetPurchase(ctx, tenantID, id)
}

func (s *Store) SavePurchase(ctx context.Context, p *ds.ActualPurchase) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.purchases[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return apperr.NotFound("purchase", p.ID)
	}
	existing.Quantity = p.Quantity
	existing.UnitPrice = p.UnitPrice
	existing.TotalPrice = p.TotalPrice
	existing.PurchaseDate = p.PurchaseDate
	existing.Notes = p.Notes
	existing.UpdatedAt = time.Now()
	s.purchases[p.ID] = existing
	p.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *Store) SetPurchaseReceipt(ctx context.Context, tenantID, id uint, key string) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.purchases[id]
	if !ok || p.TenantID != tenantID {
		return apperr.NotFound("purchase", id)
	}
	p.ReceiptKey = key
	s.purchases[id] = p
	return nil
}

func (s *Store) DeletePurchase(ctx context.Context, tenantID, id uint) error {
	defer s.autocommit(ctx)()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.purchases[id]
	if !ok || p.TenantID != tenantID {
		return apperr.NotFound("purchase", id)
	}
	delete(s.purchases, id)
	return nil
}

func (s *Store) ListPurchases(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) ([]ds.ActualPurchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ds.ActualPurchase
	for _, p := range s.purchases {
		if p.TenantID == tenantID && matches(p, filter) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := time.Time(out[i].PurchaseDate), time.Time(out[j].PurchaseDate)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) PurchaseStatistics(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) (ds.PurchaseStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats ds.PurchaseStats
	materials := make(map[uint]bool)
	for _, p := range s.purchases {
		if p.TenantID != tenantID || !matches(p, filter) {
			continue
		}
		stats.TotalSpent = stats.TotalSpent.Add(p.TotalPrice)
		stats.TotalQuantity = stats.TotalQuantity.Add(p.Quantity)
		stats.PurchaseCount++
		materials[p.MaterialID] = true
	}
	stats.UniqueMaterials = int64(len(materials))
	return stats, nil
}

func matches(p ds.ActualPurchase, f ds.PurchaseFilter) bool {
	date := time.Time(p.PurchaseDate)
	switch {
	case f.ProjectID != 0 && p.ProjectID != f.ProjectID:
		return false
	case f.EstimateID != 0 && p.EstimateID != f.EstimateID:
		return false
	case f.MaterialID != 0 && p.MaterialID != f.MaterialID:
		return false
	case f.RequirementID != 0 && (p.SourceRequirementID == nil || *p.SourceRequirementID != f.RequirementID):
		return false
	case f.IsExtraCharge != nil && p.IsExtraCharge != *f.IsExtraCharge:
		return false
	case f.DateFrom != nil && date.Before(*f.DateFrom):
		return false
	case f.DateTo != nil && date.After(*f.DateTo):
		return false
	}
	return true
}
