package procurement

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PlanView потребности сметы с показателями и итогами
type PlanView struct {
	EstimateID   uint
	Requirements []RequirementReport
	Summary      PlanSummary
}

// ClearResult итог очистки плана
type ClearResult struct {
	Deleted  int
	Orphaned int
}

// GeneratePlan пересобирает план закупок сметы.
//
// Строки плана обновляются по ключу (смета, материал): количество, плановая
// цена и снимок справочника перезаписываются, PurchasedQuantity и ID
// сохраняются. Потребности по материалам, которых больше нет в смете,
// удаляются, если на них нет закупок, иначе помечаются IsOrphaned.
// Докупки не трогаются. Повторный вызов даёт тот же результат.
func (s *Service) GeneratePlan(ctx context.Context, scope Scope, estimateID uint) (*PlanView, error) {
	if estimateID == 0 {
		return nil, apperr.Invalid("estimate_id", "is required")
	}
	estimate, err := s.store.GetEstimate(ctx, scope.TenantID, estimateID)
	if err != nil {
		return nil, apperr.Wrap("generate plan", err)
	}

	var upserted, deleted, orphaned int
	err = s.store.InEstimateTx(ctx, scope.TenantID, estimateID, true, func(ctx context.Context) error {
		lines, err := s.store.ListMaterialLines(ctx, scope.TenantID, estimateID)
		if err != nil {
			return err
		}
		materials, err := s.materialIndex(ctx, scope.TenantID, distinctMaterialIDs(lines))
		if err != nil {
			return err
		}
		drafts, err := Aggregate(lines, materials)
		if err != nil {
			return err
		}

		present := make(map[uint]bool, len(drafts))
		for _, d := range drafts {
			present[d.MaterialID] = true
			req := &ds.PurchaseRequirement{
				TenantID:         scope.TenantID,
				ProjectID:        estimate.ProjectID,
				EstimateID:       estimateID,
				MaterialID:       d.MaterialID,
				SKU:              d.SKU,
				Name:             d.Name,
				Unit:             d.Unit,
				ImageURL:         d.ImageURL,
				Category:         d.Category,
				QuantityRequired: d.QuantityRequired,
				UnitPricePlanned: d.UnitPricePlanned,
			}
			if err := s.store.UpsertPlannedRequirement(ctx, req); err != nil {
				return err
			}
			upserted++
		}

		existing, err := s.store.ListRequirements(ctx, scope.TenantID, estimateID)
		if err != nil {
			return err
		}
		var stale []uint
		for _, req := range existing {
			if !req.IsExtraCharge && !present[req.MaterialID] {
				stale = append(stale, req.ID)
			}
		}
		deleted, orphaned, err = s.dropRequirements(ctx, scope.TenantID, stale)
		return err
	})
	if err != nil {
		return nil, apperr.Wrap("generate plan", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":   scope.TenantID,
		"estimate_id": estimateID,
		"upserted":    upserted,
		"deleted":     deleted,
		"orphaned":    orphaned,
	}).Info("purchase plan regenerated")

	return s.ListRequirements(ctx, scope, estimateID)
}

// dropRequirements удаляет потребности без закупок, остальные помечает IsOrphaned
func (s *Service) dropRequirements(ctx context.Context, tenantID uint, ids []uint) (deleted, orphaned int, err error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}
	linked, err := s.store.LinkedRequirementIDs(ctx, tenantID, ids)
	if err != nil {
		return 0, 0, err
	}

	var toDelete, toOrphan []uint
	for _, id := range ids {
		if linked[id] {
			toOrphan = append(toOrphan, id)
		} else {
			toDelete = append(toDelete, id)
		}
	}
	if len(toDelete) > 0 {
		if err := s.store.DeleteRequirements(ctx, tenantID, toDelete); err != nil {
			return 0, 0, err
		}
	}
	if len(toOrphan) > 0 {
		if err := s.store.MarkRequirementsOrphaned(ctx, tenantID, toOrphan); err != nil {
			return 0, 0, err
		}
	}
	return len(toDelete), len(toOrphan), nil
}

func (s *Service) materialIndex(ctx context.Context, tenantID uint, ids []uint) (map[uint]ds.Material, error) {
	index := make(map[uint]ds.Material, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	materials, err := s.store.GetMaterials(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		index[m.ID] = m
	}
	return index, nil
}

// AddExtraCharge добавляет докупку сверх сметы (оплачивается заказчиком отдельно)
func (s *Service) AddExtraCharge(ctx context.Context, scope Scope, estimateID, materialID uint, quantity, unitPrice decimal.Decimal) (*ds.PurchaseRequirement, error) {
	switch {
	case estimateID == 0:
		return nil, apperr.Invalid("estimate_id", "is required")
	case materialID == 0:
		return nil, apperr.Invalid("material_id", "is required")
	case quantity.IsNegative():
		return nil, apperr.Invalid("quantity", "must not be negative")
	case unitPrice.IsNegative():
		return nil, apperr.Invalid("unit_price", "must not be negative")
	}

	estimate, err := s.store.GetEstimate(ctx, scope.TenantID, estimateID)
	if err != nil {
		return nil, apperr.Wrap("add extra charge", err)
	}
	material, err := s.store.GetMaterial(ctx, scope.TenantID, materialID)
	if err != nil {
		return nil, apperr.Wrap("add extra charge", err)
	}

	imageURL := ""
	if material.ImageURL != nil {
		imageURL = *material.ImageURL
	}
	req := &ds.PurchaseRequirement{
		TenantID:          scope.TenantID,
		ProjectID:         estimate.ProjectID,
		EstimateID:        estimateID,
		MaterialID:        materialID,
		SKU:               material.SKU,
		Name:              material.Name,
		Unit:              material.Unit,
		ImageURL:          imageURL,
		Category:          material.Category,
		QuantityRequired:  quantity.Round(quantityScale),
		UnitPricePlanned:  unitPrice.Round(priceScale),
		PurchasedQuantity: decimal.Zero,
		IsExtraCharge:     true,
	}

	err = s.store.InEstimateTx(ctx, scope.TenantID, estimateID, false, func(ctx context.Context) error {
		return s.store.CreateRequirement(ctx, req)
	})
	if err != nil {
		return nil, apperr.Wrap("add extra charge", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":      scope.TenantID,
		"estimate_id":    estimateID,
		"requirement_id": req.ID,
		"material_id":    materialID,
	}).Info("extra charge requirement added")
	return req, nil
}

// ListRequirements план сметы: сначала строки сметы, затем докупки, внутри по названию
func (s *Service) ListRequirements(ctx context.Context, scope Scope, estimateID uint) (*PlanView, error) {
	if estimateID == 0 {
		return nil, apperr.Invalid("estimate_id", "is required")
	}
	if _, err := s.store.GetEstimate(ctx, scope.TenantID, estimateID); err != nil {
		return nil, apperr.Wrap("list requirements", err)
	}

	reqs, err := s.store.ListRequirements(ctx, scope.TenantID, estimateID)
	if err != nil {
		return nil, apperr.Wrap("list requirements", err)
	}
	totals, err := s.store.RequirementLedgerTotals(ctx, scope.TenantID, estimateID)
	if err != nil {
		return nil, apperr.Wrap("list requirements", err)
	}

	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].IsExtraCharge != reqs[j].IsExtraCharge {
			return !reqs[i].IsExtraCharge
		}
		if reqs[i].Name != reqs[j].Name {
			return reqs[i].Name < reqs[j].Name
		}
		return reqs[i].ID < reqs[j].ID
	})

	reports := make([]RequirementReport, 0, len(reqs))
	for _, req := range reqs {
		reports = append(reports, Report(req, totals[req.ID].TotalPrice))
	}

	return &PlanView{
		EstimateID:   estimateID,
		Requirements: reports,
		Summary:      Summarize(reports),
	}, nil
}

// ClearPlan удаляет план сметы. Потребности с закупками остаются как IsOrphaned.
func (s *Service) ClearPlan(ctx context.Context, scope Scope, estimateID uint) (ClearResult, error) {
	if estimateID == 0 {
		return ClearResult{}, apperr.Invalid("estimate_id", "is required")
	}
	if _, err := s.store.GetEstimate(ctx, scope.TenantID, estimateID); err != nil {
		return ClearResult{}, apperr.Wrap("clear plan", err)
	}

	var result ClearResult
	err := s.store.InEstimateTx(ctx, scope.TenantID, estimateID, true, func(ctx context.Context) error {
		reqs, err := s.store.ListRequirements(ctx, scope.TenantID, estimateID)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(reqs))
		for _, req := range reqs {
			ids = append(ids, req.ID)
		}
		result.Deleted, result.Orphaned, err = s.dropRequirements(ctx, scope.TenantID, ids)
		return err
	})
	if err != nil {
		return ClearResult{}, apperr.Wrap("clear plan", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":   scope.TenantID,
		"estimate_id": estimateID,
		"deleted":     result.Deleted,
		"orphaned":    result.Orphaned,
	}).Info("purchase plan cleared")
	return result, nil
}

// RemoveRequirement удаляет одну потребность, если на неё нет закупок
func (s *Service) RemoveRequirement(ctx context.Context, scope Scope, requirementID uint) error {
	if requirementID == 0 {
		return apperr.Invalid("requirement_id", "is required")
	}
	req, err := s.store.GetRequirement(ctx, scope.TenantID, requirementID)
	if err != nil {
		return apperr.Wrap("remove requirement", err)
	}

	err = s.store.InEstimateTx(ctx, scope.TenantID, req.EstimateID, true, func(ctx context.Context) error {
		linked, err := s.store.LinkedRequirementIDs(ctx, scope.TenantID, []uint{requirementID})
		if err != nil {
			return err
		}
		if linked[requirementID] {
			return apperr.ErrRequirementInUse
		}
		return s.store.DeleteRequirements(ctx, scope.TenantID, []uint{requirementID})
	})
	if err != nil {
		return apperr.Wrap("remove requirement", err)
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id":      scope.TenantID,
		"requirement_id": requirementID,
	}).Info("requirement removed")
	return nil
}
