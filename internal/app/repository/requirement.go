package repository

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ============ Методы для плана закупок ============

func (r *Repository) ListRequirements(ctx context.Context, tenantID, estimateID uint) ([]ds.PurchaseRequirement, error) {
	var reqs []ds.PurchaseRequirement
	err := r.conn(ctx).
		Where("estimate_id = ? AND tenant_id = ?", estimateID, tenantID).
		Order("id").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *Repository) GetRequirement(ctx context.Context, tenantID, id uint) (*ds.PurchaseRequirement, error) {
	var req ds.PurchaseRequirement
	err := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&req).Error
	if err != nil {
		return nil, notFound(err, "requirement", id)
	}
	return &req, nil
}

// UpsertPlannedRequirement вставляет строку плана или обновляет существующую
// по частичному уникальному индексу (estimate_id, material_id) WHERE is_extra_charge = false.
// purchased_quantity при конфликте не трогается.
func (r *Repository) UpsertPlannedRequirement(ctx context.Context, req *ds.PurchaseRequirement) error {
	db := r.conn(ctx)
	req.IsExtraCharge = false
	req.IsOrphaned = false
	req.PurchasedQuantity = decimal.Zero

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "estimate_id"}, {Name: "material_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "is_extra_charge = false"},
		}},
		DoUpdates: clause.AssignmentColumns([]string{
			"project_id", "sku", "name", "unit", "image_url", "category",
			"quantity_required", "unit_price_planned", "is_orphaned", "updated_at",
		}),
	}).Create(req).Error
	if err != nil {
		return err
	}

	// перечитываем: при конфликте в req остался нулевой purchased_quantity
	return db.Where("estimate_id = ? AND material_id = ? AND is_extra_charge = false", req.EstimateID, req.MaterialID).
		First(req).Error
}

func (r *Repository) CreateRequirement(ctx context.Context, req *ds.PurchaseRequirement) error {
	return r.conn(ctx).Create(req).Error
}

func (r *Repository) MarkRequirementsOrphaned(ctx context.Context, tenantID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&ds.PurchaseRequirement{}).
		Where("id IN ? AND tenant_id = ?", ids, tenantID).
		Updates(map[string]interface{}{
			"is_orphaned": true,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repository) DeleteRequirements(ctx context.Context, tenantID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(ctx).Where("id IN ? AND tenant_id = ?", ids, tenantID).Delete(&ds.PurchaseRequirement{}).Error
}

// LinkedRequirementIDs какие из потребностей упомянуты в журнале закупок
func (r *Repository) LinkedRequirementIDs(ctx context.Context, tenantID uint, ids []uint) (map[uint]bool, error) {
	linked := make(map[uint]bool)
	if len(ids) == 0 {
		return linked, nil
	}

	var found []uint
	err := r.conn(ctx).Model(&ds.ActualPurchase{}).
		Where("source_requirement_id IN ? AND tenant_id = ?", ids, tenantID).
		Distinct().
		Pluck("source_requirement_id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		linked[id] = true
	}
	return linked, nil
}

type ledgerTotalsRow struct {
	SourceRequirementID uint
	Quantity            decimal.Decimal
	TotalPrice          decimal.Decimal
	Entries             int64
}

// RequirementLedgerTotals суммы журнала по каждой потребности сметы
func (r *Repository) RequirementLedgerTotals(ctx context.Context, tenantID, estimateID uint) (map[uint]ds.LedgerTotals, error) {
	var rows []ledgerTotalsRow
	err := r.conn(ctx).Model(&ds.ActualPurchase{}).
		Select("source_requirement_id, SUM(quantity) AS quantity, SUM(total_price) AS total_price, COUNT(*) AS entries").
		Where("estimate_id = ? AND tenant_id = ? AND source_requirement_id IS NOT NULL", estimateID, tenantID).
		Group("source_requirement_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]ds.LedgerTotals, len(rows))
	for _, row := range rows {
		totals[row.SourceRequirementID] = ds.LedgerTotals{
			RequirementID: row.SourceRequirementID,
			Quantity:      row.Quantity,
			TotalPrice:    row.TotalPrice,
			Entries:       row.Entries,
		}
	}
	return totals, nil
}

// AdjustPurchasedQuantity атомарно сдвигает счётчик: чтение и запись в одном UPDATE,
// поэтому параллельные закупки не теряют друг друга.
func (r *Repository) AdjustPurchasedQuantity(ctx context.Context, tenantID, requirementID uint, delta decimal.Decimal) error {
	res := r.conn(ctx).Model(&ds.PurchaseRequirement{}).
		Where("id = ? AND tenant_id = ?", requirementID, tenantID).
		Updates(map[string]interface{}{
			"purchased_quantity": gorm.Expr("purchased_quantity + ?", delta),
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("requirement", requirementID)
	}
	return nil
}
