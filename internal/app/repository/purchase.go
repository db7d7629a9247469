package repository

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ============ Методы для журнала закупок ============

func (r *Repository) CreatePurchase(ctx context.Context, p *ds.ActualPurchase) error {
	return r.conn(ctx).Omit("SourceRequirement").Create(p).Error
}

func (r *Repository) GetPurchase(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error) {
	var p ds.ActualPurchase
	err := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&p).Error
	if err != nil {
		return nil, notFound(err, "purchase", id)
	}
	return &p, nil
}

// GetPurchaseForUpdate SELECT ... FOR UPDATE, вызывать только внутри транзакции
func (r *Repository) GetPurchaseForUpdate(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error) {
	var p ds.ActualPurchase
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "purchase", id)
	}
	return &p, nil
}

// SavePurchase сохраняет изменяемые поля; привязка и снимки не меняются
func (r *Repository) SavePurchase(ctx context.Context, p *ds.ActualPurchase) error {
	p.UpdatedAt = time.Now()
	res := r.conn(ctx).Model(&ds.ActualPurchase{}).
		Where("id = ? AND tenant_id = ?", p.ID, p.TenantID).
		Updates(map[string]interface{}{
			"quantity":      p.Quantity,
			"unit_price":    p.UnitPrice,
			"total_price":   p.TotalPrice,
			"purchase_date": p.PurchaseDate,
			"notes":         p.Notes,
			"updated_at":    p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("purchase", p.ID)
	}
	return nil
}

func (r *Repository) SetPurchaseReceipt(ctx context.Context, tenantID, id uint, key string) error {
	res := r.conn(ctx).Model(&ds.ActualPurchase{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("receipt_key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("purchase", id)
	}
	return nil
}

func (r *Repository) DeletePurchase(ctx context.Context, tenantID, id uint) error {
	res := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&ds.ActualPurchase{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("purchase", id)
	}
	return nil
}

func (r *Repository) ListPurchases(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) ([]ds.ActualPurchase, error) {
	var purchases []ds.ActualPurchase
	err := applyFilter(r.conn(ctx).Where("tenant_id = ?", tenantID), filter).
		Order("purchase_date DESC, id DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *Repository) PurchaseStatistics(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) (ds.PurchaseStats, error) {
	var stats ds.PurchaseStats
	err := applyFilter(r.conn(ctx).Model(&ds.ActualPurchase{}).Where("tenant_id = ?", tenantID), filter).
		Select(`COALESCE(SUM(total_price), 0) AS total_spent,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COUNT(DISTINCT material_id) AS unique_materials,
			COUNT(*) AS purchase_count`).
		Scan(&stats).Error
	return stats, err
}

func applyFilter(db *gorm.DB, f ds.PurchaseFilter) *gorm.DB {
	if f.ProjectID != 0 {
		db = db.Where("project_id = ?", f.ProjectID)
	}
	if f.EstimateID != 0 {
		db = db.Where("estimate_id = ?", f.EstimateID)
	}
	if f.MaterialID != 0 {
		db = db.Where("material_id = ?", f.MaterialID)
	}
	if f.RequirementID != 0 {
		db = db.Where("source_requirement_id = ?", f.RequirementID)
	}
	if f.IsExtraCharge != nil {
		db = db.Where("is_extra_charge = ?", *f.IsExtraCharge)
	}
	if f.DateFrom != nil {
		db = db.Where("purchase_date >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		db = db.Where("purchase_date <= ?", f.DateTo.Format("2006-01-02"))
	}
	return db
}
