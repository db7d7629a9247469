package repository

import (
	"buildcost/internal/app/ds"
	"context"
)

// Объекты, сметы и справочник материалов (только чтение; CRUD ведётся вне ядра)

func (r *Repository) GetProject(ctx context.Context, tenantID, id uint) (*ds.Project, error) {
	var project ds.Project
	err := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&project).Error
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return &project, nil
}

func (r *Repository) GetEstimate(ctx context.Context, tenantID, id uint) (*ds.Estimate, error) {
	var estimate ds.Estimate
	err := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&estimate).Error
	if err != nil {
		return nil, notFound(err, "estimate", id)
	}
	return &estimate, nil
}

func (r *Repository) GetMaterial(ctx context.Context, tenantID, id uint) (*ds.Material, error) {
	var material ds.Material
	err := r.conn(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&material).Error
	if err != nil {
		return nil, notFound(err, "material", id)
	}
	return &material, nil
}

func (r *Repository) GetMaterials(ctx context.Context, tenantID uint, ids []uint) ([]ds.Material, error) {
	var materials []ds.Material
	if len(ids) == 0 {
		return materials, nil
	}
	err := r.conn(ctx).Where("id IN ? AND tenant_id = ?", ids, tenantID).Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// ListMaterialLines материалы всех позиций сметы с объёмом позиции.
// Читается курсором: у крупной сметы тысячи строк.
func (r *Repository) ListMaterialLines(ctx context.Context, tenantID, estimateID uint) ([]ds.MaterialLine, error) {
	rows, err := r.conn(ctx).Raw(`
		SELECT eim.material_id, ei.quantity, eim.consumption_coefficient
		FROM estimate_item_materials eim
		JOIN estimate_items ei ON ei.id = eim.estimate_item_id
		WHERE ei.estimate_id = ? AND ei.tenant_id = ?
		ORDER BY ei.id, eim.id`, estimateID, tenantID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []ds.MaterialLine
	for rows.Next() {
		var line ds.MaterialLine
		if err := rows.Scan(&line.MaterialID, &line.Quantity, &line.ConsumptionCoefficient); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// CreateProject, CreateEstimate, CreateMaterial, CreateEstimateItem нужны сидам и тестам

func (r *Repository) CreateProject(ctx context.Context, p *ds.Project) error {
	return r.conn(ctx).Create(p).Error
}

func (r *Repository) CreateEstimate(ctx context.Context, e *ds.Estimate) error {
	return r.conn(ctx).Omit("Project").Create(e).Error
}

func (r *Repository) CreateMaterial(ctx context.Context, m *ds.Material) error {
	return r.conn(ctx).Create(m).Error
}

// CreateEstimateItem создаёт позицию вместе с материалами
func (r *Repository) CreateEstimateItem(ctx context.Context, item *ds.EstimateItem) error {
	return r.conn(ctx).Create(item).Error
}

func (r *Repository) DeleteEstimateItem(ctx context.Context, tenantID, id uint) error {
	db := r.conn(ctx)
	if err := db.Where("estimate_item_id = ?", id).Delete(&ds.EstimateItemMaterial{}).Error; err != nil {
		return err
	}
	return db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&ds.EstimateItem{}).Error
}
