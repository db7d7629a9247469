package procurement

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	quantityScale = 3 // decimal(14,3)
	priceScale    = 2 // decimal(14,2)
)

// DraftRequirement черновик потребности по одному материалу сметы
type DraftRequirement struct {
	MaterialID       uint
	SKU              string
	Name             string
	Unit             string
	ImageURL         string
	Category         string
	QuantityRequired decimal.Decimal
	UnitPricePlanned decimal.Decimal
	PlannedTotal     decimal.Decimal
}

// Aggregate группирует строки сметы по материалу: количество = Σ объём × норма
// расхода, плановая цена берётся из справочника на момент агрегации.
// Результат отсортирован по MaterialID.
func Aggregate(lines []ds.MaterialLine, materials map[uint]ds.Material) ([]DraftRequirement, error) {
	totals := make(map[uint]decimal.Decimal)
	for _, line := range lines {
		if line.MaterialID == 0 {
			return nil, apperr.Invalid("material_id", "estimate line references no material")
		}
		if line.Quantity.IsNegative() {
			return nil, apperr.Invalid("quantity", "estimate line quantity must not be negative")
		}
		if line.ConsumptionCoefficient.IsNegative() {
			return nil, apperr.Invalid("consumption_coefficient", "consumption coefficient must not be negative")
		}
		totals[line.MaterialID] = totals[line.MaterialID].Add(line.Quantity.Mul(line.ConsumptionCoefficient))
	}

	materialIDs := make([]uint, 0, len(totals))
	for id := range totals {
		materialIDs = append(materialIDs, id)
	}
	sort.Slice(materialIDs, func(i, j int) bool { return materialIDs[i] < materialIDs[j] })

	drafts := make([]DraftRequirement, 0, len(materialIDs))
	for _, id := range materialIDs {
		m, ok := materials[id]
		if !ok {
			return nil, apperr.NotFound("material", id)
		}

		qty := totals[id].Round(quantityScale)
		price := m.Price.Round(priceScale)
		imageURL := ""
		if m.ImageURL != nil {
			imageURL = *m.ImageURL
		}

		drafts = append(drafts, DraftRequirement{
			MaterialID:       id,
			SKU:              m.SKU,
			Name:             m.Name,
			Unit:             m.Unit,
			ImageURL:         imageURL,
			Category:         m.Category,
			QuantityRequired: qty,
			UnitPricePlanned: price,
			PlannedTotal:     qty.Mul(price).Round(priceScale),
		})
	}
	return drafts, nil
}

// distinctMaterialIDs материалы, встречающиеся в строках сметы
func distinctMaterialIDs(lines []ds.MaterialLine) []uint {
	seen := make(map[uint]bool, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if seen[line.MaterialID] {
			continue
		}
		seen[line.MaterialID] = true
		ids = append(ids, line.MaterialID)
	}
	return ids
}
