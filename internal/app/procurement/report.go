package procurement

import (
	"buildcost/internal/app/ds"

	"github.com/shopspring/decimal"
)

// RequirementStatus производное состояние потребности, не хранится
type RequirementStatus string

const (
	StatusPending   RequirementStatus = "pending"
	StatusPartial   RequirementStatus = "partial"
	StatusFulfilled RequirementStatus = "fulfilled"
	StatusOverspent RequirementStatus = "overspent"
)

// PriceTrend отклонение средней фактической цены от плановой
type PriceTrend string

const (
	TrendNone    PriceTrend = ""
	TrendSavings PriceTrend = "savings"
	TrendOverrun PriceTrend = "overrun"
	TrendOnPlan  PriceTrend = "on_plan"
)

// RequirementReport потребность с вычисленными показателями
type RequirementReport struct {
	Requirement ds.PurchaseRequirement

	Remainder            decimal.Decimal
	IsOverspent          bool
	Status               RequirementStatus
	PlannedTotal         decimal.Decimal
	ActualTotalPrice     decimal.Decimal
	WeightedAveragePrice *decimal.Decimal // nil, пока ничего не закуплено
	PriceVariance        *decimal.Decimal
	PriceTrend           PriceTrend
}

// Report считает показатели потребности по сумме привязанных закупок
func Report(req ds.PurchaseRequirement, actualTotal decimal.Decimal) RequirementReport {
	remainder := req.QuantityRequired.Sub(req.PurchasedQuantity)

	r := RequirementReport{
		Requirement:      req,
		Remainder:        remainder,
		IsOverspent:      remainder.IsNegative(),
		Status:           requirementStatus(req.QuantityRequired, req.PurchasedQuantity),
		PlannedTotal:     req.QuantityRequired.Mul(req.UnitPricePlanned).Round(priceScale),
		ActualTotalPrice: actualTotal,
	}

	if req.PurchasedQuantity.IsPositive() {
		avg := actualTotal.DivRound(req.PurchasedQuantity, priceScale)
		variance := avg.Sub(req.UnitPricePlanned)
		r.WeightedAveragePrice = &avg
		r.PriceVariance = &variance
		switch variance.Sign() {
		case -1:
			r.PriceTrend = TrendSavings
		case 1:
			r.PriceTrend = TrendOverrun
		default:
			r.PriceTrend = TrendOnPlan
		}
	}
	return r
}

func requirementStatus(required, purchased decimal.Decimal) RequirementStatus {
	switch {
	case purchased.IsZero() && required.IsPositive():
		return StatusPending
	case purchased.LessThan(required):
		return StatusPartial
	case purchased.Equal(required):
		return StatusFulfilled
	default:
		return StatusOverspent
	}
}

// PlanSummary план против факта по всей смете
type PlanSummary struct {
	PlannedTotal     decimal.Decimal // только строки сметы, без докупок
	ActualTotal      decimal.Decimal // все привязанные закупки
	ExtraChargeTotal decimal.Decimal // факт по докупкам за счёт заказчика
	Variance         decimal.Decimal // ActualTotal - ExtraChargeTotal - PlannedTotal
	OverspentCount   int
	OrphanedCount    int
}

func Summarize(reports []RequirementReport) PlanSummary {
	var s PlanSummary
	for _, r := range reports {
		if r.Requirement.IsExtraCharge {
			s.ExtraChargeTotal = s.ExtraChargeTotal.Add(r.ActualTotalPrice)
		} else {
			s.PlannedTotal = s.PlannedTotal.Add(r.PlannedTotal)
		}
		s.ActualTotal = s.ActualTotal.Add(r.ActualTotalPrice)
		if r.IsOverspent {
			s.OverspentCount++
		}
		if r.Requirement.IsOrphaned {
			s.OrphanedCount++
		}
	}
	s.Variance = s.ActualTotal.Sub(s.ExtraChargeTotal).Sub(s.PlannedTotal)
	return s
}

// LineTotal стоимость строки журнала
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(priceScale)
}
