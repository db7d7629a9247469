package procurement

import (
	"buildcost/internal/app/ds"
	"testing"
)

func TestReportOverspend(t *testing.T) {
	// 60 по 480 и 50 по 510 при потребности 100
	req := ds.PurchaseRequirement{
		QuantityRequired:  d("100"),
		UnitPricePlanned:  d("480"),
		PurchasedQuantity: d("110"),
	}
	r := Report(req, d("54300"))

	assertDecimal(t, "remainder", r.Remainder, "-10")
	if !r.IsOverspent || r.Status != StatusOverspent {
		t.Errorf("overspent = %v, status = %s", r.IsOverspent, r.Status)
	}
	if r.WeightedAveragePrice == nil {
		t.Fatal("weighted average is nil")
	}
	assertDecimal(t, "weighted average", *r.WeightedAveragePrice, "493.64")
	assertDecimal(t, "price variance", *r.PriceVariance, "13.64")
	if r.PriceTrend != TrendOverrun {
		t.Errorf("trend = %q, want overrun", r.PriceTrend)
	}
	assertDecimal(t, "planned total", r.PlannedTotal, "48000")
}

func TestReportNothingPurchased(t *testing.T) {
	r := Report(ds.PurchaseRequirement{QuantityRequired: d("10"), UnitPricePlanned: d("5")}, d("0"))
	if r.WeightedAveragePrice != nil || r.PriceVariance != nil {
		t.Error("average must be nil when nothing is purchased")
	}
	if r.Status != StatusPending || r.PriceTrend != TrendNone {
		t.Errorf("status = %s, trend = %q", r.Status, r.PriceTrend)
	}
	assertDecimal(t, "remainder", r.Remainder, "10")
}

func TestRequirementStatus(t *testing.T) {
	tests := []struct {
		required, purchased string
		want                RequirementStatus
	}{
		{"10", "0", StatusPending},
		{"10", "4", StatusPartial},
		{"10", "10", StatusFulfilled},
		{"10", "10.001", StatusOverspent},
		{"0", "0", StatusFulfilled},
		{"0", "1", StatusOverspent},
	}
	for _, tt := range tests {
		if got := requirementStatus(d(tt.required), d(tt.purchased)); got != tt.want {
			t.Errorf("status(%s, %s) = %s, want %s", tt.required, tt.purchased, got, tt.want)
		}
	}
}

func TestReportSavings(t *testing.T) {
	r := Report(ds.PurchaseRequirement{
		QuantityRequired:  d("10"),
		UnitPricePlanned:  d("100"),
		PurchasedQuantity: d("3"),
	}, d("270"))
	if r.PriceTrend != TrendSavings {
		t.Errorf("trend = %q, want savings", r.PriceTrend)
	}
	assertDecimal(t, "variance", *r.PriceVariance, "-10")
}

func TestSummarize(t *testing.T) {
	reports := []RequirementReport{
		Report(ds.PurchaseRequirement{QuantityRequired: d("100"), UnitPricePlanned: d("480"), PurchasedQuantity: d("110")}, d("54300")),
		Report(ds.PurchaseRequirement{QuantityRequired: d("10"), UnitPricePlanned: d("50"), IsOrphaned: true}, d("0")),
		Report(ds.PurchaseRequirement{QuantityRequired: d("5"), UnitPricePlanned: d("200"), PurchasedQuantity: d("5"), IsExtraCharge: true}, d("1000")),
	}
	s := Summarize(reports)

	assertDecimal(t, "planned", s.PlannedTotal, "48500")
	assertDecimal(t, "actual", s.ActualTotal, "55300")
	assertDecimal(t, "extra", s.ExtraChargeTotal, "1000")
	assertDecimal(t, "variance", s.Variance, "5800")
	if s.OverspentCount != 1 || s.OrphanedCount != 1 {
		t.Errorf("counts = %d overspent, %d orphaned", s.OverspentCount, s.OrphanedCount)
	}
}

func TestLineTotal(t *testing.T) {
	assertDecimal(t, "total", LineTotal(d("0.333"), d("10.01")), "3.33")
}
