package procurement

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"errors"
	"testing"
)

func TestAggregate(t *testing.T) {
	image := "cement.png"
	materials := map[uint]ds.Material{
		1: {ID: 1, SKU: "CEM", Name: "Цемент", Unit: "меш", ImageURL: &image, Price: d("480")},
		2: {ID: 2, SKU: "SAND", Name: "Песок", Unit: "м3", Price: d("900.555")},
	}
	lines := []ds.MaterialLine{
		{MaterialID: 2, Quantity: d("100"), ConsumptionCoefficient: d("1.2")},
		{MaterialID: 1, Quantity: d("100"), ConsumptionCoefficient: d("0.5")},
		{MaterialID: 1, Quantity: d("20"), ConsumptionCoefficient: d("0.5")},
	}

	drafts, err := Aggregate(lines, materials)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2", len(drafts))
	}

	cement, sand := drafts[0], drafts[1]
	if cement.MaterialID != 1 || sand.MaterialID != 2 {
		t.Fatalf("drafts not sorted by material: %d, %d", cement.MaterialID, sand.MaterialID)
	}
	assertDecimal(t, "cement quantity", cement.QuantityRequired, "60")
	assertDecimal(t, "cement planned total", cement.PlannedTotal, "28800")
	if cement.ImageURL != image || cement.SKU != "CEM" {
		t.Errorf("cement snapshot = %+v", cement)
	}
	assertDecimal(t, "sand quantity", sand.QuantityRequired, "120")
	assertDecimal(t, "sand price", sand.UnitPricePlanned, "900.56")
	assertDecimal(t, "sand planned total", sand.PlannedTotal, "108067.2")
}

func TestAggregateRoundsQuantity(t *testing.T) {
	materials := map[uint]ds.Material{1: {ID: 1, Name: "Клей", Price: d("10")}}
	lines := []ds.MaterialLine{{MaterialID: 1, Quantity: d("1"), ConsumptionCoefficient: d("0.33333")}}

	drafts, err := Aggregate(lines, materials)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	assertDecimal(t, "quantity", drafts[0].QuantityRequired, "0.333")
}

func TestAggregateEmpty(t *testing.T) {
	drafts, err := Aggregate(nil, nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("got %d drafts for empty estimate", len(drafts))
	}
}

func TestAggregateErrors(t *testing.T) {
	materials := map[uint]ds.Material{1: {ID: 1, Name: "Цемент"}}
	tests := []struct {
		name      string
		line      ds.MaterialLine
		wantValid bool
	}{
		{"no material", ds.MaterialLine{MaterialID: 0, Quantity: d("1"), ConsumptionCoefficient: d("1")}, true},
		{"negative quantity", ds.MaterialLine{MaterialID: 1, Quantity: d("-1"), ConsumptionCoefficient: d("1")}, true},
		{"negative coefficient", ds.MaterialLine{MaterialID: 1, Quantity: d("1"), ConsumptionCoefficient: d("-0.1")}, true},
		{"unknown material", ds.MaterialLine{MaterialID: 9, Quantity: d("1"), ConsumptionCoefficient: d("1")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate([]ds.MaterialLine{tt.line}, materials)
			var validation *apperr.ValidationError
			switch {
			case tt.wantValid && !errors.As(err, &validation):
				t.Errorf("err = %v, want ValidationError", err)
			case !tt.wantValid && !errors.Is(err, apperr.ErrNotFound):
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestDistinctMaterialIDs(t *testing.T) {
	lines := []ds.MaterialLine{{MaterialID: 3}, {MaterialID: 1}, {MaterialID: 3}}
	ids := distinctMaterialIDs(lines)
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("distinctMaterialIDs = %v, want [3 1]", ids)
	}
}
