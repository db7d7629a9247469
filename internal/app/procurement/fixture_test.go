package procurement

import (
	"buildcost/internal/app/ds"
	"buildcost/internal/app/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

var testNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

// fixture смета «Фундамент» на 60 мешков цемента и 120 м³ песка
type fixture struct {
	store    *memory.Store
	svc      *Service
	scope    Scope
	project  ds.Project
	estimate ds.Estimate
	cement   ds.Material
	sand     ds.Material
	screed   ds.EstimateItem
	masonry  ds.EstimateItem
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := memory.NewStore()
	const tenantID = 1

	user := store.AddUser(ds.User{TenantID: tenantID, Login: "buyer", FullName: "Иванов И.И."})
	f := &fixture{
		store: store,
		svc:   NewService(store, append([]Option{WithClock(func() time.Time { return testNow })}, opts...)...),
		scope: Scope{TenantID: tenantID, UserID: user.ID},
	}

	f.project = store.AddProject(ds.Project{TenantID: tenantID, Name: "Дом на Лесной"})
	f.estimate = store.AddEstimate(ds.Estimate{TenantID: tenantID, ProjectID: f.project.ID, Name: "Фундамент"})
	f.cement = store.AddMaterial(ds.Material{TenantID: tenantID, SKU: "CEM-500", Name: "Цемент М500", Unit: "меш", Category: "Сухие смеси", Price: d("480")})
	f.sand = store.AddMaterial(ds.Material{TenantID: tenantID, SKU: "SAND-01", Name: "Песок карьерный", Unit: "м3", Price: d("900")})

	// 100 × 0.5 + 20 × 0.5 = 60 мешков цемента, 100 × 1.2 = 120 м³ песка
	f.screed = store.AddEstimateItem(ds.EstimateItem{
		TenantID: tenantID, EstimateID: f.estimate.ID, Name: "Стяжка", Unit: "м2", Quantity: d("100"),
		Materials: []ds.EstimateItemMaterial{
			{MaterialID: f.cement.ID, ConsumptionCoefficient: d("0.5")},
			{MaterialID: f.sand.ID, ConsumptionCoefficient: d("1.2")},
		},
	})
	f.masonry = store.AddEstimateItem(ds.EstimateItem{
		TenantID: tenantID, EstimateID: f.estimate.ID, Name: "Кладка", Unit: "м3", Quantity: d("20"),
		Materials: []ds.EstimateItemMaterial{
			{MaterialID: f.cement.ID, ConsumptionCoefficient: d("0.5")},
		},
	})
	return f
}

func (f *fixture) generate(t *testing.T) *PlanView {
	t.Helper()
	plan, err := f.svc.GeneratePlan(context.Background(), f.scope, f.estimate.ID)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	return plan
}

// requirementFor строка плана сметы (не докупка) по материалу
func (f *fixture) requirementFor(t *testing.T, materialID uint) ds.PurchaseRequirement {
	t.Helper()
	reqs, err := f.store.ListRequirements(context.Background(), f.scope.TenantID, f.estimate.ID)
	if err != nil {
		t.Fatalf("ListRequirements: %v", err)
	}
	for _, r := range reqs {
		if r.MaterialID == materialID && !r.IsExtraCharge {
			return r
		}
	}
	t.Fatalf("no requirement for material %d", materialID)
	return ds.PurchaseRequirement{}
}

func (f *fixture) reload(t *testing.T, id uint) ds.PurchaseRequirement {
	t.Helper()
	r, err := f.store.GetRequirement(context.Background(), f.scope.TenantID, id)
	if err != nil {
		t.Fatalf("GetRequirement(%d): %v", id, err)
	}
	return *r
}

func (f *fixture) record(t *testing.T, reqID *uint, materialID uint, qty, price string) *ds.ActualPurchase {
	t.Helper()
	p, err := f.svc.RecordPurchase(context.Background(), f.scope, PurchaseInput{
		ProjectID:           f.project.ID,
		EstimateID:          f.estimate.ID,
		MaterialID:          materialID,
		SourceRequirementID: reqID,
		Quantity:            d(qty),
		UnitPrice:           d(price),
		PurchaseDate:        testNow,
	})
	if err != nil {
		t.Fatalf("RecordPurchase: %v", err)
	}
	return p
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
