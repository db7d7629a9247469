package procurement

import (
	"buildcost/internal/app/apperr"
	"context"
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestConcurrentPurchasesAccumulate(t *testing.T) {
	f := newFixture(t)
	req := f.requirement100(t)

	g, ctx := errgroup.WithContext(context.Background())
	for _, qty := range []string{"10", "15"} {
		qty := qty
		g.Go(func() error {
			_, err := f.svc.RecordPurchase(ctx, f.scope, PurchaseInput{
				ProjectID: f.project.ID, EstimateID: f.estimate.ID, MaterialID: f.cement.ID,
				SourceRequirementID: &req.ID, Quantity: d(qty), UnitPrice: d("480"),
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent purchases: %v", err)
	}

	assertDecimal(t, "purchased", f.reload(t, req.ID).PurchasedQuantity, "25")
	f.assertInSync(t)
}

func TestConcurrentLedgerChurnStaysInSync(t *testing.T) {
	f := newFixture(t)
	req := f.requirement100(t)
	seeded := f.record(t, &req.ID, f.cement.ID, "5", "480")

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := f.svc.RecordPurchase(ctx, f.scope, PurchaseInput{
				ProjectID: f.project.ID, EstimateID: f.estimate.ID, MaterialID: f.cement.ID,
				SourceRequirementID: &req.ID, Quantity: d("0.5"), UnitPrice: d("480"),
			})
			return err
		})
	}
	g.Go(func() error {
		_, err := f.svc.UpdatePurchase(ctx, f.scope, seeded.ID, PurchaseUpdate{Quantity: dp("7")})
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent ledger writes: %v", err)
	}

	// 20 × 0.5 + 7
	assertDecimal(t, "purchased", f.reload(t, req.ID).PurchasedQuantity, "17")
	f.assertInSync(t)
}

func TestLedgerWriteConflictsWithRegeneration(t *testing.T) {
	f := newFixture(t)
	f.generate(t)
	cement := f.requirementFor(t, f.cement.ID)

	// перегенерация в процессе
	if err := f.store.TryLockEstimate(f.estimate.ID, true); err != nil {
		t.Fatalf("TryLockEstimate: %v", err)
	}

	_, err := f.svc.RecordPurchase(context.Background(), f.scope, PurchaseInput{
		ProjectID: f.project.ID, EstimateID: f.estimate.ID, MaterialID: f.cement.ID,
		SourceRequirementID: &cement.ID, Quantity: d("1"), UnitPrice: d("480"),
	})
	if !errors.Is(err, apperr.ErrReconciliationConflict) {
		t.Fatalf("err = %v, want ErrReconciliationConflict", err)
	}
	f.store.UnlockEstimate(f.estimate.ID, true)

	assertDecimal(t, "purchased", f.reload(t, cement.ID).PurchasedQuantity, "0")

	// после снятия блокировки повтор проходит
	f.record(t, &cement.ID, f.cement.ID, "1", "480")
	assertDecimal(t, "purchased", f.reload(t, cement.ID).PurchasedQuantity, "1")
}

func TestUnlinkedPurchaseLeavesPlanUntouched(t *testing.T) {
	f := newFixture(t)
	f.generate(t)
	f.record(t, nil, f.cement.ID, "30", "480")

	for _, materialID := range []uint{f.cement.ID, f.sand.ID} {
		assertDecimal(t, "purchased", f.requirementFor(t, materialID).PurchasedQuantity, "0")
	}
	f.assertInSync(t)
}

func TestAuditDetectsDrift(t *testing.T) {
	f := newFixture(t)
	req := f.requirement100(t)
	f.record(t, &req.ID, f.cement.ID, "12", "480")

	// счётчик сдвинут мимо журнала
	if err := f.store.AdjustPurchasedQuantity(context.Background(), f.scope.TenantID, req.ID, d("3")); err != nil {
		t.Fatalf("AdjustPurchasedQuantity: %v", err)
	}

	discrepancies, err := f.svc.Audit(context.Background(), f.scope, f.estimate.ID)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(discrepancies) != 1 {
		t.Fatalf("got %d discrepancies, want 1", len(discrepancies))
	}
	got := discrepancies[0]
	if got.RequirementID != req.ID || got.LedgerEntries != 1 {
		t.Errorf("discrepancy = %+v", got)
	}
	assertDecimal(t, "purchased", got.PurchasedQuantity, "15")
	assertDecimal(t, "ledger", got.LedgerQuantity, "12")
}

func TestAuditErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var validation *apperr.ValidationError
	if _, err := f.svc.Audit(ctx, f.scope, 0); !errors.As(err, &validation) {
		t.Errorf("zero estimate: err = %v", err)
	}
	if _, err := f.svc.Audit(ctx, Scope{TenantID: 2}, f.estimate.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("other tenant: err = %v", err)
	}
}
