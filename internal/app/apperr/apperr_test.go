package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("load estimate: %w", NotFound("estimate", 7))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped NotFoundError to match ErrNotFound")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected errors.As to find NotFoundError")
	}
	if nf.Entity != "estimate" || nf.ID != 7 {
		t.Errorf("unexpected NotFoundError %+v", nf)
	}
}

func TestWrap(t *testing.T) {
	storeErr := errors.New("pq: deadlock detected")

	tests := []struct {
		name      string
		err       error
		wantTx    bool
		wantExact bool
	}{
		{name: "nil", err: nil},
		{name: "validation passes through", err: Invalid("quantity", "must be greater than zero"), wantExact: true},
		{name: "not found passes through", err: NotFound("material", 3), wantExact: true},
		{name: "conflict passes through", err: ErrReconciliationConflict, wantExact: true},
		{name: "store error wrapped", err: storeErr, wantTx: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap("record purchase", tc.err)
			if tc.err == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if tc.wantExact && got != tc.err {
				t.Errorf("expected error to pass through unchanged, got %v", got)
			}
			var txErr *TransactionError
			if tc.wantTx {
				if !errors.As(got, &txErr) {
					t.Fatalf("expected TransactionError, got %T", got)
				}
				if !errors.Is(got, storeErr) {
					t.Errorf("expected TransactionError to unwrap to the store error")
				}
				if IsClientError(got) {
					t.Errorf("store failure must not be a client error")
				}
			}
		})
	}
}

func TestWrapDoesNotDoubleWrap(t *testing.T) {
	first := Wrap("inner", errors.New("connection reset"))
	second := Wrap("outer", first)
	if second != first {
		t.Errorf("expected already wrapped error to be returned as is")
	}
}
