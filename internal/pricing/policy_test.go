package pricing

import "testing"

func TestShippingCostBelowThreshold(t *testing.T) {
	policy := Policy{FreeThresholdCents: 5000, FlatRateCents: 590}

	if got := policy.ShippingCost(4000); got != 590 {
		t.Fatalf("expected flat rate 590, got %d", got)
	}
	if got := policy.Total(4000, 590); got != 4590 {
		t.Fatalf("expected total 4590, got %d", got)
	}
}

func TestShippingCostAtThresholdIsFree(t *testing.T) {
	policy := Policy{FreeThresholdCents: 5000, FlatRateCents: 590}

	if got := policy.ShippingCost(5000); got != 0 {
		t.Fatalf("expected free shipping at threshold, got %d", got)
	}
}

func TestShippingCostAboveThresholdIsFree(t *testing.T) {
	policy := Policy{FreeThresholdCents: 5000, FlatRateCents: 590}

	if got := policy.ShippingCost(6000); got != 0 {
		t.Fatalf("expected free shipping, got %d", got)
	}
	if got := policy.Total(6000, 0); got != 6000 {
		t.Fatalf("expected total 6000, got %d", got)
	}
}

func TestShippingCostJustBelowThreshold(t *testing.T) {
	policy := Policy{FreeThresholdCents: 5000, FlatRateCents: 590}

	if got := policy.ShippingCost(4999); got != 590 {
		t.Fatalf("expected flat rate for 4999, got %d", got)
	}
}
