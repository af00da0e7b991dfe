package service

import (
	"errors"
	"testing"
)

func TestPlansFor_CapsAgainstCeiling(t *testing.T) {

	catalog := DefaultCatalog()

	ceilings := []float64{2000, 7000, 12500, 30000, 50000}

	for _, ceiling := range ceilings {
		plans := catalog.PlansFor(ceiling)

		if len(plans) != 5 {
			t.Fatalf("expected 5 tiers, got %d", len(plans))
		}

		for _, plan := range plans {
			if plan.LoanLimit > ceiling {
				t.Errorf("ceiling %.0f: tier %.0f has limit %.0f above ceiling",
					ceiling, plan.Savings, plan.LoanLimit)
			}
		}
	}
}

func TestPlansFor_NominalLimits(t *testing.T) {

	plans := DefaultCatalog().PlansFor(50000)

	expected := map[float64]float64{
		120:  5000,
		170:  8500,
		350:  12500,
		650:  18000,
		1550: 23485,
	}

	for _, plan := range plans {
		if expected[plan.Savings] != plan.LoanLimit {
			t.Errorf("tier %.0f: expected limit %.0f, got %.0f",
				plan.Savings, expected[plan.Savings], plan.LoanLimit)
		}
	}

	if !plans[4].ExistingOnly {
		t.Errorf("top tier should be existing-members-only")
	}
}

func TestSelect_RestrictedTier(t *testing.T) {

	catalog := DefaultCatalog()

	_, err := catalog.Select(1550, 50000, false)
	if !errors.Is(err, ErrRestrictedTier) {
		t.Fatalf("expected ErrRestrictedTier, got %v", err)
	}

	plan, err := catalog.Select(1550, 50000, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.LoanLimit != 23485 {
		t.Errorf("expected limit 23485, got %.0f", plan.LoanLimit)
	}
}

func TestSelect_UnknownPlan(t *testing.T) {

	_, err := DefaultCatalog().Select(999, 50000, false)
	if !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}

func TestSelect_CapsAgainstCeiling(t *testing.T) {

	plan, err := DefaultCatalog().Select(350, 7000, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.LoanLimit != 7000 {
		t.Errorf("expected limit capped to 7000, got %.0f", plan.LoanLimit)
	}
}
