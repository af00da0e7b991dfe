package service

import (
	"errors"
	"math"

	"mwananchi-loans/domain"
)

var (
	ErrUnknownPlan    = errors.New("unknown savings plan")
	ErrRestrictedTier = errors.New("savings plan is available for existing members only")
)

// planTier is one fixed catalog row: a savings contribution and the nominal
// loan-limit ceiling it unlocks.
type planTier struct {
	savings      float64
	ceiling      float64
	existingOnly bool
}

// Catalog is the fixed, ordered savings plan table.
type Catalog struct {
	tiers []planTier
}

// DefaultCatalog returns the production tier table. The top tier is reserved
// for members with prior disbursed loans.
func DefaultCatalog() *Catalog {
	return &Catalog{tiers: []planTier{
		{savings: 120, ceiling: 5_000},
		{savings: 170, ceiling: 8_500},
		{savings: 350, ceiling: 12_500},
		{savings: 650, ceiling: 18_000},
		{savings: 1_550, ceiling: 23_485, existingOnly: true},
	}}
}

// PlansFor renders the tier table against a qualification ceiling. Each
// tier's effective loan limit is min(nominal ceiling, qualified amount).
func (c *Catalog) PlansFor(qualifiedAmount float64) []domain.SavingsPlan {
	plans := make([]domain.SavingsPlan, 0, len(c.tiers))
	for _, t := range c.tiers {
		plans = append(plans, domain.SavingsPlan{
			Savings:      t.savings,
			LoanLimit:    math.Min(t.ceiling, qualifiedAmount),
			ExistingOnly: t.existingOnly,
		})
	}
	return plans
}

// Select resolves the tier identified by its savings contribution, capped
// against the qualification ceiling. Restricted tiers are rejected unless
// the member has prior loan history; the rejection changes no state.
func (c *Catalog) Select(savings, qualifiedAmount float64, existingMember bool) (domain.SavingsPlan, error) {
	for _, t := range c.tiers {
		if t.savings != savings {
			continue
		}
		if t.existingOnly && !existingMember {
			return domain.SavingsPlan{}, ErrRestrictedTier
		}
		return domain.SavingsPlan{
			Savings:      t.savings,
			LoanLimit:    math.Min(t.ceiling, qualifiedAmount),
			ExistingOnly: t.existingOnly,
		}, nil
	}
	return domain.SavingsPlan{}, ErrUnknownPlan
}
