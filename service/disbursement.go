package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"mwananchi-loans/domain"
)

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// Calculator derives the disbursement breakdown from an awarded amount. Both
// rates are configuration, not literals, so the simulation figures can be
// tuned without a rebuild.
type Calculator struct {
	interestRate   float64
	serviceFeeRate float64
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(interestRate, serviceFeeRate float64) *Calculator {
	return &Calculator{interestRate: interestRate, serviceFeeRate: serviceFeeRate}
}

// Breakdown computes interest, service fee and the disbursable remainder.
// The three parts always sum back to the awarded amount.
func (c *Calculator) Breakdown(awardedAmount float64) (domain.DisbursementBreakdown, error) {
	if math.IsNaN(awardedAmount) || math.IsInf(awardedAmount, 0) {
		return domain.DisbursementBreakdown{}, errors.New("awarded amount is not finite")
	}
	if awardedAmount < 0 {
		return domain.DisbursementBreakdown{}, fmt.Errorf("awarded amount is negative: %.2f", awardedAmount)
	}

	interest := awardedAmount * c.interestRate
	serviceFee := awardedAmount * c.serviceFeeRate

	return domain.DisbursementBreakdown{
		Interest:    interest,
		ServiceFee:  serviceFee,
		Disbursable: awardedAmount - interest - serviceFee,
	}, nil
}

// TermDays derives the loan term from the awarded amount by fixed
// breakpoints.
func TermDays(awardedAmount float64) int {
	switch {
	case awardedAmount < ShortTermThreshold:
		return ShortTermDays
	case awardedAmount < MidTermThreshold:
		return MidTermDays
	default:
		return LongTermDays
	}
}

// DueDate is the repayment date for a loan disbursed at the given time.
func DueDate(disbursedAt time.Time, awardedAmount float64) time.Time {
	return disbursedAt.AddDate(0, 0, TermDays(awardedAmount))
}
