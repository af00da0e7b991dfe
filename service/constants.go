package service

const (
	// Qualification ceiling bounds, inclusive (Ksh).
	MinQualifiedAmount = 2_000.0
	MaxQualifiedAmount = 50_000.0

	// Default disbursement rates. Overridable through configuration.
	DefaultInterestRate   = 0.08
	DefaultServiceFeeRate = 0.05

	// Loan term breakpoints on the awarded amount (Ksh).
	ShortTermThreshold = 10_000.0
	MidTermThreshold   = 20_000.0

	ShortTermDays = 14
	MidTermDays   = 21
	LongTermDays  = 30

	// Merchant account for the out-of-band savings payment.
	DefaultPaybillNumber = "9876543"
)
