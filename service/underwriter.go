package service

import (
	"math/rand/v2"

	"mwananchi-loans/domain"
)

// Underwriter produces the qualification ceiling for one attempt. The flow
// calls it exactly once per attempt and persists the result, so swapping the
// random draw for a real scoring model only touches this seam.
type Underwriter interface {
	Evaluate(q domain.EligibilityData) float64
}

// RandomUnderwriter draws the ceiling uniformly in [min, max], ignoring the
// questionnaire. It is the simulation stand-in for a real underwriting model.
type RandomUnderwriter struct {
	min, max float64
	intn     func(n int) int
}

func NewRandomUnderwriter(min, max float64) *RandomUnderwriter {
	return &RandomUnderwriter{min: min, max: max, intn: rand.IntN}
}

// NewSeededUnderwriter uses the given source, for deterministic tests.
func NewSeededUnderwriter(min, max float64, src rand.Source) *RandomUnderwriter {
	r := rand.New(src)
	return &RandomUnderwriter{min: min, max: max, intn: r.IntN}
}

func (u *RandomUnderwriter) Evaluate(domain.EligibilityData) float64 {
	span := int(u.max-u.min) + 1
	if span <= 1 {
		return u.min
	}
	return u.min + float64(u.intn(span))
}
