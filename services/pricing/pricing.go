// Package pricing computes a provider's service charge. The calculator is a
// pure function of the provider's category, trial status, rating and
// experience; it performs no I/O and mutates nothing.
package pricing

import (
	"math"

	"fixhub/config"
	"fixhub/models"
)

// Calculator derives service charges from the engine constants.
type Calculator struct {
	cfg config.Engine
}

// NewCalculator creates a Calculator bound to the given engine constants.
func NewCalculator(cfg config.Engine) *Calculator {
	return &Calculator{cfg: cfg}
}

// BaseRate returns the flat rate for a category.
func (c *Calculator) BaseRate(category string) int64 {
	if rate, ok := c.cfg.BaseRates[category]; ok {
		return rate
	}
	return c.cfg.DefaultBaseRate
}

// Charge computes the provider's service charge for a job in their category.
//
// Providers with trial jobs remaining are priced at the flat base rate; the
// caller decrements the trial allotment when the job is actually taken.
// Otherwise the base rate is scaled by a multiplier built from rating above
// three stars and years of experience, capped, and floored to an integer.
func (c *Calculator) Charge(p *models.Provider) int64 {
	baseRate := c.BaseRate(p.Category)

	if p.TrialJobsLeft > 0 {
		return baseRate
	}

	multiplier := 1.0
	if p.Rating > 3 {
		multiplier += (p.Rating - 3) * c.cfg.RatingCoefficient
	}
	multiplier += float64(p.ExperienceYears) * c.cfg.ExperienceCoefficient

	if multiplier > c.cfg.MaxMultiplier {
		multiplier = c.cfg.MaxMultiplier
	}
	return int64(math.Floor(float64(baseRate) * multiplier))
}
