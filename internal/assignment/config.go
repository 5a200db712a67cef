package assignment

import (
	"errors"

	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/metrics"
	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/types"
)

// Config holds engine configuration.
//
// Required fields must be set before calling NewEngine. Optional fields are set to
// sensible defaults if zero-valued.
type Config struct {
	// Required dependencies
	Store types.Store

	// Optional dependencies
	Randomizer types.Randomizer      // Placement randomness (default: entropy-seeded)
	Metrics    types.PlacementMetrics // Placement metrics (default: no-op)
	Logger     types.Logger           // Logger (default: no-op)
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("the Store is required")
	}

	return nil
}

// SetDefaults applies default values for optional fields.
//
// Fields that are already set (non-zero) are not overwritten.
func (c *Config) SetDefaults() {
	if c.Randomizer == nil {
		c.Randomizer = random.New()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewNop()
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
}
