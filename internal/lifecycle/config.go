package lifecycle

import (
	"errors"

	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/types"
)

// DefaultMaxSeats is the seat count of a new table when none is requested.
const DefaultMaxSeats = 9

// Config holds manager configuration.
type Config struct {
	// Required dependencies
	Store types.Store

	// Optional configuration (with defaults)
	DefaultMaxSeats int // Seats of a new table (default: 9)

	// Optional dependencies
	Randomizer types.Randomizer // Relocation tie-breaks (default: entropy-seeded)
	Logger     types.Logger     // Logger (default: no-op)
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("the Store is required")
	}
	if c.DefaultMaxSeats < 0 {
		return errors.New("the DefaultMaxSeats must not be negative")
	}

	return nil
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.DefaultMaxSeats == 0 {
		c.DefaultMaxSeats = DefaultMaxSeats
	}
	if c.Randomizer == nil {
		c.Randomizer = random.New()
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
}
