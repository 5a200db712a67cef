package testing

import (
	"testing"

	"github.com/arloliu/seating/internal/logger"
	"github.com/arloliu/seating/types"
)

// NewTestLogger creates a logger that writes to the testing.T log.
// This is useful for seeing engine log output during test runs.
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
