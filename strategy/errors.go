package strategy

import (
	"fmt"

	"github.com/arloliu/seating/types"
)

func errNoOpenTables() error {
	return fmt.Errorf("%w: found 0 open tables", types.ErrNoOpenTables)
}

func errInsufficientSeats(participants, seats, tables int) error {
	return fmt.Errorf("%w: %d participants, %d seats across %d open tables",
		types.ErrInsufficientSeats, participants, seats, tables)
}
