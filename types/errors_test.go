package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("wrapped errors maintain identity", func(t *testing.T) {
		wrapped := errors.Join(ErrSeatOccupied, errors.New("additional context"))
		require.True(t, errors.Is(wrapped, ErrSeatOccupied))
		require.False(t, errors.Is(wrapped, ErrSeatMismatch))
	})

	t.Run("all errors are distinct", func(t *testing.T) {
		allErrors := make([]error, 0, len(sentinelClasses)+3)
		for _, sc := range sentinelClasses {
			allErrors = append(allErrors, sc.err)
		}
		allErrors = append(allErrors, ErrStoreRequired, ErrNotFound)

		for i, err1 := range allErrors {
			for j, err2 := range allErrors {
				if i == j {
					require.True(t, errors.Is(err1, err2), "error should equal itself: %v", err1)
				} else {
					require.False(t, errors.Is(err1, err2), "errors should be distinct: %v vs %v", err1, err2)
				}
			}
		}
	})
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ClassUnknown},
		{"unrelated", errors.New("disk on fire"), ClassUnknown},
		{"no open tables", ErrNoOpenTables, ClassPrecondition},
		{"wrapped insufficient seats", fmt.Errorf("plan: %w", ErrInsufficientSeats), ClassPrecondition},
		{"seat occupied", ErrSeatOccupied, ClassConflict},
		{"table not found", ErrTableNotFound, ClassConflict},
		{"resize blocked", &ResizeBlockedError{TableNumber: 1, Requested: 5}, ClassStructural},
		{"no relocation target", ErrNoRelocationTarget, ClassCapacity},
		{"transient", fmt.Errorf("commit: %w", ErrTransient), ClassTransient},
		{"invalid seat", ErrInvalidSeat, ClassInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassOf(tt.err))
		})
	}
}

func TestOperationError(t *testing.T) {
	t.Run("derives class and keeps sentinel", func(t *testing.T) {
		err := NewOperationError(ActionRebalanceAll, ErrInsufficientSeats, "need %d seats, have %d", 12, 9)

		require.Equal(t, ClassPrecondition, err.Class)
		require.ErrorIs(t, err, ErrInsufficientSeats)
		require.Equal(t, "rebalance_all: insufficient seats: need 12 seats, have 9", err.Error())
	})

	t.Run("class survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("http handler: %w", NewOperationError(ActionMoveSeat, ErrSeatOccupied, "T2-S3"))

		require.Equal(t, ClassConflict, ClassOf(err))

		var opErr *OperationError
		require.ErrorAs(t, err, &opErr)
		require.Equal(t, ActionMoveSeat, opErr.Op)
	})

	t.Run("class names", func(t *testing.T) {
		require.Equal(t, "precondition", ClassPrecondition.String())
		require.Equal(t, "capacity", ClassCapacity.String())
		require.Equal(t, "unknown", ErrorClass(99).String())
	})
}

func TestResizeBlockedError(t *testing.T) {
	err := &ResizeBlockedError{
		TableNumber: 3,
		Requested:   5,
		Blocking: []BlockingSeat{
			{SeatNumber: 7, ParticipantID: "p7", ParticipantName: "Alice"},
			{SeatNumber: 9, ParticipantID: "p9"},
		},
	}

	require.ErrorIs(t, err, ErrResizeBlocked)
	require.Equal(t, "cannot resize table 3 to 5 seats: occupied seat 7 (Alice), seat 9 (p9)", err.Error())
}
