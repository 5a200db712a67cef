package seating

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seating/internal/logger"
	seatingtest "github.com/arloliu/seating/testing"
)

type harness struct {
	eng   *Engine
	audit *seatingtest.AuditRecorder
	scope Scope
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	rec := seatingtest.NewAuditRecorder()
	cfg := TestConfig()
	opts = append([]Option{
		WithLogger(logger.NewTest(t)),
		WithAuditSink(rec),
		WithRandomizer(seatingtest.SeededRandomizer(11)),
	}, opts...)
	eng, err := NewEngine(&cfg, seatingtest.NewStore(t), opts...)
	require.NoError(t, err)

	return &harness{eng: eng, audit: rec, scope: NewScope("club", "main")}
}

func (h *harness) openTable(t *testing.T, seats int) *Table {
	t.Helper()

	tbl, err := h.eng.CreateTable(context.Background(), h.scope, TableSpec{Seats: seats})
	require.NoError(t, err)
	tbl, err = h.eng.ActivateTable(context.Background(), h.scope, tbl.ID)
	require.NoError(t, err)

	return tbl
}

func (h *harness) register(t *testing.T, n int) []*Participant {
	t.Helper()

	out := make([]*Participant, 0, n)
	for i := range n {
		p, err := h.eng.CreateParticipant(context.Background(), h.scope,
			ParticipantSpec{Name: fmt.Sprintf("P%02d", i), Chips: int64(1000 * (i + 1))})
		require.NoError(t, err)
		out = append(out, p)
	}

	return out
}

func TestNewEngine(t *testing.T) {
	st := seatingtest.NewStore(t)

	_, err := NewEngine(nil, st)
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	_, err = NewEngine(&cfg, nil)
	require.ErrorIs(t, err, ErrStoreRequired)

	bad := Config{OperationTimeout: -1}
	_, err = NewEngine(&bad, st)
	require.ErrorIs(t, err, ErrInvalidConfig)

	empty := Config{}
	eng, err := NewEngine(&empty, st)
	require.NoError(t, err)
	require.Equal(t, 9, eng.Config().DefaultMaxSeats)
}

func TestEngine_FloorLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	t1 := h.openTable(t, 9)
	t2 := h.openTable(t, 9)
	t3 := h.openTable(t, 9)
	require.Equal(t, []int{1, 2, 3}, []int{t1.TableNumber, t2.TableNumber, t3.TableNumber})

	h.register(t, 18)
	results, err := h.eng.RebalanceAll(ctx, h.scope, nil)
	require.NoError(t, err)
	require.Len(t, results, 18)

	tables, err := h.eng.Tables(ctx, h.scope)
	require.NoError(t, err)
	for _, tbl := range tables {
		require.Equal(t, 6, tbl.OccupiedCount(), "table %d", tbl.TableNumber)
	}

	red, err := h.eng.CloseTable(ctx, h.scope, t3.ID)
	require.NoError(t, err)
	require.Len(t, red.Results, 6)

	tables, err = h.eng.Tables(ctx, h.scope)
	require.NoError(t, err)
	require.Equal(t, 9, tables[0].OccupiedCount())
	require.Equal(t, 9, tables[1].OccupiedCount())
	require.Equal(t, TableStandby, tables[2].Status)

	participants, err := h.eng.Participants(ctx, h.scope)
	require.NoError(t, err)
	for _, p := range participants {
		require.True(t, p.IsSeated())
		require.NotEqual(t, t3.ID, p.Location.TableID)
	}

	victim := participants[0]
	ref, err := h.eng.BustOut(ctx, h.scope, victim.ID)
	require.NoError(t, err)
	require.Equal(t, victim.Location.TableID, ref.TableID)

	ref, err = h.eng.BustOut(ctx, h.scope, victim.ID)
	require.NoError(t, err)
	require.Nil(t, ref, "second bust-out is a no-op")

	report, err := h.eng.SnakeDraft(ctx, h.scope)
	require.NoError(t, err)
	require.True(t, report.Balanced)
	require.Len(t, report.Results, 17)

	require.Equal(t, []string{
		"create_table", "activate_table",
		"create_table", "activate_table",
		"create_table", "activate_table",
	}, h.audit.Actions()[:6])
	require.Equal(t, []string{"rebalance_all", "close_table", "bust_out", "snake_draft"}, h.audit.Actions()[24:])
}

func TestEngine_MoveNoopIsNotAudited(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tbl := h.openTable(t, 9)
	p, err := h.eng.CreateParticipant(ctx, h.scope, ParticipantSpec{
		Name: "Alice",
		Seat: &SeatAddress{TableID: tbl.ID, SeatIndex: 0},
	})
	require.NoError(t, err)
	before := len(h.audit.Actions())

	seat := SeatAddress{TableID: tbl.ID, SeatIndex: 0}
	res, err := h.eng.Move(ctx, h.scope, p.ID, seat, seat)
	require.NoError(t, err)
	require.Nil(t, res)
	require.Len(t, h.audit.Actions(), before)

	res, err = h.eng.Move(ctx, h.scope, p.ID, seat, SeatAddress{TableID: tbl.ID, SeatIndex: 4})
	require.NoError(t, err)
	require.Equal(t, "T1-S5", res.To.String())

	last := h.audit.Records()[len(h.audit.Records())-1]
	require.Equal(t, "move_seat", last.Action)
	require.Equal(t, "T1-S1", last.Details["from"])
}

func TestEngine_ErrorsAreClassified(t *testing.T) {
	ctx := context.Background()

	var hookErrs []string
	h := newHarness(t, WithHooks(&Hooks{
		OnError: func(_ context.Context, action string, _ error) error {
			hookErrs = append(hookErrs, action)
			return errors.New("hook failure is only logged")
		},
	}))

	h.register(t, 3)
	_, err := h.eng.RebalanceAll(ctx, h.scope, nil)
	require.ErrorIs(t, err, ErrNoOpenTables)
	require.Equal(t, ClassPrecondition, ClassOf(err))

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, "rebalance_all", opErr.Op)

	tbl := h.openTable(t, 2)
	_, err = h.eng.RebalanceAll(ctx, h.scope, nil)
	require.ErrorIs(t, err, ErrInsufficientSeats)
	require.Contains(t, err.Error(), "3 participants, 2 seats")

	_, err = h.eng.ResizeSeats(ctx, h.scope, tbl.ID, 0)
	require.Equal(t, ClassInvalid, ClassOf(err))

	_, err = h.eng.SnakeDraft(ctx, NewScope("club", AllPartitions))
	require.ErrorIs(t, err, ErrAggregateScope)

	_, err = h.eng.CloseTable(ctx, h.scope, "missing")
	require.Equal(t, ClassConflict, ClassOf(err))

	require.Equal(t, []string{"rebalance_all", "rebalance_all", "resize_seats", "snake_draft", "close_table"}, hookErrs)
	for _, action := range h.audit.Actions() {
		require.NotEqual(t, "rebalance_all", action, "failed operations are not audited")
	}
}

func TestEngine_ResizeBlocked(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	tbl := h.openTable(t, 9)
	_, err := h.eng.CreateParticipant(ctx, h.scope, ParticipantSpec{
		Name: "Alice",
		Seat: &SeatAddress{TableID: tbl.ID, SeatIndex: 6},
	})
	require.NoError(t, err)

	_, err = h.eng.ResizeSeats(ctx, h.scope, tbl.ID, 5)
	var blocked *ResizeBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, "Alice", blocked.Blocking[0].ParticipantName)
	require.Equal(t, ClassStructural, ClassOf(err))

	tables, err := h.eng.Tables(ctx, h.scope)
	require.NoError(t, err)
	require.Len(t, tables[0].Seats, 9)
}

func TestEngine_HooksSeeSeatChanges(t *testing.T) {
	ctx := context.Background()

	var seen []string
	h := newHarness(t, WithHooks(&Hooks{
		OnSeatsChanged: func(_ context.Context, action string, results []AssignmentResult) error {
			seen = append(seen, fmt.Sprintf("%s:%d", action, len(results)))
			return nil
		},
	}))
	h.openTable(t, 9)
	h.openTable(t, 9)
	h.register(t, 4)

	_, err := h.eng.FillWaiting(ctx, h.scope, nil)
	require.NoError(t, err)

	results, err := h.eng.FillWaiting(ctx, h.scope, nil)
	require.NoError(t, err)
	require.Empty(t, results)

	require.Equal(t, []string{"fill_waiting:4"}, seen)
}

func TestEngine_AuditFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.audit.FailWith(errors.New("nats down"))

	tbl, err := h.eng.CreateTable(ctx, h.scope, TableSpec{})
	require.NoError(t, err)
	require.Len(t, tbl.Seats, 9)
	require.Equal(t, []string{"create_table"}, h.audit.Actions())
}

func TestEngine_SingleTenantPartition(t *testing.T) {
	ctx := context.Background()

	cfg := TestConfig()
	cfg.SingleTenantPartition = "house"
	eng, err := NewEngine(&cfg, seatingtest.NewStore(t), WithLogger(logger.NewTest(t)))
	require.NoError(t, err)

	tbl, err := eng.CreateTable(ctx, NewScope("club", ""), TableSpec{})
	require.NoError(t, err)
	require.Equal(t, "house", tbl.PartitionID)

	tables, err := eng.Tables(ctx, NewScope("club", "house"))
	require.NoError(t, err)
	require.Len(t, tables, 1)
}

func TestEngine_Partitions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.eng.CreatePartition(ctx, "club", Partition{ID: "day1", Name: "Day 1", Date: "2026-10-18"})
	require.NoError(t, err)
	_, err = h.eng.CreatePartition(ctx, "club", Partition{ID: "day1b", Name: "Day 1B", Date: "2026-10-18"})
	require.NoError(t, err)

	day1 := NewScope("club", "day1")
	_, err = h.eng.CreateTable(ctx, day1, TableSpec{})
	require.NoError(t, err)
	_, err = h.eng.CreateTable(ctx, NewScope("club", "day1b"), TableSpec{})
	require.NoError(t, err)
	_, err = h.eng.CreateTable(ctx, h.scope, TableSpec{})
	require.NoError(t, err)

	byDate, err := h.eng.Tables(ctx, NewScope("club", "date:2026-10-18"))
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	all, err := h.eng.Tables(ctx, NewScope("club", AllPartitions))
	require.NoError(t, err)
	require.Len(t, all, 3)

	parts, err := h.eng.Partitions(ctx, "club")
	require.NoError(t, err)
	require.Len(t, parts, 2)
}

func TestEngine_ReassignThenReseat(t *testing.T) {
	ctx := context.Background()
	all := NewScope("club", AllPartitions)

	requireSingleOccupancy := func(t *testing.T, h *harness) {
		t.Helper()

		tables, err := h.eng.Tables(ctx, all)
		require.NoError(t, err)
		held := map[string]int{}
		for i := range tables {
			for _, seat := range tables[i].Seats {
				if id, ok := seat.Occupant(); ok {
					held[id]++
				}
			}
		}
		for id, n := range held {
			require.Equal(t, 1, n, "participant %s holds %d seats", id, n)
		}
	}

	reseat := map[string]func(h *harness) error{
		"rebalance": func(h *harness) error {
			_, err := h.eng.RebalanceAll(ctx, h.scope, nil)
			return err
		},
		"draft": func(h *harness) error {
			_, err := h.eng.SnakeDraft(ctx, h.scope)
			return err
		},
	}

	for name, fn := range reseat {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			moved := h.openTable(t, 9)
			players := h.register(t, 3)
			_, err := h.eng.RebalanceAll(ctx, h.scope, nil)
			require.NoError(t, err)

			report, err := h.eng.ReassignPartition(ctx, h.scope, []string{moved.ID}, "side")
			require.NoError(t, err)
			require.Equal(t, []string{moved.ID}, report.Moved)

			h.openTable(t, 9)
			require.NoError(t, fn(h))

			requireSingleOccupancy(t, h)
			side, err := h.eng.Tables(ctx, NewScope("club", "side"))
			require.NoError(t, err)
			require.Len(t, side, 1)
			require.Zero(t, side[0].OccupiedCount())
			for _, p := range players {
				got, err := h.eng.Participant(ctx, h.scope, p.ID)
				require.NoError(t, err)
				require.NotNil(t, got.Location)
				require.NotEqual(t, moved.ID, got.Location.TableID)
			}
		})
	}
}
