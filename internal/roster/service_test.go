package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seating/internal/logger"
	"github.com/arloliu/seating/internal/testutil"
	"github.com/arloliu/seating/types"
)

func newService(t *testing.T, f *testutil.Fixture) *Service {
	t.Helper()

	svc, err := NewService(&Config{Store: f.Store, Logger: logger.NewTest(t)})
	require.NoError(t, err)

	return svc
}

func TestNewService(t *testing.T) {
	_, err := NewService(&Config{})
	require.Error(t, err)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("unseated", func(t *testing.T) {
		f := testutil.NewFixture(t)
		svc := newService(t, f)

		p, err := svc.Create(ctx, f.Scope, types.ParticipantSpec{Name: "Alice", Chips: 20000})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		require.Equal(t, types.ParticipantActive, p.Status)
		require.False(t, p.IsSeated())

		got, err := svc.Get(ctx, f.Scope, p.ID)
		require.NoError(t, err)
		require.Equal(t, p, got)
	})

	t.Run("seated atomically", func(t *testing.T) {
		f := testutil.NewFixture(t)
		svc := newService(t, f)
		tbl := f.AddTable(9, types.TableOpen)

		p, err := svc.Create(ctx, f.Scope, types.ParticipantSpec{
			Name: "Alice",
			Seat: &types.SeatAddress{TableID: tbl.ID, SeatIndex: 2},
		})
		require.NoError(t, err)
		require.Equal(t, types.SeatLocation{TableID: tbl.ID, TableNumber: 1, SeatNumber: 3}, *p.Location)
		require.True(t, f.Table(tbl.ID).Seats[2].HeldBy(p.ID))
		f.RequireConsistent()
	})

	t.Run("occupied seat writes nothing", func(t *testing.T) {
		f := testutil.NewFixture(t)
		svc := newService(t, f)
		tbl := f.AddTable(9, types.TableOpen)
		f.Seat(f.AddParticipant("Bob", 100), tbl, 2)
		before := f.Dump()

		_, err := svc.Create(ctx, f.Scope, types.ParticipantSpec{
			Name: "Alice",
			Seat: &types.SeatAddress{TableID: tbl.ID, SeatIndex: 2},
		})
		require.ErrorIs(t, err, types.ErrSeatOccupied)
		require.Equal(t, before, f.Dump())
	})

	t.Run("standby table", func(t *testing.T) {
		f := testutil.NewFixture(t)
		svc := newService(t, f)
		tbl := f.AddTable(9, types.TableStandby)

		_, err := svc.Create(ctx, f.Scope, types.ParticipantSpec{
			Name: "Alice",
			Seat: &types.SeatAddress{TableID: tbl.ID, SeatIndex: 0},
		})
		require.ErrorIs(t, err, types.ErrTableNotOpen)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := testutil.NewFixture(t)
		svc := newService(t, f)

		_, err := svc.Create(ctx, f.Scope, types.ParticipantSpec{})
		require.ErrorIs(t, err, types.ErrInvalidArgument)

		_, err = svc.Create(ctx, f.Scope, types.ParticipantSpec{Name: "A", Chips: -1})
		require.ErrorIs(t, err, types.ErrInvalidArgument)

		_, err = svc.Create(ctx, f.Scope.WithPartition(types.AllPartitions), types.ParticipantSpec{Name: "A"})
		require.ErrorIs(t, err, types.ErrAggregateScope)
	})
}

func TestService_UpdateAndStatus(t *testing.T) {
	ctx := context.Background()
	f := testutil.NewFixture(t)
	svc := newService(t, f)
	p := f.AddParticipant("Alice", 100)

	got, err := svc.UpdateChips(ctx, f.Scope, p.ID, 4500)
	require.NoError(t, err)
	require.EqualValues(t, 4500, got.Chips)
	require.EqualValues(t, 4500, f.Participant(p.ID).Chips)

	_, err = svc.UpdateChips(ctx, f.Scope, p.ID, -5)
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	got, err = svc.SetStatus(ctx, f.Scope, p.ID, types.ParticipantNoShow)
	require.NoError(t, err)
	require.Equal(t, types.ParticipantNoShow, got.Status)

	_, err = svc.SetStatus(ctx, f.Scope, p.ID, types.ParticipantBusted)
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = svc.UpdateChips(ctx, f.Scope, "ghost", 1)
	require.ErrorIs(t, err, types.ErrParticipantNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	f := testutil.NewFixture(t)
	svc := newService(t, f)
	tbl := f.AddTable(9, types.TableOpen)
	seated := f.AddParticipant("Alice", 100)
	f.Seat(seated, tbl, 4)
	waiting := f.AddParticipant("Bob", 100)

	ref, err := svc.Delete(ctx, f.Scope, seated.ID)
	require.NoError(t, err)
	require.Equal(t, "T1-S5", ref.String())
	require.Zero(t, f.Table(tbl.ID).OccupiedCount())

	ref, err = svc.Delete(ctx, f.Scope, waiting.ID)
	require.NoError(t, err)
	require.Nil(t, ref)

	list, err := svc.List(ctx, f.Scope)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = svc.Delete(ctx, f.Scope, seated.ID)
	require.ErrorIs(t, err, types.ErrParticipantNotFound)
}

func TestService_ListAggregate(t *testing.T) {
	ctx := context.Background()
	f := testutil.NewFixture(t)
	svc := newService(t, f)
	f.AddParticipant("Alice", 100)
	f.In("side").AddParticipant("Bob", 100)
	f.In("side").AddTable(9, types.TableOpen)

	inMain, err := svc.List(ctx, f.Scope)
	require.NoError(t, err)
	require.Len(t, inMain, 1)

	all, err := svc.List(ctx, f.Scope.WithPartition(types.AllPartitions))
	require.NoError(t, err)
	require.Len(t, all, 2)

	tables, err := svc.Tables(ctx, f.Scope.WithPartition(types.AllPartitions))
	require.NoError(t, err)
	require.Len(t, tables, 1)
}

func TestService_Partitions(t *testing.T) {
	ctx := context.Background()
	f := testutil.NewFixture(t)
	svc := newService(t, f)

	day2, err := svc.CreatePartition(ctx, "club", types.Partition{ID: "day2", Name: "Day 2", Date: "2026-10-19"})
	require.NoError(t, err)
	require.Equal(t, "club", day2.OwnerID)

	day1, err := svc.CreatePartition(ctx, "club", types.Partition{Name: "Day 1", Date: "2026-10-18"})
	require.NoError(t, err)
	require.NotEmpty(t, day1.ID)

	_, err = svc.CreatePartition(ctx, "club", types.Partition{ID: "x", Date: "tomorrow"})
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = svc.CreatePartition(ctx, "club", types.Partition{ID: types.AllPartitions})
	require.ErrorIs(t, err, types.ErrAggregateScope)

	list, err := svc.ListPartitions(ctx, "club")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Day 1", list[0].Name)
	require.Equal(t, "day2", list[1].ID)
}
