package partition

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	seatingtest "github.com/arloliu/seating/testing"
	"github.com/arloliu/seating/types"
)

func TestResolve(t *testing.T) {
	require.Equal(t, "day2", Resolve(&types.Table{PartitionID: "day2"}, "day1"))
	require.Equal(t, "day1", Resolve(&types.Table{}, "day1"))
	require.Equal(t, "day1", Resolve(nil, "day1"))
	require.Equal(t, "x", ResolveParticipant(&types.Participant{PartitionID: "x"}, "y"))
	require.Equal(t, "y", ResolveParticipant(nil, "y"))
}

func TestPaths(t *testing.T) {
	s := types.NewScope("club", "main")

	require.Equal(t, "o/club/p/main/t/t1", TablePath(s, "t1"))
	require.Equal(t, "o/club/p/main/u/p1", ParticipantPath(s, "p1"))
	require.Equal(t, "o/club/partitions/main", PartitionPath("club", "main"))

	k, ok := ParseKey(TablePath(s, "t1"))
	require.True(t, ok)
	require.Equal(t, Key{Scope: s, Kind: KindTable, ID: "t1"}, k)

	_, ok = ParseKey(PartitionPath("club", "main"))
	require.False(t, ok)
	_, ok = ParseKey("o/club/p/main/x/t1")
	require.False(t, ok)
}

func TestValidateScope(t *testing.T) {
	require.NoError(t, ValidateScope(types.NewScope("club", "main")))
	require.ErrorIs(t, ValidateScope(types.NewScope("", "main")), types.ErrInvalidArgument)
	require.ErrorIs(t, ValidateScope(types.NewScope("club", "a/b")), types.ErrInvalidArgument)
	require.ErrorIs(t, ValidateID("table", ""), types.ErrInvalidArgument)
}

func seed(t *testing.T, st types.Store, kv map[string]any) {
	t.Helper()

	require.NoError(t, st.Batch(context.Background(), func(w types.Writer) error {
		for k, v := range kv {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			if err := w.Set(k, data); err != nil {
				return err
			}
		}

		return nil
	}))
}

func partitionsFor(t *testing.T, st types.Store, s types.Scope) []string {
	t.Helper()

	var ids []string
	require.NoError(t, st.View(context.Background(), func(r types.Reader) error {
		var err error
		ids, err = ReadStrategyFor(s).Partitions(r)

		return err
	}))

	return ids
}

func TestReadStrategyFor(t *testing.T) {
	st := seatingtest.NewStore(t)
	owner := "club"
	seed(t, st, map[string]any{
		PartitionPath(owner, "sat-a"):   types.Partition{ID: "sat-a", OwnerID: owner, Date: "2026-10-17"},
		PartitionPath(owner, "main"):    types.Partition{ID: "main", OwnerID: owner, Date: "2026-10-18"},
		PartitionPath(owner, "sat-b"):   types.Partition{ID: "sat-b", OwnerID: owner, Date: "2026-10-18"},
		PartitionPath("other", "x"):     types.Partition{ID: "x", OwnerID: "other", Date: "2026-10-18"},
		TablePath(types.NewScope(owner, "adhoc"), "t1"): types.Table{ID: "t1"},
	})

	t.Run("single partition", func(t *testing.T) {
		s := types.NewScope(owner, "main")
		require.False(t, ReadStrategyFor(s).Aggregate())
		require.Equal(t, []string{"main"}, partitionsFor(t, st, s))
	})

	t.Run("all partitions includes unregistered ones", func(t *testing.T) {
		s := types.NewScope(owner, types.AllPartitions)
		require.True(t, ReadStrategyFor(s).Aggregate())
		require.Equal(t, []string{"adhoc", "main", "sat-a", "sat-b"}, partitionsFor(t, st, s))
	})

	t.Run("date token filters by partition date", func(t *testing.T) {
		s := types.NewScope(owner, "date:2026-10-18")
		require.True(t, ReadStrategyFor(s).Aggregate())
		require.Equal(t, []string{"main", "sat-b"}, partitionsFor(t, st, s))
	})

	t.Run("date without partitions is empty", func(t *testing.T) {
		require.Empty(t, partitionsFor(t, st, types.NewScope(owner, "date:2020-01-01")))
	})
}

func TestLocate(t *testing.T) {
	st := seatingtest.NewStore(t)
	owner := "club"
	day2 := types.NewScope(owner, "day2")
	seed(t, st, map[string]any{
		TablePath(day2, "t1"):       types.Table{ID: "t1", PartitionID: "day2"},
		ParticipantPath(day2, "p1"): types.Participant{ID: "p1", PartitionID: "day2"},
		TablePath(types.NewScope("rival", "day2"), "t9"): types.Table{ID: "t9"},
	})

	view := func(fn func(r types.Reader) error) {
		require.NoError(t, st.View(context.Background(), fn))
	}

	t.Run("caller partition hit", func(t *testing.T) {
		view(func(r types.Reader) error {
			found, raw, err := LocateTable(r, day2, "t1")
			require.NoError(t, err)
			require.Equal(t, day2, found)
			require.Contains(t, string(raw), `"t1"`)

			return nil
		})
	})

	t.Run("stale caller partition falls back to scan", func(t *testing.T) {
		view(func(r types.Reader) error {
			found, _, err := LocateTable(r, types.NewScope(owner, "day1"), "t1")
			require.NoError(t, err)
			require.Equal(t, day2, found)

			found, _, err = LocateParticipant(r, types.NewScope(owner, types.AllPartitions), "p1")
			require.NoError(t, err)
			require.Equal(t, day2, found)

			return nil
		})
	})

	t.Run("other owner is never matched", func(t *testing.T) {
		view(func(r types.Reader) error {
			_, _, err := LocateTable(r, types.NewScope(owner, "day2"), "t9")
			require.ErrorIs(t, err, types.ErrTableNotFound)

			_, _, err = LocateParticipant(r, day2, "nobody")
			require.ErrorIs(t, err, types.ErrParticipantNotFound)

			return nil
		})
	})
}
