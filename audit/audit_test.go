package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/seating/internal/logger"
	seatingtest "github.com/arloliu/seating/testing"
	"github.com/arloliu/seating/types"
)

func record(action string) types.ActionRecord {
	return types.ActionRecord{
		Action:      action,
		OwnerID:     "club",
		PartitionID: "main.event",
		Details:     map[string]any{"table": 3},
		At:          time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC),
	}
}

type publishCounter struct {
	ok, failed int
}

func (c *publishCounter) RecordAuditPublish(success bool) {
	if success {
		c.ok++
	} else {
		c.failed++
	}
}

func TestNop(t *testing.T) {
	require.NoError(t, NewNop().Record(context.Background(), record(types.ActionMoveSeat)))
}

func TestJetStream_Record(t *testing.T) {
	_, nc := seatingtest.StartEmbeddedNATS(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m := &publishCounter{}
	sink, err := NewJetStream(ctx, nc, JetStreamConfig{}, WithLogger(logger.NewTest(t)), WithMetrics(m))
	require.NoError(t, err)

	rec := record(types.ActionCloseTable)
	require.Equal(t, "seating.audit.club.main_event.close_table", sink.Subject(rec))

	require.NoError(t, sink.Record(ctx, rec))
	// Same content, same message id: deduplicated by the stream.
	require.NoError(t, sink.Record(ctx, rec))
	require.NoError(t, sink.Record(ctx, record(types.ActionDeleteTable)))

	js := seatingtest.JetStream(t, nc)
	stream, err := js.Stream(ctx, DefaultStream)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, info.State.Msgs)

	msg, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "seating.audit.club.main_event.close_table", msg.Subject)

	var got types.ActionRecord
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	require.Equal(t, types.ActionCloseTable, got.Action)
	require.Equal(t, "main.event", got.PartitionID)
	require.True(t, rec.At.Equal(got.At))

	require.Equal(t, 3, m.ok)
	require.Zero(t, m.failed)
}

func TestJetStream_ReusesExistingStream(t *testing.T) {
	_, nc := seatingtest.StartEmbeddedNATS(t)
	ctx := context.Background()

	cfg := JetStreamConfig{Stream: "AUDIT", SubjectPrefix: "floor"}
	_, err := NewJetStream(ctx, nc, cfg)
	require.NoError(t, err)
	second, err := NewJetStream(ctx, nc, cfg)
	require.NoError(t, err)
	require.NoError(t, second.Record(ctx, record(types.ActionSnakeDraft)))

	js, err := jetstream.New(nc)
	require.NoError(t, err)
	stream, err := js.Stream(ctx, "AUDIT")
	require.NoError(t, err)
	require.Equal(t, []string{"floor.>"}, stream.CachedInfo().Config.Subjects)
}

func TestMessageID(t *testing.T) {
	a := MessageID([]byte(`{"action":"move_seat"}`))
	require.Len(t, a, 32)
	require.Equal(t, a, MessageID([]byte(`{"action":"move_seat"}`)))
	require.NotEqual(t, a, MessageID([]byte(`{"action":"bust_out"}`)))
}

func TestSubjectTokens(t *testing.T) {
	sink := &JetStream{cfg: JetStreamConfig{SubjectPrefix: "p"}}
	require.Equal(t, "p._.a_b_c.x", sink.Subject(types.ActionRecord{PartitionID: "a.b c", Action: "x"}))
}

func TestJetStream_Unavailable(t *testing.T) {
	_, nc := seatingtest.StartEmbeddedNATS(t)
	ctx := context.Background()

	m := &publishCounter{}
	sink, err := NewJetStream(ctx, nc, JetStreamConfig{}, WithMetrics(m))
	require.NoError(t, err)

	nc.Close()
	err = sink.Record(ctx, record(types.ActionBustOut))
	require.ErrorIs(t, err, ErrSinkUnavailable)
	require.Equal(t, 1, m.failed)
}
