package audit

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/metrics"
	"github.com/arloliu/seating/internal/natsutil"
	"github.com/arloliu/seating/types"
)

// Defaults for the audit stream.
const (
	DefaultStream        = "SEATING_AUDIT"
	DefaultSubjectPrefix = "seating.audit"
	DefaultMaxAge        = 30 * 24 * time.Hour
	DefaultDedupWindow   = 2 * time.Minute
)

// ErrSinkUnavailable is returned when a record cannot reach the stream because
// NATS is unreachable.
var ErrSinkUnavailable = errors.New("audit sink unavailable")

// JetStreamConfig configures the JetStream sink.
type JetStreamConfig struct {
	// Stream is the stream name (default: SEATING_AUDIT).
	Stream string `yaml:"stream"`

	// SubjectPrefix prefixes every record subject (default: seating.audit).
	SubjectPrefix string `yaml:"subjectPrefix"`

	// MaxAge bounds record retention (default: 30 days).
	MaxAge time.Duration `yaml:"maxAge"`

	// Replicas is the stream replica count (default: 1).
	Replicas int `yaml:"replicas"`
}

// SetDefaults applies default values for zero fields.
func (c *JetStreamConfig) SetDefaults() {
	if c.Stream == "" {
		c.Stream = DefaultStream
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = DefaultSubjectPrefix
	}
	if c.MaxAge == 0 {
		c.MaxAge = DefaultMaxAge
	}
	if c.Replicas == 0 {
		c.Replicas = 1
	}
}

// JetStream publishes action records to a JetStream stream.
type JetStream struct {
	js      jetstream.JetStream
	cfg     JetStreamConfig
	logger  types.Logger
	metrics types.AuditMetrics
}

// Compile-time assertion that JetStream implements AuditSink.
var _ types.AuditSink = (*JetStream)(nil)

// Option configures a JetStream sink.
type Option func(*JetStream)

// WithLogger sets the sink logger.
func WithLogger(l types.Logger) Option {
	return func(j *JetStream) { j.logger = l }
}

// WithMetrics sets the publish metrics.
func WithMetrics(m types.AuditMetrics) Option {
	return func(j *JetStream) { j.metrics = m }
}

// NewJetStream provisions the audit stream and returns a publishing sink.
//
// Parameters:
//   - ctx: Context bounding stream provisioning
//   - nc: Connected NATS client
//   - cfg: Stream configuration; zero fields take defaults
//   - opts: Optional logger and metrics
//
// Returns:
//   - *JetStream: Ready sink
//   - error: JetStream or stream provisioning failure
//
// Example:
//
//	sink, err := audit.NewJetStream(ctx, nc, audit.JetStreamConfig{}, audit.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	eng, err := seating.NewEngine(cfg, st, seating.WithAuditSink(sink))
func NewJetStream(ctx context.Context, nc *nats.Conn, cfg JetStreamConfig, opts ...Option) (*JetStream, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	cfg.SetDefaults()

	j := &JetStream{js: js, cfg: cfg}
	for _, opt := range opts {
		opt(j)
	}
	if j.logger == nil {
		j.logger = logging.NewNop()
	}
	if j.metrics == nil {
		j.metrics = metrics.NewNop()
	}

	_, err = natsutil.EnsureStreamWithRetry(ctx, js, jetstream.StreamConfig{
		Name:       cfg.Stream,
		Subjects:   []string{cfg.SubjectPrefix + ".>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     cfg.MaxAge,
		Replicas:   cfg.Replicas,
		Duplicates: DefaultDedupWindow,
	}, 3)
	if err != nil {
		return nil, err
	}

	return j, nil
}

// Record publishes rec and waits for the stream acknowledgement.
func (j *JetStream) Record(ctx context.Context, rec types.ActionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		j.metrics.RecordAuditPublish(false)
		return fmt.Errorf("encode audit record: %w", err)
	}

	msg := &nats.Msg{
		Subject: j.Subject(rec),
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set(jetstream.MsgIDHeader, MessageID(data))

	if _, err := j.js.PublishMsg(ctx, msg); err != nil {
		j.metrics.RecordAuditPublish(false)
		if natsutil.IsConnectivityError(err) {
			return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}

		return fmt.Errorf("publish audit record: %w", err)
	}
	j.metrics.RecordAuditPublish(true)
	j.logger.Debug("audit record published", "subject", msg.Subject, "action", rec.Action)

	return nil
}

var subjectToken = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

// Subject returns the subject a record is published on.
func (j *JetStream) Subject(rec types.ActionRecord) string {
	return strings.Join([]string{
		j.cfg.SubjectPrefix,
		token(rec.OwnerID),
		token(rec.PartitionID),
		token(rec.Action),
	}, ".")
}

func token(s string) string {
	if s == "" {
		return "_"
	}

	return subjectToken.Replace(s)
}

// MessageID returns the deduplication id of an encoded record.
func MessageID(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()

	return hex.EncodeToString(sum[:])
}
