package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	connectormodels "orgregistry/internal/connector/models"
	participantmodels "orgregistry/internal/participant/models"
	"orgregistry/pkg/domain"
)

// ParticipantSource assembles a participant by its raw organization id.
type ParticipantSource interface {
	GetByID(ctx context.Context, rawID string) (*participantmodels.Participant, error)
}

// ConnectorSource resolves one connector record.
type ConnectorSource interface {
	FindOne(ctx context.Context, orgID domain.OrganizationID, connectorID string) (*connectormodels.ConnectorRecord, error)
}

// Producer is the slice of the Kafka client the relay needs for replies.
// *kgo.Client satisfies it.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Relay serves request/reply lookups from the bus. Lookups are pure reads
// and therefore idempotent; redelivery of a request is harmless.
type Relay struct {
	client       *kgo.Client
	producer     Producer
	participants ParticipantSource
	connectors   ConnectorSource
	logger       *slog.Logger
}

// NewRelay constructs a Relay consuming from the given client. The
// producer is usually the same client; tests inject a fake.
func NewRelay(client *kgo.Client, producer Producer, participants ParticipantSource, connectors ConnectorSource, logger *slog.Logger) *Relay {
	return &Relay{
		client:       client,
		producer:     producer,
		participants: participants,
		connectors:   connectors,
		logger:       logger,
	}
}

// Run consumes request topics until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	for {
		fetches := r.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			r.logger.ErrorContext(ctx, "bus fetch error", "topic", topic, "partition", partition, "error", err)
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			r.handle(ctx, rec)
		})
	}
}

type organizationRequest struct {
	OrgID string `json:"orgId"`
}

type connectorRequest struct {
	ConnectorID string `json:"connectorId"`
	OrgID       string `json:"orgId"`
}

type organizationReply struct {
	Found       bool                           `json:"found"`
	Participant *participantmodels.Participant `json:"participant,omitempty"`
}

type connectorReply struct {
	Found     bool                             `json:"found"`
	Connector *connectormodels.ConnectorRecord `json:"connector,omitempty"`
}

func (r *Relay) handle(ctx context.Context, rec *kgo.Record) {
	replyTopic := headerValue(rec, HeaderReplyTopic)
	if replyTopic == "" {
		r.logger.WarnContext(ctx, "dropping bus request without reply topic", "topic", rec.Topic)
		return
	}

	var payload []byte
	switch rec.Topic {
	case TopicOrganizationRequest:
		payload = r.handleOrganizationRequest(ctx, rec.Value)
	case TopicConnectorRequest:
		payload = r.handleConnectorRequest(ctx, rec.Value)
	default:
		return
	}

	reply := &kgo.Record{
		Topic: replyTopic,
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: HeaderCorrelationID, Value: []byte(headerValue(rec, HeaderCorrelationID))},
		},
	}
	if err := r.producer.ProduceSync(ctx, reply).FirstErr(); err != nil {
		r.logger.ErrorContext(ctx, "failed to produce bus reply", "topic", replyTopic, "error", err)
	}
}

// handleOrganizationRequest answers with the assembled participant, or the
// not-found sentinel on any failure. The requester has no error channel;
// failures are logged here and nowhere else.
func (r *Relay) handleOrganizationRequest(ctx context.Context, value []byte) []byte {
	var req organizationRequest
	if err := json.Unmarshal(value, &req); err != nil {
		r.logger.WarnContext(ctx, "malformed organization request on bus", "error", err)
		return mustMarshal(organizationReply{Found: false})
	}

	participant, err := r.participants.GetByID(ctx, req.OrgID)
	if err != nil {
		r.logger.WarnContext(ctx, "organization lookup failed, replying not found",
			"org_id", req.OrgID,
			"error", err,
		)
		return mustMarshal(organizationReply{Found: false})
	}
	return mustMarshal(organizationReply{Found: true, Participant: participant})
}

func (r *Relay) handleConnectorRequest(ctx context.Context, value []byte) []byte {
	var req connectorRequest
	if err := json.Unmarshal(value, &req); err != nil {
		r.logger.WarnContext(ctx, "malformed connector request on bus", "error", err)
		return mustMarshal(connectorReply{Found: false})
	}

	orgID, err := domain.ParseOrganizationID(req.OrgID)
	if err != nil {
		return mustMarshal(connectorReply{Found: false})
	}
	connector, err := r.connectors.FindOne(ctx, orgID, req.ConnectorID)
	if err != nil {
		r.logger.WarnContext(ctx, "connector lookup failed, replying not found",
			"org_id", req.OrgID,
			"connector_id", req.ConnectorID,
			"error", err,
		)
		return mustMarshal(connectorReply{Found: false})
	}
	return mustMarshal(connectorReply{Found: true, Connector: connector})
}

func headerValue(rec *kgo.Record, key string) string {
	for _, h := range rec.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func mustMarshal(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		// Reply types only hold marshalable fields.
		return []byte(`{"found":false}`)
	}
	return raw
}
